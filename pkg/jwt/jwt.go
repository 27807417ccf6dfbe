package jwt

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const issuer = "go-store-inventory"

var (
	ErrInvalidToken = errors.New("invalid or expired token")
	ErrMissingStore = errors.New("token has no store subject")
)

// Claims carries the store identity in the standard "sub" claim.
type Claims struct {
	StoreName string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// StoreID returns the store the token was issued for.
func (c *Claims) StoreID() string {
	return c.Subject
}

// GenerateToken signs a token for storeID valid for ttl.
func GenerateToken(secret []byte, storeID string, ttl time.Duration) (string, error) {
	if storeID == "" {
		return "", ErrMissingStore
	}

	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   storeID,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    issuer,
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateToken parses and validates a token. A valid token without a subject is rejected.
func ValidateToken(secret []byte, tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.StoreID() == "" {
		return nil, ErrMissingStore
	}
	return claims, nil
}
