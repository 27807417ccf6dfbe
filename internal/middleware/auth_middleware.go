package middleware

import (
	"strings"

	"go-store-inventory/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// StoreResolver yields the store a request acts for, or ok=false when the
// request carries no usable identity.
type StoreResolver interface {
	ResolveStore(c *fiber.Ctx) (storeID string, ok bool)
}

// TokenResolver reads a signed session token whose subject is the store id.
// Sources, in order: "Authorization: Bearer <token>", the session cookie, and
// (only when QueryParam is set) a query parameter.
type TokenResolver struct {
	secret     []byte
	cookieName string
	queryParam string
}

func NewTokenResolver(secret []byte, cookieName string) *TokenResolver {
	return &TokenResolver{secret: secret, cookieName: cookieName}
}

// WithQueryParam returns a copy that also accepts the token from the named
// query parameter. Browsers cannot set headers on websocket upgrades.
func (r *TokenResolver) WithQueryParam(name string) *TokenResolver {
	cp := *r
	cp.queryParam = name
	return &cp
}

func (r *TokenResolver) ResolveStore(c *fiber.Ctx) (string, bool) {
	tokenString := r.extractToken(c)
	if tokenString == "" {
		return "", false
	}

	claims, err := jwt.ValidateToken(r.secret, tokenString)
	if err != nil {
		return "", false
	}
	return claims.StoreID(), true
}

func (r *TokenResolver) extractToken(c *fiber.Ctx) string {
	if authHeader := c.Get(fiber.HeaderAuthorization); authHeader != "" {
		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return ""
		}
		return parts[1]
	}
	if r.cookieName != "" {
		if token := c.Cookies(r.cookieName); token != "" {
			return token
		}
	}
	if r.queryParam != "" {
		return c.Query(r.queryParam)
	}
	return ""
}
