package jwt

import (
	"testing"
	"time"

	gojwt "github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var secret = []byte("test-secret")

func TestGenerateAndValidate(t *testing.T) {
	token, err := GenerateToken(secret, "store-1", time.Hour)
	require.NoError(t, err)

	claims, err := ValidateToken(secret, token)
	require.NoError(t, err)
	assert.Equal(t, "store-1", claims.StoreID())
	assert.Equal(t, issuer, claims.Issuer)
}

func TestGenerateToken_RequiresStore(t *testing.T) {
	_, err := GenerateToken(secret, "", time.Hour)
	assert.ErrorIs(t, err, ErrMissingStore)
}

func TestValidateToken_Rejects(t *testing.T) {
	valid, err := GenerateToken(secret, "store-1", time.Hour)
	require.NoError(t, err)
	expired, err := GenerateToken(secret, "store-1", -time.Minute)
	require.NoError(t, err)
	noneAlg, err := gojwt.NewWithClaims(gojwt.SigningMethodNone, gojwt.RegisteredClaims{Subject: "store-1"}).
		SignedString(gojwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	tests := []struct {
		name   string
		secret []byte
		token  string
	}{
		{name: "wrong secret", secret: []byte("other"), token: valid},
		{name: "expired", secret: secret, token: expired},
		{name: "garbage", secret: secret, token: "not-a-token"},
		{name: "none algorithm", secret: secret, token: noneAlg},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ValidateToken(tt.secret, tt.token)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func TestValidateToken_EmptySubject(t *testing.T) {
	token, err := gojwt.NewWithClaims(gojwt.SigningMethodHS256, gojwt.RegisteredClaims{
		ExpiresAt: gojwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(secret)
	require.NoError(t, err)

	_, err = ValidateToken(secret, token)
	assert.ErrorIs(t, err, ErrMissingStore)
}
