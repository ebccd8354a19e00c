package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventregistration/internal/domain"
)

func sign(t *testing.T, method jwt.SigningMethod, key any, claims adminClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTVerifier_Verify(t *testing.T) {
	secret := "test-secret"
	verifier := NewJWTVerifier(secret)
	now := time.Now()

	valid := adminClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "admin-1",
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
		Email: "admin@example.com",
		Roles: []string{"admin"},
	}

	subject, err := verifier.Verify(sign(t, jwt.SigningMethodHS256, []byte(secret), valid))
	require.NoError(t, err)
	assert.Equal(t, "admin-1", subject)

	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(now.Add(-time.Minute))
	noExpiry := valid
	noExpiry.ExpiresAt = nil
	notAdmin := valid
	notAdmin.Roles = []string{"registrant"}

	tests := []struct {
		name  string
		token string
	}{
		{"expired", sign(t, jwt.SigningMethodHS256, []byte(secret), expired)},
		{"missing expiry", sign(t, jwt.SigningMethodHS256, []byte(secret), noExpiry)},
		{"missing admin role", sign(t, jwt.SigningMethodHS256, []byte(secret), notAdmin)},
		{"wrong secret", sign(t, jwt.SigningMethodHS256, []byte("other"), valid)},
		{"wrong algorithm", sign(t, jwt.SigningMethodHS384, []byte(secret), valid)},
		{"garbage", "not-a-jwt"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := verifier.Verify(tt.token)
			require.ErrorIs(t, err, domain.ErrUnauthorized)
		})
	}
}
