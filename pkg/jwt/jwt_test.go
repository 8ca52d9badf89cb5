package jwt

import (
	"testing"
	"time"

	gjwt "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, 2*time.Minute)
	adminID := uuid.New()

	pair, err := svc.GenerateTokenPair(adminID, "admin@autodiag.io", "ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	claims, err := svc.ValidateToken(pair.AccessToken)
	assert.NoError(t, err)
	assert.Equal(t, adminID, claims.AdminID)
	assert.Equal(t, "admin@autodiag.io", claims.Email)
	assert.Equal(t, "ADMIN", claims.Role)
}

func TestJWTService_ValidateInvalidToken(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, 2*time.Minute)

	_, err := svc.ValidateToken("not-a-token")
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestJWTService_ValidateExpiredToken(t *testing.T) {
	svc := NewJWTService("secret", -time.Second, -time.Second)

	pair, err := svc.GenerateTokenPair(uuid.New(), "expired@autodiag.io", "ADMIN")
	assert.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)

	_, err = svc.ValidateToken(pair.AccessToken)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestJWTService_ValidateWrongSigningMethod(t *testing.T) {
	svc := NewJWTService("secret", time.Minute, 2*time.Minute)

	claims := gjwt.MapClaims{
		"adminId": uuid.NewString(),
		"email":   "x@y.z",
		"role":    "ADMIN",
		"exp":     time.Now().Add(time.Minute).Unix(),
		"iat":     time.Now().Unix(),
		"nbf":     time.Now().Unix(),
	}
	unsigned := gjwt.NewWithClaims(gjwt.SigningMethodNone, claims)
	tokenStr, err := unsigned.SignedString(gjwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(tokenStr)
	assert.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidToken)
}
