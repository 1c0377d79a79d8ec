package service

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testJWTSecret = "test-jwt-secret-key-for-unit-tests"

func TestJWTTokenService_GenerateAndValidate(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, "webhook-gateway")

	tokenStr, expiresAt, err := svc.Generate("owner-42", time.Hour)
	require.NoError(t, err)
	assert.NotEmpty(t, tokenStr)
	assert.True(t, expiresAt.After(time.Now()))

	claims, err := svc.Validate(tokenStr)
	require.NoError(t, err)
	assert.Equal(t, "owner-42", claims.OwnerID)
}

func TestJWTTokenService_GenerateRequiresOwner(t *testing.T) {
	_, _, err := NewJWTTokenService(testJWTSecret, "i").Generate("", time.Hour)
	assert.Error(t, err)
}

func TestJWTTokenService_Rejects(t *testing.T) {
	svc := NewJWTTokenService(testJWTSecret, "webhook-gateway")

	expired, _, err := svc.Generate("owner", -time.Hour)
	require.NoError(t, err)

	otherSecret, _, err := NewJWTTokenService("secret-2", "webhook-gateway").Generate("owner", time.Hour)
	require.NoError(t, err)

	otherIssuer, _, err := NewJWTTokenService(testJWTSecret, "someone-else").Generate("owner", time.Hour)
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject: "owner", Issuer: "webhook-gateway",
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, jwt.RegisteredClaims{
		Subject: "owner", Issuer: "webhook-gateway", ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte(testJWTSecret))
	require.NoError(t, err)

	for name, tok := range map[string]string{
		"expired":      expired,
		"other secret": otherSecret,
		"other issuer": otherIssuer,
		"no exp":       noExp,
		"wrong alg":    hs512,
		"garbage":      "not.a.valid.jwt",
		"empty":        "",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := svc.Validate(tok)
			assert.Error(t, err)
		})
	}
}
