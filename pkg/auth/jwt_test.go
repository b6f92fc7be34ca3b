package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testConfig = JWTConfig{
	SecretKey: "test-secret",
	Issuer:    "atomcms",
}

func TestGenerateAndValidate(t *testing.T) {
	generator, err := NewJWTGenerator(testConfig, time.Hour)
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig)
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "client-1", []string{"editor"})
	require.NoError(t, err)

	claims, err := validator.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "client-1", claims.ClientID)
	assert.Equal(t, []string{"editor"}, claims.Roles)
}

func TestValidateExpiredToken(t *testing.T) {
	validator, err := NewJWTValidator(testConfig)
	require.NoError(t, err)

	now := time.Now().Add(-2 * time.Hour)
	claims := &Claims{
		UserID:   "user-1",
		ClientID: "client-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    testConfig.Issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfig.SecretKey))
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrExpiredToken)
}

func TestValidateWrongSecret(t *testing.T) {
	generator, err := NewJWTGenerator(JWTConfig{SecretKey: "other-secret", Issuer: testConfig.Issuer}, time.Hour)
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig)
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "client-1", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidSignature)
}

func TestValidateWrongIssuer(t *testing.T) {
	generator, err := NewJWTGenerator(JWTConfig{SecretKey: testConfig.SecretKey, Issuer: "someone-else"}, time.Hour)
	require.NoError(t, err)
	validator, err := NewJWTValidator(testConfig)
	require.NoError(t, err)

	token, err := generator.GenerateToken("user-1", "client-1", nil)
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestValidateMissingExpiry(t *testing.T) {
	validator, err := NewJWTValidator(testConfig)
	require.NoError(t, err)

	claims := &Claims{
		UserID: "user-1",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer: testConfig.Issuer,
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testConfig.SecretKey))
	require.NoError(t, err)

	_, err = validator.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateGarbage(t *testing.T) {
	validator, err := NewJWTValidator(testConfig)
	require.NoError(t, err)

	_, err = validator.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestUserContextRoundTrip(t *testing.T) {
	t.Run("present", func(t *testing.T) {
		ctx := SetUserInContext(context.Background(), &UserContext{UserID: "user-1", ClientID: "client-1"})
		user, err := GetUserFromContext(ctx)
		require.NoError(t, err)
		assert.Equal(t, "client-1", user.ClientID)
	})

	t.Run("absent", func(t *testing.T) {
		_, err := GetUserFromContext(context.Background())
		assert.Error(t, err)
	})
}
