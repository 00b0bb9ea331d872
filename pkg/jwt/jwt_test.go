package jwt

import (
	"testing"
	"time"

	"convenio-backend/config"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func testService() *JWTService {
	return NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
}

func TestGenerateAndValidateAccessToken(t *testing.T) {
	svc := testService()
	userID := uuid.New()

	token, tokenID, err := svc.GenerateAccessToken(userID, "titular@example.com", []string{"member", "affiliate"})
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, tokenID)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "titular@example.com", claims.Email)
	assert.Equal(t, []string{"member", "affiliate"}, claims.Roles)
	assert.Equal(t, AccessToken, claims.TokenType)
	assert.Equal(t, tokenID, claims.TokenID)
}

func TestRefreshTokenCarriesType(t *testing.T) {
	svc := testService()

	token, _, err := svc.GenerateRefreshToken(uuid.New(), "titular@example.com", []string{"member"})
	assert.NoError(t, err)

	claims, err := svc.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, RefreshToken, claims.TokenType)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	svc := testService()
	token, _, err := svc.GenerateAccessToken(uuid.New(), "titular@example.com", nil)
	assert.NoError(t, err)

	other := NewJWTService(config.JWTConfig{Secret: "other-secret", AccessExpiry: time.Minute})
	_, err = other.ValidateToken(token)
	assert.Error(t, err)
}

func TestValidateTokenRejectsExpired(t *testing.T) {
	svc := NewJWTService(config.JWTConfig{Secret: "test-secret", AccessExpiry: -time.Minute})
	token, _, err := svc.GenerateAccessToken(uuid.New(), "titular@example.com", nil)
	assert.NoError(t, err)

	_, err = svc.ValidateToken(token)
	assert.Error(t, err)
}

func TestHasAnyRole(t *testing.T) {
	claims := &Claims{Roles: []string{"member", "affiliate"}}

	assert.True(t, claims.HasAnyRole("affiliate"))
	assert.True(t, claims.HasAnyRole("admin", "member"))
	assert.False(t, claims.HasAnyRole("admin", "system"))
	assert.False(t, claims.HasAnyRole())
}
