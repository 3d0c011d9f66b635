package auth

import (
	"testing"
	"time"

	"jobportal_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	m := NewTokenManager("secret", time.Hour)

	token, err := m.GenerateToken("user-1", models.UserRoleCompany)
	require.NoError(t, err)

	claims, err := m.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, models.UserRoleCompany, claims.Role)
}

func TestTokenManager_RejectsForeignSignature(t *testing.T) {
	token, err := NewTokenManager("one", time.Hour).GenerateToken("user-1", models.UserRoleAdmin)
	require.NoError(t, err)

	_, err = NewTokenManager("two", time.Hour).ParseToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestTokenManager_Expired(t *testing.T) {
	m := NewTokenManager("secret", -time.Minute)
	token, err := m.GenerateToken("user-1", models.UserRoleJobSeeker)
	require.NoError(t, err)

	_, err = m.ParseToken(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
}

func TestPassword(t *testing.T) {
	hash, err := HashPassword("jobseeker123")
	require.NoError(t, err)

	assert.True(t, CheckPasswordHash("jobseeker123", hash))
	assert.False(t, CheckPasswordHash("wrong", hash))
	assert.ErrorIs(t, ValidatePassword("12345"), ErrWeakPassword)
	assert.NoError(t, ValidatePassword("123456"))
}

func TestLandingFor(t *testing.T) {
	assert.Equal(t, "admin_dashboard", LandingFor(models.UserRoleAdmin))
	assert.Equal(t, "company_dashboard", LandingFor(models.UserRoleCompany))
	assert.Equal(t, "home", LandingFor(models.UserRoleJobSeeker))
}
