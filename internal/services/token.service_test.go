package services_test

import (
	"testing"

	"galhub/config"
	"galhub/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTokenService() *services.TokenService {
	return services.NewTokenService(config.Config{
		JWTSecret:      "test-secret-key",
		JWTExpiryHours: 24,
	})
}

func TestTokenService_UserTokenRoundTrip(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueUserToken(42)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := svc.ValidateUserToken(token)
	require.NoError(t, err)
	assert.Equal(t, 42, claims.UID)
}

func TestTokenService_AdminTokenRoundTrip(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueAdminToken("admin")
	require.NoError(t, err)

	claims, err := svc.ValidateAdminToken(token)
	require.NoError(t, err)
	assert.True(t, claims.Admin)
	assert.Equal(t, "admin", claims.Username)
}

func TestTokenService_UserTokenIsNotAdminToken(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueUserToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateAdminToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_AdminTokenIsNotUserToken(t *testing.T) {
	svc := newTokenService()

	token, err := svc.IssueAdminToken("admin")
	require.NoError(t, err)

	_, err = svc.ValidateUserToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	svc := newTokenService()
	other := services.NewTokenService(config.Config{
		JWTSecret:      "different-secret",
		JWTExpiryHours: 24,
	})

	token, err := other.IssueUserToken(42)
	require.NoError(t, err)

	_, err = svc.ValidateUserToken(token)
	assert.ErrorIs(t, err, services.ErrInvalidToken)
}

func TestTokenService_RejectsMalformedToken(t *testing.T) {
	svc := newTokenService()

	tests := []struct {
		name  string
		token string
	}{
		{name: "empty string", token: ""},
		{name: "garbage", token: "not-a-token"},
		{name: "truncated", token: "eyJhbGciOiJIUzI1NiJ9.eyJ1aWQiOjQyfQ"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.ValidateUserToken(tt.token)
			assert.ErrorIs(t, err, services.ErrInvalidToken)
		})
	}
}
