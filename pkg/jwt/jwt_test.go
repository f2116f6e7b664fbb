package jwt

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestManager() *Manager {
	return NewManager("test-secret", "blog-backend", 15*time.Minute, 72*time.Hour)
}

func TestAccessTokenCarriesGroups(t *testing.T) {
	m := newTestManager()

	token, issued, err := m.GenerateAccessToken("user-1", "reader@example.com", []string{"READERS"})
	require.NoError(t, err)
	require.NotEmpty(t, issued.ID)

	claims, err := m.ValidateAccessToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "reader@example.com", claims.Email)
	assert.Equal(t, []string{"READERS"}, claims.Groups)
	assert.Equal(t, issued.ID, claims.ID)
}

func TestRefreshTokenRejectedAsAccess(t *testing.T) {
	m := newTestManager()

	refresh, err := m.GenerateRefreshToken("user-1")
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(refresh)
	assert.Error(t, err)

	claims, err := m.ValidateRefreshToken(refresh)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
}

func TestTokenSignedWithOtherSecretIsRejected(t *testing.T) {
	other := NewManager("other-secret", "blog-backend", time.Minute, time.Hour)
	token, _, err := other.GenerateAccessToken("user-1", "a@b.c", nil)
	require.NoError(t, err)

	_, err = newTestManager().ValidateAccessToken(token)
	assert.Error(t, err)
}

func TestExpiredTokenIsRejected(t *testing.T) {
	m := NewManager("test-secret", "blog-backend", -time.Minute, time.Hour)
	token, _, err := m.GenerateAccessToken("user-1", "a@b.c", nil)
	require.NoError(t, err)

	_, err = m.ValidateAccessToken(token)
	assert.Error(t, err)
}
