package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "READERS", cfg.Identity.ReaderGroup)
	assert.Equal(t, "AUTHORS", cfg.Identity.AuthorGroup)
	assert.False(t, cfg.Identity.AllowGuestCategoryCreate)
	assert.Equal(t, 24*time.Hour, cfg.Identity.CodeTTL)
	assert.Equal(t, time.Hour, cfg.JWT.AccessTTL())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("IDENTITY_USER_POOL_ID", "eu-west-1_abc")
	t.Setenv("IDENTITY_ALLOW_GUEST_CATEGORY_CREATE", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")
	t.Setenv("IDENTITY_LOCKOUT_DURATION", "30m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "eu-west-1_abc", cfg.Identity.UserPoolID)
	assert.True(t, cfg.Identity.AllowGuestCategoryCreate)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.App.AllowedOrigins)
	assert.Equal(t, 30*time.Minute, cfg.Identity.LockoutDuration)
}

func TestProductionRequiresSecrets(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("DB_PASSWORD", "pw")

	_, err := Load()
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "real-secret")
	_, err = Load()
	assert.NoError(t, err)
}

func TestSameGroupNamesRejected(t *testing.T) {
	t.Setenv("IDENTITY_AUTHOR_GROUP", "READERS")

	_, err := Load()
	assert.Error(t, err)
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{Host: "db", Port: 5432, User: "u", Password: "p", Database: "blog", SSLMode: "disable"}
	assert.Equal(t, "postgres://u:p@db:5432/blog?sslmode=disable", d.DSN())
}
