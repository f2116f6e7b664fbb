package database

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedMigrationsArePaired(t *testing.T) {
	ups, err := fs.Glob(migrationFS, "migrations/*.up.sql")
	require.NoError(t, err)
	require.NotEmpty(t, ups)

	for _, up := range ups {
		down := strings.TrimSuffix(up, ".up.sql") + ".down.sql"
		_, err := fs.Stat(migrationFS, down)
		assert.NoError(t, err, "missing down migration for %s", up)
	}
}

func TestIdentityMigrationSeedsGroups(t *testing.T) {
	body, err := fs.ReadFile(migrationFS, "migrations/000001_identity.up.sql")
	require.NoError(t, err)

	sql := string(body)
	assert.Contains(t, sql, "'AUTHORS'")
	assert.Contains(t, sql, "'READERS'")
	assert.Contains(t, sql, "PRIMARY KEY (account_id, group_name)")
}

func TestBuildConnectionStringDefaultsSSLMode(t *testing.T) {
	db := NewPostgresDB(&DBConfig{Host: "localhost", Port: 5432, Username: "u", Password: "p", DBName: "blog"})
	assert.Equal(t, "postgresql://u:p@localhost:5432/blog?sslmode=disable", db.buildConnectionString())
}
