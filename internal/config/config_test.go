package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setAuth0Env(t *testing.T) {
	t.Helper()
	t.Setenv("AUTH0_CLIENT_ID", "client")
	t.Setenv("AUTH0_CLIENT_SECRET", "secret")
	t.Setenv("AUTH0_DOMAIN", "example.eu.auth0.com")
	t.Setenv("AUTH0_LOGOUT_URL", "https://example.eu.auth0.com/v2/logout")
	t.Setenv("AUTH0_RETURN_TO_URL", "http://localhost:3000")
}

func TestLoadDefaults(t *testing.T) {
	setAuth0Env(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "sqlite", cfg.DBType)
	assert.Equal(t, "agsdb.db", cfg.DBDatabase)
	assert.Equal(t, 5, cfg.DBConnectionLimit)
	assert.Equal(t, "http://localhost:3000", cfg.BaseURL)
	assert.Equal(t, "http://localhost:3000/callback", cfg.Auth0.CallbackURL)
	assert.False(t, cfg.SecureCookies())
}

func TestLoadMissingAuth0(t *testing.T) {
	for _, name := range []string{
		"AUTH0_CLIENT_ID",
		"AUTH0_CLIENT_SECRET",
		"AUTH0_DOMAIN",
		"AUTH0_LOGOUT_URL",
		"AUTH0_RETURN_TO_URL",
	} {
		t.Run(name, func(t *testing.T) {
			setAuth0Env(t)
			t.Setenv(name, "")

			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), name)
		})
	}
}

func TestLoadDatabaseSkipsAuth0(t *testing.T) {
	t.Setenv("AUTH0_CLIENT_ID", "")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Empty(t, cfg.Auth0.ClientID)
}

func TestLoadDatabaseDefaultPorts(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_USER", "agsdb")

	cfg, err := LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "5432", cfg.DBPort)

	t.Setenv("DB_TYPE", "mysql")
	cfg, err = LoadDatabase()
	require.NoError(t, err)
	assert.Equal(t, "3306", cfg.DBPort)
}

func TestLoadDatabaseRequiresUserForServerDatabases(t *testing.T) {
	t.Setenv("DB_TYPE", "postgres")
	t.Setenv("DB_USER", "")

	_, err := LoadDatabase()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DB_USER")
}

func TestLoadEnvFile(t *testing.T) {
	setAuth0Env(t)
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("UPLOAD_DIR=/srv/ags\n"), 0o600))
	t.Setenv("ENV_FILE", path)
	t.Cleanup(func() { os.Unsetenv("UPLOAD_DIR") })

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "/srv/ags", cfg.UploadDir)
}

func TestLoadEnvFileMissing(t *testing.T) {
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "nope.env"))

	_, err := LoadDatabase()
	require.Error(t, err)
}

func TestSecureCookies(t *testing.T) {
	cfg := &Config{BaseURL: "https://ags.example.com"}
	assert.True(t, cfg.SecureCookies())
}
