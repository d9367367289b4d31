package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	path := writeConfig(t, `
jwt:
  secret: s3cret
db:
  driver: sqlite
  dsn: "file:padel.db"
`)
	c, err := LoadE(path)
	require.NoError(t, err)

	assert.Equal(t, "s3cret", c.JWT.Secret)
	assert.Equal(t, 60, c.JWT.AccessTokenTTLMin)
	assert.Equal(t, "sqlite", c.DB.Driver)
	assert.Equal(t, "file:padel.db", c.DB.DSN)
	assert.Equal(t, 8080, c.App.HTTP.Port)
	assert.Equal(t, 300, c.Redis.UserTTLSec)
	assert.Equal(t, int64(300), c.Limits.MaxConcurrent)
	assert.Equal(t, []string{"*"}, c.Limits.CORSOrigins)
	assert.False(t, c.App.Production())
}

func TestLoadEnvOverrides(t *testing.T) {
	path := writeConfig(t, `
app:
  env: development
jwt:
  secret: from-file
`)
	t.Setenv("APP_JWT_SECRET", "from-env")
	t.Setenv("APP_APP_ENV", "production")

	c, err := LoadE(path)
	require.NoError(t, err)
	assert.Equal(t, "from-env", c.JWT.Secret)
	assert.True(t, c.App.Production())
}

func TestLoadRequiresSecret(t *testing.T) {
	_, err := LoadE(writeConfig(t, "app:\n  name: x\n"))
	assert.Error(t, err)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := LoadE(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
