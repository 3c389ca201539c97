package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, EnvDevelopment, cfg.Server.Env)
	assert.Equal(t, 5*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(5), cfg.Feed.DefaultLimit)
	assert.Equal(t, "community", cfg.Category.CommunitySlug)
	assert.Equal(t, 72*time.Hour, cfg.Auth.ExpiresIn)
}

func TestLoadConfigEnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	yml := []byte("mongo:\n  database: fromfile\nfeed:\n  default_limit: 7\n  max_limit: 20\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yml, 0o600))

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("MONGO_DB", "fromenv")
	t.Setenv("JWT_EXPIRES_IN", "90m")
	t.Setenv("UNRELATED_VARIABLE", "ignored")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "fromenv", cfg.Mongo.Database)
	assert.Equal(t, int64(7), cfg.Feed.DefaultLimit)
	assert.Equal(t, int64(20), cfg.Feed.MaxLimit)
	assert.Equal(t, 90*time.Minute, cfg.Auth.ExpiresIn)
}

func TestLoadConfigRequiresSecret(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("JWT_SECRET", "")

	_, err := LoadConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET")
}

func TestValidate(t *testing.T) {
	cfg := defaultConfig()
	cfg.Auth.JWTSecret = "x"
	require.NoError(t, cfg.Validate())

	cfg.Server.Env = "staging"
	cfg.Feed.MaxLimit = 1
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "feed limits")
}

func TestEnvTransformFunc(t *testing.T) {
	assert.Equal(t, "mongo.uri", envTransformFunc("MONGO_URI"))
	assert.Equal(t, "category.community_slug", envTransformFunc("COMMUNITY_SLUG"))
	assert.Empty(t, envTransformFunc("HOME"))
}
