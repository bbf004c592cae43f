package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Helper()
	t.Setenv("APP_NAME", "talentbridge")
	t.Setenv("APP_ENV", "test")
	t.Setenv("HTTP_PORT", "8080")
	t.Setenv("JWT_ACCESS_SECRET", "access")
	t.Setenv("JWT_REFRESH_SECRET", "refresh")
}

func TestLoad_MissingRequired(t *testing.T) {
	t.Setenv("APP_NAME", "")
	t.Setenv("APP_ENV", "")
	t.Setenv("HTTP_PORT", "")
	t.Setenv("JWT_ACCESS_SECRET", "")
	t.Setenv("JWT_REFRESH_SECRET", "")

	_, err := LoadFrom(viper.New(), "")
	require.Error(t, err)
	assert.True(t, IsMissingRequired(err))
	assert.Contains(t, err.Error(), "APP_NAME")
	assert.Contains(t, err.Error(), "JWT_REFRESH_SECRET")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := LoadFrom(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.HTTPPort)
	assert.Equal(t, "5432", cfg.Database.DBPort)
	assert.Equal(t, 15*time.Minute, cfg.JWT.AccessExpiresIn)
	assert.Equal(t, 168*time.Hour, cfg.JWT.RefreshExpiresIn)
	assert.Equal(t, 600*time.Second, cfg.Redis.TTL)
	assert.Equal(t, 4, cfg.Notify.Workers)
	assert.Equal(t, "migrations", cfg.Paths.MigrationsDir)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	setRequired(t)
	t.Setenv("REDIS_HOST", "cache.internal")

	dir := t.TempDir()
	file := filepath.Join(dir, "talentbridge.yaml")
	content := "REDIS_HOST: from-file\nNOTIFY_WORKERS: 9\nJWT_ACCESS_EXPIRES_IN: 30m\n"
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	cfg, err := LoadFrom(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "cache.internal", cfg.Redis.Host)
	assert.Equal(t, 9, cfg.Notify.Workers)
	assert.Equal(t, 30*time.Minute, cfg.JWT.AccessExpiresIn)
}
