package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func unsetEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BACHELORIOUS_STORAGE_DRIVER",
		"BACHELORIOUS_DATA_DIR",
		"BACHELORIOUS_LOG_LEVEL",
		"BACHELORIOUS_AUTH_DELAY",
		"BACHELORIOUS_OPERATION_TIMEOUT",
	} {
		if value, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { _ = os.Setenv(key, value) })
		} else {
			t.Cleanup(func() { _ = os.Unsetenv(key) })
		}
		_ = os.Unsetenv(key)
	}
}

func TestNewConfigDefaults(t *testing.T) {
	unsetEnv(t)
	t.Setenv("HOME", t.TempDir())

	cfg, err := NewConfig("")
	require.NoError(t, err)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, time.Duration(0), cfg.AuthDelay)
	assert.Equal(t, time.Minute, cfg.OperationTimeout)
	assert.Equal(t, filepath.Join(os.Getenv("HOME"), ".bachelorious"), cfg.DataDir)
	assert.Equal(t, filepath.Join(cfg.DataDir, "bachelorious.db"), cfg.SQLitePath)
}

func TestNewConfigFromEnv(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	t.Setenv("BACHELORIOUS_STORAGE_DRIVER", "file")
	t.Setenv("BACHELORIOUS_DATA_DIR", dir)
	t.Setenv("BACHELORIOUS_AUTH_DELAY", "1s")

	cfg, err := NewConfig(filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DriverFile, cfg.StorageDriver)
	assert.Equal(t, dir, cfg.DataDir)
	assert.Equal(t, time.Second, cfg.AuthDelay)
}

func TestNewConfigFromDotenv(t *testing.T) {
	unsetEnv(t)
	dir := t.TempDir()
	dotenv := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(dotenv, []byte("BACHELORIOUS_STORAGE_DRIVER=memory\nBACHELORIOUS_LOG_LEVEL=debug\n"), 0o600))

	cfg, err := NewConfig(dotenv)
	require.NoError(t, err)
	assert.Equal(t, DriverMemory, cfg.StorageDriver)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Empty(t, cfg.SQLitePath)
}

func TestResolveDefaultsRejects(t *testing.T) {
	tests := map[string]Config{
		"unknown driver": {StorageDriver: "postgres"},
		"negative delay": {StorageDriver: DriverMemory, AuthDelay: -time.Second},
	}
	for name, cfg := range tests {
		t.Run(name, func(t *testing.T) {
			require.Error(t, cfg.ResolveDefaults())
		})
	}
}
