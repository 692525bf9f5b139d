package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// allConfigKeys lists every env var that Load() reads.
var allConfigKeys = []string{
	"KEYSTASH_DATA_DIR",
	"KEYSTASH_BACKEND",
	"KEYSTASH_LOG_LEVEL",
	"XDG_DATA_HOME",
}

// isolateConfigEnv unsets all config env vars so tests don't inherit values
// from the host environment. t.Cleanup restores original values.
func isolateConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range allConfigKeys {
		if orig, ok := os.LookupEnv(key); ok {
			t.Cleanup(func() { os.Setenv(key, orig) })
		} else {
			t.Cleanup(func() { os.Unsetenv(key) })
		}
		os.Unsetenv(key)
	}
}

func TestLoad_Defaults(t *testing.T) {
	isolateConfigEnv(t)
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, ".local", "share", "keystash"), cfg.DataDir)
	assert.Equal(t, BackendFile, cfg.Backend)
	assert.Equal(t, slog.LevelWarn, cfg.LogLevel)
	assert.Equal(t, filepath.Join(cfg.DataDir, "vault"), cfg.VaultPath())
	assert.Equal(t, filepath.Join(cfg.DataDir, "hash"), cfg.HashPath())
}

func TestLoad_XDGDataHome(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("XDG_DATA_HOME", "/tmp/xdg")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "keystash"), cfg.DataDir)
}

func TestLoad_Success(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("KEYSTASH_DATA_DIR", "/tmp/ks")
	t.Setenv("KEYSTASH_BACKEND", " Bolt ")
	t.Setenv("KEYSTASH_LOG_LEVEL", "debug")

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "/tmp/ks", cfg.DataDir)
	assert.Equal(t, BackendBolt, cfg.Backend)
	assert.Equal(t, slog.LevelDebug, cfg.LogLevel)
	assert.Equal(t, filepath.Join("/tmp/ks", "vault.db"), cfg.VaultPath())
}

func TestLoad_InvalidBackend(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("KEYSTASH_DATA_DIR", "/tmp/ks")
	t.Setenv("KEYSTASH_BACKEND", "postgres")

	cfg, err := Load()
	require.NoError(t, err)

	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown backend")

	cfg.Backend = BackendFile
	assert.NoError(t, cfg.Validate())
}

func TestLoad_InvalidLogLevel(t *testing.T) {
	isolateConfigEnv(t)
	t.Setenv("KEYSTASH_DATA_DIR", "/tmp/ks")
	t.Setenv("KEYSTASH_LOG_LEVEL", "loud")

	_, err := Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "KEYSTASH_LOG_LEVEL")
}

func TestValidate_EmptyDataDir(t *testing.T) {
	cfg := &Config{Backend: BackendFile}
	assert.Error(t, cfg.Validate())
}
