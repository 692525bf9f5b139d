// Package config loads keystash configuration from environment variables.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
)

// Backend names accepted by KEYSTASH_BACKEND and --backend.
const (
	BackendFile = "file"
	BackendBolt = "bolt"
)

const (
	vaultFileName = "vault"
	boltFileName  = "vault.db"
	hashFileName  = "hash"
)

// Config holds the keystash configuration.
type Config struct {
	DataDir  string
	Backend  string
	LogLevel slog.Level
}

// VaultPath returns the location of the vault for the configured backend.
func (c *Config) VaultPath() string {
	if c.Backend == BackendBolt {
		return filepath.Join(c.DataDir, boltFileName)
	}
	return filepath.Join(c.DataDir, vaultFileName)
}

// HashPath returns the location of the master-password hash file.
func (c *Config) HashPath() string {
	return filepath.Join(c.DataDir, hashFileName)
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.DataDir == "" {
		return fmt.Errorf("data directory must not be empty")
	}
	switch c.Backend {
	case BackendFile, BackendBolt:
	default:
		return fmt.Errorf("unknown backend %q (want %q or %q)", c.Backend, BackendFile, BackendBolt)
	}
	return nil
}

// Load reads configuration from environment variables. The result is not
// validated; call Validate after applying overrides.
// Optional variables with defaults: KEYSTASH_DATA_DIR ($XDG_DATA_HOME/keystash,
// else ~/.local/share/keystash), KEYSTASH_BACKEND (file), KEYSTASH_LOG_LEVEL (warn).
func Load() (*Config, error) {
	dataDir, err := defaultDataDir()
	if err != nil {
		return nil, err
	}
	if v, ok := os.LookupEnv("KEYSTASH_DATA_DIR"); ok && v != "" {
		dataDir = v
	}

	backend := BackendFile
	if v, ok := os.LookupEnv("KEYSTASH_BACKEND"); ok && v != "" {
		backend = strings.ToLower(strings.TrimSpace(v))
	}

	level := slog.LevelWarn
	if v, ok := os.LookupEnv("KEYSTASH_LOG_LEVEL"); ok && v != "" {
		if err := level.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("KEYSTASH_LOG_LEVEL has invalid level %q: %w", v, err)
		}
	}

	return &Config{
		DataDir:  dataDir,
		Backend:  backend,
		LogLevel: level,
	}, nil
}

func defaultDataDir() (string, error) {
	if v := os.Getenv("XDG_DATA_HOME"); v != "" {
		return filepath.Join(v, "keystash"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("locating home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "keystash"), nil
}
