// Package config loads application configuration: defaults in code, an
// optional TOML file at ~/.khata/config.toml, and environment overrides.
package config

import (
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/khata-pos/khata/internal/logger"
)

// Config is the full application configuration.
type Config struct {
	Storage StorageConfig `toml:"storage"`
	API     APIConfig     `toml:"api"`
	Log     logger.Config `toml:"log"`
}

// StorageConfig locates the durable local store.
type StorageConfig struct {
	Dir string `toml:"dir"`
}

// APIConfig configures the HTTP page shell.
type APIConfig struct {
	Host    string `toml:"host"`
	Port    int    `toml:"port"`
	Metrics bool   `toml:"metrics"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		Storage: StorageConfig{Dir: defaultHome()},
		API: APIConfig{
			Host:    "127.0.0.1",
			Port:    8417,
			Metrics: true,
		},
		Log: logger.DefaultConfig(),
	}
}

// Load builds the effective configuration: defaults, then the TOML file
// if present, then environment variables. A missing config file is not
// an error.
func Load(path string) (Config, error) {
	// Best effort: a .env in the working directory, if any.
	_ = godotenv.Load()

	cfg := DefaultConfig()

	if path == "" {
		path = filepath.Join(defaultHome(), "config.toml")
	}
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return cfg, err
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

// applyEnv overlays KHATA_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("KHATA_HOME"); v != "" {
		cfg.Storage.Dir = v
	}
	if v := os.Getenv("KHATA_API_HOST"); v != "" {
		cfg.API.Host = v
	}
	if v := os.Getenv("KHATA_API_PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.API.Port = port
		}
	}
	if v := os.Getenv("KHATA_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("KHATA_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}

// defaultHome returns the default data directory.
func defaultHome() string {
	if env := os.Getenv("KHATA_HOME"); env != "" {
		return env
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".khata")
}
