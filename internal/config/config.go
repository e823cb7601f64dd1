// Package config contains everything related to configuration
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds the application configuration.
type Config struct {
	// DataDir is the directory holding the monthly costs-<year>-<month>.json files.
	DataDir string
	// CacheDBPath is the SQLite snapshot cache location.
	CacheDBPath string
	// Year selects which calendar year's files are loaded.
	Year int
	// CostAlertThreshold is the monthly grand-total cost (USD) above which
	// a desktop notification fires. Zero disables alerts.
	CostAlertThreshold float64
	// WatchEnabled controls the data directory file watcher.
	WatchEnabled bool
}

// Default values
const (
	defaultDataDir = "/data"
)

// Load reads configuration from .env files and environment variables.
func Load() (*Config, error) {
	// Try loading .env from multiple locations
	for _, path := range getEnvPaths() {
		if _, err := os.Stat(path); err == nil {
			_ = godotenv.Load(path)
			break
		}
	}

	cfg := &Config{
		DataDir:            getEnvString("COSTWATCH_DATA_DIR", defaultDataDir),
		CacheDBPath:        getEnvString("CACHE_DB_PATH", getDefaultCachePath()),
		Year:               getEnvInt("COSTWATCH_YEAR", time.Now().Year()),
		CostAlertThreshold: getEnvFloat("COST_ALERT_THRESHOLD", 0),
		WatchEnabled:       getEnvBool("WATCH_ENABLED", true),
	}

	// Ensure cache directory exists
	if err := ensureDir(filepath.Dir(cfg.CacheDBPath)); err != nil {
		return nil, err
	}

	return cfg, nil
}

// getEnvPaths returns a list of paths to check for .env files.
func getEnvPaths() []string {
	var paths []string

	// Current directory
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(cwd, ".env"))
	}

	// Home directory locations
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".config", "costwatch", ".env"),
			filepath.Join(home, ".costwatch", ".env"),
		)
	}

	return paths
}

// getDefaultCachePath returns the default path for the snapshot cache.
func getDefaultCachePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "snapshots.db"
	}
	return filepath.Join(home, ".config", "costwatch", "snapshots.db")
}

// getEnvString retrieves a string environment variable or returns the default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns the default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

// getEnvFloat retrieves a float environment variable or returns the default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

// getEnvBool retrieves a boolean environment variable or returns the default.
// Accepts values like "1", "true", "FALSE".
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

// ensureDir creates a directory and all parent directories if they don't exist.
func ensureDir(path string) error {
	if path == "" || path == "." {
		return nil
	}
	return os.MkdirAll(path, 0o750)
}
