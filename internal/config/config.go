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
	// DatasetPath is the JSONL training file analyzed by the dashboard.
	DatasetPath string
	// DatabasePath is the SQLite file recording analysis runs.
	DatabasePath string
	// WatchDebounce is how long to wait after a file event before
	// re-analyzing, so editors that write in bursts trigger one run.
	WatchDebounce time.Duration
	// Limits are the token accounting and cost estimation constants.
	Limits Limits
}

// Default values
const (
	defaultWatchDebounce = 500 * time.Millisecond
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
		DatasetPath:   getEnvString("DATASET_PATH", getDefaultDatasetPath()),
		DatabasePath:  getEnvString("DATABASE_PATH", getDefaultDatabasePath()),
		WatchDebounce: getEnvDuration("WATCH_DEBOUNCE", defaultWatchDebounce),
		Limits: Limits{
			MaxContextLength:  getEnvInt("MAX_CONTEXT_LENGTH", DefaultMaxContextLength),
			TargetEpochs:      getEnvInt("TARGET_EPOCHS", DefaultTargetEpochs),
			MinTargetExamples: getEnvInt("MIN_TARGET_EXAMPLES", DefaultMinTargetExamples),
			MaxTargetExamples: getEnvInt("MAX_TARGET_EXAMPLES", DefaultMaxTargetExamples),
			MinDefaultEpochs:  getEnvInt("MIN_DEFAULT_EPOCHS", DefaultMinEpochs),
			MaxDefaultEpochs:  getEnvInt("MAX_DEFAULT_EPOCHS", DefaultMaxEpochs),
		},
	}

	// Ensure database directory exists
	if err := ensureDir(filepath.Dir(cfg.DatabasePath)); err != nil {
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
			filepath.Join(home, ".config", "finetune-prep-tui", ".env"),
			filepath.Join(home, ".finetune-prep", ".env"),
		)
	}

	// Parent directory (useful for development)
	if cwd, err := os.Getwd(); err == nil {
		paths = append(paths, filepath.Join(filepath.Dir(cwd), ".env"))
	}

	return paths
}

// getDefaultDatasetPath returns the default JSONL dataset path.
func getDefaultDatasetPath() string {
	return "train.jsonl"
}

// getDefaultDatabasePath returns the default path for the SQLite database.
func getDefaultDatabasePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "runs.db"
	}
	return filepath.Join(home, ".config", "finetune-prep-tui", "runs.db")
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

// getEnvDuration retrieves a duration environment variable or returns the default.
// Accepts values like "30s", "1m", "500ms".
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		// Try parsing as seconds if no unit specified
		if secs, err := strconv.Atoi(value); err == nil {
			return time.Duration(secs) * time.Second
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
