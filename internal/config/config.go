// Package config provides runtime configuration values for the inventory CLI.
package config

import (
	"os"

	"github.com/joho/godotenv"
)

// Config holds file locations and logging knobs.
type Config struct {
	// DataDir is the directory holding the SQLite store file.
	DataDir string
	// SnapshotPath is the seed CSV imported when the menu starts.
	SnapshotPath string
	// BackupPath is the default destination CSV for backups.
	BackupPath string
	// LogLevel is the minimum level emitted by the logger.
	LogLevel string
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Load collects configuration from the environment with defaults.
// A .env file in the working directory is applied first when present.
func Load() Config {
	_ = godotenv.Load()
	return Config{
		DataDir:      getenv("INVENTORY_DATA_DIR", "./data"),
		SnapshotPath: getenv("INVENTORY_SNAPSHOT", "inventory.csv"),
		BackupPath:   getenv("INVENTORY_BACKUP", "backup.csv"),
		LogLevel:     getenv("LOG_LEVEL", "info"),
	}
}
