// Package config provides configuration utilities for the application.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Default file names inside the data directory.
const (
	SnapshotFile = "users.csv"
	JournalFile  = "transactions.csv"
)

// ExpandPath expands ~ and environment variables in a file path.
// It handles both ~ for home directory and $VAR style environment
// variables.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			path = filepath.Join(home, path[2:])
		}
	} else if path == "~" {
		home, err := os.UserHomeDir()
		if err == nil {
			path = home
		}
	}

	return os.ExpandEnv(path)
}

// DataDir resolves the data directory from config, defaulting to
// ~/.local/share/pennywise, and ensures it exists.
func DataDir() (string, error) {
	dir := viper.GetString("data.dir")
	if dir == "" {
		dir = "~/.local/share/pennywise"
	}
	dir = ExpandPath(dir)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// SnapshotPath returns the account snapshot file path.
func SnapshotPath(dataDir string) string {
	return filepath.Join(dataDir, SnapshotFile)
}

// JournalPath returns the transaction journal file path.
func JournalPath(dataDir string) string {
	return filepath.Join(dataDir, JournalFile)
}

// ForecastHorizonDays returns the configured projection window, zero
// meaning "use the default".
func ForecastHorizonDays() int {
	return viper.GetInt("forecast.horizon_days")
}
