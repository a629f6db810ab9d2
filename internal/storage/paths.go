// Package storage persists recorded attack queries in BadgerDB so they can
// be replayed against the generator later.
package storage

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "chessattacks"

// EnvDatabaseDir overrides the database directory when set.
const EnvDatabaseDir = "CHESSATTACKS_DB"

// GetDataDir returns the platform-specific data directory for the application.
// - macOS: ~/Library/Application Support/chessattacks/
// - Linux: $XDG_DATA_HOME/chessattacks/ or ~/.local/share/chessattacks/
// - Windows: %APPDATA%/chessattacks/
func GetDataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName)
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// GetDatabaseDir returns the directory for the BadgerDB database.
// CHESSATTACKS_DB takes precedence over the platform data directory.
func GetDatabaseDir() (string, error) {
	if dir := os.Getenv(EnvDatabaseDir); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
		return dir, nil
	}

	dataDir, err := GetDataDir()
	if err != nil {
		return "", err
	}

	dbDir := filepath.Join(dataDir, "db")
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return "", err
	}
	return dbDir, nil
}
