package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// GetHome returns the lgrep home directory
// Priority order:
//  1. LGREP_HOME environment variable (if set)
//  2. $HOME/.lgrep
//
// The directory is created if it doesn't exist
func GetHome() (string, error) {
	if home := os.Getenv("LGREP_HOME"); home != "" {
		return home, nil
	}

	userHome, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get user home directory: %w", err)
	}

	home := filepath.Join(userHome, ".lgrep")
	if err := os.MkdirAll(home, 0755); err != nil {
		return "", fmt.Errorf("create lgrep home directory: %w", err)
	}
	return home, nil
}

// GetHistoryDBPath returns the default path of the run history database
// Always returns: $LGREP_HOME/history.db
func GetHistoryDBPath() (string, error) {
	home, err := GetHome()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, "history.db"), nil
}
