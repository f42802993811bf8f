// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands ~ and environment variables in a file path.
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

// DefaultDBPath is where the hierarchy database lives when the config
// does not name one.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "sourcify.db"
	}
	return filepath.Join(home, ".local", "share", "sourcify", "sourcify.db")
}
