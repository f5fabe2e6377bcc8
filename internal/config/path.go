// Package config provides configuration utilities for the application.
package config

import (
	"os"
	"path/filepath"
	"strings"
)

// AppName names the cashier directories under the user's config and data homes.
const AppName = "cashier"

// ExpandPath expands ~ and environment variables in a file path.
func ExpandPath(path string) string {
	if path == "" {
		return path
	}

	if path == "~" || strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			path = home + path[1:]
		}
	}

	return os.ExpandEnv(path)
}

// ConfigDir returns the directory holding config.yaml and generated
// certificates: $XDG_CONFIG_HOME/cashier, or ~/.config/cashier.
func ConfigDir() string {
	return appDir("XDG_CONFIG_HOME", ".config")
}

// DataDir returns the directory holding the database: $XDG_DATA_HOME/cashier,
// or ~/.local/share/cashier.
func DataDir() string {
	return appDir("XDG_DATA_HOME", filepath.Join(".local", "share"))
}

func appDir(env, fallback string) string {
	if base := os.Getenv(env); base != "" {
		return filepath.Join(ExpandPath(base), AppName)
	}
	return filepath.Join(ExpandPath("~"), fallback, AppName)
}
