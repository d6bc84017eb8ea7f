package config

import (
	"os"
	"path/filepath"
	"runtime"
)

const appName = "duedate"

// DefaultDir returns the OS-appropriate directory for duedate's config
// file and log.
//
//   - macOS:   ~/Library/Application Support/duedate
//   - Linux:   $XDG_CONFIG_HOME/duedate (fallback ~/.config/duedate)
//   - Windows: %LOCALAPPDATA%\duedate (fallback %APPDATA%\duedate)
func DefaultDir() string {
	return defaultDirForOS(runtime.GOOS)
}

func defaultDirForOS(goos string) string {
	home, _ := os.UserHomeDir()

	switch goos {
	case "darwin":
		return filepath.Join(home, "Library", "Application Support", appName)
	case "windows":
		if dir := os.Getenv("LOCALAPPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		if dir := os.Getenv("APPDATA"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, appName)
	default: // linux, freebsd, etc.
		if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
			return filepath.Join(dir, appName)
		}
		return filepath.Join(home, ".config", appName)
	}
}
