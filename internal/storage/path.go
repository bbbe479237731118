package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// AppDirName is the per-user directory holding settings, logs and the catalog.
const AppDirName = "gorgon-desktop"

// DataDir returns the directory to store application data, creating it if needed.
// GORGON_DATA_DIR overrides the platform default:
// - Linux: $XDG_DATA_HOME/gorgon-desktop or ~/.local/share/gorgon-desktop
// - macOS: ~/Library/Application Support/gorgon-desktop
// - Windows: %APPDATA%/gorgon-desktop (falls back to UserConfigDir)
func DataDir() (string, error) {
	dir, err := resolveDataDir(runtime.GOOS)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("ensure data directory: %w", err)
	}
	return dir, nil
}

func resolveDataDir(goos string) (string, error) {
	if override := os.Getenv("GORGON_DATA_DIR"); override != "" {
		return override, nil
	}
	switch goos {
	case "darwin":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		return filepath.Join(home, "Library", "Application Support", AppDirName), nil
	case "windows":
		base := os.Getenv("APPDATA")
		if base == "" {
			var err error
			base, err = os.UserConfigDir()
			if err != nil {
				return "", fmt.Errorf("resolve config directory: %w", err)
			}
		}
		return filepath.Join(base, AppDirName), nil
	default:
		base := os.Getenv("XDG_DATA_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("resolve home directory: %w", err)
			}
			base = filepath.Join(home, ".local", "share")
		}
		return filepath.Join(base, AppDirName), nil
	}
}

// CatalogPath is the SQLite database holding the workspace catalog.
func CatalogPath(dataDir string) string { return filepath.Join(dataDir, "catalog.db") }

// SettingsPath is the YAML settings file.
func SettingsPath(dataDir string) string { return filepath.Join(dataDir, "settings.yaml") }

// LogPath is the default rotated log file.
func LogPath(dataDir string) string { return filepath.Join(dataDir, "logs", "gorgon.log") }
