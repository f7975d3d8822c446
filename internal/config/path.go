package config

import (
	"os"
	"path/filepath"
)

// DefaultDataDir returns the default data directory for the host OS.
// XDG_DATA_HOME wins when set; without a home directory the store lands in
// ./data.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "chlog")
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "./data"
	}
	candidates := []struct{ marker, dir string }{
		{"/var/lib", "/var/lib/chlog"},
		{filepath.Join(home, "Library"), filepath.Join(home, "Library", "Application Support", "chlog")},
		{filepath.Join(home, "AppData"), filepath.Join(home, "AppData", "Local", "chlog")},
	}
	for _, c := range candidates {
		if isDir(c.marker) {
			return c.dir
		}
	}
	return filepath.Join(home, ".chlog")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
