package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultDataDirXDG(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/custom/data")
	if got := DefaultDataDir(); got != "/custom/data/chlog" {
		t.Fatalf("got %s", got)
	}
}

func TestDefaultDataDirNoHome(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	t.Setenv("HOME", "")
	if got := DefaultDataDir(); got != "./data" {
		t.Fatalf("expected ./data fallback, got %s", got)
	}
}

func TestDefaultDataDirShape(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "")
	got := DefaultDataDir()
	if got != "./data" && !filepath.IsAbs(got) {
		t.Fatalf("expected absolute path, got %s", got)
	}
	if base := filepath.Base(got); base != "chlog" && base != ".chlog" && base != "data" {
		t.Fatalf("unexpected base %q in %s", base, got)
	}
	if DefaultDataDir() != got {
		t.Fatalf("DefaultDataDir is not stable")
	}
}

func TestIsDir(t *testing.T) {
	tests := []struct {
		name string
		path string
		want bool
	}{
		{"existing directory", ".", true},
		{"missing path", "/non/existent/path/that/does/not/exist", false},
		{"regular file", os.Args[0], false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := isDir(tt.path); got != tt.want {
				t.Fatalf("isDir(%s) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}
