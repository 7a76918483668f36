package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestExpandPath_ConfigLocations(t *testing.T) {
	t.Parallel()

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no user home directory available")
	}

	// --config values and the default location as bow resolves them.
	tests := map[string]string{
		"~/.config/bow/config.toml": filepath.Join(home, ".config", "bow", "config.toml"),
		"/etc/bow/config.yaml":      "/etc/bow/config.yaml",
		"bow.toml":                  "bow.toml",
		"~other/bow.toml":           "~other/bow.toml",
	}
	for in, want := range tests {
		if got := ExpandPath(in); got != want {
			t.Errorf("ExpandPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestConfigDir(t *testing.T) {
	t.Parallel()

	xdg := func(k string) string {
		if k == "XDG_CONFIG_HOME" {
			return "/tmp/xdg"
		}
		return ""
	}
	if got := configDir(xdg); got != filepath.Join("/tmp/xdg", "bow") {
		t.Errorf("configDir(XDG) = %q", got)
	}

	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		t.Skip("no user home directory available")
	}
	none := func(string) string { return "" }
	if got := configDir(none); got != filepath.Join(home, ".config", "bow") {
		t.Errorf("configDir() = %q", got)
	}
}
