package util

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~" to the user's home directory. Paths of
// the form "~user/..." are returned unchanged.
func ExpandPath(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") && !strings.HasPrefix(path, `~\`) {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	rest := strings.TrimLeft(path[1:], `/\`)
	if rest == "" {
		return home
	}
	rest = strings.ReplaceAll(rest, `\`, "/")
	return filepath.Join(home, filepath.FromSlash(rest))
}

// ConfigDir returns the directory holding bow's configuration:
// $XDG_CONFIG_HOME/bow when set, otherwise ~/.config/bow.
func ConfigDir() string {
	return configDir(os.Getenv)
}

func configDir(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(ExpandPath(xdg), "bow")
	}
	return ExpandPath(filepath.Join("~", ".config", "bow"))
}
