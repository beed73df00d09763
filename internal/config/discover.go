package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// EnvConfigPath names a config file explicitly and disables the search.
const EnvConfigPath = "PAGECOMPLETE_CONFIG"

// ErrNotFound is returned by Discover when none of the searched files exist.
var ErrNotFound = errors.New("config not found")

// DefaultPath is where "pagecomplete init" writes the config:
// $XDG_CONFIG_HOME/pagecomplete/config.toml, falling back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "./config.toml"
		}
		dir = filepath.Join(home, ".config")
	}
	return filepath.Join(dir, "pagecomplete", "config.toml")
}

// searchPaths lists the candidates in priority order: the working
// directory (an upload run next to its data), the user's config dir, then
// the system-wide file used by a "serve" deployment.
func searchPaths() []string {
	return []string{"./config.toml", DefaultPath(), "/etc/pagecomplete/config.toml"}
}

// Discover returns the config file to load. $PAGECOMPLETE_CONFIG wins and
// must exist; otherwise the first existing entry of searchPaths is used.
func Discover() (string, error) {
	if p := os.Getenv(EnvConfigPath); p != "" {
		if _, err := os.Stat(p); err != nil {
			return "", fmt.Errorf("%s=%s: %w", EnvConfigPath, p, err)
		}
		return p, nil
	}

	paths := searchPaths()
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w (searched %s)", ErrNotFound, strings.Join(paths, ", "))
}

// Resolve loads the config at path, or discovers one when path is empty.
// With nothing to discover, the built-in defaults are returned so the CLI
// works without any setup.
func Resolve(path string) (*Config, error) {
	if path == "" {
		found, err := Discover()
		if errors.Is(err, ErrNotFound) {
			return Default(), nil
		}
		if err != nil {
			return nil, err
		}
		path = found
	}
	return Load(path)
}
