package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Backends for reading repositories.
const (
	BackendGoGit = "go-git"
	BackendGit   = "git"
)

// Config holds the git-hooks user configuration.
type Config struct {
	SearchPaths []string `toml:"search_paths"` // fallback hook directories, relative to the git dir
	Backend     string   `toml:"backend"`      // "go-git" or "git"
	Verbose     bool     `toml:"verbose"`
}

// Default returns the default configuration.
func Default() Config {
	return Config{
		Backend: BackendGoGit,
	}
}

// Path returns the default config file location:
// $XDG_CONFIG_HOME/git-hooks/config.toml, or ~/.config/git-hooks/config.toml.
func Path() (string, error) {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "git-hooks", "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "git-hooks", "config.toml"), nil
}

// Load reads the config file at path on top of Default.
// A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, err
	}

	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks field values.
func (c Config) Validate() error {
	switch c.Backend {
	case BackendGoGit, BackendGit:
		return nil
	default:
		return fmt.Errorf("backend must be %q or %q, got: %q", BackendGoGit, BackendGit, c.Backend)
	}
}
