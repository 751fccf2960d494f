package config

import (
	"os"
	"path/filepath"

	"github.com/xdg/tagbridge/internal/pathutil"
)

// Dir returns the configuration directory: $XDG_CONFIG_HOME/tagbridge,
// defaulting to ~/.config/tagbridge.
func Dir() string {
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		base = "~/.config"
	}
	return filepath.Join(pathutil.ExpandHome(base), "tagbridge")
}

// Path returns the default configuration file path.
func Path() string {
	return filepath.Join(Dir(), "config.yaml")
}
