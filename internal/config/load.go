package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/pathutil"
)

// Load reads the configuration from Path().
func Load() (*Config, error) {
	return LoadFrom(Path())
}

// LoadFrom reads, validates and path-expands the configuration at path.
// A missing file yields the defaults.
func LoadFrom(path string) (*Config, error) {
	clog.Debug("config: loading %s", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		clog.Debug("config: %s not found, using defaults", path)
		data = nil
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}
	if err := Validate(cfg); err != nil {
		return nil, fmt.Errorf("load config %s: %w", path, err)
	}

	expandPaths(cfg)
	return cfg, nil
}

// expandPaths resolves ~ and $VAR in path fields and fills in the default
// log locations.
func expandPaths(cfg *Config) {
	cfg.Tool.Path = pathutil.Expand(cfg.Tool.Path)
	cfg.Tool.TempDir = pathutil.Expand(cfg.Tool.TempDir)

	cfg.Log.File = pathutil.Expand(cfg.Log.File)
	if cfg.Log.File == "" {
		cfg.Log.File = clog.DefaultLogPath()
	}
	cfg.Audit.File = pathutil.Expand(cfg.Audit.File)
	if cfg.Audit.File == "" {
		cfg.Audit.File = filepath.Join(clog.StateDir(), "audit.log")
	}
}
