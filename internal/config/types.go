// Package config loads the bridge configuration from
// $XDG_CONFIG_HOME/tagbridge/config.yaml. Fields missing from the file keep
// their defaults; unknown fields are rejected.
package config

import (
	"fmt"
	"net"
	"strconv"

	"github.com/xdg/tagbridge/internal/token"
)

// Config is the complete bridge configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Auth   AuthConfig   `yaml:"auth"`
	Tool   ToolConfig   `yaml:"tool"`
	Log    LogConfig    `yaml:"log"`
	Audit  AuditConfig  `yaml:"audit"`
}

// ServerConfig controls the HTTP listener.
type ServerConfig struct {
	Host         string `yaml:"host"`
	Port         int    `yaml:"port"`
	MaxBodyBytes int64  `yaml:"max_body_bytes"`
}

// AuthConfig names the environment variable holding the shared secret.
// The secret itself never lives in the config file.
type AuthConfig struct {
	TokenEnv string `yaml:"token_env"`
}

// ToolConfig describes the external automation executable.
type ToolConfig struct {
	Name        string   `yaml:"name"`
	Path        string   `yaml:"path"`
	ScriptExt   string   `yaml:"script_ext"`
	DefaultArgs []string `yaml:"default_args"`
	TempDir     string   `yaml:"temp_dir,omitempty"`
}

// LogConfig controls operational logging. An empty File means the default
// location under $XDG_STATE_HOME/tagbridge.
type LogConfig struct {
	File  string `yaml:"file"`
	Level string `yaml:"level"`
}

// AuditConfig controls the run audit log. An empty File means the default
// location under $XDG_STATE_HOME/tagbridge.
type AuditConfig struct {
	File string `yaml:"file"`
}

// Addr returns the host:port listen address.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.Port))
}

// Token reads the shared secret from the configured environment variable.
// Empty means authentication is disabled. A variable set to whitespace only
// is an error.
func (c *Config) Token() (string, error) {
	secret, err := token.FromEnv(c.Auth.TokenEnv)
	if err != nil {
		return "", fmt.Errorf("auth.token_env: %w", err)
	}
	return secret, nil
}
