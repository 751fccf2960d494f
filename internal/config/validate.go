package config

import (
	"fmt"
	"net"
	"strings"

	"github.com/xdg/tagbridge/internal/clog"
)

// Validate checks a parsed Config and reports the first invalid field.
func Validate(cfg *Config) error {
	if !IsLoopbackHost(cfg.Server.Host) {
		return fmt.Errorf("server.host: %q is not a loopback address (use 127.0.0.1, ::1 or localhost)", cfg.Server.Host)
	}
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port: invalid port number %d, must be 1-65535", cfg.Server.Port)
	}
	if cfg.Server.MaxBodyBytes < 0 {
		return fmt.Errorf("server.max_body_bytes: must be non-negative, got %d", cfg.Server.MaxBodyBytes)
	}

	if cfg.Auth.TokenEnv == "" || strings.ContainsAny(cfg.Auth.TokenEnv, "= \t") {
		return fmt.Errorf("auth.token_env: invalid environment variable name %q", cfg.Auth.TokenEnv)
	}

	if strings.TrimSpace(cfg.Tool.Path) == "" {
		return fmt.Errorf("tool.path: must not be empty")
	}
	if strings.TrimSpace(cfg.Tool.Name) == "" {
		return fmt.Errorf("tool.name: must not be empty")
	}
	ext := cfg.Tool.ScriptExt
	if len(ext) < 2 || ext[0] != '.' || strings.ContainsAny(ext, `/\*`) {
		return fmt.Errorf("tool.script_ext: invalid extension %q, expected e.g. \".tag\"", ext)
	}

	if _, err := clog.ParseLevel(cfg.Log.Level); err != nil {
		return fmt.Errorf("log.level: invalid value %q, must be one of: debug, info, warn, error", cfg.Log.Level)
	}

	return nil
}

// IsLoopbackHost reports whether host is "localhost" or a loopback IP.
func IsLoopbackHost(host string) bool {
	if strings.EqualFold(host, "localhost") {
		return true
	}
	ip := net.ParseIP(strings.Trim(host, "[]"))
	return ip != nil && ip.IsLoopback()
}
