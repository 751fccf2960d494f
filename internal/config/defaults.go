package config

import (
	"runtime"

	"github.com/xdg/tagbridge/internal/runner"
	"github.com/xdg/tagbridge/internal/token"
)

// Default values.
const (
	DefaultHost         = "127.0.0.1"
	DefaultPort         = 5000
	DefaultMaxBodyBytes = 10 << 20
	DefaultLogLevel     = "info"
)

// DefaultToolPath returns the conventional TagUI install location for the
// current platform.
func DefaultToolPath() string {
	if runtime.GOOS == "windows" {
		return `C:\tagui\src\tagui.cmd`
	}
	return "~/tagui/src/tagui"
}

// DefaultConfig returns a Config with every field at its default.
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:         DefaultHost,
			Port:         DefaultPort,
			MaxBodyBytes: DefaultMaxBodyBytes,
		},
		Auth: AuthConfig{
			TokenEnv: token.DefaultEnvVar,
		},
		Tool: ToolConfig{
			Name:        runner.DefaultToolName,
			Path:        DefaultToolPath(),
			ScriptExt:   runner.DefaultScriptExt,
			DefaultArgs: []string{"-edge"},
		},
		Log: LogConfig{
			Level: DefaultLogLevel,
		},
	}
}
