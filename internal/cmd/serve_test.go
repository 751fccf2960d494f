package cmd

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/config"
)

func TestApplyServeFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		check   func(*config.Config) bool
		wantErr string
	}{
		{
			name:  "port override",
			args:  []string{"--port", "5100"},
			check: func(c *config.Config) bool { return c.Server.Port == 5100 },
		},
		{
			name:  "localhost",
			args:  []string{"--host", "localhost"},
			check: func(c *config.Config) bool { return c.Server.Host == "localhost" },
		},
		{
			name:  "tool path",
			args:  []string{"--tool", "/opt/tagui/src/tagui"},
			check: func(c *config.Config) bool { return c.Tool.Path == "/opt/tagui/src/tagui" },
		},
		{
			name:    "wildcard host refused",
			args:    []string{"--host", "0.0.0.0"},
			wantErr: "server.host",
		},
		{
			name:    "bad port",
			args:    []string{"--port", "70000"},
			wantErr: "server.port",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resetFlags(serveCmd)
			if err := serveCmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags: %v", err)
			}

			cfg := config.DefaultConfig()
			err := applyServeFlags(serveCmd, cfg)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Errorf("error = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("applyServeFlags() error = %v", err)
			}
			if !tt.check(cfg) {
				t.Errorf("flag not applied: %+v", cfg)
			}
		})
	}
}

func TestOpenAudit(t *testing.T) {
	logger, closeFn, err := openAudit("")
	if err != nil || logger != nil {
		t.Fatalf("openAudit(\"\") = %v, %v; want disabled logger", logger, err)
	}
	closeFn()

	path := filepath.Join(t.TempDir(), "nested", "audit.log")
	logger, closeFn, err = openAudit(path)
	if err != nil {
		t.Fatalf("openAudit() error = %v", err)
	}
	defer closeFn()
	if err := logger.LogReject("id-1", "unauthorized"); err != nil {
		t.Fatalf("LogReject() error = %v", err)
	}
}

func TestSetupLogging(t *testing.T) {
	old := clog.ReplaceGlobal(clog.TestLogger(io.Discard))
	defer clog.ReplaceGlobal(old)

	cfg := config.DefaultConfig()
	cfg.Log.File = filepath.Join(t.TempDir(), "tagbridge.log")
	cfg.Log.Level = "warn"

	closeFn, err := setupLogging(cfg, true)
	if err != nil {
		t.Fatalf("setupLogging() error = %v", err)
	}
	clog.Info("hidden")
	clog.Warn("shown")
	closeFn()

	data, err := os.ReadFile(cfg.Log.File)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if strings.Contains(string(data), "hidden") {
		t.Error("info logged at warn level")
	}
	if !strings.Contains(string(data), "[WARN] shown") {
		t.Errorf("log file = %q, want warn line", data)
	}
}
