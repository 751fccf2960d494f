package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xdg/tagbridge/internal/token"
)

func TestPath_XDGConfigHome(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	want := filepath.Join(dir, "tagbridge", "config.yaml")
	if got := Path(); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Addr() != "127.0.0.1:5000" {
		t.Errorf("Addr() = %q", cfg.Addr())
	}
	if cfg.Log.File != filepath.Join(state, "tagbridge", "tagbridge.log") {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
	if cfg.Audit.File != filepath.Join(state, "tagbridge", "audit.log") {
		t.Errorf("Audit.File = %q", cfg.Audit.File)
	}
	if strings.HasPrefix(cfg.Tool.Path, "~") {
		t.Errorf("Tool.Path not expanded: %q", cfg.Tool.Path)
	}
	// Loading must not create the file.
	if _, err := os.Stat(Path()); !os.IsNotExist(err) {
		t.Errorf("Load() created %s", Path())
	}
}

func TestLoadFrom_ExpandsPaths(t *testing.T) {
	t.Setenv("TAGUI_HOME", "/srv/tagui")
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := "tool:\n  path: $TAGUI_HOME/src/tagui\nlog:\n  file: /var/log/tagbridge.log\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}
	if cfg.Tool.Path != "/srv/tagui/src/tagui" {
		t.Errorf("Tool.Path = %q", cfg.Tool.Path)
	}
	if cfg.Log.File != "/var/log/tagbridge.log" {
		t.Errorf("Log.File = %q", cfg.Log.File)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  host: 0.0.0.0\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := LoadFrom(path)
	if err == nil || !strings.Contains(err.Error(), "server.host") {
		t.Errorf("LoadFrom() error = %v, want server.host error", err)
	}
}

func TestToken(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Auth.TokenEnv = "TAGBRIDGE_TEST_TOKEN"

	tests := []struct {
		name    string
		value   string
		want    string
		wantErr bool
	}{
		{"unset means open mode", "", "", false},
		{"secret", "abc123", "abc123", false},
		{"whitespace only", "   ", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("TAGBRIDGE_TEST_TOKEN", tt.value)
			got, err := cfg.Token()
			if tt.wantErr {
				if !errors.Is(err, token.ErrBlankSecret) || !strings.Contains(err.Error(), "auth.token_env") {
					t.Errorf("Token() error = %v, want blank secret error", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("Token() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Token() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	created, err := WriteDefault(path)
	if err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	if !created {
		t.Error("created = false on first write")
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0o600 && os.PathSeparator == '/' {
		t.Errorf("permissions = %o, want 600", perm)
	}

	if err := os.WriteFile(path, []byte("server:\n  port: 6000\n"), 0o600); err != nil {
		t.Fatalf("overwrite: %v", err)
	}
	created, err = WriteDefault(path)
	if err != nil {
		t.Fatalf("second WriteDefault() error = %v", err)
	}
	if created {
		t.Error("created = true for existing file")
	}
	data, _ := os.ReadFile(path)
	if string(data) != "server:\n  port: 6000\n" {
		t.Errorf("existing file was overwritten: %q", data)
	}
}

func TestEdit_ValidatesResult(t *testing.T) {
	if os.PathSeparator != '/' {
		t.Skip("uses /bin/sh editor")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	// An "editor" that replaces the file with an invalid config.
	editor := filepath.Join(dir, "editor.sh")
	script := "#!/bin/sh\nprintf 'server:\\n  port: 0\\n' > \"$1\"\n"
	if err := os.WriteFile(editor, []byte(script), 0o755); err != nil {
		t.Fatalf("write editor: %v", err)
	}
	t.Setenv("EDITOR", editor)

	err := Edit(path)
	if err == nil || !strings.Contains(err.Error(), "server.port") {
		t.Errorf("Edit() error = %v, want server.port error", err)
	}
}
