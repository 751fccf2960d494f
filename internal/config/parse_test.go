package config

import (
	"reflect"
	"strings"
	"testing"
)

func TestParse_Empty(t *testing.T) {
	cfg, err := Parse(nil)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("Parse(nil) = %+v, want defaults", cfg)
	}
}

func TestParse_OverlaysDefaults(t *testing.T) {
	data := `
server:
  port: 5050
tool:
  path: /opt/tagui/src/tagui
  default_args: ["-chrome", "-headless"]
`
	cfg, err := Parse([]byte(data))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if cfg.Server.Port != 5050 {
		t.Errorf("Server.Port = %d, want 5050", cfg.Server.Port)
	}
	if cfg.Server.Host != DefaultHost {
		t.Errorf("Server.Host = %q, want default %q", cfg.Server.Host, DefaultHost)
	}
	if cfg.Tool.Path != "/opt/tagui/src/tagui" {
		t.Errorf("Tool.Path = %q", cfg.Tool.Path)
	}
	if !reflect.DeepEqual(cfg.Tool.DefaultArgs, []string{"-chrome", "-headless"}) {
		t.Errorf("Tool.DefaultArgs = %v", cfg.Tool.DefaultArgs)
	}
	if cfg.Tool.ScriptExt != ".tag" {
		t.Errorf("Tool.ScriptExt = %q, want default .tag", cfg.Tool.ScriptExt)
	}
	if cfg.Auth.TokenEnv != "TAGUI_BRIDGE_TOKEN" {
		t.Errorf("Auth.TokenEnv = %q", cfg.Auth.TokenEnv)
	}
}

func TestParse_EmptyDefaultArgs(t *testing.T) {
	cfg, err := Parse([]byte("tool:\n  default_args: []\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if len(cfg.Tool.DefaultArgs) != 0 {
		t.Errorf("Tool.DefaultArgs = %v, want empty", cfg.Tool.DefaultArgs)
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("server:\n  prot: 5000\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
	if !strings.Contains(err.Error(), "prot") {
		t.Errorf("error should name the field, got: %v", err)
	}
}

func TestParse_TypeMismatch(t *testing.T) {
	if _, err := Parse([]byte("server:\n  port: lots\n")); err == nil {
		t.Fatal("expected error for non-integer port")
	}
}

func TestDefaultTemplate_MatchesDefaults(t *testing.T) {
	cfg, err := Parse([]byte(DefaultTemplate()))
	if err != nil {
		t.Fatalf("Parse(DefaultTemplate()) error = %v", err)
	}
	if !reflect.DeepEqual(cfg, DefaultConfig()) {
		t.Errorf("template parses to %+v\nwant %+v", cfg, DefaultConfig())
	}
}

func TestMarshal_RoundTrip(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Server.Port = 6000
	cfg.Tool.TempDir = "/var/tmp/tagbridge"

	data, err := Marshal(cfg)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got, err := Parse(data)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if !reflect.DeepEqual(got, cfg) {
		t.Errorf("round trip = %+v, want %+v", got, cfg)
	}
}
