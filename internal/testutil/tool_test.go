package testutil

import (
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
)

func TestFakeTool(t *testing.T) {
	tool := FakeTool(t)

	script := filepath.Join(t.TempDir(), "flow.tag")
	if err := os.WriteFile(script, []byte("click OK"), 0o600); err != nil {
		t.Fatalf("write script: %v", err)
	}

	cmd := exec.Command(tool, script, "-edge")
	cmd.Env = append(os.Environ(), "FAKE_EXIT=4")
	out, err := cmd.Output()

	exitErr, ok := err.(*exec.ExitError)
	if !ok || exitErr.ExitCode() != 4 {
		t.Fatalf("exit = %v, want code 4", err)
	}
	if !strings.HasPrefix(string(out), "args:-edge\nclick OK") {
		t.Errorf("stdout = %q", out)
	}
}

func TestNoProxyClient(t *testing.T) {
	c := NoProxyClient()
	tr, ok := c.Transport.(*http.Transport)
	if !ok || tr.Proxy != nil {
		t.Error("client must not use a proxy")
	}
}
