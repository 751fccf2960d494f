// Package testutil provides helpers shared by package tests.
package testutil

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// FakeToolScript stands in for the TagUI executable. It prints
// "args:<args>" and the script file it was given, writes "stderr line" to
// stderr, and exits with $FAKE_EXIT (default 0).
const FakeToolScript = `#!/bin/sh
script="$1"
shift
echo "args:$*"
cat "$script"
echo "stderr line" >&2
exit ${FAKE_EXIT:-0}
`

// FakeTool writes FakeToolScript into a temp dir and returns its path.
// Skips the test on Windows.
func FakeTool(t *testing.T) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("fake tool is a POSIX shell script")
	}
	path := filepath.Join(t.TempDir(), "tagui")
	if err := os.WriteFile(path, []byte(FakeToolScript), 0o755); err != nil {
		t.Fatalf("write fake tool: %v", err)
	}
	return path
}

// AssertEmptyDir fails the test if dir contains any entries. Used to check
// that temporary scripts were removed.
func AssertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read %s: %v", dir, err)
	}
	if len(entries) > 0 {
		names := make([]string, len(entries))
		for i, e := range entries {
			names[i] = e.Name()
		}
		t.Errorf("%s not empty: %v", dir, names)
	}
}
