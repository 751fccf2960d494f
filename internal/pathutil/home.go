// Package pathutil expands user-supplied paths from config and flags.
package pathutil

import (
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome replaces a leading ~ with the user's home directory.
// The path is returned unchanged if the home directory is unknown.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	if path == "~" {
		return home
	}
	return filepath.Join(home, path[2:])
}

// Expand substitutes $VAR / ${VAR} references and then a leading ~.
// Empty input stays empty.
func Expand(path string) string {
	if path == "" {
		return ""
	}
	return ExpandHome(os.ExpandEnv(path))
}
