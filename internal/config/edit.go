package config

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/xdg/tagbridge/internal/clog"
)

// Edit opens the config file at path in $EDITOR (default vi), creating the
// default file first if needed. The edited file is validated afterwards; a
// validation failure is returned so the caller can report it, but the file
// is kept as written.
func Edit(path string) error {
	if _, err := WriteDefault(path); err != nil {
		return fmt.Errorf("create default config: %w", err)
	}

	editor := os.Getenv("EDITOR")
	if editor == "" {
		editor = "vi"
	}

	cmd := exec.Command(editor, path) //nolint:gosec // G204: editor chosen by the user
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor %q failed: %w", editor, err)
	}

	if _, err := LoadFrom(path); err != nil {
		clog.Warn("config %s has errors after edit: %v", path, err)
		return err
	}
	return nil
}
