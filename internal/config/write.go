package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// defaultTemplate is the commented config written by WriteDefault. It must
// parse to DefaultConfig(); %s is the tool path.
const defaultTemplate = `# tagbridge configuration.
# Every field is optional; omitted fields use the values shown here.

server:
  # The bridge only binds to loopback: 127.0.0.1, ::1 or localhost.
  host: 127.0.0.1
  port: 5000
  # Largest accepted POST /run body in bytes (0 = unlimited).
  max_body_bytes: 10485760

auth:
  # POST requests must send "Authorization: Bearer <secret>" when this
  # environment variable is set. Unset means open mode: anything that can
  # reach the loopback port can run scripts. Generate one with
  # "tagbridge token".
  token_env: TAGUI_BRIDGE_TOKEN

tool:
  name: TagUI
  # Path of the automation executable. ~ and $VAR are expanded.
  path: '%s'
  script_ext: .tag
  # Arguments used when a request does not send "args".
  # e.g. ["-edge", "-headless"] or ["-chrome"]
  default_args: ["-edge"]
  # Directory for temporary script files (empty = system temp dir).
  # temp_dir: ""

log:
  # Empty = $XDG_STATE_HOME/tagbridge/tagbridge.log
  file: ""
  level: info

audit:
  # Empty = $XDG_STATE_HOME/tagbridge/audit.log
  file: ""
`

// DefaultTemplate returns the commented default configuration file content.
func DefaultTemplate() string {
	return fmt.Sprintf(defaultTemplate, strings.ReplaceAll(DefaultToolPath(), "'", "''"))
}

// WriteDefault creates the commented default config at path with 0600
// permissions, creating parent directories. An existing file is left alone
// and created is false.
func WriteDefault(path string) (created bool, err error) {
	_, err = os.Stat(path)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return false, fmt.Errorf("stat config file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return false, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultTemplate()), 0o600); err != nil {
		return false, fmt.Errorf("write default config: %w", err)
	}
	return true, nil
}
