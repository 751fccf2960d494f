package cmd

import (
	"bytes"
	"strings"
	"testing"
)

func TestRootCommand_Help(t *testing.T) {
	var stdout bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"--help"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("root command --help returned error: %v", err)
	}

	output := stdout.String()
	for _, expected := range []string{"tagbridge", "TagUI", "Usage:", "serve", "submit", "run"} {
		if !strings.Contains(output, expected) {
			t.Errorf("help output missing %q\nGot: %s", expected, output)
		}
	}
}

func TestRootCommand_Version(t *testing.T) {
	var stdout bytes.Buffer
	resetFlags(rootCmd)
	rootCmd.SetOut(&stdout)
	rootCmd.SetErr(&stdout)
	rootCmd.SetArgs([]string{"--version"})

	if err := rootCmd.Execute(); err != nil {
		t.Fatalf("root command --version returned error: %v", err)
	}
	if !strings.Contains(stdout.String(), "tagbridge") {
		t.Errorf("version output missing 'tagbridge'\nGot: %s", stdout.String())
	}
}

func TestRootCommand_SilentSuppressesOutput(t *testing.T) {
	out, err := executeCommand(t, "", "--silent", "token")
	if err != nil {
		t.Fatalf("token --silent: %v", err)
	}
	if out != "" {
		t.Errorf("output = %q, want nothing with --silent", out)
	}
}
