// Package cmd implements the CLI commands for tagbridge.
package cmd

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/config"
	"github.com/xdg/tagbridge/internal/term"
	"github.com/xdg/tagbridge/internal/version"
)

var (
	configFlag string
	debugFlag  bool
	silentFlag bool
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "tagbridge",
	Short: "Local HTTP bridge for TagUI automation scripts",
	Long: `tagbridge accepts TagUI automation scripts from a browser extension over a
loopback HTTP endpoint, runs them with the TagUI executable and returns the
captured output and exit code.

Start the bridge with 'tagbridge serve'. Set TAGUI_BRIDGE_TOKEN (or the
variable named by auth.token_env) to require a bearer token on every POST.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setupOutput,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "config file (default "+config.Path()+")")
	rootCmd.PersistentFlags().BoolVar(&debugFlag, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&silentFlag, "silent", false, "suppress normal output")
}

// Execute runs the root command and returns any error. Errors other than
// *ExitCodeError are reported on stderr.
func Execute() error {
	err := rootCmd.Execute()
	var exitErr *ExitCodeError
	if err != nil && !errors.As(err, &exitErr) {
		term.Error("%v", err)
	}
	return err
}

func setupOutput(cmd *cobra.Command, args []string) error {
	term.SetSilent(silentFlag)
	if debugFlag {
		return clog.Configure("", clog.LevelDebug, false)
	}
	return nil
}

// loadConfig reads the file named by --config, or the default location.
func loadConfig() (*config.Config, error) {
	if configFlag != "" {
		return config.LoadFrom(configFlag)
	}
	return config.Load()
}

// configPath returns the config file in effect.
func configPath() string {
	if configFlag != "" {
		return configFlag
	}
	return config.Path()
}
