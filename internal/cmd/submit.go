package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/tagbridge/internal/client"
	"github.com/xdg/tagbridge/internal/term"
)

var (
	submitArgs []string
	submitAddr string
)

var submitCmd = &cobra.Command{
	Use:   "submit [FILE]",
	Short: "Send a script to a running bridge",
	Long: `POST a script to a running bridge and print the result as JSON, exactly as
the browser extension would. The token is read from the configured
environment variable. The command exits with the tool's exit code.

Without --arg the bridge applies its own default arguments.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSubmit,
}

func init() {
	submitCmd.Flags().StringArrayVar(&submitArgs, "arg", nil, "argument passed to the tool (repeatable)")
	submitCmd.Flags().StringVar(&submitAddr, "addr", "", "bridge host:port (default from config)")
	rootCmd.AddCommand(submitCmd)
}

func runSubmit(cmd *cobra.Command, args []string) error {
	steps, err := readSteps(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	c, err := newClient(submitAddr)
	if err != nil {
		return err
	}

	var scriptArgs []string
	if cmd.Flags().Changed("arg") {
		scriptArgs = submitArgs
	}

	res, err := c.Run(cmd.Context(), steps, scriptArgs)
	if err != nil {
		return err
	}
	if err := term.PrintJSON(res); err != nil {
		return err
	}
	return resultError(res)
}

// newClient builds a bridge client from the config. A non-empty addr
// overrides the configured listen address.
func newClient(addr string) (*client.Client, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if addr == "" {
		addr = cfg.Addr()
	}
	secret, err := cfg.Token()
	if err != nil {
		return nil, err
	}
	return client.New(addr, secret), nil
}
