package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/xdg/tagbridge/internal/term"
)

var healthAddr string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that a bridge is running",
	Long: `Probe GET /health on the configured bridge address. Exits non-zero when the
bridge does not answer within a few seconds.`,
	Args: cobra.NoArgs,
	RunE: runHealth,
}

func init() {
	healthCmd.Flags().StringVar(&healthAddr, "addr", "", "bridge host:port (default from config)")
	rootCmd.AddCommand(healthCmd)
}

func runHealth(cmd *cobra.Command, args []string) error {
	c, err := newClient(healthAddr)
	if err != nil {
		return err
	}
	if err := c.Health(cmd.Context()); err != nil {
		return fmt.Errorf("bridge at %s is not reachable: %w", c.BaseURL, err)
	}
	term.Printf("bridge at %s is running\n", c.BaseURL)
	return nil
}
