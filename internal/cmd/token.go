package cmd

import (
	"github.com/spf13/cobra"

	"github.com/xdg/tagbridge/internal/term"
	"github.com/xdg/tagbridge/internal/token"
)

var tokenExport bool

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a random shared secret",
	Long: `Print a new random token. Export it in the environment of both the bridge
and whatever submits scripts, and paste it into the extension settings.`,
	Args: cobra.NoArgs,
	RunE: runToken,
}

func init() {
	tokenCmd.Flags().BoolVar(&tokenExport, "export", false, "print as a shell export statement")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, args []string) error {
	secret := token.Generate()
	if !tokenExport {
		term.Println(secret)
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	term.Printf("export %s=%s\n", cfg.Auth.TokenEnv, secret)
	return nil
}
