package cmd

import (
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	"github.com/xdg/tagbridge/internal/mcp"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the run_steps tool over MCP stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout exposing one tool,
run_steps, which executes a script with the configured tool exactly like
POST /run. Logs go to the log file only.`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	closeLogs, err := setupLogging(cfg, true)
	if err != nil {
		return err
	}
	defer closeLogs()

	auditLogger, closeAudit, err := openAudit(cfg.Audit.File)
	if err != nil {
		return err
	}
	defer closeAudit()

	server := mcp.NewServer(newRunner(cfg), cfg.Tool.DefaultArgs, auditLogger)
	return server.Run(cmd.Context(), &sdkmcp.StdioTransport{})
}
