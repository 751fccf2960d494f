package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/xdg/tagbridge/internal/audit"
	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/config"
	"github.com/xdg/tagbridge/internal/gateway"
	"github.com/xdg/tagbridge/internal/pathutil"
	"github.com/xdg/tagbridge/internal/runner"
	"github.com/xdg/tagbridge/internal/term"
)

const shutdownTimeout = 30 * time.Second

var (
	serveHost   string
	servePort   int
	serveTool   string
	serveDaemon bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the bridge HTTP server",
	Long: `Run the bridge on a loopback address and block until interrupted.

Endpoints:
  GET  /health   liveness probe, no authentication
  POST /run      execute a script; body is {"steps": "...", "args": [...]}
                 or the raw script text

Flags override the config file. Only loopback hosts are accepted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "listen host (default from config, 127.0.0.1)")
	serveCmd.Flags().IntVar(&servePort, "port", 0, "listen port (default from config, 5000)")
	serveCmd.Flags().StringVar(&serveTool, "tool", "", "path to the TagUI executable")
	serveCmd.Flags().BoolVar(&serveDaemon, "daemon", false, "log to file only")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := applyServeFlags(cmd, cfg); err != nil {
		return err
	}
	secret, err := cfg.Token()
	if err != nil {
		return err
	}

	closeLogs, err := setupLogging(cfg, serveDaemon)
	if err != nil {
		return err
	}
	defer closeLogs()

	auditLogger, closeAudit, err := openAudit(cfg.Audit.File)
	if err != nil {
		return err
	}
	defer closeAudit()

	r := newRunner(cfg)
	if _, err := os.Stat(cfg.Tool.Path); err != nil {
		term.Warn("%s not found at %s; runs will fail until it is installed", cfg.Tool.Name, cfg.Tool.Path)
	}

	if secret == "" {
		term.Warn("%s is not set; the bridge accepts requests from any local process", cfg.Auth.TokenEnv)
		clog.Warn("authentication disabled (%s not set)", cfg.Auth.TokenEnv)
	}

	srv := gateway.NewServer(gateway.Options{
		Addr:         cfg.Addr(),
		Token:        secret,
		DefaultArgs:  cfg.Tool.DefaultArgs,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
	}, r, auditLogger)
	if err := srv.Start(); err != nil {
		return fmt.Errorf("failed to start bridge: %w", err)
	}

	clog.Info("bridge listening on %s (tool %s)", srv.ListenAddr(), cfg.Tool.Path)
	term.Printf("tagbridge listening on http://%s\n", srv.ListenAddr())

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	<-ctx.Done()

	clog.Info("shutting down bridge")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}

// applyServeFlags copies explicitly set flags onto cfg and revalidates.
func applyServeFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("host") {
		cfg.Server.Host = serveHost
	}
	if flags.Changed("port") {
		cfg.Server.Port = servePort
	}
	if flags.Changed("tool") {
		cfg.Tool.Path = pathutil.Expand(serveTool)
	}
	if err := config.Validate(cfg); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}
	return nil
}

// setupLogging points the global logger at the configured file and level.
func setupLogging(cfg *config.Config, daemon bool) (func(), error) {
	level, err := clog.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if debugFlag {
		level = clog.LevelDebug
	}
	if err := clog.Configure(cfg.Log.File, level, daemon); err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return func() { _ = clog.Close() }, nil
}

// openAudit opens the audit log for appending. An empty path disables it.
func openAudit(path string) (*audit.Logger, func(), error) {
	if path == "" {
		return nil, func() {}, nil
	}
	f, err := clog.OpenLogFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open audit log: %w", err)
	}
	return audit.NewLogger(f), func() { _ = f.Close() }, nil
}

func newRunner(cfg *config.Config) *runner.Runner {
	return runner.New(runner.Options{
		ToolPath:  cfg.Tool.Path,
		ToolName:  cfg.Tool.Name,
		ScriptExt: cfg.Tool.ScriptExt,
		TempDir:   cfg.Tool.TempDir,
	})
}
