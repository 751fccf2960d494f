package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	xterm "golang.org/x/term"

	"github.com/xdg/tagbridge/internal/runner"
	"github.com/xdg/tagbridge/internal/term"
)

// errEmptySteps matches the bridge's 400 response.
var errEmptySteps = errors.New("empty steps")

var runArgs []string

var runCmd = &cobra.Command{
	Use:   "run [FILE]",
	Short: "Run a script locally without the HTTP server",
	Long: `Run a TagUI script directly with the configured tool and print the result
as JSON. The command exits with the tool's exit code.

FILE may be omitted or "-" to read the script from stdin. Without --arg the
configured default arguments are used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	runCmd.Flags().StringArrayVar(&runArgs, "arg", nil, "argument passed to the tool (repeatable)")
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	steps, err := readSteps(cmd.InOrStdin(), args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	scriptArgs := cfg.Tool.DefaultArgs
	if cmd.Flags().Changed("arg") {
		scriptArgs = runArgs
	}

	ctx := runner.WithRequestID(cmd.Context(), uuid.NewString())
	res := newRunner(cfg).Execute(ctx, steps, scriptArgs)
	if err := term.PrintJSON(res); err != nil {
		return err
	}
	return resultError(res)
}

// readSteps returns the script from the FILE argument or stdin. Reading an
// interactive terminal is refused so the command does not appear to hang.
func readSteps(stdin io.Reader, args []string) (string, error) {
	var (
		data []byte
		err  error
	)
	if len(args) == 1 && args[0] != "-" {
		data, err = os.ReadFile(args[0])
		if err != nil {
			return "", fmt.Errorf("read script: %w", err)
		}
	} else {
		if f, ok := stdin.(*os.File); ok && xterm.IsTerminal(int(f.Fd())) {
			return "", errors.New("no script given: pass FILE or pipe the script on stdin")
		}
		data, err = io.ReadAll(stdin)
		if err != nil {
			return "", fmt.Errorf("read stdin: %w", err)
		}
	}

	steps := string(data)
	if strings.TrimSpace(steps) == "" {
		return "", errEmptySteps
	}
	return steps, nil
}
