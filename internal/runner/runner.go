// Package runner executes automation scripts with the external automation
// tool. Each call writes the script to its own temporary file, runs the
// tool against it, captures the output, and removes the file again.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"syscall"
	"time"

	"github.com/xdg/tagbridge/internal/clog"
)

// Defaults applied by New for zero-valued Options fields.
const (
	DefaultToolName  = "TagUI"
	DefaultScriptExt = ".tag"
)

// NotExecuted is the exit code reported when the tool never ran
// (missing executable, spawn failure, temp file failure). A tool killed by
// signal N reports -N instead.
const NotExecuted = -1

// Options configures a Runner. It is fixed for the Runner's lifetime.
type Options struct {
	// ToolPath is the absolute path of the automation executable.
	ToolPath string

	// ToolName is used in error messages, e.g. "TagUI not found at ...".
	ToolName string

	// ScriptExt is the temporary script file extension, including the dot.
	ScriptExt string

	// TempDir is where script files are created. Empty means os.TempDir().
	TempDir string
}

// Runner executes scripts. It holds no per-call state and is safe for
// concurrent use.
type Runner struct {
	opts Options
}

// New creates a Runner, filling in defaults for empty options.
func New(opts Options) *Runner {
	if opts.ToolName == "" {
		opts.ToolName = DefaultToolName
	}
	if opts.ScriptExt == "" {
		opts.ScriptExt = DefaultScriptExt
	}
	return &Runner{opts: opts}
}

// Options returns the runner's effective options.
func (r *Runner) Options() Options {
	return r.opts
}

// Execute writes steps to a temporary script file and runs the tool as
// [ToolPath, scriptPath, args...], blocking until it exits.
//
// Execute never returns an error: every failure is reported through the
// Result with ExitCode NotExecuted. The context only carries the request id
// for logging; the child process is not tied to it and runs to completion.
func (r *Runner) Execute(ctx context.Context, steps string, args []string) Result {
	id := RequestID(ctx)

	f, err := os.CreateTemp(r.opts.TempDir, "tagbridge-*"+r.opts.ScriptExt)
	if err != nil {
		clog.Error("run %s: create script file: %v", id, err)
		return r.failed(err)
	}
	scriptPath := f.Name()
	defer func() { _ = os.Remove(scriptPath) }()

	_, err = f.WriteString(steps)
	if closeErr := f.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		clog.Error("run %s: write script file: %v", id, err)
		return r.failed(err)
	}

	if _, err := os.Stat(r.opts.ToolPath); err != nil {
		clog.Warn("run %s: %s not found at %s", id, r.opts.ToolName, r.opts.ToolPath)
		return Result{
			ExitCode: NotExecuted,
			Stderr:   fmt.Sprintf("%s not found at %s", r.opts.ToolName, r.opts.ToolPath),
			Cmd:      r.opts.ToolPath + " (not found)",
		}
	}

	argv := append([]string{r.opts.ToolPath, scriptPath}, args...)
	cmdline := strings.Join(argv, " ")

	cmd := exec.Command(argv[0], argv[1:]...) //nolint:gosec // G204: tool path comes from local config
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	clog.Debug("run %s: %s", id, cmdline)
	start := time.Now()
	err = cmd.Run()
	elapsed := time.Since(start)

	if err != nil {
		// A non-zero exit is a completed run, not a bridge failure.
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code := exitCode(exitErr)
			clog.Info("run %s: exited %d after %s", id, code, elapsed)
			return Result{
				ExitCode: code,
				Stdout:   stdout.String(),
				Stderr:   stderr.String(),
				Cmd:      cmdline,
			}
		}
		clog.Error("run %s: %v", id, err)
		return r.failed(err)
	}

	clog.Info("run %s: exited 0 after %s", id, elapsed)
	return Result{
		ExitCode: 0,
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		Cmd:      cmdline,
	}
}

// exitCode returns the tool's exit status, or -<signal> when it was killed
// by a signal. ExitError.ExitCode reports -1 in that case, which would be
// indistinguishable from NotExecuted.
func exitCode(exitErr *exec.ExitError) int {
	if ws, ok := exitErr.Sys().(syscall.WaitStatus); ok && ws.Signaled() {
		return -int(ws.Signal())
	}
	return exitErr.ExitCode()
}

func (r *Runner) failed(err error) Result {
	return Result{
		ExitCode: NotExecuted,
		Stderr:   fmt.Sprintf("Error running %s: %v", r.opts.ToolName, err),
		Cmd:      "failed",
	}
}
