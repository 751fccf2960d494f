package cmd

import (
	"fmt"

	"github.com/xdg/tagbridge/internal/runner"
)

// ExitCodeError makes the process exit with Code without printing an error.
// run and submit return it to pass the tool's exit status through.
type ExitCodeError struct {
	Code int
}

// NewExitCodeError returns an ExitCodeError for code.
func NewExitCodeError(code int) *ExitCodeError {
	return &ExitCodeError{Code: code}
}

func (e *ExitCodeError) Error() string {
	return fmt.Sprintf("exit code %d", e.Code)
}

// resultError maps a Result to the command's return value. A tool that
// could not be started exits 1; one killed by signal N exits 128+N like a
// shell would.
func resultError(res runner.Result) error {
	switch {
	case res.ExitCode == 0:
		return nil
	case res.ExitCode == runner.NotExecuted:
		return NewExitCodeError(1)
	case res.ExitCode < 0:
		return NewExitCodeError(128 - res.ExitCode)
	default:
		return NewExitCodeError(res.ExitCode)
	}
}
