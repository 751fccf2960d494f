package runner

import "context"

// Result is the outcome of one script execution. It is serialized as-is
// in the POST /run response body.
type Result struct {
	// ExitCode is the tool's exit status, or NotExecuted.
	ExitCode int `json:"exit_code"`

	Stdout string `json:"stdout"`
	Stderr string `json:"stderr"`

	// Cmd is the space-joined command line that was run, "<path> (not found)"
	// when the tool is missing, or "failed" when it could not be started.
	Cmd string `json:"cmd"`
}

// OK reports whether the tool ran and exited zero.
func (r Result) OK() bool {
	return r.ExitCode == 0
}

type contextKey int

const requestIDKey contextKey = iota

// WithRequestID returns a context carrying id for log correlation.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestID returns the id stored by WithRequestID, or "-".
func RequestID(ctx context.Context) string {
	if id, ok := ctx.Value(requestIDKey).(string); ok && id != "" {
		return id
	}
	return "-"
}
