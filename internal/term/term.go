// Package term writes user-facing CLI output. Operational logging lives in
// internal/clog; everything a user is meant to read goes through here so
// --silent can suppress it in one place.
package term

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

// printer holds the destinations and the silent flag.
type printer struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	silent bool
}

var std = &printer{out: os.Stdout, errOut: os.Stderr}

// SetSilent suppresses Print, Printf, Println and PrintJSON.
// Warn and Error are always shown.
func SetSilent(s bool) {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.silent = s
}

// IsSilent reports whether silent mode is on.
func IsSilent() bool {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.silent
}

// SetOutput redirects normal output. nil restores os.Stdout.
func SetOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stdout
	}
	std.out = w
}

// SetErrOutput redirects warnings and errors. nil restores os.Stderr.
func SetErrOutput(w io.Writer) {
	std.mu.Lock()
	defer std.mu.Unlock()
	if w == nil {
		w = os.Stderr
	}
	std.errOut = w
}

func (p *printer) write(fn func(io.Writer)) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.silent {
		return
	}
	fn(p.out)
}

func (p *printer) writeErr(prefix, format string, a ...any) {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, _ = fmt.Fprintf(p.errOut, "%s: %s\n", prefix, fmt.Sprintf(format, a...))
}

// Print writes to stdout unless silent.
func Print(a ...any) {
	std.write(func(w io.Writer) { _, _ = fmt.Fprint(w, a...) })
}

// Printf writes to stdout unless silent.
func Printf(format string, a ...any) {
	std.write(func(w io.Writer) { _, _ = fmt.Fprintf(w, format, a...) })
}

// Println writes to stdout unless silent.
func Println(a ...any) {
	std.write(func(w io.Writer) { _, _ = fmt.Fprintln(w, a...) })
}

// PrintJSON writes v as indented JSON followed by a newline.
func PrintJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	std.write(func(w io.Writer) {
		_, _ = w.Write(data)
		_, _ = io.WriteString(w, "\n")
	})
	return nil
}

// Warn writes "Warning: <msg>" to stderr, even when silent.
func Warn(format string, a ...any) {
	std.writeErr("Warning", format, a...)
}

// Error writes "Error: <msg>" to stderr, even when silent.
func Error(format string, a ...any) {
	std.writeErr("Error", format, a...)
}

// Stdout returns the normal output writer, or io.Discard when silent.
func Stdout() io.Writer {
	std.mu.Lock()
	defer std.mu.Unlock()
	if std.silent {
		return io.Discard
	}
	return std.out
}

// Stderr returns the warning/error writer.
func Stderr() io.Writer {
	std.mu.Lock()
	defer std.mu.Unlock()
	return std.errOut
}

// Reset restores os.Stdout, os.Stderr and clears silent mode.
func Reset() {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = os.Stdout
	std.errOut = os.Stderr
	std.silent = false
}

// Discard drops all output. Used by tests.
func Discard() {
	std.mu.Lock()
	defer std.mu.Unlock()
	std.out = io.Discard
	std.errOut = io.Discard
}
