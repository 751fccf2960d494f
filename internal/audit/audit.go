// Package audit records bridge runs as key=value lines suitable for grep
// and log shippers.
package audit

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"
)

// EventType is the kind of run event.
type EventType string

// Event types.
const (
	EventRequest  EventType = "REQUEST"
	EventReject   EventType = "REJECT"
	EventComplete EventType = "COMPLETE"
)

// Event is one audit log entry.
type Event struct {
	Timestamp time.Time
	Type      EventType

	// ID is the request id the gateway assigned.
	ID string

	// Mode is how the payload was parsed ("json" or "raw"). REQUEST only.
	Mode string

	// Args are the tool arguments. REQUEST only.
	Args []string

	// Reason explains a REJECT.
	Reason string

	// Cmd, ExitCode and Duration describe a COMPLETE.
	Cmd      string
	ExitCode int
	Duration time.Duration
}

// Format renders the event as a single line:
//
//	2026-01-15T14:32:05Z RUN COMPLETE id=... cmd="..." exit=0 duration=1.2s
func (e *Event) Format() string {
	var b strings.Builder

	b.WriteString(e.Timestamp.UTC().Format(time.RFC3339))
	b.WriteString(" RUN ")
	b.WriteString(string(e.Type))
	b.WriteString(" id=")
	b.WriteString(e.ID)

	switch e.Type {
	case EventRequest:
		writeOptionalField(&b, "mode", e.Mode)
		b.WriteString(" args=")
		b.WriteString(quoteValue(strings.Join(e.Args, " ")))
	case EventReject:
		writeOptionalField(&b, "reason", e.Reason)
	case EventComplete:
		b.WriteString(" cmd=")
		b.WriteString(quoteValue(e.Cmd))
		b.WriteString(" exit=")
		b.WriteString(strconv.Itoa(e.ExitCode))
		b.WriteString(" duration=")
		b.WriteString(formatDuration(e.Duration))
	}

	return b.String()
}

func writeOptionalField(b *strings.Builder, key, value string) {
	if value == "" {
		return
	}
	b.WriteString(" ")
	b.WriteString(key)
	b.WriteString("=")
	b.WriteString(quoteValue(value))
}

func quoteValue(s string) string {
	return strconv.Quote(s)
}

// formatDuration renders d as e.g. "850.0ms", "2.3s" or "1m30s".
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%.1fms", float64(d)/float64(time.Millisecond))
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return d.Round(time.Second).String()
}

// Logger writes events to an io.Writer. A nil *Logger discards everything,
// so callers never need to check whether auditing is enabled.
type Logger struct {
	mu  sync.Mutex
	w   io.Writer
	now func() time.Time
}

// NewLogger creates a logger writing to w.
func NewLogger(w io.Writer) *Logger {
	return &Logger{w: w, now: time.Now}
}

// Log writes e as one line.
func (l *Logger) Log(e *Event) error {
	if l == nil || l.w == nil {
		return nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if _, err := io.WriteString(l.w, e.Format()+"\n"); err != nil {
		return fmt.Errorf("write audit event: %w", err)
	}
	return nil
}

func (l *Logger) timestamp() time.Time {
	if l == nil || l.now == nil {
		return time.Now()
	}
	return l.now()
}

// LogRequest records an accepted run request before execution.
func (l *Logger) LogRequest(id, mode string, args []string) error {
	return l.Log(&Event{
		Timestamp: l.timestamp(),
		Type:      EventRequest,
		ID:        id,
		Mode:      mode,
		Args:      args,
	})
}

// LogReject records a request refused before execution.
func (l *Logger) LogReject(id, reason string) error {
	return l.Log(&Event{
		Timestamp: l.timestamp(),
		Type:      EventReject,
		ID:        id,
		Reason:    reason,
	})
}

// LogComplete records a finished execution.
func (l *Logger) LogComplete(id, cmd string, exitCode int, duration time.Duration) error {
	return l.Log(&Event{
		Timestamp: l.timestamp(),
		Type:      EventComplete,
		ID:        id,
		Cmd:       cmd,
		ExitCode:  exitCode,
		Duration:  duration,
	})
}
