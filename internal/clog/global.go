package clog

import (
	"io"
	"os"
	"strings"
	"sync"
)

var (
	stdMu sync.RWMutex
	std   = NewLogger()
)

func global() *Logger {
	stdMu.RLock()
	defer stdMu.RUnlock()
	return std
}

// Configure sets up the global logger. An empty logPath disables file
// logging; daemon turns off the stderr mirror.
func Configure(logPath string, level Level, daemon bool) error {
	l := global()
	l.SetLevel(level)
	l.SetDaemonMode(daemon)

	if logPath == "" {
		return nil
	}
	f, err := OpenLogFile(logPath)
	if err != nil {
		return err
	}
	l.SetFileOutput(f)
	return nil
}

// Debug logs a debug message using the global logger.
func Debug(format string, args ...any) { global().Debug(format, args...) }

// Info logs an informational message using the global logger.
func Info(format string, args ...any) { global().Info(format, args...) }

// Warn logs a warning using the global logger.
func Warn(format string, args ...any) { global().Warn(format, args...) }

// Error logs an error using the global logger.
func Error(format string, args ...any) { global().Error(format, args...) }

// Close closes the global file writer if it is an io.Closer.
func Close() error {
	l := global()
	l.mu.Lock()
	defer l.mu.Unlock()

	if closer, ok := l.fileWriter.(io.Closer); ok {
		l.fileWriter = nil
		return closer.Close()
	}
	return nil
}

// ReplaceGlobal swaps the global logger and returns the previous one.
// Tests use it to capture output.
func ReplaceGlobal(l *Logger) *Logger {
	stdMu.Lock()
	defer stdMu.Unlock()
	old := std
	std = l
	return old
}

// TestLogger returns a debug-level logger writing everything to w.
func TestLogger(w io.Writer) *Logger {
	l := NewLogger()
	l.SetFileOutput(w)
	l.SetErrOutput(nil)
	l.SetLevel(LevelDebug)
	return l
}

// Writer returns an io.Writer that logs each write at level on the global
// logger. It backs http.Server.ErrorLog.
func Writer(level Level) io.Writer {
	return levelWriter{level: level}
}

type levelWriter struct {
	level Level
}

func (w levelWriter) Write(p []byte) (int, error) {
	global().log(w.level, "%s", strings.TrimSuffix(string(p), "\n"))
	return len(p), nil
}

func init() {
	std.SetErrOutput(os.Stderr)
}
