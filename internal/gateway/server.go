// Package gateway is the bridge's HTTP front end. It authenticates requests
// from the browser extension, turns POST /run bodies into script text and
// arguments, and answers with the runner's result.
package gateway

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/xdg/tagbridge/internal/audit"
	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/config"
	"github.com/xdg/tagbridge/internal/runner"
)

// ErrNotLoopback is returned by Start when the listen address is not a
// loopback address.
var ErrNotLoopback = errors.New("bridge must bind to a loopback address")

// Executor runs a script with arguments. *runner.Runner implements it.
type Executor interface {
	Execute(ctx context.Context, steps string, args []string) runner.Result
}

// Options configures a Server. It is fixed once the server is created.
type Options struct {
	// Addr is the host:port to listen on; the host must be loopback.
	Addr string

	// Token is the shared secret. Empty disables authentication.
	Token string

	// DefaultArgs are passed to the tool when a request carries none.
	DefaultArgs []string

	// MaxBodyBytes caps the POST /run body. Zero or less means no cap.
	MaxBodyBytes int64
}

// Server serves the bridge endpoints.
type Server struct {
	opts  Options
	exec  Executor
	audit *audit.Logger

	server   *http.Server
	listener net.Listener
	mu       sync.Mutex
	running  bool
}

// NewServer creates a server. auditLogger may be nil.
func NewServer(opts Options, exec Executor, auditLogger *audit.Logger) *Server {
	return &Server{
		opts:  opts,
		exec:  exec,
		audit: auditLogger,
	}
}

// Handler returns the full middleware chain and routes. Tests drive it
// directly with httptest.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.Handle("POST /run", s.authMiddleware(http.HandlerFunc(s.handleRun)))
	// Any POST is authenticated before routing.
	mux.Handle("POST /", s.authMiddleware(http.HandlerFunc(handleNotFound)))
	mux.HandleFunc("OPTIONS /", handlePreflight)
	mux.HandleFunc("/", handleNotFound)

	return requestIDMiddleware(loggingMiddleware(corsMiddleware(mux)))
}

// Start begins accepting connections. It refuses non-loopback addresses
// and returns an error if the server is already running.
func (s *Server) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.running {
		return errors.New("bridge server already running")
	}

	host, _, err := net.SplitHostPort(s.opts.Addr)
	if err != nil {
		return fmt.Errorf("invalid listen address %q: %w", s.opts.Addr, err)
	}
	if !config.IsLoopbackHost(host) {
		return fmt.Errorf("%w: %q", ErrNotLoopback, s.opts.Addr)
	}

	listener, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.opts.Addr, err)
	}

	s.listener = listener
	s.server = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 30 * time.Second,
		ErrorLog:          log.New(clog.Writer(clog.LevelWarn), "", 0),
	}
	s.running = true

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			clog.Error("bridge server stopped: %v", err)
		}
	}()

	return nil
}

// Stop gracefully shuts the server down. Calling it twice is harmless.
func (s *Server) Stop(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.running {
		return nil
	}
	s.running = false
	return s.server.Shutdown(ctx)
}

// ListenAddr returns the bound address, or "" before Start.
func (s *Server) ListenAddr() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.listener == nil {
		return ""
	}
	return s.listener.Addr().String()
}

type statusResponse struct {
	Status string `json:"status"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, statusResponse{Status: "ok"})
}

// handleRun processes POST /run. Authentication has already happened.
func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	id := runner.RequestID(r.Context())

	body, err := s.readBody(w, r)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			_ = s.audit.LogReject(id, "body too large")
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "body too large"})
			return
		}
		_ = s.audit.LogReject(id, "invalid body")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid body"})
		return
	}

	p := ParsePayload(body, s.opts.DefaultArgs)
	if strings.TrimSpace(p.Steps) == "" {
		_ = s.audit.LogReject(id, "empty steps")
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "empty steps"})
		return
	}

	_ = s.audit.LogRequest(id, p.Mode.String(), p.Args)
	clog.Debug("run %s: %s payload, %d bytes, args %q", id, p.Mode, len(p.Steps), p.Args)

	start := time.Now()
	res := s.exec.Execute(r.Context(), p.Steps, p.Args)
	_ = s.audit.LogComplete(id, res.Cmd, res.ExitCode, time.Since(start))

	writeJSON(w, http.StatusOK, res)
}

func (s *Server) readBody(w http.ResponseWriter, r *http.Request) ([]byte, error) {
	body := r.Body
	if s.opts.MaxBodyBytes > 0 {
		body = http.MaxBytesReader(w, r.Body, s.opts.MaxBodyBytes)
	}
	return io.ReadAll(body)
}

func handlePreflight(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func handleNotFound(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusNotFound)
}

// writeJSON writes v without a trailing newline so error bodies are exact.
func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		clog.Error("encode response: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}
