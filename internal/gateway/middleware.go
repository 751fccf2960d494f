package gateway

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/xdg/tagbridge/internal/clog"
	"github.com/xdg/tagbridge/internal/runner"
	"github.com/xdg/tagbridge/internal/token"
)

// RequestIDHeader carries the per-request id back to the caller.
const RequestIDHeader = "X-Request-Id"

// corsMiddleware sets the CORS headers the browser extension needs on
// every response, including errors and 404s.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Access-Control-Allow-Origin", "*")
		h.Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		h.Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		next.ServeHTTP(w, r)
	})
}

// requestIDMiddleware assigns a uuid to the request, exposes it in the
// response header and stores it in the context for the runner's logs.
func requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := uuid.New().String()
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(runner.WithRequestID(r.Context(), id)))
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.status = code
	rw.ResponseWriter.WriteHeader(code)
}

// loggingMiddleware logs one line per request once it has been served.
func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rw := &statusRecorder{ResponseWriter: w}
		next.ServeHTTP(rw, r)

		status := rw.status
		if status == 0 {
			status = http.StatusOK
		}
		id := runner.RequestID(r.Context())
		switch {
		case status >= 500:
			clog.Error("%s %s -> %d (%s) id=%s", r.Method, r.URL.Path, status, time.Since(start), id)
		case status >= 400:
			clog.Warn("%s %s -> %d (%s) id=%s", r.Method, r.URL.Path, status, time.Since(start), id)
		default:
			clog.Info("%s %s -> %d (%s) id=%s", r.Method, r.URL.Path, status, time.Since(start), id)
		}
	})
}

// authMiddleware requires "Authorization: Bearer <secret>" when a secret is
// configured. An empty secret lets every request through.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	if s.opts.Token == "" {
		return next
	}
	want := token.Header(s.opts.Token)
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != want {
			_ = s.audit.LogReject(runner.RequestID(r.Context()), "unauthorized")
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}
