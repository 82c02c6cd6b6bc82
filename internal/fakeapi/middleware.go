package fakeapi

import (
	"context"
	"log/slog"
	"net/http"
	"time"
)

type opKey struct{}

// opRecord is filled in by the handler so the log line can name the API
// operation and whether it was answered by an injected fault.
type opRecord struct {
	op       string
	injected bool
}

// markOp records which operation handled r. Outside RequestLogging it is a
// no-op.
func markOp(r *http.Request, op string, injected bool) {
	if rec, ok := r.Context().Value(opKey{}).(*opRecord); ok {
		rec.op = op
		rec.injected = injected
	}
}

// RequestLogging returns middleware that logs each request. Injected faults
// and server errors are logged at warn.
func RequestLogging(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &opRecord{}
			sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(sw, r.WithContext(context.WithValue(r.Context(), opKey{}, rec)))

			attrs := []any{
				"method", r.Method,
				"path", r.URL.Path,
				"status", sw.status,
				"request_id", r.Header.Get("X-Request-ID"),
				"duration", time.Since(start).String(),
			}
			if rec.op != "" {
				attrs = append(attrs, "op", rec.op)
			}
			level := slog.LevelInfo
			if rec.injected {
				attrs = append(attrs, "injected_fault", true)
				level = slog.LevelWarn
			} else if sw.status >= http.StatusInternalServerError {
				level = slog.LevelWarn
			}
			log.Log(r.Context(), level, "request", attrs...)
		})
	}
}

// CORS adds permissive CORS headers so a browser front-end can call the fake.
func CORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-ID")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// statusWriter wraps ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}
