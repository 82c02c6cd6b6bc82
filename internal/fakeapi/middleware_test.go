package fakeapi

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// TestRequestLoggingCapturesStatus verifies the logged status is the one the
// handler wrote, not the default 200.
func TestRequestLoggingCapturesStatus(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	handler := RequestLogging(log)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	req := httptest.NewRequest(http.MethodDelete, "/workouts/abc", nil)
	req.Header.Set("X-Request-ID", "req-1")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	out := buf.String()
	for _, want := range []string{"status=418", "method=DELETE", "path=/workouts/abc", "request_id=req-1"} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q: %s", want, out)
		}
	}
}

// TestRequestLoggingNamesOp verifies the log line names the API operation and
// flags responses served by an injected fault.
func TestRequestLoggingNamesOp(t *testing.T) {
	var buf bytes.Buffer
	s := New(slog.New(slog.NewTextHandler(&buf, nil)))
	s.FailNext("list", http.StatusServiceUnavailable, "Could not connect to Google Sheets")

	s.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/workouts", nil))
	first := buf.String()
	for _, want := range []string{"level=WARN", "op=list", "injected_fault=true", "status=503"} {
		if !strings.Contains(first, want) {
			t.Errorf("faulted request log missing %q: %s", want, first)
		}
	}

	buf.Reset()
	s.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/workouts", nil))
	second := buf.String()
	if !strings.Contains(second, "level=INFO") || !strings.Contains(second, "op=list") {
		t.Errorf("normal request log: %s", second)
	}
	if strings.Contains(second, "injected_fault") {
		t.Errorf("fault flagged on a normal request: %s", second)
	}
}

// TestCORSPassesThrough verifies non-preflight requests reach the handler with
// CORS headers attached.
func TestCORSPassesThrough(t *testing.T) {
	called := false
	handler := CORS(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))

	req := httptest.NewRequest(http.MethodGet, "/workouts", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if !called {
		t.Error("handler not called")
	}
	if got := rec.Header().Get("Access-Control-Allow-Methods"); !strings.Contains(got, "DELETE") {
		t.Errorf("allow-methods = %q, want DELETE included", got)
	}
}
