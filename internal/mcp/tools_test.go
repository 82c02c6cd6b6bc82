package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/workoutlog/internal/client"
	"github.com/claude/workoutlog/internal/fakeapi"
	"github.com/claude/workoutlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func newTestHandlers(t *testing.T) (*handlers, *fakeapi.Server) {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := fakeapi.New(log)
	srv.SetIDGenerator(func() string { return "w1" })
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)
	return &handlers{api: client.New(ts.URL), log: log}, srv
}

func callRequest(args map[string]any) mcp.CallToolRequest {
	var req mcp.CallToolRequest
	req.Params.Arguments = args
	return req
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	if len(res.Content) == 0 {
		t.Fatal("empty tool result")
	}
	tc, ok := mcp.AsTextContent(res.Content[0])
	if !ok {
		t.Fatalf("content is %T, want text", res.Content[0])
	}
	return tc.Text
}

// TestLogWorkoutTool verifies the tool forwards an integer duration and returns
// the server-assigned record.
func TestLogWorkoutTool(t *testing.T) {
	h, srv := newTestHandlers(t)

	res, err := h.logWorkout(context.Background(), callRequest(map[string]any{
		"type": "Run", "duration": float64(30), "intensity": "High",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("tool error: %s", resultText(t, res))
	}

	var w models.Workout
	if err := json.Unmarshal([]byte(resultText(t, res)), &w); err != nil {
		t.Fatal(err)
	}
	if w.ID != "w1" || w.Duration != 30 || w.Notes != "" {
		t.Errorf("workout = %+v", w)
	}
	if stored := srv.Workouts(); len(stored) != 1 || stored[0].Duration != 30 {
		t.Errorf("stored = %+v", stored)
	}
}

func TestLogWorkoutToolValidation(t *testing.T) {
	h, srv := newTestHandlers(t)

	tests := []struct {
		name string
		args map[string]any
	}{
		{"missing type", map[string]any{"duration": float64(30), "intensity": "High"}},
		{"missing duration", map[string]any{"type": "Run", "intensity": "High"}},
		{"fractional duration", map[string]any{"type": "Run", "duration": 12.5, "intensity": "High"}},
		{"missing intensity", map[string]any{"type": "Run", "duration": float64(30)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := h.logWorkout(context.Background(), callRequest(tt.args))
			if err != nil {
				t.Fatal(err)
			}
			if !res.IsError {
				t.Error("expected tool error")
			}
		})
	}
	if srv.Requests() != 0 {
		t.Errorf("requests = %d, want 0", srv.Requests())
	}
}

// TestLogWorkoutToolServerError verifies server errors surface with the same
// text the terminal shows.
func TestLogWorkoutToolServerError(t *testing.T) {
	h, srv := newTestHandlers(t)
	srv.FailNext("create", http.StatusInternalServerError, "Could not connect to Google Sheets")

	res, err := h.logWorkout(context.Background(), callRequest(map[string]any{
		"type": "Run", "duration": float64(30), "intensity": "High",
	}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError {
		t.Fatal("expected tool error")
	}
	if got := resultText(t, res); got != "⚠ Error: Could not connect to Google Sheets" {
		t.Errorf("text = %q", got)
	}
}

func TestListAndDeleteTools(t *testing.T) {
	h, srv := newTestHandlers(t)
	srv.Seed(models.Workout{ID: "a", Type: "Run", Duration: 30, Intensity: "High", Timestamp: "2024-01-01 07:00:00"})

	res, err := h.listWorkouts(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	var list struct {
		Count    int              `json:"count"`
		Workouts []models.Workout `json:"workouts"`
	}
	if err := json.Unmarshal([]byte(resultText(t, res)), &list); err != nil {
		t.Fatal(err)
	}
	if list.Count != 1 || len(list.Workouts) != 1 || list.Workouts[0].ID != "a" {
		t.Errorf("list = %+v", list)
	}

	res, err = h.deleteWorkout(context.Background(), callRequest(map[string]any{"id": "a"}))
	if err != nil {
		t.Fatal(err)
	}
	if res.IsError {
		t.Fatalf("delete failed: %s", resultText(t, res))
	}

	res, err = h.deleteWorkout(context.Background(), callRequest(map[string]any{"id": "a"}))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.Contains(resultText(t, res), "Workout not found") {
		t.Errorf("second delete = %+v", res)
	}
}

func TestWorkoutHistoryResource(t *testing.T) {
	h, _ := newTestHandlers(t)

	var req mcp.ReadResourceRequest
	req.Params.URI = "workoutlog://history"
	contents, err := h.workoutHistory(context.Background(), req)
	if err != nil {
		t.Fatal(err)
	}
	if len(contents) != 1 {
		t.Fatalf("contents = %d, want 1", len(contents))
	}
	text, ok := contents[0].(mcp.TextResourceContents)
	if !ok {
		t.Fatalf("content is %T", contents[0])
	}
	if text.Text != "[]" {
		t.Errorf("text = %q, want []", text.Text)
	}
}

func TestCheckHealthToolDown(t *testing.T) {
	ts := httptest.NewServer(http.NotFoundHandler())
	url := ts.URL
	ts.Close()

	h := &handlers{api: client.New(url), log: slog.New(slog.NewTextHandler(io.Discard, nil))}
	res, err := h.checkHealth(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatal(err)
	}
	if !res.IsError || !strings.HasPrefix(resultText(t, res), "⚠ Connection error:") {
		t.Errorf("result = %+v", res)
	}
}

// TestNewRegistersTools verifies the server builds with every tool registered.
func TestNewRegistersTools(t *testing.T) {
	h, _ := newTestHandlers(t)
	s := New(h.api, "test", h.log)
	tools := s.ListTools()
	for _, name := range []string{"log_workout", "list_workouts", "delete_workout", "check_health"} {
		if _, ok := tools[name]; !ok {
			t.Errorf("tool %q not registered", name)
		}
	}
}
