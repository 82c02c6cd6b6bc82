package ui

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/claude/workoutlog/internal/client"
	"github.com/claude/workoutlog/internal/fakeapi"
	"github.com/claude/workoutlog/internal/models"
)

func TestRenderListRows(t *testing.T) {
	workouts := []models.Workout{
		{ID: "a", Type: "Run", Intensity: "High", Duration: 30, Timestamp: "2024-01-01 07:00:00", Notes: "hill repeats"},
		{ID: "b", Type: "Yoga", Intensity: "Low", Duration: 60, Timestamp: "2024-01-02 19:00:00"},
		{ID: "c", Type: "Row", Intensity: "Medium", Duration: 20, Timestamp: "2024-01-03 06:30:00"},
	}

	v := RenderList(workouts)
	if v.Placeholder != "" {
		t.Errorf("placeholder = %q, want none", v.Placeholder)
	}
	if len(v.Rows) != len(workouts) {
		t.Fatalf("rows = %d, want %d", len(v.Rows), len(workouts))
	}
	for i, row := range v.Rows {
		if row.ID != workouts[i].ID {
			t.Errorf("row %d id = %q, want %q", i, row.ID, workouts[i].ID)
		}
		if row.HasNotes() != (workouts[i].Notes != "") {
			t.Errorf("row %d HasNotes = %v", i, row.HasNotes())
		}
	}
	if v.Rows[0].Header != "Run - High Intensity" {
		t.Errorf("header = %q", v.Rows[0].Header)
	}
	if v.Rows[0].Duration != "30 min" {
		t.Errorf("duration = %q", v.Rows[0].Duration)
	}
}

func TestRenderListEmpty(t *testing.T) {
	for _, in := range [][]models.Workout{nil, {}} {
		v := RenderList(in)
		if v.Placeholder != Placeholder || len(v.Rows) != 0 {
			t.Errorf("RenderList(%v) = %+v, want placeholder only", in, v)
		}
	}
}

// TestTerminalNotesLine verifies the notes line appears exactly once for a
// record with notes and never for one without.
func TestTerminalNotesLine(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.PrintList(RenderList([]models.Workout{
		{ID: "a", Type: "Run", Intensity: "High", Duration: 30, Timestamp: "2024-01-01", Notes: "felt strong"},
		{ID: "b", Type: "Walk", Intensity: "Low", Duration: 15, Timestamp: "2024-01-02"},
	}))

	out := buf.String()
	if n := strings.Count(out, "📝"); n != 1 {
		t.Errorf("notes lines = %d, want 1\n%s", n, out)
	}
	if strings.Count(out, "felt strong") != 1 {
		t.Errorf("notes text not printed once\n%s", out)
	}
	for _, id := range []string{"delete a", "delete b"} {
		if !strings.Contains(out, id) {
			t.Errorf("missing delete action %q\n%s", id, out)
		}
	}
}

// TestTerminalUnloadedList verifies a list that never arrived is not printed
// as the empty-history placeholder.
func TestTerminalUnloadedList(t *testing.T) {
	if (ListView{}).Loaded() {
		t.Error("zero ListView reports loaded")
	}
	if !RenderList(nil).Loaded() {
		t.Error("empty rendered list reports not loaded")
	}

	var buf bytes.Buffer
	NewTerminal(&buf).PrintList(ListView{})
	if buf.Len() != 0 {
		t.Errorf("unloaded list printed %q", buf.String())
	}
}

func TestTerminalPlaceholderAndStatus(t *testing.T) {
	var buf bytes.Buffer
	term := NewTerminal(&buf)
	term.PrintList(RenderList(nil))
	term.PrintStatus(StatusMessage{Text: "⚠ Error: boom", IsError: true})

	out := buf.String()
	if !strings.Contains(out, Placeholder) {
		t.Errorf("placeholder missing\n%s", out)
	}
	if !strings.Contains(out, "⚠ Error: boom") {
		t.Errorf("status missing\n%s", out)
	}
}

// TestControllerAgainstFakeAPI runs a full create/list/delete cycle through the
// real HTTP client.
func TestControllerAgainstFakeAPI(t *testing.T) {
	srv := fakeapi.New(slog.New(slog.NewTextHandler(io.Discard, nil)))
	srv.SetIDGenerator(func() string { return "w1" })
	ts := httptest.NewServer(srv)
	defer ts.Close()

	confirm := true
	c := NewController(client.New(ts.URL), WithConfirmer(func(string) bool { return confirm }))
	ctx := context.Background()

	if !c.Init(ctx) {
		t.Fatalf("Init failed: %+v", c.State().Status)
	}
	if st := c.State(); st.List.Placeholder != Placeholder {
		t.Fatalf("initial list = %+v, want placeholder", st.List)
	}

	c.SetForm(FormInput{Type: "Run", Duration: "30", Intensity: "High"})
	if !c.SubmitForm(ctx) {
		t.Fatalf("SubmitForm failed: %+v", c.State().Status)
	}
	st := c.State()
	if len(st.List.Rows) != 1 || st.List.Rows[0].ID != "w1" {
		t.Fatalf("list after create = %+v", st.List)
	}
	if st.Form != (FormInput{}) {
		t.Errorf("form not reset: %+v", st.Form)
	}

	srv.FailNext("create", 500, "Could not connect to Google Sheets")
	c.SetForm(FormInput{Type: "Swim", Duration: "20", Intensity: "Low"})
	if c.SubmitForm(ctx) {
		t.Fatal("SubmitForm succeeded despite server error")
	}
	if st := c.State(); st.Status.Text != "⚠ Error: Could not connect to Google Sheets" || st.Form.Type != "Swim" {
		t.Errorf("after failed create: status %q form %+v", st.Status.Text, st.Form)
	}

	confirm = false
	before := srv.Requests()
	c.DeleteWorkout(ctx, "w1")
	if srv.Requests() != before {
		t.Errorf("declined delete sent %d requests", srv.Requests()-before)
	}

	confirm = true
	if !c.DeleteWorkout(ctx, "w1") {
		t.Fatalf("DeleteWorkout failed: %+v", c.State().Status)
	}
	if st := c.State(); st.List.Placeholder != Placeholder {
		t.Errorf("list after delete = %+v, want placeholder", st.List)
	}
}
