package ui

import (
	"fmt"

	"github.com/claude/workoutlog/internal/models"
)

// Placeholder is shown in place of the list when there are no workouts.
const Placeholder = "[ NO WORKOUTS LOGGED YET ]"

// Row is one rendered workout entry.
type Row struct {
	ID        models.ID // bound to the row's delete action
	Header    string
	Duration  string
	Timestamp string
	Notes     string // empty means no notes line
}

// HasNotes reports whether the row renders a notes line.
func (r Row) HasNotes() bool {
	return r.Notes != ""
}

// ListView is the rendered workout list. Exactly one of Placeholder or Rows
// is set, except for the zero ListView, which means no list has been received
// yet.
type ListView struct {
	Placeholder string
	Rows        []Row
}

// Loaded reports whether v came from a list response.
func (v ListView) Loaded() bool {
	return v.Placeholder != "" || len(v.Rows) > 0
}

// RenderList turns workouts into display rows. It has no side effects.
func RenderList(workouts []models.Workout) ListView {
	if len(workouts) == 0 {
		return ListView{Placeholder: Placeholder}
	}

	rows := make([]Row, 0, len(workouts))
	for _, w := range workouts {
		rows = append(rows, Row{
			ID:        w.ID,
			Header:    fmt.Sprintf("%s - %s Intensity", w.Type, w.Intensity),
			Duration:  fmt.Sprintf("%d min", w.Duration),
			Timestamp: w.Timestamp,
			Notes:     w.Notes,
		})
	}
	return ListView{Rows: rows}
}
