// Package ui holds the workout front-end: an explicit UI state and the
// controller that moves it through create, list and delete round-trips.
package ui

import (
	"time"
)

const (
	// DefaultStatusDuration is how long a status message stays visible.
	DefaultStatusDuration = 3 * time.Second

	LoadLabelIdle    = "[ LOAD HISTORY ]"
	LoadLabelLoading = "[ LOADING... ]"

	// DeletePrompt is the question put to the Confirmer before a delete.
	DeletePrompt = "Delete this workout?"
)

// StatusMessage is a transient notification about the outcome of the last
// action.
type StatusMessage struct {
	Text      string
	IsError   bool
	ExpiresAt time.Time
}

// Visible reports whether the message is still on screen at now.
func (m StatusMessage) Visible(now time.Time) bool {
	return now.Before(m.ExpiresAt)
}

// LoadControl is the "load history" trigger.
type LoadControl struct {
	Disabled bool
	Label    string
}

func idleLoadControl() LoadControl {
	return LoadControl{Label: LoadLabelIdle}
}

// FormInput is the workout form as typed by the user.
type FormInput struct {
	Type      string
	Duration  string
	Intensity string
	Notes     string
}

// State is everything the front-end displays.
type State struct {
	Status      *StatusMessage
	LoadControl LoadControl
	Form        FormInput
	List        ListView
}

// clone returns a deep copy safe to hand out of the controller lock.
func (s State) clone() State {
	out := s
	if s.Status != nil {
		st := *s.Status
		out.Status = &st
	}
	if s.List.Rows != nil {
		out.List.Rows = append([]Row(nil), s.List.Rows...)
	}
	return out
}
