package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// ID is a server-assigned record identifier. The API normally sends it as a
// string but spreadsheet-backed deployments return numeric cells, so both
// JSON strings and JSON numbers decode into it.
type ID string

// UnmarshalJSON accepts a JSON string or number.
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("workout id: %w", err)
	}
	*id = ID(n.String())
	return nil
}

// Workout is one logged workout as stored by the remote API.
// ID and Timestamp are always assigned by the server.
type Workout struct {
	ID        ID     `json:"id"`
	Type      string `json:"type"`
	Duration  int    `json:"duration"`
	Intensity string `json:"intensity"`
	Notes     string `json:"notes,omitempty"`
	Timestamp string `json:"timestamp"`
}

// UnmarshalJSON tolerates a duration encoded as a string or float, which the
// spreadsheet backend produces for hand-edited rows.
func (w *Workout) UnmarshalJSON(data []byte) error {
	type alias Workout
	aux := struct {
		*alias
		Duration json.RawMessage `json:"duration"`
	}{alias: (*alias)(w)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	w.Duration = 0
	if len(aux.Duration) == 0 || string(aux.Duration) == "null" {
		return nil
	}
	var n json.Number
	if aux.Duration[0] == '"' {
		var s string
		if err := json.Unmarshal(aux.Duration, &s); err != nil {
			return err
		}
		if s == "" {
			return nil
		}
		n = json.Number(s)
	} else if err := json.Unmarshal(aux.Duration, &n); err != nil {
		return fmt.Errorf("workout duration: %w", err)
	}
	if i, err := n.Int64(); err == nil {
		w.Duration = int(i)
		return nil
	}
	f, err := strconv.ParseFloat(n.String(), 64)
	if err != nil {
		return fmt.Errorf("workout duration %q: %w", n, err)
	}
	w.Duration = int(f)
	return nil
}

// CreateWorkoutRequest is the body of POST /workouts. All four fields are
// always sent, notes included when empty.
type CreateWorkoutRequest struct {
	Type      string `json:"type"`
	Duration  int    `json:"duration"`
	Intensity string `json:"intensity"`
	Notes     string `json:"notes"`
}

// CreateWorkoutResponse is the success body of POST /workouts.
type CreateWorkoutResponse struct {
	Success bool    `json:"success"`
	Message string  `json:"message,omitempty"`
	Workout Workout `json:"workout"`
}

// ListWorkoutsResponse is the success body of GET /workouts.
type ListWorkoutsResponse struct {
	Success  bool      `json:"success"`
	Count    int       `json:"count"`
	Workouts []Workout `json:"workouts"`
}

// DeleteWorkoutResponse is the success body of DELETE /workouts/{id}.
type DeleteWorkoutResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse is the body the API sends with every non-2xx status.
type ErrorResponse struct {
	Error string `json:"error"`
}
