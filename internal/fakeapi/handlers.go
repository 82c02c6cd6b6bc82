package fakeapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/claude/workoutlog/internal/models"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func newUUID() string {
	return uuid.NewString()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if f, ok := s.takeFault(r, "health"); ok {
		writeError(w, f.status, f.message)
		return
	}
	writeJSON(w, http.StatusOK, models.HealthResponse{Status: "ok", Message: "Server is running"})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	if f, ok := s.takeFault(r, "create"); ok {
		writeError(w, f.status, f.message)
		return
	}

	var req models.CreateWorkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if strings.TrimSpace(req.Type) == "" {
		writeError(w, http.StatusBadRequest, "type is required")
		return
	}
	if req.Duration <= 0 {
		writeError(w, http.StatusBadRequest, "duration must be a positive number of minutes")
		return
	}

	s.mu.Lock()
	workout := models.Workout{
		ID:        models.ID(s.newID()),
		Type:      req.Type,
		Duration:  req.Duration,
		Intensity: req.Intensity,
		Notes:     req.Notes,
		Timestamp: s.now().Format(TimestampLayout),
	}
	s.workouts = append(s.workouts, workout)
	s.mu.Unlock()

	writeJSON(w, http.StatusCreated, models.CreateWorkoutResponse{
		Success: true,
		Message: "Workout logged successfully",
		Workout: workout,
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if f, ok := s.takeFault(r, "list"); ok {
		writeError(w, f.status, f.message)
		return
	}

	s.mu.Lock()
	workouts := make([]models.Workout, 0, len(s.workouts))
	for i := len(s.workouts) - 1; i >= 0; i-- {
		workouts = append(workouts, s.workouts[i])
	}
	s.mu.Unlock()

	writeJSON(w, http.StatusOK, models.ListWorkoutsResponse{
		Success:  true,
		Count:    len(workouts),
		Workouts: workouts,
	})
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if f, ok := s.takeFault(r, "delete"); ok {
		writeError(w, f.status, f.message)
		return
	}

	id := models.ID(chi.URLParam(r, "id"))

	s.mu.Lock()
	idx := -1
	for i, wk := range s.workouts {
		if wk.ID == id {
			idx = i
			break
		}
	}
	if idx >= 0 {
		s.workouts = append(s.workouts[:idx], s.workouts[idx+1:]...)
	}
	s.mu.Unlock()

	if idx < 0 {
		writeError(w, http.StatusNotFound, "Workout not found")
		return
	}
	writeJSON(w, http.StatusOK, models.DeleteWorkoutResponse{
		Success: true,
		Message: "Workout deleted successfully",
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, models.ErrorResponse{Error: message})
}
