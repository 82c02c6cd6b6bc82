// Package fakeapi is an in-memory implementation of the workout API contract,
// used by tests and by `workoutlog fake-server` for local development.
package fakeapi

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/claude/workoutlog/internal/models"
	"github.com/go-chi/chi/v5"
)

// TimestampLayout is the display format the API uses for record timestamps.
const TimestampLayout = "2006-01-02 15:04:05"

// Server holds the in-memory workout list and the HTTP routes over it.
type Server struct {
	log    *slog.Logger
	router chi.Router
	now    func() time.Time
	newID  func() string

	mu       sync.Mutex
	workouts []models.Workout // oldest first
	faults   map[string]fault
	requests int
}

type fault struct {
	status  int
	message string
}

// New creates a Server with all routes configured.
func New(log *slog.Logger) *Server {
	s := &Server{
		log:    log,
		router: chi.NewRouter(),
		now:    time.Now,
		newID:  newUUID,
		faults: map[string]fault{},
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.countRequests)

	s.router.Get("/health", s.handleHealth)
	s.router.Route("/workouts", func(r chi.Router) {
		r.Post("/", s.handleCreate)
		r.Get("/", s.handleList)
		r.Delete("/{id}", s.handleDelete)
	})
}

// SetClock overrides the clock used for record timestamps.
func (s *Server) SetClock(now func() time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.now = now
}

// SetIDGenerator overrides how record ids are assigned.
func (s *Server) SetIDGenerator(gen func() string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.newID = gen
}

// Seed appends workouts as if they had been created in order.
func (s *Server) Seed(workouts ...models.Workout) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.workouts = append(s.workouts, workouts...)
}

// Workouts returns a copy of the stored workouts, oldest first.
func (s *Server) Workouts() []models.Workout {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Workout, len(s.workouts))
	copy(out, s.workouts)
	return out
}

// FailNext makes the next request for op ("create", "list", "delete" or
// "health") fail with the given status and error message.
func (s *Server) FailNext(op string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.faults[op] = fault{status: status, message: message}
}

// Requests returns how many requests the server has received.
func (s *Server) Requests() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.requests
}

func (s *Server) countRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		s.requests++
		s.mu.Unlock()
		next.ServeHTTP(w, r)
	})
}

// takeFault pops an injected failure for op, if any, and tags the request
// log with op.
func (s *Server) takeFault(r *http.Request, op string) (fault, bool) {
	s.mu.Lock()
	f, ok := s.faults[op]
	if ok {
		delete(s.faults, op)
	}
	s.mu.Unlock()
	markOp(r, op, ok)
	return f, ok
}
