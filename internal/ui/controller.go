package ui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/claude/workoutlog/internal/client"
	"github.com/claude/workoutlog/internal/models"
)

// API is the subset of the workout API the controller drives.
type API interface {
	CreateWorkout(ctx context.Context, req models.CreateWorkoutRequest) (*models.CreateWorkoutResponse, error)
	ListWorkouts(ctx context.Context) (*models.ListWorkoutsResponse, error)
	DeleteWorkout(ctx context.Context, id models.ID) error
	Health(ctx context.Context) (*models.HealthResponse, error)
}

// Compile-time check: *client.Client satisfies API.
var _ API = (*client.Client)(nil)

// Confirmer asks the user a yes/no question.
type Confirmer func(prompt string) bool

// ErrInvalidDuration is reported when the duration field is not a whole number.
var ErrInvalidDuration = errors.New("duration must be a whole number of minutes")

// Controller owns the UI state and runs the create/list/delete round-trips.
// It is safe for concurrent use.
type Controller struct {
	api       API
	confirm   Confirmer
	now       func() time.Time
	statusTTL time.Duration
	onStatus  func(StatusMessage)
	log       *slog.Logger

	mu         sync.Mutex
	state      State
	lastSeq    uint64 // last list request issued
	appliedSeq uint64 // newest list request whose outcome was applied
	inFlight   int
}

// Option configures a Controller.
type Option func(*Controller)

// WithConfirmer sets the delete confirmation. Without one every delete is
// declined.
func WithConfirmer(fn Confirmer) Option {
	return func(c *Controller) { c.confirm = fn }
}

// WithClock overrides the clock used for status expiry.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) { c.now = now }
}

// WithStatusDuration sets how long status messages stay visible.
func WithStatusDuration(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.statusTTL = d
		}
	}
}

// WithStatusListener registers fn to be called with every status message as
// it is shown. fn runs with the controller lock held and must not call back
// into the controller.
func WithStatusListener(fn func(StatusMessage)) Option {
	return func(c *Controller) { c.onStatus = fn }
}

// WithLogger sets the controller logger.
func WithLogger(log *slog.Logger) Option {
	return func(c *Controller) {
		if log != nil {
			c.log = log
		}
	}
}

// NewController creates a Controller in the idle state with an empty list.
func NewController(api API, opts ...Option) *Controller {
	c := &Controller{
		api:       api,
		now:       time.Now,
		statusTTL: DefaultStatusDuration,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.state.LoadControl = idleLoadControl()
	return c
}

// State returns a snapshot of the UI state. An expired status message is
// reported as nil.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	s := c.state.clone()
	if s.Status != nil && !s.Status.Visible(c.now()) {
		s.Status = nil
	}
	return s
}

// SetForm replaces the form contents, as if typed by the user.
func (c *Controller) SetForm(in FormInput) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state.Form = in
}

// Init mirrors a page load: it announces the connection and loads the list.
// The health check is advisory. An API without a health route, or one that
// fails it, still gets its list fetched, and the fetch outcome decides the
// status shown and the result.
func (c *Controller) Init(ctx context.Context) bool {
	if _, err := c.api.Health(ctx); err != nil {
		c.log.Warn("health check failed", "error", err)
	} else {
		c.mu.Lock()
		c.setStatus("✓ Connected to server", false)
		c.mu.Unlock()
	}
	return c.FetchWorkouts(ctx)
}

// SubmitForm submits the form held in the state. The form is cleared only
// when the workout was created.
func (c *Controller) SubmitForm(ctx context.Context) bool {
	c.mu.Lock()
	in := c.state.Form
	c.mu.Unlock()

	if !c.SubmitWorkout(ctx, in) {
		return false
	}

	c.mu.Lock()
	c.state.Form = FormInput{}
	c.mu.Unlock()
	return true
}

// SubmitWorkout creates a workout from raw form input and, on success,
// refreshes the list. It reports whether the server accepted the workout.
func (c *Controller) SubmitWorkout(ctx context.Context, in FormInput) bool {
	duration, err := ParseDuration(in.Duration)
	if err != nil {
		c.mu.Lock()
		c.setStatus("⚠ Error: "+ErrInvalidDuration.Error(), true)
		c.mu.Unlock()
		return false
	}

	req := models.CreateWorkoutRequest{
		Type:      in.Type,
		Duration:  duration,
		Intensity: in.Intensity,
		Notes:     in.Notes,
	}
	if _, err := c.api.CreateWorkout(ctx, req); err != nil {
		c.mu.Lock()
		c.showError(err)
		c.mu.Unlock()
		return false
	}

	c.mu.Lock()
	c.setStatus(fmt.Sprintf("✓ %s workout logged successfully!", in.Type), false)
	c.mu.Unlock()

	c.FetchWorkouts(ctx)
	return true
}

// FetchWorkouts loads the list. The load control is disabled while any fetch
// is in flight. When fetches overlap, only the most recently issued one is
// applied; older responses are dropped. It reports whether this request
// succeeded.
func (c *Controller) FetchWorkouts(ctx context.Context) bool {
	c.mu.Lock()
	c.lastSeq++
	seq := c.lastSeq
	c.inFlight++
	c.state.LoadControl = LoadControl{Disabled: true, Label: LoadLabelLoading}
	c.mu.Unlock()
	defer c.settleLoad()

	resp, err := c.api.ListWorkouts(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq < c.appliedSeq {
		c.log.Debug("dropping stale list response", "seq", seq, "applied", c.appliedSeq)
		return err == nil
	}
	c.appliedSeq = seq

	if err != nil {
		c.showError(err)
		return false
	}

	c.state.List = RenderList(resp.Workouts)
	count := resp.Count
	if count == 0 {
		count = len(resp.Workouts)
	}
	c.setStatus(fmt.Sprintf("✓ Loaded %d workout(s)", count), false)
	return true
}

// settleLoad returns the load control to idle once no fetch is in flight.
func (c *Controller) settleLoad() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight--
	if c.inFlight <= 0 {
		c.inFlight = 0
		c.state.LoadControl = idleLoadControl()
	}
}

// DeleteWorkout deletes a workout after confirmation and refreshes the list.
// A declined confirmation sends nothing and changes nothing.
func (c *Controller) DeleteWorkout(ctx context.Context, id models.ID) bool {
	if c.confirm == nil || !c.confirm(DeletePrompt) {
		return false
	}

	if err := c.api.DeleteWorkout(ctx, id); err != nil {
		c.mu.Lock()
		c.showError(err)
		c.mu.Unlock()
		return false
	}

	c.mu.Lock()
	c.setStatus("✓ Workout deleted successfully", false)
	c.mu.Unlock()

	c.FetchWorkouts(ctx)
	return true
}

// setStatus must be called with c.mu held.
func (c *Controller) setStatus(text string, isError bool) {
	msg := StatusMessage{
		Text:      text,
		IsError:   isError,
		ExpiresAt: c.now().Add(c.statusTTL),
	}
	c.state.Status = &msg
	if c.onStatus != nil {
		c.onStatus(msg)
	}
}

// showError must be called with c.mu held.
func (c *Controller) showError(err error) {
	c.log.Warn("request failed", "error", err)
	c.setStatus(ErrorText(err), true)
}

// ErrorText formats err the way the status bar shows it: server errors carry
// the server's message, everything else is a connection error.
func ErrorText(err error) string {
	var se *client.ServerError
	if errors.As(err, &se) {
		return "⚠ Error: " + se.Message
	}
	var te *client.TransportError
	if errors.As(err, &te) {
		return "⚠ Connection error: " + te.Err.Error()
	}
	return "⚠ Connection error: " + err.Error()
}

// ParseDuration parses the duration field as whole minutes.
func ParseDuration(s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidDuration, s)
	}
	return n, nil
}
