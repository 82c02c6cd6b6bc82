package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/claude/workoutlog/internal/models"
	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request uuid so client and server logs can be
// correlated.
const RequestIDHeader = "X-Request-ID"

// Client talks to the workout API over HTTP.
type Client struct {
	baseURL    string
	httpClient *http.Client
	timeout    time.Duration
	log        *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying *http.Client (e.g. a tailnet client).
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout sets a per-request timeout. Zero leaves requests bounded only by
// their context and the transport defaults. It applies to a client passed via
// WithHTTPClient regardless of option order, without modifying that client.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithLogger sets the logger used for request tracing.
func WithLogger(log *slog.Logger) Option {
	return func(c *Client) {
		if log != nil {
			c.log = log
		}
	}
}

// New creates a Client targeting baseURL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{},
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// BaseURL returns the API base URL without a trailing slash.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// CreateWorkout POSTs a new workout. The server assigns id and timestamp.
func (c *Client) CreateWorkout(ctx context.Context, req models.CreateWorkoutRequest) (*models.CreateWorkoutResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, &TransportError{Op: "create", Err: fmt.Errorf("marshaling workout: %w", err)}
	}

	var resp models.CreateWorkoutResponse
	if err := c.do(ctx, "create", http.MethodPost, "/workouts", body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ListWorkouts fetches every workout the server holds.
func (c *Client) ListWorkouts(ctx context.Context) (*models.ListWorkoutsResponse, error) {
	var resp models.ListWorkoutsResponse
	if err := c.do(ctx, "list", http.MethodGet, "/workouts", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// DeleteWorkout deletes the workout with the given server-assigned id.
func (c *Client) DeleteWorkout(ctx context.Context, id models.ID) error {
	var resp models.DeleteWorkoutResponse
	return c.do(ctx, "delete", http.MethodDelete, "/workouts/"+url.PathEscape(string(id)), nil, &resp)
}

// Health checks that the API is reachable and reports itself up.
func (c *Client) Health(ctx context.Context) (*models.HealthResponse, error) {
	var resp models.HealthResponse
	if err := c.do(ctx, "health", http.MethodGet, "/health", nil, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// do performs one request. Non-2xx responses carrying a JSON body become
// *ServerError; failures to send, read or decode become *TransportError.
func (c *Client) do(ctx context.Context, op, method, path string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("creating request: %w", err)}
	}
	reqID := uuid.NewString()
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, reqID)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("request failed", "op", op, "request_id", reqID, "error", err)
		return &TransportError{Op: op, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("reading body: %w", err)}
	}

	c.log.Debug("request",
		"op", op,
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"request_id", reqID,
		"duration", time.Since(start).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return newServerError(op, resp.StatusCode, data)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decoding response: %w", err)}
	}
	return nil
}

// newServerError decodes a non-2xx body. A body that is not JSON (a proxy's
// HTML page, an empty reply) is a transport failure; JSON without an error
// field falls back to the status text.
func newServerError(op string, status int, body []byte) error {
	var payload models.ErrorResponse
	if err := json.Unmarshal(body, &payload); err != nil {
		return &TransportError{Op: op, Err: fmt.Errorf("decoding error response (status %d): %w", status, err)}
	}
	if payload.Error != "" {
		return &ServerError{Status: status, Message: payload.Error}
	}
	msg := http.StatusText(status)
	if msg == "" {
		msg = fmt.Sprintf("status %d", status)
	}
	return &ServerError{Status: status, Message: msg}
}
