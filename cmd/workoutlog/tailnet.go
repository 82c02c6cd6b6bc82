package main

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/claude/workoutlog/internal/config"
	"tailscale.com/tsnet"
)

// newTailnetHTTPClient starts an embedded tsnet node and returns an HTTP
// client that dials through it, for APIs only reachable on the tailnet.
func newTailnetHTTPClient(cfg config.TailscaleConfig, log *slog.Logger) (*http.Client, func(), error) {
	ts := &tsnet.Server{
		Hostname: cfg.Hostname,
		Dir:      cfg.StateDir,
		Logf: func(format string, args ...any) {
			log.Debug(fmt.Sprintf(format, args...), "component", "tsnet")
		},
	}
	if err := ts.Start(); err != nil {
		return nil, nil, fmt.Errorf("tsnet start: %w", err)
	}
	log.Info("tsnet node started", "hostname", cfg.Hostname)

	return ts.HTTPClient(), func() { ts.Close() }, nil
}
