package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"

	"github.com/claude/workoutlog/internal/client"
	"github.com/claude/workoutlog/internal/config"
	"github.com/claude/workoutlog/internal/ui"
	"github.com/spf13/cobra"
)

var (
	configPath string
	apiURL     string
	verbose    bool
)

// errReported means the failure was already shown to the user as a status
// message; only the exit code remains.
var errReported = errors.New("failed")

var rootCmd = &cobra.Command{
	Use:   "workoutlog",
	Short: "Log workouts to the workout tracker API",
	Long: `Log, list and delete workouts stored by the workout tracker API.

Running without a subcommand checks the connection and shows the history.

Quick Start:
  workoutlog log --type Run --duration 30 --intensity High
  workoutlog list
  workoutlog delete <id>`,
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if !a.controller.Init(cmd.Context()) {
			return errReported
		}
		a.term.PrintList(a.controller.State().List)
		return nil
	},
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (YAML)")
	rootCmd.PersistentFlags().StringVar(&apiURL, "api-url", "", "workout API base URL (overrides config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
	rootCmd.AddCommand(logCmd, listCmd, deleteCmd, healthCmd, mcpCmd, fakeServerCmd)
}

// app is the wiring shared by every command.
type app struct {
	cfg        *config.Config
	log        *slog.Logger
	client     *client.Client
	controller *ui.Controller
	term       *ui.Terminal
	closers    []func()
}

func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	if apiURL != "" {
		cfg.API.BaseURL = strings.TrimRight(apiURL, "/")
	}
	return cfg, nil
}

func newLogger(cfg *config.Config) *slog.Logger {
	level, _ := cfg.LogLevel()
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

func newApp(cmd *cobra.Command, opts ...ui.Option) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	a := &app{cfg: cfg, log: newLogger(cfg), term: ui.NewTerminal(cmd.OutOrStdout())}

	var hc *http.Client
	if cfg.Tailscale.Enabled {
		var closeTailnet func()
		hc, closeTailnet, err = newTailnetHTTPClient(cfg.Tailscale, a.log)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, closeTailnet)
	}

	a.client = client.New(cfg.API.BaseURL,
		client.WithHTTPClient(hc),
		client.WithTimeout(cfg.API.Timeout),
		client.WithLogger(a.log),
	)

	opts = append([]ui.Option{
		ui.WithStatusDuration(cfg.UI.StatusDuration),
		ui.WithStatusListener(a.term.PrintStatus),
		ui.WithLogger(a.log),
	}, opts...)
	a.controller = ui.NewController(a.client, opts...)

	a.log.Debug("workoutlog starting", "version", Version, "api", cfg.API.BaseURL, "tailscale", cfg.Tailscale.Enabled)
	return a, nil
}

// Close releases anything newApp started.
func (a *app) Close() {
	for _, c := range a.closers {
		c()
	}
}
