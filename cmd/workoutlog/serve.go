package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/claude/workoutlog/internal/fakeapi"
	"github.com/claude/workoutlog/internal/mcp"
	"github.com/claude/workoutlog/internal/ui"
	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

var fakeServerAddr string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check that the workout API is reachable",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		if _, err := a.client.Health(cmd.Context()); err != nil {
			a.term.PrintStatus(ui.StatusMessage{Text: ui.ErrorText(err), IsError: true})
			return errReported
		}
		a.term.PrintStatus(ui.StatusMessage{Text: "✓ Connected to server"})
		return nil
	},
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the workout tools over MCP (stdio)",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp(cmd)
		if err != nil {
			return err
		}
		defer a.Close()

		a.log.Info("serving MCP over stdio", "api", a.cfg.API.BaseURL)
		if err := server.ServeStdio(mcp.New(a.client, Version, a.log)); err != nil {
			return fmt.Errorf("mcp server: %w", err)
		}
		return nil
	},
}

var fakeServerCmd = &cobra.Command{
	Use:   "fake-server",
	Short: "Run an in-memory workout API for local development",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		log := newLogger(cfg)

		addr := cfg.FakeServer.Addr
		if fakeServerAddr != "" {
			addr = fakeServerAddr
		}
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			return fmt.Errorf("listen %s: %w", addr, err)
		}
		log.Info("fake API starting", "addr", listener.Addr().String())

		httpSrv := &http.Server{Handler: fakeapi.New(log)}
		errc := make(chan error, 1)
		go func() {
			if err := httpSrv.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errc <- err
			}
			close(errc)
		}()

		// Graceful shutdown
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		select {
		case sig := <-quit:
			log.Info("shutting down", "signal", sig)
		case err := <-errc:
			if err != nil {
				return fmt.Errorf("fake API: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Error("shutdown error", "error", err)
		}
		log.Info("fake API stopped")
		return nil
	},
}

func init() {
	fakeServerCmd.Flags().StringVar(&fakeServerAddr, "addr", "", "listen address (overrides fake_server.addr)")
}
