package mcp

import (
	"log/slog"

	"github.com/claude/workoutlog/internal/ui"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered. Every
// tool is a thin wrapper over one workout API call.
func New(api ui.API, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("workoutlog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("Workout log. Log workouts (type, duration in minutes, intensity, notes), list the logged history, and delete entries by id. Ids and timestamps are assigned by the server."),
	)

	h := &handlers{api: api, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolLogWorkout, Handler: h.logWorkout},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolDeleteWorkout, Handler: h.deleteWorkout},
		server.ServerTool{Tool: toolCheckHealth, Handler: h.checkHealth},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resWorkoutHistory, Handler: h.workoutHistory},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	api ui.API
	log *slog.Logger
}

var resWorkoutHistory = mcp.NewResource(
	"workoutlog://history",
	"Workout History",
	mcp.WithResourceDescription("Every logged workout, newest first"),
	mcp.WithMIMEType("application/json"),
)
