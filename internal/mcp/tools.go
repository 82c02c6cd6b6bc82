package mcp

import (
	"context"
	"strings"

	"github.com/claude/workoutlog/internal/models"
	"github.com/claude/workoutlog/internal/ui"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolLogWorkout = mcp.NewTool("log_workout",
	mcp.WithDescription("Log a workout. The server assigns the id and timestamp and returns the stored record."),
	mcp.WithString("type", mcp.Required(), mcp.Description("Workout type (e.g. 'Run', 'Strength', 'Yoga')")),
	mcp.WithNumber("duration", mcp.Required(), mcp.Description("Duration in whole minutes"), mcp.Min(1)),
	mcp.WithString("intensity", mcp.Required(), mcp.Description("Intensity label (e.g. 'Low', 'Medium', 'High')")),
	mcp.WithString("notes", mcp.Description("Optional free-text notes")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List every logged workout, newest first, with the total count."),
)

var toolDeleteWorkout = mcp.NewTool("delete_workout",
	mcp.WithDescription("Delete a logged workout by its server-assigned id. This cannot be undone."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id as returned by list_workouts")),
)

var toolCheckHealth = mcp.NewTool("check_health",
	mcp.WithDescription("Check that the workout API is reachable."),
)

// --- Tool handlers ---

func (h *handlers) logWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workoutType, err := req.RequireString("type")
	if err != nil || strings.TrimSpace(workoutType) == "" {
		return mcp.NewToolResultError("type parameter is required"), nil
	}
	duration, err := req.RequireFloat("duration")
	if err != nil {
		return mcp.NewToolResultError("duration parameter is required"), nil
	}
	if duration != float64(int(duration)) {
		return mcp.NewToolResultError(ui.ErrInvalidDuration.Error()), nil
	}
	intensity, err := req.RequireString("intensity")
	if err != nil {
		return mcp.NewToolResultError("intensity parameter is required"), nil
	}

	resp, err := h.api.CreateWorkout(ctx, models.CreateWorkoutRequest{
		Type:      workoutType,
		Duration:  int(duration),
		Intensity: intensity,
		Notes:     req.GetString("notes", ""),
	})
	if err != nil {
		h.log.Error("mcp log_workout", "error", err)
		return mcp.NewToolResultError(ui.ErrorText(err)), nil
	}

	result, err := mcp.NewToolResultJSON(resp.Workout)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.api.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError(ui.ErrorText(err)), nil
	}

	workouts := resp.Workouts
	if workouts == nil {
		workouts = []models.Workout{}
	}
	count := resp.Count
	if count == 0 {
		count = len(workouts)
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"count":    count,
		"workouts": workouts,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil || id == "" {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	if err := h.api.DeleteWorkout(ctx, models.ID(id)); err != nil {
		h.log.Error("mcp delete_workout", "id", id, "error", err)
		return mcp.NewToolResultError(ui.ErrorText(err)), nil
	}
	return mcp.NewToolResultText("Workout deleted successfully"), nil
}

func (h *handlers) checkHealth(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := h.api.Health(ctx)
	if err != nil {
		return mcp.NewToolResultError(ui.ErrorText(err)), nil
	}
	result, err := mcp.NewToolResultJSON(resp)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
