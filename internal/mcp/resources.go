package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/workoutlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) workoutHistory(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	resp, err := h.api.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}

	workouts := resp.Workouts
	if workouts == nil {
		workouts = []models.Workout{}
	}
	data, err := json.Marshal(workouts)
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
