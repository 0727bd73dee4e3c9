package mcp

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
)

const recentSessionCount = 10

func jsonResource(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentSessions(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	sessions, err := h.ds.ListSessions(ctx, "")
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, newestFirst(sessions, recentSessionCount))
}

func (h *handlers) workoutLibrary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, workouts)
}

func (h *handlers) exerciseLibrary(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	exercises, err := h.ds.ListExercises(ctx, "")
	if err != nil {
		return nil, err
	}
	return jsonResource(req.Params.URI, exercises)
}
