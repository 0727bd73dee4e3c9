package mcp

import (
	"context"
	"strings"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/claude/ironvault/internal/models"
)

const defaultHistoryLimit = 20

// newestFirst reverses a chronological list and caps it at limit.
func newestFirst[T any](xs []T, limit int) []T {
	out := make([]T, 0, min(len(xs), limit))
	for i := len(xs) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, xs[i])
	}
	return out
}

// HistoryEntry summarizes one session's work on a single exercise.
type HistoryEntry struct {
	SessionID string             `json:"session_id"`
	Date      time.Time          `json:"date"`
	Sets      []models.LoggedSet `json:"sets"`
	TopWeight float64            `json:"top_weight"`
	Volume    float64            `json:"volume"` // weight x reps over completed sets
}

// historyForExercise extracts per-session history for an exercise from a
// chronological session list, newest first. The exercise matches by name
// case-insensitively.
func historyForExercise(sessions []models.Session, exercise string, limit int) []HistoryEntry {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	want := strings.ToLower(exercise)

	var entries []HistoryEntry
	for i := len(sessions) - 1; i >= 0 && len(entries) < limit; i-- {
		s := sessions[i]
		for _, ex := range s.Exercises {
			if strings.ToLower(ex.Exercise) != want || len(ex.Sets) == 0 {
				continue
			}
			entry := HistoryEntry{SessionID: s.ID, Date: s.StartedAt, Sets: ex.Sets}
			for _, set := range ex.Sets {
				if !set.Completed {
					continue
				}
				if set.Weight > entry.TopWeight {
					entry.TopWeight = set.Weight
				}
				entry.Volume += set.Weight * float64(set.Reps)
			}
			entries = append(entries, entry)
			break
		}
	}
	return entries
}

// --- Tool definitions ---

var toolListExercises = mcp.NewTool("list_exercises",
	mcp.WithDescription("List custom exercise definitions, optionally filtered by a name substring."),
	mcp.WithString("query", mcp.Description("Case-insensitive name filter (e.g. 'press')")),
)

var toolGetExercise = mcp.NewTool("get_exercise",
	mcp.WithDescription("Get a single custom exercise definition by id, including defaults and notes."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Exercise id (e.g. 'bench-press')")),
)

var toolListWorkouts = mcp.NewTool("list_workouts",
	mcp.WithDescription("List all saved workouts with their exercise prescriptions (sets, rep ranges, rest)."),
)

var toolGetWorkout = mcp.NewTool("get_workout",
	mcp.WithDescription("Get a single workout by id."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Workout id (e.g. 'push-day')")),
)

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List all training programs."),
)

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Get a program by id, with its workout list expanded (references resolved, inline definitions included)."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Program id")),
)

var toolListSessions = mcp.NewTool("list_sessions",
	mcp.WithDescription("List training sessions, newest first. Optionally filter by status."),
	mcp.WithString("status", mcp.Description("Filter by status"), mcp.Enum("active", "paused", "completed", "discarded")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 20.")),
)

var toolGetSession = mcp.NewTool("get_session",
	mcp.WithDescription("Get a full training session by id: exercises, logged sets, RPE, notes, review, and coach feedback."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Session id (e.g. '2026-01-15-1000-push-day')")),
)

var toolTrainingHistory = mcp.NewTool("get_training_history",
	mcp.WithDescription("Per-session history for one exercise: logged sets, top weight, and volume, newest first. Useful for progression analysis."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name or id (case-insensitive, e.g. 'bench-press')")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of sessions to return. Defaults to 20.")),
)

var toolSearchCatalog = mcp.NewTool("search_exercise_database",
	mcp.WithDescription("Search the imported read-only exercise database by name."),
	mcp.WithString("query", mcp.Required(), mcp.Description("Name substring to search for")),
	mcp.WithNumber("limit", mcp.Description("Maximum number of rows. Defaults to 50.")),
)

// --- Tool handlers ---

func (h *handlers) listExercises(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercises, err := h.ds.ListExercises(ctx, req.GetString("query", ""))
	if err != nil {
		h.log.Error("mcp list_exercises", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(exercises)
}

func (h *handlers) getExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	ex, err := h.ds.GetExercise(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("lookup failed: " + err.Error()), nil
	}
	return jsonResult(ex)
}

func (h *handlers) listWorkouts(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	workouts, err := h.ds.ListWorkouts(ctx)
	if err != nil {
		h.log.Error("mcp list_workouts", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(workouts)
}

func (h *handlers) getWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	w, err := h.ds.GetWorkout(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("lookup failed: " + err.Error()), nil
	}
	return jsonResult(w)
}

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	programs, err := h.ds.ListPrograms(ctx)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(programs)
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	p, err := h.ds.GetProgram(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("lookup failed: " + err.Error()), nil
	}
	workouts, err := h.ds.ProgramWorkouts(ctx, id)
	if err != nil {
		h.log.Warn("mcp get_program: workout expansion failed", "program", id, "error", err)
	}
	return jsonResult(map[string]any{"program": p, "workouts": workouts})
}

func (h *handlers) listSessions(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	sessions, err := h.ds.ListSessions(ctx, req.GetString("status", ""))
	if err != nil {
		h.log.Error("mcp list_sessions", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	limit := req.GetInt("limit", defaultHistoryLimit)
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	return jsonResult(newestFirst(sessions, limit))
}

func (h *handlers) getSession(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}
	s, err := h.ds.GetSession(ctx, id)
	if err != nil {
		return mcp.NewToolResultError("lookup failed: " + err.Error()), nil
	}
	return jsonResult(s)
}

func (h *handlers) trainingHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	sessions, err := h.ds.ListSessions(ctx, string(models.StatusCompleted))
	if err != nil {
		h.log.Error("mcp get_training_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(historyForExercise(sessions, exercise, req.GetInt("limit", defaultHistoryLimit)))
}

func (h *handlers) searchCatalog(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := req.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("query parameter is required"), nil
	}
	rows, err := h.ds.SearchCatalog(ctx, query, req.GetInt("limit", 0))
	if err != nil {
		h.log.Error("mcp search_exercise_database", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(rows)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
