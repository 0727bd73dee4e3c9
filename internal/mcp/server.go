// Package mcp exposes the vault's records over the Model Context
// Protocol: read-only tools and resources for assistants that want to
// look at training history, workouts, and the exercise catalog.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("IronVault", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("IronVault training vault. Query exercises, workouts, programs, completed training sessions, and per-exercise training history. All tools are read-only."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListExercises, Handler: h.listExercises},
		server.ServerTool{Tool: toolGetExercise, Handler: h.getExercise},
		server.ServerTool{Tool: toolListWorkouts, Handler: h.listWorkouts},
		server.ServerTool{Tool: toolGetWorkout, Handler: h.getWorkout},
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolListSessions, Handler: h.listSessions},
		server.ServerTool{Tool: toolGetSession, Handler: h.getSession},
		server.ServerTool{Tool: toolTrainingHistory, Handler: h.trainingHistory},
		server.ServerTool{Tool: toolSearchCatalog, Handler: h.searchCatalog},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resRecentSessions, Handler: h.recentSessions},
		server.ServerResource{Resource: resWorkoutLibrary, Handler: h.workoutLibrary},
		server.ServerResource{Resource: resExerciseLibrary, Handler: h.exerciseLibrary},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resRecentSessions = mcp.NewResource(
	"ironvault://recent_sessions",
	"Recent Sessions",
	mcp.WithResourceDescription("The most recent training sessions, newest first"),
	mcp.WithMIMEType("application/json"),
)

var resWorkoutLibrary = mcp.NewResource(
	"ironvault://workout_library",
	"Workout Library",
	mcp.WithResourceDescription("All saved workouts with their exercise prescriptions"),
	mcp.WithMIMEType("application/json"),
)

var resExerciseLibrary = mcp.NewResource(
	"ironvault://exercise_library",
	"Exercise Library",
	mcp.WithResourceDescription("All custom exercise definitions in the vault"),
	mcp.WithMIMEType("application/json"),
)
