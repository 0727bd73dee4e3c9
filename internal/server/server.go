// Package server exposes the record repositories, the exercise catalog,
// and the session engine over HTTP.
package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/ironvault/internal/exercisedb"
	"github.com/claude/ironvault/internal/records"
	"github.com/claude/ironvault/internal/session"
	"github.com/claude/ironvault/internal/vault"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	exercises *records.ExerciseRepo
	workouts  *records.WorkoutRepo
	programs  *records.ProgramRepo
	sessions  *records.SessionRepo
	catalog   *exercisedb.DB
	engine    *session.Engine
	log       *slog.Logger
	apiKey    string
	router    chi.Router
}

// New creates a new Server with all routes configured.
func New(store vault.Store, catalog *exercisedb.DB, engine *session.Engine, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		exercises: records.NewExerciseRepo(store),
		workouts:  records.NewWorkoutRepo(store),
		programs:  records.NewProgramRepo(store),
		sessions:  records.NewSessionRepo(store),
		catalog:   catalog,
		engine:    engine,
		log:       log,
		apiKey:    apiKey,
		router:    chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	// Read endpoints (no auth — tsnet handles access)
	s.router.Get("/api/v1/exercises", s.handleListExercises)
	s.router.Get("/api/v1/exercises/{id}", s.handleGetExercise)
	s.router.Get("/api/v1/workouts", s.handleListWorkouts)
	s.router.Get("/api/v1/workouts/{id}", s.handleGetWorkout)
	s.router.Get("/api/v1/programs", s.handleListPrograms)
	s.router.Get("/api/v1/programs/{id}", s.handleGetProgram)
	s.router.Get("/api/v1/programs/{id}/workouts", s.handleProgramWorkouts)
	s.router.Get("/api/v1/sessions", s.handleListSessions)
	s.router.Get("/api/v1/sessions/{id}", s.handleGetSession)
	s.router.Get("/api/v1/session", s.handleCurrentSession)
	s.router.Get("/api/v1/session/timer", s.handleTimerState)
	s.router.Get("/api/v1/catalog/exercises", s.handleCatalogSearch)
	s.router.Get("/api/v1/catalog/exercises/{slug}", s.handleCatalogGet)
	s.router.Get("/api/v1/catalog/imports", s.handleCatalogImports)

	// Write endpoints (API key required)
	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Post("/exercises", s.handleCreateExercise)
		r.Put("/exercises/{id}", s.handleUpdateExercise)
		r.Delete("/exercises/{id}", s.handleDeleteExercise)

		r.Post("/workouts", s.handleCreateWorkout)
		r.Put("/workouts/{id}", s.handleUpdateWorkout)
		r.Delete("/workouts/{id}", s.handleDeleteWorkout)

		r.Post("/programs", s.handleCreateProgram)
		r.Put("/programs/{id}", s.handleUpdateProgram)
		r.Delete("/programs/{id}", s.handleDeleteProgram)

		r.Delete("/sessions/{id}", s.handleDeleteSession)
		r.Post("/sessions/{id}/review", s.handleSessionReview)
		r.Post("/sessions/{id}/feedback", s.handleSessionFeedback)

		r.Post("/session/start", s.handleSessionStart)
		r.Post("/session/pause", s.handleSessionPause)
		r.Post("/session/resume", s.handleSessionResume)
		r.Post("/session/finish", s.handleSessionFinish)
		r.Post("/session/discard", s.handleSessionDiscard)
		r.Post("/session/notes", s.handleSessionNotes)
		r.Post("/session/exercises", s.handleSessionAddExercise)
		r.Post("/session/exercises/reorder", s.handleSessionReorder)
		r.Delete("/session/exercises/{index}", s.handleSessionRemoveExercise)
		r.Post("/session/exercises/{index}/sets", s.handleSessionLogSet)
		r.Put("/session/exercises/{index}/sets/{set}", s.handleSessionEditSet)
		r.Delete("/session/exercises/{index}/sets/{set}", s.handleSessionDeleteSet)
		r.Post("/session/exercises/{index}/rpe", s.handleSessionRPE)
		r.Post("/session/exercises/{index}/engagement", s.handleSessionEngagement)

		r.Post("/session/begin-set", s.handleBeginSet)
		r.Post("/session/rest", s.handleStartRest)
		r.Post("/session/rest/extend", s.handleExtendRest)
		r.Post("/session/rest/stop", s.handleStopRest)
	})
}
