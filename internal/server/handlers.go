package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/records"
	"github.com/claude/ironvault/internal/session"
)

func (s *Server) handleListExercises(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	writeJSON(w, http.StatusOK, orEmpty(s.exercises.Search(query)))
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	ex, err := s.exercises.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleCreateExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	created, err := s.exercises.Create(ex)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateExercise(w http.ResponseWriter, r *http.Request) {
	var ex models.Exercise
	if err := json.NewDecoder(r.Body).Decode(&ex); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	ex.ID = chi.URLParam(r, "id")
	if err := s.exercises.Update(ex); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	if err := s.exercises.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListWorkouts(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(s.workouts.List()))
}

func (s *Server) handleGetWorkout(w http.ResponseWriter, r *http.Request) {
	wk, err := s.workouts.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) handleCreateWorkout(w http.ResponseWriter, r *http.Request) {
	var wk models.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	created, err := s.workouts.Create(wk)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateWorkout(w http.ResponseWriter, r *http.Request) {
	var wk models.Workout
	if err := json.NewDecoder(r.Body).Decode(&wk); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	wk.ID = chi.URLParam(r, "id")
	if err := s.workouts.Update(wk); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, wk)
}

func (s *Server) handleDeleteWorkout(w http.ResponseWriter, r *http.Request) {
	if err := s.workouts.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, orEmpty(s.programs.List()))
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	p, err := s.programs.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// handleProgramWorkouts expands a program's workout list, references and
// inline definitions alike.
func (s *Server) handleProgramWorkouts(w http.ResponseWriter, r *http.Request) {
	p, err := s.programs.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(s.programs.ResolveWorkouts(p, s.workouts)))
}

func (s *Server) handleCreateProgram(w http.ResponseWriter, r *http.Request) {
	var p models.Program
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	created, err := s.programs.Create(p)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	var p models.Program
	if err := json.NewDecoder(r.Body).Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	p.ID = chi.URLParam(r, "id")
	if err := s.programs.Update(p); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	if err := s.programs.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps repository and engine sentinels onto HTTP statuses.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, records.ErrNotFound), errors.Is(err, session.ErrNoSession):
		status = http.StatusNotFound
	case errors.Is(err, records.ErrExists), errors.Is(err, session.ErrSessionRunning),
		errors.Is(err, session.ErrBadTransition):
		status = http.StatusConflict
	case errors.Is(err, session.ErrInvalidSet), errors.Is(err, session.ErrBadIndex),
		errors.Is(err, session.ErrNoCompletedSets):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// orEmpty keeps list responses as [] rather than null.
func orEmpty[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
