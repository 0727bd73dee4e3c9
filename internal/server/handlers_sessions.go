package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/claude/ironvault/internal/models"
)

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	if status := r.URL.Query().Get("status"); status != "" {
		writeJSON(w, http.StatusOK, orEmpty(s.sessions.ListByStatus(models.SessionStatus(status))))
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(s.sessions.List()))
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.Get(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(chi.URLParam(r, "id")); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionReview(w http.ResponseWriter, r *http.Request) {
	var review models.SessionReview
	if err := json.NewDecoder(r.Body).Decode(&review); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if review.CompletedAt.IsZero() && !review.Skipped {
		review.CompletedAt = time.Now().UTC()
	}
	if err := s.sessions.SetReview(chi.URLParam(r, "id"), &review); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, review)
}

func (s *Server) handleSessionFeedback(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Feedback string `json:"feedback"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.sessions.SetCoachFeedback(chi.URLParam(r, "id"), body.Feedback); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleCurrentSession reports the session under the engine's control
// and its running duration.
func (s *Server) handleCurrentSession(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.engine.Current()
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no active session"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"session":          sess,
		"duration_seconds": int(s.engine.Duration().Seconds()),
	})
}

func (s *Server) handleSessionStart(w http.ResponseWriter, r *http.Request) {
	var body struct {
		WorkoutID string `json:"workout_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	var sess models.Session
	if body.WorkoutID == "" {
		var err error
		if sess, err = s.engine.StartEmpty(); err != nil {
			writeError(w, err)
			return
		}
	} else {
		wk, err := s.workouts.Get(body.WorkoutID)
		if err != nil {
			writeError(w, err)
			return
		}
		if sess, err = s.engine.StartFromWorkout(wk); err != nil {
			writeError(w, err)
			return
		}
	}
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) handleSessionPause(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Pause(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionResume(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Resume(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionFinish(w http.ResponseWriter, r *http.Request) {
	sess, err := s.engine.FinalizeActive()
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) handleSessionDiscard(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.Discard(); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionNotes(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Notes string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.SetNotes(body.Notes); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionAddExercise(w http.ResponseWriter, r *http.Request) {
	var ref models.ExerciseRef
	if err := json.NewDecoder(r.Body).Decode(&ref); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.AddExercise(ref); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionReorder(w http.ResponseWriter, r *http.Request) {
	var body struct {
		From int `json:"from"`
		To   int `json:"to"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.ReorderExercises(body.From, body.To); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionRemoveExercise(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.engine.RemoveExercise(idx); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionLogSet(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var set models.LoggedSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.LogSet(idx, set); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) handleSessionEditSet(w http.ResponseWriter, r *http.Request) {
	exIdx, err := indexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	setIdx, err := indexParam(r, "set")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var set models.LoggedSet
	if err := json.NewDecoder(r.Body).Decode(&set); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.EditSet(exIdx, setIdx, set); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionDeleteSet(w http.ResponseWriter, r *http.Request) {
	exIdx, err := indexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	setIdx, err := indexParam(r, "set")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.engine.DeleteSet(exIdx, setIdx); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionRPE(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		RPE float64 `json:"rpe"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.SetExerciseRPE(idx, body.RPE); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSessionEngagement(w http.ResponseWriter, r *http.Request) {
	idx, err := indexParam(r, "index")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	var body struct {
		Engagement models.MuscleEngagement `json:"engagement"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.engine.SetMuscleEngagement(idx, body.Engagement); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func indexParam(r *http.Request, name string) (int, error) {
	return strconv.Atoi(chi.URLParam(r, name))
}
