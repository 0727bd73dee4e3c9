package server

import (
	"encoding/json"
	"net/http"
	"time"
)

// handleTimerState reports the rest countdown, the per-set stopwatch,
// and the first-set countdown in one poll-friendly payload.
func (s *Server) handleTimerState(w http.ResponseWriter, r *http.Request) {
	rest := s.engine.RestTimer()
	setTimer := s.engine.SetTimer()

	writeJSON(w, http.StatusOK, map[string]any{
		"rest_active":            rest.Active(),
		"rest_remaining_seconds": int(rest.Remaining().Seconds()),
		"rest_duration_seconds":  int(rest.Duration().Seconds()),
		"set_running":            setTimer.Running(),
		"set_elapsed_seconds":    int(setTimer.Elapsed().Seconds()),
		"countdown_active":       s.engine.Countdown().Active(),
	})
}

func (s *Server) handleBeginSet(w http.ResponseWriter, r *http.Request) {
	if err := s.engine.BeginSet(nil); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStartRest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds int `json:"seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if body.Seconds <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "seconds must be positive"})
		return
	}
	if err := s.engine.StartRest(time.Duration(body.Seconds)*time.Second, nil, nil); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleExtendRest(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Seconds int `json:"seconds"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.engine.ExtendRest(time.Duration(body.Seconds) * time.Second)
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleStopRest(w http.ResponseWriter, r *http.Request) {
	s.engine.RestTimer().Stop()
	w.WriteHeader(http.StatusNoContent)
}
