package server

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/claude/ironvault/internal/exercisedb"
)

func (s *Server) handleCatalogSearch(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	rows, err := s.catalog.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(rows))
}

func (s *Server) handleCatalogGet(w http.ResponseWriter, r *http.Request) {
	ex, err := s.catalog.Get(r.Context(), chi.URLParam(r, "slug"))
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, exercisedb.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, ex)
}

func (s *Server) handleCatalogImports(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	logs, err := s.catalog.ImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, orEmpty(logs))
}
