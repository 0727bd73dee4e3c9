package mcp

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

// newFakeAPI returns an HTTPClient pointed at a test server that serves
// canned JSON per path.
func newFakeAPI(t *testing.T, routes map[string]string) *HTTPClient {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, ok := routes[r.URL.Path]
		if !ok {
			http.Error(w, `{"error": "not found"}`, http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return NewHTTPClient(srv.URL)
}

func TestHTTPClientListExercises(t *testing.T) {
	var gotQuery string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/v1/exercises" {
			t.Errorf("path = %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("q")
		_, _ = w.Write([]byte(`[{"id": "bench-press", "name": "Bench Press", "source": "custom"}]`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL)
	exercises, err := c.ListExercises(context.Background(), "press")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQuery != "press" {
		t.Errorf("q = %q, want press", gotQuery)
	}
	if len(exercises) != 1 || exercises[0].ID != "bench-press" {
		t.Errorf("exercises = %+v", exercises)
	}
}

func TestHTTPClientGetSession(t *testing.T) {
	c := newFakeAPI(t, map[string]string{
		"/api/v1/sessions/2026-01-15-1000-push-day": `{
			"id": "2026-01-15-1000-push-day",
			"status": "completed",
			"started_at": "2026-01-15T10:00:00Z",
			"exercises": [{"exercise": "bench-press", "source": "custom", "target_sets": 4,
				"target_reps_min": 6, "target_reps_max": 8, "rest_seconds": 180,
				"sets": [{"weight": 80, "reps": 8, "completed": true}]}]
		}`,
	})

	s, err := c.GetSession(context.Background(), "2026-01-15-1000-push-day")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Status != "completed" {
		t.Errorf("status = %q", s.Status)
	}
	if s.CompletedSets() != 1 {
		t.Errorf("completed sets = %d, want 1", s.CompletedSets())
	}
}

func TestHTTPClientPropagatesHTTPErrors(t *testing.T) {
	c := newFakeAPI(t, nil)
	if _, err := c.GetWorkout(context.Background(), "missing"); err == nil {
		t.Error("expected error for 404 response")
	}
}

func TestHTTPClientSearchCatalogParams(t *testing.T) {
	var gotQ, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQ = r.URL.Query().Get("q")
		gotLimit = r.URL.Query().Get("limit")
		_, _ = w.Write([]byte(`[]`))
	}))
	t.Cleanup(srv.Close)

	c := NewHTTPClient(srv.URL)
	if _, err := c.SearchCatalog(context.Background(), "curl", 5); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotQ != "curl" || gotLimit != "5" {
		t.Errorf("q = %q, limit = %q", gotQ, gotLimit)
	}
}

func TestHTTPClientTrimsTrailingSlash(t *testing.T) {
	c := NewHTTPClient("http://example.com/")
	if c.baseURL != "http://example.com" {
		t.Errorf("baseURL = %q", c.baseURL)
	}
}
