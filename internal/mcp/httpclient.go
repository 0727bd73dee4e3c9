package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/ironvault/internal/models"
)

// HTTPClient implements DataSource by calling the IronVault REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the vault lives on the remote server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

var _ DataSource = (*HTTPClient)(nil)

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values) ([]byte, error) {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("httpclient: read body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	return body, nil
}

func getJSON[T any](c *HTTPClient, ctx context.Context, path string, params url.Values) (T, error) {
	var v T
	body, err := c.get(ctx, path, params)
	if err != nil {
		return v, err
	}
	if err := json.Unmarshal(body, &v); err != nil {
		return v, fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return v, nil
}

func (c *HTTPClient) ListExercises(ctx context.Context, query string) ([]models.Exercise, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	return getJSON[[]models.Exercise](c, ctx, "/api/v1/exercises", params)
}

func (c *HTTPClient) GetExercise(ctx context.Context, id string) (models.Exercise, error) {
	return getJSON[models.Exercise](c, ctx, "/api/v1/exercises/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) ListWorkouts(ctx context.Context) ([]models.Workout, error) {
	return getJSON[[]models.Workout](c, ctx, "/api/v1/workouts", nil)
}

func (c *HTTPClient) GetWorkout(ctx context.Context, id string) (models.Workout, error) {
	return getJSON[models.Workout](c, ctx, "/api/v1/workouts/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) ListPrograms(ctx context.Context) ([]models.Program, error) {
	return getJSON[[]models.Program](c, ctx, "/api/v1/programs", nil)
}

func (c *HTTPClient) GetProgram(ctx context.Context, id string) (models.Program, error) {
	return getJSON[models.Program](c, ctx, "/api/v1/programs/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) ProgramWorkouts(ctx context.Context, id string) ([]models.Workout, error) {
	return getJSON[[]models.Workout](c, ctx, "/api/v1/programs/"+url.PathEscape(id)+"/workouts", nil)
}

func (c *HTTPClient) ListSessions(ctx context.Context, status string) ([]models.Session, error) {
	params := url.Values{}
	if status != "" {
		params.Set("status", status)
	}
	return getJSON[[]models.Session](c, ctx, "/api/v1/sessions", params)
}

func (c *HTTPClient) GetSession(ctx context.Context, id string) (models.Session, error) {
	return getJSON[models.Session](c, ctx, "/api/v1/sessions/"+url.PathEscape(id), nil)
}

func (c *HTTPClient) SearchCatalog(ctx context.Context, query string, limit int) ([]models.DatabaseExercise, error) {
	params := url.Values{}
	if query != "" {
		params.Set("q", query)
	}
	if limit > 0 {
		params.Set("limit", strconv.Itoa(limit))
	}
	return getJSON[[]models.DatabaseExercise](c, ctx, "/api/v1/catalog/exercises", params)
}
