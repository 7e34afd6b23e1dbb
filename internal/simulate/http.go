package simulate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
)

// HTTPClient wraps http.Client with a timeout and user identity header.
type HTTPClient struct {
	client  *http.Client
	baseURL string
}

// newHTTPClient creates a new HTTP client with timeout.
func newHTTPClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client:  &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

// do performs one request with a JSON body (nil for none) and decodes a
// JSON response into out (nil to discard).
func (c *HTTPClient) do(ctx context.Context, method, path, user string, body, out any) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if user != "" {
		req.Header.Set("X-User-ID", user)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, fmt.Errorf("failed to read response body: %w", err)
	}
	if out != nil && resp.StatusCode < http.StatusBadRequest {
		if err := json.Unmarshal(data, out); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return resp.StatusCode, nil
}

// checkHealth verifies the service answers on /healthz.
func (c *HTTPClient) checkHealth(ctx context.Context) error {
	status, err := c.do(ctx, http.MethodGet, "/healthz", "", nil, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to service: %w", err)
	}
	if status != http.StatusOK {
		return fmt.Errorf("service health check failed with status: %d", status)
	}
	return nil
}

// postScan submits one landmark set for assessment.
func (c *HTTPClient) postScan(ctx context.Context, user string, landmarks []score.Landmark) (score.Scan, error) {
	var scan score.Scan
	body := map[string]any{"landmarks": landmarks}
	status, err := c.do(ctx, http.MethodPost, "/scans", user, body, &scan)
	if err != nil {
		return score.Scan{}, err
	}
	if status != http.StatusCreated {
		return score.Scan{}, fmt.Errorf("scan submission failed with status: %d", status)
	}
	return scan, nil
}

// getRecommendations fetches the user's ranked routines.
func (c *HTTPClient) getRecommendations(ctx context.Context, user string) ([]routine.ID, error) {
	var out struct {
		Routines []routine.ID `json:"routines"`
	}
	status, err := c.do(ctx, http.MethodGet, "/recommendations", user, nil, &out)
	if err != nil {
		return nil, err
	}
	if status != http.StatusOK {
		return nil, fmt.Errorf("recommendations failed with status: %d", status)
	}
	return out.Routines, nil
}

// generatePlan creates a fresh plan for the user.
func (c *HTTPClient) generatePlan(ctx context.Context, user string) (plan.Plan, error) {
	var p plan.Plan
	status, err := c.do(ctx, http.MethodPost, "/plans/generate", user, nil, &p)
	if err != nil {
		return plan.Plan{}, err
	}
	if status != http.StatusCreated {
		return plan.Plan{}, fmt.Errorf("plan generation failed with status: %d", status)
	}
	return p, nil
}

// completeRoutine marks one daily routine done for a calendar date.
func (c *HTTPClient) completeRoutine(ctx context.Context, user, planID string, routineID routine.ID, date time.Time) (plan.Plan, error) {
	var p plan.Plan
	path := fmt.Sprintf("/plans/%s/routines/%s/complete", planID, routineID)
	body := map[string]string{"date": date.UTC().Format(time.DateOnly)}
	status, err := c.do(ctx, http.MethodPatch, path, user, body, &p)
	if err != nil {
		return plan.Plan{}, err
	}
	if status != http.StatusOK {
		return plan.Plan{}, fmt.Errorf("routine completion failed with status: %d", status)
	}
	return p, nil
}

// routinesForDate fetches the date view of the user's plan.
func (c *HTTPClient) routinesForDate(ctx context.Context, user, planID string, date time.Time) (plan.View, error) {
	var v plan.View
	path := fmt.Sprintf("/plans/%s/routines/%s", planID, date.UTC().Format(time.DateOnly))
	status, err := c.do(ctx, http.MethodGet, path, user, nil, &v)
	if err != nil {
		return plan.View{}, err
	}
	if status != http.StatusOK {
		return plan.View{}, fmt.Errorf("routine view failed with status: %d", status)
	}
	return v, nil
}
