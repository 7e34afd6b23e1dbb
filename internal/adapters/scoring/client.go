// Package scoring talks to the external face-scoring provider.
package scoring

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/visagelab/facesym/internal/domain/score"
	"github.com/visagelab/facesym/pkg/metrics"
)

const requestTimeout = 30 * time.Second

// Client submits facial landmarks to the scoring provider and returns
// the raw per-factor scores keyed by the provider's short field names.
type Client struct {
	url    string
	client *http.Client
}

// NewClient creates a scoring client for the given endpoint URL.
func NewClient(url string) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: requestTimeout},
	}
}

type scoreRequest struct {
	Landmarks []score.Landmark `json:"landmarks"`
}

type scoreResponse struct {
	Model map[string]float64 `json:"model"`
}

// Score posts the landmarks with the given bearer token and returns the
// provider's raw score map. Any transport failure, non-success status,
// or malformed payload is reported as ErrProvider.
func (c *Client) Score(ctx context.Context, token string, landmarks []score.Landmark) (map[string]float64, error) {
	body, err := json.Marshal(scoreRequest{Landmarks: landmarks})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request: %w", ErrProvider, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrProvider, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+token)

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrProvider, err)
	}
	defer func() { _ = resp.Body.Close() }()
	metrics.RecordProviderLatency(float64(time.Since(start).Milliseconds()))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%w: unexpected status %d", ErrProvider, resp.StatusCode)
	}

	var out scoreResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("%w: decode response: %w", ErrProvider, err)
	}
	if out.Model == nil {
		return nil, fmt.Errorf("%w: response missing model scores", ErrProvider)
	}
	return out.Model, nil
}
