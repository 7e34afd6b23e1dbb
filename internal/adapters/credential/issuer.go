package credential

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"
)

const issuerTimeout = 10 * time.Second

// HTTPIssuer fetches bearer tokens from the identity endpoint.
type HTTPIssuer struct {
	url    string
	client *http.Client
}

// NewHTTPIssuer creates an issuer client for the given endpoint.
func NewHTTPIssuer(url string) *HTTPIssuer {
	return &HTTPIssuer{
		url:    url,
		client: &http.Client{Timeout: issuerTimeout},
	}
}

// issueResponse mirrors the issuer's JSON response body.
type issueResponse struct {
	JWT string `json:"jwt"`
}

// Issue fetches a fresh token. Unreachable issuer, non-2xx status, and
// malformed bodies all fail with ErrCredentialFetch; retries belong to
// the caller.
func (i *HTTPIssuer) Issue(ctx context.Context) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, i.url, nil)
	if err != nil {
		return "", fmt.Errorf("%w: build request: %w", ErrCredentialFetch, err)
	}

	resp, err := i.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrCredentialFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", fmt.Errorf("%w: issuer returned status %d", ErrCredentialFetch, resp.StatusCode)
	}

	var body issueResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("%w: decode response: %w", ErrCredentialFetch, err)
	}
	if body.JWT == "" {
		return "", fmt.Errorf("%w: empty token in response", ErrCredentialFetch)
	}
	return body.JWT, nil
}
