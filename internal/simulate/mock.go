package simulate

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/visagelab/facesym/internal/domain/score"
	"github.com/visagelab/facesym/pkg/logger"
)

// mockSigningKey signs tokens issued by the mock provider. The service
// never verifies signatures, only the iat claim, so any key works.
var mockSigningKey = []byte("facesym-mock-provider")

// MockProvider emulates the external face-scoring provider: it issues
// short-lived JWTs on /jwt and scores landmark payloads on /score.
// Scores are a deterministic function of the landmark geometry so a
// rescan of the same face is stable.
type MockProvider struct {
	srv *http.Server
}

// NewMockProvider builds a provider listening on addr.
func NewMockProvider(addr string) *MockProvider {
	mux := http.NewServeMux()
	p := &MockProvider{
		srv: &http.Server{
			Addr:              addr,
			Handler:           mux,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}
	mux.HandleFunc("/jwt", p.handleJWT)
	mux.HandleFunc("/score", p.handleScore)
	return p
}

// Serve blocks serving requests until the listener fails or Shutdown is
// called.
func (p *MockProvider) Serve(ctx context.Context) error {
	logger.Get().Info(ctx, "mock scoring provider listening", logger.String("addr", p.srv.Addr))
	if err := p.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Shutdown stops the provider.
func (p *MockProvider) Shutdown(ctx context.Context) error {
	return p.srv.Shutdown(ctx)
}

func (p *MockProvider) handleJWT(w http.ResponseWriter, r *http.Request) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"iat": time.Now().Unix(),
		"sub": "facesym-sim",
	})
	signed, err := tok.SignedString(mockSigningKey)
	if err != nil {
		http.Error(w, "signing failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]string{"jwt": signed})
}

func (p *MockProvider) handleScore(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	if !strings.HasPrefix(r.Header.Get("Authorization"), "Bearer ") {
		http.Error(w, "missing bearer token", http.StatusUnauthorized)
		return
	}

	var req struct {
		Landmarks []score.Landmark `json:"landmarks"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Landmarks) == 0 {
		http.Error(w, "invalid landmarks", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_ = json.NewEncoder(w).Encode(map[string]any{
		"model": scoreLandmarks(req.Landmarks),
	})
}

// Score value bounds for the mock model.
const (
	mockScoreFloor = 35.0
	mockScoreSpan  = 60.0
)

// scoreLandmarks derives the ten provider fields from landmark geometry.
// More spatial jitter reads as a less symmetric face; the puff field is
// inverted, so jitter pushes it up instead of down.
func scoreLandmarks(landmarks []score.Landmark) map[string]float64 {
	jitter := meshJitter(landmarks)
	fields := []string{"overall", "eye", "nose", "puff", "clar", "chin", "thirds", "jaw", "mid", "brow"}

	out := make(map[string]float64, len(fields))
	for i, f := range fields {
		// Spread the fields apart so each factor lands differently.
		skew := math.Sin(float64(i+1) * jitter * 97)
		val := mockScoreFloor + mockScoreSpan*(1-jitter)*(0.7+0.3*math.Abs(skew))
		if f == "puff" {
			val = 100 - val
		}
		out[f] = math.Round(clamp(val)*10) / 10
	}
	return out
}

// meshJitter estimates asymmetry as mean deviation from the ideal
// diagonal mesh the generator perturbs, normalized to [0, 1].
func meshJitter(landmarks []score.Landmark) float64 {
	var sum float64
	for i, lm := range landmarks {
		base := float64(i) / float64(len(landmarks))
		sum += math.Abs(lm.X-base) + math.Abs(lm.Y-(1-base)) + math.Abs(lm.Z)
	}
	j := sum / float64(len(landmarks)) * 20
	if j > 1 {
		return 1
	}
	return j
}

func clamp(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 100:
		return 100
	default:
		return v
	}
}
