// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/visagelab/facesym/internal/domain/routine"
)

// RecommendationDependencies defines the interface for recommendation
// operations.
type RecommendationDependencies interface {
	Recommend(ctx context.Context, userID, scanID string, limit int) ([]routine.ID, error)
}

// RecommendationsHandler handles recommendation requests.
type RecommendationsHandler struct {
	deps RecommendationDependencies
}

// NewRecommendationsHandler creates a new recommendations handler.
func NewRecommendationsHandler(deps RecommendationDependencies) *RecommendationsHandler {
	return &RecommendationsHandler{deps: deps}
}

type recommendationsResponse struct {
	Routines []routine.ID `json:"routines"`
}

// HandleGetRecommendations handles GET /recommendations?scan_id=&limit=
// requests. Both query parameters are optional: scan_id defaults to the
// user's latest scan, limit to the configured default.
func (h *RecommendationsHandler) HandleGetRecommendations(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}

	var limit int
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: limit must be a positive integer", ErrBadRequest))
			return
		}
		limit = n
	}

	recs, err := h.deps.Recommend(r.Context(), userID(r), r.URL.Query().Get("scan_id"), limit)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if recs == nil {
		recs = []routine.ID{}
	}
	writeJSON(w, http.StatusOK, recommendationsResponse{Routines: recs})
}
