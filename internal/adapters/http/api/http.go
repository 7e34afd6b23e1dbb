// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
)

// userHeader carries the caller identity. Absent means the single-user
// default profile.
const (
	userHeader  = "X-User-ID"
	defaultUser = "default"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	Assess(ctx context.Context, userID string, landmarks []score.Landmark) (score.Scan, error)
	Scans(ctx context.Context, userID string) ([]score.Scan, error)
	Scan(ctx context.Context, userID, scanID string) (score.Scan, error)
	Recommend(ctx context.Context, userID, scanID string, limit int) ([]routine.ID, error)
	GeneratePlan(ctx context.Context, userID, scanID string) (plan.Plan, error)
	CurrentPlan(ctx context.Context, userID string) (plan.Plan, error)
	RoutinesForDate(ctx context.Context, userID, planID string, date time.Time) (plan.View, error)
	MarkRoutineComplete(ctx context.Context, userID, planID string, routineID routine.ID, date time.Time) (plan.Plan, error)
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler          *HealthHandler
	statsHandler           *StatsHandler
	scansHandler           *ScansHandler
	recommendationsHandler *RecommendationsHandler
	plansHandler           *PlansHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, statsProvider StatsProvider) *Server {
	return &Server{
		healthHandler:          NewHealthHandler(),
		statsHandler:           NewStatsHandler(statsProvider),
		scansHandler:           NewScansHandler(deps),
		recommendationsHandler: NewRecommendationsHandler(deps),
		plansHandler:           NewPlansHandler(deps),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(ctx context.Context, mux *http.ServeMux) {
	// Specific paths first (most specific to least specific)
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
	mux.HandleFunc("/scans", MetricsMiddleware(s.scansHandler.HandleScans, "scans"))
	mux.HandleFunc("/scans/", MetricsMiddleware(s.scansHandler.HandleGetScan, "scan"))
	mux.HandleFunc("/recommendations", MetricsMiddleware(s.recommendationsHandler.HandleGetRecommendations, "recommendations"))
	mux.HandleFunc("/plans/generate", MetricsMiddleware(s.plansHandler.HandleGeneratePlan, "plan_generate"))
	mux.HandleFunc("/plans/current", MetricsMiddleware(s.plansHandler.HandleCurrentPlan, "plan_current"))
	mux.HandleFunc("/plans/", MetricsMiddleware(s.plansHandler.HandlePlanSubpath, "plan_routines"))
}

// userID resolves the caller identity from the request headers.
func userID(r *http.Request) string {
	if id := strings.TrimSpace(r.Header.Get(userHeader)); id != "" {
		return id
	}
	return defaultUser
}

// parseDate accepts either a calendar date (2006-01-02) or a full
// RFC3339 timestamp.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, errors.New("invalid date; must be YYYY-MM-DD or RFC3339")
	}
	return t, nil
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeServiceError translates service-layer failures to HTTP statuses.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case isValidation(err):
		writeError(w, http.StatusBadRequest, "bad_request", err)
	case isNotFound(err):
		writeError(w, http.StatusNotFound, "not_found", err)
	case isUpstream(err):
		writeError(w, http.StatusBadGateway, "upstream_error", err)
	default:
		writeError(w, http.StatusInternalServerError, "internal_error", err)
	}
}
