// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/routine"
)

// PlanDependencies defines the interface for plan operations.
type PlanDependencies interface {
	GeneratePlan(ctx context.Context, userID, scanID string) (plan.Plan, error)
	CurrentPlan(ctx context.Context, userID string) (plan.Plan, error)
	RoutinesForDate(ctx context.Context, userID, planID string, date time.Time) (plan.View, error)
	MarkRoutineComplete(ctx context.Context, userID, planID string, routineID routine.ID, date time.Time) (plan.Plan, error)
}

// PlansHandler handles plan requests.
type PlansHandler struct {
	deps PlanDependencies
}

// NewPlansHandler creates a new plans handler.
func NewPlansHandler(deps PlanDependencies) *PlansHandler {
	return &PlansHandler{deps: deps}
}

// generateRequest mirrors the request schema for POST /plans/generate.
// ScanID defaults to the user's latest scan when omitted.
type generateRequest struct {
	ScanID string `json:"scanId"`
}

// HandleGeneratePlan handles POST /plans/generate requests.
func (h *PlansHandler) HandleGeneratePlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.NotFound(w, r)
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	p, err := h.deps.GeneratePlan(r.Context(), userID(r), req.ScanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, p)
}

// HandleCurrentPlan handles GET /plans/current requests.
func (h *PlansHandler) HandleCurrentPlan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	p, err := h.deps.CurrentPlan(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

// completeRequest mirrors the request schema for routine completion.
// Date defaults to the current day when omitted.
type completeRequest struct {
	Date string `json:"date"`
}

// HandlePlanSubpath routes requests under /plans/{plan_id}/...:
//
//	GET   /plans/{plan_id}/routines/{date}
//	PATCH /plans/{plan_id}/routines/{routine_id}/complete
func (h *PlansHandler) HandlePlanSubpath(w http.ResponseWriter, r *http.Request) {
	parts := strings.Split(strings.TrimPrefix(r.URL.Path, "/plans/"), "/")

	switch {
	case r.Method == http.MethodGet && len(parts) == 3 && parts[1] == "routines":
		h.handleRoutinesForDate(w, r, parts[0], parts[2])
	case r.Method == http.MethodPatch && len(parts) == 4 && parts[1] == "routines" && parts[3] == "complete":
		h.handleComplete(w, r, parts[0], parts[2])
	default:
		http.NotFound(w, r)
	}
}

func (h *PlansHandler) handleRoutinesForDate(w http.ResponseWriter, r *http.Request, planID, rawDate string) {
	date, err := parseDate(rawDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	view, err := h.deps.RoutinesForDate(r.Context(), userID(r), planID, date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *PlansHandler) handleComplete(w http.ResponseWriter, r *http.Request, planID, routineID string) {
	var req completeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	date := time.Now().UTC()
	if req.Date != "" {
		parsed, err := parseDate(req.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
			return
		}
		date = parsed
	}

	p, err := h.deps.MarkRoutineComplete(r.Context(), userID(r), planID, routine.ID(routineID), date)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}
