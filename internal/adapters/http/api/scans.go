// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/visagelab/facesym/internal/domain/score"
)

// ScanDependencies defines the interface for assessment operations.
type ScanDependencies interface {
	Assess(ctx context.Context, userID string, landmarks []score.Landmark) (score.Scan, error)
	Scans(ctx context.Context, userID string) ([]score.Scan, error)
	Scan(ctx context.Context, userID, scanID string) (score.Scan, error)
}

// ScansHandler handles scan requests.
type ScansHandler struct {
	deps ScanDependencies
}

// NewScansHandler creates a new scans handler.
func NewScansHandler(deps ScanDependencies) *ScansHandler {
	return &ScansHandler{deps: deps}
}

// scanRequest mirrors the request schema for POST /scans.
type scanRequest struct {
	Landmarks []score.Landmark `json:"landmarks"`
}

func (s scanRequest) validate() error {
	if len(s.Landmarks) == 0 {
		return errors.New("missing landmarks")
	}
	return nil
}

// HandleScans handles POST /scans and GET /scans requests.
func (h *ScansHandler) HandleScans(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		h.handleAssess(w, r)
	case http.MethodGet:
		h.handleList(w, r)
	default:
		http.NotFound(w, r)
	}
}

func (h *ScansHandler) handleAssess(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", fmt.Errorf("%w: %w", ErrBadRequest, err))
		return
	}

	scan, err := h.deps.Assess(r.Context(), userID(r), req.Landmarks)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, scan)
}

func (h *ScansHandler) handleList(w http.ResponseWriter, r *http.Request) {
	scans, err := h.deps.Scans(r.Context(), userID(r))
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if scans == nil {
		scans = []score.Scan{}
	}
	writeJSON(w, http.StatusOK, scans)
}

// HandleGetScan handles GET /scans/{scan_id} requests.
func (h *ScansHandler) HandleGetScan(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.NotFound(w, r)
		return
	}
	// Extract path parameter after /scans/
	path := strings.TrimPrefix(r.URL.Path, "/scans/")
	if path == "" || strings.Contains(path, "/") {
		writeError(w, http.StatusBadRequest, "bad_request", ErrBadRequest)
		return
	}
	scan, err := h.deps.Scan(r.Context(), userID(r), path)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, scan)
}
