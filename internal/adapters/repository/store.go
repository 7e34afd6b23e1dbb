// Package repository defines user-scoped persistence for plans, scans, and
// scoring credentials. No transactional guarantees are assumed beyond
// atomic single-key writes.
package repository

import (
	"context"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/score"
)

// PlanStore persists the single active plan per user. Writing a new plan
// replaces the prior one; superseded plans are not retained.
type PlanStore interface {
	PutPlan(ctx context.Context, p plan.Plan) error

	// CurrentPlan returns the user's active plan.
	// Returns ErrNotFound when the user has none.
	CurrentPlan(ctx context.Context, userID string) (plan.Plan, error)
}

// ScanStore persists immutable assessment records.
type ScanStore interface {
	PutScan(ctx context.Context, s score.Scan) error

	// Scan returns one of the user's scans by id.
	// Returns ErrNotFound when absent.
	Scan(ctx context.Context, userID, scanID string) (score.Scan, error)

	// Scans returns up to limit of the user's scans, newest first.
	Scans(ctx context.Context, userID string, limit int) ([]score.Scan, error)
}

// TokenStore persists the scoring bearer token across process restarts.
// Last writer wins; concurrent re-issuance must not corrupt the value.
type TokenStore interface {
	// Token returns the persisted token. Returns ErrNotFound when absent.
	Token(ctx context.Context, userID string) (string, error)

	PutToken(ctx context.Context, userID, token string) error
}

// Store bundles all persistence concerns behind one dependency.
type Store interface {
	PlanStore
	ScanStore
	TokenStore
}
