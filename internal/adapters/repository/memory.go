package repository

import (
	"context"
	"fmt"
	"sync"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
)

// MemoryStore implements Store with in-process maps. It backs tests and
// single-process deployments where no redis instance is configured.
type MemoryStore struct {
	mu     sync.RWMutex
	plans  map[string]plan.Plan             // userID -> active plan
	scans  map[string]map[string]score.Scan // userID -> scanID -> scan
	order  map[string][]string              // userID -> scan ids, newest first
	tokens map[string]string                // userID -> bearer token
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		plans:  make(map[string]plan.Plan),
		scans:  make(map[string]map[string]score.Scan),
		order:  make(map[string][]string),
		tokens: make(map[string]string),
	}
}

// PutPlan stores p as the user's active plan, replacing any prior plan.
func (m *MemoryStore) PutPlan(_ context.Context, p plan.Plan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.plans[p.UserID] = clonePlan(p)
	return nil
}

// CurrentPlan returns the user's active plan.
func (m *MemoryStore) CurrentPlan(_ context.Context, userID string) (plan.Plan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	p, ok := m.plans[userID]
	if !ok {
		return plan.Plan{}, fmt.Errorf("%w: no active plan for user %q", ErrNotFound, userID)
	}
	return clonePlan(p), nil
}

// PutScan stores an assessment record.
func (m *MemoryStore) PutScan(_ context.Context, s score.Scan) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.scans[s.UserID] == nil {
		m.scans[s.UserID] = make(map[string]score.Scan)
	}
	if _, exists := m.scans[s.UserID][s.ID]; !exists {
		m.order[s.UserID] = append([]string{s.ID}, m.order[s.UserID]...)
	}
	m.scans[s.UserID][s.ID] = s
	return nil
}

// Scan returns one of the user's scans by id.
func (m *MemoryStore) Scan(_ context.Context, userID, scanID string) (score.Scan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.scans[userID][scanID]
	if !ok {
		return score.Scan{}, fmt.Errorf("%w: scan %q", ErrNotFound, scanID)
	}
	return s, nil
}

// Scans returns up to limit of the user's scans, newest first.
func (m *MemoryStore) Scans(_ context.Context, userID string, limit int) ([]score.Scan, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := m.order[userID]
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]score.Scan, 0, len(ids))
	for _, id := range ids {
		out = append(out, m.scans[userID][id])
	}
	return out, nil
}

// Token returns the user's persisted bearer token.
func (m *MemoryStore) Token(_ context.Context, userID string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	tok, ok := m.tokens[userID]
	if !ok {
		return "", fmt.Errorf("%w: no token for user %q", ErrNotFound, userID)
	}
	return tok, nil
}

// PutToken stores the user's bearer token, replacing any prior value.
func (m *MemoryStore) PutToken(_ context.Context, userID, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[userID] = token
	return nil
}

// clonePlan deep-copies the slices so callers cannot mutate stored state.
func clonePlan(p plan.Plan) plan.Plan {
	out := p
	out.DailyRoutines = append([]plan.DailyRoutine(nil), p.DailyRoutines...)
	out.BonusRoutines = append([]routine.ID(nil), p.BonusRoutines...)
	return out
}
