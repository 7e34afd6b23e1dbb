package recommend

import (
	"sort"

	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
)

// Option applies a configuration option to the Engine.
type Option func(*Engine)

// WithCatalog replaces the default goal and mapping tables.
func WithCatalog(c Catalog) Option {
	return func(e *Engine) {
		if c.Goals != nil && c.Mappings != nil {
			e.catalog = c
		}
	}
}

// Engine computes ranked routine recommendations from a score vector.
// It is pure and deterministic: identical (scores, limit, catalog) always
// yields identical output, so it is safe to call from any goroutine and
// trivially memoizable.
type Engine struct {
	catalog Catalog
}

// New constructs an Engine with the default catalog unless overridden.
func New(opts ...Option) *Engine {
	e := &Engine{catalog: DefaultCatalog()}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// candidate is a transient ranking record: one per (factor, mapping) pair
// whose factor still falls short of its goal.
type candidate struct {
	routineID routine.ID
	priority  float64
}

// distance returns the factor's shortfall from its goal. For the inverted
// facialPuffiness factor the shortfall is how far the value sits above the
// goal; for every other factor, how far below. Never negative.
func (e *Engine) distance(f score.Factor, value float64) float64 {
	goal := e.catalog.Goals[f]
	var d float64
	if score.Inverted(f) {
		d = value - goal
	} else {
		d = goal - value
	}
	if d < 0 {
		return 0
	}
	return d
}

// Recommend returns up to limit distinct routine IDs ordered by priority
// (distance from goal times mapped impact, best first). Factors already at
// or beyond their goal contribute no candidates. An empty result is a
// valid outcome, not an error; limit <= 0 also yields an empty result.
func (e *Engine) Recommend(scores score.Vector, limit int) []routine.ID {
	if limit <= 0 {
		return nil
	}

	var candidates []candidate
	for _, f := range score.Factors() {
		d := e.distance(f, scores.Value(f))
		if d == 0 {
			continue
		}
		for _, m := range e.catalog.Mappings[f] {
			candidates = append(candidates, candidate{
				routineID: m.RoutineID,
				priority:  d * m.Impact,
			})
		}
	}

	// Stable keeps factor iteration order, then mapping order, on exact
	// priority ties.
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].priority > candidates[j].priority
	})

	// First occurrence wins: a routine ranks at its highest surviving
	// priority; later duplicates are discarded, not merged.
	result := make([]routine.ID, 0, limit)
	seen := make(map[routine.ID]struct{}, limit)
	for _, c := range candidates {
		if _, ok := seen[c.routineID]; ok {
			continue
		}
		seen[c.routineID] = struct{}{}
		result = append(result, c.routineID)
		if len(result) >= limit {
			break
		}
	}
	return result
}
