package simulate

import (
	"github.com/visagelab/facesym/internal/domain/plan"
)

// sameCompletion reports whether two plan snapshots carry identical
// completion state. A replayed completion must not move any timestamp.
func sameCompletion(a, b plan.Plan) bool {
	if a.ID != b.ID || len(a.DailyRoutines) != len(b.DailyRoutines) {
		return false
	}
	for i := range a.DailyRoutines {
		ar, br := a.DailyRoutines[i], b.DailyRoutines[i]
		if ar.Completed != br.Completed {
			return false
		}
		switch {
		case ar.CompletedAt == nil && br.CompletedAt == nil:
		case ar.CompletedAt == nil || br.CompletedAt == nil:
			return false
		case !ar.CompletedAt.Equal(*br.CompletedAt):
			return false
		}
	}
	return true
}
