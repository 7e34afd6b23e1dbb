package plan

import (
	"time"

	"github.com/visagelab/facesym/internal/domain/routine"
)

// upcomingPreview caps how many future assignments surface alongside
// today's view.
const upcomingPreview = 3

// View is what a user should see for one queried calendar date.
type View struct {
	// Actionable is today's assigned routine while it remains incomplete.
	// Never set for past or future dates.
	Actionable *routine.ID `json:"actionable,omitempty"`

	// Bonus routines are undated and surface only on today's view.
	Bonus []routine.ID `json:"bonus,omitempty"`

	// Upcoming lists locked future assignments: a short preview on
	// today's view, or the single assignment when querying a future date.
	Upcoming []routine.ID `json:"upcoming,omitempty"`

	// Completed lists routines finished on the queried date.
	Completed []routine.ID `json:"completed,omitempty"`
}

// ViewFor computes the view for the UTC calendar day of date, where now
// anchors which day counts as "today". Dates outside the plan's range
// yield an empty view in every category.
func (p *Plan) ViewFor(date, now time.Time) View {
	today := Day(now)
	queried := Day(date)
	assigned := p.routineOn(queried)

	switch {
	case queried.Equal(today):
		v := View{Bonus: append([]routine.ID(nil), p.BonusRoutines...)}
		if assigned != nil {
			if assigned.Completed {
				v.Completed = []routine.ID{assigned.RoutineID}
			} else {
				id := assigned.RoutineID
				v.Actionable = &id
			}
		}
		for i := range p.DailyRoutines {
			if len(v.Upcoming) >= upcomingPreview {
				break
			}
			if p.DailyRoutines[i].Date.After(today) {
				v.Upcoming = append(v.Upcoming, p.DailyRoutines[i].RoutineID)
			}
		}
		return v

	case queried.Before(today):
		// Missed days are never resurfaced as actionable.
		if assigned != nil && assigned.Completed {
			return View{Completed: []routine.ID{assigned.RoutineID}}
		}
		return View{}

	default: // future
		if assigned != nil {
			return View{Upcoming: []routine.ID{assigned.RoutineID}}
		}
		return View{}
	}
}
