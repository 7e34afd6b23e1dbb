// Package plan owns the day-by-day relationship between a generated plan
// and the user's calendar: generation, date-relative views, and idempotent
// completion tracking.
package plan

import (
	"fmt"
	"time"

	"github.com/visagelab/facesym/internal/domain/routine"
)

// DailyRoutine is one calendar day's assigned routine with its completion
// state.
type DailyRoutine struct {
	Date        time.Time  `json:"date"`
	RoutineID   routine.ID `json:"routineId"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completedAt,omitempty"`
}

// Plan assigns one routine per calendar day across a date range, plus
// undated bonus routines. A user has at most one active plan; generating a
// new one replaces it. Plans mutate only through Complete.
type Plan struct {
	ID            string         `json:"id"`
	UserID        string         `json:"userId"`
	ScanID        string         `json:"scanId"`
	StartDate     time.Time      `json:"startDate"`
	EndDate       time.Time      `json:"endDate"`
	DailyRoutines []DailyRoutine `json:"dailyRoutines"`
	BonusRoutines []routine.ID   `json:"bonusRoutines"`
}

// New builds a plan from a ranked recommendation list. The top dailyCount
// recommendations rotate round-robin across days consecutive UTC days
// starting at start; recommendations beyond the rotation set become bonus
// routines. An empty recommendation list yields a plan with no daily
// routines (the user already meets every goal).
func New(id, userID, scanID string, recs []routine.ID, start time.Time, days, dailyCount int) Plan {
	startDay := Day(start)

	p := Plan{
		ID:        id,
		UserID:    userID,
		ScanID:    scanID,
		StartDate: startDay,
		EndDate:   startDay.AddDate(0, 0, days-1),
	}

	if len(recs) == 0 || days < 1 || dailyCount < 1 {
		p.EndDate = startDay
		return p
	}

	rotation := recs
	if len(rotation) > dailyCount {
		rotation = recs[:dailyCount]
		p.BonusRoutines = append([]routine.ID(nil), recs[dailyCount:]...)
	}

	p.DailyRoutines = make([]DailyRoutine, 0, days)
	for i := 0; i < days; i++ {
		p.DailyRoutines = append(p.DailyRoutines, DailyRoutine{
			Date:      startDay.AddDate(0, 0, i),
			RoutineID: rotation[i%len(rotation)],
		})
	}
	return p
}

// Complete marks the daily routine matching both routineID and the UTC
// calendar day of date as completed at now. Completing an already-completed
// entry is a no-op success; changed reports whether state actually moved.
// A (routineID, date) pair with no matching entry fails with ErrNotFound.
func (p *Plan) Complete(routineID routine.ID, date, now time.Time) (changed bool, err error) {
	day := Day(date)
	for i := range p.DailyRoutines {
		dr := &p.DailyRoutines[i]
		if dr.RoutineID != routineID || !SameDay(dr.Date, day) {
			continue
		}
		if dr.Completed {
			return false, nil
		}
		completedAt := now.UTC()
		dr.Completed = true
		dr.CompletedAt = &completedAt
		return true, nil
	}
	return false, fmt.Errorf("%w: no daily routine %q on %s", ErrNotFound, routineID, day.Format(time.DateOnly))
}

// routineOn returns the daily routine assigned to the UTC calendar day of
// date, or nil if the day is outside the plan or unassigned.
func (p *Plan) routineOn(date time.Time) *DailyRoutine {
	day := Day(date)
	for i := range p.DailyRoutines {
		if SameDay(p.DailyRoutines[i].Date, day) {
			return &p.DailyRoutines[i]
		}
	}
	return nil
}
