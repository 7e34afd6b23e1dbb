package plan_test

import (
	"testing"
	"time"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/routine"
	. "github.com/smartystreets/goconvey/convey"
)

var recs = []routine.ID{
	routine.GuaShaJawline,
	routine.HardMewingHold,
	routine.ChinTucks,
	routine.OrbOculiTraining,
	routine.NeckStretch,
}

func newTestPlan(start time.Time) plan.Plan {
	return plan.New("plan-1", "user-1", "scan-1", recs, start, 14, 3)
}

func TestNew(t *testing.T) {
	Convey("Given a ranked recommendation list", t, func() {
		start := time.Date(2024, 1, 5, 10, 30, 0, 0, time.UTC)

		Convey("When generating a 14-day plan with a 3-routine rotation", func() {
			p := newTestPlan(start)

			Convey("Then the range should start at midnight UTC of the start day", func() {
				So(p.StartDate, ShouldEqual, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
				So(p.EndDate, ShouldEqual, time.Date(2024, 1, 18, 0, 0, 0, 0, time.UTC))
			})

			Convey("Then every day in range should carry exactly one routine", func() {
				So(len(p.DailyRoutines), ShouldEqual, 14)
				for i, dr := range p.DailyRoutines {
					So(dr.Date, ShouldEqual, p.StartDate.AddDate(0, 0, i))
					So(dr.Completed, ShouldBeFalse)
					So(dr.CompletedAt, ShouldBeNil)
				}
			})

			Convey("Then the top routines should rotate round-robin", func() {
				So(p.DailyRoutines[0].RoutineID, ShouldEqual, routine.GuaShaJawline)
				So(p.DailyRoutines[1].RoutineID, ShouldEqual, routine.HardMewingHold)
				So(p.DailyRoutines[2].RoutineID, ShouldEqual, routine.ChinTucks)
				So(p.DailyRoutines[3].RoutineID, ShouldEqual, routine.GuaShaJawline)
			})

			Convey("Then overflow recommendations should become bonus routines", func() {
				So(p.BonusRoutines, ShouldResemble, []routine.ID{
					routine.OrbOculiTraining,
					routine.NeckStretch,
				})
			})
		})

		Convey("When the recommendation list is shorter than the rotation", func() {
			p := plan.New("plan-2", "user-1", "scan-2", recs[:2], start, 7, 3)

			Convey("Then all recommendations rotate and no bonus remains", func() {
				So(len(p.DailyRoutines), ShouldEqual, 7)
				So(p.BonusRoutines, ShouldBeEmpty)
				So(p.DailyRoutines[0].RoutineID, ShouldEqual, routine.GuaShaJawline)
				So(p.DailyRoutines[1].RoutineID, ShouldEqual, routine.HardMewingHold)
				So(p.DailyRoutines[2].RoutineID, ShouldEqual, routine.GuaShaJawline)
			})
		})

		Convey("When the recommendation list is empty", func() {
			p := plan.New("plan-3", "user-1", "scan-3", nil, start, 14, 3)

			Convey("Then the plan should carry no daily or bonus routines", func() {
				So(p.DailyRoutines, ShouldBeEmpty)
				So(p.BonusRoutines, ShouldBeEmpty)
			})
		})
	})
}

func TestComplete(t *testing.T) {
	Convey("Given a generated plan", t, func() {
		start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
		p := newTestPlan(start)
		now := start.Add(9 * time.Hour)
		dayD := p.DailyRoutines[0]

		Convey("When completing day D's routine", func() {
			changed, err := p.Complete(dayD.RoutineID, dayD.Date, now)

			Convey("Then the matching entry should be marked with a timestamp", func() {
				So(err, ShouldBeNil)
				So(changed, ShouldBeTrue)
				So(p.DailyRoutines[0].Completed, ShouldBeTrue)
				So(p.DailyRoutines[0].CompletedAt, ShouldNotBeNil)
				So(*p.DailyRoutines[0].CompletedAt, ShouldEqual, now)
			})

			Convey("And completing it a second time", func() {
				again, err := p.Complete(dayD.RoutineID, dayD.Date, now.Add(time.Hour))

				Convey("Then it should be a no-op success with unchanged state", func() {
					So(err, ShouldBeNil)
					So(again, ShouldBeFalse)
					So(*p.DailyRoutines[0].CompletedAt, ShouldEqual, now)
				})
			})

			Convey("And completing the same routine on its next rotation day", func() {
				// gua-sha-jawline recurs on day 3 of the rotation.
				other := p.DailyRoutines[3]
				So(other.RoutineID, ShouldEqual, dayD.RoutineID)

				changed, err := p.Complete(other.RoutineID, other.Date, now)

				Convey("Then day D's completion flag should not be affected", func() {
					So(err, ShouldBeNil)
					So(changed, ShouldBeTrue)
					So(p.DailyRoutines[0].Completed, ShouldBeTrue)
					So(p.DailyRoutines[3].Completed, ShouldBeTrue)
					So(p.DailyRoutines[1].Completed, ShouldBeFalse)
				})
			})
		})

		Convey("When the completion date carries a time-of-day component", func() {
			changed, err := p.Complete(dayD.RoutineID, time.Date(2024, 1, 5, 18, 30, 0, 0, time.UTC), now)

			Convey("Then it should still match the midnight-dated entry", func() {
				So(err, ShouldBeNil)
				So(changed, ShouldBeTrue)
			})
		})

		Convey("When no entry matches the routine and date pair", func() {
			Convey("Then a wrong date should fail with ErrNotFound", func() {
				_, err := p.Complete(dayD.RoutineID, start.AddDate(0, 0, 1), now)
				So(err, ShouldWrap, plan.ErrNotFound)
			})

			Convey("Then an unassigned routine should fail with ErrNotFound", func() {
				_, err := p.Complete(routine.WallPostureReset, dayD.Date, now)
				So(err, ShouldWrap, plan.ErrNotFound)
			})

			Convey("Then a date outside the range should fail with ErrNotFound", func() {
				_, err := p.Complete(dayD.RoutineID, start.AddDate(0, 0, 30), now)
				So(err, ShouldWrap, plan.ErrNotFound)
			})
		})
	})
}

func TestDay(t *testing.T) {
	Convey("Given timestamps in different zones on the same UTC day", t, func() {
		zone := time.FixedZone("UTC+2", 2*3600)
		a := time.Date(2024, 1, 5, 12, 0, 0, 0, time.UTC)
		b := time.Date(2024, 1, 5, 20, 30, 0, 0, zone) // 18:30 UTC

		Convey("Then SameDay should consider them equal", func() {
			So(plan.SameDay(a, b), ShouldBeTrue)
		})

		Convey("Then Day should truncate to midnight UTC", func() {
			So(plan.Day(b), ShouldEqual, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC))
		})

		Convey("Then a local time past the UTC day boundary should not match", func() {
			c := time.Date(2024, 1, 6, 1, 30, 0, 0, zone) // 2024-01-05 23:30 UTC
			So(plan.SameDay(a, c), ShouldBeTrue)

			d := time.Date(2024, 1, 6, 3, 30, 0, 0, zone) // 2024-01-06 01:30 UTC
			So(plan.SameDay(a, d), ShouldBeFalse)
		})
	})
}
