package plan_test

import (
	"testing"
	"time"

	"github.com/visagelab/facesym/internal/domain/routine"
	. "github.com/smartystreets/goconvey/convey"
)

func TestViewFor(t *testing.T) {
	Convey("Given an active plan anchored at 2024-01-05", t, func() {
		start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
		p := newTestPlan(start)
		now := start.AddDate(0, 0, 2).Add(14 * time.Hour) // day 3 of the plan

		Convey("When viewing today", func() {
			v := p.ViewFor(now, now)

			Convey("Then today's routine should be actionable", func() {
				So(v.Actionable, ShouldNotBeNil)
				So(*v.Actionable, ShouldEqual, p.DailyRoutines[2].RoutineID)
				So(v.Completed, ShouldBeEmpty)
			})

			Convey("Then bonus routines should surface", func() {
				So(v.Bonus, ShouldResemble, p.BonusRoutines)
			})

			Convey("Then at most three upcoming routines should preview", func() {
				So(v.Upcoming, ShouldResemble, []routine.ID{
					p.DailyRoutines[3].RoutineID,
					p.DailyRoutines[4].RoutineID,
					p.DailyRoutines[5].RoutineID,
				})
			})
		})

		Convey("When today's routine is completed", func() {
			dr := p.DailyRoutines[2]
			_, err := p.Complete(dr.RoutineID, dr.Date, now)
			So(err, ShouldBeNil)

			v := p.ViewFor(now, now)

			Convey("Then the actionable slot should be empty and the routine listed as completed", func() {
				So(v.Actionable, ShouldBeNil)
				So(v.Completed, ShouldResemble, []routine.ID{dr.RoutineID})
			})

			Convey("Then bonus routines should still surface", func() {
				So(v.Bonus, ShouldResemble, p.BonusRoutines)
			})
		})

		Convey("When viewing a past date", func() {
			past := start // day 1, now is day 3

			Convey("And that day was completed", func() {
				dr := p.DailyRoutines[0]
				_, err := p.Complete(dr.RoutineID, dr.Date, now)
				So(err, ShouldBeNil)

				v := p.ViewFor(past, now)

				Convey("Then only the completed category should be populated", func() {
					So(v.Completed, ShouldResemble, []routine.ID{dr.RoutineID})
					So(v.Actionable, ShouldBeNil)
					So(v.Bonus, ShouldBeEmpty)
					So(v.Upcoming, ShouldBeEmpty)
				})
			})

			Convey("And that day was missed", func() {
				v := p.ViewFor(past, now)

				Convey("Then no category should resurface it", func() {
					So(v.Actionable, ShouldBeNil)
					So(v.Completed, ShouldBeEmpty)
					So(v.Bonus, ShouldBeEmpty)
					So(v.Upcoming, ShouldBeEmpty)
				})
			})
		})

		Convey("When viewing a future date inside the plan", func() {
			future := start.AddDate(0, 0, 6)
			v := p.ViewFor(future, now)

			Convey("Then only that day's assignment should show as upcoming", func() {
				So(v.Upcoming, ShouldResemble, []routine.ID{p.DailyRoutines[6].RoutineID})
				So(v.Actionable, ShouldBeNil)
				So(v.Bonus, ShouldBeEmpty)
				So(v.Completed, ShouldBeEmpty)
			})
		})

		Convey("When viewing a date outside the plan's range", func() {
			outside := start.AddDate(0, 0, 60)
			v := p.ViewFor(outside, now)

			Convey("Then every category should be empty", func() {
				So(v.Actionable, ShouldBeNil)
				So(v.Bonus, ShouldBeEmpty)
				So(v.Upcoming, ShouldBeEmpty)
				So(v.Completed, ShouldBeEmpty)
			})
		})

		Convey("When querying with a time-of-day on the queried date", func() {
			v := p.ViewFor(now.Add(7*time.Hour+45*time.Minute), now)

			Convey("Then it should resolve to the same day view", func() {
				So(v.Actionable, ShouldNotBeNil)
			})
		})
	})
}
