package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/visagelab/facesym/internal/adapters/repository"
	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
	. "github.com/smartystreets/goconvey/convey"
)

func TestMemoryStore_Plans(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()

		Convey("When no plan has been stored", func() {
			_, err := store.CurrentPlan(ctx, "user-1")

			Convey("Then CurrentPlan should fail with ErrNotFound", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When a plan is stored", func() {
			start := time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)
			p := plan.New("plan-1", "user-1", "scan-1",
				[]routine.ID{routine.ChinTucks, routine.GuaShaJawline}, start, 7, 3)
			So(store.PutPlan(ctx, p), ShouldBeNil)

			Convey("Then CurrentPlan should return it", func() {
				got, err := store.CurrentPlan(ctx, "user-1")
				So(err, ShouldBeNil)
				So(got.ID, ShouldEqual, "plan-1")
				So(len(got.DailyRoutines), ShouldEqual, 7)
			})

			Convey("Then other users should see no plan", func() {
				_, err := store.CurrentPlan(ctx, "user-2")
				So(err, ShouldWrap, repository.ErrNotFound)
			})

			Convey("Then mutating the returned plan should not affect stored state", func() {
				got, err := store.CurrentPlan(ctx, "user-1")
				So(err, ShouldBeNil)
				got.DailyRoutines[0].Completed = true

				fresh, err := store.CurrentPlan(ctx, "user-1")
				So(err, ShouldBeNil)
				So(fresh.DailyRoutines[0].Completed, ShouldBeFalse)
			})

			Convey("And a second plan is stored for the same user", func() {
				p2 := plan.New("plan-2", "user-1", "scan-2",
					[]routine.ID{routine.NeckStretch}, start.AddDate(0, 0, 3), 7, 3)
				So(store.PutPlan(ctx, p2), ShouldBeNil)

				Convey("Then it should replace the first", func() {
					got, err := store.CurrentPlan(ctx, "user-1")
					So(err, ShouldBeNil)
					So(got.ID, ShouldEqual, "plan-2")
				})
			})
		})
	})
}

func TestMemoryStore_Scans(t *testing.T) {
	Convey("Given a memory store with several scans", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()
		base := time.Date(2024, 2, 1, 8, 0, 0, 0, time.UTC)

		for i, id := range []string{"scan-a", "scan-b", "scan-c"} {
			So(store.PutScan(ctx, score.Scan{
				ID:        id,
				UserID:    "user-1",
				CreatedAt: base.Add(time.Duration(i) * time.Hour),
			}), ShouldBeNil)
		}

		Convey("When fetching one by id", func() {
			s, err := store.Scan(ctx, "user-1", "scan-b")

			Convey("Then it should return the record", func() {
				So(err, ShouldBeNil)
				So(s.ID, ShouldEqual, "scan-b")
			})
		})

		Convey("When fetching an unknown id", func() {
			_, err := store.Scan(ctx, "user-1", "scan-x")

			Convey("Then it should fail with ErrNotFound", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When listing", func() {
			scans, err := store.Scans(ctx, "user-1", 10)

			Convey("Then scans should come back newest first", func() {
				So(err, ShouldBeNil)
				So(len(scans), ShouldEqual, 3)
				So(scans[0].ID, ShouldEqual, "scan-c")
				So(scans[2].ID, ShouldEqual, "scan-a")
			})
		})

		Convey("When listing with a limit", func() {
			scans, err := store.Scans(ctx, "user-1", 2)

			Convey("Then the list should be capped", func() {
				So(err, ShouldBeNil)
				So(len(scans), ShouldEqual, 2)
				So(scans[0].ID, ShouldEqual, "scan-c")
			})
		})

		Convey("When listing for a user with no scans", func() {
			scans, err := store.Scans(ctx, "user-2", 10)

			Convey("Then the result should be empty without error", func() {
				So(err, ShouldBeNil)
				So(scans, ShouldBeEmpty)
			})
		})
	})
}

func TestMemoryStore_Tokens(t *testing.T) {
	Convey("Given an empty memory store", t, func() {
		store := repository.NewMemoryStore()
		ctx := context.Background()

		Convey("When no token has been stored", func() {
			_, err := store.Token(ctx, "user-1")

			Convey("Then Token should fail with ErrNotFound", func() {
				So(err, ShouldWrap, repository.ErrNotFound)
			})
		})

		Convey("When a token is stored and overwritten", func() {
			So(store.PutToken(ctx, "user-1", "tok-1"), ShouldBeNil)
			So(store.PutToken(ctx, "user-1", "tok-2"), ShouldBeNil)

			Convey("Then the last write should win", func() {
				tok, err := store.Token(ctx, "user-1")
				So(err, ShouldBeNil)
				So(tok, ShouldEqual, "tok-2")
			})
		})
	})
}
