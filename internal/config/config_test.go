package config_test

import (
	"testing"

	"github.com/visagelab/facesym/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigDefaults(t *testing.T) {
	convey.Convey("Given a default config", t, func() {
		cfg := config.New()

		convey.Convey("Then it should carry sane defaults", func() {
			convey.So(cfg.LogLevel, convey.ShouldEqual, "info")
			convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
			convey.So(cfg.IssuerURL, convey.ShouldNotBeEmpty)
			convey.So(cfg.ScoringURL, convey.ShouldNotBeEmpty)
			convey.So(cfg.PlanDays, convey.ShouldEqual, 14)
			convey.So(cfg.DailyRoutines, convey.ShouldEqual, 3)
			convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 5)
			convey.So(cfg.MaxScanList, convey.ShouldEqual, 50)
		})

		convey.Convey("Then the daily rotation should fit inside the recommendation limit", func() {
			convey.So(cfg.DailyRoutines, convey.ShouldBeLessThanOrEqualTo, cfg.RecommendationLimit)
		})
	})
}
