package config_test

import (
	"context"
	"os"
	"testing"

	"github.com/visagelab/facesym/internal/config"
	"github.com/smartystreets/goconvey/convey"
)

func TestConfigLoader(t *testing.T) {
	convey.Convey("Given a config loader", t, func() {
		ctx := context.Background()

		convey.Convey("When loading config with defaults only", func() {
			clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load successfully with defaults", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9080")
				convey.So(cfg.PlanDays, convey.ShouldEqual, 14)
				convey.So(cfg.DailyRoutines, convey.ShouldEqual, 3)
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 5)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "")
			})
		})

		convey.Convey("When loading config with environment variables", func() {
			_ = os.Setenv("FACESYM_ADDR", ":8080")
			_ = os.Setenv("FACESYM_PLAN_DAYS", "7")
			_ = os.Setenv("FACESYM_DAILY_ROUTINES", "2")
			_ = os.Setenv("FACESYM_REDIS_ADDR", "localhost:6379")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should override defaults with env vars", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8080")
				convey.So(cfg.PlanDays, convey.ShouldEqual, 7)
				convey.So(cfg.DailyRoutines, convey.ShouldEqual, 2)
				convey.So(cfg.RedisAddr, convey.ShouldEqual, "localhost:6379")
			})
		})

		convey.Convey("When loading config with a YAML file", func() {
			yamlContent := `
addr: ":9090"
plan_days: 21
recommendation_limit: 8
issuer_url: "https://issuer.example.com/jwt"
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FACESYM_CONFIG", tmpFile)
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should load from the YAML file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg, convey.ShouldNotBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":9090")
				convey.So(cfg.PlanDays, convey.ShouldEqual, 21)
				convey.So(cfg.RecommendationLimit, convey.ShouldEqual, 8)
				convey.So(cfg.IssuerURL, convey.ShouldEqual, "https://issuer.example.com/jwt")
			})
		})

		convey.Convey("When loading config with both file and environment variables", func() {
			yamlContent := `
addr: ":9090"
plan_days: 21
`
			tmpFile := createTempConfigFile(yamlContent)
			defer func() { _ = os.Remove(tmpFile) }()

			_ = os.Setenv("FACESYM_CONFIG", tmpFile)
			_ = os.Setenv("FACESYM_ADDR", ":8081")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then env vars should take precedence over the file", func() {
				convey.So(err, convey.ShouldBeNil)
				convey.So(cfg.Addr, convey.ShouldEqual, ":8081")
				convey.So(cfg.PlanDays, convey.ShouldEqual, 21)
			})
		})

		convey.Convey("When the config is invalid", func() {
			_ = os.Setenv("FACESYM_PLAN_DAYS", "0")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail with ErrInvalidConfig", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrInvalidConfig)
			})
		})

		convey.Convey("When the config file does not exist", func() {
			_ = os.Setenv("FACESYM_CONFIG", "/nonexistent/config.yaml")
			defer clearConfigEnvVars()

			cfg, err := config.Load(ctx)

			convey.Convey("Then it should fail with ErrLoadConfig", func() {
				convey.So(cfg, convey.ShouldBeNil)
				convey.So(err, convey.ShouldWrap, config.ErrLoadConfig)
			})
		})
	})
}

func clearConfigEnvVars() {
	for _, key := range []string{
		"FACESYM_CONFIG",
		"FACESYM_ADDR",
		"FACESYM_LOG_LEVEL",
		"FACESYM_REDIS_ADDR",
		"FACESYM_REDIS_DB",
		"FACESYM_ISSUER_URL",
		"FACESYM_SCORING_URL",
		"FACESYM_PLAN_DAYS",
		"FACESYM_DAILY_ROUTINES",
		"FACESYM_RECOMMENDATION_LIMIT",
		"FACESYM_MAX_SCAN_LIST",
	} {
		_ = os.Unsetenv(key)
	}
}

func createTempConfigFile(content string) string {
	f, err := os.CreateTemp("", "facesym-config-*.yaml")
	if err != nil {
		panic(err)
	}
	if _, err := f.WriteString(content); err != nil {
		panic(err)
	}
	_ = f.Close()
	return f.Name()
}
