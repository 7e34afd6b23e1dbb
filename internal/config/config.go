// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults; Load(ctx) layers file/env.
// - External errors must be wrapped via this package's sentinel kinds.
package config

// Config contains process configuration. Extend as needed.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// RedisAddr is the address of the redis instance backing persistence.
	// Empty selects the in-memory store (single-process deployments, tests).
	RedisAddr string `koanf:"redis_addr"`

	// RedisDB selects the redis logical database.
	RedisDB int `koanf:"redis_db"`

	// IssuerURL is the endpoint that issues scoring bearer tokens.
	IssuerURL string `koanf:"issuer_url"`

	// ScoringURL is the external scoring provider endpoint.
	ScoringURL string `koanf:"scoring_url"`

	// PlanDays is the number of consecutive days a generated plan covers.
	PlanDays int `koanf:"plan_days"`

	// DailyRoutines is how many top recommendations rotate through the
	// plan's daily slots; the rest become bonus routines.
	DailyRoutines int `koanf:"daily_routines"`

	// RecommendationLimit caps the ranked routine list.
	RecommendationLimit int `koanf:"recommendation_limit"`

	// MaxScanList caps GET /scans responses.
	MaxScanList int `koanf:"max_scan_list"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		RedisAddr:           "",
		RedisDB:             0,
		IssuerURL:           "https://face-scoring.vercel.app/jwt",
		ScoringURL:          "https://face-scoring.vercel.app/score",
		PlanDays:            14,
		DailyRoutines:       3,
		RecommendationLimit: 5,
		MaxScanList:         50,
	}
}
