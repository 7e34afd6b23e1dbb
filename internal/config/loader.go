package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):
//  1. defaults (New())
//  2. file (YAML) if FACESYM_CONFIG is set
//  3. env (prefix FACESYM_)
func Load(ctx context.Context) (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("FACESYM_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: FACESYM_ADDR, FACESYM_PLAN_DAYS, ...
	// Keys keep their underscores to match the koanf tags on the struct.
	envProvider := env.Provider("FACESYM_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "facesym_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch {
	case c.Addr == "":
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	case c.IssuerURL == "":
		return fmt.Errorf("%w: issuer_url must not be empty", ErrInvalidConfig)
	case c.ScoringURL == "":
		return fmt.Errorf("%w: scoring_url must not be empty", ErrInvalidConfig)
	case c.PlanDays < 1:
		return fmt.Errorf("%w: plan_days must be positive", ErrInvalidConfig)
	case c.DailyRoutines < 1:
		return fmt.Errorf("%w: daily_routines must be positive", ErrInvalidConfig)
	case c.RecommendationLimit < 1:
		return fmt.Errorf("%w: recommendation_limit must be positive", ErrInvalidConfig)
	case c.MaxScanList < 1:
		return fmt.Errorf("%w: max_scan_list must be positive", ErrInvalidConfig)
	}
	return nil
}
