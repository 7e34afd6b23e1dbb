package simulate

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/visagelab/facesym/pkg/logger"
)

// Run executes the complete simulation.
func Run(ctx context.Context, config *Config) error {
	stats := &Stats{
		StartTime: time.Now(),
	}

	logger.Get().Info(ctx, "starting facesym simulation",
		logger.String("baseURL", config.BaseURL),
		logger.Int("users", config.Users),
		logger.Int("scansPerUser", config.Scans),
		logger.Int("workers", config.Workers),
		logger.String("timeout", config.Timeout.String()))

	client := newHTTPClient(config.BaseURL, config.Timeout)

	// Step 1: Check service health
	if err := client.checkHealth(ctx); err != nil {
		return fmt.Errorf("service health check failed: %w", err)
	}
	logger.Get().Info(ctx, "service is healthy")

	// Step 2: Drive user journeys concurrently
	if err := runUsers(ctx, config, client, stats); err != nil {
		return fmt.Errorf("user simulation failed: %w", err)
	}

	// Final statistics
	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)

	displayFinalStats(stats)

	logger.Get().Info(ctx, "simulation completed successfully")
	return nil
}

// runUsers fans the per-user journey out over a worker pool.
func runUsers(ctx context.Context, config *Config, client *HTTPClient, stats *Stats) error {
	var (
		submitted  int64
		successful int64
		failed     int64
		plans      int64
		completed  int64
		replays    int64
	)

	userChan := make(chan string, config.Workers*2)
	var wg sync.WaitGroup

	for i := 0; i < config.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for user := range userChan {
				select {
				case <-ctx.Done():
					return
				default:
					runOneUser(ctx, config, client, user,
						&submitted, &successful, &failed, &plans, &completed, &replays)
				}
			}
		}()
	}

	go func() {
		defer close(userChan)
		for i := 0; i < config.Users; i++ {
			select {
			case <-ctx.Done():
				return
			case userChan <- fmt.Sprintf("sim-user-%d", i):
			}
		}
	}()

	wg.Wait()

	stats.ScansSubmitted = int(atomic.LoadInt64(&submitted))
	stats.ScansSuccessful = int(atomic.LoadInt64(&successful))
	stats.ScansFailed = int(atomic.LoadInt64(&failed))
	stats.PlansGenerated = int(atomic.LoadInt64(&plans))
	stats.RoutinesCompleted = int(atomic.LoadInt64(&completed))
	stats.ReplaysVerified = int(atomic.LoadInt64(&replays))
	return nil
}

// runOneUser walks a single user through the whole pipeline: scans,
// recommendations, plan, completion, and an idempotent replay.
func runOneUser(ctx context.Context, config *Config, client *HTTPClient, user string,
	submitted, successful, failed, plans, completed, replays *int64) {
	for i := 0; i < config.Scans; i++ {
		atomic.AddInt64(submitted, 1)
		if _, err := client.postScan(ctx, user, generateLandmarks()); err != nil {
			atomic.AddInt64(failed, 1)
			logger.Get().Warn(ctx, "scan submission failed",
				logger.String("user", user), logger.Error(err))
			return
		}
		atomic.AddInt64(successful, 1)
	}

	recs, err := client.getRecommendations(ctx, user)
	if err != nil {
		logger.Get().Warn(ctx, "recommendations failed",
			logger.String("user", user), logger.Error(err))
		return
	}
	if config.Verbose {
		logger.Get().Info(ctx, "recommendations retrieved",
			logger.String("user", user), logger.Int("count", len(recs)))
	}

	p, err := client.generatePlan(ctx, user)
	if err != nil {
		logger.Get().Warn(ctx, "plan generation failed",
			logger.String("user", user), logger.Error(err))
		return
	}
	atomic.AddInt64(plans, 1)

	now := time.Now().UTC()
	view, err := client.routinesForDate(ctx, user, p.ID, now)
	if err != nil {
		logger.Get().Warn(ctx, "routine view failed",
			logger.String("user", user), logger.Error(err))
		return
	}
	if view.Actionable == nil {
		// Every factor already at goal; nothing to complete.
		return
	}

	first, err := client.completeRoutine(ctx, user, p.ID, *view.Actionable, now)
	if err != nil {
		logger.Get().Warn(ctx, "routine completion failed",
			logger.String("user", user), logger.Error(err))
		return
	}
	atomic.AddInt64(completed, 1)

	// Replay must succeed and leave the plan unchanged.
	second, err := client.completeRoutine(ctx, user, p.ID, *view.Actionable, now)
	if err != nil {
		logger.Get().Warn(ctx, "completion replay failed",
			logger.String("user", user), logger.Error(err))
		return
	}
	if sameCompletion(first, second) {
		atomic.AddInt64(replays, 1)
	} else {
		logger.Get().Warn(ctx, "completion replay mutated the plan",
			logger.String("user", user), logger.String("planID", p.ID))
	}
}

// displayFinalStats prints the final simulation statistics.
func displayFinalStats(stats *Stats) {
	var successRate float64
	if stats.ScansSubmitted > 0 {
		successRate = float64(stats.ScansSuccessful) / float64(stats.ScansSubmitted) * 100
	}

	logger.Get().Info(context.Background(), "final statistics",
		logger.Int("scansSubmitted", stats.ScansSubmitted),
		logger.Int("scansSuccessful", stats.ScansSuccessful),
		logger.Int("scansFailed", stats.ScansFailed),
		logger.Int("plansGenerated", stats.PlansGenerated),
		logger.Int("routinesCompleted", stats.RoutinesCompleted),
		logger.Int("replaysVerified", stats.ReplaysVerified),
		logger.String("duration", stats.Duration.String()),
		logger.Float64("successRate", successRate))
}
