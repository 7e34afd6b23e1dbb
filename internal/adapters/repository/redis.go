package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/score"
	"github.com/visagelab/facesym/pkg/metrics"
)

// Key layout. Everything is user-scoped; single-key writes only.
const (
	planKeyFmt   = "facesym:plan:%s"
	tokenKeyFmt  = "facesym:token:%s"
	scanKeyFmt   = "facesym:scan:%s:%s"
	scanIndexFmt = "facesym:scans:%s"
)

// RedisStore implements Store on a redis instance.
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore creates a store backed by the redis instance at addr.
func NewRedisStore(addr string, db int) *RedisStore {
	return &RedisStore{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
	}
}

// Ping verifies connectivity; called once at startup.
func (r *RedisStore) Ping(ctx context.Context) error {
	if err := r.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: redis ping: %w", ErrStore, err)
	}
	return nil
}

// Close releases the underlying client.
func (r *RedisStore) Close() error {
	return r.client.Close()
}

// PutPlan stores p as the user's active plan, replacing any prior plan.
func (r *RedisStore) PutPlan(ctx context.Context, p plan.Plan) error {
	defer observe("plan_put", time.Now())
	b, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("%w: marshal plan: %w", ErrStore, err)
	}
	if err := r.client.Set(ctx, fmt.Sprintf(planKeyFmt, p.UserID), b, 0).Err(); err != nil {
		metrics.RecordRepositoryError()
		return fmt.Errorf("%w: put plan: %w", ErrStore, err)
	}
	return nil
}

// CurrentPlan returns the user's active plan.
func (r *RedisStore) CurrentPlan(ctx context.Context, userID string) (plan.Plan, error) {
	defer observe("plan_get", time.Now())
	b, err := r.client.Get(ctx, fmt.Sprintf(planKeyFmt, userID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return plan.Plan{}, fmt.Errorf("%w: no active plan for user %q", ErrNotFound, userID)
	}
	if err != nil {
		metrics.RecordRepositoryError()
		return plan.Plan{}, fmt.Errorf("%w: get plan: %w", ErrStore, err)
	}
	var p plan.Plan
	if err := json.Unmarshal(b, &p); err != nil {
		return plan.Plan{}, fmt.Errorf("%w: unmarshal plan: %w", ErrStore, err)
	}
	return p, nil
}

// PutScan stores an assessment record and indexes it newest-first.
func (r *RedisStore) PutScan(ctx context.Context, s score.Scan) error {
	defer observe("scan_put", time.Now())
	b, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("%w: marshal scan: %w", ErrStore, err)
	}
	if err := r.client.Set(ctx, fmt.Sprintf(scanKeyFmt, s.UserID, s.ID), b, 0).Err(); err != nil {
		metrics.RecordRepositoryError()
		return fmt.Errorf("%w: put scan: %w", ErrStore, err)
	}
	if err := r.client.LPush(ctx, fmt.Sprintf(scanIndexFmt, s.UserID), s.ID).Err(); err != nil {
		metrics.RecordRepositoryError()
		return fmt.Errorf("%w: index scan: %w", ErrStore, err)
	}
	return nil
}

// Scan returns one of the user's scans by id.
func (r *RedisStore) Scan(ctx context.Context, userID, scanID string) (score.Scan, error) {
	defer observe("scan_get", time.Now())
	b, err := r.client.Get(ctx, fmt.Sprintf(scanKeyFmt, userID, scanID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return score.Scan{}, fmt.Errorf("%w: scan %q", ErrNotFound, scanID)
	}
	if err != nil {
		metrics.RecordRepositoryError()
		return score.Scan{}, fmt.Errorf("%w: get scan: %w", ErrStore, err)
	}
	var s score.Scan
	if err := json.Unmarshal(b, &s); err != nil {
		return score.Scan{}, fmt.Errorf("%w: unmarshal scan: %w", ErrStore, err)
	}
	return s, nil
}

// Scans returns up to limit of the user's scans, newest first.
func (r *RedisStore) Scans(ctx context.Context, userID string, limit int) ([]score.Scan, error) {
	defer observe("scan_list", time.Now())
	end := int64(-1)
	if limit > 0 {
		end = int64(limit) - 1
	}
	ids, err := r.client.LRange(ctx, fmt.Sprintf(scanIndexFmt, userID), 0, end).Result()
	if err != nil {
		metrics.RecordRepositoryError()
		return nil, fmt.Errorf("%w: list scans: %w", ErrStore, err)
	}
	out := make([]score.Scan, 0, len(ids))
	for _, id := range ids {
		s, err := r.Scan(ctx, userID, id)
		if errors.Is(err, ErrNotFound) {
			// Index entry survived its record; skip rather than fail the list.
			continue
		}
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, nil
}

// Token returns the user's persisted bearer token.
func (r *RedisStore) Token(ctx context.Context, userID string) (string, error) {
	defer observe("token_get", time.Now())
	tok, err := r.client.Get(ctx, fmt.Sprintf(tokenKeyFmt, userID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("%w: no token for user %q", ErrNotFound, userID)
	}
	if err != nil {
		metrics.RecordRepositoryError()
		return "", fmt.Errorf("%w: get token: %w", ErrStore, err)
	}
	return tok, nil
}

// PutToken stores the user's bearer token. Last writer wins.
func (r *RedisStore) PutToken(ctx context.Context, userID, token string) error {
	defer observe("token_put", time.Now())
	if err := r.client.Set(ctx, fmt.Sprintf(tokenKeyFmt, userID), token, 0).Err(); err != nil {
		metrics.RecordRepositoryError()
		return fmt.Errorf("%w: put token: %w", ErrStore, err)
	}
	return nil
}

func observe(op string, start time.Time) {
	metrics.RecordRepositoryLatency(op, float64(time.Since(start).Milliseconds()))
}
