// Package service provides the core business service that implements
// the dependencies required by the HTTP API.
package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/visagelab/facesym/internal/adapters/repository"
	"github.com/visagelab/facesym/internal/domain/plan"
	"github.com/visagelab/facesym/internal/domain/recommend"
	"github.com/visagelab/facesym/internal/domain/routine"
	"github.com/visagelab/facesym/internal/domain/score"
	"github.com/visagelab/facesym/pkg/logger"
	"github.com/visagelab/facesym/pkg/metrics"
)

// Credentials supplies a valid bearer token for the scoring provider.
type Credentials interface {
	Token(ctx context.Context, userID string) (string, error)
}

// Scorer submits landmarks to the scoring provider and returns the raw
// per-factor score map keyed by the provider's short field names.
type Scorer interface {
	Score(ctx context.Context, token string, landmarks []score.Landmark) (map[string]float64, error)
}

// Service implements the API dependencies for the assessment-to-plan
// pipeline.
type Service struct {
	mu sync.RWMutex

	// Core components
	store       repository.Store
	credentials Credentials
	scorer      Scorer
	engine      *recommend.Engine

	// Configuration
	planDays            int
	dailyRoutines       int
	recommendationLimit int
	maxScanList         int

	// Clock, overridable in tests
	now func() time.Time

	// Per-user locks serializing plan read-modify-write cycles
	userMu map[string]*sync.Mutex

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithStore sets the persistence backend.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithCredentials sets the scoring credential source.
func WithCredentials(c Credentials) Option {
	return func(s *Service) {
		if c != nil {
			s.credentials = c
		}
	}
}

// WithScorer sets the scoring provider client.
func WithScorer(sc Scorer) Option {
	return func(s *Service) {
		if sc != nil {
			s.scorer = sc
		}
	}
}

// WithEngine sets the recommendation engine.
func WithEngine(e *recommend.Engine) Option {
	return func(s *Service) {
		if e != nil {
			s.engine = e
		}
	}
}

// WithPlanDays sets how many calendar days a generated plan covers.
func WithPlanDays(days int) Option {
	return func(s *Service) {
		if days > 0 {
			s.planDays = days
		}
	}
}

// WithDailyRoutines sets how many top recommendations rotate through
// the daily schedule.
func WithDailyRoutines(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.dailyRoutines = count
		}
	}
}

// WithRecommendationLimit caps how many recommendations the
// recommendations surface returns.
func WithRecommendationLimit(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.recommendationLimit = limit
		}
	}
}

// WithMaxScanList caps how many scans the scan listing returns.
func WithMaxScanList(limit int) Option {
	return func(s *Service) {
		if limit > 0 {
			s.maxScanList = limit
		}
	}
}

// WithClock sets a custom time source.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(logger logger.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		engine:              recommend.New(),
		planDays:            14,
		dailyRoutines:       3,
		recommendationLimit: 5,
		maxScanList:         50,
		now:                 time.Now,
		userMu:              make(map[string]*sync.Mutex),
		logger:              nil, // Will be replaced when service starts
	}

	// Apply all options
	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	// Initialize logger if not already set
	if s.logger == nil {
		s.logger = logger.Get()
	}

	if s.store == nil {
		s.store = repository.NewMemoryStore()
		s.logger.Info(ctx, "using in-memory store")
	}

	s.started = true
	s.logger.Info(ctx, "assessment service started",
		logger.Int("planDays", s.planDays),
		logger.Int("dailyRoutines", s.dailyRoutines),
		logger.Int("recommendationLimit", s.recommendationLimit),
	)

	return nil
}

// Stop gracefully shuts down the service.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}

	s.logger.Info(context.Background(), "stopping assessment service...")

	if closer, ok := s.store.(interface{ Close() error }); ok {
		_ = closer.Close()
	}

	s.started = false
	s.logger.Info(context.Background(), "assessment service stopped")
}

// lockUser serializes plan mutations for one user. The returned func
// releases the lock.
func (s *Service) lockUser(userID string) func() {
	s.mu.Lock()
	mu, ok := s.userMu[userID]
	if !ok {
		mu = &sync.Mutex{}
		s.userMu[userID] = mu
	}
	s.mu.Unlock()

	mu.Lock()
	return mu.Unlock
}

// Assess runs the full assessment pipeline: obtain a scoring credential,
// submit the landmarks, normalize the raw scores, and persist the scan.
func (s *Service) Assess(ctx context.Context, userID string, landmarks []score.Landmark) (score.Scan, error) {
	if len(landmarks) == 0 {
		return score.Scan{}, fmt.Errorf("%w: landmarks required", ErrValidation)
	}

	token, err := s.credentials.Token(ctx, userID)
	if err != nil {
		metrics.RecordAssessmentError()
		return score.Scan{}, err
	}

	raw, err := s.scorer.Score(ctx, token, landmarks)
	if err != nil {
		metrics.RecordAssessmentError()
		return score.Scan{}, err
	}

	vec, err := score.Normalize(raw)
	if err != nil {
		metrics.RecordNormalizationError()
		metrics.RecordAssessmentError()
		s.logger.Warn(ctx, "provider payload failed normalization",
			logger.String("userID", userID),
			logger.Error(err),
		)
		return score.Scan{}, err
	}

	scan := score.Scan{
		ID:        uuid.NewString(),
		UserID:    userID,
		CreatedAt: s.now().UTC(),
		Landmarks: landmarks,
		Scores:    vec,
	}
	if err := s.store.PutScan(ctx, scan); err != nil {
		metrics.RecordAssessmentError()
		return score.Scan{}, err
	}

	metrics.RecordAssessmentCompleted()
	s.logger.Info(ctx, "assessment completed",
		logger.String("userID", userID),
		logger.String("scanID", scan.ID),
	)
	return scan, nil
}

// Scans returns the user's scans, newest first.
func (s *Service) Scans(ctx context.Context, userID string) ([]score.Scan, error) {
	return s.store.Scans(ctx, userID, s.maxScanList)
}

// Scan returns one of the user's scans by id.
func (s *Service) Scan(ctx context.Context, userID, scanID string) (score.Scan, error) {
	return s.store.Scan(ctx, userID, scanID)
}

// Recommend ranks routines against one of the user's scans. An empty
// scanID selects the most recent scan; a non-positive limit falls back
// to the configured default.
func (s *Service) Recommend(ctx context.Context, userID, scanID string, limit int) ([]routine.ID, error) {
	scan, err := s.scanOrLatest(ctx, userID, scanID)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = s.recommendationLimit
	}

	recs := s.engine.Recommend(scan.Scores, limit)
	metrics.RecordRecommendationServed(len(recs) == 0)
	return recs, nil
}

// GeneratePlan builds a fresh plan from one of the user's scans (the
// most recent when scanID is empty) and replaces any existing plan.
func (s *Service) GeneratePlan(ctx context.Context, userID, scanID string) (plan.Plan, error) {
	unlock := s.lockUser(userID)
	defer unlock()

	scan, err := s.scanOrLatest(ctx, userID, scanID)
	if err != nil {
		return plan.Plan{}, err
	}

	// Rank against the full catalog so overflow lands in bonus routines.
	recs := s.engine.Recommend(scan.Scores, len(routine.All()))
	p := plan.New(uuid.NewString(), userID, scan.ID, recs, s.now(), s.planDays, s.dailyRoutines)
	if err := s.store.PutPlan(ctx, p); err != nil {
		return plan.Plan{}, err
	}

	metrics.RecordPlanGenerated()
	s.logger.Info(ctx, "plan generated",
		logger.String("userID", userID),
		logger.String("planID", p.ID),
		logger.String("scanID", scan.ID),
		logger.Int("dailyRoutines", len(p.DailyRoutines)),
		logger.Int("bonusRoutines", len(p.BonusRoutines)),
	)
	return p, nil
}

// CurrentPlan returns the user's active plan.
func (s *Service) CurrentPlan(ctx context.Context, userID string) (plan.Plan, error) {
	return s.store.CurrentPlan(ctx, userID)
}

// RoutinesForDate computes the date-relative view of the user's active
// plan.
func (s *Service) RoutinesForDate(ctx context.Context, userID, planID string, date time.Time) (plan.View, error) {
	p, err := s.planByID(ctx, userID, planID)
	if err != nil {
		return plan.View{}, err
	}
	return p.ViewFor(date, s.now()), nil
}

// MarkRoutineComplete records completion of the daily routine matching
// routineID on the given date. Re-completing is a no-op success.
func (s *Service) MarkRoutineComplete(ctx context.Context, userID, planID string, routineID routine.ID, date time.Time) (plan.Plan, error) {
	if !routine.Known(routineID) {
		return plan.Plan{}, fmt.Errorf("%w: unknown routine %q", ErrValidation, routineID)
	}

	unlock := s.lockUser(userID)
	defer unlock()

	p, err := s.planByID(ctx, userID, planID)
	if err != nil {
		return plan.Plan{}, err
	}

	changed, err := p.Complete(routineID, date, s.now())
	if err != nil {
		metrics.RecordCompletionNotFound()
		return plan.Plan{}, err
	}
	if !changed {
		metrics.RecordCompletionReplay()
		return p, nil
	}

	if err := s.store.PutPlan(ctx, p); err != nil {
		return plan.Plan{}, err
	}
	metrics.RecordRoutineCompleted()
	s.logger.Info(ctx, "routine completed",
		logger.String("userID", userID),
		logger.String("planID", p.ID),
		logger.String("routineID", string(routineID)),
	)
	return p, nil
}

// scanOrLatest returns the named scan, or the user's most recent one
// when scanID is empty.
func (s *Service) scanOrLatest(ctx context.Context, userID, scanID string) (score.Scan, error) {
	if scanID != "" {
		return s.store.Scan(ctx, userID, scanID)
	}
	scans, err := s.store.Scans(ctx, userID, 1)
	if err != nil {
		return score.Scan{}, err
	}
	if len(scans) == 0 {
		return score.Scan{}, fmt.Errorf("%w: no scans for user", repository.ErrNotFound)
	}
	return scans[0], nil
}

// planByID returns the user's active plan, verifying the caller-supplied
// plan id still refers to it.
func (s *Service) planByID(ctx context.Context, userID, planID string) (plan.Plan, error) {
	p, err := s.store.CurrentPlan(ctx, userID)
	if err != nil {
		return plan.Plan{}, err
	}
	if planID != "" && p.ID != planID {
		return plan.Plan{}, fmt.Errorf("%w: plan %q is not active", repository.ErrNotFound, planID)
	}
	return p, nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return map[string]interface{}{
		"started":             s.started,
		"planDays":            s.planDays,
		"dailyRoutines":       s.dailyRoutines,
		"recommendationLimit": s.recommendationLimit,
		"maxScanList":         s.maxScanList,
		"routineCatalogSize":  len(routine.All()),
	}
}

// IsNotFound reports whether err maps to a missing resource.
func IsNotFound(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, plan.ErrNotFound)
}
