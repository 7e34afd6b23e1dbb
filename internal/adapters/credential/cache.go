// Package credential caches the short-lived bearer token used to call the
// external scoring provider.
package credential

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/sync/singleflight"

	"github.com/visagelab/facesym/internal/adapters/repository"
	"github.com/visagelab/facesym/pkg/metrics"
)

// defaultTTL is the token validity window from its issue time.
const defaultTTL = 24 * time.Hour

// Issuer fetches a fresh bearer token from the external identity endpoint.
type Issuer interface {
	Issue(ctx context.Context) (string, error)
}

// Option applies a configuration option to the Cache.
type Option func(*Cache)

// WithTTL overrides the token validity window.
func WithTTL(ttl time.Duration) Option {
	return func(c *Cache) {
		if ttl > 0 {
			c.ttl = ttl
		}
	}
}

// WithClock overrides the time source, for boundary tests.
func WithClock(now func() time.Time) Option {
	return func(c *Cache) {
		if now != nil {
			c.now = now
		}
	}
}

// Cache acquires, validates, and persists the scoring bearer token.
// Tokens survive process restarts via the token store; concurrent misses
// collapse to a single issuance per user.
type Cache struct {
	issuer Issuer
	store  repository.TokenStore
	ttl    time.Duration
	now    func() time.Time
	group  singleflight.Group
	parser *jwt.Parser
}

// NewCache creates a credential cache over the given issuer and store.
func NewCache(issuer Issuer, store repository.TokenStore, opts ...Option) *Cache {
	c := &Cache{
		issuer: issuer,
		store:  store,
		ttl:    defaultTTL,
		now:    time.Now,
		parser: jwt.NewParser(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Token returns a valid bearer token for the user, issuing a new one only
// when the persisted token is absent, malformed, or expired. Issuer
// failures surface as ErrCredentialFetch; nothing is cached on failure.
func (c *Cache) Token(ctx context.Context, userID string) (string, error) {
	if tok, err := c.store.Token(ctx, userID); err == nil && c.valid(tok) {
		metrics.RecordCredentialCacheHit()
		return tok, nil
	}

	v, err, _ := c.group.Do(userID, func() (interface{}, error) {
		// Another flight may have refreshed the token while we waited.
		if tok, err := c.store.Token(ctx, userID); err == nil && c.valid(tok) {
			return tok, nil
		}

		fresh, err := c.issuer.Issue(ctx)
		if err != nil {
			metrics.RecordCredentialFetchError()
			return nil, err
		}
		if err := c.store.PutToken(ctx, userID, fresh); err != nil {
			return nil, err
		}
		metrics.RecordCredentialIssued()
		return fresh, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// valid reports whether the token's issue time is inside the validity
// window. A token whose issue timestamp cannot be extracted counts as
// expired and is silently re-issued, never surfaced as an error.
func (c *Cache) valid(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := c.parser.ParseUnverified(token, claims); err != nil {
		return false
	}
	iat, err := claims.GetIssuedAt()
	if err != nil || iat == nil {
		return false
	}
	// Expired iff now >= iat + ttl.
	return c.now().Before(iat.Add(c.ttl))
}
