package querycache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/kailas-cloud/pokedex/internal/db"
	"github.com/kailas-cloud/pokedex/internal/domain/query"
)

// store is the consumer interface for the query cache (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	SetWithTTL(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Cache stores ranked id lists keyed by query. A broken cache must
// never break a request: read failures degrade to misses and write
// failures are logged and dropped.
type Cache struct {
	store         store
	sharedTTL     time.Duration
	userTTL       time.Duration
	opTimeout     time.Duration
	cacheTotal    *prometheus.CounterVec
	invalidations *prometheus.CounterVec
	logger        *zap.Logger
}

// New creates a query cache.
// cacheTotal is a counter vec with label "result" ("hit"/"miss"),
// invalidations with label "scope" ("user"/"all"); both passed explicitly.
func New(
	s store,
	sharedTTL, userTTL time.Duration,
	cacheTotal, invalidations *prometheus.CounterVec,
	logger *zap.Logger,
) *Cache {
	return &Cache{
		store:         s,
		sharedTTL:     sharedTTL,
		userTTL:       userTTL,
		cacheTotal:    cacheTotal,
		invalidations: invalidations,
		logger:        logger,
	}
}

// WithOpTimeout bounds every individual store call, so a stalling
// cache degrades to a slow miss instead of holding the request for the
// client connection timeout. Zero keeps the store client's own bound.
func (c *Cache) WithOpTimeout(d time.Duration) *Cache {
	c.opTimeout = d
	return c
}

func (c *Cache) opCtx(ctx context.Context) (context.Context, context.CancelFunc) {
	if c.opTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, c.opTimeout)
}

// Get returns the cached ranked id list for a query, or ok=false on a
// miss. Store and decode failures count as misses.
func (c *Cache) Get(ctx context.Context, q *query.Query) ([]int, bool) {
	key := Key(q)

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, db.ErrKeyNotFound) {
			c.logger.Warn("Failed to get cached query result", zap.String("key", key), zap.Error(err))
		}
		c.incCache("miss")
		return nil, false
	}

	var ids []int
	if err := json.Unmarshal(data, &ids); err != nil {
		c.logger.Warn("Failed to parse cached query result", zap.String("key", key), zap.Error(err))
		c.incCache("miss")
		return nil, false
	}

	c.incCache("hit")
	return ids, true
}

// Put stores a ranked id list under the query's key. Failures are
// logged only.
func (c *Cache) Put(ctx context.Context, q *query.Query, ids []int) {
	key := Key(q)

	data, err := json.Marshal(ids)
	if err != nil {
		c.logger.Warn("Failed to encode query result", zap.String("key", key), zap.Error(err))
		return
	}

	ttl := c.sharedTTL
	if q.Order().IsPersonalized() {
		ttl = c.userTTL
	}

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	if err := c.store.SetWithTTL(ctx, key, data, ttl); err != nil {
		c.logger.Warn("Failed to cache query result", zap.String("key", key), zap.Error(err))
	}
}

// InvalidateUser removes every personalized entry of one requester.
// Shared entries are untouched. Returns the number of removed entries.
func (c *Cache) InvalidateUser(ctx context.Context, userID string) (int, error) {
	pattern := UserPattern(userID)

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	keys, err := c.store.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("del %d keys: %w", len(keys), err)
	}

	c.incInvalidations("user", len(keys))
	return len(keys), nil
}

// Flush removes every query cache entry, shared and personalized.
// Returns the number of removed entries.
func (c *Cache) Flush(ctx context.Context) (int, error) {
	pattern := Pattern()

	ctx, cancel := c.opCtx(ctx)
	defer cancel()

	keys, err := c.store.Scan(ctx, pattern)
	if err != nil {
		return 0, fmt.Errorf("scan %s: %w", pattern, err)
	}
	if len(keys) == 0 {
		return 0, nil
	}

	if err := c.store.Del(ctx, keys...); err != nil {
		return 0, fmt.Errorf("del %d keys: %w", len(keys), err)
	}

	c.incInvalidations("all", len(keys))
	return len(keys), nil
}

func (c *Cache) incCache(result string) {
	if c.cacheTotal != nil {
		c.cacheTotal.WithLabelValues(result).Inc()
	}
}

func (c *Cache) incInvalidations(scope string, n int) {
	if c.invalidations != nil {
		c.invalidations.WithLabelValues(scope).Add(float64(n))
	}
}
