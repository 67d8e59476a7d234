package remote

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache key namespace. Versioned so a change to the cached shape never
// reads stale entries written by an older client.
const cacheKeyPrefix = "evalcheck:v1:"

// CacheConfig controls Redis-based caching of successful evaluation
// responses. Identical record batches for the same metric and parameters
// are served from cache within the TTL.
type CacheConfig struct {
	Enabled  bool
	TTL      time.Duration
	Addr     string
	Password string
	DB       int
}

// cacheStore is the slice of the redis API the cache consumes. Narrowed to
// an interface so tests can substitute an in-memory store. A miss is
// reported as redis.Nil.
type cacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Close() error
}

// redisStore adapts a redis client to the cacheStore interface.
type redisStore struct {
	rdb *redis.Client
}

func (s redisStore) Get(ctx context.Context, key string) ([]byte, error) {
	return s.rdb.Get(ctx, key).Bytes()
}

func (s redisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	return s.rdb.Set(ctx, key, value, ttl).Err()
}

func (s redisStore) Close() error { return s.rdb.Close() }

// Cache caches successful evaluation responses in Redis, keyed by a digest
// of the full request. Redis failures degrade to pass-through: the cache
// never fails a request.
//
// A Cache owns its redis connection pool; Close releases it.
type Cache struct {
	store  cacheStore
	ttl    time.Duration
	logger *slog.Logger
}

// NewCache creates a success-only response cache backed by Redis.
func NewCache(cfg CacheConfig, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}

	return &Cache{
		store: redisStore{rdb: redis.NewClient(&redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		})},
		ttl:    cfg.TTL,
		logger: logger,
	}
}

// Close releases the underlying redis connection pool.
func (c *Cache) Close() error { return c.store.Close() }

// Middleware returns the pipeline middleware that serves hits and stores
// successful responses.
func (c *Cache) Middleware() Middleware {
	return func(next Handler) Handler {
		return HandlerFunc(func(ctx context.Context, req *Request) (*Response, error) {
			key, err := cacheKey(req)
			if err != nil {
				// An unkeyable request is still a servable request.
				c.logger.Debug("cache key generation failed", "metric", req.Metric, "error", err)
				return next.Handle(ctx, req)
			}

			if resp, ok := c.lookup(ctx, key); ok {
				c.logger.Debug("evaluation served from cache", "metric", req.Metric, "records", len(req.Records))
				return resp, nil
			}

			resp, err := next.Handle(ctx, req)
			if err != nil {
				return nil, err
			}

			c.persist(ctx, key, resp)
			return resp, nil
		})
	}
}

// lookup fetches a cached response. Any Redis or decode failure is treated
// as a miss.
func (c *Cache) lookup(ctx context.Context, key string) (*Response, bool) {
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Debug("cache lookup failed, degrading to pass-through", "error", err)
		}
		return nil, false
	}

	var results []map[string]any
	if err := json.Unmarshal(data, &results); err != nil {
		c.logger.Debug("cache entry corrupt, ignoring", "key", key, "error", err)
		return nil, false
	}

	return &Response{Results: results, FromCache: true}, true
}

// persist writes a successful response to the cache, best-effort.
func (c *Cache) persist(ctx context.Context, key string, resp *Response) {
	data, err := json.Marshal(resp.Results)
	if err != nil {
		c.logger.Debug("cache encode failed", "key", key, "error", err)
		return
	}
	if err := c.store.Set(ctx, key, data, c.ttl); err != nil {
		c.logger.Debug("cache store failed, degrading to pass-through", "error", err)
	}
}

// cacheKey derives a deterministic key from the metric, records, and
// parameters. JSON marshaling of maps is key-sorted, so equal requests
// produce equal keys regardless of construction order.
func cacheKey(req *Request) (string, error) {
	payload, err := json.Marshal(evaluateRequest{
		Metric:     req.Metric,
		Data:       req.Records,
		Parameters: req.Params,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request for cache key: %w", err)
	}
	sum := sha256.Sum256(payload)
	return cacheKeyPrefix + hex.EncodeToString(sum[:]), nil
}
