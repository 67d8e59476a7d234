// Package remote implements the client side of the remote evaluation
// boundary: a single operation, Evaluate, that submits a batch of flat
// records for one metric and returns one result record per input record,
// positionally aligned.
//
// The client is built as a middleware chain in front of the HTTP exchange:
// structured logging, optional Redis response caching, and retry with
// exponential backoff. Failures are classified into typed errors so callers
// can distinguish transient transport trouble from contract violations.
package remote

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/ahrav/go-evalcheck"
)

// Default HTTP transport tuning for the scoring service connection pool.
const (
	defaultHTTPTimeout  = 90 * time.Second
	defaultMaxIdleConns = 10
	defaultIdleTimeout  = 90 * time.Second
)

// Config holds the full configuration for an evaluation client.
type Config struct {
	// Endpoint is the base URL of the scoring service.
	Endpoint string

	// APIKey authenticates requests. Optional for unauthenticated deployments.
	APIKey string

	// HTTPTimeout bounds each evaluation exchange.
	HTTPTimeout time.Duration

	// HTTPClient overrides the default client, mainly for tests.
	HTTPClient *http.Client

	// Retry controls transient-failure retries.
	Retry RetryConfig

	// Cache controls Redis response caching.
	Cache CacheConfig

	// Logger receives structured request logs. Defaults to slog.Default.
	Logger *slog.Logger
}

// Client performs evaluation requests against the remote scoring service.
// A Client is exclusively owned by the operator that created it and is not
// safe for concurrent mutation; see the operator contract. The owner must
// call Close when done with it.
type Client struct {
	handler Handler
	cache   *Cache
}

// New creates an evaluation client with the full middleware pipeline:
// logging -> cache (if enabled) -> retry -> HTTP.
func New(cfg Config) (*Client, error) {
	endpoint := strings.TrimRight(cfg.Endpoint, "/")
	if endpoint == "" {
		return nil, ErrMissingEndpoint
	}

	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	timeout := cfg.HTTPTimeout
	if timeout <= 0 {
		timeout = defaultHTTPTimeout
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Transport: &http.Transport{
				Proxy:           http.ProxyFromEnvironment,
				MaxIdleConns:    defaultMaxIdleConns,
				IdleConnTimeout: defaultIdleTimeout,
			},
		}
	}

	core := NewHTTPHandler(httpClient, endpoint, cfg.APIKey, timeout)

	var cache *Cache
	middlewares := []Middleware{NewLoggingMiddleware(logger)}
	if cfg.Cache.Enabled {
		cache = NewCache(cfg.Cache, logger)
		middlewares = append(middlewares, cache.Middleware())
	}
	middlewares = append(middlewares, NewRetryMiddleware(cfg.Retry))

	return &Client{handler: Chain(core, middlewares...), cache: cache}, nil
}

// Close releases resources held by the client, currently the cache's redis
// connection pool. A no-op when caching is disabled.
func (c *Client) Close() error {
	if c.cache != nil {
		return c.cache.Close()
	}
	return nil
}

// NewFromSettings creates an evaluation client from the caller-facing
// settings value.
func NewFromSettings(s *evalcheck.Settings) (*Client, error) {
	return New(Config{
		Endpoint:    s.Endpoint,
		APIKey:      s.APIKey,
		HTTPTimeout: s.HTTPTimeout,
		Retry: RetryConfig{
			MaxAttempts:     s.Retry.MaxAttempts,
			InitialInterval: s.Retry.InitialInterval,
			MaxInterval:     s.Retry.MaxInterval,
			Multiplier:      s.Retry.Multiplier,
			UseJitter:       s.Retry.UseJitter,
		},
		Cache: CacheConfig{
			Enabled:  s.Cache.Enabled,
			TTL:      s.Cache.TTL,
			Addr:     s.Cache.Addr,
			Password: s.Cache.Password,
			DB:       s.Cache.DB,
		},
		Logger: s.Logger,
	})
}

// Evaluate submits one record batch for the given metric and returns the
// service's results. The call blocks until a response or failure arrives.
//
// The returned list is guaranteed to be positionally aligned with records:
// a length mismatch from the service is rejected with ErrMisalignedResults
// rather than passed through.
func (c *Client) Evaluate(
	ctx context.Context, metric string, records []map[string]any, params map[string]any,
) ([]map[string]any, error) {
	resp, err := c.handler.Handle(ctx, &Request{
		Metric:  metric,
		Records: records,
		Params:  params,
	})
	if err != nil {
		return nil, err
	}

	if len(resp.Results) != len(records) {
		return nil, fmt.Errorf("%w: sent %d records, received %d results",
			ErrMisalignedResults, len(records), len(resp.Results))
	}
	return resp.Results, nil
}
