package remote

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeStore is an in-memory cacheStore. Misses report redis.Nil like the
// real client; getErr/setErr force failures on every call.
type fakeStore struct {
	entries map[string][]byte
	ttls    map[string]time.Duration
	getErr  error
	setErr  error
	closed  bool
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		entries: make(map[string][]byte),
		ttls:    make(map[string]time.Duration),
	}
}

func (f *fakeStore) Get(_ context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	data, ok := f.entries[key]
	if !ok {
		return nil, redis.Nil
	}
	return data, nil
}

func (f *fakeStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = value
	f.ttls[key] = ttl
	return nil
}

func (f *fakeStore) Close() error {
	f.closed = true
	return nil
}

func newFakeCache(store *fakeStore) *Cache {
	return &Cache{store: store, ttl: time.Minute, logger: slog.Default()}
}

func countingHandler(attempts *atomic.Int32, results []map[string]any) Handler {
	return HandlerFunc(func(_ context.Context, _ *Request) (*Response, error) {
		attempts.Add(1)
		return &Response{Results: results}, nil
	})
}

func TestCache_MissStoresThenHitServes(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache(store)

	results := []map[string]any{{"score_valid_response": 1.0}}
	var attempts atomic.Int32
	handler := cache.Middleware()(countingHandler(&attempts, results))

	req := &Request{
		Metric:  "valid_response",
		Records: []map[string]any{{"response": "a"}},
	}

	first, err := handler.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, first.FromCache)
	assert.Equal(t, int32(1), attempts.Load())

	key, err := cacheKey(req)
	require.NoError(t, err)
	assert.Contains(t, store.entries, key)
	assert.Equal(t, time.Minute, store.ttls[key])

	second, err := handler.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, results, second.Results)
	assert.Equal(t, int32(1), attempts.Load(), "hit must not reach the core handler")
}

func TestCache_DistinctRequestsMissIndependently(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache(store)

	var attempts atomic.Int32
	handler := cache.Middleware()(countingHandler(&attempts, []map[string]any{{"score": 0.5}}))

	_, err := handler.Handle(context.Background(), &Request{
		Metric:  "context_relevance",
		Records: []map[string]any{{"question": "q1"}},
	})
	require.NoError(t, err)

	_, err = handler.Handle(context.Background(), &Request{
		Metric:  "context_relevance",
		Records: []map[string]any{{"question": "q2"}},
	})
	require.NoError(t, err)

	assert.Equal(t, int32(2), attempts.Load())
	assert.Len(t, store.entries, 2)
}

func TestCache_UnreachableRedisDegradesToPassThrough(t *testing.T) {
	store := newFakeStore()
	store.getErr = errors.New("dial tcp 127.0.0.1:6379: connection refused")
	store.setErr = store.getErr
	cache := newFakeCache(store)

	var attempts atomic.Int32
	handler := cache.Middleware()(countingHandler(&attempts, []map[string]any{{"score": 1.0}}))

	req := &Request{Metric: "valid_response", Records: []map[string]any{{"response": "a"}}}

	for i := 0; i < 2; i++ {
		resp, err := handler.Handle(context.Background(), req)
		require.NoError(t, err)
		assert.False(t, resp.FromCache)
	}
	assert.Equal(t, int32(2), attempts.Load())
}

func TestCache_CorruptEntryTreatedAsMiss(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache(store)

	req := &Request{Metric: "valid_response", Records: []map[string]any{{"response": "a"}}}
	key, err := cacheKey(req)
	require.NoError(t, err)
	store.entries[key] = []byte("not json")

	var attempts atomic.Int32
	handler := cache.Middleware()(countingHandler(&attempts, []map[string]any{{"score": 1.0}}))

	resp, err := handler.Handle(context.Background(), req)
	require.NoError(t, err)
	assert.False(t, resp.FromCache)
	assert.Equal(t, int32(1), attempts.Load())
}

func TestCache_FailedEvaluationNotCached(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache(store)

	handler := cache.Middleware()(HandlerFunc(func(_ context.Context, _ *Request) (*Response, error) {
		return nil, &APIError{StatusCode: 503, Message: "down", Type: ErrorTypeUnavailable}
	}))

	_, err := handler.Handle(context.Background(), &Request{
		Metric:  "valid_response",
		Records: []map[string]any{{"response": "a"}},
	})
	require.Error(t, err)
	assert.Empty(t, store.entries)
}

func TestCache_CloseReleasesStore(t *testing.T) {
	store := newFakeStore()
	cache := newFakeCache(store)

	require.NoError(t, cache.Close())
	assert.True(t, store.closed)
}
