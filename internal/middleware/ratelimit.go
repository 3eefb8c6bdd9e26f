package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/noah-isme/leadform-api/internal/service"
	appErrors "github.com/noah-isme/leadform-api/pkg/errors"
	"github.com/noah-isme/leadform-api/pkg/response"
)

// RateLimitStore counts requests per client key within a fixed window.
type RateLimitStore interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// RateLimit rejects clients exceeding the per-address budget with 429. A
// store error fails open: throttling is best-effort protection, not a
// correctness guarantee.
func RateLimit(store RateLimitStore, metrics *service.MetricsService, logger *zap.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		allowed, err := store.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			logger.Warn("rate limit store error", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			metrics.ObserveRateLimited()
			response.AbortError(c, appErrors.ErrRateLimited)
			return
		}
		c.Next()
	}
}

type window struct {
	count int
	start time.Time
}

// MemoryStore is the in-process fixed-window limiter: a mapping from client
// address to request count and window start, with expired windows evicted on
// access. Process-local only; it resets on restart and offers no guarantee
// across horizontally scaled instances.
type MemoryStore struct {
	mu        sync.Mutex
	windows   map[string]*window
	max       int
	size      time.Duration
	lastSweep time.Time
	now       func() time.Time
}

// NewMemoryStore builds an in-process store.
func NewMemoryStore(max int, size time.Duration) *MemoryStore {
	if max <= 0 {
		max = 10
	}
	if size <= 0 {
		size = time.Minute
	}
	return &MemoryStore{
		windows: make(map[string]*window),
		max:     max,
		size:    size,
		now:     time.Now,
	}
}

// Allow counts one request against the key's current window.
func (s *MemoryStore) Allow(_ context.Context, key string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	s.sweep(now)

	w, ok := s.windows[key]
	if !ok || now.Sub(w.start) >= s.size {
		s.windows[key] = &window{count: 1, start: now}
		return true, nil
	}

	w.count++
	return w.count <= s.max, nil
}

// sweep evicts every expired window at most once per window size, keeping
// the map bounded by the set of recently active clients.
func (s *MemoryStore) sweep(now time.Time) {
	if now.Sub(s.lastSweep) < s.size {
		return
	}
	s.lastSweep = now
	for key, w := range s.windows {
		if now.Sub(w.start) >= s.size {
			delete(s.windows, key)
		}
	}
}

// RedisStore is the optional shared fixed-window limiter for horizontally
// scaled deployments.
type RedisStore struct {
	client *redis.Client
	max    int
	size   time.Duration
}

// NewRedisStore builds a Redis-backed store.
func NewRedisStore(client *redis.Client, max int, size time.Duration) *RedisStore {
	if max <= 0 {
		max = 10
	}
	if size <= 0 {
		size = time.Minute
	}
	return &RedisStore{client: client, max: max, size: size}
}

// Allow counts one request using INCR with a window-sized expiry.
func (s *RedisStore) Allow(ctx context.Context, key string) (bool, error) {
	count, err := s.client.Incr(ctx, "ratelimit:"+key).Result()
	if err != nil {
		return false, err
	}
	if count == 1 {
		if err := s.client.Expire(ctx, "ratelimit:"+key, s.size).Err(); err != nil {
			return false, err
		}
	}
	return count <= int64(s.max), nil
}
