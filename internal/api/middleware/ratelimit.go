package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"sync"
	"time"

	"customer-service/internal/config"

	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

const (
	backendMemory = "memory"
	backendRedis  = "redis"
	unknownIP     = "unknown"
)

// limiterBackend decides whether one more request from key fits the limit.
type limiterBackend interface {
	Allow(ctx context.Context, key string) (bool, error)
	Name() string
}

type RateLimiterMiddleware struct {
	backend limiterBackend
	cfg     config.RateLimitConfig
	logger  *slog.Logger
}

// NewRateLimiterMiddleware limits per client IP. With a Redis client the count
// is shared across instances in one-second fixed windows; otherwise each
// process keeps its own token buckets.
func NewRateLimiterMiddleware(cfg config.RateLimitConfig, redisClient redis.Cmdable, logger *slog.Logger) *RateLimiterMiddleware {
	logger = logger.With("component", "RateLimiter")

	rl := &RateLimiterMiddleware{cfg: cfg, logger: logger}
	switch {
	case !cfg.Enabled:
		logger.Info("Rate limiting is disabled via configuration.")
	case redisClient != nil:
		rl.backend = newRedisBackend(redisClient, cfg.RPS, time.Second, logger)
		logger.Info("Rate limiter configured", "backend", backendRedis, "rps", cfg.RPS, "window", time.Second)
	default:
		rl.backend = newMemoryBackend(cfg.RPS, cfg.Burst, 10*time.Minute)
		logger.Info("Rate limiter configured", "backend", backendMemory, "rps", cfg.RPS, "burst", cfg.Burst)
	}
	return rl
}

func (rl *RateLimiterMiddleware) IsEnabled() bool {
	return rl.cfg.Enabled && rl.backend != nil
}

// Close stops background work of the in-memory backend.
func (rl *RateLimiterMiddleware) Close() {
	if mb, ok := rl.backend.(*memoryBackend); ok {
		mb.stop()
	}
}

// extractIP keys on RemoteAddr only. Forwarding headers are resolved by
// chi's RealIP earlier in the chain, which may leave a bare IP without a port.
func (rl *RateLimiterMiddleware) extractIP(r *http.Request) string {
	if ip, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return ip
	}

	if parsedIP := net.ParseIP(r.RemoteAddr); parsedIP != nil {
		return parsedIP.String()
	}

	rl.logger.Warn("Could not determine client IP for rate limiting", "remoteAddr", r.RemoteAddr)
	return unknownIP
}

func (rl *RateLimiterMiddleware) Middleware(next http.Handler) http.Handler {
	if !rl.IsEnabled() {
		return next
	}

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ip := rl.extractIP(r)
		if ip == unknownIP {
			rl.logger.ErrorContext(r.Context(), "Blocking request due to unknown client IP for rate limiting")
			writeJSONError(w, http.StatusForbidden, "Forbidden")
			return
		}

		allowed, err := rl.backend.Allow(r.Context(), ip)
		if err != nil {
			// Fail open on backend errors.
			rl.logger.ErrorContext(r.Context(), "Rate limiter backend failed", "error", err, "ip", ip, "backend", rl.backend.Name())
			next.ServeHTTP(w, r)
			return
		}

		if !allowed {
			rl.logger.WarnContext(r.Context(), "Rate limit exceeded", "ip", ip, "backend", rl.backend.Name())
			rateLimitedTotal.WithLabelValues(rl.backend.Name()).Inc()
			w.Header().Set("Retry-After", "1")
			writeJSONError(w, http.StatusTooManyRequests, "Rate limit exceeded")
			return
		}

		next.ServeHTTP(w, r)
	})
}

type memoryBackend struct {
	limiters sync.Map
	rps      float64
	burst    int
	done     chan struct{}
	once     sync.Once
}

func newMemoryBackend(rps float64, burst int, cleanupEvery time.Duration) *memoryBackend {
	mb := &memoryBackend{rps: rps, burst: burst, done: make(chan struct{})}
	go mb.cleanupLimiters(cleanupEvery)
	return mb
}

func (mb *memoryBackend) Name() string { return backendMemory }

func (mb *memoryBackend) getLimiter(key string) *rate.Limiter {
	limiter, _ := mb.limiters.LoadOrStore(key, rate.NewLimiter(rate.Limit(mb.rps), mb.burst))
	return limiter.(*rate.Limiter)
}

func (mb *memoryBackend) Allow(_ context.Context, key string) (bool, error) {
	return mb.getLimiter(key).Allow(), nil
}

func (mb *memoryBackend) cleanupLimiters(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-mb.done:
			return
		case <-ticker.C:
			mb.sweep()
		}
	}
}

// sweep drops limiters whose bucket has refilled completely.
func (mb *memoryBackend) sweep() {
	now := time.Now()
	mb.limiters.Range(func(key, value any) bool {
		limiter := value.(*rate.Limiter)
		if limiter.TokensAt(now) >= float64(mb.burst) {
			mb.limiters.Delete(key)
		}
		return true
	})
}

func (mb *memoryBackend) stop() {
	mb.once.Do(func() { close(mb.done) })
}

type redisBackend struct {
	client redis.Cmdable
	limit  int64
	window time.Duration
	logger *slog.Logger
}

func newRedisBackend(client redis.Cmdable, rps float64, window time.Duration, logger *slog.Logger) *redisBackend {
	limit := int64(rps * window.Seconds())
	if limit < 1 {
		limit = 1
	}
	return &redisBackend{client: client, limit: limit, window: window, logger: logger}
}

func (rb *redisBackend) Name() string { return backendRedis }

func (rb *redisBackend) Allow(ctx context.Context, key string) (bool, error) {
	redisKey := fmt.Sprintf("ratelimit:%s", key)

	pipe := rb.client.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	ttlCmd := pipe.TTL(ctx, redisKey)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, fmt.Errorf("redis pipeline failed during rate limiting check: %w", err)
	}

	count, err := incrCmd.Result()
	if err != nil {
		return false, fmt.Errorf("failed to read INCR result: %w", err)
	}

	// A negative TTL means the key has no expiry yet (-1) or vanished (-2).
	if ttl, err := ttlCmd.Result(); err != nil || ttl < 0 {
		if err := rb.client.Expire(ctx, redisKey, rb.window).Err(); err != nil {
			rb.logger.ErrorContext(ctx, "Failed to set Redis EXPIRE for rate limit key", "error", err, "key", redisKey)
		}
	}

	return count <= rb.limit, nil
}
