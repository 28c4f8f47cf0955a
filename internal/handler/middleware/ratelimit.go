package middleware

import (
	"context"
	"log/slog"
	"math"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"decor-booking/internal/handler/httperr"
	"decor-booking/internal/pkg/config"
	"decor-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"golang.org/x/time/rate"
)

var errRateLimited = errs.New("rate limit exceeded")

type RateDecision struct {
	Allowed    bool
	Remaining  int64
	RetryAfter time.Duration
}

type RateLimiter interface {
	Allow(ctx context.Context, key string) (RateDecision, error)
	Limit() int
}

// tokenBucketScript refills one token every interval_ms up to capacity and
// takes one if available. Returns {allowed, tokens, retry_after_ms}.
var tokenBucketScript = redis.NewScript(`
local key = KEYS[1]
local now_ms = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local interval_ms = tonumber(ARGV[3])
local ttl_seconds = tonumber(ARGV[4])

local state = redis.call('HMGET', key, 'tokens', 'last_refill_ms')
local tokens = tonumber(state[1])
local last_refill = tonumber(state[2])

if tokens == nil or last_refill == nil then
    tokens = capacity
    last_refill = now_ms
end

if interval_ms > 0 then
    local elapsed = math.max(0, now_ms - last_refill)
    local intervals = math.floor(elapsed / interval_ms)
    if intervals > 0 then
        tokens = math.min(capacity, tokens + intervals)
        last_refill = last_refill + (intervals * interval_ms)
    end
end

local allowed = 0
local retry_after_ms = 0
if tokens > 0 then
    allowed = 1
    tokens = tokens - 1
else
    retry_after_ms = interval_ms - (now_ms - last_refill)
    if retry_after_ms < 0 then retry_after_ms = 0 end
end

redis.call('HSET', key, 'tokens', tokens, 'last_refill_ms', last_refill)
redis.call('EXPIRE', key, ttl_seconds)

return { allowed, tokens, retry_after_ms }
`)

// RedisLimiter shares buckets across instances.
type RedisLimiter struct {
	rdb      redis.Scripter
	capacity int
	interval time.Duration
	ttl      time.Duration
	now      func() time.Time
}

func NewRedisLimiter(rdb redis.Scripter, cfg config.RateLimitConfig) *RedisLimiter {
	return &RedisLimiter{
		rdb:      rdb,
		capacity: burstOrDefault(cfg.Burst),
		interval: refillInterval(cfg.RPS),
		ttl:      cfg.TTL,
		now:      time.Now,
	}
}

func (l *RedisLimiter) Limit() int { return l.capacity }

func (l *RedisLimiter) Allow(ctx context.Context, key string) (RateDecision, error) {
	ttl := int64(l.ttl / time.Second)
	if ttl <= 0 {
		ttl = 60
	}
	vals, err := tokenBucketScript.Run(ctx, l.rdb, []string{key},
		l.now().UnixMilli(),
		l.capacity,
		l.interval.Milliseconds(),
		ttl,
	).Int64Slice()
	if err != nil {
		return RateDecision{}, errs.Wrap(err, "rate limit script failed")
	}
	if len(vals) != 3 {
		return RateDecision{}, errs.Newf("unexpected rate limit script result: %v", vals)
	}
	return RateDecision{
		Allowed:    vals[0] == 1,
		Remaining:  vals[1],
		RetryAfter: time.Duration(vals[2]) * time.Millisecond,
	}, nil
}

// LocalLimiter keeps one bucket per key in process memory.
type LocalLimiter struct {
	limiters sync.Map
	rps      float64
	burst    int
}

func NewLocalLimiter(cfg config.RateLimitConfig) *LocalLimiter {
	return &LocalLimiter{rps: cfg.RPS, burst: burstOrDefault(cfg.Burst)}
}

func (l *LocalLimiter) Limit() int { return l.burst }

func (l *LocalLimiter) Allow(_ context.Context, key string) (RateDecision, error) {
	lim := l.getLimiter(key)
	if !lim.Allow() {
		return RateDecision{Allowed: false, RetryAfter: refillInterval(l.rps)}, nil
	}
	remaining := int64(math.Floor(lim.Tokens()))
	if remaining < 0 {
		remaining = 0
	}
	return RateDecision{Allowed: true, Remaining: remaining}, nil
}

func (l *LocalLimiter) getLimiter(key string) *rate.Limiter {
	if v, ok := l.limiters.Load(key); ok {
		if lim, ok := v.(*rate.Limiter); ok {
			return lim
		}
	}

	lim := rate.NewLimiter(rate.Limit(l.rps), l.burst)
	actual, loaded := l.limiters.LoadOrStore(key, lim)
	if loaded {
		if actualLim, ok := actual.(*rate.Limiter); ok {
			return actualLim
		}
	}
	return lim
}

// RateLimit keys buckets by client IP. Limiter errors fail open.
func RateLimit(limiter RateLimiter, cfg config.RateLimitConfig) gin.HandlerFunc {
	if !cfg.Enabled || limiter == nil {
		return func(c *gin.Context) { c.Next() }
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = "rl"
	}

	return func(c *gin.Context) {
		ip := c.ClientIP()
		if ip == "" {
			ip = "unknown"
		}
		key := strings.Join([]string{prefix, "ip", ip}, ":")

		decision, err := limiter.Allow(c.Request.Context(), key)
		if err != nil {
			slog.WarnContext(c.Request.Context(), "rate limiter unavailable", "key", key, "error", err.Error())
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(decision.Remaining, 10))

		if !decision.Allowed {
			secs := int(math.Ceil(decision.RetryAfter.Seconds()))
			c.Header("Retry-After", strconv.Itoa(secs))
			httperr.AbortWithError(c, http.StatusTooManyRequests, errRateLimited,
				httperr.CodeRateLimited, "Too many requests", gin.H{"retryAfter": secs})
			return
		}
		c.Next()
	}
}

func burstOrDefault(burst int) int {
	if burst <= 0 {
		return 5
	}
	return burst
}

func refillInterval(rps float64) time.Duration {
	if rps <= 0 {
		return time.Second
	}
	return time.Duration(float64(time.Second) / rps)
}
