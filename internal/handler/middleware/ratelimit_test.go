//go:build unit

package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"decor-booking/internal/pkg/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func rateCfg() config.RateLimitConfig {
	return config.RateLimitConfig{Enabled: true, RPS: 1, Burst: 2, Prefix: "test", TTL: time.Minute}
}

func TestRedisLimiter_BucketDrainsAndRefills(t *testing.T) {
	now := time.Date(2030, 1, 1, 10, 0, 0, 0, time.UTC)
	l := NewRedisLimiter(newTestRedis(t), rateCfg())
	l.now = func() time.Time { return now }
	ctx := context.Background()

	first, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, first.Allowed)
	assert.Equal(t, int64(1), first.Remaining)

	second, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, second.Allowed)
	assert.Equal(t, int64(0), second.Remaining)

	blocked, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, blocked.Allowed)
	assert.Equal(t, time.Second, blocked.RetryAfter)

	now = now.Add(time.Second)
	refilled, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.True(t, refilled.Allowed)
}

func TestRedisLimiter_KeysAreIndependent(t *testing.T) {
	l := NewRedisLimiter(newTestRedis(t), rateCfg())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, "a")
		require.NoError(t, err)
		require.True(t, d.Allowed)
	}
	d, err := l.Allow(ctx, "b")
	require.NoError(t, err)
	assert.True(t, d.Allowed)
}

func TestLocalLimiter_BlocksAfterBurst(t *testing.T) {
	l := NewLocalLimiter(rateCfg())
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		d, err := l.Allow(ctx, "k")
		require.NoError(t, err)
		assert.True(t, d.Allowed)
	}
	d, err := l.Allow(ctx, "k")
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.Equal(t, time.Second, d.RetryAfter)
}

func TestRateLimitMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := rateCfg()
	r := gin.New()
	r.Use(RateLimit(NewLocalLimiter(cfg), cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	do := func() *httptest.ResponseRecorder {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/ping", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		r.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusOK, do().Code)
	second := do()
	assert.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "2", second.Header().Get("X-RateLimit-Limit"))

	third := do()
	assert.Equal(t, http.StatusTooManyRequests, third.Code)
	assert.Equal(t, "1", third.Header().Get("Retry-After"))
	assert.Contains(t, third.Body.String(), "RATE_LIMITED")
}

func TestRateLimitMiddleware_Disabled(t *testing.T) {
	gin.SetMode(gin.TestMode)
	cfg := rateCfg()
	cfg.Enabled = false
	r := gin.New()
	r.Use(RateLimit(NewLocalLimiter(cfg), cfg))
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 5; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
		assert.Equal(t, http.StatusOK, w.Code)
	}
}
