package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-balance-service/internal/telemetry"
)

// setupTestRedis creates a miniredis instance for testing
func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	t.Cleanup(func() {
		_ = client.Close()
	})
	return client, mr
}

func setupLimitedRouter(t *testing.T, rl *RateLimiter) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(rl.Middleware())
	r.GET("/users", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hit(r http.Handler) int {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/users", nil))
	return w.Code
}

func TestRateLimiter_BurstThenReject(t *testing.T) {
	client, _ := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 3, Enabled: true}, zaptest.NewLogger(t))
	fixed := time.Unix(1_700_000_000, 0)
	rl.now = func() time.Time { return fixed }
	r := setupLimitedRouter(t, rl)

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, hit(r), "request %d", i+1)
	}
	assert.Equal(t, http.StatusTooManyRequests, hit(r))

	// two seconds later two tokens have been refilled
	fixed = fixed.Add(2 * time.Second)
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusTooManyRequests, hit(r))
}

func TestRateLimiter_Disabled(t *testing.T) {
	client, _ := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: false}, zaptest.NewLogger(t))
	r := setupLimitedRouter(t, rl)

	for i := 0; i < 5; i++ {
		assert.Equal(t, http.StatusOK, hit(r))
	}
}

func TestRateLimiter_NilLimiterPassesThrough(t *testing.T) {
	var rl *RateLimiter
	r := setupLimitedRouter(t, rl)

	assert.Equal(t, http.StatusOK, hit(r))
}

func TestRateLimiter_FailsOpenWhenRedisIsDown(t *testing.T) {
	client, mr := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 1, Enabled: true}, zaptest.NewLogger(t))
	r := setupLimitedRouter(t, rl)

	mr.Close()
	assert.Equal(t, http.StatusOK, hit(r))
	assert.Equal(t, http.StatusOK, hit(r))
}

func TestRateLimiter_BucketStoredInRedis(t *testing.T) {
	client, mr := setupTestRedis(t)

	rl := NewRateLimiter(client, RateLimiterConfig{RequestsPerSecond: 1, BurstCapacity: 5, Enabled: true}, zaptest.NewLogger(t))
	r := setupLimitedRouter(t, rl)
	require.Equal(t, http.StatusOK, hit(r))

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.Contains(t, keys[0], "ratelimit:tb:GET:/users:")
	assert.True(t, mr.TTL(keys[0]) > 0)
}

func TestMetrics(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Metrics())
	r.GET("/metrics-check", func(c *gin.Context) { c.Status(http.StatusAccepted) })

	counter := telemetry.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/metrics-check", "202")
	before := testutil.ToFloat64(counter)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics-check", nil))

	assert.Equal(t, http.StatusAccepted, w.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}
