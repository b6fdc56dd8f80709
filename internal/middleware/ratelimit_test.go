package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMiniRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return mr, rdb
}

func TestRateLimiterAllow(t *testing.T) {
	policy := RatePolicy{Name: "login", Limit: 2, Window: time.Minute}

	t.Run("bypassed in test and development", func(t *testing.T) {
		for _, env := range []string{"test", "development", ""} {
			allowed, _, err := NewRateLimiter(nil, env).Allow(context.Background(), policy, "ip:1")
			assert.NoError(t, err)
			assert.True(t, allowed, env)
		}
	})

	t.Run("nil redis in production errors", func(t *testing.T) {
		allowed, _, err := NewRateLimiter(nil, "production").Allow(context.Background(), policy, "ip:1")
		assert.ErrorIs(t, err, errNoStore)
		assert.False(t, allowed)
	})

	t.Run("counts within window", func(t *testing.T) {
		mr, rdb := setupMiniRedis(t)
		limiter := NewRateLimiter(rdb, "production")
		ctx := context.Background()

		for i := 0; i < 2; i++ {
			allowed, _, err := limiter.Allow(ctx, policy, "ip:1")
			require.NoError(t, err)
			assert.True(t, allowed)
		}
		allowed, retryAfter, err := limiter.Allow(ctx, policy, "ip:1")
		require.NoError(t, err)
		assert.False(t, allowed)
		assert.Equal(t, time.Minute, retryAfter)
		assert.Equal(t, time.Minute, mr.TTL("rl:login:ip:1"))

		// A different caller has its own budget
		allowed, _, err = limiter.Allow(ctx, policy, "ip:2")
		require.NoError(t, err)
		assert.True(t, allowed)

		mr.FastForward(2 * time.Minute)
		allowed, _, err = limiter.Allow(ctx, policy, "ip:1")
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("store failure surfaces", func(t *testing.T) {
		mr, rdb := setupMiniRedis(t)
		mr.Close()
		_, _, err := NewRateLimiter(rdb, "production").Allow(context.Background(), policy, "ip:1")
		assert.Error(t, err)
	})
}

func TestRateLimiterHandler(t *testing.T) {
	handler := func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}

	t.Run("Bypass in test mode", func(t *testing.T) {
		app := fiber.New()
		app.Get("/test", NewRateLimiter(nil, "test").Handler(RatePolicy{Name: "t", Limit: 1, Window: time.Minute}), handler)

		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
			require.NoError(t, err)
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			_ = resp.Body.Close()
		}
	})

	t.Run("FailOpen with nil redis in production", func(t *testing.T) {
		app := fiber.New()
		app.Get("/test", NewRateLimiter(nil, "production").Handler(RatePolicy{Name: "t", Limit: 1, Window: time.Minute}), handler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("FailClosed with nil redis in production", func(t *testing.T) {
		app := fiber.New()
		policy := RatePolicy{Name: "sensitive", Limit: 1, Window: time.Minute, OnError: FailClosed}
		app.Get("/sensitive", NewRateLimiter(nil, "production").Handler(policy), handler)

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/sensitive", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		_ = resp.Body.Close()
	})

	t.Run("Rejects over limit", func(t *testing.T) {
		_, rdb := setupMiniRedis(t)
		app := fiber.New()
		policy := SignupPolicy
		policy.Limit = 2
		app.Post("/user/signup", NewRateLimiter(rdb, "production").Handler(policy), handler)

		statuses := make([]int, 0, 3)
		var retryAfter string
		for i := 0; i < 3; i++ {
			resp, err := app.Test(httptest.NewRequest(http.MethodPost, "/user/signup", nil))
			require.NoError(t, err)
			statuses = append(statuses, resp.StatusCode)
			retryAfter = resp.Header.Get(fiber.HeaderRetryAfter)
			_ = resp.Body.Close()
		}
		assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, statuses)
		assert.Equal(t, "600", retryAfter)
	})
}
