package middleware

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/redis/go-redis/v9"
)

// FailPolicy defines the behavior when the rate limit store (Redis) is unavailable.
type FailPolicy int

const (
	// FailOpen allows the request to proceed if Redis is unavailable.
	FailOpen FailPolicy = iota
	// FailClosed blocks the request (503 Service Unavailable) if Redis is unavailable.
	FailClosed
)

var errNoStore = errors.New("rate limit store is not configured")

// RateLimitRejections counts requests refused by a RatePolicy.
var RateLimitRejections = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "labook_rate_limit_rejections_total",
	Help: "Total number of requests rejected by a rate limit policy",
}, []string{"policy"})

// RatePolicy caps a named resource at Limit requests per Window for each caller.
type RatePolicy struct {
	Name    string
	Limit   int
	Window  time.Duration
	OnError FailPolicy
}

// Signup and login budgets per caller.
var (
	SignupPolicy = RatePolicy{Name: "signup", Limit: 5, Window: 10 * time.Minute}
	LoginPolicy  = RatePolicy{Name: "login", Limit: 10, Window: 5 * time.Minute}
)

// RateLimiter counts requests in fixed Redis windows keyed by policy and caller.
type RateLimiter struct {
	rdb     *redis.Client
	enabled bool
}

// NewRateLimiter returns a limiter backed by rdb. Limits are not enforced in
// the development and test environments.
func NewRateLimiter(rdb *redis.Client, env string) *RateLimiter {
	switch strings.ToLower(strings.TrimSpace(env)) {
	case "", "development", "test":
		return &RateLimiter{rdb: rdb}
	}
	return &RateLimiter{rdb: rdb, enabled: true}
}

// Allow records one request by caller against p. It reports whether the
// request fits the budget and, when it does not, how long until the window resets.
func (l *RateLimiter) Allow(ctx context.Context, p RatePolicy, caller string) (bool, time.Duration, error) {
	if !l.enabled {
		return true, 0, nil
	}
	if l.rdb == nil {
		return false, 0, errNoStore
	}

	key := "rl:" + p.Name + ":" + caller
	cnt, err := l.rdb.Incr(ctx, key).Result()
	if err != nil {
		return false, 0, err
	}
	if cnt == 1 {
		if err := l.rdb.Expire(ctx, key, p.Window).Err(); err != nil {
			return false, 0, err
		}
	}
	if cnt <= int64(p.Limit) {
		return true, 0, nil
	}

	ttl, err := l.rdb.TTL(ctx, key).Result()
	if err != nil || ttl < 0 {
		ttl = p.Window
	}
	return false, ttl, nil
}

// Handler enforces p on every request. Callers are keyed by authenticated
// user when one is set, otherwise by remote IP.
func (l *RateLimiter) Handler(p RatePolicy) fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := "ip:" + c.IP()
		if uid := UserID(c); uid != "" {
			caller = "user:" + uid
		}

		allowed, retryAfter, err := l.Allow(c.UserContext(), p, caller)
		if err != nil {
			if p.OnError == FailClosed {
				Logger.WarnContext(c.UserContext(), "rate limit unavailable, failing closed",
					slog.String("policy", p.Name),
					slog.String("error", err.Error()),
				)
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": "Rate limit unavailable",
					"code":  "SERVICE_UNAVAILABLE",
				})
			}
			return c.Next()
		}

		if !allowed {
			RateLimitRejections.WithLabelValues(p.Name).Inc()
			seconds := int(retryAfter.Round(time.Second) / time.Second)
			if seconds < 1 {
				seconds = 1
			}
			c.Set(fiber.HeaderRetryAfter, strconv.Itoa(seconds))
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests",
				"code":  "RATE_LIMITED",
			})
		}
		return c.Next()
	}
}
