package rest

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"golang.org/x/time/rate"
)

type ctxKey string

const requestIDKey ctxKey = "requestID"

// requestID tags every request with an id, reusing a well-formed inbound
// X-Request-ID.
func (s *HTTPServer) requestID() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(fiber.HeaderXRequestID)
		if _, err := uuid.Parse(id); err != nil {
			id = uuid.NewString()
		} else {
			id = strings.Clone(id)
		}

		c.Set(fiber.HeaderXRequestID, id)
		c.SetUserContext(context.WithValue(c.UserContext(), requestIDKey, id))
		return c.Next()
	}
}

// RequestIDFromContext returns the id assigned by the request id middleware.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func (s *HTTPServer) requestLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		if err := c.Next(); err != nil {
			if herr := s.errorHandler(c, err); herr != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		ctx := c.UserContext()
		s.logger.Info(ctx, "request",
			"method", c.Method(),
			"path", c.Path(),
			"status", c.Response().StatusCode(),
			"latency", time.Since(start),
			"request_id", RequestIDFromContext(ctx),
		)
		return nil
	}
}

const (
	limiterIdleTTL = 10 * time.Minute
	limiterMaxIPs  = 10000
)

type limiterEntry struct {
	lim  *rate.Limiter
	seen time.Time
}

// ipLimiter is a per-client token bucket: perMinute requests per minute with
// a burst of the same size.
type ipLimiter struct {
	mu       sync.Mutex
	limiters map[string]*limiterEntry
	limit    rate.Limit
	burst    int
	now      func() time.Time
}

func newIPLimiter(perMinute int) *ipLimiter {
	return &ipLimiter{
		limiters: make(map[string]*limiterEntry),
		limit:    rate.Every(time.Minute / time.Duration(perMinute)),
		burst:    perMinute,
		now:      time.Now,
	}
}

func (l *ipLimiter) allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	if len(l.limiters) >= limiterMaxIPs {
		l.prune(now)
	}

	e, ok := l.limiters[key]
	if !ok {
		e = &limiterEntry{lim: rate.NewLimiter(l.limit, l.burst)}
		l.limiters[key] = e
	}
	e.seen = now
	return e.lim.AllowN(now, 1)
}

func (l *ipLimiter) prune(now time.Time) {
	for k, e := range l.limiters {
		if now.Sub(e.seen) > limiterIdleTTL {
			delete(l.limiters, k)
		}
	}
}

func (l *ipLimiter) handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !l.allow(strings.Clone(c.IP())) {
			return c.Status(fiber.StatusTooManyRequests).
				JSON(envelope{Success: false, Message: "too many requests, try again later"})
		}
		return c.Next()
	}
}
