package http

import (
	"context"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
)

// rateLimiter lo implementa *redis.RateLimiter.
type rateLimiter interface {
	Allow(ctx context.Context, key string) (bool, time.Duration, error)
	Limit() int
}

// RateLimitByIP limita por IP de origen. Si Redis falla el request pasa (fail open) y queda en el log.
func RateLimitByIP(limiter rateLimiter, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if limiter == nil {
			return c.Next()
		}
		ip := c.IP()
		allowed, reset, err := limiter.Allow(c.UserContext(), ip)
		if err != nil {
			log.Warn().Err(err).Str("ip", ip).Msg("rate limit no disponible")
			return c.Next()
		}
		c.Set("X-RateLimit-Limit", strconv.Itoa(limiter.Limit()))
		if !allowed {
			retry := int(reset.Seconds())
			if retry < 1 {
				retry = 1
			}
			c.Set("Retry-After", strconv.Itoa(retry))
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "demasiadas solicitudes, reintente en unos segundos",
			})
		}
		return c.Next()
	}
}
