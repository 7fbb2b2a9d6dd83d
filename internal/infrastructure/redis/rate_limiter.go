package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// RateLimiter ventana fija compartida entre instancias. La clave incluye el índice de ventana,
// así cada ventana arranca en cero sin depender de cuándo se fijó el TTL.
type RateLimiter struct {
	c      *redis.Client
	prefix string
	limit  int
	window time.Duration
	now    func() time.Time
}

// NewRateLimiter limit solicitudes por window y clave.
func NewRateLimiter(c *redis.Client, prefix string, limit int, window time.Duration) *RateLimiter {
	if prefix == "" {
		prefix = "ratelimit"
	}
	if window <= 0 {
		window = time.Minute
	}
	return &RateLimiter{c: c, prefix: prefix, limit: limit, window: window, now: time.Now}
}

// SetClock reemplaza el reloj (tests).
func (rl *RateLimiter) SetClock(now func() time.Time) { rl.now = now }

// Limit solicitudes permitidas por ventana.
func (rl *RateLimiter) Limit() int { return rl.limit }

// Allow cuenta la solicitud y devuelve si está dentro del límite junto con lo que queda de ventana.
// limit <= 0 deshabilita el límite.
func (rl *RateLimiter) Allow(ctx context.Context, key string) (bool, time.Duration, error) {
	if rl.limit <= 0 {
		return true, 0, nil
	}
	now := rl.now()
	slot := now.UnixNano() / int64(rl.window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.prefix, key, slot)
	reset := time.Unix(0, (slot+1)*int64(rl.window)).Sub(now)

	pipe := rl.c.Pipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return true, reset, fmt.Errorf("rate limit %s: %w", key, err)
	}
	return incr.Val() <= int64(rl.limit), reset, nil
}
