package http_test

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/go-redis/redis/v8"
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/infrastructure/redis"
	apphttp "github.com/jhoicas/restaurant-admin-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// RateLimitByIP
// ──────────────────────────────────────────────────────────────────────────────

func buildLimitedApp(limiter *redis.RateLimiter) *fiber.App {
	app := newApp()
	app.Get("/callback", apphttp.RateLimitByIP(limiter, zerolog.Nop()), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	})
	return app
}

func TestRateLimitByIP_CortaAlSuperarLimite(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer rc.Close()

	limiter := redis.NewRateLimiter(rc, "ratelimit:callback", 2, time.Minute)
	limiter.SetClock(func() time.Time { return time.Date(2026, 3, 1, 12, 0, 30, 0, time.UTC) })
	app := buildLimitedApp(limiter)

	for i := 0; i < 2; i++ {
		resp := doJSON(t, app, http.MethodGet, "/callback", "", nil)
		resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode, "request %d", i+1)
		assert.Equal(t, "2", resp.Header.Get("X-RateLimit-Limit"))
	}

	resp := doJSON(t, app, http.MethodGet, "/callback", "", nil)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
	assert.Equal(t, "30", resp.Header.Get("Retry-After"))
	assert.Equal(t, "RATE_LIMITED", errorCode(t, resp))
}

func TestRateLimitByIP_RedisCaidoDejaPasar(t *testing.T) {
	mr := miniredis.RunT(t)
	rc := goredis.NewClient(&goredis.Options{Addr: mr.Addr(), MaxRetries: -1})
	defer rc.Close()
	mr.Close()

	app := buildLimitedApp(redis.NewRateLimiter(rc, "ratelimit:callback", 1, time.Minute))
	for i := 0; i < 3; i++ {
		resp := doJSON(t, app, http.MethodGet, "/callback", "", nil)
		resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// HTTPMetrics
// ──────────────────────────────────────────────────────────────────────────────

type observation struct {
	method, route string
	status        int
}

type fakeObserver struct {
	seen []observation
}

func (o *fakeObserver) ObserveHTTP(method, route string, status int, _ time.Duration) {
	o.seen = append(o.seen, observation{method, route, status})
}

func TestHTTPMetrics_UsaPatronDeRutaYStatus(t *testing.T) {
	obs := &fakeObserver{}
	app := newApp()
	app.Use(apphttp.HTTPMetrics(obs))
	app.Get("/orders/:id", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusAccepted).SendString(c.Params("id"))
	})
	app.Get("/boom", func(c *fiber.Ctx) error {
		return fiber.NewError(fiber.StatusTeapot, "tea")
	})

	resp := doJSON(t, app, http.MethodGet, "/orders/abc", "", nil)
	resp.Body.Close()
	resp = doJSON(t, app, http.MethodGet, "/boom", "", nil)
	resp.Body.Close()

	require.Len(t, obs.seen, 2)
	assert.Equal(t, observation{http.MethodGet, "/orders/:id", http.StatusAccepted}, obs.seen[0])
	assert.Equal(t, http.StatusTeapot, obs.seen[1].status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de errores
// ──────────────────────────────────────────────────────────────────────────────

func TestErrorHandler_TraduceErroresDeDominio(t *testing.T) {
	cases := []struct {
		err    error
		status int
		code   string
	}{
		{domain.ErrAuthorizationDenied, http.StatusForbidden, "AUTHORIZATION_DENIED"},
		{domain.ErrTenantRequired, http.StatusForbidden, "TENANT_REQUIRED"},
		{domain.ErrInvalidTransition, http.StatusConflict, "INVALID_TRANSITION"},
		{domain.ErrSessionNotFound, http.StatusNotFound, "SESSION_NOT_FOUND"},
		{domain.ErrSessionOutcomeConflict, http.StatusConflict, "SESSION_CONFLICT"},
		{domain.ErrGatewayUnavailable, http.StatusBadGateway, "GATEWAY_UNAVAILABLE"},
		{fmt.Errorf("%w: falta tier", domain.ErrInvalidInput), http.StatusBadRequest, "VALIDATION"},
		{fmt.Errorf("crear pedido: %w", domain.ErrDuplicate), http.StatusConflict, "DUPLICATE"},
		{context.DeadlineExceeded, http.StatusInternalServerError, "INTERNAL"},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			app := newApp()
			app.Get("/x", func(c *fiber.Ctx) error { return tc.err })

			resp := doJSON(t, app, http.MethodGet, "/x", "", nil)
			defer resp.Body.Close()

			assert.Equal(t, tc.status, resp.StatusCode)
			assert.Equal(t, tc.code, errorCode(t, resp))
		})
	}
}

func TestErrorHandler_InternoNoExponeDetalle(t *testing.T) {
	app := newApp()
	app.Get("/x", func(c *fiber.Ctx) error { return fmt.Errorf("pgx: password authentication failed for user admin") })

	resp := doJSON(t, app, http.MethodGet, "/x", "", nil)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.NotContains(t, string(body), "password")
}

func TestErrorHandler_ValidacionIncluyeMensaje(t *testing.T) {
	app := newApp()
	app.Get("/x", func(c *fiber.Ctx) error { return fmt.Errorf("%w: producto 2 inválido", domain.ErrInvalidInput) })

	resp := doJSON(t, app, http.MethodGet, "/x", "", nil)
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "producto 2 inválido")
}
