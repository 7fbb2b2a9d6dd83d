package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/application/preview"
	"github.com/jhoicas/restaurant-admin-api/pkg/config"
)

func setupTestRedis(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	c := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = c.Close() })
	return mr, c
}

func TestNewClient_Ping(t *testing.T) {
	mr := miniredis.RunT(t)
	addr := mr.Addr()
	c, err := NewClient(context.Background(), config.RedisConfig{Addr: addr})
	require.NoError(t, err)
	_ = c.Close()

	mr.Close()
	_, err = NewClient(context.Background(), config.RedisConfig{Addr: addr})
	assert.Error(t, err)
}

// ──────────────────────────────────────────────────────────────────────────────
// PreviewStore

func TestPreviewStore_GuardarLeerBorrar(t *testing.T) {
	mr, c := setupTestRedis(t)
	store := NewPreviewStore(c)
	ctx := context.Background()

	sc := preview.Scope{TenantID: "t-1", AdminID: "u-1", ScopeID: "s-1", ExpiresAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, store.Save(ctx, sc, time.Hour))
	assert.True(t, mr.Exists("preview:s-1"))
	assert.Equal(t, time.Hour, mr.TTL("preview:s-1"))

	got, err := store.Get(ctx, "s-1")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "t-1", got.TenantID)
	assert.Equal(t, "u-1", got.AdminID)
	assert.True(t, sc.ExpiresAt.Equal(got.ExpiresAt))

	require.NoError(t, store.Delete(ctx, "s-1"))
	got, err = store.Get(ctx, "s-1")
	require.NoError(t, err)
	assert.Nil(t, got)

	assert.NoError(t, store.Delete(ctx, "s-1"))
}

func TestPreviewStore_ExpiraPorTTL(t *testing.T) {
	mr, c := setupTestRedis(t)
	store := NewPreviewStore(c)
	ctx := context.Background()

	require.NoError(t, store.Save(ctx, preview.Scope{ScopeID: "s-2"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	got, err := store.Get(ctx, "s-2")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestPreviewStore_TTLInvalido(t *testing.T) {
	_, c := setupTestRedis(t)
	assert.Error(t, NewPreviewStore(c).Save(context.Background(), preview.Scope{ScopeID: "s-3"}, 0))
}

// ──────────────────────────────────────────────────────────────────────────────
// OTPStore

func TestOTPStore_CodigoCorrectoSeConsume(t *testing.T) {
	mr, c := setupTestRedis(t)
	store := NewOTPStore(c, time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "t-1", "+905551112233")
	require.NoError(t, err)
	assert.Len(t, code, 6)

	ok, err := store.Verify(ctx, "t-1", "+905551112233", code)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, mr.Exists("otp:t-1:+905551112233"))

	ok, err = store.Verify(ctx, "t-1", "+905551112233", code)
	require.NoError(t, err)
	assert.False(t, ok, "un código consumido no se reutiliza")
}

func TestOTPStore_OtroRestauranteNoValida(t *testing.T) {
	_, c := setupTestRedis(t)
	store := NewOTPStore(c, time.Minute)
	ctx := context.Background()

	code, err := store.Issue(ctx, "t-1", "555")
	require.NoError(t, err)

	ok, err := store.Verify(ctx, "t-2", "555", code)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPStore_BloqueoTrasIntentosFallidos(t *testing.T) {
	mr, c := setupTestRedis(t)
	store := NewOTPStore(c, time.Minute)
	ctx := context.Background()

	require.NoError(t, mr.Set("otp:t-1:555", "123456"))
	for i := 0; i < otpMaxAttempts; i++ {
		ok, err := store.Verify(ctx, "t-1", "555", "000000")
		require.NoError(t, err)
		assert.False(t, ok)
	}
	assert.False(t, mr.Exists("otp:t-1:555"))

	ok, err := store.Verify(ctx, "t-1", "555", "123456")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOTPStore_NuevoCodigoReiniciaIntentos(t *testing.T) {
	mr, c := setupTestRedis(t)
	store := NewOTPStore(c, time.Minute)
	ctx := context.Background()

	_, err := store.Issue(ctx, "t-1", "555")
	require.NoError(t, err)
	_, _ = store.Verify(ctx, "t-1", "555", "x")
	assert.True(t, mr.Exists("otp:attempts:t-1:555"))

	_, err = store.Issue(ctx, "t-1", "555")
	require.NoError(t, err)
	assert.False(t, mr.Exists("otp:attempts:t-1:555"))
}

// ──────────────────────────────────────────────────────────────────────────────
// RateLimiter

func TestRateLimiter_VentanaFija(t *testing.T) {
	_, c := setupTestRedis(t)
	rl := NewRateLimiter(c, "ratelimit:callback", 2, time.Minute)
	now := time.Date(2026, 3, 1, 12, 0, 10, 0, time.UTC)
	rl.SetClock(func() time.Time { return now })
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		ok, _, err := rl.Allow(ctx, "1.2.3.4")
		require.NoError(t, err)
		assert.True(t, ok)
	}
	ok, reset, err := rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, 50*time.Second, reset)

	ok, _, err = rl.Allow(ctx, "5.6.7.8")
	require.NoError(t, err)
	assert.True(t, ok, "otra IP tiene su propio contador")

	now = now.Add(time.Minute)
	ok, _, err = rl.Allow(ctx, "1.2.3.4")
	require.NoError(t, err)
	assert.True(t, ok, "la ventana siguiente arranca en cero")
}

func TestRateLimiter_Deshabilitado(t *testing.T) {
	_, c := setupTestRedis(t)
	rl := NewRateLimiter(c, "", 0, 0)
	for i := 0; i < 10; i++ {
		ok, _, err := rl.Allow(context.Background(), "k")
		require.NoError(t, err)
		assert.True(t, ok)
	}
}

func TestRateLimiter_RedisCaidoDejaPasar(t *testing.T) {
	mr, c := setupTestRedis(t)
	rl := NewRateLimiter(c, "", 1, time.Minute)
	mr.Close()

	ok, _, err := rl.Allow(context.Background(), "k")
	assert.Error(t, err)
	assert.True(t, ok)
}
