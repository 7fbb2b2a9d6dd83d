package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/pkg/config"
)

func newTestClient(t *testing.T, h http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	c := NewClient(config.GatewayConfig{BaseURL: srv.URL, APIKey: "sk-test", TimeoutSeconds: 2}, zerolog.Nop())
	require.NotNil(t, c)
	return c
}

func TestNewClient_SinConfiguracion(t *testing.T) {
	assert.Nil(t, NewClient(config.GatewayConfig{BaseURL: "https://pay.example.com"}, zerolog.Nop()))
}

func TestCreateSession_OK(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))
		assert.Equal(t, "ord-1", r.Header.Get("Idempotency-Key"))

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "t-1", body["tenant_id"])
		assert.Equal(t, "349", body["amount"])
		assert.Equal(t, "https://admin.example.com/ok", body["success_url"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-1","redirect_url":"https://pay.example.com/checkout/tok-1"}`))
	})

	sess, err := c.CreateSession(context.Background(), billing.GatewaySessionRequest{
		OrderRef:   "ord-1",
		TenantID:   "t-1",
		Amount:     decimal.NewFromInt(349),
		Currency:   "TRY",
		SuccessURL: "https://admin.example.com/ok",
		ErrorURL:   "https://admin.example.com/error",
	})
	require.NoError(t, err)
	assert.Equal(t, "tok-1", sess.Token)
	assert.Equal(t, "https://pay.example.com/checkout/tok-1", sess.RedirectURL)
	assert.Nil(t, sess.ExpiresAt)
}

func TestCreateSession_RechazoEsNoDisponible(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":"invalid_amount","message":"monto inválido"}`))
	})

	_, err := c.CreateSession(context.Background(), billing.GatewaySessionRequest{OrderRef: "ord-1"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
	assert.Contains(t, err.Error(), "invalid_amount")
}

func TestCreateSession_RespuestaIncompleta(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-1"}`))
	})

	_, err := c.CreateSession(context.Background(), billing.GatewaySessionRequest{OrderRef: "ord-1"})
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}

func TestGetSession_Aprobada(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/v1/sessions/tok-9", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-9","status":"approved","amount":"349.00","currency":"TRY","card_last4":"4242"}`))
	})

	v, err := c.GetSession(context.Background(), "tok-9")
	require.NoError(t, err)
	assert.Equal(t, "approved", v.Status)
	assert.True(t, v.Amount.Equal(decimal.NewFromInt(349)))
	assert.Equal(t, "TRY", v.Currency)
	assert.Equal(t, "4242", v.CardLast4)
}

func TestGetSession_Inexistente(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	v, err := c.GetSession(context.Background(), "tok-x")
	require.NoError(t, err)
	assert.Equal(t, "not_found", v.Status)
	assert.Equal(t, "tok-x", v.Token)
}

func TestGetSession_ReintentaErrores5xx(t *testing.T) {
	var calls int32
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"token":"tok-2","status":"declined"}`))
	})

	v, err := c.GetSession(context.Background(), "tok-2")
	require.NoError(t, err)
	assert.Equal(t, "declined", v.Status)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestGetSession_CaidaPersistente(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	_, err := c.GetSession(context.Background(), "tok-3")
	assert.ErrorIs(t, err, domain.ErrGatewayUnavailable)
}
