package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	apphttp "github.com/jhoicas/restaurant-admin-api/internal/interfaces/http"
)

type fakeSubscriptions struct {
	gotTier  entity.Tier
	gotCycle entity.BillingCycle
	err      error
}

func (f *fakeSubscriptions) GetBillingSnapshot(_ context.Context, tc *tenant.Context) (*dto.BillingSnapshotResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.BillingSnapshotResponse{
		Subscription: dto.SubscriptionResponse{Status: "trial", TrialDaysRemaining: 12, Currency: "MXN"},
	}, nil
}

func (f *fakeSubscriptions) ActivateSubscriptionManually(_ context.Context, _ *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.SubscriptionResponse, error) {
	f.gotTier, f.gotCycle = tier, cycle
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SubscriptionResponse{Status: "active", Tier: string(tier), BillingCycle: string(cycle)}, nil
}

func (f *fakeSubscriptions) Cancel(_ context.Context, _ *tenant.Context) (*dto.SubscriptionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SubscriptionResponse{Status: "cancelled"}, nil
}

func (f *fakeSubscriptions) Reactivate(_ context.Context, _ *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.SubscriptionResponse, error) {
	f.gotTier, f.gotCycle = tier, cycle
	if f.err != nil {
		return nil, f.err
	}
	return &dto.SubscriptionResponse{Status: "expired", Lifecycle: 2}, nil
}

type fakeSessions struct {
	manual bool
	err    error
}

func (f *fakeSessions) CreateSession(_ context.Context, _ *tenant.Context, tier entity.Tier, _ entity.BillingCycle) (*dto.PaymentSessionResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &dto.PaymentSessionResponse{
		GatewayConfigured: true,
		RedirectURL:       "https://gw.example.com/pay/tok-1",
		SessionToken:      "tok-1",
		Amount:            decimal.NewFromInt(349),
		Currency:          "MXN",
	}, nil
}

func (f *fakeSessions) ManualActivationAvailable() bool { return f.manual }

type fakeReceipts struct {
	gotPaymentID string
	err          error
}

func (f *fakeReceipts) DownloadReceipt(_ context.Context, _ *tenant.Context, paymentID string) ([]byte, string, error) {
	f.gotPaymentID = paymentID
	if f.err != nil {
		return nil, "", f.err
	}
	return []byte("%PDF-1.4 fake"), "comprobante-" + paymentID + ".pdf", nil
}

func buildBillingApp(subs *fakeSubscriptions, sessions *fakeSessions, receipts *fakeReceipts) *fiber.App {
	h := apphttp.NewBillingHandler(subs, sessions, receipts)
	app := newApp()
	bill := app.Group("/api/billing", apphttp.AuthMiddleware(testJWTSecret, newResolver()))
	bill.Get("/snapshot", apphttp.RequireAction(authz.BillingView), h.Snapshot)
	bill.Post("/payment-session", apphttp.RequireAction(authz.BillingPay), h.CreatePaymentSession)
	bill.Post("/activate-manually", apphttp.RequireAction(authz.BillingActivateManual), h.ActivateManually)
	bill.Post("/cancel", apphttp.RequireAction(authz.BillingCancel), h.Cancel)
	bill.Post("/reactivate", apphttp.RequireAction(authz.BillingReactivate), h.Reactivate)
	bill.Get("/payments/:id/receipt", apphttp.RequireAction(authz.BillingView), h.Receipt)
	return app
}

const planBody = `{"tier":"pro","billing_cycle":"yearly"}`

// ──────────────────────────────────────────────────────────────────────────────
// Tests BillingHandler
// ──────────────────────────────────────────────────────────────────────────────

func TestBillingSnapshot_ManagerPuedeVer(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodGet, "/api/billing/snapshot", "", map[string]string{"Authorization": managerBearer(t)})
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body dto.BillingSnapshotResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "trial", body.Subscription.Status)
	assert.Equal(t, 12, body.Subscription.TrialDaysRemaining)
}

func TestCreatePaymentSession_Created(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/payment-session", planBody, map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var body dto.PaymentSessionResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "tok-1", body.SessionToken)
	assert.NotEmpty(t, body.RedirectURL)
	assert.True(t, body.Amount.Equal(decimal.NewFromInt(349)))
}

func TestCreatePaymentSession_ManagerDenegado(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/payment-session", planBody, map[string]string{"Authorization": managerBearer(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "AUTHORIZATION_DENIED", errorCode(t, resp))
}

func TestCreatePaymentSession_PasarelaCaida_Reintentable(t *testing.T) {
	for _, manual := range []bool{false, true} {
		app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{manual: manual, err: domain.ErrGatewayUnavailable}, &fakeReceipts{})

		resp := doJSON(t, app, http.MethodPost, "/api/billing/payment-session", planBody, map[string]string{"Authorization": ownerBearer(t)})
		require.Equal(t, http.StatusBadGateway, resp.StatusCode)

		var body dto.RetryableErrorResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		resp.Body.Close()
		assert.Equal(t, "GATEWAY_UNAVAILABLE", body.Code)
		assert.True(t, body.Retryable)
		assert.Equal(t, manual, body.ManualActivationAvailable)
	}
}

func TestCreatePaymentSession_CuerpoInvalido(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/payment-session", `{"tier":`, map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errorCode(t, resp))
}

func TestActivateManually_PasaPlan(t *testing.T) {
	subs := &fakeSubscriptions{}
	app := buildBillingApp(subs, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/activate-manually", planBody, map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, entity.TierPro, subs.gotTier)
	assert.Equal(t, entity.CycleYearly, subs.gotCycle)
}

func TestActivateManually_Deshabilitada409(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{err: domain.ErrManualActivationDisabled}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/activate-manually", planBody, map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "MANUAL_ACTIVATION_DISABLED", errorCode(t, resp))
}

func TestCancel_TransicionInvalida409(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{err: domain.ErrInvalidTransition}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/cancel", "", map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusConflict, resp.StatusCode)
	assert.Equal(t, "INVALID_TRANSITION", errorCode(t, resp))
}

func TestReactivate_Created(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, &fakeReceipts{})

	resp := doJSON(t, app, http.MethodPost, "/api/billing/reactivate", planBody, map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestReceipt_DevuelvePDF(t *testing.T) {
	receipts := &fakeReceipts{}
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, receipts)

	resp := doJSON(t, app, http.MethodGet, "/api/billing/payments/pay-9/receipt", "", map[string]string{"Authorization": managerBearer(t)})
	defer resp.Body.Close()

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "comprobante-pay-9.pdf")
	assert.Equal(t, "pay-9", receipts.gotPaymentID)
	body, _ := io.ReadAll(resp.Body)
	assert.True(t, len(body) > 4 && string(body[:4]) == "%PDF")
}

func TestReceipt_PagoDeOtroRestaurante404(t *testing.T) {
	app := buildBillingApp(&fakeSubscriptions{}, &fakeSessions{}, &fakeReceipts{err: domain.ErrNotFound})

	resp := doJSON(t, app, http.MethodGet, "/api/billing/payments/ajeno/receipt", "", map[string]string{"Authorization": ownerBearer(t)})
	defer resp.Body.Close()

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
