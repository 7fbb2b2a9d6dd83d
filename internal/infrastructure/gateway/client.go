// Package gateway cliente HTTP de la pasarela de pago por redirección.
package gateway

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/pkg/config"
)

var _ billing.GatewayClient = (*Client)(nil)

type createSessionRequest struct {
	OrderRef    string          `json:"order_ref"`
	TenantID    string          `json:"tenant_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Description string          `json:"description"`
	SuccessURL  string          `json:"success_url"`
	ErrorURL    string          `json:"error_url"`
}

type createSessionResponse struct {
	Token       string     `json:"token"`
	RedirectURL string     `json:"redirect_url"`
	ExpiresAt   *time.Time `json:"expires_at"`
}

type sessionStatusResponse struct {
	Token     string          `json:"token"`
	Status    string          `json:"status"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	CardLast4 string          `json:"card_last4"`
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Client implementa billing.GatewayClient sobre la API REST de la pasarela.
type Client struct {
	http *resty.Client
	log  zerolog.Logger
}

// NewClient crea el cliente. Devuelve nil si la pasarela no está configurada.
func NewClient(cfg config.GatewayConfig, log zerolog.Logger) *Client {
	if !cfg.Configured() {
		return nil
	}
	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetTimeout(timeout).
		SetAuthToken(cfg.APIKey).
		SetRetryCount(2).
		SetRetryWaitTime(300 * time.Millisecond).
		SetRetryMaxWaitTime(2 * time.Second).
		AddRetryCondition(func(r *resty.Response, err error) bool {
			return err != nil || r.StatusCode() >= http.StatusInternalServerError
		}).
		SetHeader("Content-Type", "application/json").
		SetHeader("Accept", "application/json")

	return &Client{http: httpClient, log: log}
}

// CreateSession registra el cobro y devuelve la URL de redirección. OrderRef viaja como
// Idempotency-Key para que los reintentos no creen sesiones duplicadas.
func (c *Client) CreateSession(ctx context.Context, req billing.GatewaySessionRequest) (*billing.GatewaySession, error) {
	var out createSessionResponse
	var apiErr errorResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Idempotency-Key", req.OrderRef).
		SetBody(createSessionRequest{
			OrderRef:    req.OrderRef,
			TenantID:    req.TenantID,
			Amount:      req.Amount,
			Currency:    req.Currency,
			Description: req.Description,
			SuccessURL:  req.SuccessURL,
			ErrorURL:    req.ErrorURL,
		}).
		SetResult(&out).
		SetError(&apiErr).
		Post("/v1/sessions")
	if err != nil {
		return nil, fmt.Errorf("%w: crear sesión: %v", domain.ErrGatewayUnavailable, err)
	}
	if resp.IsError() {
		c.log.Error().
			Int("status_code", resp.StatusCode()).
			Str("code", apiErr.Code).
			Str("msg", apiErr.Message).
			Msg("pasarela rechazó la sesión")
		return nil, fmt.Errorf("%w: crear sesión: HTTP %d %s", domain.ErrGatewayUnavailable, resp.StatusCode(), apiErr.Code)
	}
	if out.Token == "" || out.RedirectURL == "" {
		return nil, fmt.Errorf("%w: respuesta sin token o redirect_url", domain.ErrGatewayUnavailable)
	}
	return &billing.GatewaySession{Token: out.Token, RedirectURL: out.RedirectURL, ExpiresAt: out.ExpiresAt}, nil
}

// GetSession consulta el estado real de la sesión. Una sesión inexistente se informa como
// not_found, que la conciliación trata como verificación fallida.
func (c *Client) GetSession(ctx context.Context, token string) (*billing.GatewayVerification, error) {
	var out sessionStatusResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("token", token).
		SetResult(&out).
		Get("/v1/sessions/{token}")
	if err != nil {
		return nil, fmt.Errorf("%w: consultar sesión: %v", domain.ErrGatewayUnavailable, err)
	}
	if resp.StatusCode() == http.StatusNotFound {
		return &billing.GatewayVerification{Token: token, Status: "not_found"}, nil
	}
	if resp.IsError() {
		return nil, fmt.Errorf("%w: consultar sesión: HTTP %d", domain.ErrGatewayUnavailable, resp.StatusCode())
	}
	return &billing.GatewayVerification{
		Token:     out.Token,
		Status:    out.Status,
		Amount:    out.Amount,
		Currency:  out.Currency,
		CardLast4: out.CardLast4,
	}, nil
}
