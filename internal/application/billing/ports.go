package billing

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// BillingTxRunner ejecuta fn dentro de una transacción con los repos de facturación atados a ella.
type BillingTxRunner interface {
	RunBilling(ctx context.Context, fn func(
		subRepo repository.SubscriptionRepository,
		paymentRepo repository.PaymentRepository,
		sessionRepo repository.PaymentSessionRepository,
	) error) error
}

// GatewaySessionRequest alta de una sesión de pago en la pasarela.
// La pasarela redirige a SuccessURL / ErrorURL agregando ?token=<token> (y &reason= en error).
type GatewaySessionRequest struct {
	OrderRef    string
	TenantID    string
	Amount      decimal.Decimal
	Currency    string
	Description string
	SuccessURL  string
	ErrorURL    string
}

// GatewaySession sesión creada por la pasarela.
type GatewaySession struct {
	Token       string
	RedirectURL string
	ExpiresAt   *time.Time
}

// GatewayVerification estado de la sesión según la pasarela (servidor a servidor).
type GatewayVerification struct {
	Token     string
	Status    string // approved, declined, pending
	Amount    decimal.Decimal
	Currency  string
	CardLast4 string
}

// GatewayClient cliente de la pasarela de pago por redirección.
// Los errores de red o de configuración deben envolver domain.ErrGatewayUnavailable.
type GatewayClient interface {
	CreateSession(ctx context.Context, req GatewaySessionRequest) (*GatewaySession, error)
	GetSession(ctx context.Context, token string) (*GatewayVerification, error)
}

// Metrics contadores de facturación. Nil-safe vía NopMetrics.
type Metrics interface {
	SessionCreated(gatewayConfigured bool)
	CallbackReconciled(outcome string, replayed bool)
	Transition(event, from, to string)
	TransitionRejected(event, from string)
	SessionsExpired(n int)
}

// NopMetrics implementación vacía.
type NopMetrics struct{}

func (NopMetrics) SessionCreated(bool)               {}
func (NopMetrics) CallbackReconciled(string, bool)   {}
func (NopMetrics) Transition(string, string, string) {}
func (NopMetrics) TransitionRejected(string, string) {}
func (NopMetrics) SessionsExpired(int)               {}

// ReceiptData datos del comprobante de un pago confirmado.
type ReceiptData struct {
	TenantName string
	PaymentID  string
	Kind       string
	Amount     decimal.Decimal
	Currency   string
	Method     string
	CardLast4  string
	Reference  string
	Tier       string
	Cycle      string
	PaidAt     time.Time
}

// ReceiptPDFGenerator genera el PDF del comprobante.
type ReceiptPDFGenerator interface {
	GenerateReceiptPDF(ctx context.Context, data ReceiptData) ([]byte, error)
}
