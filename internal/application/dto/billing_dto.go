package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionResponse estado de facturación del tenant.
type SubscriptionResponse struct {
	ID                    string          `json:"id"`
	Lifecycle             int             `json:"lifecycle"`
	Tier                  string          `json:"tier"`
	BillingCycle          string          `json:"billing_cycle"`
	Status                string          `json:"status"`
	TrialDaysRemaining    int             `json:"trial_days_remaining"`
	NextPaymentAt         *time.Time      `json:"next_payment_at,omitempty"`
	SubscriptionEndsAt    *time.Time      `json:"subscription_ends_at,omitempty"`
	SetupFeeCharged       bool            `json:"setup_fee_charged"`
	PendingSetupFeeAmount decimal.Decimal `json:"pending_setup_fee_amount"`
	OutstandingAmount     decimal.Decimal `json:"outstanding_amount"`
	FailedPaymentAttempts int             `json:"failed_payment_attempts"`
	HasCardOnFile         bool            `json:"has_card_on_file"`
	CardLast4             string          `json:"card_last4,omitempty"`
	Currency              string          `json:"currency"`
}

// PaymentResponse línea del historial de pagos.
type PaymentResponse struct {
	ID        string          `json:"id"`
	Kind      string          `json:"kind"`
	Amount    decimal.Decimal `json:"amount"`
	Currency  string          `json:"currency"`
	Method    string          `json:"method"`
	Status    string          `json:"status"`
	CardLast4 string          `json:"card_last4,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
}

// BillingSnapshotResponse suscripción más pagos recientes (el más reciente primero).
type BillingSnapshotResponse struct {
	Subscription      SubscriptionResponse `json:"subscription"`
	RecentPayments    []PaymentResponse    `json:"recent_payments"`
	GatewayConfigured bool                 `json:"gateway_configured"`
}

// PlanRequest tier y ciclo solicitados.
type PlanRequest struct {
	Tier         string `json:"tier" validate:"required,oneof=basic pro"`
	BillingCycle string `json:"billing_cycle" validate:"required,oneof=monthly yearly"`
}

// PaymentSessionResponse resultado de crear una sesión de pago.
type PaymentSessionResponse struct {
	GatewayConfigured bool            `json:"gateway_configured"`
	RedirectURL       string          `json:"redirect_url,omitempty"`
	SessionToken      string          `json:"session_token"`
	Amount            decimal.Decimal `json:"amount"`
	SetupFeeAmount    decimal.Decimal `json:"setup_fee_amount"`
	Currency          string          `json:"currency"`
}

// ReconcileResponse resultado del retorno de la pasarela.
type ReconcileResponse struct {
	Status   string `json:"status"` // success o error
	Reason   string `json:"reason,omitempty"`
	Replayed bool   `json:"replayed,omitempty"`
}

// GatewayWebhookRequest evento de renovación firmado por la pasarela.
type GatewayWebhookRequest struct {
	EventID   string          `json:"event_id"`
	Type      string          `json:"type"` // renewal.succeeded | renewal.failed
	TenantID  string          `json:"tenant_id"`
	Amount    decimal.Decimal `json:"amount"`
	CardLast4 string          `json:"card_last4"`
}

// WebhookResponse acuse del webhook.
type WebhookResponse struct {
	Received  bool `json:"received"`
	Duplicate bool `json:"duplicate,omitempty"`
}
