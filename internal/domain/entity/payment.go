package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de línea de pago.
const (
	PaymentKindSubscription = "subscription"
	PaymentKindSetupFee     = "setup_fee"
	PaymentKindRenewal      = "renewal"
)

// Métodos de pago.
const (
	PaymentMethodCard   = "card"
	PaymentMethodManual = "manual"
)

// Estados de Payment.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusFailed  = "failed"
)

// Payment registro histórico inmutable; solo se agregan filas, nunca se modifican.
// (Reference, Kind) es único: Reference es el token de sesión o el id del evento de webhook.
type Payment struct {
	ID             string
	TenantID       string
	SubscriptionID string
	Kind           string
	Amount         decimal.Decimal
	Currency       string
	Method         string
	Status         string
	Reference      string
	CardLast4      string
	CreatedAt      time.Time
}
