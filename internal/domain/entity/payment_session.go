package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SessionOutcome resultado de una sesión de pasarela.
type SessionOutcome string

const (
	OutcomePending  SessionOutcome = "pending"
	OutcomeApproved SessionOutcome = "approved"
	OutcomeDeclined SessionOutcome = "declined"
	OutcomeExpired  SessionOutcome = "expired"
)

// Códigos de motivo que la pasarela (o la conciliación) puede reportar.
const (
	ReasonDeclined           = "declined"
	ReasonNotApproved        = "not_approved"
	ReasonVerificationFailed = "verification_failed"
	ReasonTenantNotFound     = "tenant_not_found"
	ReasonTimeout            = "timeout"

	// La pasarela cobró pero la suscripción ya no admitía el pago (cancelada en el medio).
	ReasonSubscriptionNotPayable = "subscription_not_payable"
)

// PaymentSession sesión de pago por redirección, identificada por el token de la pasarela.
type PaymentSession struct {
	Token          string
	TenantID       string
	SubscriptionID string
	Tier           Tier
	BillingCycle   BillingCycle
	Amount         decimal.Decimal
	SetupFeeAmount decimal.Decimal
	Currency       string
	RedirectURL    string
	Outcome        SessionOutcome
	Reason         string
	CreatedAt      time.Time
	ResolvedAt     *time.Time
}

// Terminal indica si la sesión ya fue resuelta.
func (s *PaymentSession) Terminal() bool {
	return s.Outcome != OutcomePending
}

// Stale indica si la sesión sigue pendiente pasado el ttl.
func (s *PaymentSession) Stale(now time.Time, ttl time.Duration) bool {
	return s.Outcome == OutcomePending && now.Sub(s.CreatedAt) > ttl
}

// Total monto cobrado por la pasarela: suscripción más tarifa de alta.
func (s *PaymentSession) Total() decimal.Decimal {
	return s.Amount.Add(s.SetupFeeAmount)
}
