package entity

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// SubscriptionStatus estado del ciclo de facturación.
type SubscriptionStatus string

const (
	StatusTrial     SubscriptionStatus = "trial"
	StatusActive    SubscriptionStatus = "active"
	StatusSuspended SubscriptionStatus = "suspended"
	StatusExpired   SubscriptionStatus = "expired"
	StatusCancelled SubscriptionStatus = "cancelled"
)

// Tier plan contratado.
type Tier string

const (
	TierBasic Tier = "basic"
	TierPro   Tier = "pro"
)

// Valid indica si el plan es conocido.
func (t Tier) Valid() bool { return t == TierBasic || t == TierPro }

// BillingCycle periodicidad del cobro.
type BillingCycle string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
)

// Valid indica si la periodicidad es conocida.
func (c BillingCycle) Valid() bool { return c == CycleMonthly || c == CycleYearly }

// Advance devuelve el fin del siguiente periodo a partir de from.
func (c BillingCycle) Advance(from time.Time) time.Time {
	if c == CycleYearly {
		return from.AddDate(1, 0, 0)
	}
	return from.AddDate(0, 1, 0)
}

// Subscription suscripción de un Tenant. Un tenant tiene una sola suscripción vigente;
// reactivar tras cancelar crea una fila nueva con Lifecycle mayor.
type Subscription struct {
	ID                    string
	TenantID              string
	Lifecycle             int
	Tier                  Tier
	BillingCycle          BillingCycle
	Status                SubscriptionStatus
	TrialEndsAt           *time.Time
	NextPaymentAt         *time.Time
	SubscriptionEndsAt    *time.Time
	SetupFeeCharged       bool
	PendingSetupFeeAmount decimal.Decimal
	OutstandingAmount     decimal.Decimal
	FailedPaymentAttempts int
	HasCardOnFile         bool
	CardLast4             string
	LastPaymentRef        string // última referencia de pago aplicada
	CancelledAt           *time.Time
	Version               int
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// TrialDaysRemaining días completos de prueba que quedan a la fecha now (nunca negativo).
func (s *Subscription) TrialDaysRemaining(now time.Time) int {
	if s.Status != StatusTrial || s.TrialEndsAt == nil {
		return 0
	}
	left := s.TrialEndsAt.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Hours() / 24))
}

// Clone copia la suscripción para aplicar transiciones sin tocar el original.
func (s *Subscription) Clone() *Subscription {
	c := *s
	c.TrialEndsAt = cloneTime(s.TrialEndsAt)
	c.NextPaymentAt = cloneTime(s.NextPaymentAt)
	c.SubscriptionEndsAt = cloneTime(s.SubscriptionEndsAt)
	c.CancelledAt = cloneTime(s.CancelledAt)
	return &c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
