// Package ledger aplica los eventos de facturación a una Subscription.
// Es puro: recibe la suscripción actual y devuelve la nueva junto con las líneas de pago a
// registrar; la persistencia, el bloqueo de fila y la deduplicación por referencia viven en
// la capa de aplicación.
package ledger

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// Event evento externo aplicable al ledger.
type Event interface {
	eventName() string
}

// PaymentSucceeded pago confirmado (sesión aprobada o renovación cobrada).
// Amount es el importe de suscripción; SetupFee el de alta cobrado en la misma operación.
type PaymentSucceeded struct {
	Reference string
	Kind      string // subscription o renewal
	Amount    decimal.Decimal
	SetupFee  decimal.Decimal
	Method    string
	CardLast4 string
	Tier      entity.Tier
	Cycle     entity.BillingCycle
}

// RenewalFailed cobro de renovación rechazado mientras la suscripción está activa.
type RenewalFailed struct {
	Reference string
	Amount    decimal.Decimal
}

// PaymentDeclined sesión de activación rechazada: solo suma un intento fallido.
type PaymentDeclined struct {
	Reference string
	Amount    decimal.Decimal
	Reason    string
	Record    bool // registrar un Payment failed
}

// TrialCheck verificación periódica de fin de prueba.
type TrialCheck struct{}

// Cancel cancelación explícita por el owner.
type Cancel struct{}

// ManualActivation activación sin cobro (despliegues sin pasarela).
type ManualActivation struct {
	Tier  entity.Tier
	Cycle entity.BillingCycle
}

func (PaymentSucceeded) eventName() string { return string(TriggerPaymentSucceeded) }
func (RenewalFailed) eventName() string    { return string(TriggerRenewalFailed) }
func (PaymentDeclined) eventName() string  { return "payment_declined" }
func (TrialCheck) eventName() string       { return "trial_check" }
func (Cancel) eventName() string           { return string(TriggerCancel) }
func (ManualActivation) eventName() string { return string(TriggerManualActivation) }

// EventName nombre estable del evento (logs y métricas).
func EventName(ev Event) string {
	if ev == nil {
		return "unknown"
	}
	return ev.eventName()
}

// Result resultado de aplicar un evento.
type Result struct {
	Subscription *entity.Subscription // nueva versión; el original no se modifica
	From         entity.SubscriptionStatus
	To           entity.SubscriptionStatus
	Changed      bool              // hubo cambios que persistir
	LineItems    []*entity.Payment // pagos a agregar al historial
}

// Ledger aplica eventos según la tabla de transiciones y los precios vigentes.
type Ledger struct {
	pricing Pricing
}

// New construye el ledger.
func New(pricing Pricing) *Ledger {
	return &Ledger{pricing: pricing}
}

// Pricing precios con los que opera el ledger.
func (l *Ledger) Pricing() Pricing {
	return l.pricing
}

// Apply aplica ev a sub en el instante now.
// Una transición fuera de la tabla devuelve ErrInvalidTransition y deja sub intacta.
func (l *Ledger) Apply(sub *entity.Subscription, ev Event, now time.Time) (*Result, error) {
	if sub == nil {
		return nil, fmt.Errorf("%w: suscripción nil", domain.ErrInvalidInput)
	}
	switch e := ev.(type) {
	case PaymentSucceeded:
		return l.paymentSucceeded(sub, e, now)
	case RenewalFailed:
		return l.renewalFailed(sub, e, now)
	case PaymentDeclined:
		return l.paymentDeclined(sub, e, now)
	case TrialCheck:
		return l.trialCheck(sub, now)
	case Cancel:
		return l.cancel(sub, now)
	case ManualActivation:
		return l.manualActivation(sub, e, now)
	default:
		return nil, fmt.Errorf("%w: evento %T", domain.ErrInvalidInput, ev)
	}
}

func (l *Ledger) paymentSucceeded(sub *entity.Subscription, e PaymentSucceeded, now time.Time) (*Result, error) {
	if e.Reference != "" && e.Reference == sub.LastPaymentRef {
		return unchanged(sub), nil
	}
	if e.Amount.IsNegative() || e.SetupFee.IsNegative() {
		return nil, fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
	}
	to, err := Next(sub.Status, TriggerPaymentSucceeded)
	if err != nil {
		return nil, err
	}

	next := sub.Clone()
	if e.Tier.Valid() {
		next.Tier = e.Tier
	}
	if e.Cycle.Valid() {
		next.BillingCycle = e.Cycle
	}
	kind := e.Kind
	if kind == "" {
		kind = entity.PaymentKindSubscription
	}
	method := e.Method
	if method == "" {
		method = entity.PaymentMethodCard
	}

	res := &Result{From: sub.Status, To: to, Changed: true}
	res.LineItems = append(res.LineItems, l.lineItem(next, kind, e.Amount, method, entity.PaymentStatusPaid, e.Reference, e.CardLast4, now))

	// Tarifa de alta: solo en el primer pago con tarjeta y una única vez por suscripción.
	// Las renovaciones automáticas nunca la incluyen.
	if !next.SetupFeeCharged && method == entity.PaymentMethodCard && kind != entity.PaymentKindRenewal {
		fee := e.SetupFee
		if fee.IsZero() {
			fee = l.pricing.SetupFee(next.Tier)
		}
		next.SetupFeeCharged = true
		if fee.IsPositive() {
			res.LineItems = append(res.LineItems, l.lineItem(next, entity.PaymentKindSetupFee, fee, method, entity.PaymentStatusPaid, e.Reference, e.CardLast4, now))
		}
	}

	next.OutstandingAmount = floorZero(next.OutstandingAmount.Sub(e.Amount))
	next.Status = to
	next.FailedPaymentAttempts = 0
	next.LastPaymentRef = e.Reference
	if method == entity.PaymentMethodCard {
		next.HasCardOnFile = true
		if e.CardLast4 != "" {
			next.CardLast4 = e.CardLast4
		}
	}
	advanceCycle(next, sub.Status, now)
	next.PendingSetupFeeAmount = l.pricing.PendingSetupFee(next)
	next.UpdatedAt = now

	res.Subscription = next
	return res, nil
}

func (l *Ledger) renewalFailed(sub *entity.Subscription, e RenewalFailed, now time.Time) (*Result, error) {
	if e.Amount.IsNegative() {
		return nil, fmt.Errorf("%w: monto negativo", domain.ErrInvalidInput)
	}
	to, err := Next(sub.Status, TriggerRenewalFailed)
	if err != nil {
		return nil, err
	}
	next := sub.Clone()
	next.Status = to
	next.OutstandingAmount = next.OutstandingAmount.Add(e.Amount)
	next.FailedPaymentAttempts++
	next.UpdatedAt = now

	return &Result{
		Subscription: next,
		From:         sub.Status,
		To:           to,
		Changed:      true,
		LineItems: []*entity.Payment{
			l.lineItem(next, entity.PaymentKindRenewal, e.Amount, entity.PaymentMethodCard, entity.PaymentStatusFailed, e.Reference, "", now),
		},
	}, nil
}

// paymentDeclined no es una transición: el estado se conserva y solo cuenta el intento.
func (l *Ledger) paymentDeclined(sub *entity.Subscription, e PaymentDeclined, now time.Time) (*Result, error) {
	if sub.Status == entity.StatusCancelled {
		return nil, fmt.Errorf("%w: suscripción cancelada", domain.ErrInvalidTransition)
	}
	next := sub.Clone()
	next.FailedPaymentAttempts++
	next.UpdatedAt = now

	res := &Result{Subscription: next, From: sub.Status, To: sub.Status, Changed: true}
	if e.Record {
		res.LineItems = append(res.LineItems,
			l.lineItem(next, entity.PaymentKindSubscription, e.Amount, entity.PaymentMethodCard, entity.PaymentStatusFailed, e.Reference, "", now))
	}
	return res, nil
}

// trialCheck pasa a expired solo si la prueba está agotada; en otro caso no hace nada.
func (l *Ledger) trialCheck(sub *entity.Subscription, now time.Time) (*Result, error) {
	if sub.Status != entity.StatusTrial || sub.TrialDaysRemaining(now) > 0 {
		return unchanged(sub), nil
	}
	to, err := Next(sub.Status, TriggerTrialElapsed)
	if err != nil {
		return nil, err
	}
	next := sub.Clone()
	next.Status = to
	next.UpdatedAt = now
	return &Result{Subscription: next, From: sub.Status, To: to, Changed: true}, nil
}

func (l *Ledger) cancel(sub *entity.Subscription, now time.Time) (*Result, error) {
	to, err := Next(sub.Status, TriggerCancel)
	if err != nil {
		return nil, err
	}
	next := sub.Clone()
	next.Status = to
	t := now
	next.CancelledAt = &t
	next.NextPaymentAt = nil
	next.UpdatedAt = now
	return &Result{Subscription: next, From: sub.Status, To: to, Changed: true}, nil
}

func (l *Ledger) manualActivation(sub *entity.Subscription, e ManualActivation, now time.Time) (*Result, error) {
	if !e.Tier.Valid() || !e.Cycle.Valid() {
		return nil, fmt.Errorf("%w: plan %s/%s", domain.ErrInvalidInput, e.Tier, e.Cycle)
	}
	to, err := Next(sub.Status, TriggerManualActivation)
	if err != nil {
		return nil, err
	}
	next := sub.Clone()
	next.Tier = e.Tier
	next.BillingCycle = e.Cycle
	next.Status = to
	advanceCycle(next, sub.Status, now)
	next.PendingSetupFeeAmount = l.pricing.PendingSetupFee(next)
	next.UpdatedAt = now
	return &Result{Subscription: next, From: sub.Status, To: to, Changed: true}, nil
}

// NewTrial suscripción inicial de un tenant; la prueba cuenta desde start.
func (l *Ledger) NewTrial(tenantID string, tier entity.Tier, cycle entity.BillingCycle, start, now time.Time) (*entity.Subscription, error) {
	if tenantID == "" {
		return nil, domain.ErrTenantRequired
	}
	if !tier.Valid() || !cycle.Valid() {
		return nil, fmt.Errorf("%w: plan %s/%s", domain.ErrInvalidInput, tier, cycle)
	}
	trialEnds := start.AddDate(0, 0, l.pricing.TrialDays)
	sub := &entity.Subscription{
		TenantID:          tenantID,
		Lifecycle:         1,
		Tier:              tier,
		BillingCycle:      cycle,
		Status:            entity.StatusTrial,
		TrialEndsAt:       &trialEnds,
		OutstandingAmount: decimal.Zero,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	sub.PendingSetupFeeAmount = l.pricing.PendingSetupFee(sub)
	return sub, nil
}

// NewLifecycle abre un ciclo de vida nuevo a partir de uno cancelado. La nueva suscripción
// queda expired, a la espera de un pago; conserva deuda, tarjeta y tarifa de alta ya cobrada.
func (l *Ledger) NewLifecycle(prev *entity.Subscription, tier entity.Tier, cycle entity.BillingCycle, now time.Time) (*entity.Subscription, error) {
	if prev == nil {
		return nil, fmt.Errorf("%w: suscripción nil", domain.ErrInvalidInput)
	}
	if prev.Status != entity.StatusCancelled {
		return nil, fmt.Errorf("%w: solo una suscripción cancelada abre un ciclo nuevo (actual %s)",
			domain.ErrInvalidTransition, prev.Status)
	}
	if !tier.Valid() {
		tier = prev.Tier
	}
	if !cycle.Valid() {
		cycle = prev.BillingCycle
	}
	sub := &entity.Subscription{
		TenantID:          prev.TenantID,
		Lifecycle:         prev.Lifecycle + 1,
		Tier:              tier,
		BillingCycle:      cycle,
		Status:            entity.StatusExpired,
		SetupFeeCharged:   prev.SetupFeeCharged,
		OutstandingAmount: floorZero(prev.OutstandingAmount),
		HasCardOnFile:     prev.HasCardOnFile,
		CardLast4:         prev.CardLast4,
		LastPaymentRef:    prev.LastPaymentRef,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	sub.PendingSetupFeeAmount = l.pricing.PendingSetupFee(sub)
	return sub, nil
}

func (l *Ledger) lineItem(sub *entity.Subscription, kind string, amount decimal.Decimal, method, status, ref, last4 string, now time.Time) *entity.Payment {
	return &entity.Payment{
		TenantID:       sub.TenantID,
		SubscriptionID: sub.ID,
		Kind:           kind,
		Amount:         amount,
		Currency:       l.pricing.Currency,
		Method:         method,
		Status:         status,
		Reference:      ref,
		CardLast4:      last4,
		CreatedAt:      now,
	}
}

// advanceCycle mueve las fechas un periodo. Si la suscripción ya estaba activa y vigente,
// el periodo nuevo empieza cuando termina el actual.
func advanceCycle(sub *entity.Subscription, prevStatus entity.SubscriptionStatus, now time.Time) {
	start := now
	if prevStatus == entity.StatusActive && sub.SubscriptionEndsAt != nil && sub.SubscriptionEndsAt.After(now) {
		start = *sub.SubscriptionEndsAt
	}
	end := sub.BillingCycle.Advance(start)
	next := end
	sub.SubscriptionEndsAt = &end
	sub.NextPaymentAt = &next
}

func unchanged(sub *entity.Subscription) *Result {
	return &Result{Subscription: sub.Clone(), From: sub.Status, To: sub.Status}
}

func floorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}
