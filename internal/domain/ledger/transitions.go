package ledger

import (
	"fmt"
	"strings"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// Trigger evento externo que provoca una transición.
type Trigger string

const (
	TriggerPaymentSucceeded Trigger = "payment_succeeded"
	TriggerRenewalFailed    Trigger = "renewal_failed"
	TriggerTrialElapsed     Trigger = "trial_elapsed"
	TriggerCancel           Trigger = "cancel"
	TriggerManualActivation Trigger = "manual_activation"
)

// Transition cambio de estado válido y el evento que lo produce.
type Transition struct {
	From    entity.SubscriptionStatus
	To      entity.SubscriptionStatus
	Trigger Trigger
}

// validTransitions definición completa de la máquina de estados. cancelled no tiene salidas:
// reactivar es un ciclo de vida nuevo (NewLifecycle), no una transición.
var validTransitions = []Transition{
	{From: entity.StatusTrial, To: entity.StatusActive, Trigger: TriggerPaymentSucceeded},
	{From: entity.StatusExpired, To: entity.StatusActive, Trigger: TriggerPaymentSucceeded},
	{From: entity.StatusSuspended, To: entity.StatusActive, Trigger: TriggerPaymentSucceeded},
	// Renovación o cambio de plan ya activo: avanza las fechas del ciclo.
	{From: entity.StatusActive, To: entity.StatusActive, Trigger: TriggerPaymentSucceeded},

	{From: entity.StatusTrial, To: entity.StatusExpired, Trigger: TriggerTrialElapsed},
	{From: entity.StatusActive, To: entity.StatusSuspended, Trigger: TriggerRenewalFailed},
	{From: entity.StatusActive, To: entity.StatusCancelled, Trigger: TriggerCancel},

	{From: entity.StatusTrial, To: entity.StatusActive, Trigger: TriggerManualActivation},
	{From: entity.StatusExpired, To: entity.StatusActive, Trigger: TriggerManualActivation},
	{From: entity.StatusSuspended, To: entity.StatusActive, Trigger: TriggerManualActivation},
	{From: entity.StatusActive, To: entity.StatusActive, Trigger: TriggerManualActivation},
}

type transitionKey struct {
	From    entity.SubscriptionStatus
	Trigger Trigger
}

var transitionMap = func() map[transitionKey]entity.SubscriptionStatus {
	m := make(map[transitionKey]entity.SubscriptionStatus, len(validTransitions))
	for _, t := range validTransitions {
		m[transitionKey{t.From, t.Trigger}] = t.To
	}
	return m
}()

// Next estado destino de aplicar trigger en from, o ErrInvalidTransition.
func Next(from entity.SubscriptionStatus, trigger Trigger) (entity.SubscriptionStatus, error) {
	to, ok := transitionMap[transitionKey{from, trigger}]
	if !ok {
		return from, fmt.Errorf("%w: %s no acepta %s (válidas: %s)",
			domain.ErrInvalidTransition, from, trigger, describeValidFrom(from))
	}
	return to, nil
}

// ValidTransitionsFrom transiciones que salen de status.
func ValidTransitionsFrom(status entity.SubscriptionStatus) []Transition {
	var out []Transition
	for _, t := range validTransitions {
		if t.From == status {
			out = append(out, t)
		}
	}
	return out
}

// AllTransitions tabla completa (documentación y tests).
func AllTransitions() []Transition {
	out := make([]Transition, len(validTransitions))
	copy(out, validTransitions)
	return out
}

func describeValidFrom(status entity.SubscriptionStatus) string {
	ts := ValidTransitionsFrom(status)
	if len(ts) == 0 {
		return "ninguna, estado terminal"
	}
	parts := make([]string, 0, len(ts))
	for _, t := range ts {
		parts = append(parts, string(t.Trigger)+"→"+string(t.To))
	}
	return strings.Join(parts, ", ")
}
