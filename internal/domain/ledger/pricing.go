package ledger

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// Pricing precios de plan por tier y ciclo, tarifa de alta por tier y días de prueba.
type Pricing struct {
	Currency  string
	Plans     map[entity.Tier]map[entity.BillingCycle]decimal.Decimal
	SetupFees map[entity.Tier]decimal.Decimal
	TrialDays int
}

// PlanPrice precio de un periodo del plan.
func (p Pricing) PlanPrice(tier entity.Tier, cycle entity.BillingCycle) (decimal.Decimal, error) {
	if !tier.Valid() || !cycle.Valid() {
		return decimal.Zero, fmt.Errorf("%w: plan %s/%s", domain.ErrInvalidInput, tier, cycle)
	}
	price, ok := p.Plans[tier][cycle]
	if !ok {
		return decimal.Zero, fmt.Errorf("%w: sin precio para %s/%s", domain.ErrInvalidInput, tier, cycle)
	}
	return price, nil
}

// SetupFee tarifa de alta del tier (cero si no está configurada).
func (p Pricing) SetupFee(tier entity.Tier) decimal.Decimal {
	fee, ok := p.SetupFees[tier]
	if !ok {
		return decimal.Zero
	}
	return fee
}

// PendingSetupFee tarifa de alta que aún se cobraría a la suscripción.
func (p Pricing) PendingSetupFee(sub *entity.Subscription) decimal.Decimal {
	if sub.SetupFeeCharged {
		return decimal.Zero
	}
	return p.SetupFee(sub.Tier)
}
