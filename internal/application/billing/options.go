package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/ledger"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
	"github.com/jhoicas/restaurant-admin-api/pkg/config"
)

// Options parámetros de despliegue de la facturación.
type Options struct {
	Currency                string
	SessionTTL              time.Duration
	RecentPayments          int
	RecordFailedPayments    bool
	ManualActivationEnabled bool
	GatewayConfigured       bool
	PublicBaseURL           string // base de las URLs de retorno de la pasarela
	DefaultTier             entity.Tier
	DefaultCycle            entity.BillingCycle
}

// OptionsFromConfig traduce la configuración de la app.
func OptionsFromConfig(cfg *config.Config) Options {
	return Options{
		Currency:                cfg.Billing.Currency,
		SessionTTL:              time.Duration(cfg.Billing.SessionTTLMinutes) * time.Minute,
		RecentPayments:          cfg.Billing.RecentPayments,
		RecordFailedPayments:    cfg.Billing.RecordFailedPayments,
		ManualActivationEnabled: cfg.Billing.ManualActivationEnabled,
		GatewayConfigured:       cfg.Gateway.Configured(),
		PublicBaseURL:           cfg.Gateway.PublicBaseURL,
		DefaultTier:             entity.TierBasic,
		DefaultCycle:            entity.CycleMonthly,
	}
}

func (o Options) withDefaults() Options {
	if !o.DefaultTier.Valid() {
		o.DefaultTier = entity.TierBasic
	}
	if !o.DefaultCycle.Valid() {
		o.DefaultCycle = entity.CycleMonthly
	}
	if o.RecentPayments <= 0 {
		o.RecentPayments = 10
	}
	if o.SessionTTL <= 0 {
		o.SessionTTL = 30 * time.Minute
	}
	return o
}

// ManualActivationAvailable la activación manual solo existe sin pasarela y con el flag activo.
func (o Options) ManualActivationAvailable() bool {
	return !o.GatewayConfigured && o.ManualActivationEnabled
}

// PricingFromConfig precios del ledger a partir de la configuración.
func PricingFromConfig(cfg config.BillingConfig) ledger.Pricing {
	return ledger.Pricing{
		Currency: cfg.Currency,
		Plans: map[entity.Tier]map[entity.BillingCycle]decimal.Decimal{
			entity.TierBasic: {entity.CycleMonthly: cfg.PriceBasicMonthly, entity.CycleYearly: cfg.PriceBasicYearly},
			entity.TierPro:   {entity.CycleMonthly: cfg.PriceProMonthly, entity.CycleYearly: cfg.PriceProYearly},
		},
		SetupFees: map[entity.Tier]decimal.Decimal{
			entity.TierBasic: cfg.SetupFeeBasic,
			entity.TierPro:   cfg.SetupFeePro,
		},
		TrialDays: cfg.TrialDays,
	}
}

// applier aplica eventos del ledger y persiste el resultado con los repos de la transacción.
type applier struct {
	ledger  *ledger.Ledger
	metrics Metrics
	log     zerolog.Logger
}

// apply ejecuta ev sobre sub: agrega las líneas de pago y guarda la suscripción con control de versión.
// Un rechazo del ledger se registra y se devuelve sin persistir nada.
func (a applier) apply(
	ctx context.Context,
	subRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
	sub *entity.Subscription,
	ev ledger.Event,
	now time.Time,
) (*ledger.Result, error) {
	name := ledger.EventName(ev)
	res, err := a.ledger.Apply(sub, ev, now)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidTransition) {
			a.metrics.TransitionRejected(name, string(sub.Status))
			a.log.Warn().Err(err).
				Str("tenant_id", sub.TenantID).
				Str("event", name).
				Str("from", string(sub.Status)).
				Msg("transición rechazada")
		}
		return nil, err
	}
	if !res.Changed {
		return res, nil
	}
	for _, p := range res.LineItems {
		if err := paymentRepo.Create(ctx, p); err != nil {
			return nil, fmt.Errorf("registrar pago %s: %w", p.Kind, err)
		}
	}
	if err := subRepo.Update(ctx, res.Subscription); err != nil {
		return nil, fmt.Errorf("guardar suscripción: %w", err)
	}
	a.metrics.Transition(name, string(res.From), string(res.To))
	a.log.Info().
		Str("tenant_id", sub.TenantID).
		Str("event", name).
		Str("from", string(res.From)).
		Str("to", string(res.To)).
		Int("line_items", len(res.LineItems)).
		Msg("evento de facturación aplicado")
	return res, nil
}

// expireTrialIfDue aplica TrialCheck cuando la prueba ya se agotó, sin esperar al cron.
func (a applier) expireTrialIfDue(
	ctx context.Context,
	subRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
	sub *entity.Subscription,
	now time.Time,
) (*entity.Subscription, error) {
	if !trialDue(sub, now) {
		return sub, nil
	}
	res, err := a.apply(ctx, subRepo, paymentRepo, sub, ledger.TrialCheck{}, now)
	if err != nil {
		return nil, err
	}
	return res.Subscription, nil
}

func trialDue(sub *entity.Subscription, now time.Time) bool {
	return sub != nil && sub.Status == entity.StatusTrial && sub.TrialDaysRemaining(now) == 0
}

func toSubscriptionResponse(s *entity.Subscription, currency string, now time.Time) dto.SubscriptionResponse {
	return dto.SubscriptionResponse{
		ID:                    s.ID,
		Lifecycle:             s.Lifecycle,
		Tier:                  string(s.Tier),
		BillingCycle:          string(s.BillingCycle),
		Status:                string(s.Status),
		TrialDaysRemaining:    s.TrialDaysRemaining(now),
		NextPaymentAt:         s.NextPaymentAt,
		SubscriptionEndsAt:    s.SubscriptionEndsAt,
		SetupFeeCharged:       s.SetupFeeCharged,
		PendingSetupFeeAmount: s.PendingSetupFeeAmount,
		OutstandingAmount:     s.OutstandingAmount,
		FailedPaymentAttempts: s.FailedPaymentAttempts,
		HasCardOnFile:         s.HasCardOnFile,
		CardLast4:             s.CardLast4,
		Currency:              currency,
	}
}

func toPaymentResponse(p *entity.Payment) dto.PaymentResponse {
	return dto.PaymentResponse{
		ID:        p.ID,
		Kind:      p.Kind,
		Amount:    p.Amount,
		Currency:  p.Currency,
		Method:    p.Method,
		Status:    p.Status,
		CardLast4: p.CardLast4,
		CreatedAt: p.CreatedAt,
	}
}
