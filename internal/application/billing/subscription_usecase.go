package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/ledger"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// trialBatch suscripciones revisadas por pasada del cron de pruebas.
const trialBatch = 500

// SubscriptionUseCase lectura y mutaciones directas de la suscripción del tenant.
type SubscriptionUseCase struct {
	txRunner    BillingTxRunner
	subRepo     repository.SubscriptionRepository
	paymentRepo repository.PaymentRepository
	applier     applier
	opts        Options
	now         func() time.Time
}

// NewSubscriptionUseCase construye el caso de uso.
func NewSubscriptionUseCase(
	txRunner BillingTxRunner,
	subRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
	l *ledger.Ledger,
	opts Options,
	metrics Metrics,
	log zerolog.Logger,
) *SubscriptionUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &SubscriptionUseCase{
		txRunner:    txRunner,
		subRepo:     subRepo,
		paymentRepo: paymentRepo,
		applier:     applier{ledger: l, metrics: metrics, log: log},
		opts:        opts.withDefaults(),
		now:         time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (uc *SubscriptionUseCase) SetClock(now func() time.Time) { uc.now = now }

// GetBillingSnapshot suscripción vigente y pagos recientes del tenant del admin.
// El tenant sale siempre del contexto resuelto, nunca de un parámetro del cliente.
func (uc *SubscriptionUseCase) GetBillingSnapshot(ctx context.Context, tc *tenant.Context) (*dto.BillingSnapshotResponse, error) {
	tenantID, err := tc.Authorize(authz.BillingView)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	sub, err := ensureSubscription(ctx, uc.subRepo, uc.applier.ledger, tc, uc.opts, now)
	if err != nil {
		return nil, err
	}
	if trialDue(sub, now) {
		if sub, err = uc.expireTrial(ctx, tenantID, now); err != nil {
			return nil, err
		}
	}
	payments, err := uc.paymentRepo.ListRecent(ctx, tenantID, uc.opts.RecentPayments)
	if err != nil {
		return nil, fmt.Errorf("listar pagos: %w", err)
	}
	out := &dto.BillingSnapshotResponse{
		Subscription:      toSubscriptionResponse(sub, uc.opts.Currency, now),
		RecentPayments:    make([]dto.PaymentResponse, 0, len(payments)),
		GatewayConfigured: uc.opts.GatewayConfigured,
	}
	for _, p := range payments {
		if p.TenantID != tenantID {
			continue
		}
		out.RecentPayments = append(out.RecentPayments, toPaymentResponse(p))
	}
	return out, nil
}

// ActivateSubscriptionManually activa sin cobro. Solo existe en despliegues sin pasarela y con
// BILLING_MANUAL_ACTIVATION_ENABLED; no crea ningún Payment, solo marca las fechas del ciclo.
func (uc *SubscriptionUseCase) ActivateSubscriptionManually(ctx context.Context, tc *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.SubscriptionResponse, error) {
	tenantID, err := tc.Authorize(authz.BillingActivateManual)
	if err != nil {
		return nil, err
	}
	if !uc.opts.ManualActivationAvailable() {
		return nil, domain.ErrManualActivationDisabled
	}
	if !tier.Valid() || !cycle.Valid() {
		return nil, fmt.Errorf("%w: plan %s/%s", domain.ErrInvalidInput, tier, cycle)
	}
	if _, err := ensureSubscription(ctx, uc.subRepo, uc.applier.ledger, tc, uc.opts, uc.now()); err != nil {
		return nil, err
	}
	return uc.mutate(ctx, tenantID, ledger.ManualActivation{Tier: tier, Cycle: cycle})
}

// Cancel cancela una suscripción activa. cancelled es terminal.
func (uc *SubscriptionUseCase) Cancel(ctx context.Context, tc *tenant.Context) (*dto.SubscriptionResponse, error) {
	tenantID, err := tc.Authorize(authz.BillingCancel)
	if err != nil {
		return nil, err
	}
	return uc.mutate(ctx, tenantID, ledger.Cancel{})
}

// Reactivate abre un ciclo de vida nuevo sobre una suscripción cancelada. La nueva queda
// expired hasta que llegue un pago; el ciclo cancelado no se modifica.
func (uc *SubscriptionUseCase) Reactivate(ctx context.Context, tc *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.SubscriptionResponse, error) {
	tenantID, err := tc.Authorize(authz.BillingReactivate)
	if err != nil {
		return nil, err
	}
	var created *entity.Subscription
	err = uc.txRunner.RunBilling(ctx, func(
		subRepo repository.SubscriptionRepository,
		_ repository.PaymentRepository,
		_ repository.PaymentSessionRepository,
	) error {
		cur, err := subRepo.GetCurrentForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		next, err := uc.applier.ledger.NewLifecycle(cur, tier, cycle, uc.now())
		if err != nil {
			uc.applier.log.Warn().Err(err).Str("tenant_id", tenantID).Msg("reactivación rechazada")
			return err
		}
		if err := subRepo.Create(ctx, next); err != nil {
			return fmt.Errorf("crear ciclo de vida: %w", err)
		}
		created = next
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.applier.log.Info().Str("tenant_id", tenantID).Int("lifecycle", created.Lifecycle).Msg("suscripción reactivada")
	resp := toSubscriptionResponse(created, uc.opts.Currency, uc.now())
	return &resp, nil
}

// RunTrialChecks expira las pruebas agotadas. Devuelve cuántas cambiaron.
func (uc *SubscriptionUseCase) RunTrialChecks(ctx context.Context) (int, error) {
	now := uc.now()
	due, err := uc.subRepo.ListTrialsEndingBefore(ctx, now, trialBatch)
	if err != nil {
		return 0, fmt.Errorf("listar pruebas: %w", err)
	}
	expired := 0
	for _, s := range due {
		changed := false
		err := uc.txRunner.RunBilling(ctx, func(
			subRepo repository.SubscriptionRepository,
			paymentRepo repository.PaymentRepository,
			_ repository.PaymentSessionRepository,
		) error {
			cur, err := subRepo.GetCurrentForUpdate(ctx, s.TenantID)
			if err != nil || cur == nil {
				return err
			}
			after, err := uc.applier.expireTrialIfDue(ctx, subRepo, paymentRepo, cur, now)
			if err != nil {
				return err
			}
			changed = after.Status != cur.Status
			return nil
		})
		if err != nil {
			uc.applier.log.Error().Err(err).Str("tenant_id", s.TenantID).Msg("revisión de prueba falló")
			continue
		}
		if changed {
			expired++
		}
	}
	return expired, nil
}

// expireTrial vence la prueba agotada del tenant bajo el bloqueo de su fila.
func (uc *SubscriptionUseCase) expireTrial(ctx context.Context, tenantID string, now time.Time) (*entity.Subscription, error) {
	var after *entity.Subscription
	err := uc.txRunner.RunBilling(ctx, func(
		subRepo repository.SubscriptionRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PaymentSessionRepository,
	) error {
		cur, err := subRepo.GetCurrentForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		after, err = uc.applier.expireTrialIfDue(ctx, subRepo, paymentRepo, cur, now)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("vencer prueba: %w", err)
	}
	return after, nil
}

// mutate aplica ev bajo el bloqueo de la fila de suscripción del tenant.
func (uc *SubscriptionUseCase) mutate(ctx context.Context, tenantID string, ev ledger.Event) (*dto.SubscriptionResponse, error) {
	now := uc.now()
	var after *entity.Subscription
	err := uc.txRunner.RunBilling(ctx, func(
		subRepo repository.SubscriptionRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PaymentSessionRepository,
	) error {
		cur, err := subRepo.GetCurrentForUpdate(ctx, tenantID)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrNotFound
		}
		if cur, err = uc.applier.expireTrialIfDue(ctx, subRepo, paymentRepo, cur, now); err != nil {
			return err
		}
		res, err := uc.applier.apply(ctx, subRepo, paymentRepo, cur, ev, now)
		if err != nil {
			return err
		}
		after = res.Subscription
		return nil
	})
	if err != nil {
		return nil, err
	}
	resp := toSubscriptionResponse(after, uc.opts.Currency, now)
	return &resp, nil
}

// ensureSubscription devuelve la suscripción vigente; si el tenant aún no tiene, abre la prueba
// contando desde el alta del restaurante.
func ensureSubscription(
	ctx context.Context,
	subRepo repository.SubscriptionRepository,
	l *ledger.Ledger,
	tc *tenant.Context,
	opts Options,
	now time.Time,
) (*entity.Subscription, error) {
	tenantID, err := tc.RequireTenant()
	if err != nil {
		return nil, err
	}
	sub, err := subRepo.GetCurrent(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("obtener suscripción: %w", err)
	}
	if sub != nil {
		return sub, nil
	}
	start := tc.Tenant.CreatedAt
	if start.IsZero() {
		start = now
	}
	sub, err = l.NewTrial(tenantID, opts.DefaultTier, opts.DefaultCycle, start, now)
	if err != nil {
		return nil, err
	}
	if err := subRepo.Create(ctx, sub); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Otro request la creó primero.
			return subRepo.GetCurrent(ctx, tenantID)
		}
		return nil, fmt.Errorf("crear suscripción: %w", err)
	}
	return sub, nil
}
