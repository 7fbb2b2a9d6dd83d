package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/application/tenant"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/authz"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/ledger"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// Rutas de retorno de la pasarela (relativas a PublicBaseURL).
const (
	ReturnSuccessPath = "/api/billing/gateway/success"
	ReturnErrorPath   = "/api/billing/gateway/error"
)

// staleBatch sesiones expiradas por pasada del cron.
const staleBatch = 500

// idempotencyWindow ventana en la que un reintento del mismo pago reusa la clave de idempotencia.
const idempotencyWindow = time.Minute

// ReconcileResult resultado de conciliar el retorno de la pasarela.
type ReconcileResult struct {
	TenantID string
	Outcome  entity.SessionOutcome
	Reason   string // vacío cuando el pago fue aprobado
	Replayed bool   // la sesión ya estaba resuelta con el mismo resultado
}

// Success indica si el pago quedó aprobado.
func (r *ReconcileResult) Success() bool {
	return r != nil && r.Outcome == entity.OutcomeApproved
}

// PaymentSessionUseCase protocolo de pago por redirección: alta de sesión y conciliación del retorno.
type PaymentSessionUseCase struct {
	txRunner    BillingTxRunner
	subRepo     repository.SubscriptionRepository
	sessionRepo repository.PaymentSessionRepository
	tenantRepo  repository.TenantRepository
	gateway     GatewayClient
	applier     applier
	opts        Options
	now         func() time.Time
}

// NewPaymentSessionUseCase construye el caso de uso. gateway puede ser nil si el despliegue no
// tiene pasarela configurada.
func NewPaymentSessionUseCase(
	txRunner BillingTxRunner,
	subRepo repository.SubscriptionRepository,
	sessionRepo repository.PaymentSessionRepository,
	tenantRepo repository.TenantRepository,
	gateway GatewayClient,
	l *ledger.Ledger,
	opts Options,
	metrics Metrics,
	log zerolog.Logger,
) *PaymentSessionUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	opts = opts.withDefaults()
	if gateway == nil {
		opts.GatewayConfigured = false
	}
	return &PaymentSessionUseCase{
		txRunner:    txRunner,
		subRepo:     subRepo,
		sessionRepo: sessionRepo,
		tenantRepo:  tenantRepo,
		gateway:     gateway,
		applier:     applier{ledger: l, metrics: metrics, log: log},
		opts:        opts,
		now:         time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (uc *PaymentSessionUseCase) SetClock(now func() time.Time) { uc.now = now }

// ManualActivationAvailable expone el flag para los mensajes de error de la capa HTTP.
func (uc *PaymentSessionUseCase) ManualActivationAvailable() bool {
	return uc.opts.ManualActivationAvailable()
}

// CreateSession inicia el pago del plan tier/cycle. Con pasarela devuelve la URL a la que el
// navegador debe ir; el resultado llega después por ReconcileCallback. Sin pasarela devuelve
// GatewayConfigured=false y el panel ofrece la activación manual.
func (uc *PaymentSessionUseCase) CreateSession(ctx context.Context, tc *tenant.Context, tier entity.Tier, cycle entity.BillingCycle) (*dto.PaymentSessionResponse, error) {
	tenantID, err := tc.Authorize(authz.BillingPay)
	if err != nil {
		return nil, err
	}
	if !tier.Valid() || !cycle.Valid() {
		return nil, fmt.Errorf("%w: plan %s/%s", domain.ErrInvalidInput, tier, cycle)
	}
	now := uc.now()
	sub, err := ensureSubscription(ctx, uc.subRepo, uc.applier.ledger, tc, uc.opts, now)
	if err != nil {
		return nil, err
	}
	if sub.Status == entity.StatusCancelled {
		return nil, fmt.Errorf("%w: la suscripción está cancelada, reactive primero", domain.ErrInvalidTransition)
	}

	pricing := uc.applier.ledger.Pricing()
	amount := sub.OutstandingAmount
	if !amount.IsPositive() {
		amount, err = pricing.PlanPrice(tier, cycle)
		if err != nil {
			return nil, err
		}
	}
	setupFee := decimal.Zero
	if !sub.SetupFeeCharged {
		setupFee = pricing.SetupFee(tier)
	}

	resp := &dto.PaymentSessionResponse{
		GatewayConfigured: uc.opts.GatewayConfigured,
		Amount:            amount,
		SetupFeeAmount:    setupFee,
		Currency:          uc.opts.Currency,
	}
	if !uc.opts.GatewayConfigured {
		resp.SessionToken = "manual-" + uuid.New().String()
		uc.applier.metrics.SessionCreated(false)
		return resp, nil
	}

	gs, err := uc.gateway.CreateSession(ctx, GatewaySessionRequest{
		OrderRef:    orderRef(sub, tier, cycle, amount.Add(setupFee), now),
		TenantID:    tenantID,
		Amount:      amount.Add(setupFee),
		Currency:    uc.opts.Currency,
		Description: fmt.Sprintf("Plan %s %s", tier, cycle),
		SuccessURL:  uc.opts.PublicBaseURL + ReturnSuccessPath,
		ErrorURL:    uc.opts.PublicBaseURL + ReturnErrorPath,
	})
	if err != nil {
		uc.applier.log.Error().Err(err).Str("tenant_id", tenantID).Msg("crear sesión en pasarela")
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}

	session := &entity.PaymentSession{
		Token:          gs.Token,
		TenantID:       tenantID,
		SubscriptionID: sub.ID,
		Tier:           tier,
		BillingCycle:   cycle,
		Amount:         amount,
		SetupFeeAmount: setupFee,
		Currency:       uc.opts.Currency,
		RedirectURL:    gs.RedirectURL,
		Outcome:        entity.OutcomePending,
		CreatedAt:      now,
	}
	if err := uc.sessionRepo.Create(ctx, session); err != nil {
		if !errors.Is(err, domain.ErrDuplicate) {
			return nil, fmt.Errorf("guardar sesión de pago: %w", err)
		}
		// Reintento: la pasarela devolvió la sesión que ya teníamos para esta clave.
		existing, gerr := uc.sessionRepo.GetByToken(ctx, gs.Token)
		if gerr != nil {
			return nil, fmt.Errorf("obtener sesión de pago: %w", gerr)
		}
		if existing == nil || existing.TenantID != tenantID || existing.Terminal() {
			return nil, fmt.Errorf("guardar sesión de pago: %w", domain.ErrConflict)
		}
		uc.applier.log.Info().Str("tenant_id", tenantID).Str("session_token", gs.Token).Msg("sesión de pago reutilizada")
		resp.RedirectURL = existing.RedirectURL
		resp.SessionToken = existing.Token
		return resp, nil
	}
	uc.applier.metrics.SessionCreated(true)
	uc.applier.log.Info().
		Str("tenant_id", tenantID).
		Str("session_token", gs.Token).
		Str("amount", session.Total().String()).
		Msg("sesión de pago creada")

	resp.RedirectURL = gs.RedirectURL
	resp.SessionToken = gs.Token
	return resp, nil
}

// ReconcileCallback concilia el retorno de la pasarela para token. outcome es "approved" o un
// código de motivo (declined, not_approved, verification_failed, tenant_not_found).
//
// Un token se concilia una sola vez: repetir el mismo resultado es un no-op (Replayed=true) y
// un resultado distinto devuelve ErrSessionOutcomeConflict sin aplicar nada. Todo ocurre
// bajo el bloqueo de la fila de suscripción del tenant.
func (uc *PaymentSessionUseCase) ReconcileCallback(ctx context.Context, token, outcome string) (*ReconcileResult, error) {
	if token == "" {
		return nil, domain.ErrSessionNotFound
	}
	session, err := uc.sessionRepo.GetByToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("obtener sesión: %w", err)
	}
	if session == nil {
		uc.applier.log.Warn().Str("session_token", token).Msg("retorno de pasarela con token desconocido")
		return nil, domain.ErrSessionNotFound
	}

	wantOutcome, wantReason := normalizeOutcome(outcome)
	now := uc.now()

	// Verificación servidor a servidor, antes de tomar el bloqueo.
	var verifiedLast4 string
	if wantOutcome == entity.OutcomeApproved && !session.Terminal() && !session.Stale(now, uc.opts.SessionTTL) {
		v, err := uc.verify(ctx, session)
		if err != nil {
			return nil, err
		}
		if v == nil {
			wantOutcome, wantReason = entity.OutcomeDeclined, entity.ReasonVerificationFailed
		} else {
			verifiedLast4 = v.CardLast4
		}
	}

	result := &ReconcileResult{TenantID: session.TenantID}
	expired := false
	err = uc.txRunner.RunBilling(ctx, func(
		subRepo repository.SubscriptionRepository,
		paymentRepo repository.PaymentRepository,
		sessionRepo repository.PaymentSessionRepository,
	) error {
		sub, err := subRepo.GetCurrentForUpdate(ctx, session.TenantID)
		if err != nil {
			return err
		}
		cur, err := sessionRepo.GetByToken(ctx, token)
		if err != nil {
			return err
		}
		if cur == nil {
			return domain.ErrSessionNotFound
		}

		if cur.Terminal() {
			return uc.replay(cur, outcome, wantOutcome, wantReason, result)
		}
		if cur.Stale(now, uc.opts.SessionTTL) {
			expired = true
			return uc.resolve(ctx, sessionRepo, cur, entity.OutcomeExpired, entity.ReasonTimeout, now)
		}

		if sub == nil || !uc.tenantExists(ctx, cur.TenantID) {
			wantOutcome, wantReason = entity.OutcomeDeclined, entity.ReasonTenantNotFound
			result.Outcome, result.Reason = wantOutcome, wantReason
			return uc.resolve(ctx, sessionRepo, cur, wantOutcome, wantReason, now)
		}

		var ev ledger.Event
		if wantOutcome == entity.OutcomeApproved {
			dup, err := paymentRepo.ExistsByReference(ctx, cur.Token, entity.PaymentKindSubscription)
			if err != nil {
				return err
			}
			if !dup {
				ev = ledger.PaymentSucceeded{
					Reference: cur.Token,
					Kind:      entity.PaymentKindSubscription,
					Amount:    cur.Amount,
					SetupFee:  cur.SetupFeeAmount,
					Method:    entity.PaymentMethodCard,
					CardLast4: verifiedLast4,
					Tier:      cur.Tier,
					Cycle:     cur.BillingCycle,
				}
			}
		} else {
			ev = ledger.PaymentDeclined{
				Reference: cur.Token,
				Amount:    cur.Total(),
				Reason:    wantReason,
				Record:    uc.opts.RecordFailedPayments,
			}
		}
		if ev != nil {
			if _, err := uc.applier.apply(ctx, subRepo, paymentRepo, sub, ev, now); err != nil {
				if !errors.Is(err, domain.ErrInvalidTransition) {
					return err
				}
				// La suscripción cambió (p. ej. se canceló) mientras el usuario estaba en la
				// pasarela. La sesión se cierra igual para que los retornos siguientes no queden
				// colgados.
				if wantOutcome == entity.OutcomeApproved {
					wantOutcome, wantReason = entity.OutcomeDeclined, entity.ReasonSubscriptionNotPayable
					if err := paymentRepo.Create(ctx, unappliedCharge(sub, cur, verifiedLast4, now)); err != nil {
						return fmt.Errorf("registrar cobro sin aplicar: %w", err)
					}
					uc.applier.log.Error().
						Str("tenant_id", cur.TenantID).
						Str("session_token", cur.Token).
						Str("status", string(sub.Status)).
						Str("amount", cur.Total().String()).
						Msg("cobro aprobado sobre una suscripción que ya no lo admite")
				}
			}
		}
		result.Outcome, result.Reason = wantOutcome, wantReason
		return uc.resolve(ctx, sessionRepo, cur, wantOutcome, wantReason, now)
	})
	if err != nil {
		if errors.Is(err, domain.ErrSessionOutcomeConflict) {
			uc.applier.log.Error().Err(err).
				Str("session_token", token).
				Str("outcome", outcome).
				Msg("retorno de pasarela contradice el resultado registrado")
			uc.applier.metrics.CallbackReconciled("conflict", false)
		}
		return nil, err
	}
	if expired {
		uc.applier.metrics.CallbackReconciled(string(entity.OutcomeExpired), false)
		uc.applier.log.Warn().Str("session_token", token).Msg("retorno de pasarela sobre sesión vencida")
		return nil, domain.ErrSessionExpired
	}

	uc.applier.metrics.CallbackReconciled(string(result.Outcome), result.Replayed)
	uc.applier.log.Info().
		Str("tenant_id", result.TenantID).
		Str("session_token", token).
		Str("outcome", string(result.Outcome)).
		Str("reason", result.Reason).
		Bool("replayed", result.Replayed).
		Msg("retorno de pasarela conciliado")
	return result, nil
}

// ExpireStaleSessions marca expired las sesiones pendientes más viejas que el TTL.
// La suscripción no se toca: sin retorno de la pasarela vale el estado previo.
func (uc *PaymentSessionUseCase) ExpireStaleSessions(ctx context.Context) (int, error) {
	now := uc.now()
	stale, err := uc.sessionRepo.ListStalePending(ctx, now.Add(-uc.opts.SessionTTL), staleBatch)
	if err != nil {
		return 0, fmt.Errorf("listar sesiones vencidas: %w", err)
	}
	n := 0
	for _, s := range stale {
		err := uc.resolve(ctx, uc.sessionRepo, s, entity.OutcomeExpired, entity.ReasonTimeout, now)
		if errors.Is(err, domain.ErrSessionAlreadyTerminal) {
			continue
		}
		if err != nil {
			return n, err
		}
		n++
	}
	uc.applier.metrics.SessionsExpired(n)
	if n > 0 {
		uc.applier.log.Info().Int("count", n).Msg("sesiones de pago expiradas")
	}
	return n, nil
}

// verify consulta la sesión en la pasarela. Devuelve nil si la pasarela no confirma el mismo
// cobro (estado, monto o moneda distintos).
func (uc *PaymentSessionUseCase) verify(ctx context.Context, s *entity.PaymentSession) (*GatewayVerification, error) {
	if uc.gateway == nil {
		return nil, domain.ErrGatewayUnavailable
	}
	v, err := uc.gateway.GetSession(ctx, s.Token)
	if err != nil {
		uc.applier.log.Error().Err(err).Str("session_token", s.Token).Msg("verificar sesión en pasarela")
		if errors.Is(err, domain.ErrGatewayUnavailable) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrGatewayUnavailable, err)
	}
	if v == nil || v.Status != string(entity.OutcomeApproved) || !v.Amount.Equal(s.Total()) ||
		(v.Currency != "" && v.Currency != s.Currency) {
		uc.applier.log.Warn().Str("session_token", s.Token).Msg("la pasarela no confirma el pago")
		return nil, nil
	}
	return v, nil
}

// replay decide ante una sesión ya resuelta: mismo resultado de callback → no-op, distinto → conflicto.
func (uc *PaymentSessionUseCase) replay(cur *entity.PaymentSession, raw string, want entity.SessionOutcome, reason string, result *ReconcileResult) error {
	if cur.Outcome == entity.OutcomeExpired {
		return domain.ErrSessionExpired
	}
	same := cur.Outcome == want && cur.Reason == reason
	// Un éxito que rechazamos al verificar se repite como el mismo callback de éxito.
	if !same && raw == string(entity.OutcomeApproved) &&
		(cur.Reason == entity.ReasonVerificationFailed || cur.Reason == entity.ReasonSubscriptionNotPayable) {
		same = true
	}
	if !same {
		return fmt.Errorf("%w: registrado %s/%s, recibido %s", domain.ErrSessionOutcomeConflict, cur.Outcome, cur.Reason, raw)
	}
	result.Outcome, result.Reason, result.Replayed = cur.Outcome, cur.Reason, true
	return nil
}

func (uc *PaymentSessionUseCase) resolve(ctx context.Context, repo repository.PaymentSessionRepository, s *entity.PaymentSession, outcome entity.SessionOutcome, reason string, now time.Time) error {
	s.Outcome = outcome
	s.Reason = reason
	t := now
	s.ResolvedAt = &t
	return repo.Resolve(ctx, s)
}

// orderRef clave de idempotencia del cobro: la misma suscripción (misma versión), plan y monto
// dentro de idempotencyWindow dan la misma clave, así un POST repetido no abre dos cobros.
func orderRef(sub *entity.Subscription, tier entity.Tier, cycle entity.BillingCycle, total decimal.Decimal, now time.Time) string {
	intent := fmt.Sprintf("%s|%s|%d|%s|%s|%s|%d",
		sub.TenantID, sub.ID, sub.Version, tier, cycle, total.StringFixed(2), now.Truncate(idempotencyWindow).Unix())
	return uuid.NewSHA1(uuid.NameSpaceURL, []byte(intent)).String()
}

// unappliedCharge registra lo que la pasarela cobró sin que la suscripción lo acepte.
// Queda en pending hasta que soporte lo reembolse o lo aplique a mano.
func unappliedCharge(sub *entity.Subscription, s *entity.PaymentSession, last4 string, now time.Time) *entity.Payment {
	return &entity.Payment{
		TenantID:       s.TenantID,
		SubscriptionID: sub.ID,
		Kind:           entity.PaymentKindSubscription,
		Amount:         s.Total(),
		Currency:       s.Currency,
		Method:         entity.PaymentMethodCard,
		Status:         entity.PaymentStatusPending,
		Reference:      s.Token,
		CardLast4:      last4,
		CreatedAt:      now,
	}
}

func (uc *PaymentSessionUseCase) tenantExists(ctx context.Context, tenantID string) bool {
	if uc.tenantRepo == nil {
		return true
	}
	t, err := uc.tenantRepo.GetByID(ctx, tenantID)
	return err == nil && t != nil
}

// normalizeOutcome traduce el código de la pasarela. Códigos desconocidos cuentan como declined.
func normalizeOutcome(raw string) (entity.SessionOutcome, string) {
	switch raw {
	case string(entity.OutcomeApproved):
		return entity.OutcomeApproved, ""
	case entity.ReasonNotApproved, entity.ReasonVerificationFailed, entity.ReasonTenantNotFound:
		return entity.OutcomeDeclined, raw
	default:
		return entity.OutcomeDeclined, entity.ReasonDeclined
	}
}
