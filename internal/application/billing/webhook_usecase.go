package billing

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/restaurant-admin-api/internal/application/dto"
	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/ledger"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

// Tipos de evento de renovación enviados por la pasarela.
const (
	WebhookRenewalSucceeded = "renewal.succeeded"
	WebhookRenewalFailed    = "renewal.failed"
)

// WebhookUseCase procesa los cobros de renovación que la pasarela notifica servidor a servidor.
type WebhookUseCase struct {
	txRunner BillingTxRunner
	secret   []byte
	applier  applier
	now      func() time.Time
}

// NewWebhookUseCase construye el caso de uso. secret es GATEWAY_WEBHOOK_SECRET.
func NewWebhookUseCase(txRunner BillingTxRunner, secret string, l *ledger.Ledger, metrics Metrics, log zerolog.Logger) *WebhookUseCase {
	if metrics == nil {
		metrics = NopMetrics{}
	}
	return &WebhookUseCase{
		txRunner: txRunner,
		secret:   []byte(secret),
		applier:  applier{ledger: l, metrics: metrics, log: log},
		now:      time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (uc *WebhookUseCase) SetClock(now func() time.Time) { uc.now = now }

// Sign firma payload como lo hace la pasarela (hex HMAC-SHA256).
func Sign(secret, payload []byte) string {
	mac := hmac.New(sha256.New, secret)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}

// HandleRenewal verifica la firma y aplica el evento. event_id es la clave de deduplicación:
// un evento repetido responde Duplicate=true sin tocar el saldo.
func (uc *WebhookUseCase) HandleRenewal(ctx context.Context, payload []byte, signature string) (*dto.WebhookResponse, error) {
	if len(uc.secret) == 0 || !hmac.Equal([]byte(Sign(uc.secret, payload)), []byte(strings.ToLower(strings.TrimSpace(signature)))) {
		uc.applier.log.Warn().Msg("webhook con firma inválida")
		return nil, domain.ErrInvalidSignature
	}
	var in dto.GatewayWebhookRequest
	if err := json.Unmarshal(payload, &in); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidInput, err)
	}
	if in.EventID == "" || in.TenantID == "" || in.Amount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	var ev ledger.Event
	switch in.Type {
	case WebhookRenewalSucceeded:
		ev = ledger.PaymentSucceeded{
			Reference: in.EventID,
			Kind:      entity.PaymentKindRenewal,
			Amount:    in.Amount,
			Method:    entity.PaymentMethodCard,
			CardLast4: in.CardLast4,
		}
	case WebhookRenewalFailed:
		ev = ledger.RenewalFailed{Reference: in.EventID, Amount: in.Amount}
	default:
		return nil, fmt.Errorf("%w: tipo de evento %q", domain.ErrInvalidInput, in.Type)
	}

	resp := &dto.WebhookResponse{Received: true}
	err := uc.txRunner.RunBilling(ctx, func(
		subRepo repository.SubscriptionRepository,
		paymentRepo repository.PaymentRepository,
		_ repository.PaymentSessionRepository,
	) error {
		sub, err := subRepo.GetCurrentForUpdate(ctx, in.TenantID)
		if err != nil {
			return err
		}
		if sub == nil {
			return domain.ErrNotFound
		}
		dup, err := paymentRepo.ExistsByReference(ctx, in.EventID, entity.PaymentKindRenewal)
		if err != nil {
			return err
		}
		if dup {
			resp.Duplicate = true
			return nil
		}
		_, err = uc.applier.apply(ctx, subRepo, paymentRepo, sub, ev, uc.now())
		return err
	})
	if err != nil {
		return nil, err
	}
	uc.applier.log.Info().
		Str("tenant_id", in.TenantID).
		Str("event_id", in.EventID).
		Str("type", in.Type).
		Bool("duplicate", resp.Duplicate).
		Msg("webhook de renovación procesado")
	return resp, nil
}
