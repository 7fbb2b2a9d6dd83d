package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

var _ repository.SubscriptionRepository = (*SubscriptionRepo)(nil)

const subscriptionColumns = `id, tenant_id, lifecycle, tier, billing_cycle, status,
	trial_ends_at, next_payment_at, subscription_ends_at,
	setup_fee_charged, pending_setup_fee_amount, outstanding_amount, failed_payment_attempts,
	has_card_on_file, card_last4, last_payment_ref, cancelled_at, version, created_at, updated_at`

// SubscriptionRepo implementación de SubscriptionRepository (usable con pool o tx).
type SubscriptionRepo struct {
	q Querier
}

// NewSubscriptionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSubscriptionRepository(q Querier) *SubscriptionRepo {
	return &SubscriptionRepo{q: q}
}

// GetCurrent devuelve el ciclo de vida más reciente del tenant.
func (r *SubscriptionRepo) GetCurrent(ctx context.Context, tenantID string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE tenant_id = $1 ORDER BY lifecycle DESC LIMIT 1`
	return r.scanOne(ctx, query, tenantID)
}

// GetCurrentForUpdate igual que GetCurrent con bloqueo de fila. Solo tiene efecto dentro de una tx.
func (r *SubscriptionRepo) GetCurrentForUpdate(ctx context.Context, tenantID string) (*entity.Subscription, error) {
	query := `SELECT ` + subscriptionColumns + ` FROM subscriptions
		WHERE tenant_id = $1 ORDER BY lifecycle DESC LIMIT 1 FOR UPDATE`
	return r.scanOne(ctx, query, tenantID)
}

// Create inserta un ciclo de vida. (tenant_id, lifecycle) es único.
func (r *SubscriptionRepo) Create(ctx context.Context, s *entity.Subscription) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if s.Version == 0 {
		s.Version = 1
	}
	query := `
		INSERT INTO subscriptions (` + subscriptionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.Lifecycle, string(s.Tier), string(s.BillingCycle), string(s.Status),
		s.TrialEndsAt, s.NextPaymentAt, s.SubscriptionEndsAt,
		s.SetupFeeCharged, s.PendingSetupFeeAmount, s.OutstandingAmount, s.FailedPaymentAttempts,
		s.HasCardOnFile, s.CardLast4, s.LastPaymentRef, s.CancelledAt, s.Version, s.CreatedAt, s.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert subscription: %w", err)
	}
	return nil
}

// Update guarda la suscripción con control optimista de versión.
func (r *SubscriptionRepo) Update(ctx context.Context, s *entity.Subscription) error {
	query := `
		UPDATE subscriptions
		SET tier                     = $3,
		    billing_cycle            = $4,
		    status                   = $5,
		    trial_ends_at            = $6,
		    next_payment_at          = $7,
		    subscription_ends_at     = $8,
		    setup_fee_charged        = $9,
		    pending_setup_fee_amount = $10,
		    outstanding_amount       = $11,
		    failed_payment_attempts  = $12,
		    has_card_on_file         = $13,
		    card_last4               = $14,
		    last_payment_ref         = $15,
		    cancelled_at             = $16,
		    updated_at               = $17,
		    version                  = version + 1
		WHERE id = $1 AND version = $2`
	tag, err := r.q.Exec(ctx, query,
		s.ID, s.Version, string(s.Tier), string(s.BillingCycle), string(s.Status),
		s.TrialEndsAt, s.NextPaymentAt, s.SubscriptionEndsAt,
		s.SetupFeeCharged, s.PendingSetupFeeAmount, s.OutstandingAmount, s.FailedPaymentAttempts,
		s.HasCardOnFile, s.CardLast4, s.LastPaymentRef, s.CancelledAt, s.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update subscription: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: suscripción %s versión %d", domain.ErrConflict, s.ID, s.Version)
	}
	s.Version++
	return nil
}

// ListTrialsEndingBefore pruebas vencidas del ciclo de vida vigente de cada tenant.
func (r *SubscriptionRepo) ListTrialsEndingBefore(ctx context.Context, t time.Time, limit int) ([]*entity.Subscription, error) {
	query := `
		SELECT ` + subscriptionColumns + ` FROM subscriptions s
		WHERE s.status = 'trial' AND s.trial_ends_at < $1
		  AND s.lifecycle = (SELECT MAX(lifecycle) FROM subscriptions WHERE tenant_id = s.tenant_id)
		ORDER BY s.trial_ends_at
		LIMIT $2`
	rows, err := r.q.Query(ctx, query, t, limit)
	if err != nil {
		return nil, fmt.Errorf("list trials: %w", err)
	}
	defer rows.Close()
	var list []*entity.Subscription
	for rows.Next() {
		s, err := scanSubscription(rows)
		if err != nil {
			return nil, fmt.Errorf("scan subscription: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func (r *SubscriptionRepo) scanOne(ctx context.Context, query, tenantID string) (*entity.Subscription, error) {
	s, err := scanSubscription(r.q.QueryRow(ctx, query, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get subscription: %w", err)
	}
	return s, nil
}

func scanSubscription(row pgx.Row) (*entity.Subscription, error) {
	var s entity.Subscription
	var tier, cycle, status string
	err := row.Scan(
		&s.ID, &s.TenantID, &s.Lifecycle, &tier, &cycle, &status,
		&s.TrialEndsAt, &s.NextPaymentAt, &s.SubscriptionEndsAt,
		&s.SetupFeeCharged, &s.PendingSetupFeeAmount, &s.OutstandingAmount, &s.FailedPaymentAttempts,
		&s.HasCardOnFile, &s.CardLast4, &s.LastPaymentRef, &s.CancelledAt, &s.Version, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	s.Tier = entity.Tier(tier)
	s.BillingCycle = entity.BillingCycle(cycle)
	s.Status = entity.SubscriptionStatus(status)
	return &s, nil
}
