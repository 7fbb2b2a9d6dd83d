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

var (
	_ repository.PaymentRepository        = (*PaymentRepo)(nil)
	_ repository.PaymentSessionRepository = (*PaymentSessionRepo)(nil)
)

const paymentColumns = `id, tenant_id, subscription_id, kind, amount, currency, method, status, reference, card_last4, created_at`

// PaymentRepo historial de pagos, solo inserción.
type PaymentRepo struct {
	q Querier
}

// NewPaymentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

// Create agrega un pago. (reference, kind) es la clave de idempotencia.
func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	query := `
		INSERT INTO payments (` + paymentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		p.ID, p.TenantID, p.SubscriptionID, p.Kind, p.Amount, p.Currency, p.Method, p.Status,
		nullIfEmpty(p.Reference), p.CardLast4, p.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ExistsByReference informa si ya se registró un pago con esa referencia y tipo.
func (r *PaymentRepo) ExistsByReference(ctx context.Context, reference, kind string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM payments WHERE reference = $1 AND kind = $2)`, reference, kind,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists payment: %w", err)
	}
	return exists, nil
}

// ListRecent pagos del tenant, el más reciente primero.
func (r *PaymentRepo) ListRecent(ctx context.Context, tenantID string, limit int) ([]*entity.Payment, error) {
	query := `SELECT ` + paymentColumns + ` FROM payments
		WHERE tenant_id = $1 ORDER BY created_at DESC, id LIMIT $2`
	rows, err := r.q.Query(ctx, query, tenantID, limit)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		p, err := scanPayment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

// GetByID obtiene un pago del tenant, o (nil, nil).
func (r *PaymentRepo) GetByID(ctx context.Context, tenantID, id string) (*entity.Payment, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	p, err := scanPayment(r.q.QueryRow(ctx,
		`SELECT `+paymentColumns+` FROM payments WHERE id = $1 AND tenant_id = $2`, id, tenantID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment: %w", err)
	}
	return p, nil
}

func scanPayment(row pgx.Row) (*entity.Payment, error) {
	var p entity.Payment
	var ref *string
	if err := row.Scan(&p.ID, &p.TenantID, &p.SubscriptionID, &p.Kind, &p.Amount, &p.Currency,
		&p.Method, &p.Status, &ref, &p.CardLast4, &p.CreatedAt); err != nil {
		return nil, err
	}
	p.Reference = derefString(ref)
	return &p, nil
}

// ────────────────────────────────────────────────────────────────

const sessionColumns = `token, tenant_id, subscription_id, tier, billing_cycle, amount, setup_fee_amount,
	currency, redirect_url, outcome, reason, created_at, resolved_at`

// PaymentSessionRepo sesiones de pasarela indexadas por token.
type PaymentSessionRepo struct {
	q Querier
}

// NewPaymentSessionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPaymentSessionRepository(q Querier) *PaymentSessionRepo {
	return &PaymentSessionRepo{q: q}
}

// Create persiste una sesión pendiente.
func (r *PaymentSessionRepo) Create(ctx context.Context, s *entity.PaymentSession) error {
	query := `
		INSERT INTO payment_sessions (` + sessionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`
	_, err := r.q.Exec(ctx, query,
		s.Token, s.TenantID, s.SubscriptionID, string(s.Tier), string(s.BillingCycle), s.Amount, s.SetupFeeAmount,
		s.Currency, s.RedirectURL, string(s.Outcome), s.Reason, s.CreatedAt, s.ResolvedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert payment session: %w", err)
	}
	return nil
}

// GetByToken obtiene la sesión, o (nil, nil).
func (r *PaymentSessionRepo) GetByToken(ctx context.Context, token string) (*entity.PaymentSession, error) {
	s, err := scanSession(r.q.QueryRow(ctx, `SELECT `+sessionColumns+` FROM payment_sessions WHERE token = $1`, token))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get payment session: %w", err)
	}
	return s, nil
}

// Resolve cierra la sesión solo si sigue pendiente.
func (r *PaymentSessionRepo) Resolve(ctx context.Context, s *entity.PaymentSession) error {
	tag, err := r.q.Exec(ctx, `
		UPDATE payment_sessions SET outcome = $2, reason = $3, resolved_at = $4
		WHERE token = $1 AND outcome = 'pending'`,
		s.Token, string(s.Outcome), s.Reason, s.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("resolve payment session: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionAlreadyTerminal
	}
	return nil
}

// ListStalePending sesiones pendientes creadas antes de before.
func (r *PaymentSessionRepo) ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.PaymentSession, error) {
	rows, err := r.q.Query(ctx, `SELECT `+sessionColumns+` FROM payment_sessions
		WHERE outcome = 'pending' AND created_at < $1 ORDER BY created_at LIMIT $2`, before, limit)
	if err != nil {
		return nil, fmt.Errorf("list stale sessions: %w", err)
	}
	defer rows.Close()
	var list []*entity.PaymentSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("scan payment session: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSession(row pgx.Row) (*entity.PaymentSession, error) {
	var s entity.PaymentSession
	var tier, cycle, outcome string
	if err := row.Scan(&s.Token, &s.TenantID, &s.SubscriptionID, &tier, &cycle, &s.Amount, &s.SetupFeeAmount,
		&s.Currency, &s.RedirectURL, &outcome, &s.Reason, &s.CreatedAt, &s.ResolvedAt); err != nil {
		return nil, err
	}
	s.Tier = entity.Tier(tier)
	s.BillingCycle = entity.BillingCycle(cycle)
	s.Outcome = entity.SessionOutcome(outcome)
	return &s, nil
}
