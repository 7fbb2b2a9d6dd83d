package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/restaurant-admin-api/internal/application/billing"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

var _ billing.BillingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunBilling inicia una transacción, ejecuta fn con los repos de facturación atados a la tx y hace
// Commit o Rollback. Los bloqueos FOR UPDATE tomados dentro de fn duran hasta el Commit.
func (r *TxRunner) RunBilling(ctx context.Context, fn func(
	subRepo repository.SubscriptionRepository,
	paymentRepo repository.PaymentRepository,
	sessionRepo repository.PaymentSessionRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	subRepo := NewSubscriptionRepository(tx)
	paymentRepo := NewPaymentRepository(tx)
	sessionRepo := NewPaymentSessionRepository(tx)

	if err := fn(subRepo, paymentRepo, sessionRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
