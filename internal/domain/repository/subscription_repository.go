package repository

import (
	"context"
	"time"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// SubscriptionRepository persistencia de la suscripción vigente de cada tenant.
type SubscriptionRepository interface {
	// GetCurrent devuelve el ciclo de vida más reciente del tenant, o (nil, nil).
	GetCurrent(ctx context.Context, tenantID string) (*entity.Subscription, error)
	// GetCurrentForUpdate igual que GetCurrent pero bloquea la fila hasta el fin de la transacción.
	// La fila de suscripción es la unidad de exclusión mutua del tenant.
	GetCurrentForUpdate(ctx context.Context, tenantID string) (*entity.Subscription, error)
	// Create inserta una suscripción (primer ciclo o ciclo nuevo). Asigna ID si viene vacío.
	Create(ctx context.Context, sub *entity.Subscription) error
	// Update guarda sub si la versión persistida coincide con sub.Version y la incrementa.
	// Devuelve domain.ErrConflict si otra escritura ganó la carrera.
	Update(ctx context.Context, sub *entity.Subscription) error
	// ListTrialsEndingBefore suscripciones en prueba cuya ventana termina antes de t.
	ListTrialsEndingBefore(ctx context.Context, t time.Time, limit int) ([]*entity.Subscription, error)
}

// PaymentRepository historial de pagos, solo inserción.
type PaymentRepository interface {
	// Create agrega un pago. Devuelve domain.ErrDuplicate si (reference, kind) ya existe.
	Create(ctx context.Context, p *entity.Payment) error
	ExistsByReference(ctx context.Context, reference, kind string) (bool, error)
	// ListRecent pagos del tenant, el más reciente primero.
	ListRecent(ctx context.Context, tenantID string, limit int) ([]*entity.Payment, error)
	// GetByID devuelve el pago solo si pertenece a tenantID.
	GetByID(ctx context.Context, tenantID, id string) (*entity.Payment, error)
}

// PaymentSessionRepository sesiones de pasarela, indexadas por token.
type PaymentSessionRepository interface {
	Create(ctx context.Context, s *entity.PaymentSession) error
	GetByToken(ctx context.Context, token string) (*entity.PaymentSession, error)
	// Resolve cierra una sesión pendiente. Devuelve domain.ErrSessionAlreadyTerminal si ya no lo estaba.
	Resolve(ctx context.Context, s *entity.PaymentSession) error
	// ListStalePending sesiones pendientes creadas antes de before.
	ListStalePending(ctx context.Context, before time.Time, limit int) ([]*entity.PaymentSession, error)
}
