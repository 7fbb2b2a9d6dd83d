package repository

import (
	"context"

	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para administradores (DIP).
// Los métodos Get devuelven (nil, nil) cuando el registro no existe.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
}

// TenantRepository lectura de restaurantes; el alta la hace un colaborador externo.
type TenantRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Tenant, error)
}
