package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/restaurant-admin-api/internal/domain"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/entity"
	"github.com/jhoicas/restaurant-admin-api/internal/domain/repository"
)

var (
	_ repository.UserRepository   = (*UserRepo)(nil)
	_ repository.TenantRepository = (*TenantRepo)(nil)
)

const userColumns = `id, tenant_id, email, password_hash, name, role, is_super_admin, status, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL (tabla admin_users).
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para administradores.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo administrador.
func (r *UserRepo) Create(ctx context.Context, user *entity.User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	query := `
		INSERT INTO admin_users (` + userColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		user.ID, nullIfEmpty(user.TenantID), user.Email, user.PasswordHash, user.Name, user.Role,
		user.IsSuperAdmin, user.Status, user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert admin user: %w", err)
	}
	return nil
}

// GetByID obtiene un administrador por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM admin_users WHERE id = $1`, id)
}

// GetByEmail obtiene un administrador por email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*entity.User, error) {
	return r.scanOne(ctx, `SELECT `+userColumns+` FROM admin_users WHERE lower(email) = lower($1) LIMIT 1`, email)
}

func (r *UserRepo) scanOne(ctx context.Context, query string, arg string) (*entity.User, error) {
	var u entity.User
	var tenantID *string
	err := r.q.QueryRow(ctx, query, arg).Scan(
		&u.ID, &tenantID, &u.Email, &u.PasswordHash, &u.Name, &u.Role, &u.IsSuperAdmin, &u.Status,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get admin user: %w", err)
	}
	u.TenantID = derefString(tenantID)
	return &u, nil
}

// TenantRepo lectura de restaurantes.
type TenantRepo struct {
	q Querier
}

// NewTenantRepository construye el adaptador.
func NewTenantRepository(q Querier) *TenantRepo {
	return &TenantRepo{q: q}
}

// GetByID obtiene un restaurante por ID, o (nil, nil).
func (r *TenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, nil
	}
	var t entity.Tenant
	err := r.q.QueryRow(ctx, `SELECT id, name, status, created_at, updated_at FROM tenants WHERE id = $1`, id).
		Scan(&t.ID, &t.Name, &t.Status, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get tenant: %w", err)
	}
	return &t, nil
}
