package entity

import "time"

// Roles conocidos de AdminUser. Cualquier otro valor se trata como rol sin permisos.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
)

// User representa un administrador del panel (pertenece a un Tenant).
type User struct {
	ID           string
	TenantID     string // vacío si la cuenta aún no tiene restaurante asociado
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, manager, ...
	IsSuperAdmin bool
	Status       string // active, inactive, suspended
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si la cuenta puede operar.
func (u *User) IsActive() bool {
	return u.Status == "" || u.Status == "active"
}
