package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner   = "owner"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// ValidRole verifica que el rol pertenezca al conjunto cerrado.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleManager, RoleCashier:
		return true
	}
	return false
}

// User representa un usuario del sistema.
type User struct {
	ID           int64
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string // owner, manager, cashier
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
