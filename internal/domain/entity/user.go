package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin  = "admin"
	RoleSeller = "seller"
)

// User usuario del sistema. IsSystem marca la cuenta interna oculta en listados.
type User struct {
	ID           string
	Username     string
	PasswordHash string // bcrypt
	Role         string // admin, seller
	IsSystem     bool
	CreatedAt    time.Time
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }
