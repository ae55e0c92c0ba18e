package entity

import "time"

// Customer representa un cliente. Solo las ventas a crédito exigen cliente.
type Customer struct {
	ID        string
	Name      string
	Phone     string
	Address   string
	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
