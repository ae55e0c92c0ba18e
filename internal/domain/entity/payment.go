package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Métodos de pago habituales (texto libre en BD).
const (
	PaymentMethodCash     = "cash"
	PaymentMethodTransfer = "transfer"
)

// Payment abono contra una venta. Solo se inserta; nunca se modifica ni se borra.
type Payment struct {
	ID          string
	SaleID      string
	Amount      decimal.Decimal
	PaymentDate time.Time
	Method      string
	Notes       string
	UserID      string // quien registró el abono
}
