package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de pago de una venta.
const (
	PaymentTypeCash   = "cash"
	PaymentTypeCredit = "credit"
)

// Estados de pago de una venta (derivado pero persistido; se recalcula en cada abono).
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPartial = "partial"
	PaymentStatusUnpaid  = "unpaid"
)

// Sale cabecera de una venta. TotalAmount queda fijo al crearla (Σ líneas).
//
// PaymentsTotal no es una columna: lo calcula el repositorio en cada lectura
// (SUM de payments) para que PaidAmount/RemainingAmount nunca queden obsoletos.
type Sale struct {
	ID            string
	TotalAmount   decimal.Decimal
	SaleDate      time.Time
	UserID        string // vendedor
	CustomerID    string // vacío en ventas de contado
	PaymentType   string // cash, credit
	PaymentStatus string // paid, partial, unpaid
	Notes         string
	PaymentsTotal decimal.Decimal

	// Solo lectura (JOIN).
	CustomerName string
	SellerName   string
}

// IsCash indica si la venta es de contado.
func (s *Sale) IsCash() bool { return s.PaymentType == PaymentTypeCash }

// IsOpen indica si la venta sigue con saldo (unpaid o partial).
func (s *Sale) IsOpen() bool {
	return s.PaymentStatus == PaymentStatusUnpaid || s.PaymentStatus == PaymentStatusPartial
}

// PaidAmount: contado = total (pagada por definición, sin filas de pago); crédito = Σ abonos.
func (s *Sale) PaidAmount() decimal.Decimal {
	if s.IsCash() {
		return s.TotalAmount
	}
	return s.PaymentsTotal
}

// RemainingAmount saldo pendiente, nunca negativo.
func (s *Sale) RemainingAmount() decimal.Decimal {
	return decimal.Max(decimal.Zero, s.TotalAmount.Sub(s.PaidAmount()))
}

func (s *Sale) IsFullyPaid() bool {
	return s.RemainingAmount().IsZero()
}
