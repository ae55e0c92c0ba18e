package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// RecordPaymentRequest body de POST /api/sales/:id/payments.
// CustomerID opcional: si viene, la venta debe pertenecer a ese cliente.
type RecordPaymentRequest struct {
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"omitempty,max=50"`
	Notes      string          `json:"notes"`
	CustomerID string          `json:"customer_id" validate:"omitempty,uuid"`
}

// QuickPaymentRequest body de POST /api/payments/quick.
type QuickPaymentRequest struct {
	CustomerID string          `json:"customer_id" validate:"required,uuid"`
	Amount     decimal.Decimal `json:"amount"`
	Method     string          `json:"method" validate:"omitempty,max=50"`
	Notes      string          `json:"notes"`
}

// PaymentResponse abono en respuestas.
type PaymentResponse struct {
	ID          string          `json:"id"`
	SaleID      string          `json:"sale_id"`
	Amount      decimal.Decimal `json:"amount"`
	PaymentDate time.Time       `json:"payment_date"`
	Method      string          `json:"method"`
	Notes       string          `json:"notes,omitempty"`
	UserID      string          `json:"user_id"`
}

// RecordPaymentResponse resultado de un abono: el pago y el nuevo estado de la venta.
type RecordPaymentResponse struct {
	Payment         PaymentResponse `json:"payment"`
	PaymentStatus   string          `json:"payment_status"`
	RemainingAmount decimal.Decimal `json:"remaining_amount"`
}

// AllocationResponse parte de un pago rápido aplicada a una venta.
type AllocationResponse struct {
	SaleID        string          `json:"sale_id"`
	AmountApplied decimal.Decimal `json:"amount_applied"`
	NewStatus     string          `json:"new_status"`
}

// QuickPaymentResponse resultado del pago rápido. El sobrante no se guarda.
type QuickPaymentResponse struct {
	CustomerID           string               `json:"customer_id"`
	Allocations          []AllocationResponse `json:"allocations"`
	UnallocatedRemainder decimal.Decimal      `json:"unallocated_remainder"`
}
