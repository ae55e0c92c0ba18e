package ledger

import (
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// StatusFor calcula el estado de pago de una venta a crédito a partir de lo abonado.
func StatusFor(total, paid decimal.Decimal) string {
	switch {
	case paid.GreaterThanOrEqual(total):
		return entity.PaymentStatusPaid
	case paid.IsPositive():
		return entity.PaymentStatusPartial
	default:
		return entity.PaymentStatusUnpaid
	}
}

// Remaining saldo de una venta, nunca negativo.
func Remaining(total, paid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, total.Sub(paid))
}

// CustomerDebt deuda total: Σ total de ventas abiertas - Σ abonos sobre esas ventas, acotada a 0.
func CustomerDebt(openTotal, openPaid decimal.Decimal) decimal.Decimal {
	return decimal.Max(decimal.Zero, openTotal.Sub(openPaid))
}
