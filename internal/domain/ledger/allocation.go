package ledger

import (
	"sort"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// OpenSale venta con saldo candidata a recibir parte de un pago rápido.
type OpenSale struct {
	SaleID   string
	SaleDate time.Time
	Total    decimal.Decimal
	Paid     decimal.Decimal
}

// Due saldo pendiente de la venta.
func (s OpenSale) Due() decimal.Decimal {
	return Remaining(s.Total, s.Paid)
}

// Allocation monto aplicado a una venta y su estado resultante.
type Allocation struct {
	SaleID        string
	AmountApplied decimal.Decimal
	NewStatus     string
}

// SortOldestFirst ordena por fecha de venta ascendente; empate por id.
func SortOldestFirst(sales []OpenSale) {
	sort.SliceStable(sales, func(i, j int) bool {
		if sales[i].SaleDate.Equal(sales[j].SaleDate) {
			return sales[i].SaleID < sales[j].SaleID
		}
		return sales[i].SaleDate.Before(sales[j].SaleDate)
	})
}

// Allocate reparte amount sobre las ventas abiertas, la más antigua primero.
// Ventas sin saldo se saltan. Devuelve las asignaciones y el sobrante sin aplicar.
// No modifica el slice recibido.
func Allocate(sales []OpenSale, amount decimal.Decimal) ([]Allocation, decimal.Decimal) {
	ordered := make([]OpenSale, len(sales))
	copy(ordered, sales)
	SortOldestFirst(ordered)

	remaining := amount
	var out []Allocation
	for _, s := range ordered {
		if !remaining.IsPositive() {
			break
		}
		due := s.Due()
		if !due.IsPositive() {
			continue
		}
		apply := decimal.Min(remaining, due)
		out = append(out, Allocation{
			SaleID:        s.SaleID,
			AmountApplied: apply,
			NewStatus:     StatusFor(s.Total, s.Paid.Add(apply)),
		})
		remaining = remaining.Sub(apply)
	}
	return out, remaining
}

// FromSale adapta una venta leída del repositorio.
func FromSale(s *entity.Sale) OpenSale {
	return OpenSale{SaleID: s.ID, SaleDate: s.SaleDate, Total: s.TotalAmount, Paid: s.PaidAmount()}
}
