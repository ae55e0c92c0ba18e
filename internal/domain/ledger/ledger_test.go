package ledger

import (
	"testing"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func day(n int) time.Time { return time.Date(2024, 1, n, 10, 0, 0, 0, time.UTC) }

func TestStatusFor(t *testing.T) {
	assert.Equal(t, entity.PaymentStatusUnpaid, StatusFor(d("100"), d("0")))
	assert.Equal(t, entity.PaymentStatusPartial, StatusFor(d("100"), d("30")))
	assert.Equal(t, entity.PaymentStatusPaid, StatusFor(d("100"), d("100")))
	assert.Equal(t, entity.PaymentStatusPaid, StatusFor(d("100"), d("120")))
}

func TestRemaining_NeverNegative(t *testing.T) {
	assert.True(t, Remaining(d("50"), d("70")).IsZero())
	assert.True(t, d("20").Equal(Remaining(d("50"), d("30"))))
	assert.True(t, CustomerDebt(d("10"), d("15")).IsZero())
}

func TestAllocate_OldestFirst(t *testing.T) {
	// Entregadas fuera de orden a propósito.
	sales := []OpenSale{
		{SaleID: "s3", SaleDate: day(3), Total: d("20")},
		{SaleID: "s1", SaleDate: day(1), Total: d("50")},
		{SaleID: "s2", SaleDate: day(2), Total: d("30")},
	}

	allocs, rest := Allocate(sales, d("70"))

	require.Len(t, allocs, 2)
	assert.Equal(t, "s1", allocs[0].SaleID)
	assert.True(t, d("50").Equal(allocs[0].AmountApplied))
	assert.Equal(t, entity.PaymentStatusPaid, allocs[0].NewStatus)
	assert.Equal(t, "s2", allocs[1].SaleID)
	assert.True(t, d("20").Equal(allocs[1].AmountApplied))
	assert.Equal(t, entity.PaymentStatusPartial, allocs[1].NewStatus)
	assert.True(t, rest.IsZero())

	// El input no se reordena.
	assert.Equal(t, "s3", sales[0].SaleID)
}

func TestAllocate_ReturnsRemainder(t *testing.T) {
	sales := []OpenSale{
		{SaleID: "a", SaleDate: day(1), Total: d("40"), Paid: d("10")},
	}
	allocs, rest := Allocate(sales, d("50"))

	require.Len(t, allocs, 1)
	assert.True(t, d("30").Equal(allocs[0].AmountApplied))
	assert.Equal(t, entity.PaymentStatusPaid, allocs[0].NewStatus)
	assert.True(t, d("20").Equal(rest))
}

func TestAllocate_SkipsSettledAndTiesById(t *testing.T) {
	sales := []OpenSale{
		{SaleID: "b", SaleDate: day(1), Total: d("10")},
		{SaleID: "a", SaleDate: day(1), Total: d("10"), Paid: d("10")},
		{SaleID: "c", SaleDate: day(1), Total: d("10")},
	}
	allocs, rest := Allocate(sales, d("15"))

	require.Len(t, allocs, 2)
	assert.Equal(t, "b", allocs[0].SaleID)
	assert.Equal(t, "c", allocs[1].SaleID)
	assert.True(t, d("5").Equal(allocs[1].AmountApplied))
	assert.True(t, rest.IsZero())
}

func TestAllocate_SumNeverExceedsInput(t *testing.T) {
	sales := []OpenSale{
		{SaleID: "x", SaleDate: day(1), Total: d("33.33")},
		{SaleID: "y", SaleDate: day(2), Total: d("12.5"), Paid: d("2.5")},
	}
	allocs, rest := Allocate(sales, d("40"))

	sum := decimal.Zero
	for _, a := range allocs {
		sum = sum.Add(a.AmountApplied)
	}
	assert.True(t, d("40").Equal(sum.Add(rest)))
	assert.True(t, d("6.67").Equal(allocs[1].AmountApplied))
}

func TestFromSale_CashIsFullyPaid(t *testing.T) {
	s := &entity.Sale{ID: "c1", TotalAmount: d("25"), PaymentType: entity.PaymentTypeCash}
	assert.True(t, FromSale(s).Due().IsZero())
}
