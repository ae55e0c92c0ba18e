package ledger

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	productID  = "00000000-0000-0000-0000-0000000000p1"
	product2ID = "00000000-0000-0000-0000-0000000000p2"
	customerID = "00000000-0000-0000-0000-0000000000c1"
)

var (
	seller = Actor{UserID: "u-seller", Role: entity.RoleSeller}
	admin  = Actor{UserID: "u-admin", Role: entity.RoleAdmin}
)

func d(v string) decimal.Decimal { return decimal.RequireFromString(v) }

func ptr(v decimal.Decimal) *decimal.Decimal { return &v }

type countingInvalidator struct {
	mu sync.Mutex
	n  int
}

func (c *countingInvalidator) Invalidate(context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.n++
	return nil
}

type fixture struct {
	store *memStore
	uc    *UseCase
	inv   *countingInvalidator
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := newMemStore()
	st.products[productID] = entity.Product{
		ID: productID, Name: "Cuaderno", WholesalePrice: d("6"), RetailPrice: d("10"), StockQuantity: d("5"),
	}
	st.products[product2ID] = entity.Product{
		ID: product2ID, Name: "Lápiz", WholesalePrice: d("1"), RetailPrice: d("2.5"), StockQuantity: d("100"),
	}
	st.customers[customerID] = entity.Customer{ID: customerID, Name: "Ana"}

	f := &fixture{store: st, inv: &countingInvalidator{}, clock: time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)}
	r := st.readRepos()
	var clockMu sync.Mutex
	f.uc = NewUseCase(st, r.sales(), r.payments(), r.customers(), f.inv, logger.Nop()).
		WithClock(func() time.Time {
			clockMu.Lock()
			defer clockMu.Unlock()
			f.clock = f.clock.Add(time.Minute)
			return f.clock
		})
	return f
}

func (f *fixture) stock(id string) decimal.Decimal {
	return f.store.products[id].StockQuantity
}

func (f *fixture) creditSale(t *testing.T, total string, paid string) string {
	t.Helper()
	resp, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:             []dto.SaleItemRequest{{ProductID: product2ID, Quantity: d("1"), UnitPrice: ptr(d(total))}},
		PaymentType:       entity.PaymentTypeCredit,
		CustomerID:        customerID,
		InitialPaidAmount: d(paid),
	})
	require.NoError(t, err)
	return resp.ID
}

// ── CreateSale ──────────────────────────────────────────────────────────────

func TestCreateSale_CashDecrementsStockAndIsPaid(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: d("2"), UnitPrice: ptr(d("10"))}},
		PaymentType: entity.PaymentTypeCash,
		CustomerID:  customerID,
	})
	require.NoError(t, err)

	assert.True(t, d("20").Equal(resp.TotalAmount))
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, d("20").Equal(resp.PaidAmount))
	assert.True(t, resp.RemainingAmount.IsZero())
	assert.True(t, d("8").Equal(*resp.TotalProfit))
	assert.True(t, d("3").Equal(f.stock(productID)))
	assert.Empty(t, f.store.payments, "las ventas de contado no generan pagos")
	assert.Empty(t, resp.CustomerID, "contado ignora el cliente")
	assert.Equal(t, 1, f.inv.n)
}

func TestCreateSale_CreditWithDeposit(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:             []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1"), UnitPrice: ptr(d("100"))}},
		PaymentType:       entity.PaymentTypeCredit,
		CustomerID:        customerID,
		InitialPaidAmount: d("30"),
	})
	require.NoError(t, err)

	assert.Equal(t, entity.PaymentStatusPartial, resp.PaymentStatus)
	assert.True(t, d("70").Equal(resp.RemainingAmount))
	require.Len(t, f.store.payments, 1)
	assert.True(t, d("30").Equal(f.store.payments[0].Amount))
	assert.Equal(t, initialDepositNote, f.store.payments[0].Notes)

	debt, err := f.store.readRepos().sales().CustomerDebt(context.Background(), customerID)
	require.NoError(t, err)
	assert.True(t, d("70").Equal(debt))
}

func TestCreateSale_CreditStatusFromDeposit(t *testing.T) {
	f := newFixture(t)
	unpaid := f.creditSale(t, "40", "0")
	full := f.creditSale(t, "40", "40")

	assert.Equal(t, entity.PaymentStatusUnpaid, f.store.sales[unpaid].PaymentStatus)
	assert.Equal(t, entity.PaymentStatusPaid, f.store.sales[full].PaymentStatus)
	assert.Len(t, f.store.payments, 1)
}

func TestCreateSale_DefaultsToRetailPriceAndSumsLines(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: d("1.5")},
			{ProductID: product2ID, Quantity: d("4"), UnitPrice: ptr(d("2"))},
		},
		PaymentType: entity.PaymentTypeCash,
	})
	require.NoError(t, err)

	require.Len(t, resp.Items, 2)
	assert.True(t, d("10").Equal(resp.Items[0].UnitPrice))
	sum := decimal.Zero
	for _, it := range resp.Items {
		assert.True(t, it.Quantity.Mul(it.UnitPrice).Equal(it.TotalPrice))
		sum = sum.Add(it.TotalPrice)
	}
	assert.True(t, sum.Equal(resp.TotalAmount))
	assert.True(t, d("23").Equal(resp.TotalAmount))
	assert.True(t, d("3.5").Equal(f.stock(productID)))
}

func TestCreateSale_InsufficientStock(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: d("6")}},
		PaymentType: entity.PaymentTypeCash,
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, productID, de.ID)
	assert.True(t, d("6").Equal(de.Requested))
	assert.True(t, d("5").Equal(de.Available))

	assert.True(t, d("5").Equal(f.stock(productID)))
	assert.Empty(t, f.store.sales)
	assert.Zero(t, f.inv.n)
}

func TestCreateSale_SameProductOnTwoLinesCountsTogether(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items: []dto.SaleItemRequest{
			{ProductID: productID, Quantity: d("3")},
			{ProductID: productID, Quantity: d("3")},
		},
		PaymentType: entity.PaymentTypeCash,
	})
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
	assert.True(t, d("5").Equal(f.stock(productID)))
}

func TestCreateSale_Validation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	line := []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1")}}

	cases := []struct {
		name string
		in   dto.CreateSaleRequest
		want error
	}{
		{"sin items", dto.CreateSaleRequest{PaymentType: entity.PaymentTypeCash}, domain.ErrEmptySale},
		{"crédito sin cliente", dto.CreateSaleRequest{Items: line, PaymentType: entity.PaymentTypeCredit}, domain.ErrMissingCustomerForCredit},
		{"tipo de pago inválido", dto.CreateSaleRequest{Items: line, PaymentType: "bono"}, domain.ErrInvalidInput},
		{"cantidad cero", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: d("0")}}, PaymentType: entity.PaymentTypeCash,
		}, domain.ErrInvalidInput},
		{"precio negativo", dto.CreateSaleRequest{
			Items: []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1"), UnitPrice: ptr(d("-1"))}}, PaymentType: entity.PaymentTypeCash,
		}, domain.ErrInvalidInput},
		{"abono negativo", dto.CreateSaleRequest{
			Items: line, PaymentType: entity.PaymentTypeCredit, CustomerID: customerID, InitialPaidAmount: d("-5"),
		}, domain.ErrInvalidInput},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.uc.CreateSale(ctx, seller, tc.in)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
			assert.Equal(t, domain.KindValidation, domain.KindOf(err))
		})
	}
	assert.Empty(t, f.store.sales)
}

func TestCreateSale_UnknownRefs(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.CreateSale(ctx, seller, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: "nope", Quantity: d("1")}},
		PaymentType: entity.PaymentTypeCash,
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.uc.CreateSale(ctx, seller, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1")}},
		PaymentType: entity.PaymentTypeCredit,
		CustomerID:  "otro",
	})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
	assert.True(t, d("5").Equal(f.stock(productID)))
}

func TestCreateSale_DepositAboveTotalRejected(t *testing.T) {
	f := newFixture(t)
	_, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:             []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1")}},
		PaymentType:       entity.PaymentTypeCredit,
		CustomerID:        customerID,
		InitialPaidAmount: d("11"),
	})
	assert.True(t, errors.Is(err, domain.ErrOverpayment))
	assert.Empty(t, f.store.sales)
	assert.True(t, d("5").Equal(f.stock(productID)))
}

func TestCreateSale_CommitFailureRollsBack(t *testing.T) {
	f := newFixture(t)
	f.store.commitErr = errors.New("serialization failure")

	_, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1")}},
		PaymentType: entity.PaymentTypeCash,
	})
	assert.True(t, errors.Is(err, domain.ErrTransaction))
	assert.Equal(t, domain.KindTransaction, domain.KindOf(err))
	assert.Empty(t, f.store.sales)
	assert.True(t, d("5").Equal(f.stock(productID)))
}

func TestCreateSale_ConcurrentNeverOversells(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make([]error, 2)
	for i := range errs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.uc.CreateSale(ctx, seller, dto.CreateSaleRequest{
				Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: d("4")}},
				PaymentType: entity.PaymentTypeCash,
			})
		}()
	}
	wg.Wait()

	ok := 0
	for _, err := range errs {
		if err == nil {
			ok++
		} else {
			assert.True(t, errors.Is(err, domain.ErrInsufficientStock))
		}
	}
	assert.Equal(t, 1, ok)
	assert.True(t, d("1").Equal(f.stock(productID)))
}

// ── RecordPayment ───────────────────────────────────────────────────────────

func TestRecordPayment_PartialThenPaid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.creditSale(t, "100", "30")

	resp, err := f.uc.RecordPayment(ctx, admin, saleID, dto.RecordPaymentRequest{Amount: d("50")})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPartial, resp.PaymentStatus)
	assert.True(t, d("20").Equal(resp.RemainingAmount))
	assert.Equal(t, entity.PaymentMethodCash, resp.Payment.Method)
	assert.Equal(t, admin.UserID, resp.Payment.UserID)

	resp, err = f.uc.RecordPayment(ctx, admin, saleID, dto.RecordPaymentRequest{Amount: d("20"), Method: entity.PaymentMethodTransfer})
	require.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusPaid, resp.PaymentStatus)
	assert.True(t, resp.RemainingAmount.IsZero())
	assert.Equal(t, entity.PaymentStatusPaid, f.store.sales[saleID].PaymentStatus)
}

func TestRecordPayment_Overpayment(t *testing.T) {
	f := newFixture(t)
	saleID := f.creditSale(t, "40", "0")

	_, err := f.uc.RecordPayment(context.Background(), admin, saleID, dto.RecordPaymentRequest{Amount: d("41")})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrOverpayment))
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.True(t, d("40").Equal(de.Available))

	assert.Empty(t, f.store.payments)
	assert.Equal(t, entity.PaymentStatusUnpaid, f.store.sales[saleID].PaymentStatus)
}

func TestRecordPayment_CashSaleHasNothingToPay(t *testing.T) {
	f := newFixture(t)
	resp, err := f.uc.CreateSale(context.Background(), seller, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: productID, Quantity: d("1")}},
		PaymentType: entity.PaymentTypeCash,
	})
	require.NoError(t, err)

	_, err = f.uc.RecordPayment(context.Background(), admin, resp.ID, dto.RecordPaymentRequest{Amount: d("1")})
	assert.True(t, errors.Is(err, domain.ErrOverpayment))
}

func TestRecordPayment_ValidationAndScope(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.creditSale(t, "40", "0")

	_, err := f.uc.RecordPayment(ctx, admin, saleID, dto.RecordPaymentRequest{Amount: d("0")})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = f.uc.RecordPayment(ctx, admin, "nope", dto.RecordPaymentRequest{Amount: d("1")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.uc.RecordPayment(ctx, admin, saleID, dto.RecordPaymentRequest{Amount: d("1"), CustomerID: "otro"})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.uc.RecordPayment(ctx, admin, saleID, dto.RecordPaymentRequest{Amount: d("1"), CustomerID: customerID})
	assert.NoError(t, err)
}

func TestRecordPayment_ConcurrentNeverExceedsTotal(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.creditSale(t, "40", "0")

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = f.uc.RecordPayment(ctx, admin, saleID, dto.RecordPaymentRequest{Amount: d("25")})
		}()
	}
	wg.Wait()

	paid, err := f.store.readRepos().payments().SumBySale(ctx, saleID)
	require.NoError(t, err)
	assert.True(t, d("25").Equal(paid))
}

// ── AllocatePayment ─────────────────────────────────────────────────────────

func TestAllocatePayment_OldestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	s1 := f.creditSale(t, "50", "0")
	s2 := f.creditSale(t, "30", "0")
	s3 := f.creditSale(t, "20", "0")

	resp, err := f.uc.AllocatePayment(ctx, admin, dto.QuickPaymentRequest{CustomerID: customerID, Amount: d("70")})
	require.NoError(t, err)

	require.Len(t, resp.Allocations, 2)
	assert.Equal(t, s1, resp.Allocations[0].SaleID)
	assert.True(t, d("50").Equal(resp.Allocations[0].AmountApplied))
	assert.Equal(t, entity.PaymentStatusPaid, resp.Allocations[0].NewStatus)
	assert.Equal(t, s2, resp.Allocations[1].SaleID)
	assert.True(t, d("20").Equal(resp.Allocations[1].AmountApplied))
	assert.Equal(t, entity.PaymentStatusPartial, resp.Allocations[1].NewStatus)
	assert.True(t, resp.UnallocatedRemainder.IsZero())

	assert.Equal(t, entity.PaymentStatusPaid, f.store.sales[s1].PaymentStatus)
	assert.Equal(t, entity.PaymentStatusPartial, f.store.sales[s2].PaymentStatus)
	assert.Equal(t, entity.PaymentStatusUnpaid, f.store.sales[s3].PaymentStatus)
	assert.Len(t, f.store.payments, 2)
}

func TestAllocatePayment_RemainderNotStored(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.creditSale(t, "40", "10")

	resp, err := f.uc.AllocatePayment(ctx, admin, dto.QuickPaymentRequest{CustomerID: customerID, Amount: d("50")})
	require.NoError(t, err)
	assert.True(t, d("20").Equal(resp.UnallocatedRemainder))

	sum := decimal.Zero
	for _, p := range f.store.payments {
		sum = sum.Add(p.Amount)
	}
	assert.True(t, d("40").Equal(sum))
}

func TestAllocatePayment_NoDebt(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.AllocatePayment(ctx, admin, dto.QuickPaymentRequest{CustomerID: customerID, Amount: d("10")})
	assert.True(t, errors.Is(err, domain.ErrNoOutstandingDebt))

	_, err = f.uc.AllocatePayment(ctx, admin, dto.QuickPaymentRequest{CustomerID: "otro", Amount: d("10")})
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))

	_, err = f.uc.AllocatePayment(ctx, admin, dto.QuickPaymentRequest{CustomerID: customerID, Amount: d("-1")})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

// ── lecturas ────────────────────────────────────────────────────────────────

func TestGetSale_SellerSeesOnlyOwn(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	saleID := f.creditSale(t, "40", "10")

	got, err := f.uc.GetSale(ctx, seller, saleID)
	require.NoError(t, err)
	assert.Len(t, got.Items, 1)
	assert.Len(t, got.Payments, 1)
	assert.True(t, d("30").Equal(got.RemainingAmount))

	_, err = f.uc.GetSale(ctx, Actor{UserID: "otro", Role: entity.RoleSeller}, saleID)
	assert.True(t, errors.Is(err, domain.ErrForbidden))

	_, err = f.uc.GetSale(ctx, admin, saleID)
	assert.NoError(t, err)
}

func TestListSales_RestrictsSellers(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.creditSale(t, "10", "0")
	_, err := f.uc.CreateSale(ctx, admin, dto.CreateSaleRequest{
		Items:       []dto.SaleItemRequest{{ProductID: product2ID, Quantity: d("1")}},
		PaymentType: entity.PaymentTypeCash,
	})
	require.NoError(t, err)

	mine, err := f.uc.ListSales(ctx, seller, dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Len(t, mine.Items, 1)
	assert.Equal(t, 20, mine.Page.Limit)

	all, err := f.uc.ListSales(ctx, admin, dto.SaleListRequest{})
	require.NoError(t, err)
	assert.Len(t, all.Items, 2)
	assert.True(t, all.Items[0].SaleDate.After(all.Items[1].SaleDate))

	_, err = f.uc.ListSales(ctx, admin, dto.SaleListRequest{StartDate: "ayer"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
}

func TestCustomerAccount(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.creditSale(t, "50", "20")
	f.creditSale(t, "30", "30")

	acc, err := f.uc.CustomerAccount(ctx, customerID)
	require.NoError(t, err)
	assert.True(t, d("30").Equal(acc.TotalDebt))
	require.Len(t, acc.Sales, 2)
	assert.True(t, acc.Sales[0].SaleDate.After(acc.Sales[1].SaleDate))

	_, err = f.uc.CustomerAccount(ctx, "otro")
	assert.Equal(t, domain.KindNotFound, domain.KindOf(err))
}
