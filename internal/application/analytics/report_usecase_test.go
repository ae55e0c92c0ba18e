package analytics

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

var fixedNow = time.Date(2024, 3, 15, 16, 30, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// fakeReportRepo devuelve datos fijos y registra los rangos consultados.
type fakeReportRepo struct {
	mu       sync.Mutex
	calls    int
	ranges   [][2]time.Time
	metrics  repository.SalesMetrics
	expenses decimal.Decimal
	byType   []repository.ExpenseByTypeResult
	top      []repository.TopProductResult
	daily    []repository.DailySalesResult
	credit   int
	creditT  decimal.Decimal
	payments decimal.Decimal
	debtors  []repository.DebtorResult
	recent   []*entity.Sale
	counts   repository.StockCounts
	low      []*entity.Product
	cats     int
	failOn   string

	topLimits []int
}

func (f *fakeReportRepo) hit(name string, start, end time.Time) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if !start.IsZero() {
		f.ranges = append(f.ranges, [2]time.Time{start, end})
	}
	if f.failOn == name {
		return errors.New("consulta falló: " + name)
	}
	return nil
}

func (f *fakeReportRepo) GetSalesMetrics(_ context.Context, s, e time.Time) (repository.SalesMetrics, error) {
	return f.metrics, f.hit("metrics", s, e)
}
func (f *fakeReportRepo) GetTopProducts(_ context.Context, s, e time.Time, limit int) ([]repository.TopProductResult, error) {
	f.mu.Lock()
	f.topLimits = append(f.topLimits, limit)
	f.mu.Unlock()
	top := f.top
	if limit > 0 && len(top) > limit {
		top = top[:limit]
	}
	return top, f.hit("top", s, e)
}
func (f *fakeReportRepo) GetDailySales(_ context.Context, s, e time.Time) ([]repository.DailySalesResult, error) {
	return f.daily, f.hit("daily", s, e)
}
func (f *fakeReportRepo) GetExpensesTotal(_ context.Context, s, e time.Time) (decimal.Decimal, error) {
	return f.expenses, f.hit("expenses", s, e)
}
func (f *fakeReportRepo) GetExpensesByType(_ context.Context, s, e time.Time) ([]repository.ExpenseByTypeResult, error) {
	return f.byType, f.hit("byType", s, e)
}
func (f *fakeReportRepo) GetCreditSummary(_ context.Context, s, e time.Time) (int, decimal.Decimal, error) {
	return f.credit, f.creditT, f.hit("credit", s, e)
}
func (f *fakeReportRepo) GetPaymentsTotal(_ context.Context, s, e time.Time) (decimal.Decimal, error) {
	return f.payments, f.hit("payments", s, e)
}
func (f *fakeReportRepo) GetDebtors(context.Context, int) ([]repository.DebtorResult, error) {
	return f.debtors, f.hit("debtors", time.Time{}, time.Time{})
}
func (f *fakeReportRepo) GetRecentSales(context.Context, int) ([]*entity.Sale, error) {
	return f.recent, f.hit("recent", time.Time{}, time.Time{})
}
func (f *fakeReportRepo) GetStockCounts(context.Context) (repository.StockCounts, error) {
	return f.counts, f.hit("counts", time.Time{}, time.Time{})
}
func (f *fakeReportRepo) GetLowStockProducts(context.Context, int) ([]*entity.Product, error) {
	return f.low, f.hit("low", time.Time{}, time.Time{})
}
func (f *fakeReportRepo) CountCategories(context.Context) (int, error) {
	return f.cats, f.hit("cats", time.Time{}, time.Time{})
}

// fakeSaleRepo solo implementa ListOpenByCustomer; el resto no se usa en reportes.
type fakeSaleRepo struct {
	repository.SaleRepository
	open map[string][]*entity.Sale
}

func (f *fakeSaleRepo) ListOpenByCustomer(_ context.Context, customerID string) ([]*entity.Sale, error) {
	return f.open[customerID], nil
}

// memCache guarda JSON como lo haría Redis.
type memCache struct {
	mu     sync.Mutex
	data   map[string][]byte
	getErr error
}

func newMemCache() *memCache { return &memCache{data: map[string][]byte{}} }

func (c *memCache) Get(_ context.Context, key string, dst any) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.getErr != nil {
		return false, c.getErr
	}
	raw, ok := c.data[key]
	if !ok {
		return false, nil
	}
	return true, json.Unmarshal(raw, dst)
}

func (c *memCache) Set(_ context.Context, key string, v any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	c.data[key] = raw
	return nil
}

func newUC(repo *fakeReportRepo, sales *fakeSaleRepo, cache ReportCache) *ReportUseCase {
	if sales == nil {
		sales = &fakeSaleRepo{}
	}
	return NewReportUseCase(repo, sales, cache, logger.Nop()).WithClock(func() time.Time { return fixedNow })
}

func sampleRepo() *fakeReportRepo {
	last := time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)
	return &fakeReportRepo{
		metrics:  repository.SalesMetrics{Revenue: dec("200"), Cost: dec("120"), Profit: dec("80"), SalesCount: 4},
		expenses: dec("30"),
		byType:   []repository.ExpenseByTypeResult{{ExpenseType: entity.ExpenseTypeRent, Total: dec("30")}},
		top:      []repository.TopProductResult{{ProductID: "p1", Name: "Cuaderno", Quantity: dec("10"), Revenue: dec("100")}},
		daily:    []repository.DailySalesResult{{Date: time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), Revenue: dec("200"), Count: 4}},
		credit:   2,
		creditT:  dec("150"),
		payments: dec("60"),
		debtors: []repository.DebtorResult{
			{CustomerID: "c1", CustomerName: "Ana", Debt: dec("70"), OpenSalesCount: 2, LastSaleDate: &last},
			{CustomerID: "c2", CustomerName: "Luis", Debt: dec("20"), OpenSalesCount: 1},
		},
	}
}

func TestGetReport_Totales(t *testing.T) {
	uc := newUC(sampleRepo(), nil, nil)

	out, err := uc.GetReport(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, "2024-03-01", out.StartDate)
	assert.Equal(t, "2024-03-15", out.EndDate)
	assert.True(t, out.TotalRevenue.Equal(dec("200")))
	assert.True(t, out.TotalProfit.Equal(dec("80")))
	assert.True(t, out.ProfitMargin.Equal(dec("40")), out.ProfitMargin.String())
	assert.True(t, out.NetProfit.Equal(dec("50")))
	assert.True(t, out.TotalDebts.Equal(dec("90")))
	assert.Equal(t, 2, out.CustomersWithDebts)
	assert.True(t, out.PaymentRate.Equal(dec("40")), out.PaymentRate.String())
	require.Len(t, out.TopDebtors, 2)
	assert.Equal(t, "2024-03-10", out.TopDebtors[0].LastSaleDate)
	assert.Empty(t, out.TopDebtors[1].LastSaleDate)
	require.Len(t, out.DailySales, 1)
	assert.Equal(t, "2024-03-01", out.DailySales[0].Date)
}

func TestGetReport_SinDatosEsCero(t *testing.T) {
	uc := newUC(&fakeReportRepo{}, nil, nil)

	out, err := uc.GetReport(context.Background(), dto.ReportRequest{StartDate: "2024-01-01", EndDate: "2024-01-31"})
	require.NoError(t, err)

	assert.True(t, out.TotalRevenue.IsZero())
	assert.True(t, out.ProfitMargin.IsZero())
	assert.True(t, out.PaymentRate.IsZero())
	assert.True(t, out.TotalDebts.IsZero())
	assert.NotNil(t, out.TopProducts)
	assert.NotNil(t, out.DailySales)
	assert.NotNil(t, out.ExpensesByType)
	assert.Empty(t, out.TopDebtors)
}

func TestGetReport_RangoExplicitoPorFechaCalendario(t *testing.T) {
	repo := &fakeReportRepo{}
	uc := newUC(repo, nil, nil)

	_, err := uc.GetReport(context.Background(), dto.ReportRequest{StartDate: "2024-02-01", EndDate: "2024-02-29"})
	require.NoError(t, err)

	require.NotEmpty(t, repo.ranges)
	for _, r := range repo.ranges {
		assert.Equal(t, time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), r[0])
		assert.Equal(t, time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC), r[1])
	}
}

func TestGetReport_FechasInvalidas(t *testing.T) {
	uc := newUC(&fakeReportRepo{}, nil, nil)
	tests := []struct {
		name       string
		start, end string
		field      string
	}{
		{"inicio mal formado", "2024-13-01", "", "start_date"},
		{"fin mal formado", "", "ayer", "end_date"},
		{"inicio después del fin", "2024-03-10", "2024-03-01", "start_date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.GetReport(context.Background(), dto.ReportRequest{StartDate: tt.start, EndDate: tt.end})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			var de *domain.Error
			require.ErrorAs(t, err, &de)
			assert.Equal(t, tt.field, de.Field)
		})
	}
}

func TestGetReport_TopDeudoresLimitadoA10(t *testing.T) {
	repo := &fakeReportRepo{}
	for i := 0; i < 15; i++ {
		repo.debtors = append(repo.debtors, repository.DebtorResult{CustomerID: string(rune('a' + i)), Debt: dec("1")})
	}
	out, err := newUC(repo, nil, nil).GetReport(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)

	assert.Len(t, out.TopDebtors, 10)
	assert.Equal(t, 15, out.CustomersWithDebts)
	assert.True(t, out.TotalDebts.Equal(dec("15")))
}

func TestGetReport_ListaTodosLosProductosVendidos(t *testing.T) {
	repo := &fakeReportRepo{}
	for i := 0; i < 12; i++ {
		repo.top = append(repo.top, repository.TopProductResult{
			ProductID: string(rune('a' + i)), Name: "producto", Quantity: dec("1"), Revenue: dec("1"),
		})
	}

	out, err := newUC(repo, nil, nil).GetReport(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)

	assert.Len(t, out.TopProducts, 12)
	assert.Equal(t, []int{0}, repo.topLimits)
}

func TestGetReport_ErrorDeConsultaSePropaga(t *testing.T) {
	repo := sampleRepo()
	repo.failOn = "daily"
	_, err := newUC(repo, nil, nil).GetReport(context.Background(), dto.ReportRequest{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ventas diarias")
}

func TestGetReport_UsaCache(t *testing.T) {
	repo := sampleRepo()
	cache := newMemCache()
	uc := newUC(repo, nil, cache)

	first, err := uc.GetReport(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)
	callsAfterFirst := repo.calls

	second, err := uc.GetReport(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)

	assert.Equal(t, callsAfterFirst, repo.calls, "el segundo reporte sale de la caché")
	assert.True(t, first.TotalRevenue.Equal(second.TotalRevenue))
	assert.Contains(t, cache.data, "report:2024-03-01:2024-03-15")
}

func TestGetReport_CacheCaidaVaALaBD(t *testing.T) {
	repo := sampleRepo()
	cache := newMemCache()
	cache.getErr = errors.New("connection refused")

	out, err := newUC(repo, nil, cache).GetReport(context.Background(), dto.ReportRequest{})
	require.NoError(t, err)
	assert.True(t, out.TotalRevenue.Equal(dec("200")))
	assert.Positive(t, repo.calls)
}

func TestGetDebtsReport(t *testing.T) {
	repo := sampleRepo()
	sales := &fakeSaleRepo{open: map[string][]*entity.Sale{
		"c1": {
			{ID: "s1", CustomerID: "c1", PaymentType: entity.PaymentTypeCredit, PaymentStatus: entity.PaymentStatusUnpaid, TotalAmount: dec("50")},
			{ID: "s2", CustomerID: "c1", PaymentType: entity.PaymentTypeCredit, PaymentStatus: entity.PaymentStatusPartial, TotalAmount: dec("40"), PaymentsTotal: dec("20")},
		},
		"c2": {
			{ID: "s3", CustomerID: "c2", PaymentType: entity.PaymentTypeCredit, PaymentStatus: entity.PaymentStatusUnpaid, TotalAmount: dec("20")},
		},
	}}

	out, err := newUC(repo, sales, nil).GetDebtsReport(context.Background())
	require.NoError(t, err)

	assert.True(t, out.GrandTotal.Equal(dec("90")))
	require.Len(t, out.Customers, 2)
	assert.Equal(t, "c1", out.Customers[0].CustomerID)
	require.Len(t, out.Customers[0].OpenSales, 2)
	assert.True(t, out.Customers[0].OpenSales[1].RemainingAmount.Equal(dec("20")))
	require.Len(t, out.Customers[1].OpenSales, 1)
}

func TestGetDebtsReport_SinDeudores(t *testing.T) {
	out, err := newUC(&fakeReportRepo{}, nil, nil).GetDebtsReport(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out.Customers)
	assert.True(t, out.GrandTotal.IsZero())
}

func TestGetDashboard(t *testing.T) {
	repo := sampleRepo()
	repo.counts = repository.StockCounts{Total: 7, LowStock: 2, OutOfStock: 1}
	repo.cats = 4
	repo.recent = []*entity.Sale{{ID: "s9", PaymentType: entity.PaymentTypeCash, PaymentStatus: entity.PaymentStatusPaid, TotalAmount: dec("12")}}
	repo.low = []*entity.Product{{ID: "p2", Name: "Lápiz", StockQuantity: dec("3"), MinStockThreshold: dec("10"), WholesalePrice: dec("1"), RetailPrice: dec("2")}}

	cache := newMemCache()
	out, err := newUC(repo, nil, cache).GetDashboard(context.Background())
	require.NoError(t, err)

	assert.True(t, out.TodayNetProfit.Equal(dec("50")))
	assert.True(t, out.MonthCost.Equal(dec("120")))
	assert.Equal(t, 7, out.TotalProducts)
	assert.Equal(t, 2, out.LowStockProducts)
	assert.Equal(t, 1, out.OutOfStockProducts)
	assert.Equal(t, 4, out.TotalCategories)
	assert.True(t, out.TotalDebt.Equal(dec("90")))
	assert.Equal(t, 2, out.CustomersWithDebts)
	require.Len(t, out.RecentSales, 1)
	assert.True(t, out.RecentSales[0].PaidAmount.Equal(dec("12")))
	require.Len(t, out.LowStockAlerts, 1)
	assert.Equal(t, "Marzo 2024", out.DateLabel)
	assert.Contains(t, cache.data, "dashboard:2024-03-15")
	assert.Equal(t, []int{dashboardTopProducts}, repo.topLimits)
}

func TestParsePeriod_PorDefectoMesEnCurso(t *testing.T) {
	start, end, err := parsePeriod(fixedNow, "", "")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC), end)
}

func TestPercent(t *testing.T) {
	assert.True(t, percent(dec("1"), dec("3")).Equal(dec("33.33")))
	assert.True(t, percent(dec("5"), decimal.Zero).IsZero())
}
