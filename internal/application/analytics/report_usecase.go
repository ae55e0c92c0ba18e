// Package analytics contiene los casos de uso de reportes: reporte por rango,
// dashboard y reporte de deudas. Todo es de solo lectura.
package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	reportTopProducts = 0 // el reporte completo lista todos los productos vendidos
	reportTopDebtors  = 10
)

var hundred = decimal.NewFromInt(100)

// ReportUseCase agrega ventas, gastos y deudas. Las consultas independientes corren en paralelo.
type ReportUseCase struct {
	reportRepo repository.ReportRepository
	saleRepo   repository.SaleRepository
	cache      ReportCache
	log        *logger.Logger
	now        func() time.Time
}

// NewReportUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewReportUseCase(
	reportRepo repository.ReportRepository,
	saleRepo repository.SaleRepository,
	cache ReportCache,
	log *logger.Logger,
) *ReportUseCase {
	return &ReportUseCase{reportRepo: reportRepo, saleRepo: saleRepo, cache: cache, log: log, now: time.Now}
}

// WithClock reemplaza el reloj (tests).
func (uc *ReportUseCase) WithClock(now func() time.Time) *ReportUseCase {
	uc.now = now
	return uc
}

// GetReport reporte del rango [start, end] por fecha calendario.
func (uc *ReportUseCase) GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error) {
	start, end, err := parsePeriod(uc.now(), req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("report:%s:%s", start.Format(dateLayout), end.Format(dateLayout))
	var cached dto.ReportDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	var (
		metrics       repository.SalesMetrics
		expenses      decimal.Decimal
		byType        []repository.ExpenseByTypeResult
		top           []repository.TopProductResult
		daily         []repository.DailySalesResult
		creditCount   int
		creditTotal   decimal.Decimal
		paymentsTotal decimal.Decimal
		debtors       []repository.DebtorResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		metrics, err = uc.reportRepo.GetSalesMetrics(gctx, start, end)
		return wrap("métricas de ventas", err)
	})
	g.Go(func() (err error) {
		expenses, err = uc.reportRepo.GetExpensesTotal(gctx, start, end)
		return wrap("total de gastos", err)
	})
	g.Go(func() (err error) {
		byType, err = uc.reportRepo.GetExpensesByType(gctx, start, end)
		return wrap("gastos por tipo", err)
	})
	g.Go(func() (err error) {
		top, err = uc.reportRepo.GetTopProducts(gctx, start, end, reportTopProducts)
		return wrap("top productos", err)
	})
	g.Go(func() (err error) {
		daily, err = uc.reportRepo.GetDailySales(gctx, start, end)
		return wrap("ventas diarias", err)
	})
	g.Go(func() (err error) {
		creditCount, creditTotal, err = uc.reportRepo.GetCreditSummary(gctx, start, end)
		return wrap("ventas a crédito", err)
	})
	g.Go(func() (err error) {
		paymentsTotal, err = uc.reportRepo.GetPaymentsTotal(gctx, start, end)
		return wrap("abonos", err)
	})
	g.Go(func() (err error) {
		debtors, err = uc.reportRepo.GetDebtors(gctx, 0)
		return wrap("deudores", err)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte: %w", err)
	}

	totalDebts := decimal.Zero
	for _, d := range debtors {
		totalDebts = totalDebts.Add(d.Debt)
	}

	out := &dto.ReportDTO{
		StartDate:          start.Format(dateLayout),
		EndDate:            end.Format(dateLayout),
		TotalRevenue:       metrics.Revenue,
		TotalSalesCount:    metrics.SalesCount,
		TotalProfit:        metrics.Profit,
		TotalCost:          metrics.Cost,
		ProfitMargin:       percent(metrics.Profit, metrics.Revenue),
		TotalExpenses:      expenses,
		NetProfit:          metrics.Profit.Sub(expenses),
		ExpensesByType:     make([]dto.ExpenseTypeDTO, 0, len(byType)),
		TopProducts:        toTopProducts(top),
		DailySales:         make([]dto.DailySalesDTO, 0, len(daily)),
		TotalDebts:         totalDebts,
		CustomersWithDebts: len(debtors),
		CreditSalesCount:   creditCount,
		CreditSalesTotal:   creditTotal,
		TotalPayments:      paymentsTotal,
		PaymentRate:        percent(paymentsTotal, creditTotal),
		TopDebtors:         toDebtors(debtors, reportTopDebtors),
	}
	for _, e := range byType {
		out.ExpensesByType = append(out.ExpensesByType, dto.ExpenseTypeDTO{ExpenseType: e.ExpenseType, Total: e.Total})
	}
	for _, d := range daily {
		out.DailySales = append(out.DailySales, dto.DailySalesDTO{
			Date: d.Date.Format(dateLayout), Revenue: d.Revenue, SalesCount: d.Count,
		})
	}

	uc.cacheSet(ctx, key, out)
	return out, nil
}

// GetDebtsReport todos los clientes con deuda > 0 y sus ventas abiertas.
func (uc *ReportUseCase) GetDebtsReport(ctx context.Context) (*dto.DebtsReportDTO, error) {
	const key = "debts"
	var cached dto.DebtsReportDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	debtors, err := uc.reportRepo.GetDebtors(ctx, 0)
	if err != nil {
		return nil, fmt.Errorf("reporte de deudas: %w", err)
	}

	out := &dto.DebtsReportDTO{
		Customers:  make([]dto.CustomerDebtDTO, len(debtors)),
		GrandTotal: decimal.Zero,
	}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, d := range debtors {
		out.GrandTotal = out.GrandTotal.Add(d.Debt)
		out.Customers[i].DebtorDTO = toDebtor(d)
		g.Go(func() error {
			sales, err := uc.saleRepo.ListOpenByCustomer(gctx, d.CustomerID)
			if err != nil {
				return wrap("ventas abiertas de "+d.CustomerID, err)
			}
			open := make([]dto.SaleResponse, 0, len(sales))
			for _, s := range sales {
				open = append(open, dto.NewSaleResponse(s))
			}
			out.Customers[i].OpenSales = open
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("reporte de deudas: %w", err)
	}

	uc.cacheSet(ctx, key, out)
	return out, nil
}

func (uc *ReportUseCase) cacheGet(ctx context.Context, key string, dst any) bool {
	if uc.cache == nil {
		return false
	}
	ok, err := uc.cache.Get(ctx, key, dst)
	if err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("caché de reportes no disponible")
		return false
	}
	return ok
}

func (uc *ReportUseCase) cacheSet(ctx context.Context, key string, v any) {
	if uc.cache == nil {
		return
	}
	if err := uc.cache.Set(ctx, key, v); err != nil {
		uc.log.Warn().Err(err).Str("key", key).Msg("no se pudo guardar el reporte en caché")
	}
}

func wrap(what string, err error) error {
	if err != nil {
		return fmt.Errorf("%s: %w", what, err)
	}
	return nil
}

// percent part / whole × 100 con 2 decimales; 0 si whole es 0.
func percent(part, whole decimal.Decimal) decimal.Decimal {
	if whole.IsZero() {
		return decimal.Zero
	}
	return part.Div(whole).Mul(hundred).Round(2)
}

func toTopProducts(rows []repository.TopProductResult) []dto.TopProductDTO {
	out := make([]dto.TopProductDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.TopProductDTO{
			ProductID: r.ProductID, ProductName: r.Name, QuantitySold: r.Quantity, TotalRevenue: r.Revenue,
		})
	}
	return out
}

func toDebtor(d repository.DebtorResult) dto.DebtorDTO {
	out := dto.DebtorDTO{
		CustomerID:     d.CustomerID,
		CustomerName:   d.CustomerName,
		Phone:          d.Phone,
		TotalDebt:      d.Debt,
		OpenSalesCount: d.OpenSalesCount,
	}
	if d.LastSaleDate != nil {
		out.LastSaleDate = d.LastSaleDate.Format(dateLayout)
	}
	return out
}

func toDebtors(rows []repository.DebtorResult, limit int) []dto.DebtorDTO {
	if len(rows) > limit {
		rows = rows[:limit]
	}
	out := make([]dto.DebtorDTO, 0, len(rows))
	for _, r := range rows {
		out = append(out, toDebtor(r))
	}
	return out
}

func toProducts(list []*entity.Product) []dto.ProductResponse {
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, dto.NewProductResponse(p))
	}
	return out
}
