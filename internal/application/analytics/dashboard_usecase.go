package analytics

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"
)

const (
	dashboardTopProducts = 5 // número de productos en el widget del dashboard
	dashboardRecentSales = 5
	dashboardLowStock    = 10
)

// GetDashboard resumen del día y del mes en curso, más inventario y deudas.
func (uc *ReportUseCase) GetDashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error) {
	now := uc.now()
	today := now.Format(dateLayout)
	key := "dashboard:" + today

	var cached dto.DashboardSummaryDTO
	if uc.cacheGet(ctx, key, &cached) {
		return &cached, nil
	}

	todayStart, monthEnd, _ := parsePeriod(now, today, today)
	monthStart, _, _ := parsePeriod(now, "", today)

	var (
		todayM, monthM     repository.SalesMetrics
		todayExp, monthExp decimal.Decimal
		top                []repository.TopProductResult
		recent             []*entity.Sale
		counts             repository.StockCounts
		lowStock           []*entity.Product
		categories         int
		debtors            []repository.DebtorResult
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		todayM, err = uc.reportRepo.GetSalesMetrics(gctx, todayStart, todayStart)
		return wrap("métricas de hoy", err)
	})
	g.Go(func() (err error) {
		monthM, err = uc.reportRepo.GetSalesMetrics(gctx, monthStart, monthEnd)
		return wrap("métricas del mes", err)
	})
	g.Go(func() (err error) {
		todayExp, err = uc.reportRepo.GetExpensesTotal(gctx, todayStart, todayStart)
		return wrap("gastos de hoy", err)
	})
	g.Go(func() (err error) {
		monthExp, err = uc.reportRepo.GetExpensesTotal(gctx, monthStart, monthEnd)
		return wrap("gastos del mes", err)
	})
	g.Go(func() (err error) {
		top, err = uc.reportRepo.GetTopProducts(gctx, monthStart, monthEnd, dashboardTopProducts)
		return wrap("top productos", err)
	})
	g.Go(func() (err error) {
		recent, err = uc.reportRepo.GetRecentSales(gctx, dashboardRecentSales)
		return wrap("ventas recientes", err)
	})
	g.Go(func() (err error) {
		counts, err = uc.reportRepo.GetStockCounts(gctx)
		return wrap("conteo de stock", err)
	})
	g.Go(func() (err error) {
		lowStock, err = uc.reportRepo.GetLowStockProducts(gctx, dashboardLowStock)
		return wrap("alertas de stock", err)
	})
	g.Go(func() (err error) {
		categories, err = uc.reportRepo.CountCategories(gctx)
		return wrap("categorías", err)
	})
	g.Go(func() (err error) {
		debtors, err = uc.reportRepo.GetDebtors(gctx, 0)
		return wrap("deudores", err)
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	totalDebt := decimal.Zero
	for _, d := range debtors {
		totalDebt = totalDebt.Add(d.Debt)
	}
	out := &dto.DashboardSummaryDTO{
		TodayRevenue:       todayM.Revenue,
		TodayProfit:        todayM.Profit,
		TodayExpenses:      todayExp,
		TodayNetProfit:     todayM.Profit.Sub(todayExp),
		TodaySalesCount:    todayM.SalesCount,
		MonthRevenue:       monthM.Revenue,
		MonthCost:          monthM.Cost,
		MonthProfit:        monthM.Profit,
		MonthExpenses:      monthExp,
		MonthNetProfit:     monthM.Profit.Sub(monthExp),
		TopProducts:        toTopProducts(top),
		RecentSales:        make([]dto.SaleResponse, 0, len(recent)),
		TotalProducts:      counts.Total,
		LowStockProducts:   counts.LowStock,
		OutOfStockProducts: counts.OutOfStock,
		LowStockAlerts:     toProducts(lowStock),
		TotalCategories:    categories,
		TotalDebt:          totalDebt,
		CustomersWithDebts: len(debtors),
		DateLabel:          monthLabel(now),
	}
	for _, s := range recent {
		out.RecentSales = append(out.RecentSales, dto.NewSaleResponse(s))
	}

	uc.cacheSet(ctx, key, out)
	return out, nil
}
