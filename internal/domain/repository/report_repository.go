package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SalesMetrics totales de ventas en un rango. Cost usa el precio de compra actual.
type SalesMetrics struct {
	Revenue    decimal.Decimal
	Cost       decimal.Decimal
	Profit     decimal.Decimal
	SalesCount int
}

// TopProductResult producto más vendido en el rango.
type TopProductResult struct {
	ProductID string
	Name      string
	Quantity  decimal.Decimal
	Revenue   decimal.Decimal
}

// DailySalesResult punto de la serie diaria.
type DailySalesResult struct {
	Date    time.Time
	Revenue decimal.Decimal
	Count   int
}

// ExpenseByTypeResult gastos agrupados por tipo.
type ExpenseByTypeResult struct {
	ExpenseType string
	Total       decimal.Decimal
}

// DebtorResult cliente con deuda, para el ranking y el reporte de deudas.
type DebtorResult struct {
	CustomerID     string
	CustomerName   string
	Phone          string
	Debt           decimal.Decimal
	OpenSalesCount int
	LastSaleDate   *time.Time // última venta del cliente, abierta o no
}

// StockCounts conteos del catálogo para el dashboard.
type StockCounts struct {
	Total      int
	LowStock   int // 0 < stock ≤ umbral
	OutOfStock int
}

// ReportRepository consultas read-only de agregación.
// Rangos cerrados por fecha calendario: sale_date::date BETWEEN start AND end.
// Sin filas, los totales son cero (COALESCE), nunca error.
type ReportRepository interface {
	GetSalesMetrics(ctx context.Context, start, end time.Time) (SalesMetrics, error)
	// GetTopProducts limit ≤ 0 = todos.
	GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]TopProductResult, error)
	GetDailySales(ctx context.Context, start, end time.Time) ([]DailySalesResult, error)
	GetExpensesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	GetExpensesByType(ctx context.Context, start, end time.Time) ([]ExpenseByTypeResult, error)
	// GetCreditSummary ventas a crédito del rango y su total.
	GetCreditSummary(ctx context.Context, start, end time.Time) (count int, total decimal.Decimal, err error)
	GetPaymentsTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error)
	// GetDebtors clientes con deuda > 0, deuda descendente. limit ≤ 0 = todos.
	GetDebtors(ctx context.Context, limit int) ([]DebtorResult, error)
	GetRecentSales(ctx context.Context, limit int) ([]*entity.Sale, error)
	GetStockCounts(ctx context.Context) (StockCounts, error)
	GetLowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error)
	CountCategories(ctx context.Context) (int, error)
}
