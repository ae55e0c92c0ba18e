package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo consultas de solo lectura para reportes y dashboard.
// Los rangos son cerrados por fecha calendario; el costo usa el precio de compra actual del producto.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador de reportes.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// GetSalesMetrics ingresos, costo y ganancia del rango. Cuenta ventas sin ítems también.
func (r *ReportRepo) GetSalesMetrics(ctx context.Context, start, end time.Time) (repository.SalesMetrics, error) {
	const query = `
	SELECT
	    COALESCE(SUM(s.total_amount), 0)                                   AS revenue,
	    COUNT(*)                                                           AS sales_count,
	    COALESCE(SUM(c.cost), 0)                                           AS cost
	FROM sales s
	LEFT JOIN (
	    SELECT i.sale_id, SUM(i.quantity * p.wholesale_price) AS cost
	    FROM sale_items i
	    JOIN products p ON p.id = i.product_id
	    GROUP BY i.sale_id
	) c ON c.sale_id = s.id
	WHERE s.sale_date::date BETWEEN $1::date AND $2::date`

	var m repository.SalesMetrics
	if err := r.q.QueryRow(ctx, query, start, end).Scan(&m.Revenue, &m.SalesCount, &m.Cost); err != nil {
		return repository.SalesMetrics{}, fmt.Errorf("report.GetSalesMetrics: %w", err)
	}
	m.Profit = m.Revenue.Sub(m.Cost)
	return m, nil
}

// GetTopProducts productos por cantidad vendida (desc), luego ingresos. limit ≤ 0 = todos.
func (r *ReportRepo) GetTopProducts(ctx context.Context, start, end time.Time, limit int) ([]repository.TopProductResult, error) {
	query := `
	SELECT p.id, p.name, SUM(i.quantity) AS qty, SUM(i.total_price) AS revenue
	FROM sale_items i
	JOIN sales    s ON s.id = i.sale_id
	JOIN products p ON p.id = i.product_id
	WHERE s.sale_date::date BETWEEN $1::date AND $2::date
	GROUP BY p.id, p.name
	ORDER BY qty DESC, revenue DESC, p.name`
	args := []any{start, end}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.GetTopProducts: %w", err)
	}
	defer rows.Close()

	var out []repository.TopProductResult
	for rows.Next() {
		var row repository.TopProductResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Quantity, &row.Revenue); err != nil {
			return nil, fmt.Errorf("report.GetTopProducts scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

// GetDailySales serie diaria (solo días con ventas), ascendente.
func (r *ReportRepo) GetDailySales(ctx context.Context, start, end time.Time) ([]repository.DailySalesResult, error) {
	const query = `
	SELECT s.sale_date::date AS day, SUM(s.total_amount), COUNT(*)
	FROM sales s
	WHERE s.sale_date::date BETWEEN $1::date AND $2::date
	GROUP BY day
	ORDER BY day`

	rows, err := r.q.Query(ctx, query, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.GetDailySales: %w", err)
	}
	defer rows.Close()

	var out []repository.DailySalesResult
	for rows.Next() {
		var row repository.DailySalesResult
		if err := rows.Scan(&row.Date, &row.Revenue, &row.Count); err != nil {
			return nil, fmt.Errorf("report.GetDailySales scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepo) GetExpensesTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM expenses
		WHERE expense_date::date BETWEEN $1::date AND $2::date`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("report.GetExpensesTotal: %w", err)
	}
	return total, nil
}

func (r *ReportRepo) GetExpensesByType(ctx context.Context, start, end time.Time) ([]repository.ExpenseByTypeResult, error) {
	rows, err := r.q.Query(ctx, `
		SELECT expense_type, SUM(amount) AS total FROM expenses
		WHERE expense_date::date BETWEEN $1::date AND $2::date
		GROUP BY expense_type
		ORDER BY total DESC, expense_type`, start, end)
	if err != nil {
		return nil, fmt.Errorf("report.GetExpensesByType: %w", err)
	}
	defer rows.Close()

	var out []repository.ExpenseByTypeResult
	for rows.Next() {
		var row repository.ExpenseByTypeResult
		if err := rows.Scan(&row.ExpenseType, &row.Total); err != nil {
			return nil, fmt.Errorf("report.GetExpensesByType scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepo) GetCreditSummary(ctx context.Context, start, end time.Time) (int, decimal.Decimal, error) {
	var (
		count int
		total decimal.Decimal
	)
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*), COALESCE(SUM(total_amount), 0) FROM sales
		WHERE payment_type = 'credit' AND sale_date::date BETWEEN $1::date AND $2::date`,
		start, end).Scan(&count, &total)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("report.GetCreditSummary: %w", err)
	}
	return count, total, nil
}

// GetPaymentsTotal abonos registrados en el rango (por fecha del pago).
func (r *ReportRepo) GetPaymentsTotal(ctx context.Context, start, end time.Time) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM payments
		WHERE payment_date::date BETWEEN $1::date AND $2::date`, start, end).Scan(&total)
	if err != nil {
		return decimal.Zero, fmt.Errorf("report.GetPaymentsTotal: %w", err)
	}
	return total, nil
}

// GetDebtors clientes con deuda > 0. La deuda es por venta no pagada: max(0, total - abonos).
func (r *ReportRepo) GetDebtors(ctx context.Context, limit int) ([]repository.DebtorResult, error) {
	query := `
	WITH open_sales AS (
	    SELECT s.customer_id,
	           GREATEST(0, s.total_amount - COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.sale_id = s.id), 0)) AS due
	    FROM sales s
	    WHERE s.customer_id IS NOT NULL AND s.payment_status <> 'paid'
	)
	SELECT c.id, c.name, c.phone,
	       SUM(o.due)                                                    AS debt,
	       COUNT(*)                                                      AS open_sales,
	       (SELECT MAX(s2.sale_date) FROM sales s2 WHERE s2.customer_id = c.id) AS last_sale
	FROM open_sales o
	JOIN customers c ON c.id = o.customer_id
	GROUP BY c.id, c.name, c.phone
	HAVING SUM(o.due) > 0
	ORDER BY debt DESC, c.name`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT $1`
		args = append(args, limit)
	}

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("report.GetDebtors: %w", err)
	}
	defer rows.Close()

	var out []repository.DebtorResult
	for rows.Next() {
		var row repository.DebtorResult
		if err := rows.Scan(&row.CustomerID, &row.CustomerName, &row.Phone, &row.Debt,
			&row.OpenSalesCount, &row.LastSaleDate); err != nil {
			return nil, fmt.Errorf("report.GetDebtors scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ReportRepo) GetRecentSales(ctx context.Context, limit int) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+` ORDER BY s.sale_date DESC, s.id LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("report.GetRecentSales: %w", err)
	}
	return collectSales(rows, scanSale)
}

func (r *ReportRepo) GetStockCounts(ctx context.Context) (repository.StockCounts, error) {
	var c repository.StockCounts
	err := r.q.QueryRow(ctx, `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE stock_quantity > 0 AND stock_quantity <= min_stock_threshold),
		       COUNT(*) FILTER (WHERE stock_quantity <= 0)
		FROM products`).Scan(&c.Total, &c.LowStock, &c.OutOfStock)
	if err != nil {
		return repository.StockCounts{}, fmt.Errorf("report.GetStockCounts: %w", err)
	}
	return c, nil
}

// GetLowStockProducts productos en o bajo el umbral, menor stock primero.
func (r *ReportRepo) GetLowStockProducts(ctx context.Context, limit int) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, `SELECT `+productColumns+` FROM products
		WHERE stock_quantity <= min_stock_threshold
		ORDER BY stock_quantity, name
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("report.GetLowStockProducts: %w", err)
	}
	defer rows.Close()

	var out []*entity.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("report.GetLowStockProducts scan: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *ReportRepo) CountCategories(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM categories`).Scan(&n); err != nil {
		return 0, fmt.Errorf("report.CountCategories: %w", err)
	}
	return n, nil
}
