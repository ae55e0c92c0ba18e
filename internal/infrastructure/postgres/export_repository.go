package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
)

var _ repository.ExportRepository = (*ExportRepo)(nil)

// ExportRepo consultas planas de solo lectura para los exports.
type ExportRepo struct {
	q Querier
}

func NewExportRepository(q Querier) *ExportRepo {
	return &ExportRepo{q: q}
}

func (r *ExportRepo) ListInventory(ctx context.Context) ([]repository.InventoryResult, error) {
	const query = `
	SELECT p.id, COALESCE(p.category_id::text, ''), p.name, p.description, p.wholesale_price, p.retail_price,
	       p.stock_quantity, p.min_stock_threshold, p.unit_type, p.unit_description, p.created_at, p.updated_at,
	       COALESCE(c.name, ''), COALESCE(t.qty, 0), COALESCE(t.revenue, 0)
	FROM products p
	LEFT JOIN categories c ON c.id = p.category_id
	LEFT JOIN (
	    SELECT product_id, SUM(quantity) AS qty, SUM(total_price) AS revenue
	    FROM sale_items GROUP BY product_id
	) t ON t.product_id = p.id
	ORDER BY p.name`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("export.ListInventory: %w", err)
	}
	defer rows.Close()

	var out []repository.InventoryResult
	for rows.Next() {
		var (
			p   entity.Product
			row repository.InventoryResult
		)
		if err := rows.Scan(
			&p.ID, &p.CategoryID, &p.Name, &p.Description, &p.WholesalePrice, &p.RetailPrice,
			&p.StockQuantity, &p.MinStockThreshold, &p.UnitType, &p.UnitDescription, &p.CreatedAt, &p.UpdatedAt,
			&row.CategoryName, &row.TotalSold, &row.TotalRevenue,
		); err != nil {
			return nil, fmt.Errorf("export.ListInventory scan: %w", err)
		}
		row.Product = &p
		out = append(out, row)
	}
	return out, rows.Err()
}

func (r *ExportRepo) ListSaleLines(ctx context.Context, f repository.SaleLineFilter) ([]repository.SaleLineResult, error) {
	query := `
	SELECT s.id, s.sale_date, COALESCE(u.username, ''), COALESCE(u.role, ''), COALESCE(c.name, ''),
	       s.payment_type, s.payment_status, s.total_amount, s.notes,
	       p.name, COALESCE(cat.name, ''), p.unit_type, i.quantity, i.unit_price, i.total_price
	FROM sale_items i
	JOIN sales    s ON s.id = i.sale_id
	JOIN products p ON p.id = i.product_id
	LEFT JOIN categories cat ON cat.id = p.category_id
	LEFT JOIN users      u   ON u.id = s.user_id
	LEFT JOIN customers  c   ON c.id = s.customer_id
	WHERE 1=1`
	args := []any{}
	pos := 1
	if f.Start != nil {
		query += fmt.Sprintf(" AND s.sale_date::date >= $%d::date", pos)
		args = append(args, *f.Start)
		pos++
	}
	if f.End != nil {
		query += fmt.Sprintf(" AND s.sale_date::date <= $%d::date", pos)
		args = append(args, *f.End)
		pos++
	}
	if f.UserID != "" {
		query += fmt.Sprintf(" AND s.user_id = $%d", pos)
		args = append(args, f.UserID)
	}
	query += " ORDER BY s.sale_date DESC, s.id, p.name"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("export.ListSaleLines: %w", err)
	}
	defer rows.Close()

	var out []repository.SaleLineResult
	for rows.Next() {
		var l repository.SaleLineResult
		if err := rows.Scan(
			&l.SaleID, &l.SaleDate, &l.SellerName, &l.SellerRole, &l.CustomerName,
			&l.PaymentType, &l.PaymentStatus, &l.SaleTotal, &l.Notes,
			&l.ProductName, &l.CategoryName, &l.UnitType, &l.Quantity, &l.UnitPrice, &l.TotalPrice,
		); err != nil {
			return nil, fmt.Errorf("export.ListSaleLines scan: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
