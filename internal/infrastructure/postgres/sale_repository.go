package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo ventas y líneas sobre PostgreSQL (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// saleSelect lectura con lo abonado (SUM de payments) y nombres por JOIN.
const saleSelect = `
	SELECT s.id, s.total_amount, s.sale_date, s.user_id, COALESCE(s.customer_id::text, ''),
	       s.payment_type, s.payment_status, s.notes,
	       COALESCE((SELECT SUM(p.amount) FROM payments p WHERE p.sale_id = s.id), 0),
	       COALESCE(c.name, ''), COALESCE(u.username, '')
	FROM sales s
	LEFT JOIN customers c ON c.id = s.customer_id
	LEFT JOIN users u ON u.id = s.user_id`

// saleLockSelect variante para bloqueo: sin JOINs ni agregados (FOR UPDATE no los admite).
// PaymentsTotal queda en cero; el caso de uso lo relee con SumBySale.
const saleLockSelect = `
	SELECT s.id, s.total_amount, s.sale_date, s.user_id, COALESCE(s.customer_id::text, ''),
	       s.payment_type, s.payment_status, s.notes
	FROM sales s`

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.TotalAmount, &s.SaleDate, &s.UserID, &s.CustomerID,
		&s.PaymentType, &s.PaymentStatus, &s.Notes, &s.PaymentsTotal, &s.CustomerName, &s.SellerName)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func scanLockedSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.TotalAmount, &s.SaleDate, &s.UserID, &s.CustomerID,
		&s.PaymentType, &s.PaymentStatus, &s.Notes)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func collectSales(rows pgx.Rows, scan func(pgx.Row) (*entity.Sale, error)) ([]*entity.Sale, error) {
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// Create inserta la cabecera. customer_id vacío se guarda NULL.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sales (id, total_amount, sale_date, user_id, customer_id, payment_type, payment_status, notes)
		VALUES ($1, $2, $3, $4, NULLIF($5, '')::uuid, $6, $7, $8)`,
		s.ID, s.TotalAmount, s.SaleDate, s.UserID, s.CustomerID, s.PaymentType, s.PaymentStatus, s.Notes,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.NotFound("customer", s.CustomerID)
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateItem inserta una línea de venta.
func (r *SaleRepo) CreateItem(ctx context.Context, it *entity.SaleItem) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO sale_items (id, sale_id, product_id, quantity, unit_price, total_price)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		it.ID, it.SaleID, it.ProductID, it.Quantity, it.UnitPrice, it.TotalPrice,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID venta con lo abonado. (nil, nil) si no existe.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, saleSelect+` WHERE s.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetForUpdate bloquea la fila de la venta.
func (r *SaleRepo) GetForUpdate(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanLockedSale(r.q.QueryRow(ctx, saleLockSelect+` WHERE s.id = $1 FOR UPDATE`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale for update: %w", err)
	}
	return s, nil
}

// ListOpenByCustomerForUpdate ventas abiertas del cliente, bloqueadas en orden de asignación.
func (r *SaleRepo) ListOpenByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleLockSelect+`
		WHERE s.customer_id = $1 AND s.payment_status IN ('unpaid', 'partial')
		ORDER BY s.sale_date, s.id
		FOR UPDATE`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list open sales for update: %w", err)
	}
	return collectSales(rows, scanLockedSale)
}

// ListOpenByCustomer ventas abiertas del cliente (lectura), la más antigua primero.
func (r *SaleRepo) ListOpenByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+`
		WHERE s.customer_id = $1 AND s.payment_status IN ('unpaid', 'partial')
		ORDER BY s.sale_date, s.id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list open sales: %w", err)
	}
	return collectSales(rows, scanSale)
}

// UpdatePaymentStatus persiste el estado recalculado.
func (r *SaleRepo) UpdatePaymentStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE sales SET payment_status = $2 WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update sale status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("sale", id)
	}
	return nil
}

// ListItems líneas de la venta con nombre y precio de compra actual del producto.
func (r *SaleRepo) ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error) {
	rows, err := r.q.Query(ctx, `
		SELECT i.id, i.sale_id, i.product_id, i.quantity, i.unit_price, i.total_price, p.name, p.wholesale_price
		FROM sale_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.sale_id = $1
		ORDER BY p.name, i.id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.SaleID, &it.ProductID, &it.Quantity, &it.UnitPrice, &it.TotalPrice,
			&it.ProductName, &it.WholesalePrice); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// List página de ventas, más reciente primero, y total de filas que cumplen el filtro.
func (r *SaleRepo) List(ctx context.Context, f repository.SaleFilter) ([]*entity.Sale, int, error) {
	where := ` WHERE 1=1`
	args := []any{}
	pos := 1
	if f.UserID != "" {
		where += fmt.Sprintf(" AND s.user_id = $%d", pos)
		args = append(args, f.UserID)
		pos++
	}
	if f.CustomerID != "" {
		where += fmt.Sprintf(" AND s.customer_id = $%d", pos)
		args = append(args, f.CustomerID)
		pos++
	}
	if f.From != nil {
		where += fmt.Sprintf(" AND s.sale_date::date >= $%d::date", pos)
		args = append(args, *f.From)
		pos++
	}
	if f.To != nil {
		where += fmt.Sprintf(" AND s.sale_date::date <= $%d::date", pos)
		args = append(args, *f.To)
		pos++
	}

	var total int
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM sales s`+where, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count sales: %w", err)
	}

	query := saleSelect + where + fmt.Sprintf(" ORDER BY s.sale_date DESC, s.id LIMIT $%d OFFSET $%d", pos, pos+1)
	rows, err := r.q.Query(ctx, query, append(args, f.Limit, f.Offset)...)
	if err != nil {
		return nil, 0, fmt.Errorf("list sales: %w", err)
	}
	list, err := collectSales(rows, scanSale)
	return list, total, err
}

// ListByCustomer todas las ventas del cliente, más reciente primero.
func (r *SaleRepo) ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error) {
	rows, err := r.q.Query(ctx, saleSelect+` WHERE s.customer_id = $1 ORDER BY s.sale_date DESC, s.id`, customerID)
	if err != nil {
		return nil, fmt.Errorf("list customer sales: %w", err)
	}
	return collectSales(rows, scanSale)
}

// CustomerDebt Σ total - Σ abonos de las ventas no pagadas, acotado a 0.
func (r *SaleRepo) CustomerDebt(ctx context.Context, customerID string) (decimal.Decimal, error) {
	var debt decimal.Decimal
	err := r.q.QueryRow(ctx, `
		SELECT GREATEST(0,
			COALESCE(SUM(s.total_amount), 0) -
			COALESCE((SELECT SUM(p.amount) FROM payments p JOIN sales s2 ON s2.id = p.sale_id
			          WHERE s2.customer_id = $1 AND s2.payment_status <> 'paid'), 0))
		FROM sales s
		WHERE s.customer_id = $1 AND s.payment_status <> 'paid'`, customerID).Scan(&debt)
	if err != nil {
		return decimal.Zero, fmt.Errorf("customer debt: %w", err)
	}
	return debt, nil
}
