package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

var _ repository.PaymentRepository = (*PaymentRepo)(nil)

// PaymentRepo pagos (solo INSERT y lecturas).
type PaymentRepo struct {
	q Querier
}

func NewPaymentRepository(q Querier) *PaymentRepo {
	return &PaymentRepo{q: q}
}

func (r *PaymentRepo) Create(ctx context.Context, p *entity.Payment) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO payments (id, sale_id, amount, payment_date, method, notes, user_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID, p.SaleID, p.Amount, p.PaymentDate, p.Method, p.Notes, p.UserID,
	)
	if err != nil {
		return fmt.Errorf("insert payment: %w", err)
	}
	return nil
}

// ListBySale abonos de la venta en orden cronológico.
func (r *PaymentRepo) ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, sale_id, amount, payment_date, method, notes, user_id
		FROM payments WHERE sale_id = $1 ORDER BY payment_date, id`, saleID)
	if err != nil {
		return nil, fmt.Errorf("list payments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Payment
	for rows.Next() {
		var p entity.Payment
		if err := rows.Scan(&p.ID, &p.SaleID, &p.Amount, &p.PaymentDate, &p.Method, &p.Notes, &p.UserID); err != nil {
			return nil, fmt.Errorf("scan payment: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// SumBySale total abonado a la venta (0 si no hay pagos).
func (r *PaymentRepo) SumBySale(ctx context.Context, saleID string) (decimal.Decimal, error) {
	var sum decimal.Decimal
	if err := r.q.QueryRow(ctx, `SELECT COALESCE(SUM(amount), 0) FROM payments WHERE sale_id = $1`, saleID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum payments: %w", err)
	}
	return sum, nil
}
