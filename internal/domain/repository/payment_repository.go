package repository

import (
	"context"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// PaymentRepository pagos append-only: no hay Update ni Delete.
type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	ListBySale(ctx context.Context, saleID string) ([]*entity.Payment, error)
	SumBySale(ctx context.Context, saleID string) (decimal.Decimal, error)
}
