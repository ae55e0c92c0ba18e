package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
)

// ExpenseFilter filtros del listado de gastos.
type ExpenseFilter struct {
	ExpenseType string
	From, To    *time.Time
	Limit       int
	Offset      int
}

// ExpenseRepository define el puerto de persistencia para gastos.
type ExpenseRepository interface {
	Create(ctx context.Context, expense *entity.Expense) error
	GetByID(ctx context.Context, id string) (*entity.Expense, error)
	Update(ctx context.Context, expense *entity.Expense) error
	List(ctx context.Context, filter ExpenseFilter) ([]*entity.Expense, error)
	Delete(ctx context.Context, id string) error
}
