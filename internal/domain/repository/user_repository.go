package repository

import (
	"context"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	// List omite las cuentas de sistema; más reciente primero.
	List(ctx context.Context, limit, offset int) ([]*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	Delete(ctx context.Context, id string) error
	// HasActivity true si el usuario registró ventas, abonos o gastos.
	HasActivity(ctx context.Context, id string) (bool, error)
}
