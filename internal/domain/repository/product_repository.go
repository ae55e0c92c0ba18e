package repository

import (
	"context"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// ProductFilter filtros del listado de productos.
type ProductFilter struct {
	CategoryID string
	Search     string // coincide con nombre o descripción (ILIKE)
	LowStock   bool   // solo stock ≤ umbral
	Limit      int
	Offset     int
}

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila (SELECT ... FOR UPDATE). Solo dentro de una transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	// DecrementStock resta qty del stock. Falla si dejaría el stock negativo.
	DecrementStock(ctx context.Context, id string, qty decimal.Decimal) error
	IncrementStock(ctx context.Context, id string, qty decimal.Decimal) error
	List(ctx context.Context, filter ProductFilter) ([]*entity.Product, error)
	// IsReferenced indica si alguna línea de venta apunta al producto.
	IsReferenced(ctx context.Context, id string) (bool, error)
	Delete(ctx context.Context, id string) error
}
