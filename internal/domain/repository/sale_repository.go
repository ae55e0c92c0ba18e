package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// SaleFilter filtros del listado de ventas. UserID vacío = todas.
type SaleFilter struct {
	UserID     string
	CustomerID string
	From, To   *time.Time
	Limit      int
	Offset     int
}

// SaleRepository define el puerto de persistencia para ventas.
// Las ventas leídas traen PaymentsTotal calculado (SUM de payments).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateItem(ctx context.Context, item *entity.SaleItem) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	// GetForUpdate bloquea la fila de la venta hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Sale, error)
	// ListOpenByCustomerForUpdate ventas unpaid/partial del cliente, bloqueadas,
	// ordenadas por sale_date asc e id.
	ListOpenByCustomerForUpdate(ctx context.Context, customerID string) ([]*entity.Sale, error)
	// ListOpenByCustomer igual que la anterior pero sin bloqueo (lectura).
	ListOpenByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	UpdatePaymentStatus(ctx context.Context, id, status string) error
	ListItems(ctx context.Context, saleID string) ([]*entity.SaleItem, error)
	// List devuelve la página pedida (más reciente primero) y el total de filas.
	List(ctx context.Context, filter SaleFilter) ([]*entity.Sale, int, error)
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
	// CustomerDebt Σ total - Σ abonos de las ventas no pagadas del cliente, acotado a 0.
	CustomerDebt(ctx context.Context, customerID string) (decimal.Decimal, error)
}
