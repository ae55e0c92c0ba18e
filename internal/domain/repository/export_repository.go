package repository

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// InventoryResult producto con su categoría y lo vendido en toda la historia.
type InventoryResult struct {
	Product      *entity.Product
	CategoryName string
	TotalSold    decimal.Decimal
	TotalRevenue decimal.Decimal
}

// SaleLineFilter filtros del export de ventas. Fechas nil = sin cota; UserID vacío = todos.
type SaleLineFilter struct {
	Start  *time.Time
	End    *time.Time
	UserID string
}

// SaleLineResult una línea de venta junto a su cabecera.
type SaleLineResult struct {
	SaleID        string
	SaleDate      time.Time
	SellerName    string
	SellerRole    string
	CustomerName  string
	PaymentType   string
	PaymentStatus string
	SaleTotal     decimal.Decimal
	Notes         string
	ProductName   string
	CategoryName  string
	UnitType      string
	Quantity      decimal.Decimal
	UnitPrice     decimal.Decimal
	TotalPrice    decimal.Decimal
}

// ExportRepository lecturas planas para exportar catálogo, inventario y ventas.
type ExportRepository interface {
	// ListInventory todos los productos por nombre, con totales vendidos (cero si nunca se vendió).
	ListInventory(ctx context.Context) ([]InventoryResult, error)
	// ListSaleLines una fila por línea de venta, más reciente primero.
	ListSaleLines(ctx context.Context, filter SaleLineFilter) ([]SaleLineResult, error)
}
