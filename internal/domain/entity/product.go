package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de unidad de venta.
const (
	UnitTypeWhole   = "whole"   // unidad completa
	UnitTypePartial = "partial" // fracciones (páginas, capítulos, metros...)
)

// Estado de stock derivado (no se persiste).
const (
	StockStatusAvailable  = "available"
	StockStatusLowStock   = "low_stock"
	StockStatusOutOfStock = "out_of_stock"
)

// Product representa un producto del catálogo.
// StockQuantity admite fracciones; nunca queda negativo (la venta se rechaza antes).
type Product struct {
	ID                string
	CategoryID        string
	Name              string
	Description       string
	WholesalePrice    decimal.Decimal // precio de compra (costo)
	RetailPrice       decimal.Decimal // precio de venta sugerido
	StockQuantity     decimal.Decimal
	MinStockThreshold decimal.Decimal
	UnitType          string // whole, partial
	UnitDescription   string // ej: "página", "capítulo"
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// ProfitMargin margen unitario: precio de venta - precio de compra.
func (p *Product) ProfitMargin() decimal.Decimal {
	return p.RetailPrice.Sub(p.WholesalePrice)
}

// ProfitPercentage margen sobre el costo, en %. Cero si el costo es cero.
func (p *Product) ProfitPercentage() decimal.Decimal {
	if !p.WholesalePrice.IsPositive() {
		return decimal.Zero
	}
	return p.ProfitMargin().Div(p.WholesalePrice).Mul(decimal.NewFromInt(100))
}

func (p *Product) IsOutOfStock() bool {
	return !p.StockQuantity.IsPositive()
}

func (p *Product) IsLowStock() bool {
	return p.StockQuantity.LessThanOrEqual(p.MinStockThreshold)
}

// StockStatus clasifica el stock actual: agotado, bajo o disponible.
func (p *Product) StockStatus() string {
	switch {
	case p.IsOutOfStock():
		return StockStatusOutOfStock
	case p.IsLowStock():
		return StockStatusLowStock
	default:
		return StockStatusAvailable
	}
}
