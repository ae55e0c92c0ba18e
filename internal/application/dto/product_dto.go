package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	Name              string          `json:"name" validate:"required,min=1,max=200"`
	Description       string          `json:"description"`
	CategoryID        string          `json:"category_id" validate:"omitempty,uuid"`
	WholesalePrice    decimal.Decimal `json:"wholesale_price"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	UnitType          string          `json:"unit_type" validate:"omitempty,oneof=whole partial"`
	UnitDescription   string          `json:"unit_description" validate:"max=50"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se mueve por ventas o POST /stock).
type UpdateProductRequest struct {
	Name              *string          `json:"name" validate:"omitempty,min=1,max=200"`
	Description       *string          `json:"description"`
	CategoryID        *string          `json:"category_id" validate:"omitempty,uuid"`
	WholesalePrice    *decimal.Decimal `json:"wholesale_price"`
	RetailPrice       *decimal.Decimal `json:"retail_price"`
	MinStockThreshold *decimal.Decimal `json:"min_stock_threshold"`
	UnitType          *string          `json:"unit_type" validate:"omitempty,oneof=whole partial"`
	UnitDescription   *string          `json:"unit_description" validate:"omitempty,max=50"`
}

// AddStockRequest body de POST /api/products/:id/stock.
type AddStockRequest struct {
	Quantity decimal.Decimal `json:"quantity"`
}

// ProductListRequest filtros de GET /api/products.
type ProductListRequest struct {
	PageRequest
	CategoryID string `query:"category_id"`
	Search     string `query:"search"`
	LowStock   bool   `query:"low_stock"`
}

// ProductResponse salida de un producto con sus valores derivados.
type ProductResponse struct {
	ID                string          `json:"id"`
	CategoryID        string          `json:"category_id,omitempty"`
	Name              string          `json:"name"`
	Description       string          `json:"description"`
	WholesalePrice    decimal.Decimal `json:"wholesale_price"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	UnitType          string          `json:"unit_type"`
	UnitDescription   string          `json:"unit_description,omitempty"`
	StockStatus       string          `json:"stock_status"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	ProfitPercentage  decimal.Decimal `json:"profit_percentage"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// CategoryRequest body para crear o editar una categoría.
type CategoryRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=100"`
	Description string `json:"description"`
}

// CategoryResponse categoría en respuestas.
type CategoryResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}
