package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExportSalesRequest rango de GET /api/export/sales (YYYY-MM-DD). Vacío = sin cota.
type ExportSalesRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// ProductExportRow fila de GET /api/export/products.
type ProductExportRow struct {
	ID                string          `json:"id"`
	Name              string          `json:"name"`
	Category          string          `json:"category"`
	WholesalePrice    decimal.Decimal `json:"wholesale_price"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	ProfitMargin      decimal.Decimal `json:"profit_margin"`
	ProfitPercentage  decimal.Decimal `json:"profit_percentage"`
	StockQuantity     decimal.Decimal `json:"stock_quantity"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	UnitType          string          `json:"unit_type"`
	UnitDescription   string          `json:"unit_description"`
	StockStatus       string          `json:"stock_status"`
	CreatedAt         time.Time       `json:"created_at"`
}

// SaleExportRow una línea de venta de GET /api/export/sales.
type SaleExportRow struct {
	SaleID          string          `json:"sale_id"`
	SaleDate        string          `json:"sale_date"` // YYYY-MM-DD
	SaleTime        string          `json:"sale_time"` // HH:MM:SS
	SellerName      string          `json:"seller_name"`
	SellerRole      string          `json:"seller_role"`
	CustomerName    string          `json:"customer_name"`
	PaymentType     string          `json:"payment_type"`
	PaymentStatus   string          `json:"payment_status"`
	ProductName     string          `json:"product_name"`
	ProductCategory string          `json:"product_category"`
	Quantity        decimal.Decimal `json:"quantity"`
	UnitPrice       decimal.Decimal `json:"unit_price"`
	TotalPrice      decimal.Decimal `json:"total_price"`
	UnitType        string          `json:"unit_type"`
	SaleTotal       decimal.Decimal `json:"sale_total"`
	Notes           string          `json:"notes"`
}

// InventoryExportRow fila de GET /api/export/inventory. StockValue = stock × precio de compra.
type InventoryExportRow struct {
	ProductID         string          `json:"product_id"`
	ProductName       string          `json:"product_name"`
	Category          string          `json:"category"`
	CurrentStock      decimal.Decimal `json:"current_stock"`
	MinStockThreshold decimal.Decimal `json:"min_stock_threshold"`
	UnitType          string          `json:"unit_type"`
	WholesalePrice    decimal.Decimal `json:"wholesale_price"`
	RetailPrice       decimal.Decimal `json:"retail_price"`
	StockValue        decimal.Decimal `json:"stock_value"`
	StockStatus       string          `json:"stock_status"`
	TotalSold         decimal.Decimal `json:"total_sold"`
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
}
