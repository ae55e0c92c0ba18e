package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body de POST /api/sales.
// UnitPrice nil = precio de venta actual del producto.
type CreateSaleRequest struct {
	Items             []SaleItemRequest `json:"items" validate:"required,min=1,dive"`
	PaymentType       string            `json:"payment_type" validate:"required,oneof=cash credit"`
	CustomerID        string            `json:"customer_id" validate:"omitempty,uuid"`
	InitialPaidAmount decimal.Decimal   `json:"initial_paid_amount"`
	Notes             string            `json:"notes"`
}

// SaleItemRequest línea de la venta.
type SaleItemRequest struct {
	ProductID string           `json:"product_id" validate:"required,uuid"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// SaleListRequest filtros de GET /api/sales.
type SaleListRequest struct {
	PageRequest
	CustomerID string `query:"customer_id"`
	StartDate  string `query:"start_date"`
	EndDate    string `query:"end_date"`
}

// SaleResponse venta con valores derivados. Items y Payments solo en el detalle.
type SaleResponse struct {
	ID              string             `json:"id"`
	SaleDate        time.Time          `json:"sale_date"`
	UserID          string             `json:"user_id"`
	SellerName      string             `json:"seller_name,omitempty"`
	CustomerID      string             `json:"customer_id,omitempty"`
	CustomerName    string             `json:"customer_name,omitempty"`
	PaymentType     string             `json:"payment_type"`
	PaymentStatus   string             `json:"payment_status"`
	Notes           string             `json:"notes,omitempty"`
	TotalAmount     decimal.Decimal    `json:"total_amount"`
	PaidAmount      decimal.Decimal    `json:"paid_amount"`
	RemainingAmount decimal.Decimal    `json:"remaining_amount"`
	IsFullyPaid     bool               `json:"is_fully_paid"`
	TotalProfit     *decimal.Decimal   `json:"total_profit,omitempty"`
	CostAmount      *decimal.Decimal   `json:"cost_amount,omitempty"`
	Items           []SaleItemResponse `json:"items,omitempty"`
	Payments        []PaymentResponse  `json:"payments,omitempty"`
}

// SaleItemResponse línea de venta en respuestas.
type SaleItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
	Profit      decimal.Decimal `json:"profit"`
}

// SaleListResponse lista paginada de ventas.
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
