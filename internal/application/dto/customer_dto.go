package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerRequest body para POST/PUT /api/customers.
type CustomerRequest struct {
	Name    string `json:"name" validate:"required,min=1,max=100"`
	Phone   string `json:"phone" validate:"max=20"`
	Address string `json:"address"`
	Notes   string `json:"notes"`
}

// CustomerResponse cliente en respuestas. TotalDebt solo se llena en la cuenta del cliente.
type CustomerResponse struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Phone     string          `json:"phone,omitempty"`
	Address   string          `json:"address,omitempty"`
	Notes     string          `json:"notes,omitempty"`
	TotalDebt decimal.Decimal `json:"total_debt"`
	CreatedAt time.Time       `json:"created_at"`
}

// CustomerAccountResponse GET /api/customers/:id/account: deuda y ventas (más reciente primero).
type CustomerAccountResponse struct {
	Customer  CustomerResponse `json:"customer"`
	TotalDebt decimal.Decimal  `json:"total_debt"`
	Sales     []SaleResponse   `json:"sales"`
}
