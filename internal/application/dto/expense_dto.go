package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExpenseRequest body para POST/PUT /api/expenses. ExpenseDate vacío = hoy.
type ExpenseRequest struct {
	Description string          `json:"description" validate:"required,min=1,max=200"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expense_type" validate:"required,oneof=salary rent utilities marketing maintenance supplies transportation other"`
	ExpenseDate string          `json:"expense_date" validate:"omitempty,datetime=2006-01-02"`
	Category    string          `json:"category" validate:"max=50"`
	Notes       string          `json:"notes"`
}

// ExpenseListRequest filtros de GET /api/expenses.
type ExpenseListRequest struct {
	PageRequest
	ExpenseType string `query:"expense_type"`
	StartDate   string `query:"start_date"`
	EndDate     string `query:"end_date"`
}

// ExpenseResponse gasto en respuestas.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	ExpenseType string          `json:"expense_type"`
	ExpenseDate time.Time       `json:"expense_date"`
	Category    string          `json:"category,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	UserID      string          `json:"user_id"`
	CreatedAt   time.Time       `json:"created_at"`
}
