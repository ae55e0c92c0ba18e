package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de gasto.
const (
	ExpenseTypeSalary         = "salary"
	ExpenseTypeRent           = "rent"
	ExpenseTypeUtilities      = "utilities"
	ExpenseTypeMarketing      = "marketing"
	ExpenseTypeMaintenance    = "maintenance"
	ExpenseTypeSupplies       = "supplies"
	ExpenseTypeTransportation = "transportation"
	ExpenseTypeOther          = "other"
)

// ExpenseTypes lista cerrada de tipos válidos.
var ExpenseTypes = []string{
	ExpenseTypeSalary, ExpenseTypeRent, ExpenseTypeUtilities, ExpenseTypeMarketing,
	ExpenseTypeMaintenance, ExpenseTypeSupplies, ExpenseTypeTransportation, ExpenseTypeOther,
}

// IsValidExpenseType verifica que t pertenezca a ExpenseTypes.
func IsValidExpenseType(t string) bool {
	for _, v := range ExpenseTypes {
		if v == t {
			return true
		}
	}
	return false
}

// Expense gasto operativo; independiente del ledger, solo se agrega en reportes.
type Expense struct {
	ID          string
	Description string
	Amount      decimal.Decimal
	ExpenseType string
	ExpenseDate time.Time
	Category    string
	Notes       string
	UserID      string
	CreatedAt   time.Time
}
