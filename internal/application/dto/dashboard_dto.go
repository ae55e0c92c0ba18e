package dto

import "github.com/shopspring/decimal"

// ReportRequest rango de GET /api/reports (YYYY-MM-DD). Vacío = mes en curso.
type ReportRequest struct {
	StartDate string `query:"start_date"`
	EndDate   string `query:"end_date"`
}

// ReportDTO respuesta de GET /api/reports.
type ReportDTO struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`

	TotalRevenue    decimal.Decimal `json:"total_revenue"`
	TotalSalesCount int             `json:"total_sales_count"`
	TotalProfit     decimal.Decimal `json:"total_profit"`
	TotalCost       decimal.Decimal `json:"total_cost"`
	ProfitMargin    decimal.Decimal `json:"profit_margin"` // profit / revenue * 100

	TotalExpenses  decimal.Decimal  `json:"total_expenses"`
	NetProfit      decimal.Decimal  `json:"net_profit"`
	ExpensesByType []ExpenseTypeDTO `json:"expenses_by_type"`
	TopProducts    []TopProductDTO  `json:"top_products"`
	DailySales     []DailySalesDTO  `json:"daily_sales"`

	TotalDebts         decimal.Decimal `json:"total_debts"`
	CustomersWithDebts int             `json:"customers_with_debts"`
	CreditSalesCount   int             `json:"credit_sales_count"`
	CreditSalesTotal   decimal.Decimal `json:"credit_sales_total"`
	TotalPayments      decimal.Decimal `json:"total_payments"`
	PaymentRate        decimal.Decimal `json:"payment_rate"` // pagos del rango / ventas a crédito del rango * 100
	TopDebtors         []DebtorDTO     `json:"top_debtors"`
}

// ExpenseTypeDTO gastos de un tipo.
type ExpenseTypeDTO struct {
	ExpenseType string          `json:"expense_type"`
	Total       decimal.Decimal `json:"total"`
}

// TopProductDTO producto más vendido (por cantidad).
type TopProductDTO struct {
	ProductID    string          `json:"product_id"`
	ProductName  string          `json:"product_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

// DailySalesDTO punto de la serie diaria.
type DailySalesDTO struct {
	Date       string          `json:"date"`
	Revenue    decimal.Decimal `json:"revenue"`
	SalesCount int             `json:"sales_count"`
}

// DebtorDTO cliente con deuda.
type DebtorDTO struct {
	CustomerID     string          `json:"customer_id"`
	CustomerName   string          `json:"customer_name"`
	Phone          string          `json:"phone,omitempty"`
	TotalDebt      decimal.Decimal `json:"total_debt"`
	OpenSalesCount int             `json:"open_sales_count"`
	LastSaleDate   string          `json:"last_sale_date,omitempty"`
}

// DebtsReportDTO respuesta de GET /api/reports/debts.
type DebtsReportDTO struct {
	Customers  []CustomerDebtDTO `json:"customers"`
	GrandTotal decimal.Decimal   `json:"grand_total"`
}

// CustomerDebtDTO deudor con sus ventas abiertas.
type CustomerDebtDTO struct {
	DebtorDTO
	OpenSales []SaleResponse `json:"open_sales"`
}

// DashboardSummaryDTO respuesta de GET /api/dashboard.
type DashboardSummaryDTO struct {
	// Día actual
	TodayRevenue    decimal.Decimal `json:"today_revenue"`
	TodayProfit     decimal.Decimal `json:"today_profit"`
	TodayExpenses   decimal.Decimal `json:"today_expenses"`
	TodayNetProfit  decimal.Decimal `json:"today_net_profit"`
	TodaySalesCount int             `json:"today_sales_count"`

	// Mes en curso (día 1 – hoy)
	MonthRevenue   decimal.Decimal `json:"month_revenue"`
	MonthCost      decimal.Decimal `json:"month_cost"`
	MonthProfit    decimal.Decimal `json:"month_profit"`
	MonthExpenses  decimal.Decimal `json:"month_expenses"`
	MonthNetProfit decimal.Decimal `json:"month_net_profit"`

	TopProducts []TopProductDTO `json:"top_products"`
	RecentSales []SaleResponse  `json:"recent_sales"`

	TotalProducts      int               `json:"total_products"`
	LowStockProducts   int               `json:"low_stock_products"`
	OutOfStockProducts int               `json:"out_of_stock_products"`
	LowStockAlerts     []ProductResponse `json:"low_stock_alerts"`
	TotalCategories    int               `json:"total_categories"`

	TotalDebt          decimal.Decimal `json:"total_debt"`
	CustomersWithDebts int             `json:"customers_with_debts"`

	DateLabel string `json:"date_label"` // ej: "Febrero 2026"
}
