package dto

import (
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// NewSaleResponse cabecera de venta con montos derivados (sin líneas ni abonos).
func NewSaleResponse(s *entity.Sale) SaleResponse {
	return SaleResponse{
		ID:              s.ID,
		SaleDate:        s.SaleDate,
		UserID:          s.UserID,
		SellerName:      s.SellerName,
		CustomerID:      s.CustomerID,
		CustomerName:    s.CustomerName,
		PaymentType:     s.PaymentType,
		PaymentStatus:   s.PaymentStatus,
		Notes:           s.Notes,
		TotalAmount:     s.TotalAmount,
		PaidAmount:      s.PaidAmount(),
		RemainingAmount: s.RemainingAmount(),
		IsFullyPaid:     s.IsFullyPaid(),
	}
}

// WithDetail agrega líneas, abonos, ganancia y costo a la respuesta.
func (r SaleResponse) WithDetail(items []*entity.SaleItem, payments []*entity.Payment) SaleResponse {
	profit, cost := decimal.Zero, decimal.Zero
	r.Items = make([]SaleItemResponse, 0, len(items))
	for _, it := range items {
		profit = profit.Add(it.Profit())
		cost = cost.Add(it.Cost())
		r.Items = append(r.Items, SaleItemResponse{
			ID:          it.ID,
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
			TotalPrice:  it.TotalPrice,
			Profit:      it.Profit(),
		})
	}
	r.TotalProfit = &profit
	r.CostAmount = &cost
	r.Payments = make([]PaymentResponse, 0, len(payments))
	for _, p := range payments {
		r.Payments = append(r.Payments, NewPaymentResponse(p))
	}
	return r
}

func NewPaymentResponse(p *entity.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		SaleID:      p.SaleID,
		Amount:      p.Amount,
		PaymentDate: p.PaymentDate,
		Method:      p.Method,
		Notes:       p.Notes,
		UserID:      p.UserID,
	}
}

func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:                p.ID,
		CategoryID:        p.CategoryID,
		Name:              p.Name,
		Description:       p.Description,
		WholesalePrice:    p.WholesalePrice,
		RetailPrice:       p.RetailPrice,
		StockQuantity:     p.StockQuantity,
		MinStockThreshold: p.MinStockThreshold,
		UnitType:          p.UnitType,
		UnitDescription:   p.UnitDescription,
		StockStatus:       p.StockStatus(),
		ProfitMargin:      p.ProfitMargin(),
		ProfitPercentage:  p.ProfitPercentage().Round(2),
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

func NewCustomerResponse(c *entity.Customer) CustomerResponse {
	return CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Phone:     c.Phone,
		Address:   c.Address,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt,
	}
}

func NewExpenseResponse(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Description: e.Description,
		Amount:      e.Amount,
		ExpenseType: e.ExpenseType,
		ExpenseDate: e.ExpenseDate,
		Category:    e.Category,
		Notes:       e.Notes,
		UserID:      e.UserID,
		CreatedAt:   e.CreatedAt,
	}
}

func NewCategoryResponse(c *entity.Category) CategoryResponse {
	return CategoryResponse{ID: c.ID, Name: c.Name, Description: c.Description, CreatedAt: c.CreatedAt}
}
