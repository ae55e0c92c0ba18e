package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
)

// GetSale detalle de una venta con líneas, abonos y ganancia. Un vendedor solo ve sus ventas.
func (uc *UseCase) GetSale(ctx context.Context, actor Actor, saleID string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, saleID)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.NotFound("sale", saleID)
	}
	if !actor.IsAdmin() && sale.UserID != actor.UserID {
		return nil, domain.ErrForbidden
	}
	items, err := uc.saleRepo.ListItems(ctx, saleID)
	if err != nil {
		return nil, err
	}
	payments, err := uc.paymentRepo.ListBySale(ctx, saleID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewSaleResponse(sale).WithDetail(items, payments)
	return &resp, nil
}

// ListSales lista paginada, más reciente primero. Los vendedores solo ven sus ventas.
func (uc *UseCase) ListSales(ctx context.Context, actor Actor, in dto.SaleListRequest) (*dto.SaleListResponse, error) {
	in.DefaultPage()
	filter := repository.SaleFilter{
		CustomerID: in.CustomerID,
		Limit:      in.Limit,
		Offset:     in.Offset,
	}
	if !actor.IsAdmin() {
		filter.UserID = actor.UserID
	}
	var err error
	if filter.From, err = parseOptionalDate(in.StartDate, "start_date"); err != nil {
		return nil, err
	}
	if filter.To, err = parseOptionalDate(in.EndDate, "end_date"); err != nil {
		return nil, err
	}

	sales, total, err := uc.saleRepo.List(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("listar ventas: %w", err)
	}
	out := &dto.SaleListResponse{
		Items: make([]dto.SaleResponse, 0, len(sales)),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}
	for _, s := range sales {
		out.Items = append(out.Items, dto.NewSaleResponse(s))
	}
	return out, nil
}

// CustomerAccount estado de cuenta: cliente, deuda total y sus ventas (más reciente primero).
func (uc *UseCase) CustomerAccount(ctx context.Context, customerID string) (*dto.CustomerAccountResponse, error) {
	customer, err := uc.customerRepo.GetByID(ctx, customerID)
	if err != nil {
		return nil, err
	}
	if customer == nil {
		return nil, domain.NotFound("customer", customerID)
	}
	debt, err := uc.saleRepo.CustomerDebt(ctx, customerID)
	if err != nil {
		return nil, err
	}
	sales, err := uc.saleRepo.ListByCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}
	c := dto.NewCustomerResponse(customer)
	c.TotalDebt = debt
	out := &dto.CustomerAccountResponse{
		Customer:  c,
		TotalDebt: debt,
		Sales:     make([]dto.SaleResponse, 0, len(sales)),
	}
	for _, s := range sales {
		out.Sales = append(out.Sales, dto.NewSaleResponse(s))
	}
	return out, nil
}

func parseOptionalDate(s, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		return nil, domain.Invalid(field)
	}
	return &t, nil
}
