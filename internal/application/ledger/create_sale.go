package ledger

import (
	"context"
	"fmt"
	"sort"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/ledger"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// CreateSale registra una venta completa en una sola transacción:
//  1. bloquea los productos (orden por id) y valida stock por producto,
//  2. inserta cabecera y líneas con el precio vigente como snapshot,
//  3. descuenta stock,
//  4. a crédito con abono inicial > 0: inserta un Payment.
//
// Cualquier error revierte todo; no queda venta parcial.
func (uc *UseCase) CreateSale(ctx context.Context, actor Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if err := validateSale(in); err != nil {
		return nil, err
	}
	isCredit := in.PaymentType == entity.PaymentTypeCredit

	// Cantidad total pedida por producto (un producto puede repetirse en varias líneas).
	requested := make(map[string]decimal.Decimal)
	for _, it := range in.Items {
		requested[it.ProductID] = requested[it.ProductID].Add(it.Quantity)
	}
	productIDs := make([]string, 0, len(requested))
	for id := range requested {
		productIDs = append(productIDs, id)
	}
	sort.Strings(productIDs)

	now := uc.now()
	sale := &entity.Sale{
		ID:          uuid.New().String(),
		SaleDate:    now,
		UserID:      actor.UserID,
		PaymentType: in.PaymentType,
		Notes:       in.Notes,
	}
	if isCredit {
		sale.CustomerID = in.CustomerID
	}
	var items []*entity.SaleItem
	var payments []*entity.Payment

	err := uc.tx.RunLedger(ctx, func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		if isCredit {
			customer, err := customerRepo.GetByID(ctx, in.CustomerID)
			if err != nil {
				return err
			}
			if customer == nil {
				return domain.NotFound("customer", in.CustomerID)
			}
			sale.CustomerName = customer.Name
		}

		products := make(map[string]*entity.Product, len(productIDs))
		for _, id := range productIDs {
			p, err := productRepo.GetForUpdate(ctx, id)
			if err != nil {
				return err
			}
			if p == nil {
				return domain.NotFound("product", id)
			}
			if requested[id].GreaterThan(p.StockQuantity) {
				return domain.InsufficientStock(id, requested[id], p.StockQuantity)
			}
			products[id] = p
		}

		total := decimal.Zero
		items = make([]*entity.SaleItem, 0, len(in.Items))
		for _, it := range in.Items {
			p := products[it.ProductID]
			price := p.RetailPrice
			if it.UnitPrice != nil {
				price = *it.UnitPrice
			}
			item := entity.NewSaleItem(uuid.New().String(), sale.ID, p.ID, it.Quantity, price)
			item.ProductName = p.Name
			item.WholesalePrice = p.WholesalePrice
			items = append(items, item)
			total = total.Add(item.TotalPrice)
		}
		sale.TotalAmount = total

		if isCredit {
			if in.InitialPaidAmount.GreaterThan(total) {
				return domain.OverpaymentRejected(sale.ID, in.InitialPaidAmount, total)
			}
			sale.PaymentStatus = ledger.StatusFor(total, in.InitialPaidAmount)
			sale.PaymentsTotal = in.InitialPaidAmount
		} else {
			sale.PaymentStatus = entity.PaymentStatusPaid
		}

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, item := range items {
			if err := saleRepo.CreateItem(ctx, item); err != nil {
				return err
			}
		}
		for _, id := range productIDs {
			if err := productRepo.DecrementStock(ctx, id, requested[id]); err != nil {
				return err
			}
		}

		if isCredit && in.InitialPaidAmount.IsPositive() {
			pay := &entity.Payment{
				ID:          uuid.New().String(),
				SaleID:      sale.ID,
				Amount:      in.InitialPaidAmount,
				PaymentDate: now,
				Method:      entity.PaymentMethodCash,
				Notes:       initialDepositNote,
				UserID:      actor.UserID,
			}
			if err := paymentRepo.Create(ctx, pay); err != nil {
				return err
			}
			payments = append(payments, pay)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", sale.ID).
		Str("payment_type", sale.PaymentType).
		Str("status", sale.PaymentStatus).
		Str("total", sale.TotalAmount.String()).
		Int("items", len(items)).
		Msg("venta registrada")
	uc.afterWrite(ctx)

	resp := dto.NewSaleResponse(sale).WithDetail(items, payments)
	return &resp, nil
}

// validateSale validaciones previas a cualquier escritura.
func validateSale(in dto.CreateSaleRequest) error {
	if len(in.Items) == 0 {
		return domain.EmptySale()
	}
	switch in.PaymentType {
	case entity.PaymentTypeCash:
	case entity.PaymentTypeCredit:
		if in.CustomerID == "" {
			return domain.MissingCustomerForCredit()
		}
	default:
		return domain.Invalid("payment_type")
	}
	if in.InitialPaidAmount.IsNegative() {
		return domain.Invalid("initial_paid_amount")
	}
	for i, it := range in.Items {
		if it.ProductID == "" {
			return domain.Invalid(fmt.Sprintf("items[%d].product_id", i))
		}
		if !it.Quantity.IsPositive() {
			return domain.Invalid(fmt.Sprintf("items[%d].quantity", i))
		}
		if it.UnitPrice != nil && it.UnitPrice.IsNegative() {
			return domain.Invalid(fmt.Sprintf("items[%d].unit_price", i))
		}
	}
	return nil
}
