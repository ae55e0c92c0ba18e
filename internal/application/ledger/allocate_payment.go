package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/ledger"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/shopspring/decimal"
)

// AllocatePayment pago rápido: reparte un monto sobre las ventas abiertas del cliente,
// la más antigua primero. El sobrante se devuelve y no se guarda.
func (uc *UseCase) AllocatePayment(ctx context.Context, actor Actor, in dto.QuickPaymentRequest) (*dto.QuickPaymentResponse, error) {
	if in.CustomerID == "" {
		return nil, domain.Invalid("customer_id")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount")
	}
	method := in.Method
	if method == "" {
		method = entity.PaymentMethodCash
	}

	var allocations []ledger.Allocation
	var remainder decimal.Decimal
	err := uc.tx.RunLedger(ctx, func(
		_ repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		customer, err := customerRepo.GetByID(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		if customer == nil {
			return domain.NotFound("customer", in.CustomerID)
		}

		sales, err := saleRepo.ListOpenByCustomerForUpdate(ctx, in.CustomerID)
		if err != nil {
			return err
		}
		open := make([]ledger.OpenSale, 0, len(sales))
		byID := make(map[string]*entity.Sale, len(sales))
		owed := decimal.Zero
		for _, s := range sales {
			paid, err := paymentRepo.SumBySale(ctx, s.ID)
			if err != nil {
				return err
			}
			s.PaymentsTotal = paid
			byID[s.ID] = s
			o := ledger.FromSale(s)
			owed = owed.Add(o.Due())
			open = append(open, o)
		}
		if !owed.IsPositive() {
			return domain.NoOutstandingDebt(in.CustomerID)
		}

		allocations, remainder = ledger.Allocate(open, in.Amount)
		now := uc.now()
		for _, a := range allocations {
			s := byID[a.SaleID]
			// Revalidar el saldo justo antes de insertar.
			paid, err := paymentRepo.SumBySale(ctx, s.ID)
			if err != nil {
				return err
			}
			due := ledger.Remaining(s.TotalAmount, paid)
			if a.AmountApplied.GreaterThan(due) {
				return domain.OverpaymentRejected(s.ID, a.AmountApplied, due)
			}
			pay := &entity.Payment{
				ID:          uuid.New().String(),
				SaleID:      s.ID,
				Amount:      a.AmountApplied,
				PaymentDate: now,
				Method:      method,
				Notes:       in.Notes,
				UserID:      actor.UserID,
			}
			if err := paymentRepo.Create(ctx, pay); err != nil {
				return err
			}
			if err := saleRepo.UpdatePaymentStatus(ctx, s.ID, ledger.StatusFor(s.TotalAmount, paid.Add(a.AmountApplied))); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("customer_id", in.CustomerID).
		Str("amount", in.Amount.String()).
		Int("sales_touched", len(allocations)).
		Str("remainder", remainder.String()).
		Msg("pago rápido aplicado")
	uc.afterWrite(ctx)

	resp := &dto.QuickPaymentResponse{
		CustomerID:           in.CustomerID,
		Allocations:          make([]dto.AllocationResponse, 0, len(allocations)),
		UnallocatedRemainder: remainder,
	}
	for _, a := range allocations {
		resp.Allocations = append(resp.Allocations, dto.AllocationResponse{
			SaleID:        a.SaleID,
			AmountApplied: a.AmountApplied,
			NewStatus:     a.NewStatus,
		})
	}
	return resp, nil
}
