package ledger

import (
	"context"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/ledger"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
)

// RecordPayment registra un abono contra una venta. No es idempotente: dos llamadas
// iguales crean dos pagos (si el saldo lo permite).
func (uc *UseCase) RecordPayment(ctx context.Context, actor Actor, saleID string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error) {
	if saleID == "" {
		return nil, domain.Invalid("sale_id")
	}
	if !in.Amount.IsPositive() {
		return nil, domain.Invalid("amount")
	}
	method := in.Method
	if method == "" {
		method = entity.PaymentMethodCash
	}

	var pay *entity.Payment
	var sale *entity.Sale
	err := uc.tx.RunLedger(ctx, func(
		_ repository.ProductRepository,
		_ repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error {
		var err error
		sale, err = saleRepo.GetForUpdate(ctx, saleID)
		if err != nil {
			return err
		}
		if sale == nil || (in.CustomerID != "" && sale.CustomerID != in.CustomerID) {
			return domain.NotFound("sale", saleID)
		}

		// Con la fila bloqueada, releer lo abonado.
		paid, err := paymentRepo.SumBySale(ctx, saleID)
		if err != nil {
			return err
		}
		sale.PaymentsTotal = paid
		remaining := sale.RemainingAmount()
		if in.Amount.GreaterThan(remaining) {
			return domain.OverpaymentRejected(saleID, in.Amount, remaining)
		}

		pay = &entity.Payment{
			ID:          uuid.New().String(),
			SaleID:      saleID,
			Amount:      in.Amount,
			PaymentDate: uc.now(),
			Method:      method,
			Notes:       in.Notes,
			UserID:      actor.UserID,
		}
		if err := paymentRepo.Create(ctx, pay); err != nil {
			return err
		}
		sale.PaymentsTotal = paid.Add(in.Amount)
		sale.PaymentStatus = ledger.StatusFor(sale.TotalAmount, sale.PaymentsTotal)
		return saleRepo.UpdatePaymentStatus(ctx, saleID, sale.PaymentStatus)
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("sale_id", saleID).
		Str("payment_id", pay.ID).
		Str("amount", pay.Amount.String()).
		Str("status", sale.PaymentStatus).
		Msg("abono registrado")
	uc.afterWrite(ctx)

	return &dto.RecordPaymentResponse{
		Payment:         dto.NewPaymentResponse(pay),
		PaymentStatus:   sale.PaymentStatus,
		RemainingAmount: sale.RemainingAmount(),
	}, nil
}
