// Package ledger contiene los casos de uso del libro de ventas: registrar ventas,
// abonos y pagos rápidos, y las lecturas con montos derivados.
package ledger

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

// Nota usada en el abono inicial de una venta a crédito.
const initialDepositNote = "initial deposit"

// UseCase casos de uso del ledger.
type UseCase struct {
	tx           TxRunner
	saleRepo     repository.SaleRepository
	paymentRepo  repository.PaymentRepository
	customerRepo repository.CustomerRepository
	invalidator  ReportInvalidator
	log          *logger.Logger
	now          func() time.Time
}

// NewUseCase construye el caso de uso. Los repositorios sueltos se usan solo para lecturas;
// toda escritura pasa por tx. invalidator puede ser nil.
func NewUseCase(
	tx TxRunner,
	saleRepo repository.SaleRepository,
	paymentRepo repository.PaymentRepository,
	customerRepo repository.CustomerRepository,
	invalidator ReportInvalidator,
	log *logger.Logger,
) *UseCase {
	return &UseCase{
		tx:           tx,
		saleRepo:     saleRepo,
		paymentRepo:  paymentRepo,
		customerRepo: customerRepo,
		invalidator:  invalidator,
		log:          log,
		now:          time.Now,
	}
}

// WithClock reemplaza el reloj (tests).
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	uc.now = now
	return uc
}

// afterWrite invalida el caché de reportes. Un fallo aquí no revierte la escritura ya confirmada.
func (uc *UseCase) afterWrite(ctx context.Context) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx); err != nil {
		uc.log.Warn().Err(err).Msg("no se pudo invalidar el caché de reportes")
	}
}
