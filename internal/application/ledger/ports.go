package ledger

import (
	"context"

	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción de BD, con repositorios atados a esa tx.
// Si fn devuelve error se hace rollback completo; un fallo del commit se reporta como
// domain.TransactionFailure.
type TxRunner interface {
	RunLedger(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		customerRepo repository.CustomerRepository,
		saleRepo repository.SaleRepository,
		paymentRepo repository.PaymentRepository,
	) error) error
}

// ReportInvalidator descarta reportes cacheados tras una escritura en el ledger.
type ReportInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Actor usuario que ejecuta la operación (viene del JWT).
type Actor struct {
	UserID string
	Role   string
}

func (a Actor) IsAdmin() bool { return a.Role == "admin" }
