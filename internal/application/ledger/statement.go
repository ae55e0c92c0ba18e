package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
)

// StatementPDFGenerator genera el PDF del estado de cuenta de un cliente.
type StatementPDFGenerator interface {
	GenerateStatementPDF(ctx context.Context, account *dto.CustomerAccountResponse, generatedAt time.Time) ([]byte, error)
}

// StatementUseCase estado de cuenta descargable. Reusa CustomerAccount para los montos.
type StatementUseCase struct {
	accounts  *UseCase
	generator StatementPDFGenerator
}

func NewStatementUseCase(accounts *UseCase, generator StatementPDFGenerator) *StatementUseCase {
	return &StatementUseCase{accounts: accounts, generator: generator}
}

// DownloadStatement devuelve (pdf, nombre de archivo). NotFound si el cliente no existe.
func (uc *StatementUseCase) DownloadStatement(ctx context.Context, customerID string) ([]byte, string, error) {
	account, err := uc.accounts.CustomerAccount(ctx, customerID)
	if err != nil {
		return nil, "", err
	}
	now := uc.accounts.now()
	pdfBytes, err := uc.generator.GenerateStatementPDF(ctx, account, now)
	if err != nil {
		return nil, "", fmt.Errorf("estado de cuenta: %w", err)
	}
	filename := fmt.Sprintf("estado-cuenta-%s-%s.pdf", shortID(customerID), now.Format("20060102"))
	return pdfBytes, filename, nil
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
