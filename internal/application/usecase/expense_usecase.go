package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
	"github.com/jhoicas/ventas-ledger/pkg/logger"
)

const dateLayout = "2006-01-02"

// ExpenseUseCase CRUD de gastos. Cada escritura invalida los reportes (ganancia neta).
type ExpenseUseCase struct {
	repo  repository.ExpenseRepository
	cache reportCache
	now   func() time.Time
}

func NewExpenseUseCase(repo repository.ExpenseRepository, cache CacheInvalidator, log *logger.Logger) *ExpenseUseCase {
	return &ExpenseUseCase{repo: repo, cache: newReportCache(cache, log), now: time.Now}
}

// Create registra un gasto a nombre de userID.
func (uc *ExpenseUseCase) Create(ctx context.Context, userID string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e := &entity.Expense{
		ID:        uuid.New().String(),
		UserID:    userID,
		CreatedAt: uc.now(),
	}
	if err := uc.apply(e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Create(ctx, e); err != nil {
		return nil, err
	}
	uc.cache.invalidate(ctx)
	resp := dto.NewExpenseResponse(e)
	return &resp, nil
}

func (uc *ExpenseUseCase) Update(ctx context.Context, id string, in dto.ExpenseRequest) (*dto.ExpenseResponse, error) {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.NotFound("expense", id)
	}
	if err := uc.apply(e, in); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, e); err != nil {
		return nil, err
	}
	uc.cache.invalidate(ctx)
	resp := dto.NewExpenseResponse(e)
	return &resp, nil
}

func (uc *ExpenseUseCase) List(ctx context.Context, in dto.ExpenseListRequest) ([]dto.ExpenseResponse, error) {
	in.DefaultPage()
	filter := repository.ExpenseFilter{ExpenseType: in.ExpenseType, Limit: in.Limit, Offset: in.Offset}
	if in.StartDate != "" {
		t, err := time.Parse(dateLayout, in.StartDate)
		if err != nil {
			return nil, domain.Invalid("start_date")
		}
		filter.From = &t
	}
	if in.EndDate != "" {
		t, err := time.Parse(dateLayout, in.EndDate)
		if err != nil {
			return nil, domain.Invalid("end_date")
		}
		filter.To = &t
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ExpenseResponse, 0, len(list))
	for _, e := range list {
		out = append(out, dto.NewExpenseResponse(e))
	}
	return out, nil
}

func (uc *ExpenseUseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.NotFound("expense", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}

// apply valida y copia la entrada sobre e.
func (uc *ExpenseUseCase) apply(e *entity.Expense, in dto.ExpenseRequest) error {
	if !in.Amount.IsPositive() {
		return domain.Invalid("amount")
	}
	if !entity.IsValidExpenseType(in.ExpenseType) {
		return domain.Invalid("expense_type")
	}
	date := uc.now()
	if in.ExpenseDate != "" {
		t, err := time.Parse(dateLayout, in.ExpenseDate)
		if err != nil {
			return domain.Invalid("expense_date")
		}
		date = t
	}
	e.Description = in.Description
	e.Amount = in.Amount
	e.ExpenseType = in.ExpenseType
	e.ExpenseDate = date
	e.Category = in.Category
	e.Notes = in.Notes
	return nil
}
