package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
)

// errorCodes código estable por error base.
var errorCodes = []struct {
	err  error
	code string
}{
	{domain.ErrInsufficientStock, "INSUFFICIENT_STOCK"},
	{domain.ErrOverpayment, "OVERPAYMENT"},
	{domain.ErrNoOutstandingDebt, "NO_OUTSTANDING_DEBT"},
	{domain.ErrInUse, "IN_USE"},
	{domain.ErrEmptySale, "EMPTY_SALE"},
	{domain.ErrMissingCustomerForCredit, "MISSING_CUSTOMER_FOR_CREDIT"},
	{domain.ErrTransaction, "TRANSACTION_FAILED"},
	{domain.ErrInvalidInput, "VALIDATION"},
	{domain.ErrNotFound, "NOT_FOUND"},
	{domain.ErrDuplicate, "DUPLICATE"},
	{domain.ErrConflict, "CONFLICT"},
}

func codeFor(err error) string {
	for _, ec := range errorCodes {
		if errors.Is(err, ec.err) {
			return ec.code
		}
	}
	return "INTERNAL"
}

// writeError traduce un error de dominio a {code, message, details} con su status HTTP.
func writeError(c *fiber.Ctx, err error) error {
	var de *domain.Error
	if errors.As(err, &de) {
		status := fiber.StatusInternalServerError
		switch de.Kind {
		case domain.KindValidation:
			status = fiber.StatusBadRequest
		case domain.KindConflict:
			status = fiber.StatusConflict
		case domain.KindNotFound:
			status = fiber.StatusNotFound
		}
		resp := dto.ErrorResponse{Code: codeFor(err), Message: de.Error(), Details: details(de)}
		if de.Kind == domain.KindTransaction {
			resp.Message = domain.ErrTransaction.Error()
		}
		return c.Status(status).JSON(resp)
	}

	switch {
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "credenciales inválidas"})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: codeFor(err), Message: err.Error()})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno del servidor"})
}

func details(de *domain.Error) map[string]any {
	d := map[string]any{}
	if de.Resource != "" {
		d["resource"] = de.Resource
	}
	if de.ID != "" {
		d[de.Resource+"_id"] = de.ID
	}
	if de.Field != "" {
		d["field"] = de.Field
	}
	switch {
	case errors.Is(de, domain.ErrInsufficientStock):
		d["requested"] = de.Requested.String()
		d["available"] = de.Available.String()
	case errors.Is(de, domain.ErrOverpayment):
		d["requested"] = de.Requested.String()
		d["remaining"] = de.Available.String()
	}
	if len(d) == 0 {
		return nil
	}
	return d
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
