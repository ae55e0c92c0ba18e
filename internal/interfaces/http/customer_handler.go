package http

import (
	"context"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
)

type customerService interface {
	Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error)
	GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error)
	Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error)
	List(ctx context.Context, search string, page dto.PageRequest) ([]dto.CustomerResponse, error)
	Delete(ctx context.Context, id string) error
}

type accountService interface {
	CustomerAccount(ctx context.Context, customerID string) (*dto.CustomerAccountResponse, error)
}

type statementService interface {
	DownloadStatement(ctx context.Context, customerID string) ([]byte, string, error)
}

// CustomerHandler clientes, su cuenta y el estado de cuenta en PDF.
type CustomerHandler struct {
	uc         customerService
	accounts   accountService
	statements statementService
}

func NewCustomerHandler(uc customerService, accounts accountService, statements statementService) *CustomerHandler {
	return &CustomerHandler{uc: uc, accounts: accounts, statements: statements}
}

// customerListQuery filtros de GET /api/customers.
type customerListQuery struct {
	dto.PageRequest
	Search string `query:"search"`
}

// Create godoc
// @Summary      Crear cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.CustomerResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar clientes
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Nombre o teléfono"
// @Success      200     {array}  dto.CustomerResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	var q customerListQuery
	if ok, err := parseQuery(c, &q); !ok {
		return err
	}
	out, err := h.uc.List(c.UserContext(), q.Search, q.PageRequest)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Obtener cliente
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "customer")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetByID(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar cliente
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string               true  "ID del cliente"
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      200   {object}  dto.CustomerResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [put]
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c, "customer")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar cliente (solo si no tiene ventas)
// @Tags         customers
// @Security     Bearer
// @Param        id   path  string  true  "ID del cliente"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [delete]
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, err := pathID(c, "customer")
	if err != nil {
		return writeError(c, err)
	}
	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Account godoc
// @Summary      Cuenta del cliente: deuda total y ventas
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerAccountResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/account [get]
func (h *CustomerHandler) Account(c *fiber.Ctx) error {
	id, err := pathID(c, "customer")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.accounts.CustomerAccount(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Statement godoc
// @Summary      Estado de cuenta en PDF
// @Tags         customers
// @Security     Bearer
// @Produce      application/pdf
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {file}  binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/statement.pdf [get]
func (h *CustomerHandler) Statement(c *fiber.Ctx) error {
	id, err := pathID(c, "customer")
	if err != nil {
		return writeError(c, err)
	}
	pdfBytes, filename, err := h.statements.DownloadStatement(c.UserContext(), id)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}
