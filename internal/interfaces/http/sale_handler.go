package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/application/ledger"
)

// salesService lo implementa *ledger.UseCase.
type salesService interface {
	CreateSale(ctx context.Context, actor ledger.Actor, in dto.CreateSaleRequest) (*dto.SaleResponse, error)
	GetSale(ctx context.Context, actor ledger.Actor, saleID string) (*dto.SaleResponse, error)
	ListSales(ctx context.Context, actor ledger.Actor, in dto.SaleListRequest) (*dto.SaleListResponse, error)
	RecordPayment(ctx context.Context, actor ledger.Actor, saleID string, in dto.RecordPaymentRequest) (*dto.RecordPaymentResponse, error)
	AllocatePayment(ctx context.Context, actor ledger.Actor, in dto.QuickPaymentRequest) (*dto.QuickPaymentResponse, error)
}

// SaleHandler ventas y pagos.
type SaleHandler struct {
	uc salesService
}

func NewSaleHandler(uc salesService) *SaleHandler {
	return &SaleHandler{uc: uc}
}

// Create godoc
// @Summary      Registrar venta
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Líneas, tipo de pago y cliente"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.CreateSale(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar ventas (más reciente primero)
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        limit        query  int     false  "Límite"  default(20)
// @Param        offset       query  int     false  "Offset"  default(0)
// @Param        customer_id  query  string  false  "Cliente"
// @Param        start_date   query  string  false  "YYYY-MM-DD"
// @Param        end_date     query  string  false  "YYYY-MM-DD"
// @Success      200  {object}  dto.SaleListResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	var in dto.SaleListRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ListSales(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByID godoc
// @Summary      Detalle de venta con líneas, abonos y ganancia
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c, "sale")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.GetSale(c.UserContext(), actorFrom(c), id)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// RecordPayment godoc
// @Summary      Registrar abono a una venta
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "ID de la venta"
// @Param        body  body  dto.RecordPaymentRequest  true  "Monto y método"
// @Success      201   {object}  dto.RecordPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales/{id}/payments [post]
func (h *SaleHandler) RecordPayment(c *fiber.Ctx) error {
	var in dto.RecordPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	id, err := pathID(c, "sale")
	if err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.RecordPayment(c.UserContext(), actorFrom(c), id, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// QuickPayment godoc
// @Summary      Pago rápido: reparte el monto entre las ventas abiertas del cliente (más antigua primero)
// @Tags         payments
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.QuickPaymentRequest  true  "Cliente y monto"
// @Success      200   {object}  dto.QuickPaymentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/payments/quick [post]
func (h *SaleHandler) QuickPayment(c *fiber.Ctx) error {
	var in dto.QuickPaymentRequest
	if ok, err := parseBody(c, &in); !ok {
		return err
	}
	out, err := h.uc.AllocatePayment(c.UserContext(), actorFrom(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
