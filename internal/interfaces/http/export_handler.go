package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
)

type exportService interface {
	ExportProducts(ctx context.Context) ([]dto.ProductExportRow, error)
	ExportInventory(ctx context.Context) ([]dto.InventoryExportRow, error)
	ExportSales(ctx context.Context, userID, role string, in dto.ExportSalesRequest) ([]dto.SaleExportRow, error)
}

// ExportHandler exports JSON planos para hojas de cálculo.
type ExportHandler struct {
	uc exportService
}

func NewExportHandler(uc exportService) *ExportHandler {
	return &ExportHandler{uc: uc}
}

// Products GET /api/export/products
func (h *ExportHandler) Products(c *fiber.Ctx) error {
	out, err := h.uc.ExportProducts(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Inventory GET /api/export/inventory
func (h *ExportHandler) Inventory(c *fiber.Ctx) error {
	out, err := h.uc.ExportInventory(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Sales godoc
// @Summary      Exportar líneas de venta (un vendedor solo ve las suyas)
// @Tags         export
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD"
// @Param        end_date    query  string  false  "YYYY-MM-DD"
// @Success      200  {array}   dto.SaleExportRow
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/export/sales [get]
func (h *ExportHandler) Sales(c *fiber.Ctx) error {
	var in dto.ExportSalesRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.ExportSales(c.UserContext(), GetUserID(c), GetRole(c), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
