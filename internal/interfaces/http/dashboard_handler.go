package http

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/ventas-ledger/internal/application/dto"
)

// reportService lo implementa *analytics.ReportUseCase.
type reportService interface {
	GetReport(ctx context.Context, req dto.ReportRequest) (*dto.ReportDTO, error)
	GetDebtsReport(ctx context.Context) (*dto.DebtsReportDTO, error)
	GetDashboard(ctx context.Context) (*dto.DashboardSummaryDTO, error)
}

// DashboardHandler reportes de solo lectura: rango, deudas y dashboard.
type DashboardHandler struct {
	uc reportService
}

// NewDashboardHandler construye el handler.
func NewDashboardHandler(uc reportService) *DashboardHandler {
	return &DashboardHandler{uc: uc}
}

// GetReport godoc
// @Summary      Reporte de ventas, ganancia, gastos y deudas en un rango
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Param        start_date  query  string  false  "YYYY-MM-DD (default: primer día del mes)"
// @Param        end_date    query  string  false  "YYYY-MM-DD (default: hoy)"
// @Success      200  {object}  dto.ReportDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/reports [get]
func (h *DashboardHandler) GetReport(c *fiber.Ctx) error {
	var in dto.ReportRequest
	if ok, err := parseQuery(c, &in); !ok {
		return err
	}
	out, err := h.uc.GetReport(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetDebts godoc
// @Summary      Clientes con deuda y sus ventas abiertas
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.DebtsReportDTO
// @Router       /api/reports/debts [get]
func (h *DashboardHandler) GetDebts(c *fiber.Ctx) error {
	out, err := h.uc.GetDebtsReport(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetSummary devuelve el resumen del día y del mes en curso.
// GET /api/dashboard
//
// No requiere parámetros; las fechas se calculan en el servidor.
func (h *DashboardHandler) GetSummary(c *fiber.Ctx) error {
	out, err := h.uc.GetDashboard(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
