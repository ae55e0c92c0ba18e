package analytics

import (
	"context"
	"time"

	"github.com/jhoicas/ventas-ledger/internal/application/dto"
	"github.com/jhoicas/ventas-ledger/internal/domain"
	"github.com/jhoicas/ventas-ledger/internal/domain/entity"
	"github.com/jhoicas/ventas-ledger/internal/domain/repository"
)

// ExportUseCase exports planos (JSON) de catálogo, inventario y ventas.
// Un vendedor solo exporta sus propias ventas.
type ExportUseCase struct {
	repo repository.ExportRepository
	now  func() time.Time
}

func NewExportUseCase(repo repository.ExportRepository) *ExportUseCase {
	return &ExportUseCase{repo: repo, now: time.Now}
}

func (uc *ExportUseCase) ExportProducts(ctx context.Context) ([]dto.ProductExportRow, error) {
	inv, err := uc.repo.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductExportRow, 0, len(inv))
	for _, r := range inv {
		p := r.Product
		out = append(out, dto.ProductExportRow{
			ID:                p.ID,
			Name:              p.Name,
			Category:          r.CategoryName,
			WholesalePrice:    p.WholesalePrice,
			RetailPrice:       p.RetailPrice,
			ProfitMargin:      p.ProfitMargin(),
			ProfitPercentage:  p.ProfitPercentage().Round(2),
			StockQuantity:     p.StockQuantity,
			MinStockThreshold: p.MinStockThreshold,
			UnitType:          p.UnitType,
			UnitDescription:   p.UnitDescription,
			StockStatus:       p.StockStatus(),
			CreatedAt:         p.CreatedAt,
		})
	}
	return out, nil
}

func (uc *ExportUseCase) ExportInventory(ctx context.Context) ([]dto.InventoryExportRow, error) {
	inv, err := uc.repo.ListInventory(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.InventoryExportRow, 0, len(inv))
	for _, r := range inv {
		p := r.Product
		out = append(out, dto.InventoryExportRow{
			ProductID:         p.ID,
			ProductName:       p.Name,
			Category:          r.CategoryName,
			CurrentStock:      p.StockQuantity,
			MinStockThreshold: p.MinStockThreshold,
			UnitType:          p.UnitType,
			WholesalePrice:    p.WholesalePrice,
			RetailPrice:       p.RetailPrice,
			StockValue:        p.StockQuantity.Mul(p.WholesalePrice),
			StockStatus:       p.StockStatus(),
			TotalSold:         r.TotalSold,
			TotalRevenue:      r.TotalRevenue,
		})
	}
	return out, nil
}

// ExportSales una fila por línea de venta. Sin fechas no hay cota; el rol seller filtra por userID.
func (uc *ExportUseCase) ExportSales(ctx context.Context, userID, role string, in dto.ExportSalesRequest) ([]dto.SaleExportRow, error) {
	loc := uc.now().Location()
	var f repository.SaleLineFilter
	var err error
	if f.Start, err = optionalDate(in.StartDate, loc, "start_date"); err != nil {
		return nil, err
	}
	if f.End, err = optionalDate(in.EndDate, loc, "end_date"); err != nil {
		return nil, err
	}
	if f.Start != nil && f.End != nil && f.Start.After(*f.End) {
		return nil, domain.Invalid("start_date")
	}
	if role != entity.RoleAdmin {
		f.UserID = userID
	}

	lines, err := uc.repo.ListSaleLines(ctx, f)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SaleExportRow, 0, len(lines))
	for _, l := range lines {
		at := l.SaleDate.In(loc)
		out = append(out, dto.SaleExportRow{
			SaleID:          l.SaleID,
			SaleDate:        at.Format(dateLayout),
			SaleTime:        at.Format(time.TimeOnly),
			SellerName:      l.SellerName,
			SellerRole:      l.SellerRole,
			CustomerName:    l.CustomerName,
			PaymentType:     l.PaymentType,
			PaymentStatus:   l.PaymentStatus,
			ProductName:     l.ProductName,
			ProductCategory: l.CategoryName,
			Quantity:        l.Quantity,
			UnitPrice:       l.UnitPrice,
			TotalPrice:      l.TotalPrice,
			UnitType:        l.UnitType,
			SaleTotal:       l.SaleTotal,
			Notes:           l.Notes,
		})
	}
	return out, nil
}

func optionalDate(s string, loc *time.Location, field string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return nil, domain.Invalid(field)
	}
	return &t, nil
}
