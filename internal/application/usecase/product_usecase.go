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
	"github.com/shopspring/decimal"
)

// ProductUseCase casos de uso CRUD para productos. El stock solo baja por ventas
// y solo sube por AddStock.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	cache        reportCache
}

// NewProductUseCase construye el caso de uso. cache y log pueden ser nil.
func NewProductUseCase(repo repository.ProductRepository, categoryRepo repository.CategoryRepository, cache CacheInvalidator, log *logger.Logger) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, cache: newReportCache(cache, log)}
}

// Create crea un nuevo producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if err := validatePrices(in.WholesalePrice, in.RetailPrice); err != nil {
		return nil, err
	}
	if in.StockQuantity.IsNegative() {
		return nil, domain.Invalid("stock_quantity")
	}
	if in.MinStockThreshold.IsNegative() {
		return nil, domain.Invalid("min_stock_threshold")
	}
	if err := uc.checkCategory(ctx, in.CategoryID); err != nil {
		return nil, err
	}
	if in.UnitType == "" {
		in.UnitType = entity.UnitTypeWhole
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		CategoryID:        in.CategoryID,
		Name:              in.Name,
		Description:       in.Description,
		WholesalePrice:    in.WholesalePrice,
		RetailPrice:       in.RetailPrice,
		StockQuantity:     in.StockQuantity,
		MinStockThreshold: in.MinStockThreshold,
		UnitType:          in.UnitType,
		UnitDescription:   in.UnitDescription,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	uc.cache.invalidate(ctx)
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// Update actualiza datos y precios. Los precios nuevos no afectan ventas ya registradas.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Description != nil {
		product.Description = *in.Description
	}
	if in.CategoryID != nil {
		if err := uc.checkCategory(ctx, *in.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *in.CategoryID
	}
	if in.WholesalePrice != nil {
		product.WholesalePrice = *in.WholesalePrice
	}
	if in.RetailPrice != nil {
		product.RetailPrice = *in.RetailPrice
	}
	if err := validatePrices(product.WholesalePrice, product.RetailPrice); err != nil {
		return nil, err
	}
	if in.MinStockThreshold != nil {
		if in.MinStockThreshold.IsNegative() {
			return nil, domain.Invalid("min_stock_threshold")
		}
		product.MinStockThreshold = *in.MinStockThreshold
	}
	if in.UnitType != nil {
		product.UnitType = *in.UnitType
	}
	if in.UnitDescription != nil {
		product.UnitDescription = *in.UnitDescription
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	uc.cache.invalidate(ctx)
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// AddStock suma qty al stock (reposición).
func (uc *ProductUseCase) AddStock(ctx context.Context, id string, qty decimal.Decimal) (*dto.ProductResponse, error) {
	if !qty.IsPositive() {
		return nil, domain.Invalid("quantity")
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("product", id)
	}
	if err := uc.repo.IncrementStock(ctx, id, qty); err != nil {
		return nil, err
	}
	product.StockQuantity = product.StockQuantity.Add(qty)
	uc.cache.invalidate(ctx)
	resp := dto.NewProductResponse(product)
	return &resp, nil
}

// List lista productos con filtros y paginación.
func (uc *ProductUseCase) List(ctx context.Context, in dto.ProductListRequest) (*dto.ProductListResponse, error) {
	in.DefaultPage()
	list, err := uc.repo.List(ctx, repository.ProductFilter{
		CategoryID: in.CategoryID,
		Search:     in.Search,
		LowStock:   in.LowStock,
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.NewProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: len(items)},
	}, nil
}

// Delete elimina un producto que ninguna venta referencia.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.NotFound("product", id)
	}
	used, err := uc.repo.IsReferenced(ctx, id)
	if err != nil {
		return err
	}
	if used {
		return domain.InUse("product", id)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	uc.cache.invalidate(ctx)
	return nil
}

func (uc *ProductUseCase) checkCategory(ctx context.Context, categoryID string) error {
	if categoryID == "" {
		return nil
	}
	c, err := uc.categoryRepo.GetByID(ctx, categoryID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.NotFound("category", categoryID)
	}
	return nil
}

func validatePrices(wholesale, retail decimal.Decimal) error {
	if wholesale.IsNegative() {
		return domain.Invalid("wholesale_price")
	}
	if retail.IsNegative() {
		return domain.Invalid("retail_price")
	}
	return nil
}
