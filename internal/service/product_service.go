package service

import (
	"context"
	"errors"

	"tindapos/internal/audit"
	"tindapos/internal/dto"
	"tindapos/internal/model"
	"tindapos/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PriceCache caches public price lookups keyed by SKU. Implementations are
// best-effort: a miss or a failed write only costs a database read.
type PriceCache interface {
	Get(ctx context.Context, sku string) (*dto.PriceCheckResponse, bool)
	Set(ctx context.Context, sku string, resp *dto.PriceCheckResponse)
	Invalidate(ctx context.Context, sku string)
}

type ProductService interface {
	Create(ctx context.Context, actorID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error)
	Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error)
	List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error)
	Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error)
	Deactivate(ctx context.Context, actorID, id uuid.UUID) error
	PriceBySKU(ctx context.Context, sku string) (*dto.PriceCheckResponse, error)

	CreateCategory(ctx context.Context, name string, description *string) (*model.Category, error)
	ListCategories(ctx context.Context) ([]model.Category, error)
}

type productService struct {
	products   repository.ProductRepository
	categories repository.CategoryRepository
	cache      PriceCache
	sink       audit.EventSink
}

func NewProductService(products repository.ProductRepository, categories repository.CategoryRepository, cache PriceCache, sink audit.EventSink) ProductService {
	return &productService{products: products, categories: categories, cache: cache, sink: sink}
}

func (s *productService) Create(ctx context.Context, actorID uuid.UUID, req dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if _, err := s.products.FindBySKU(ctx, req.SKU); err == nil {
		return nil, ErrSKUTaken
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	categoryID, err := uuid.Parse(req.CategoryID)
	if err != nil {
		return nil, ErrCategoryNotFound
	}
	if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	unit := req.Unit
	if unit == "" {
		unit = "pc"
	}
	threshold := req.LowStockThreshold
	if threshold == 0 {
		threshold = 5
	}

	product := &model.Product{
		CategoryID:        categoryID,
		Name:              req.Name,
		SKU:               req.SKU,
		Description:       req.Description,
		CostPrice:         req.CostPrice,
		SellingPrice:      req.SellingPrice,
		StockQuantity:     req.StockQuantity,
		LowStockThreshold: threshold,
		Unit:              unit,
		IsActive:          true,
	}
	if err := s.products.Create(ctx, product); err != nil {
		return nil, err
	}

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleInventory, "product_created",
		"product created: "+product.Name, &actorID,
		map[string]interface{}{"product_id": product.ID.String(), "sku": product.SKU})

	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Get(ctx context.Context, id uuid.UUID) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}
	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) List(ctx context.Context, filter dto.ProductFilter) (*dto.ProductListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 20
	}
	products, total, err := s.products.List(ctx, filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.ProductListResponse{
		Data:  make([]dto.ProductResponse, 0, len(products)),
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}
	for i := range products {
		resp.Data = append(resp.Data, toProductResponse(&products[i]))
	}
	return resp, nil
}

func (s *productService) Update(ctx context.Context, actorID, id uuid.UUID, req dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	priceChanged := false
	if req.Name != nil {
		product.Name = *req.Name
	}
	if req.Description != nil {
		product.Description = req.Description
	}
	if req.CategoryID != nil {
		categoryID, err := uuid.Parse(*req.CategoryID)
		if err != nil {
			return nil, ErrCategoryNotFound
		}
		if _, err := s.categories.FindByID(ctx, categoryID); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrCategoryNotFound
			}
			return nil, err
		}
		product.CategoryID = categoryID
	}
	if req.CostPrice != nil {
		product.CostPrice = *req.CostPrice
	}
	if req.SellingPrice != nil && !req.SellingPrice.Equal(product.SellingPrice) {
		s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleInventory, "price_updated",
			"selling price updated for "+product.Name, &actorID,
			map[string]interface{}{
				"product_id": product.ID.String(),
				"old_price":  product.SellingPrice.String(),
				"new_price":  req.SellingPrice.String(),
			})
		product.SellingPrice = *req.SellingPrice
		priceChanged = true
	}
	if req.LowStockThreshold != nil {
		product.LowStockThreshold = *req.LowStockThreshold
	}
	if req.Unit != nil {
		product.Unit = *req.Unit
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, err
	}
	if priceChanged && s.cache != nil {
		s.cache.Invalidate(ctx, product.SKU)
	}

	resp := toProductResponse(product)
	return &resp, nil
}

func (s *productService) Deactivate(ctx context.Context, actorID, id uuid.UUID) error {
	product, err := s.products.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return err
	}
	if err := s.products.SoftDelete(ctx, id); err != nil {
		return err
	}
	if s.cache != nil {
		s.cache.Invalidate(ctx, product.SKU)
	}

	s.sink.Emit(ctx, audit.LevelAudit, audit.ModuleInventory, "product_deactivated",
		"product deactivated: "+product.Name, &actorID,
		map[string]interface{}{"product_id": id.String()})
	return nil
}

func (s *productService) PriceBySKU(ctx context.Context, sku string) (*dto.PriceCheckResponse, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, sku); ok {
			return cached, nil
		}
	}

	product, err := s.products.FindBySKU(ctx, sku)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, err
	}

	resp := &dto.PriceCheckResponse{
		Name:         product.Name,
		SKU:          product.SKU,
		SellingPrice: product.SellingPrice,
		InStock:      product.StockQuantity > 0,
	}
	if s.cache != nil {
		s.cache.Set(ctx, sku, resp)
	}
	return resp, nil
}

func (s *productService) CreateCategory(ctx context.Context, name string, description *string) (*model.Category, error) {
	category := &model.Category{Name: name, Description: description}
	if err := s.categories.Create(ctx, category); err != nil {
		return nil, err
	}
	return category, nil
}

func (s *productService) ListCategories(ctx context.Context) ([]model.Category, error) {
	return s.categories.List(ctx)
}

func toProductResponse(p *model.Product) dto.ProductResponse {
	resp := dto.ProductResponse{
		ID:                p.ID.String(),
		Name:              p.Name,
		SKU:               p.SKU,
		CategoryID:        p.CategoryID.String(),
		Description:       p.Description,
		CostPrice:         p.CostPrice,
		SellingPrice:      p.SellingPrice,
		StockQuantity:     p.StockQuantity,
		LowStockThreshold: p.LowStockThreshold,
		Unit:              p.Unit,
		IsActive:          p.IsActive,
	}
	if p.Category != nil {
		resp.Category = p.Category.Name
	}
	return resp
}
