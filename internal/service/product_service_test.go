package service

import (
	"context"
	"sync"
	"testing"

	"tindapos/internal/dto"
	"tindapos/internal/model"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memPriceCache struct {
	mu      sync.Mutex
	entries map[string]*dto.PriceCheckResponse
}

func newMemPriceCache() *memPriceCache {
	return &memPriceCache{entries: make(map[string]*dto.PriceCheckResponse)}
}

func (c *memPriceCache) Get(_ context.Context, sku string) (*dto.PriceCheckResponse, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	r, ok := c.entries[sku]
	return r, ok
}

func (c *memPriceCache) Set(_ context.Context, sku string, resp *dto.PriceCheckResponse) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[sku] = resp
}

func (c *memPriceCache) Invalidate(_ context.Context, sku string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, sku)
}

var _ PriceCache = (*memPriceCache)(nil)

func TestPriceBySKU(t *testing.T) {
	t.Run("caches lookups and serves the cached copy", func(t *testing.T) {
		p := testProduct("Milk 1L", "95.00", 6, 2)
		products := newStubProductRepo(p)
		cache := newMemPriceCache()
		svc := NewProductService(products, &stubCategoryRepo{}, cache, &recordingSink{})

		resp, err := svc.PriceBySKU(context.Background(), p.SKU)
		require.NoError(t, err)
		assert.Equal(t, "Milk 1L", resp.Name)
		assert.True(t, resp.InStock)

		_, ok := cache.Get(context.Background(), p.SKU)
		assert.True(t, ok)

		// remove from the store; the cached copy still answers
		require.NoError(t, products.SoftDelete(context.Background(), p.ID))
		resp, err = svc.PriceBySKU(context.Background(), p.SKU)
		require.NoError(t, err)
		assert.Equal(t, "Milk 1L", resp.Name)
	})

	t.Run("unknown sku yields not found", func(t *testing.T) {
		svc := NewProductService(newStubProductRepo(), &stubCategoryRepo{}, newMemPriceCache(), &recordingSink{})
		_, err := svc.PriceBySKU(context.Background(), "NO-SUCH-SKU")
		require.ErrorIs(t, err, ErrProductNotFound)
	})
}

func TestUpdateProduct(t *testing.T) {
	actor := uuid.New()

	t.Run("price changes are audited and invalidate the cache", func(t *testing.T) {
		p := testProduct("Tuna", "32.00", 10, 3)
		products := newStubProductRepo(p)
		cache := newMemPriceCache()
		sink := &recordingSink{}
		svc := NewProductService(products, &stubCategoryRepo{}, cache, sink)

		// warm the cache
		_, err := svc.PriceBySKU(context.Background(), p.SKU)
		require.NoError(t, err)

		newPrice := decimal.RequireFromString("35.00")
		resp, err := svc.Update(context.Background(), actor, p.ID, dto.UpdateProductRequest{
			SellingPrice: &newPrice,
		})
		require.NoError(t, err)
		assert.Equal(t, "35", resp.SellingPrice.String())

		require.Len(t, sink.byAction("price_updated"), 1)
		_, ok := cache.Get(context.Background(), p.SKU)
		assert.False(t, ok)
	})

	t.Run("stock is never editable through catalog updates", func(t *testing.T) {
		p := testProduct("Biscuits", "14.00", 7, 2)
		products := newStubProductRepo(p)
		svc := NewProductService(products, &stubCategoryRepo{}, newMemPriceCache(), &recordingSink{})

		name := "Biscuits XL"
		_, err := svc.Update(context.Background(), actor, p.ID, dto.UpdateProductRequest{Name: &name})
		require.NoError(t, err)
		assert.Equal(t, 7, products.stock(p.ID))
	})
}

func TestCreateProduct(t *testing.T) {
	actor := uuid.New()
	category := &model.Category{ID: uuid.New(), Name: "Canned Goods"}

	t.Run("rejects duplicate sku", func(t *testing.T) {
		existing := testProduct("Corned Beef", "48.00", 10, 3)
		products := newStubProductRepo(existing)
		svc := NewProductService(products, &stubCategoryRepo{categories: []*model.Category{category}}, newMemPriceCache(), &recordingSink{})

		_, err := svc.Create(context.Background(), actor, dto.CreateProductRequest{
			Name:         "Other",
			SKU:          existing.SKU,
			CategoryID:   category.ID.String(),
			SellingPrice: decimal.NewFromInt(10),
		})
		require.ErrorIs(t, err, ErrSKUTaken)
	})

	t.Run("unknown category is rejected", func(t *testing.T) {
		svc := NewProductService(newStubProductRepo(), &stubCategoryRepo{}, newMemPriceCache(), &recordingSink{})
		_, err := svc.Create(context.Background(), actor, dto.CreateProductRequest{
			Name:         "Orphan",
			SKU:          "ORPHAN-1",
			CategoryID:   uuid.NewString(),
			SellingPrice: decimal.NewFromInt(10),
		})
		require.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("applies unit and threshold defaults", func(t *testing.T) {
		svc := NewProductService(newStubProductRepo(), &stubCategoryRepo{categories: []*model.Category{category}}, newMemPriceCache(), &recordingSink{})
		resp, err := svc.Create(context.Background(), actor, dto.CreateProductRequest{
			Name:         "Garlic",
			SKU:          "GARLIC-1",
			CategoryID:   category.ID.String(),
			SellingPrice: decimal.NewFromInt(10),
		})
		require.NoError(t, err)
		assert.Equal(t, "pc", resp.Unit)
		assert.Equal(t, 5, resp.LowStockThreshold)
	})
}
