package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tienda-pos/internal/backend"
	"tienda-pos/internal/model"

	"github.com/rs/zerolog"
)

// Cache holds the in-memory snapshot of products, categories and active
// promotions. Refresh is on demand and idempotent; a failed fetch keeps the
// previous collection so the POS stays usable in a degraded state. Like the
// rate cache it is constructor-wired, not package state.
type Cache struct {
	backend backend.Backend
	logger  zerolog.Logger

	mu         sync.Mutex
	products   []model.Product
	categories []model.Category
	promotions []model.Promotion
	seq        uint64
	applied    uint64
}

// New creates an empty catalogue cache.
func New(b backend.Backend, logger zerolog.Logger) *Cache {
	return &Cache{
		backend: b,
		logger:  logger.With().Str("component", "catalog-cache").Logger(),
	}
}

// Refresh refetches products, categories and promotions. Collections that
// fail to fetch keep their previous snapshot; the combined error reports
// what failed. A refresh that finishes after a newer one has been applied
// is discarded wholesale.
func (c *Cache) Refresh(ctx context.Context) error {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	c.mu.Unlock()

	products, productsErr := c.backend.Products(ctx)
	categories, categoriesErr := c.backend.Categories(ctx)
	promotions, promotionsErr := c.backend.ActivePromotions(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()

	if seq <= c.applied {
		c.logger.Debug().Uint64("seq", seq).Msg("discarding stale catalog refresh")
		return nil
	}
	c.applied = seq

	if productsErr != nil {
		c.logger.Warn().Err(productsErr).Msg("product fetch failed, keeping previous snapshot")
	} else {
		c.products = products
	}
	if categoriesErr != nil {
		c.logger.Warn().Err(categoriesErr).Msg("category fetch failed, keeping previous snapshot")
	} else {
		c.categories = categories
	}
	if promotionsErr != nil {
		c.logger.Warn().Err(promotionsErr).Msg("promotion fetch failed, keeping previous snapshot")
	} else {
		c.promotions = promotions
	}

	if productsErr == nil && categoriesErr == nil && promotionsErr == nil {
		c.logger.Info().
			Int("products", len(c.products)).
			Int("categories", len(c.categories)).
			Int("promotions", len(c.promotions)).
			Msg("catalog refreshed")
	}

	return errors.Join(productsErr, categoriesErr, promotionsErr)
}

// Products returns a copy of the current product snapshot.
func (c *Cache) Products() []model.Product {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Categories returns a copy of the current category snapshot.
func (c *Cache) Categories() []model.Category {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Promotions returns a copy of the current promotion snapshot.
func (c *Cache) Promotions() []model.Promotion {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]model.Promotion, len(c.promotions))
	copy(out, c.promotions)
	return out
}

// Product looks a product up in the current snapshot.
func (c *Cache) Product(id string) (model.Product, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == id {
			return c.products[i], true
		}
	}
	return model.Product{}, false
}

// ResolveCategory returns the product's category id, fetching the single
// product from the backend when the snapshot has it uncategorised and
// folding the answer back into the snapshot.
func (c *Cache) ResolveCategory(ctx context.Context, productID string) (*string, error) {
	c.mu.Lock()
	idx := -1
	for i := range c.products {
		if c.products[i].ID == productID {
			idx = i
			break
		}
	}
	if idx >= 0 && c.products[idx].CategoryID != nil {
		categoryID := c.products[idx].CategoryID
		c.mu.Unlock()
		return categoryID, nil
	}
	c.mu.Unlock()

	if idx < 0 {
		return nil, fmt.Errorf("product %s not in catalog", productID)
	}

	fetched, err := c.backend.Product(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("resolve category: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.products {
		if c.products[i].ID == productID {
			c.products[i].CategoryID = fetched.CategoryID
			break
		}
	}
	return fetched.CategoryID, nil
}
