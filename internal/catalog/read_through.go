package catalog

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// Проверка, что ReadThrough удовлетворяет интерфейсу Catalog.
var _ ports.Catalog = (*ReadThrough)(nil)

// ReadThrough — каталог, читающий хранилище напрямую через кэш товаров.
// Изменения в хранилище видны после истечения записи в кэше.
type ReadThrough struct {
	store     ports.ProductStore
	cache     ports.ProductCache
	validator ports.ProductValidator
	log       ports.Logger
}

// NewReadThrough - конструктор ReadThrough. validator может быть nil.
func NewReadThrough(store ports.ProductStore, cache ports.ProductCache, validator ports.ProductValidator, log ports.Logger) *ReadThrough {
	return &ReadThrough{store: store, cache: cache, validator: validator, log: log}
}

// WarmUp — первые limit товаров хранилища в кэш; limit <= 0 — весь каталог.
func (c *ReadThrough) WarmUp(ctx context.Context, limit int) (int, error) {
	products, err := c.List(ctx)
	if err != nil {
		return 0, err
	}
	if limit > 0 && len(products) > limit {
		products = products[:limit]
	}
	c.cache.WarmUp(ctx, products)
	return len(products), nil
}

// List — всегда из хранилища: порядок каталога задаёт только оно.
func (c *ReadThrough) List(ctx context.Context) ([]domain.Product, error) {
	products, err := c.store.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	valid := products[:0]
	for i := range products {
		if err := c.check(ctx, &products[i]); err != nil {
			c.log.Warnf(ctx, "catalog: skip product %q: %v", products[i].ID, err)
			continue
		}
		valid = append(valid, products[i])
	}
	return valid, nil
}

func (c *ReadThrough) Get(ctx context.Context, productID string) (domain.Product, bool, error) {
	if p, ok := c.cache.Get(ctx, productID); ok {
		return p, true, nil
	}

	p, ok, err := c.store.GetProduct(ctx, productID)
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("get product %q: %w", productID, err)
	}
	if !ok {
		return domain.Product{}, false, nil
	}
	if err := c.check(ctx, &p); err != nil {
		return domain.Product{}, false, fmt.Errorf("product %q: %w", productID, err)
	}

	c.cache.Set(ctx, p)
	return p, true, nil
}

func (c *ReadThrough) check(ctx context.Context, p *domain.Product) error {
	if c.validator == nil {
		return nil
	}
	return c.validator.Validate(ctx, p)
}
