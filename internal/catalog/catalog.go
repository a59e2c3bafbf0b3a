package catalog

import (
	"context"
	"fmt"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// Проверка, что Catalog удовлетворяет интерфейсу Catalog.
var _ ports.Catalog = (*Catalog)(nil)

// Catalog — неизменяемый каталог в памяти; безопасен для конкурентного чтения.
type Catalog struct {
	products []domain.Product
	index    map[string]int
}

// New — каталог из списка товаров в заданном порядке. Повтор ID — ошибка.
func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: append([]domain.Product(nil), products...),
		index:    make(map[string]int, len(products)),
	}
	for i, p := range c.products {
		if _, dup := c.index[p.ID]; dup {
			return nil, fmt.Errorf("duplicate product id %q", p.ID)
		}
		c.index[p.ID] = i
	}
	return c, nil
}

// Load — читает источник один раз, проверяет каждую запись валидатором (если задан).
func Load(ctx context.Context, src ports.ProductSource, validator ports.ProductValidator) (*Catalog, error) {
	products, err := src.LoadProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}
	if validator != nil {
		for i := range products {
			if err := validator.Validate(ctx, &products[i]); err != nil {
				return nil, fmt.Errorf("product %q: %w", products[i].ID, err)
			}
		}
	}
	return New(products)
}

func (c *Catalog) List(_ context.Context) ([]domain.Product, error) {
	return append([]domain.Product(nil), c.products...), nil
}

func (c *Catalog) Get(_ context.Context, productID string) (domain.Product, bool, error) {
	i, ok := c.index[productID]
	if !ok {
		return domain.Product{}, false, nil
	}
	return c.products[i], true, nil
}

// Len — количество товаров.
func (c *Catalog) Len() int { return len(c.products) }
