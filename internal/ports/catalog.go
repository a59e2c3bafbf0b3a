package ports

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// Catalog — статический каталог товаров только для чтения.
type Catalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	// Get — (product, true) при наличии, (zero, false) если товара нет.
	Get(ctx context.Context, productID string) (domain.Product, bool, error)
}

// ProductSource — источник каталога, читаемый один раз при старте.
type ProductSource interface {
	LoadProducts(ctx context.Context) ([]domain.Product, error)
}

// ProductStore — хранилище каталога с точечным чтением (Postgres).
type ProductStore interface {
	ProductSource
	// GetProduct — (product, true) при наличии, (zero, false) если товара нет.
	GetProduct(ctx context.Context, productID string) (domain.Product, bool, error)
}

// ProductCache — кэш товаров перед ProductStore.
type ProductCache interface {
	Get(ctx context.Context, productID string) (domain.Product, bool)
	Set(ctx context.Context, product domain.Product)
	WarmUp(ctx context.Context, products []domain.Product)
}
