package ports

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// ProductValidator — проверка записи каталога перед загрузкой.
type ProductValidator interface {
	Validate(ctx context.Context, product *domain.Product) error
}
