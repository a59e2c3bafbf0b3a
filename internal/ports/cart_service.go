package ports

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// CartService — операции корзины, доступные транспортному слою.
type CartService interface {
	InitializeCart(ctx context.Context) (*domain.Cart, error)
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	AddItem(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error)
	UpdateItem(ctx context.Context, cartID, itemID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error)
	ValidateCart(ctx context.Context, cartID string) (domain.ValidationResult, error)
	ExpireContext(ctx context.Context, cartID string) error

	GetProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
}
