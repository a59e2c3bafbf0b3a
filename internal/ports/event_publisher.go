package ports

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// EventPublisher — публикация доменных событий корзины (best effort).
type EventPublisher interface {
	Publish(ctx context.Context, event domain.CartEvent) error
	Close() error
}
