package kafka

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

var _ ports.EventPublisher = NoopPublisher{}

// NoopPublisher — используется, когда публикация событий выключена.
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, domain.CartEvent) error { return nil }
func (NoopPublisher) Close() error                                    { return nil }
