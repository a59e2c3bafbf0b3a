package domain

import "time"

// EventType — тип доменного события корзины.
type EventType string

const (
	EventCartCreated      EventType = "cart.created"
	EventItemAdded        EventType = "cart.item_added"
	EventItemUpdated      EventType = "cart.item_updated"
	EventItemRemoved      EventType = "cart.item_removed"
	EventContextRecovered EventType = "cart.context_recovered"
)

// CartEvent — событие, публикуемое после успешной мутации.
type CartEvent struct {
	Type       EventType `json:"type"`
	CartID     string    `json:"cartId"`
	ContextID  string    `json:"contextId,omitempty"`
	ItemID     string    `json:"itemId,omitempty"`
	ProductID  string    `json:"productId,omitempty"`
	Quantity   int       `json:"quantity,omitempty"`
	ItemCount  int       `json:"itemCount"`
	OccurredAt time.Time `json:"occurredAt"`
}
