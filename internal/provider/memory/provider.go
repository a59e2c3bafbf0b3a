package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/google/uuid"
)

// Проверка, что Provider удовлетворяет интерфейсу ContextProvider.
var _ ports.ContextProvider = (*Provider)(nil)

type entry struct {
	meta  domain.Context
	items []domain.CartItem
}

// Provider — эмуляция внешнего хранилища контекстов корзины в памяти.
// Контексты не удаляются сами: истёкшие записи убирает SweepExpired.
type Provider struct {
	ttl   time.Duration
	now   func() time.Time
	newID func() string

	contexts map[string]*entry

	mu sync.Mutex
}

// Option — функциональная опция Provider.
type Option func(*Provider)

// WithClock — подмена источника времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(p *Provider) { p.now = now }
}

// WithIDGenerator — подмена генератора идентификаторов (для тестов).
func WithIDGenerator(gen func() string) Option {
	return func(p *Provider) { p.newID = gen }
}

// NewProvider - конструктор Provider. ttl <= 0 заменяется на 5 минут.
func NewProvider(ttl time.Duration, opts ...Option) *Provider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	p := &Provider{
		ttl:      ttl,
		now:      time.Now,
		newID:    func() string { return uuid.NewString() },
		contexts: make(map[string]*entry),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) CreateContext(_ context.Context, cartID string) (domain.Context, error) {
	now := p.now()
	meta := domain.Context{
		ID:        p.newID(),
		CartID:    cartID,
		CreatedAt: now,
		ExpiresAt: now.Add(p.ttl),
	}

	p.mu.Lock()
	p.contexts[meta.ID] = &entry{meta: meta, items: []domain.CartItem{}}
	size := len(p.contexts)
	p.mu.Unlock()

	metrics.ContextOps.WithLabelValues("created").Inc()
	metrics.ContextsStored.Set(float64(size))
	return meta, nil
}

func (p *Provider) IsValid(_ context.Context, contextID string) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	_, ok := p.live(contextID)
	return ok, nil
}

func (p *Provider) ListItems(_ context.Context, contextID string) ([]domain.CartItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ent, ok := p.live(contextID)
	if !ok {
		return nil, domain.ErrContextExpired
	}
	return domain.CloneItems(ent.items), nil
}

func (p *Provider) AddItem(_ context.Context, contextID string, draft domain.ItemDraft) (domain.CartItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ent, ok := p.live(contextID)
	if !ok {
		return domain.CartItem{}, domain.ErrContextExpired
	}

	id := draft.ID
	if id == "" || indexOf(ent.items, id) >= 0 {
		id = p.newID()
	}
	item := domain.CartItem{
		ID:          id,
		ProductID:   draft.ProductID,
		ProductName: draft.ProductName,
		Category:    draft.Category,
		UnitPrice:   draft.UnitPrice,
		Quantity:    draft.Quantity,
		TotalPrice:  draft.TotalPrice,
	}
	ent.items = append(ent.items, item)
	return item, nil
}

func (p *Provider) UpdateItem(_ context.Context, contextID, itemID string, quantity int) (domain.CartItem, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	ent, ok := p.live(contextID)
	if !ok {
		return domain.CartItem{}, domain.ErrContextExpired
	}
	idx := indexOf(ent.items, itemID)
	if idx < 0 {
		return domain.CartItem{}, domain.ErrItemNotFound
	}

	item := ent.items[idx]
	item.Quantity = quantity
	item.TotalPrice = domain.LineTotal(item.UnitPrice, quantity)
	ent.items[idx] = item
	return item, nil
}

func (p *Provider) RemoveItem(_ context.Context, contextID, itemID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	ent, ok := p.live(contextID)
	if !ok {
		return domain.ErrContextExpired
	}
	idx := indexOf(ent.items, itemID)
	if idx < 0 {
		return domain.ErrItemNotFound
	}
	ent.items = append(ent.items[:idx], ent.items[idx+1:]...)
	return nil
}

// ExpireNow — срок жизни переносится в прошлое; запись остаётся до SweepExpired.
// Неизвестный контекст — не ошибка.
func (p *Provider) ExpireNow(_ context.Context, contextID string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if ent, ok := p.contexts[contextID]; ok {
		ent.meta.ExpiresAt = p.now().Add(-time.Millisecond)
		metrics.ContextOps.WithLabelValues("forced_expiry").Inc()
	}
	return nil
}

func (p *Provider) SweepExpired(_ context.Context) (int, error) {
	now := p.now()

	p.mu.Lock()
	removed := 0
	for id, ent := range p.contexts {
		if ent.meta.ExpiredAt(now) {
			delete(p.contexts, id)
			removed++
		}
	}
	size := len(p.contexts)
	p.mu.Unlock()

	if removed > 0 {
		metrics.ContextOps.WithLabelValues("swept").Add(float64(removed))
	}
	metrics.ContextsStored.Set(float64(size))
	return removed, nil
}

// ------вспомогательные функции------

// live — запись контекста, если он существует и не истёк. Вызывать под mu.
func (p *Provider) live(contextID string) (*entry, bool) {
	ent, ok := p.contexts[contextID]
	if !ok {
		metrics.ContextOps.WithLabelValues("miss").Inc()
		return nil, false
	}
	if ent.meta.ExpiredAt(p.now()) {
		metrics.ContextOps.WithLabelValues("expired").Inc()
		return nil, false
	}
	return ent, true
}

func indexOf(items []domain.CartItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}
