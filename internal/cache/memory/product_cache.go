package memory

import (
	"container/list"
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
)

// Проверка, что ProductCache удовлетворяет интерфейсу ProductCache.
var _ ports.ProductCache = (*ProductCache)(nil)

type entry struct {
	id        string
	product   domain.Product
	expiresAt time.Time
}

// ProductCache — LRU-кэш товаров с TTL. Доступ к записи продлевает её срок.
type ProductCache struct {
	capacity int
	ttl      time.Duration
	now      func() time.Time

	ll    *list.List
	index map[string]*list.Element

	mu sync.Mutex
}

// Option — функциональная опция ProductCache.
type Option func(*ProductCache)

// WithClock — подмена источника времени (для тестов).
func WithClock(now func() time.Time) Option {
	return func(c *ProductCache) { c.now = now }
}

// NewProductCache - конструктор ProductCache. ttl <= 0 — записи не устаревают.
func NewProductCache(capacity int, ttl time.Duration, opts ...Option) *ProductCache {
	if capacity <= 0 {
		capacity = 1
	}
	c := &ProductCache{
		capacity: capacity,
		ttl:      ttl,
		now:      time.Now,
		ll:       list.New(),
		index:    make(map[string]*list.Element),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *ProductCache) Get(_ context.Context, productID string) (domain.Product, bool) {
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.index[productID]
	if !ok {
		metrics.CacheOps.WithLabelValues("miss").Inc()
		return domain.Product{}, false
	}
	ent := elem.Value.(*entry)
	if c.isExpired(ent, now) {
		metrics.CacheOps.WithLabelValues("expired").Inc()
		c.removeElement(elem)
		metrics.CacheSize.Set(float64(len(c.index)))
		return domain.Product{}, false
	}
	c.ll.MoveToFront(elem)
	if c.ttl > 0 {
		ent.expiresAt = c.expiryFrom(now)
	}

	metrics.CacheOps.WithLabelValues("hit").Inc()
	return ent.product, true
}

func (c *ProductCache) Set(_ context.Context, product domain.Product) {
	if product.ID == "" {
		return
	}
	now := c.now()

	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.index[product.ID]; ok {
		ent := elem.Value.(*entry)
		ent.product = product
		ent.expiresAt = c.expiryFrom(now)
		c.ll.MoveToFront(elem)
		return
	}

	c.pruneExpiredFromBack(now)

	elem := c.ll.PushFront(&entry{
		id:        product.ID,
		product:   product,
		expiresAt: c.expiryFrom(now),
	})
	c.index[product.ID] = elem

	if c.ll.Len() > c.capacity {
		c.evictLRU()
	}
	metrics.CacheSize.Set(float64(len(c.index)))
}

// WarmUp — заполняет кэш; при переполнении остаются последние записи.
func (c *ProductCache) WarmUp(ctx context.Context, products []domain.Product) {
	for i := range products {
		c.Set(ctx, products[i])
	}
}

// Len — количество записей, включая ещё не вычищенные устаревшие.
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ll.Len()
}
