package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Проверка, что Provider удовлетворяет интерфейсу ContextProvider.
var _ ports.ContextProvider = (*Provider)(nil)

// ErrConflict — исчерпаны попытки оптимистичной транзакции (WATCH).
var ErrConflict = errors.New("context update conflict")

const maxTxRetries = 5

// record — содержимое ключа контекста.
type record struct {
	Meta  domain.Context    `json:"meta"`
	Items []domain.CartItem `json:"items"`
}

// Provider — провайдер контекстов поверх Redis.
// Контекст хранится одним JSON-ключом со штатным TTL Redis (PEXPIREAT = ExpiresAt);
// индекс (ZSET по времени истечения) нужен только для SweepExpired.
type Provider struct {
	rdb    *goredis.Client
	ttl    time.Duration
	prefix string
	now    func() time.Time
	newID  func() string
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

// WithKeyPrefix — префикс всех ключей провайдера.
func WithKeyPrefix(prefix string) Option {
	return func(p *Provider) { p.prefix = prefix }
}

// NewProvider — конструктор Provider. ttl <= 0 заменяется на 5 минут.
func NewProvider(rdb *goredis.Client, ttl time.Duration, opts ...Option) *Provider {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	p := &Provider{
		rdb:    rdb,
		ttl:    ttl,
		prefix: "cart:",
		now:    time.Now,
		newID:  func() string { return uuid.NewString() },
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Provider) CreateContext(ctx context.Context, cartID string) (domain.Context, error) {
	now := p.now()
	rec := record{
		Meta: domain.Context{
			ID:        p.newID(),
			CartID:    cartID,
			CreatedAt: now,
			ExpiresAt: now.Add(p.ttl),
		},
		Items: []domain.CartItem{},
	}
	data, err := json.Marshal(rec)
	if err != nil {
		return domain.Context{}, fmt.Errorf("marshal context: %w", err)
	}

	key := p.contextKey(rec.Meta.ID)
	_, err = p.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Set(ctx, key, data, 0)
		pipe.PExpireAt(ctx, key, rec.Meta.ExpiresAt)
		pipe.ZAdd(ctx, p.indexKey(), goredis.Z{Score: score(rec.Meta.ExpiresAt), Member: rec.Meta.ID})
		return nil
	})
	if err != nil {
		return domain.Context{}, fmt.Errorf("redis create context: %w", err)
	}

	metrics.ContextOps.WithLabelValues("created").Inc()
	return rec.Meta, nil
}

func (p *Provider) IsValid(ctx context.Context, contextID string) (bool, error) {
	_, err := p.load(ctx, p.rdb, contextID)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, domain.ErrContextExpired):
		return false, nil
	default:
		return false, err
	}
}

func (p *Provider) ListItems(ctx context.Context, contextID string) ([]domain.CartItem, error) {
	rec, err := p.load(ctx, p.rdb, contextID)
	if err != nil {
		return nil, err
	}
	return domain.CloneItems(rec.Items), nil
}

func (p *Provider) AddItem(ctx context.Context, contextID string, draft domain.ItemDraft) (domain.CartItem, error) {
	var item domain.CartItem
	err := p.mutate(ctx, contextID, func(rec *record) error {
		id := draft.ID
		if id == "" || indexOf(rec.Items, id) >= 0 {
			id = p.newID()
		}
		item = domain.CartItem{
			ID:          id,
			ProductID:   draft.ProductID,
			ProductName: draft.ProductName,
			Category:    draft.Category,
			UnitPrice:   draft.UnitPrice,
			Quantity:    draft.Quantity,
			TotalPrice:  draft.TotalPrice,
		}
		rec.Items = append(rec.Items, item)
		return nil
	})
	return item, err
}

func (p *Provider) UpdateItem(ctx context.Context, contextID, itemID string, quantity int) (domain.CartItem, error) {
	var item domain.CartItem
	err := p.mutate(ctx, contextID, func(rec *record) error {
		idx := indexOf(rec.Items, itemID)
		if idx < 0 {
			return domain.ErrItemNotFound
		}
		rec.Items[idx].Quantity = quantity
		rec.Items[idx].TotalPrice = domain.LineTotal(rec.Items[idx].UnitPrice, quantity)
		item = rec.Items[idx]
		return nil
	})
	return item, err
}

func (p *Provider) RemoveItem(ctx context.Context, contextID, itemID string) error {
	return p.mutate(ctx, contextID, func(rec *record) error {
		idx := indexOf(rec.Items, itemID)
		if idx < 0 {
			return domain.ErrItemNotFound
		}
		rec.Items = append(rec.Items[:idx], rec.Items[idx+1:]...)
		return nil
	})
}

// ExpireNow — ключ удаляется сразу, запись индекса сдвигается в прошлое и уходит при SweepExpired.
func (p *Provider) ExpireNow(ctx context.Context, contextID string) error {
	past := p.now().Add(-time.Millisecond)
	_, err := p.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		pipe.Del(ctx, p.contextKey(contextID))
		pipe.ZAddXX(ctx, p.indexKey(), goredis.Z{Score: score(past), Member: contextID})
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis expire context: %w", err)
	}
	metrics.ContextOps.WithLabelValues("forced_expiry").Inc()
	return nil
}

// SweepExpired — удаляет контексты, чей срок по индексу наступил.
// Ключи, уже удалённые штатным TTL Redis, тоже считаются.
func (p *Provider) SweepExpired(ctx context.Context) (int, error) {
	ids, err := p.rdb.ZRangeByScore(ctx, p.indexKey(), &goredis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatFloat(score(p.now()), 'f', -1, 64),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("redis sweep: %w", err)
	}

	if len(ids) > 0 {
		keys := make([]string, 0, len(ids))
		members := make([]any, 0, len(ids))
		for _, id := range ids {
			keys = append(keys, p.contextKey(id))
			members = append(members, id)
		}
		_, err = p.rdb.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Del(ctx, keys...)
			pipe.ZRem(ctx, p.indexKey(), members...)
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("redis sweep: %w", err)
		}
		metrics.ContextOps.WithLabelValues("swept").Add(float64(len(ids)))
	}

	if size, err := p.rdb.ZCard(ctx, p.indexKey()).Result(); err == nil {
		metrics.ContextsStored.Set(float64(size))
	}
	return len(ids), nil
}

// ------вспомогательные функции------

type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// load — запись контекста; отсутствие ключа и истечение срока неразличимы.
func (p *Provider) load(ctx context.Context, g getter, contextID string) (*record, error) {
	raw, err := g.Get(ctx, p.contextKey(contextID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		metrics.ContextOps.WithLabelValues("miss").Inc()
		return nil, domain.ErrContextExpired
	}
	if err != nil {
		return nil, fmt.Errorf("redis get context: %w", err)
	}

	var rec record
	if err := json.Unmarshal(raw, &rec); err != nil {
		return nil, fmt.Errorf("decode context %s: %w", contextID, err)
	}
	if rec.Meta.ExpiredAt(p.now()) {
		metrics.ContextOps.WithLabelValues("expired").Inc()
		return nil, domain.ErrContextExpired
	}
	if rec.Items == nil {
		rec.Items = []domain.CartItem{}
	}
	return &rec, nil
}

// mutate — чтение-изменение-запись под WATCH; при конфликте транзакция повторяется.
func (p *Provider) mutate(ctx context.Context, contextID string, fn func(rec *record) error) error {
	key := p.contextKey(contextID)
	txf := func(tx *goredis.Tx) error {
		rec, err := p.load(ctx, tx, contextID)
		if err != nil {
			return err
		}
		if err := fn(rec); err != nil {
			return err
		}
		data, err := json.Marshal(rec)
		if err != nil {
			return fmt.Errorf("marshal context: %w", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			pipe.PExpireAt(ctx, key, rec.Meta.ExpiresAt)
			return nil
		})
		return err
	}

	for i := 0; i < maxTxRetries; i++ {
		err := p.rdb.Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("%w: context %s", ErrConflict, contextID)
}

func (p *Provider) contextKey(contextID string) string { return p.prefix + "ctx:" + contextID }
func (p *Provider) indexKey() string                   { return p.prefix + "contexts" }

func score(t time.Time) float64 { return float64(t.UnixMilli()) }

func indexOf(items []domain.CartItem, itemID string) int {
	for i := range items {
		if items[i].ID == itemID {
			return i
		}
	}
	return -1
}
