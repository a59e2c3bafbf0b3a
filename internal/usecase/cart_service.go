package usecase

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/google/uuid"
)

// Проверка, что CartService удовлетворяет интерфейсу CartService.
var _ ports.CartService = (*CartService)(nil)

// ErrContextRecovery — не удалось пересоздать контекст и воспроизвести в нём строки корзины.
var ErrContextRecovery = errors.New("cart context recovery failed")

// CartConfig — параметры корзины.
type CartConfig struct {
	TaxRate     float64
	MaxItems    int
	MaxQuantity int
}

// cartState — состояние одной корзины: текущий контекст и теневая копия строк.
// mu сериализует последовательность чтение-проверка-запись по одной корзине.
type cartState struct {
	mu      sync.Mutex
	id      string
	current domain.Context
	shadow  []domain.CartItem
}

// CartService — оркестратор корзины поверх эфемерного провайдера контекстов.
// Единственный, кто обращается к провайдеру; теневая копия переживает истечение контекста.
type CartService struct {
	provider ports.ContextProvider
	catalog  ports.Catalog
	events   ports.EventPublisher
	log      ports.Logger

	rules   Rules
	taxRate float64
	newID   func() string
	now     func() time.Time

	mu    sync.RWMutex
	carts map[string]*cartState
}

// NewCartService — DI-конструктор. Нулевые пределы заменяются значениями по умолчанию (50 строк, 10 шт.).
func NewCartService(
	provider ports.ContextProvider,
	catalog ports.Catalog,
	events ports.EventPublisher,
	log ports.Logger,
	cfg CartConfig,
) *CartService {
	if cfg.MaxItems <= 0 {
		cfg.MaxItems = 50
	}
	if cfg.MaxQuantity <= 0 {
		cfg.MaxQuantity = 10
	}
	return &CartService{
		provider: provider,
		catalog:  catalog,
		events:   events,
		log:      log,
		rules:    Rules{MaxItems: cfg.MaxItems, MaxQuantity: cfg.MaxQuantity},
		taxRate:  cfg.TaxRate,
		newID:    func() string { return uuid.NewString() },
		now:      time.Now,
		carts:    make(map[string]*cartState),
	}
}

// InitializeCart — новая корзина с собственным контекстом и пустой теневой копией.
func (s *CartService) InitializeCart(ctx context.Context) (*domain.Cart, error) {
	cartID := s.newID()

	cc, err := s.provider.CreateContext(ctx, cartID)
	if err != nil {
		s.observe("initialize", err)
		return nil, fmt.Errorf("create context: %w", err)
	}

	s.mu.Lock()
	s.carts[cartID] = &cartState{id: cartID, current: cc, shadow: []domain.CartItem{}}
	s.mu.Unlock()

	s.log.Infof(ctx, "cart initialized cart_id=%s context_id=%s expires_at=%s",
		cartID, cc.ID, cc.ExpiresAt.Format(time.RFC3339))
	s.publish(ctx, domain.CartEvent{Type: domain.EventCartCreated, CartID: cartID, ContextID: cc.ID})
	s.observe("initialize", nil)
	return domain.BuildCart(cartID, nil, s.taxRate), nil
}

// GetCart — живые строки провайдера перезаписывают теневую копию.
func (s *CartService) GetCart(ctx context.Context, cartID string) (*domain.Cart, error) {
	st, err := s.lookup(cartID)
	if err != nil {
		s.observe("get", err)
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	err = s.withLiveContext(ctx, st, func(contextID string) error {
		items, listErr := s.provider.ListItems(ctx, contextID)
		if listErr != nil {
			return listErr
		}
		st.shadow = items
		return nil
	})
	s.observe("get", err)
	if err != nil {
		return nil, err
	}
	return domain.BuildCart(st.id, st.shadow, s.taxRate), nil
}

// AddItem — правила проверяются до записи в провайдер, откатывать ничего не требуется.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	if err := s.rules.CheckQuantity(quantity); err != nil {
		s.observe("add_item", err)
		return nil, err
	}

	product, ok, err := s.catalog.Get(ctx, productID)
	if err != nil {
		s.observe("add_item", err)
		return nil, fmt.Errorf("catalog lookup: %w", err)
	}
	if !ok {
		err = fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
		s.observe("add_item", err)
		return nil, err
	}

	st, err := s.lookup(cartID)
	if err != nil {
		s.observe("add_item", err)
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	var added domain.CartItem
	err = s.withLiveContext(ctx, st, func(contextID string) error {
		items, listErr := s.provider.ListItems(ctx, contextID)
		if listErr != nil {
			return listErr
		}
		if ruleErr := s.rules.CanAdd(items, product); ruleErr != nil {
			return ruleErr
		}

		item, addErr := s.provider.AddItem(ctx, contextID, domain.ItemDraft{
			ProductID:   product.ID,
			ProductName: product.Name,
			Category:    product.Category,
			UnitPrice:   product.Price,
			Quantity:    quantity,
			TotalPrice:  domain.LineTotal(product.Price, quantity),
		})
		if addErr != nil {
			return addErr
		}
		added = item
		st.shadow = append(items, item)
		return nil
	})
	s.observe("add_item", err)
	if err != nil {
		s.logRejected(ctx, "add_item", cartID, err)
		return nil, err
	}

	s.log.Infof(ctx, "item added cart_id=%s item_id=%s product_id=%s qty=%d",
		cartID, added.ID, product.ID, quantity)
	s.publish(ctx, domain.CartEvent{
		Type: domain.EventItemAdded, CartID: cartID, ContextID: st.current.ID,
		ItemID: added.ID, ProductID: product.ID, Quantity: quantity, ItemCount: len(st.shadow),
	})
	return domain.BuildCart(st.id, st.shadow, s.taxRate), nil
}

// UpdateItem — провайдер пересчитывает стоимость, теневая строка заменяется результатом.
func (s *CartService) UpdateItem(ctx context.Context, cartID, itemID string, quantity int) (*domain.Cart, error) {
	if err := s.rules.CheckQuantity(quantity); err != nil {
		s.observe("update_item", err)
		return nil, err
	}

	st, err := s.lookup(cartID)
	if err != nil {
		s.observe("update_item", err)
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	var updated domain.CartItem
	err = s.withLiveContext(ctx, st, func(contextID string) error {
		item, updErr := s.provider.UpdateItem(ctx, contextID, itemID, quantity)
		if updErr != nil {
			return updErr
		}
		updated = item
		for i := range st.shadow {
			if st.shadow[i].ID == itemID {
				st.shadow[i] = item
				break
			}
		}
		return nil
	})
	s.observe("update_item", err)
	if err != nil {
		s.logRejected(ctx, "update_item", cartID, err)
		return nil, err
	}

	s.publish(ctx, domain.CartEvent{
		Type: domain.EventItemUpdated, CartID: cartID, ContextID: st.current.ID,
		ItemID: updated.ID, ProductID: updated.ProductID, Quantity: quantity, ItemCount: len(st.shadow),
	})
	return domain.BuildCart(st.id, st.shadow, s.taxRate), nil
}

// RemoveItem — неизвестная провайдеру строка даёт ErrNotFound;
// отсутствие строки в теневой копии не считается ошибкой.
func (s *CartService) RemoveItem(ctx context.Context, cartID, itemID string) (*domain.Cart, error) {
	st, err := s.lookup(cartID)
	if err != nil {
		s.observe("remove_item", err)
		return nil, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	var removed domain.CartItem
	err = s.withLiveContext(ctx, st, func(contextID string) error {
		if rmErr := s.provider.RemoveItem(ctx, contextID, itemID); rmErr != nil {
			return rmErr
		}
		for i := range st.shadow {
			if st.shadow[i].ID == itemID {
				removed = st.shadow[i]
				st.shadow = append(st.shadow[:i:i], st.shadow[i+1:]...)
				break
			}
		}
		return nil
	})
	s.observe("remove_item", err)
	if err != nil {
		s.logRejected(ctx, "remove_item", cartID, err)
		return nil, err
	}

	s.publish(ctx, domain.CartEvent{
		Type: domain.EventItemRemoved, CartID: cartID, ContextID: st.current.ID,
		ItemID: itemID, ProductID: removed.ProductID, ItemCount: len(st.shadow),
	})
	return domain.BuildCart(st.id, st.shadow, s.taxRate), nil
}

// ValidateCart — проверка правил по живым строкам без изменения корзины.
func (s *CartService) ValidateCart(ctx context.Context, cartID string) (domain.ValidationResult, error) {
	st, err := s.lookup(cartID)
	if err != nil {
		s.observe("validate", err)
		return domain.ValidationResult{}, err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	var items []domain.CartItem
	err = s.withLiveContext(ctx, st, func(contextID string) error {
		var listErr error
		items, listErr = s.provider.ListItems(ctx, contextID)
		return listErr
	})
	s.observe("validate", err)
	if err != nil {
		return domain.ValidationResult{}, err
	}

	errs := s.rules.Validate(items)
	return domain.ValidationResult{Valid: len(errs) == 0, Errors: errs}, nil
}

// ExpireContext — служебный хук: принудительно истекает текущий контекст корзины.
func (s *CartService) ExpireContext(ctx context.Context, cartID string) error {
	st, err := s.lookup(cartID)
	if err != nil {
		return err
	}
	st.mu.Lock()
	defer st.mu.Unlock()

	if err := s.provider.ExpireNow(ctx, st.current.ID); err != nil {
		return fmt.Errorf("expire context %s: %w", st.current.ID, err)
	}
	s.log.Infof(ctx, "context forced to expire cart_id=%s context_id=%s", cartID, st.current.ID)
	return nil
}

// SweepExpiredContexts — делегирует провайдеру очистку истёкших контекстов.
func (s *CartService) SweepExpiredContexts(ctx context.Context) (int, error) {
	return s.provider.SweepExpired(ctx)
}

// GetProducts — весь каталог.
func (s *CartService) GetProducts(ctx context.Context) ([]domain.Product, error) {
	return s.catalog.List(ctx)
}

// GetProduct — товар по ID или ErrNotFound.
func (s *CartService) GetProduct(ctx context.Context, productID string) (*domain.Product, error) {
	p, ok, err := s.catalog.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, fmt.Errorf("product %s: %w", productID, domain.ErrNotFound)
	}
	return &p, nil
}

// ------вспомогательные функции------

func (s *CartService) lookup(cartID string) (*cartState, error) {
	s.mu.RLock()
	st, ok := s.carts[cartID]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("cart %s: %w", cartID, domain.ErrNotFound)
	}
	return st, nil
}

// withLiveContext — выполняет fn на действующем контексте корзины.
// ErrContextExpired от провайдера поглощается: одно восстановление и один повтор.
// Вызывать под st.mu.
func (s *CartService) withLiveContext(ctx context.Context, st *cartState, fn func(contextID string) error) error {
	contextID, err := s.ensureValidContext(ctx, st)
	if err != nil {
		return err
	}

	err = fn(contextID)
	if !errors.Is(err, domain.ErrContextExpired) {
		return err
	}

	s.log.Warnf(ctx, "context expired mid-operation cart_id=%s context_id=%s, recovering", st.id, contextID)
	if err := s.recoverContext(ctx, st); err != nil {
		return err
	}
	if err = fn(st.current.ID); errors.Is(err, domain.ErrContextExpired) {
		return fmt.Errorf("%w: context %s expired right after recovery", ErrContextRecovery, st.current.ID)
	}
	return err
}

// ensureValidContext — ID действующего контекста; при истечении пересоздаёт контекст.
func (s *CartService) ensureValidContext(ctx context.Context, st *cartState) (string, error) {
	valid, err := s.provider.IsValid(ctx, st.current.ID)
	if err != nil {
		return "", fmt.Errorf("check context %s: %w", st.current.ID, err)
	}
	if valid {
		return st.current.ID, nil
	}
	if err := s.recoverContext(ctx, st); err != nil {
		return "", err
	}
	return st.current.ID, nil
}

// recoverContext — новый контекст и воспроизведение теневой копии в исходном порядке.
// ID строк переносятся, поэтому клиентские ссылки на строки переживают восстановление.
func (s *CartService) recoverContext(ctx context.Context, st *cartState) error {
	prev := st.current.ID

	fresh, err := s.provider.CreateContext(ctx, st.id)
	if err != nil {
		return fmt.Errorf("%w: create context: %v", ErrContextRecovery, err)
	}

	replayed := make([]domain.CartItem, 0, len(st.shadow))
	for i := range st.shadow {
		item, addErr := s.provider.AddItem(ctx, fresh.ID, domain.DraftFromItem(st.shadow[i]))
		if addErr != nil {
			s.log.Errorf(ctx, "replay failed cart_id=%s context_id=%s item_id=%s err=%v",
				st.id, fresh.ID, st.shadow[i].ID, addErr)
			return fmt.Errorf("%w: replay item %s: %v", ErrContextRecovery, st.shadow[i].ID, addErr)
		}
		replayed = append(replayed, item)
	}

	st.current = fresh
	st.shadow = replayed

	metrics.ContextOps.WithLabelValues("recovered").Inc()
	s.log.Infof(ctx, "context recovered cart_id=%s old_context=%s new_context=%s replayed=%d",
		st.id, prev, fresh.ID, len(replayed))
	s.publish(ctx, domain.CartEvent{
		Type: domain.EventContextRecovered, CartID: st.id, ContextID: fresh.ID, ItemCount: len(replayed),
	})
	return nil
}

func (s *CartService) publish(ctx context.Context, event domain.CartEvent) {
	if s.events == nil {
		return
	}
	event.OccurredAt = s.now().UTC()
	if err := s.events.Publish(ctx, event); err != nil {
		s.log.Warnf(ctx, "publish event failed type=%s cart_id=%s err=%v", event.Type, event.CartID, err)
	}
}

func (s *CartService) logRejected(ctx context.Context, op, cartID string, err error) {
	var ruleErr *domain.BusinessRuleError
	switch {
	case errors.As(err, &ruleErr):
		metrics.RuleViolations.WithLabelValues(string(ruleErr.Rule)).Inc()
		s.log.Infof(ctx, "%s rejected cart_id=%s rule=%s", op, cartID, ruleErr.Rule)
	case errors.Is(err, domain.ErrNotFound):
		s.log.Infof(ctx, "%s not found cart_id=%s err=%v", op, cartID, err)
	default:
		s.log.Errorf(ctx, "%s failed cart_id=%s err=%v", op, cartID, err)
	}
}

func (s *CartService) observe(op string, err error) {
	result := "ok"
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrBusinessRule):
		result = "rule_violation"
	case errors.Is(err, domain.ErrNotFound):
		result = "not_found"
	default:
		result = "error"
	}
	metrics.CartOps.WithLabelValues(op, result).Inc()
}
