package ports

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// ContextProvider — внешнее (эмулируемое) хранилище строк корзины с TTL.
// Промах по ID и истёкший TTL неразличимы: оба возвращают domain.ErrContextExpired.
type ContextProvider interface {
	// CreateContext — новый пустой контекст для корзины. Старый контекст не инвалидируется.
	CreateContext(ctx context.Context, cartID string) (domain.Context, error)

	// IsValid — контекст существует и ещё не истёк. Без побочных эффектов.
	IsValid(ctx context.Context, contextID string) (bool, error)

	// ListItems — строки в порядке добавления.
	ListItems(ctx context.Context, contextID string) ([]domain.CartItem, error)

	// AddItem — сохраняет строку как есть (цены не пересчитываются).
	AddItem(ctx context.Context, contextID string, draft domain.ItemDraft) (domain.CartItem, error)

	// UpdateItem — меняет количество и пересчитывает totalPrice по сохранённой цене.
	UpdateItem(ctx context.Context, contextID, itemID string, quantity int) (domain.CartItem, error)

	// RemoveItem — удаляет строку.
	RemoveItem(ctx context.Context, contextID, itemID string) error

	// ExpireNow — принудительно переводит срок жизни контекста в прошлое.
	ExpireNow(ctx context.Context, contextID string) error

	// SweepExpired — удаляет истёкшие контексты, возвращает их количество.
	SweepExpired(ctx context.Context) (int, error)
}
