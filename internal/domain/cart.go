package domain

import "time"

// CartItem — строка корзины. Данные товара копируются в момент добавления
// и больше не перечитываются из каталога.
type CartItem struct {
	ID          string   `json:"id"`
	ProductID   string   `json:"productId"`
	ProductName string   `json:"productName"`
	Category    Category `json:"category"`
	UnitPrice   float64  `json:"unitPrice"`
	Quantity    int      `json:"quantity"`
	TotalPrice  float64  `json:"totalPrice"`
}

// ItemDraft — то, что оркестратор передаёт провайдеру контекста.
// ID пустой для новой строки; при восстановлении контекста переносится исходный ID.
type ItemDraft struct {
	ID          string
	ProductID   string
	ProductName string
	Category    Category
	UnitPrice   float64
	Quantity    int
	TotalPrice  float64
}

// DraftFromItem — черновик для повторного воспроизведения строки в новом контексте.
func DraftFromItem(it CartItem) ItemDraft {
	return ItemDraft{
		ID:          it.ID,
		ProductID:   it.ProductID,
		ProductName: it.ProductName,
		Category:    it.Category,
		UnitPrice:   it.UnitPrice,
		Quantity:    it.Quantity,
		TotalPrice:  it.TotalPrice,
	}
}

// Context — непрозрачный ограниченный по времени дескриптор внешнего хранилища корзины.
type Context struct {
	ID        string    `json:"id"`
	CartID    string    `json:"cartId"`
	CreatedAt time.Time `json:"createdAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// ExpiredAt — истёк ли контекст к моменту now.
func (c Context) ExpiredAt(now time.Time) bool {
	return !now.Before(c.ExpiresAt)
}

// Cart — представление корзины; собирается заново при каждом чтении.
type Cart struct {
	ID        string     `json:"id"`
	Items     []CartItem `json:"items"`
	ItemCount int        `json:"itemCount"`
	Subtotal  float64    `json:"subtotal"`
	Tax       float64    `json:"tax"`
	Total     float64    `json:"total"`
}

// ValidationResult — результат проверки бизнес-правил без изменения корзины.
type ValidationResult struct {
	Valid  bool     `json:"valid"`
	Errors []string `json:"errors"`
}

// CloneItems — копия слайса строк, чтобы внешние изменения не влияли на хранилища.
func CloneItems(items []CartItem) []CartItem {
	if items == nil {
		return []CartItem{}
	}
	return append(make([]CartItem, 0, len(items)), items...)
}
