package domain

// Category — категория товара в каталоге.
type Category string

const (
	CategoryPhone Category = "PHONE"
	CategoryPlan  Category = "PLAN"
	CategoryAddon Category = "ADDON"
)

// Valid — известна ли категория.
func (c Category) Valid() bool {
	switch c {
	case CategoryPhone, CategoryPlan, CategoryAddon:
		return true
	}
	return false
}

// Product — позиция статического каталога. Не изменяется после загрузки.
type Product struct {
	ID            string   `json:"id"`
	Name          string   `json:"name"`
	Category      Category `json:"category"`
	Price         float64  `json:"price"`
	RequiresPhone bool     `json:"requiresPhone,omitempty"`
}
