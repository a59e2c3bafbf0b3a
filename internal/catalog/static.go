package catalog

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

var _ ports.ProductSource = StaticSource{}

// StaticSource — встроенный каталог телеком-товаров.
type StaticSource struct{}

func (StaticSource) LoadProducts(context.Context) ([]domain.Product, error) {
	return DefaultProducts(), nil
}

// DefaultProducts — копия встроенного каталога.
func DefaultProducts() []domain.Product {
	return []domain.Product{
		{ID: "phone_iphone15", Name: "iPhone 15", Category: domain.CategoryPhone, Price: 1399.99},
		{ID: "phone_galaxy_s24", Name: "Samsung Galaxy S24", Category: domain.CategoryPhone, Price: 1199.99},
		{ID: "phone_pixel8", Name: "Google Pixel 8", Category: domain.CategoryPhone, Price: 999.99},
		{ID: "plan_basic", Name: "Basic Plan 10GB", Category: domain.CategoryPlan, Price: 45.00, RequiresPhone: true},
		{ID: "plan_unlimited", Name: "Unlimited Plan", Category: domain.CategoryPlan, Price: 85.00, RequiresPhone: true},
		{ID: "plan_family", Name: "Family Share 100GB", Category: domain.CategoryPlan, Price: 120.00, RequiresPhone: true},
		{ID: "addon_insurance", Name: "Device Insurance", Category: domain.CategoryAddon, Price: 12.00},
		{ID: "addon_case", Name: "Protective Case", Category: domain.CategoryAddon, Price: 29.99},
		{ID: "addon_charger", Name: "Fast Charger", Category: domain.CategoryAddon, Price: 39.99},
		{ID: "addon_roaming", Name: "International Roaming Pack", Category: domain.CategoryAddon, Price: 15.00},
	}
}
