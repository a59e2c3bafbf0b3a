//go:build integration

package testutil

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

func randHex(n int) string {
	b := make([]byte, n)
	_, _ = rand.Read(b)
	return hex.EncodeToString(b)
}

// UniqSuffix — короткий случайный суффикс для идентификаторов в тестах.
func UniqSuffix() string { return randHex(6) }

// MakeProduct — валидный товар с уникальным id.
func MakeProduct(category domain.Category, opts ...func(*domain.Product)) domain.Product {
	id := strings.ToLower(string(category)) + "_" + UniqSuffix()
	p := domain.Product{
		ID:            id,
		Name:          "Test " + id,
		Category:      category,
		Price:         19.99,
		RequiresPhone: category == domain.CategoryPlan,
	}
	for _, opt := range opts {
		opt(&p)
	}
	return p
}
