package validate

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// Проверка, что ProductValidator удовлетворяет интерфейсу ProductValidator.
var _ ports.ProductValidator = (*ProductValidator)(nil)

// ErrInvalidProduct — базовая (sentinel error) ошибка валидации товара.
var ErrInvalidProduct = errors.New("product validation failed")

// ProductValidator — проверка записи каталога.
type ProductValidator struct{}

// NewProductValidator — конструктор ProductValidator.
// Возвращает ErrInvalidProduct (с обёрнутой причиной) при любой проблеме.
func NewProductValidator() *ProductValidator { return &ProductValidator{} }

// Validate — обязательные поля, категория, цена с точностью до цента.
func (v *ProductValidator) Validate(_ context.Context, product *domain.Product) error {
	if product == nil {
		return fmt.Errorf("%w: товар не может быть nil", ErrInvalidProduct)
	}
	if product.ID == "" {
		return fmt.Errorf("%w: id обязателен", ErrInvalidProduct)
	}
	if product.Name == "" {
		return fmt.Errorf("%w: name обязателен (id=%s)", ErrInvalidProduct, product.ID)
	}
	if !product.Category.Valid() {
		return fmt.Errorf("%w: неизвестная category %q (id=%s)", ErrInvalidProduct, product.Category, product.ID)
	}
	if product.Price < 0 || math.IsNaN(product.Price) || math.IsInf(product.Price, 0) {
		return fmt.Errorf("%w: price должен быть неотрицательным числом (id=%s)", ErrInvalidProduct, product.ID)
	}
	if domain.Round2(product.Price) != product.Price {
		return fmt.Errorf("%w: price должен быть задан с точностью до цента (id=%s)", ErrInvalidProduct, product.ID)
	}
	if product.RequiresPhone && product.Category != domain.CategoryPlan {
		return fmt.Errorf("%w: requiresPhone допустим только для PLAN (id=%s)", ErrInvalidProduct, product.ID)
	}
	return nil
}
