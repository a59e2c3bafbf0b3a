package usecase

import (
	"fmt"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

// MsgPlanWithoutPhone — сообщение валидации для тарифа без телефона.
const MsgPlanWithoutPhone = "Cart contains plans but no phone. Plans require a phone."

// Rules — бизнес-правила состава корзины.
type Rules struct {
	MaxItems    int // предел строк в корзине
	MaxQuantity int // предел количества в одной строке
}

// CanAdd — проверка перед добавлением товара к текущим строкам.
// Порядок: предел строк, телефон, тариф. Наличие телефона для тарифа здесь не проверяется.
func (r Rules) CanAdd(items []domain.CartItem, product domain.Product) error {
	if len(items) >= r.MaxItems {
		return domain.NewBusinessRuleError(domain.RuleMaxItems,
			"Cart cannot contain more than %d items.", r.MaxItems)
	}

	phones, plans := countCategories(items)
	switch product.Category {
	case domain.CategoryPhone:
		if phones > 0 {
			return domain.NewBusinessRuleError(domain.RuleSinglePhone,
				"Cart already contains a phone. Only one phone is allowed per cart.")
		}
	case domain.CategoryPlan:
		if plans > 0 {
			return domain.NewBusinessRuleError(domain.RuleSinglePlan,
				"Cart already contains a plan. Only one plan is allowed per cart.")
		}
	}
	return nil
}

// CheckQuantity — количество в строке: целое в [1, MaxQuantity].
func (r Rules) CheckQuantity(quantity int) error {
	if quantity < 1 || quantity > r.MaxQuantity {
		return domain.NewBusinessRuleError(domain.RuleQuantity,
			"Quantity must be between 1 and %d.", r.MaxQuantity)
	}
	return nil
}

// Validate — все нарушения в фиксированном порядке:
// предел строк, тариф без телефона, несколько телефонов, несколько тарифов, количества.
func (r Rules) Validate(items []domain.CartItem) []string {
	errs := make([]string, 0)

	if len(items) > r.MaxItems {
		errs = append(errs, fmt.Sprintf("Cart exceeds the maximum of %d items.", r.MaxItems))
	}

	phones, plans := countCategories(items)
	if plans > 0 && phones == 0 {
		errs = append(errs, MsgPlanWithoutPhone)
	}
	if phones > 1 {
		errs = append(errs, "Cart contains multiple phones. Only one phone is allowed per cart.")
	}
	if plans > 1 {
		errs = append(errs, "Cart contains multiple plans. Only one plan is allowed per cart.")
	}

	for i := range items {
		if items[i].Quantity < 1 || items[i].Quantity > r.MaxQuantity {
			errs = append(errs, fmt.Sprintf(
				"Cart contains items with invalid quantities. Quantity must be between 1 and %d.", r.MaxQuantity))
			break
		}
	}
	return errs
}

func countCategories(items []domain.CartItem) (phones, plans int) {
	for i := range items {
		switch items[i].Category {
		case domain.CategoryPhone:
			phones++
		case domain.CategoryPlan:
			plans++
		}
	}
	return phones, plans
}
