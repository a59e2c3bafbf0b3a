package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound — корзина, товар или строка отсутствуют.
	ErrNotFound = errors.New("not found")

	// ErrItemNotFound — провайдер не знает строку с таким ID.
	ErrItemNotFound = fmt.Errorf("cart item %w", ErrNotFound)

	// ErrContextExpired — внутренний сигнал провайдера: контекст истёк или не найден.
	// Не должен выходить за пределы оркестратора.
	ErrContextExpired = errors.New("cart context expired")

	// ErrBusinessRule — базовая ошибка нарушения бизнес-правила.
	ErrBusinessRule = errors.New("business rule violation")
)

// Rule — идентификатор бизнес-правила (используется в метриках и ответах API).
type Rule string

const (
	RuleMaxItems          Rule = "max_items"
	RuleSinglePhone       Rule = "single_phone"
	RuleSinglePlan        Rule = "single_plan"
	RulePlanRequiresPhone Rule = "plan_requires_phone"
	RuleQuantity          Rule = "quantity"
)

// BusinessRuleError — нарушение правила состава корзины с понятным человеку сообщением.
type BusinessRuleError struct {
	Rule    Rule
	Message string
}

func (e *BusinessRuleError) Error() string { return e.Message }

// Is — позволяет проверять errors.Is(err, ErrBusinessRule).
func (e *BusinessRuleError) Is(target error) bool { return target == ErrBusinessRule }

// NewBusinessRuleError - конструктор BusinessRuleError.
func NewBusinessRuleError(rule Rule, format string, args ...any) *BusinessRuleError {
	return &BusinessRuleError{Rule: rule, Message: fmt.Sprintf(format, args...)}
}
