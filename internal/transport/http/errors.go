package rest

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	codeBadRequest = "bad_request"
	codeNotFound   = "not_found"
	codeInternal   = "internal"

	msgInternal = "internal server error"
)

// writeError — перевод ошибки сервиса в HTTP-ответ.
// Нарушение правила количества — это ошибка запроса (400), остальные правила — 422.
func (h *Handler) writeError(c *gin.Context, op string, err error) {
	var ruleErr *domain.BusinessRuleError
	switch {
	case errors.As(err, &ruleErr) && ruleErr.Rule == domain.RuleQuantity:
		httpx.AbortError(c, http.StatusBadRequest, codeBadRequest, ruleErr.Message)
	case errors.As(err, &ruleErr):
		httpx.AbortError(c, http.StatusUnprocessableEntity, string(ruleErr.Rule), ruleErr.Message)
	case errors.Is(err, domain.ErrNotFound):
		httpx.AbortError(c, http.StatusNotFound, codeNotFound, notFoundMessage(op))
	default:
		h.log.Errorf(c.Request.Context(), "%s failed: %v", op, err)
		httpx.AbortError(c, http.StatusInternalServerError, codeInternal, msgInternal)
	}
}

func notFoundMessage(op string) string {
	switch op {
	case "GetProduct":
		return "product not found"
	case "UpdateItem", "RemoveItem":
		return "cart or item not found"
	case "AddItem":
		return "cart or product not found"
	default:
		return "cart not found"
	}
}

func quantityMessage(maxQuantity int) string {
	return fmt.Sprintf("quantity must be between 1 and %d", maxQuantity)
}

// bindErrorMessage — первое нарушенное поле в виде, понятном клиенту.
func bindErrorMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		fe := verrs[0]
		field := jsonFieldName(fe.Field())
		switch fe.Tag() {
		case "required":
			return field + " is required"
		case "gt":
			return field + " must be greater than " + fe.Param()
		default:
			return field + " is invalid"
		}
	}
	return "invalid request body"
}

func jsonFieldName(structField string) string {
	switch structField {
	case "ProductID":
		return "productId"
	case "Quantity":
		return "quantity"
	default:
		return structField
	}
}
