package domain_test

import (
	"errors"
	"testing"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
)

func TestLineTotal(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		price float64
		qty   int
		want  float64
	}{
		{"single", 1399.99, 1, 1399.99},
		{"multiple", 12.00, 3, 36.00},
		{"rounds_half_up", 0.125, 1, 0.13},
		{"repeating", 33.333, 3, 100.00},
		{"float_noise", 0.1, 3, 0.30},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := domain.LineTotal(tt.price, tt.qty); got != tt.want {
				t.Fatalf("LineTotal(%v,%d) = %v, want %v", tt.price, tt.qty, got, tt.want)
			}
		})
	}
}

func TestTotals_IPhoneWithInsurance(t *testing.T) {
	items := []domain.CartItem{
		{ProductID: "phone_iphone15", UnitPrice: 1399.99, Quantity: 1, TotalPrice: 1399.99},
		{ProductID: "addon_insurance", UnitPrice: 12.00, Quantity: 1, TotalPrice: 12.00},
	}

	subtotal, tax, total := domain.Totals(items, 0.13)
	if subtotal != 1411.99 || tax != 183.56 || total != 1595.55 {
		t.Fatalf("got subtotal=%v tax=%v total=%v, want 1411.99/183.56/1595.55", subtotal, tax, total)
	}
}

func TestTotals_Empty(t *testing.T) {
	subtotal, tax, total := domain.Totals(nil, 0.13)
	if subtotal != 0 || tax != 0 || total != 0 {
		t.Fatalf("empty cart must be zero, got %v/%v/%v", subtotal, tax, total)
	}
}

func TestBuildCart_ClonesItems(t *testing.T) {
	items := []domain.CartItem{{ID: "i1", TotalPrice: 10}}
	cart := domain.BuildCart("c1", items, 0.1)

	items[0].ID = "changed"
	if cart.Items[0].ID != "i1" {
		t.Fatalf("cart view must not share backing array with the source")
	}
	if cart.ItemCount != 1 || cart.Subtotal != 10 || cart.Tax != 1 || cart.Total != 11 {
		t.Fatalf("unexpected view: %+v", cart)
	}
}

func TestBuildCart_EmptyItemsNotNil(t *testing.T) {
	cart := domain.BuildCart("c1", nil, 0.13)
	if cart.Items == nil {
		t.Fatalf("items must be an empty slice, not nil")
	}
}

func TestBusinessRuleError_Is(t *testing.T) {
	err := error(domain.NewBusinessRuleError(domain.RuleSinglePhone, "only %d phone", 1))
	if !errors.Is(err, domain.ErrBusinessRule) {
		t.Fatalf("business rule error must match ErrBusinessRule")
	}
	if errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("business rule error must not match ErrNotFound")
	}
	var bre *domain.BusinessRuleError
	if !errors.As(err, &bre) || bre.Rule != domain.RuleSinglePhone || bre.Error() != "only 1 phone" {
		t.Fatalf("unexpected error: %#v", err)
	}
}

func TestErrItemNotFound_IsNotFound(t *testing.T) {
	if !errors.Is(domain.ErrItemNotFound, domain.ErrNotFound) {
		t.Fatalf("ErrItemNotFound must wrap ErrNotFound")
	}
}
