package domain

import "github.com/shopspring/decimal"

// Round2 — округление до центов, половина от нуля (как toFixed в большинстве случаев).
func Round2(v float64) float64 {
	return decimal.NewFromFloat(v).Round(2).InexactFloat64()
}

// LineTotal — стоимость строки: round2(unitPrice × quantity).
func LineTotal(unitPrice float64, quantity int) float64 {
	d := decimal.NewFromFloat(unitPrice).Mul(decimal.NewFromInt(int64(quantity)))
	return d.Round(2).InexactFloat64()
}

// Totals — подытог, налог и итог; каждый шаг округляется независимо.
func Totals(items []CartItem, taxRate float64) (subtotal, tax, total float64) {
	sum := decimal.Zero
	for i := range items {
		sum = sum.Add(decimal.NewFromFloat(items[i].TotalPrice))
	}
	sub := sum.Round(2)
	tx := sub.Mul(decimal.NewFromFloat(taxRate)).Round(2)
	tot := sub.Add(tx).Round(2)
	return sub.InexactFloat64(), tx.InexactFloat64(), tot.InexactFloat64()
}

// BuildCart — собирает представление корзины из текущей последовательности строк.
func BuildCart(cartID string, items []CartItem, taxRate float64) *Cart {
	cloned := CloneItems(items)
	subtotal, tax, total := Totals(cloned, taxRate)
	return &Cart{
		ID:        cartID,
		Items:     cloned,
		ItemCount: len(cloned),
		Subtotal:  subtotal,
		Tax:       tax,
		Total:     total,
	}
}
