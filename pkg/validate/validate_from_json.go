package validate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// ValidateProductFromJSON — строгий разбор одного товара и его валидация.
func ValidateProductFromJSON(ctx context.Context, validator ports.ProductValidator, raw []byte) (*domain.Product, error) {
	var product domain.Product
	if err := decodeStrict(raw, &product); err != nil {
		return nil, err
	}
	if err := validator.Validate(ctx, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// ValidateCatalogJSON — строгий разбор JSON-массива товаров; первая ошибка прерывает разбор.
func ValidateCatalogJSON(ctx context.Context, validator ports.ProductValidator, raw []byte) ([]domain.Product, error) {
	var products []domain.Product
	if err := decodeStrict(raw, &products); err != nil {
		return nil, err
	}
	for i := range products {
		if err := validator.Validate(ctx, &products[i]); err != nil {
			return nil, fmt.Errorf("products[%d]: %w", i, err)
		}
	}
	return products, nil
}

func decodeStrict(raw []byte, dst any) error {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	// гарантируем отсутствие данных после объекта
	if err := dec.Decode(new(struct{})); err != io.EOF {
		return fmt.Errorf("invalid json: trailing data")
	}
	return nil
}
