package catalog

import (
	"context"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/validate"
)

var _ ports.ProductSource = FileSource{}

// FileSource — каталог из файла JSON (массив) или JSONL (товар на строку).
type FileSource struct {
	Path      string
	Validator ports.ProductValidator
}

func (f FileSource) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	return validate.LoadCatalogFile(ctx, f.Validator, f.Path, validate.FormatAuto)
}
