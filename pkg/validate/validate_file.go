package validate

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// InputFormat допустимые значения.
type InputFormat string

const (
	FormatAuto  InputFormat = "auto"
	FormatJSON  InputFormat = "json"
	FormatJSONL InputFormat = "jsonl"
)

// ResolveFormat — auto определяется по расширению, по умолчанию JSON.
func ResolveFormat(filePath string, format InputFormat) InputFormat {
	if format != FormatAuto && format != "" {
		return format
	}
	if strings.EqualFold(filepath.Ext(filePath), ".jsonl") {
		return FormatJSONL
	}
	return FormatJSON
}

// ValidateFile — валидирует файл каталога и пишет валидные товары в writer (по одному на строку).
func ValidateFile(ctx context.Context, validator ports.ProductValidator, filePath string, format InputFormat, ow io.Writer) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	switch ResolveFormat(filePath, format) {
	case FormatJSON:
		raw, err := io.ReadAll(file)
		if err != nil {
			return "", fmt.Errorf("read file: %w", err)
		}
		products, err := ValidateCatalogJSON(ctx, validator, raw)
		if err != nil {
			return "0 valid / 1 invalid", err
		}
		for i := range products {
			line, _ := json.Marshal(&products[i])
			if _, err := ow.Write(append(line, '\n')); err != nil {
				return "", fmt.Errorf("write json: %w", err)
			}
		}
		return fmt.Sprintf("%d valid / 0 invalid", len(products)), nil

	case FormatJSONL:
		result, err := ValidateJSONLStream(ctx, validator, file, ow)
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%d valid / %d invalid", result.ValidLinesCount, result.InvalidLinesCount), nil

	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

// LoadCatalogFile — загрузка каталога из файла; любая невалидная запись отклоняет весь файл.
func LoadCatalogFile(ctx context.Context, validator ports.ProductValidator, filePath string, format InputFormat) ([]domain.Product, error) {
	if validator == nil {
		validator = NewProductValidator()
	}
	switch ResolveFormat(filePath, format) {
	case FormatJSON:
		raw, err := os.ReadFile(filePath)
		if err != nil {
			return nil, fmt.Errorf("read file: %w", err)
		}
		return ValidateCatalogJSON(ctx, validator, raw)

	case FormatJSONL:
		file, err := os.Open(filePath)
		if err != nil {
			return nil, fmt.Errorf("open file: %w", err)
		}
		defer file.Close()

		result, err := ValidateJSONLStream(ctx, validator, file, nil)
		if err != nil {
			return nil, err
		}
		if result.InvalidLinesCount > 0 {
			return nil, fmt.Errorf("%w: %d invalid lines in %s", ErrInvalidProduct, result.InvalidLinesCount, filePath)
		}
		return result.Products, nil

	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
}
