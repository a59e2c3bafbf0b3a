package validate

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
)

// JSONLResult — статистика валидации потока JSONL.
type JSONLResult struct {
	ValidLinesCount   int
	InvalidLinesCount int
	Products          []domain.Product
}

// ValidateJSONLStream — читает JSONL, валидирует каждую строку, валидные пишет в writer
// каноническим JSON (если writer не nil). Пустые строки пропускаются.
func ValidateJSONLStream(ctx context.Context, validator ports.ProductValidator, ir io.Reader, ow io.Writer) (JSONLResult, error) {
	var res JSONLResult

	scanner := bufio.NewScanner(ir)
	buf := make([]byte, 0, 64*1024)
	scanner.Buffer(buf, 1024*1024)

	for scanner.Scan() {
		lineBytes := scanner.Bytes()
		if len(strings.TrimSpace(string(lineBytes))) == 0 {
			continue
		}

		product, err := ValidateProductFromJSON(ctx, validator, lineBytes)
		if err != nil {
			res.InvalidLinesCount++
			continue
		}
		res.ValidLinesCount++
		res.Products = append(res.Products, *product)

		if ow == nil {
			continue
		}
		marshal, _ := json.Marshal(product)
		if _, err := ow.Write(append(marshal, '\n')); err != nil {
			return res, fmt.Errorf("write valid line: %w", err)
		}
	}
	if err := scanner.Err(); err != nil {
		return res, fmt.Errorf("scan: %w", err)
	}
	return res, nil
}
