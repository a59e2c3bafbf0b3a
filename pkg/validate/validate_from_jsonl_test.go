package validate

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
)

func TestValidateJSONLStream_Mixed(t *testing.T) {
	in := strings.Join([]string{
		productJSON("phone_a", "PHONE", "100"),
		"",
		productJSON("bad", "TABLET", "1"),
		`not a json`,
		productJSON("plan_b", "PLAN", "45"),
	}, "\n")

	var out bytes.Buffer
	res, err := ValidateJSONLStream(context.Background(), NewProductValidator(), strings.NewReader(in), &out)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 2 || res.InvalidLinesCount != 2 {
		t.Fatalf("unexpected counts: %+v", res)
	}
	if len(res.Products) != 2 || res.Products[1].ID != "plan_b" {
		t.Fatalf("unexpected products: %+v", res.Products)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 output lines, got %d", len(lines))
	}
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestValidateJSONLStream_WriteError(t *testing.T) {
	_, err := ValidateJSONLStream(context.Background(), NewProductValidator(), strings.NewReader(productJSON("a", "ADDON", "1")), failingWriter{})
	if err == nil || !strings.Contains(err.Error(), "write valid line") {
		t.Fatalf("expected write error, got %v", err)
	}
}

func TestValidateJSONLStream_NilWriter(t *testing.T) {
	res, err := ValidateJSONLStream(context.Background(), NewProductValidator(), strings.NewReader(productJSON("a", "ADDON", "1")), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.ValidLinesCount != 1 {
		t.Fatalf("unexpected counts: %+v", res)
	}
}
