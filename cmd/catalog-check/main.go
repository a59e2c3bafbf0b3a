package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/repo/postgres"
	"github.com/Gunvolt24/telecom_cart/pkg/validate"
)

// CLI-приложение для проверки файла каталога товаров и (опционально) загрузки его в Postgres.
func main() {
	inputPath := flag.String("in", "", "path to input (.json or .jsonl). If empty, reads from stdin.")
	formatStr := flag.String("format", "auto", "input format: auto|json|jsonl")
	importDSN := flag.String("import-dsn", "", "postgres DSN: upsert the validated catalog into the products table")
	flag.Parse()

	ctx := context.Background()
	productValidator := validate.NewProductValidator()

	format := validate.InputFormat(*formatStr)
	path := *inputPath

	// stdin вариант: считаем, что jsonl
	if path == "" {
		if format == validate.FormatAuto {
			format = validate.FormatJSONL
		}
		path = "/dev/stdin"
	}

	if *importDSN != "" {
		if err := importCatalog(ctx, *importDSN, path, format); err != nil {
			fmt.Fprintf(os.Stderr, "import: %v\n", err)
			os.Exit(1)
		}
		return
	}

	summary, err := validate.ValidateFile(ctx, productValidator, path, format, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "validation: %v (%s)\n", err, summary)
		os.Exit(1)
	}
	fmt.Fprintf(os.Stderr, "validation ok (%s)\n", summary)
}

// importCatalog — строгая загрузка: любой невалидный товар отменяет импорт целиком.
func importCatalog(ctx context.Context, dsn, path string, format validate.InputFormat) error {
	products, err := validate.LoadCatalogFile(ctx, validate.NewProductValidator(), path, format)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, time.Minute)
	defer cancel()

	if err := postgres.Migrate(ctx, dsn); err != nil {
		return err
	}
	pool, err := postgres.NewPool(ctx, dsn, postgres.WithMaxConns(2))
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := postgres.NewProductRepository(pool).Upsert(ctx, products); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "imported %d products\n", len(products))
	return nil
}
