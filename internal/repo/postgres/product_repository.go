package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Gunvolt24/telecom_cart/internal/domain"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Проверка, что ProductRepository удовлетворяет интерфейсу ProductStore.
var _ ports.ProductStore = (*ProductRepository)(nil)

// ProductRepository — каталог товаров в Postgres (pgxpool).
type ProductRepository struct {
	pool *pgxpool.Pool
}

// NewProductRepository - конструктор ProductRepository.
func NewProductRepository(pool *pgxpool.Pool) *ProductRepository {
	return &ProductRepository{pool: pool}
}

// LoadProducts — весь каталог в порядке position.
func (r *ProductRepository) LoadProducts(ctx context.Context) ([]domain.Product, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT id, name, category, price::float8, requires_phone
		FROM products
		ORDER BY position, id
	`)
	if err != nil {
		return nil, fmt.Errorf("select products: %w", err)
	}
	defer rows.Close()

	products := make([]domain.Product, 0, 16)
	for rows.Next() {
		var (
			p        domain.Product
			category string
		)
		if err := rows.Scan(&p.ID, &p.Name, &category, &p.Price, &p.RequiresPhone); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		p.Category = domain.Category(category)
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("products rows: %w", err)
	}
	return products, nil
}

// GetProduct — товар по id; (zero, false, nil) если его нет.
func (r *ProductRepository) GetProduct(ctx context.Context, productID string) (domain.Product, bool, error) {
	var (
		p        domain.Product
		category string
	)
	err := r.pool.QueryRow(ctx, `
		SELECT id, name, category, price::float8, requires_phone
		FROM products
		WHERE id = $1
	`, productID).Scan(&p.ID, &p.Name, &category, &p.Price, &p.RequiresPhone)
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Product{}, false, nil
	}
	if err != nil {
		return domain.Product{}, false, fmt.Errorf("select product: %w", err)
	}
	p.Category = domain.Category(category)
	return p, true, nil
}

// Upsert — транзакционно сохраняет товары; position продолжает текущий максимум,
// у существующих товаров position не меняется.
func (r *ProductRepository) Upsert(ctx context.Context, products []domain.Product) error {
	if len(products) == 0 {
		return nil
	}

	transaction, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		// При уже завершённой транзакции Rollback вернёт ErrTxClosed — игнорируем.
		if rbErr := transaction.Rollback(ctx); rbErr != nil && !errors.Is(rbErr, pgx.ErrTxClosed) {
			_ = rbErr
		}
	}()

	var base int
	if err := transaction.QueryRow(ctx, `SELECT COALESCE(MAX(position), 0) FROM products`).Scan(&base); err != nil {
		return fmt.Errorf("select max position: %w", err)
	}

	batch := &pgx.Batch{}
	for i := range products {
		p := products[i]
		batch.Queue(`
			INSERT INTO products (id, name, category, price, requires_phone, position)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (id) DO UPDATE SET
				name = EXCLUDED.name,
				category = EXCLUDED.category,
				price = EXCLUDED.price,
				requires_phone = EXCLUDED.requires_phone,
				updated_at = now()
		`, p.ID, p.Name, string(p.Category), p.Price, p.RequiresPhone, base+i+1)
	}

	results := transaction.SendBatch(ctx, batch)
	for i := range products {
		if _, err := results.Exec(); err != nil {
			_ = results.Close()
			return fmt.Errorf("upsert product %q: %w", products[i].ID, err)
		}
	}
	if err := results.Close(); err != nil {
		return fmt.Errorf("close batch: %w", err)
	}

	return transaction.Commit(ctx)
}
