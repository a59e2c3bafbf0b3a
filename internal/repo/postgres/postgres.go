package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	defaultConnLifetime = time.Hour
	defaultConnIdleTime = 30 * time.Minute
)

// PoolOption — настройка пула каталога.
type PoolOption func(*pgxpool.Config)

// WithMaxConns — размер пула; n <= 0 оставляет значение pgx.
func WithMaxConns(n int32) PoolOption {
	return func(c *pgxpool.Config) {
		if n > 0 {
			c.MaxConns = n
		}
	}
}

// WithConnLifetime — время жизни и простоя соединения.
func WithConnLifetime(lifetime, idle time.Duration) PoolOption {
	return func(c *pgxpool.Config) {
		if lifetime > 0 {
			c.MaxConnLifetime = lifetime
		}
		if idle > 0 {
			c.MaxConnIdleTime = idle
		}
	}
}

// NewPool — пул соединений к базе каталога; Ping сразу, чтобы не стартовать без БД.
func NewPool(ctx context.Context, dsn string, opts ...PoolOption) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse catalog dsn: %w", err)
	}
	cfg.MaxConnLifetime = defaultConnLifetime
	cfg.MaxConnIdleTime = defaultConnIdleTime
	for _, opt := range opts {
		opt(cfg)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create catalog pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping catalog db: %w", err)
	}
	return pool, nil
}
