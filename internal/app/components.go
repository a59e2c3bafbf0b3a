package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/Gunvolt24/telecom_cart/config"
	memcache "github.com/Gunvolt24/telecom_cart/internal/cache/memory"
	"github.com/Gunvolt24/telecom_cart/internal/catalog"
	"github.com/Gunvolt24/telecom_cart/internal/kafka"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	memprovider "github.com/Gunvolt24/telecom_cart/internal/provider/memory"
	redisprovider "github.com/Gunvolt24/telecom_cart/internal/provider/redis"
	"github.com/Gunvolt24/telecom_cart/internal/repo/postgres"
	"github.com/Gunvolt24/telecom_cart/pkg/validate"
	goredis "github.com/redis/go-redis/v9"
)

const (
	catalogStatic   = "static"
	catalogFile     = "file"
	catalogPostgres = "postgres"

	backendMemory = "memory"
	backendRedis  = "redis"
)

func noopCleanup() {}

// buildCatalog — каталог по CATALOG_SOURCE.
// static и file читаются один раз; postgres читается напрямую через LRU-кэш.
func buildCatalog(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.Catalog, Cleanup, error) {
	validator := validate.NewProductValidator()

	switch strings.ToLower(strings.TrimSpace(cfg.Catalog.Source)) {
	case "", catalogStatic:
		c, err := catalog.Load(ctx, catalog.StaticSource{}, validator)
		if err != nil {
			return nil, noopCleanup, err
		}
		log.Infof(ctx, "catalog: static, %d products", c.Len())
		return c, noopCleanup, nil

	case catalogFile:
		if cfg.Catalog.File == "" {
			return nil, noopCleanup, fmt.Errorf("catalog source %q requires CATALOG_FILE", catalogFile)
		}
		c, err := catalog.Load(ctx, catalog.FileSource{Path: cfg.Catalog.File, Validator: validator}, validator)
		if err != nil {
			return nil, noopCleanup, err
		}
		log.Infof(ctx, "catalog: file %s, %d products", cfg.Catalog.File, c.Len())
		return c, noopCleanup, nil

	case catalogPostgres:
		if cfg.Catalog.Migrate {
			if err := postgres.Migrate(ctx, cfg.Postgres.DSN); err != nil {
				return nil, noopCleanup, err
			}
		}
		pool, err := postgres.NewPool(ctx, cfg.Postgres.DSN, postgres.WithMaxConns(cfg.Postgres.MaxConns))
		if err != nil {
			return nil, noopCleanup, err
		}
		cache := memcache.NewProductCache(cfg.Cache.Capacity, cfg.Cache.TTL)
		c := catalog.NewReadThrough(postgres.NewProductRepository(pool), cache, validator, log)

		// Прогрев кэша
		if n := cfg.Cache.WarmUpN; n > 0 {
			if warmed, err := c.WarmUp(ctx, n); err != nil {
				log.Warnf(ctx, "warm-up product cache failed: %v", err)
			} else {
				log.Infof(ctx, "catalog: postgres, %d products warmed up", warmed)
			}
		}
		return c, pool.Close, nil

	default:
		return nil, noopCleanup, fmt.Errorf("unknown catalog source %q", cfg.Catalog.Source)
	}
}

// buildProvider — провайдер контекстов по CONTEXT_BACKEND.
func buildProvider(ctx context.Context, cfg *config.Config, log ports.Logger) (ports.ContextProvider, Cleanup, error) {
	ttl := cfg.Context.TTL()

	switch strings.ToLower(strings.TrimSpace(cfg.Context.Backend)) {
	case "", backendMemory:
		log.Infof(ctx, "context provider: memory ttl=%s", ttl)
		return memprovider.NewProvider(ttl), noopCleanup, nil

	case backendRedis:
		rdb := goredis.NewClient(&goredis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			_ = rdb.Close()
			return nil, noopCleanup, fmt.Errorf("redis ping %s: %w", cfg.Redis.Addr, err)
		}
		cleanup := func() {
			if err := rdb.Close(); err != nil {
				log.Warnf(context.Background(), "redis close: %v", err)
			}
		}
		log.Infof(ctx, "context provider: redis addr=%s ttl=%s", cfg.Redis.Addr, ttl)
		return redisprovider.NewProvider(rdb, ttl, redisprovider.WithKeyPrefix(cfg.Redis.KeyPrefix)), cleanup, nil

	default:
		return nil, noopCleanup, fmt.Errorf("unknown context backend %q", cfg.Context.Backend)
	}
}

// buildEvents — публикатор событий корзины; при выключенных событиях no-op.
func buildEvents(ctx context.Context, cfg *config.Config, log ports.Logger) ports.EventPublisher {
	if !cfg.Events.Enabled {
		return kafka.NoopPublisher{}
	}
	log.Infof(ctx, "cart events: kafka brokers=%v topic=%s", cfg.Events.Brokers, cfg.Events.Topic)
	return kafka.NewPublisher(&kafka.PublisherConfig{
		Brokers:      cfg.Events.Brokers,
		Topic:        cfg.Events.Topic,
		RequiredAcks: cfg.Events.RequiredAcks,
		WriteTimeout: cfg.Events.WriteTimeout,
		RetryInitial: cfg.Events.RetryInitial,
		RetryMax:     cfg.Events.RetryMax,
		MaxAttempts:  cfg.Events.MaxAttempts,
	}, log)
}
