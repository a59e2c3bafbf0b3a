package config_test

import (
	"slices"
	"testing"
	"time"

	cfg "github.com/Gunvolt24/telecom_cart/config"
)

// TestLoadWithPrefix_Defaults — проверка наличия значений по умолчанию.
func TestLoadWithPrefix_Defaults(t *testing.T) {
	t.Parallel()

	c, err := cfg.LoadWithPrefix("CART_TEST_DEFAULTS")
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// HTTP
	if c.HTTP.Addr != ":8080" {
		t.Fatalf("HTTP.Addr: want :8080, got %q", c.HTTP.Addr)
	}
	if c.HTTP.GinMode != "debug" {
		t.Fatalf("HTTP.GinMode: want debug, got %q", c.HTTP.GinMode)
	}
	if c.HTTP.ReadTimeout != 10*time.Second || c.HTTP.WriteTimeout != 10*time.Second {
		t.Fatalf("HTTP timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadHeaderTimeout != 5*time.Second || c.HTTP.IdleTimeout != 60*time.Second {
		t.Fatalf("HTTP header/idle timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.HandlerTimeout != 3*time.Second || c.HTTP.GracefulTimeout != 5*time.Second {
		t.Fatalf("HTTP handler/graceful timeouts wrong: %+v", c.HTTP)
	}
	if c.HTTP.OpsEndpoints {
		t.Fatalf("HTTP.OpsEndpoints: want false by default")
	}

	// Metrics
	if c.Metrics.Addr != ":2112" {
		t.Fatalf("Metrics.Addr: want :2112, got %q", c.Metrics.Addr)
	}

	// Tracing
	if c.Tracing.Enabled {
		t.Fatalf("Tracing.Enabled: want false, got true")
	}
	if c.Tracing.ServiceName != "telecom-cart" || c.Tracing.Endpoint != "jaeger:4318" || c.Tracing.SampleRatio != 1 {
		t.Fatalf("Tracing defaults wrong: %+v", c.Tracing)
	}

	// Context
	if c.Context.TTL() != 5*time.Minute || c.Context.Sweep() != 150*time.Second || c.Context.Backend != "memory" {
		t.Fatalf("Context defaults wrong: %+v", c.Context)
	}

	// Cart
	if c.Cart.TaxRate != 0.13 || c.Cart.MaxItems != 50 || c.Cart.MaxQuantity != 10 {
		t.Fatalf("Cart defaults wrong: %+v", c.Cart)
	}

	// Catalog + Cache
	if c.Catalog.Source != "static" || c.Catalog.File != "" || !c.Catalog.Migrate {
		t.Fatalf("Catalog defaults wrong: %+v", c.Catalog)
	}
	if c.Cache.Capacity != 1000 || c.Cache.TTL != 10*time.Minute || c.Cache.WarmUpN != 100 {
		t.Fatalf("Cache defaults wrong: %+v", c.Cache)
	}

	// Postgres
	if c.Postgres.DSN == "" {
		t.Fatalf("Postgres.DSN should have default, got empty")
	}
	if c.Postgres.MaxConns != 10 {
		t.Fatalf("Postgres.MaxConns: want 10, got %d", c.Postgres.MaxConns)
	}

	// Redis
	if c.Redis.Addr != "redis:6379" || c.Redis.DB != 0 || c.Redis.KeyPrefix != "cart:" {
		t.Fatalf("Redis defaults wrong: %+v", c.Redis)
	}

	// Events
	if c.Events.Enabled || !slices.Equal(c.Events.Brokers, []string{"kafka:9092"}) || c.Events.Topic != "cart-events" {
		t.Fatalf("Events defaults wrong: %+v", c.Events)
	}
	if c.Events.WriteTimeout != 2*time.Second || c.Events.RetryInitial != 100*time.Millisecond ||
		c.Events.RetryMax != time.Second || c.Events.MaxAttempts != 3 || c.Events.RequiredAcks != "one" {
		t.Fatalf("Events timeouts wrong: %+v", c.Events)
	}

	// Logger
	if c.Logger.IsProd {
		t.Fatalf("Logger.IsProd: want false, got true")
	}
}

// Меняем окружение.
func TestLoadWithPrefix_Overrides(t *testing.T) {
	const p = "CART_TEST_OVR"

	// HTTP
	t.Setenv(p+"_HTTP_ADDR", ":9999")
	t.Setenv(p+"_HTTP_GIN_MODE", "release")
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "2s")
	t.Setenv(p+"_HTTP_WRITE_TIMEOUT", "3s")
	t.Setenv(p+"_HTTP_READ_HEADER_TIMEOUT", "1s")
	t.Setenv(p+"_HTTP_IDLE_TIMEOUT", "15s")
	t.Setenv(p+"_HTTP_HANDLER_TIMEOUT", "4500ms")
	t.Setenv(p+"_HTTP_OPS_ENDPOINTS", "true")

	// Metrics
	t.Setenv(p+"_METRICS_ADDR", ":9998")

	// Tracing
	t.Setenv(p+"_TRACING_OTEL_ENABLED", "true")
	t.Setenv(p+"_TRACING_OTEL_SERVICE_NAME", "svc")
	t.Setenv(p+"_TRACING_OTEL_ENDPOINT", "collector:4318")
	t.Setenv(p+"_TRACING_OTEL_SAMPLE_RATIO", "0.25")

	// Context
	t.Setenv(p+"_CONTEXT_TTL_MS", "60000")
	t.Setenv(p+"_CONTEXT_SWEEP_INTERVAL", "7s")
	t.Setenv(p+"_CONTEXT_BACKEND", "redis")

	// Cart
	t.Setenv(p+"_CART_TAX_RATE", "0.2")
	t.Setenv(p+"_CART_MAX_ITEMS", "5")
	t.Setenv(p+"_CART_MAX_QUANTITY", "3")

	// Catalog + Cache
	t.Setenv(p+"_CATALOG_SOURCE", "file")
	t.Setenv(p+"_CATALOG_FILE", "/etc/catalog.jsonl")
	t.Setenv(p+"_CATALOG_MIGRATE", "false")
	t.Setenv(p+"_CACHE_CAPACITY", "777")
	t.Setenv(p+"_CACHE_TTL", "30m")
	t.Setenv(p+"_CACHE_WARMUP_N", "0")

	// Postgres
	t.Setenv(p+"_POSTGRES_DSN", "postgres://u:p@h:5432/db?sslmode=disable")
	t.Setenv(p+"_POSTGRES_MAX_CONNS", "42")

	// Redis
	t.Setenv(p+"_REDIS_ADDR", "r:6380")
	t.Setenv(p+"_REDIS_PASSWORD", "secret")
	t.Setenv(p+"_REDIS_DB", "2")
	t.Setenv(p+"_REDIS_KEY_PREFIX", "t:")

	// Events
	t.Setenv(p+"_EVENTS_ENABLED", "true")
	t.Setenv(p+"_EVENTS_BROKERS", "k1:9092,k2:9093")
	t.Setenv(p+"_EVENTS_TOPIC", "cart-events-test")
	t.Setenv(p+"_EVENTS_REQUIRED_ACKS", "all")
	t.Setenv(p+"_EVENTS_WRITE_TIMEOUT", "7s")
	t.Setenv(p+"_EVENTS_MAX_ATTEMPTS", "5")

	// Logger
	t.Setenv(p+"_LOGGER_IS_PROD", "true")

	c, err := cfg.LoadWithPrefix(p)
	if err != nil {
		t.Fatalf("LoadWithPrefix error: %v", err)
	}

	// Проверки
	if c.HTTP.Addr != ":9999" || c.HTTP.GinMode != "release" || !c.HTTP.OpsEndpoints {
		t.Fatalf("HTTP overrides wrong: %+v", c.HTTP)
	}
	if c.HTTP.ReadTimeout != 2*time.Second || c.HTTP.WriteTimeout != 3*time.Second ||
		c.HTTP.ReadHeaderTimeout != 1*time.Second || c.HTTP.IdleTimeout != 15*time.Second ||
		c.HTTP.HandlerTimeout != 4500*time.Millisecond {
		t.Fatalf("HTTP timeouts override wrong: %+v", c.HTTP)
	}
	if c.Metrics.Addr != ":9998" {
		t.Fatalf("Metrics.Addr override wrong: %q", c.Metrics.Addr)
	}
	if !c.Tracing.Enabled || c.Tracing.ServiceName != "svc" || c.Tracing.Endpoint != "collector:4318" || c.Tracing.SampleRatio != 0.25 {
		t.Fatalf("Tracing overrides wrong: %+v", c.Tracing)
	}
	if c.Context.TTL() != time.Minute || c.Context.Sweep() != 7*time.Second || c.Context.Backend != "redis" {
		t.Fatalf("Context overrides wrong: %+v", c.Context)
	}
	if c.Cart.TaxRate != 0.2 || c.Cart.MaxItems != 5 || c.Cart.MaxQuantity != 3 {
		t.Fatalf("Cart overrides wrong: %+v", c.Cart)
	}
	if c.Catalog.Source != "file" || c.Catalog.File != "/etc/catalog.jsonl" || c.Catalog.Migrate {
		t.Fatalf("Catalog overrides wrong: %+v", c.Catalog)
	}
	if c.Cache.Capacity != 777 || c.Cache.TTL != 30*time.Minute || c.Cache.WarmUpN != 0 {
		t.Fatalf("Cache overrides wrong: %+v", c.Cache)
	}
	if c.Postgres.DSN != "postgres://u:p@h:5432/db?sslmode=disable" || c.Postgres.MaxConns != 42 {
		t.Fatalf("Postgres overrides wrong: %+v", c.Postgres)
	}
	if c.Redis.Addr != "r:6380" || c.Redis.Password != "secret" || c.Redis.DB != 2 || c.Redis.KeyPrefix != "t:" {
		t.Fatalf("Redis overrides wrong: %+v", c.Redis)
	}
	if !c.Events.Enabled || !slices.Equal(c.Events.Brokers, []string{"k1:9092", "k2:9093"}) ||
		c.Events.Topic != "cart-events-test" || c.Events.RequiredAcks != "all" ||
		c.Events.WriteTimeout != 7*time.Second || c.Events.MaxAttempts != 5 {
		t.Fatalf("Events overrides wrong: %+v", c.Events)
	}
	if !c.Logger.IsProd {
		t.Fatalf("Logger.IsProd override wrong: %+v", c.Logger)
	}
}

// Тоже меняем окружение — но с невалидным значением.
func TestLoadWithPrefix_InvalidValue_ReturnsError(t *testing.T) {
	const p = "CART_TEST_BAD"
	t.Setenv(p+"_HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := cfg.LoadWithPrefix(p); err == nil {
		t.Fatalf("expected error for invalid duration, got nil")
	}
}
