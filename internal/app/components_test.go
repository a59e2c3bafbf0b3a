package app

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Gunvolt24/telecom_cart/config"
	"github.com/Gunvolt24/telecom_cart/internal/catalog"
	"github.com/Gunvolt24/telecom_cart/internal/kafka"
	memprovider "github.com/Gunvolt24/telecom_cart/internal/provider/memory"
	redisprovider "github.com/Gunvolt24/telecom_cart/internal/provider/redis"
	"github.com/Gunvolt24/telecom_cart/internal/testutil"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg, err := config.LoadWithPrefix("CART_APP_TEST")
	require.NoError(t, err)
	return &cfg
}

func TestBuildCatalog_Static(t *testing.T) {
	cfg := testConfig(t)

	c, cleanup, err := buildCatalog(context.Background(), cfg, testutil.NoopLogger{})
	require.NoError(t, err)
	defer cleanup()

	list, err := c.List(context.Background())
	require.NoError(t, err)
	require.Equal(t, catalog.DefaultProducts(), list)
}

func TestBuildCatalog_File(t *testing.T) {
	cfg := testConfig(t)
	cfg.Catalog.Source = "file"
	cfg.Catalog.File = filepath.Join(t.TempDir(), "catalog.json")
	require.NoError(t, os.WriteFile(cfg.Catalog.File,
		[]byte(`[{"id":"phone_x","name":"X","category":"PHONE","price":100}]`), 0o600))

	c, cleanup, err := buildCatalog(context.Background(), cfg, testutil.NoopLogger{})
	require.NoError(t, err)
	defer cleanup()

	_, ok, err := c.Get(context.Background(), "phone_x")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestBuildCatalog_Errors(t *testing.T) {
	cfg := testConfig(t)

	cfg.Catalog.Source = "file"
	_, _, err := buildCatalog(context.Background(), cfg, testutil.NoopLogger{})
	require.ErrorContains(t, err, "CATALOG_FILE")

	cfg.Catalog.Source = "ftp"
	_, _, err = buildCatalog(context.Background(), cfg, testutil.NoopLogger{})
	require.ErrorContains(t, err, "unknown catalog source")
}

func TestBuildProvider_Memory(t *testing.T) {
	cfg := testConfig(t)

	p, cleanup, err := buildProvider(context.Background(), cfg, testutil.NoopLogger{})
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &memprovider.Provider{}, p)
}

func TestBuildProvider_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	cfg := testConfig(t)
	cfg.Context.Backend = "redis"
	cfg.Redis.Addr = mr.Addr()

	p, cleanup, err := buildProvider(context.Background(), cfg, testutil.NoopLogger{})
	require.NoError(t, err)
	defer cleanup()
	require.IsType(t, &redisprovider.Provider{}, p)

	c, err := p.CreateContext(context.Background(), "cart-1")
	require.NoError(t, err)
	require.True(t, mr.Exists(cfg.Redis.KeyPrefix+"ctx:"+c.ID))
}

func TestBuildProvider_RedisUnavailable(t *testing.T) {
	cfg := testConfig(t)
	cfg.Context.Backend = "redis"
	cfg.Redis.Addr = "127.0.0.1:1"

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, _, err := buildProvider(ctx, cfg, testutil.NoopLogger{})
	require.ErrorContains(t, err, "redis ping")
}

func TestBuildEvents(t *testing.T) {
	cfg := testConfig(t)
	require.IsType(t, kafka.NoopPublisher{}, buildEvents(context.Background(), cfg, testutil.NoopLogger{}))

	cfg.Events.Enabled = true
	pub := buildEvents(context.Background(), cfg, testutil.NoopLogger{})
	require.IsType(t, &kafka.Publisher{}, pub)
	require.NoError(t, pub.Close())
}

func TestApplyGinMode(t *testing.T) {
	defer gin.SetMode(gin.TestMode)

	applyGinMode(context.Background(), "release", testutil.NoopLogger{})
	require.Equal(t, gin.ReleaseMode, gin.Mode())

	applyGinMode(context.Background(), "weird", testutil.NoopLogger{})
	require.Equal(t, gin.DebugMode, gin.Mode())
}

func TestNewMetricsServer(t *testing.T) {
	require.Nil(t, newMetricsServer("", ":8080", time.Second))
	require.Nil(t, newMetricsServer(":8080", ":8080", time.Second))

	srv := newMetricsServer(":2112", ":8080", time.Second)
	require.NotNil(t, srv)
	require.Equal(t, ":2112", srv.Addr)
}
