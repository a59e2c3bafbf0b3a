package app

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Gunvolt24/telecom_cart/config"
	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/internal/sweeper"
	rest "github.com/Gunvolt24/telecom_cart/internal/transport/http"
	"github.com/Gunvolt24/telecom_cart/internal/usecase"
	"github.com/Gunvolt24/telecom_cart/pkg/logger"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/Gunvolt24/telecom_cart/pkg/telemetry"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// App — собранное приложение и его внешние интерфейсы (HTTP, фоновые воркеры).
type App struct {
	Logger          ports.Logger   // логгер
	HTTPServer      *http.Server   // HTTP-сервер API
	MetricsServer   *http.Server   // отдельный сервер /metrics; nil — только на основном роутере
	Workers         []ports.Worker // фоновые воркеры (очистка контекстов)
	gracefulTimeout time.Duration  // время ожидания завершения HTTP-серверов
}

// Cleanup — функция освобождения ресурсов.
type Cleanup func()

// applyGinMode — устанавливает режим Gin по строке;
// неизвестное значение → debug и предупреждение в лог.
func applyGinMode(ctx context.Context, mode string, log ports.Logger) {
	switch strings.ToLower(strings.TrimSpace(mode)) {
	case "release":
		gin.SetMode(gin.ReleaseMode)
	case "test":
		gin.SetMode(gin.TestMode)
	case "", "debug":
		gin.SetMode(gin.DebugMode)
	default:
		gin.SetMode(gin.DebugMode)
		log.Warnf(ctx, "unknown GIN_MODE=%q, fallback to debug", mode)
	}
}

// Bootstrap — собирает зависимости и возвращает приложение, функцию очистки и ошибку.
func Bootstrap(ctx context.Context, cfg *config.Config) (*App, Cleanup, error) {
	// Логгер (dev/prod режим задаётся конфигурацией).
	logg, cleanupLogger, err := logger.NewZapLogger(cfg.Logger.IsProd)
	if err != nil {
		return nil, func() {}, err
	}

	// Очистка накапливается по мере сборки и выполняется в обратном порядке.
	var cleanups []func()
	cleanupAll := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
		if cerr := cleanupLogger(); cerr != nil {
			logg.Warnf(ctx, "cleanup logger: %v", cerr)
		}
	}
	fail := func(err error) (*App, Cleanup, error) {
		cleanupAll()
		return nil, func() {}, err
	}

	// Регистрация метрик (Prometheus).
	metrics.MustRegister()

	// Трейсинг OTEL (при включённой конфигурации); по умолчанию — no-op.
	if cfg.Tracing.Enabled {
		shutdownTrace, tErr := telemetry.SetupTracing(ctx, telemetry.TracingConfig{
			ServiceName: cfg.Tracing.ServiceName,
			Endpoint:    cfg.Tracing.Endpoint,
			SampleRatio: cfg.Tracing.SampleRatio,
			Attributes: map[string]string{
				"cart.context_backend": cfg.Context.Backend,
				"cart.catalog_source":  cfg.Catalog.Source,
			},
		})
		if tErr != nil {
			logg.Warnf(ctx, "failed to setup tracing: %v", tErr)
		} else {
			logg.Infof(ctx, "otel tracing enabled service=%s endpoint=%s sample=%.2f",
				cfg.Tracing.ServiceName, cfg.Tracing.Endpoint, cfg.Tracing.SampleRatio)
			cleanups = append(cleanups, func() {
				if terr := shutdownTrace(context.Background()); terr != nil {
					logg.Warnf(ctx, "shutdown tracing: %v", terr)
				}
			})
		}
	}

	// Каталог товаров.
	products, cleanupCatalog, err := buildCatalog(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, cleanupCatalog)

	// Провайдер контекстов корзины.
	provider, cleanupProvider, err := buildProvider(ctx, cfg, logg)
	if err != nil {
		return fail(err)
	}
	cleanups = append(cleanups, cleanupProvider)

	// События корзины (Kafka или no-op).
	events := buildEvents(ctx, cfg, logg)
	cleanups = append(cleanups, func() {
		if err := events.Close(); err != nil {
			logg.Warnf(ctx, "events publisher close error: %v", err)
		}
	})

	// Оркестратор корзины.
	cartService := usecase.NewCartService(provider, products, events, logg, usecase.CartConfig{
		TaxRate:     cfg.Cart.TaxRate,
		MaxItems:    cfg.Cart.MaxItems,
		MaxQuantity: cfg.Cart.MaxQuantity,
	})

	// Режим Gin.
	applyGinMode(ctx, cfg.HTTP.GinMode, logg)

	// Имя сервиса для otelgin (только при включённом трейсинге).
	otelServiceName := ""
	if cfg.Tracing.Enabled {
		otelServiceName = cfg.Tracing.ServiceName
	}

	// Роутер и HTTP-сервер.
	httpHandler := rest.NewHandler(cartService, logg, cfg.HTTP.HandlerTimeout,
		rest.WithMaxQuantity(cfg.Cart.MaxQuantity),
		rest.WithOpsEndpoints(cfg.HTTP.OpsEndpoints),
	)
	router := rest.NewRouter(httpHandler, otelServiceName)

	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Addr,
		Handler:           router,
		ReadTimeout:       cfg.HTTP.ReadTimeout,
		WriteTimeout:      cfg.HTTP.WriteTimeout,
		ReadHeaderTimeout: cfg.HTTP.ReadHeaderTimeout,
		IdleTimeout:       cfg.HTTP.IdleTimeout,
	}

	app := &App{
		Logger:          logg,
		HTTPServer:      httpSrv,
		MetricsServer:   newMetricsServer(cfg.Metrics.Addr, cfg.HTTP.Addr, cfg.HTTP.ReadHeaderTimeout),
		Workers:         []ports.Worker{sweeper.New(cartService, cfg.Context.Sweep(), logg)},
		gracefulTimeout: cfg.HTTP.GracefulTimeout,
	}

	return app, cleanupAll, nil
}

// newMetricsServer — отдельный листенер для Prometheus, если адрес задан и отличается от API.
func newMetricsServer(addr, apiAddr string, readHeaderTimeout time.Duration) *http.Server {
	if addr == "" || addr == apiAddr {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	return &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: readHeaderTimeout,
	}
}

// Run — запускает HTTP-серверы и воркеры; ждёт отмены контекста или ошибки и останавливает их.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, len(a.Workers)+2)

	// Фоновые воркеры получают собственный контекст, чтобы остановить их после HTTP.
	workersCtx, stopWorkers := context.WithCancel(ctx)
	defer stopWorkers()

	for _, w := range a.Workers {
		go func(w ports.Worker) {
			if err := w.Run(workersCtx); err != nil {
				errCh <- err
			}
		}(w)
	}

	// Запуск HTTP-серверов.
	servers := []*http.Server{a.HTTPServer}
	if a.MetricsServer != nil {
		servers = append(servers, a.MetricsServer)
	}
	for _, srv := range servers {
		go func(srv *http.Server) {
			a.Logger.Infof(ctx, "http server starting (addr=%s)", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}(srv)
	}

	// Ожидание сигнала остановки или фоновой ошибки.
	select {
	case <-ctx.Done():
		a.Logger.Infof(ctx, "shutdown requested, starting graceful shutdown")
	case err := <-errCh:
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			a.Logger.Infof(ctx, "background component stopped: %v", err)
		} else {
			a.Logger.Warnf(ctx, "background error: %v", err)
		}
	}

	gt := a.gracefulTimeout
	if gt <= 0 {
		gt = 5 * time.Second
	}

	// Корректная остановка HTTP-серверов.
	shutdownCtx, cancel := context.WithTimeout(context.Background(), gt)
	defer cancel()

	for _, srv := range servers {
		if err := srv.Shutdown(shutdownCtx); err != nil {
			a.Logger.Warnf(ctx, "http server %s shutdown failed: %v", srv.Addr, err)
		} else {
			a.Logger.Infof(ctx, "http server %s stopped gracefully", srv.Addr)
		}
	}

	// Остановка воркеров.
	stopWorkers()
	for _, w := range a.Workers {
		if err := w.Close(); err != nil {
			a.Logger.Warnf(ctx, "worker close error: %v", err)
		}
	}

	a.Logger.Infof(ctx, "service stopped")
	return nil
}
