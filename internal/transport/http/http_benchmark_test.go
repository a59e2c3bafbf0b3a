//go:build !integration

package rest

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Gunvolt24/telecom_cart/internal/catalog"
	memprovider "github.com/Gunvolt24/telecom_cart/internal/provider/memory"
	"github.com/Gunvolt24/telecom_cart/internal/testutil"
	"github.com/Gunvolt24/telecom_cart/internal/usecase"
)

// --- Бенчмарки ---

// Базовый бенч: GetCart на реальном сервисе — сравниваем LEAN vs FULL пайплайн
func BenchmarkHTTP_GetCart(b *testing.B) {
	for _, n := range []int{1, 10, 50} {
		b.Run("items="+strconv.Itoa(n), func(b *testing.B) {
			svc := newBenchService(b)
			cartID := seedCart(b, svc, n)
			h := NewHandler(svc, testutil.NoopLogger{}, 2*time.Second)

			b.Run("lean/no-mw", func(b *testing.B) {
				benchServe(b, makeLeanRouter(h), http.MethodGet, "/api/carts/"+cartID, "", http.StatusOK)
			})
			b.Run("full/prod-mw", func(b *testing.B) {
				benchServe(b, makeFullRouter(h), http.MethodGet, "/api/carts/"+cartID, "", http.StatusOK)
			})
		})
	}
}

// Потолок без сервиса и маршалинга: заранее закодированный JSON корзины
func BenchmarkHTTP_GetCart_PreMarshaledBytes(b *testing.B) {
	svc := newBenchService(b)
	cartID := seedCart(b, svc, 10)
	cart, err := svc.GetCart(context.Background(), cartID)
	if err != nil {
		b.Fatal(err)
	}
	raw, _ := json.Marshal(cart)

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	r.GET("/api/carts/:cartId", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json", raw)
	})

	benchServe(b, r, http.MethodGet, "/api/carts/"+cartID, "", http.StatusOK)
}

// Отказ по правилу (422): проверки + ответ с ошибкой, корзина не меняется
func BenchmarkHTTP_AddItem_RuleViolation(b *testing.B) {
	svc := newBenchService(b)
	cartID := seedCart(b, svc, 1) // уже есть телефон
	h := NewHandler(svc, testutil.NoopLogger{}, 2*time.Second)

	body := `{"productId":"phone_pixel8","quantity":1}`
	benchServe(b, makeLeanRouter(h), http.MethodPost, "/api/carts/"+cartID+"/items", body, http.StatusUnprocessableEntity)
}

// Ошибочный путь (404): "цена" роутера и 404-хендлера
func BenchmarkHTTP_404(b *testing.B) {
	h := NewHandler(newBenchService(b), testutil.NoopLogger{}, 2*time.Second)
	benchServe(b, makeFullRouter(h), http.MethodGet, "/nope", "", http.StatusNotFound)
}

// --- функции-помощники ---

func newBenchService(b *testing.B) *usecase.CartService {
	b.Helper()
	products, err := catalog.New(catalog.DefaultProducts())
	if err != nil {
		b.Fatal(err)
	}
	return usecase.NewCartService(
		memprovider.NewProvider(time.Hour),
		products,
		nil,
		testutil.NoopLogger{},
		usecase.CartConfig{TaxRate: 0.13},
	)
}

// seedCart — корзина из телефона и n-1 аксессуаров.
func seedCart(b *testing.B, svc *usecase.CartService, n int) string {
	b.Helper()
	ctx := context.Background()
	cart, err := svc.InitializeCart(ctx)
	if err != nil {
		b.Fatal(err)
	}
	addons := []string{"addon_insurance", "addon_case", "addon_charger", "addon_roaming"}
	for i := 0; i < n; i++ {
		productID := "phone_iphone15"
		if i > 0 {
			productID = addons[i%len(addons)]
		}
		if _, err := svc.AddItem(ctx, cart.ID, productID, 1); err != nil {
			b.Fatalf("seed item %d: %v", i, err)
		}
	}
	return cart.ID
}

func makeLeanRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	r := gin.New() // без Recovery/otel/logger — получаем меньшую аллокацию
	r.GET("/api/carts/:cartId", h.getCart)
	r.POST("/api/carts/:cartId/items", h.addItem)
	return r
}

func makeFullRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	// prod пайплайн из NewRouter
	return NewRouter(h, "")
}

func benchServe(b *testing.B, r *gin.Engine, method, path, body string, wantStatus int) {
	b.Helper()
	b.ReportAllocs()
	b.ResetTimer()

	// Параллельный режим ближе к реальности без TCP
	b.RunParallel(func(pb *testing.PB) {
		for pb.Next() {
			var rd io.Reader = http.NoBody
			if body != "" {
				rd = strings.NewReader(body)
			}
			req, _ := http.NewRequest(method, path, rd)
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			// вычитываем тело
			_, _ = io.Copy(io.Discard, w.Body)
			if w.Code != wantStatus {
				b.Fatalf("status=%d", w.Code)
			}
		}
	})
}
