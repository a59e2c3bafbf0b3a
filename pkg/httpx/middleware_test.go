package httpx_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Gunvolt24/telecom_cart/internal/ports/mocks"
	"github.com/Gunvolt24/telecom_cart/pkg/ctxmeta"
	"github.com/Gunvolt24/telecom_cart/pkg/httpx"
	"github.com/Gunvolt24/telecom_cart/pkg/metrics"
	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"
)

func TestMetricsMiddleware_CountsByRouteTemplate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	metrics.MustRegister()

	r := gin.New()
	r.Use(httpx.MetricsMiddleware())
	r.GET("/api/carts/:cartId", func(c *gin.Context) { c.Status(http.StatusOK) })

	okBefore := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/carts/:cartId", "200"))
	missBefore := testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404"))

	for _, path := range []string{"/api/carts/a", "/api/carts/b", "/nope"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}

	require.Equal(t, okBefore+2, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "/api/carts/:cartId", "200")))
	require.Equal(t, missBefore+1, testutil.ToFloat64(metrics.HTTPRequests.WithLabelValues("GET", "unmatched", "404")))
}

func TestCartIDMiddleware_PutsParamIntoContext(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var got string
	r := gin.New()
	g := r.Group("/api/carts/:cartId", httpx.CartIDMiddleware("cartId"))
	g.GET("", func(c *gin.Context) {
		got, _ = ctxmeta.CartIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/api/carts/cart-42", http.NoBody))
	require.Equal(t, "cart-42", got)
}

func TestAbortError_Body(t *testing.T) {
	gin.SetMode(gin.TestMode)

	called := false
	r := gin.New()
	r.GET("/", func(c *gin.Context) {
		httpx.AbortError(c, http.StatusUnprocessableEntity, "single_phone", "only one phone allowed")
	}, func(*gin.Context) { called = true })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", http.NoBody))

	require.False(t, called)
	require.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var body httpx.ErrorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.Equal(t, httpx.ErrorBody{Error: "only one phone allowed", Code: "single_phone"}, body)
}

func TestRequestLogger_SkipsPingAndWarnsOn5xx(t *testing.T) {
	gin.SetMode(gin.TestMode)
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)

	r := gin.New()
	r.Use(httpx.RequestLogger(log))
	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	log.EXPECT().Infof(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)
	log.EXPECT().Warnf(gomock.Any(), gomock.Any(), gomock.Any()).Times(1)

	for _, path := range []string{"/ping", "/ok", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, path, http.NoBody))
	}
}
