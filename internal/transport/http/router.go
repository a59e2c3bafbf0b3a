package rest

import (
	"net/http"
	"sort"
	"strings"

	"github.com/Gunvolt24/telecom_cart/pkg/httpx"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

// NewRouter — gin-роутер со всеми маршрутами API.
// otelServiceName == "" отключает otelgin.
func NewRouter(h *Handler, otelServiceName string) *gin.Engine {
	r := gin.New()
	r.HandleMethodNotAllowed = true

	r.Use(gin.Recovery())
	if otelServiceName != "" {
		r.Use(otelgin.Middleware(otelServiceName))
	}
	r.Use(httpx.RequestIDMiddleware())
	r.Use(httpx.MetricsMiddleware())
	r.Use(httpx.RequestLogger(h.log))

	r.GET("/ping", func(c *gin.Context) { c.String(http.StatusOK, "pong") })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.POST("/carts", h.initializeCart)

		cart := api.Group("/carts/:cartId", httpx.CartIDMiddleware("cartId"))
		cart.GET("", h.getCart)
		cart.GET("/validate", h.validateCart)
		cart.POST("/items", h.addItem)
		cart.PUT("/items/:itemId", h.updateItem)
		cart.DELETE("/items/:itemId", h.removeItem)

		api.GET("/products", h.listProducts)
		api.GET("/products/:productId", h.getProduct)
	}

	if h.opsEnabled {
		ops := r.Group("/internal/carts/:cartId", httpx.CartIDMiddleware("cartId"))
		ops.POST("/expire", h.expireContext)
	}

	routes := r.Routes()
	r.NoRoute(func(c *gin.Context) {
		httpx.AbortError(c, http.StatusNotFound, codeNotFound, "route not found")
	})
	r.NoMethod(func(c *gin.Context) {
		if allow := allowedMethods(routes, c.Request.URL.Path); allow != "" {
			c.Header("Allow", allow)
		}
		httpx.AbortError(c, http.StatusMethodNotAllowed, "method_not_allowed", "method not allowed")
	})

	return r
}

// allowedMethods — методы маршрутов, чей шаблон совпадает с путём.
func allowedMethods(routes gin.RoutesInfo, path string) string {
	seen := make(map[string]struct{})
	for _, rt := range routes {
		if matchPattern(rt.Path, path) {
			seen[rt.Method] = struct{}{}
		}
	}
	methods := make([]string, 0, len(seen))
	for m := range seen {
		methods = append(methods, m)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}

// matchPattern — сопоставление пути с шаблоном gin (":param" — один сегмент, "*rest" — остаток).
func matchPattern(pattern, path string) bool {
	ps := strings.Split(strings.Trim(pattern, "/"), "/")
	xs := strings.Split(strings.Trim(path, "/"), "/")
	for i, seg := range ps {
		if strings.HasPrefix(seg, "*") {
			return true
		}
		if i >= len(xs) {
			return false
		}
		if strings.HasPrefix(seg, ":") {
			if xs[i] == "" {
				return false
			}
			continue
		}
		if seg != xs[i] {
			return false
		}
	}
	return len(ps) == len(xs)
}
