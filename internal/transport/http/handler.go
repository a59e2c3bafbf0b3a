package rest

import (
	"context"
	"net/http"
	"time"

	"github.com/Gunvolt24/telecom_cart/internal/ports"
	"github.com/Gunvolt24/telecom_cart/pkg/httpx"
	"github.com/gin-gonic/gin"
)

const defaultMaxQuantity = 10

// Handler — HTTP-обработчики корзины и каталога.
type Handler struct {
	service     ports.CartService
	log         ports.Logger
	reqTimeout  time.Duration
	maxQuantity int
	opsEnabled  bool
}

// Option — функциональная опция Handler.
type Option func(*Handler)

// WithMaxQuantity — верхняя граница количества в запросе (400 при превышении).
func WithMaxQuantity(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.maxQuantity = n
		}
	}
}

// WithOpsEndpoints — включает служебные маршруты /internal/...
func WithOpsEndpoints(enabled bool) Option {
	return func(h *Handler) { h.opsEnabled = enabled }
}

// NewHandler — reqTimeout <= 0 отключает таймаут на вызов сервиса.
func NewHandler(service ports.CartService, log ports.Logger, reqTimeout time.Duration, opts ...Option) *Handler {
	h := &Handler{
		service:     service,
		log:         log,
		reqTimeout:  reqTimeout,
		maxQuantity: defaultMaxQuantity,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
	Quantity  int    `json:"quantity" binding:"required,gt=0"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gt=0"`
}

func (h *Handler) initializeCart(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cart, err := h.service.InitializeCart(ctx)
	if err != nil {
		h.writeError(c, "InitializeCart", err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *Handler) getCart(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cart, err := h.service.GetCart(ctx, c.Param("cartId"))
	if err != nil {
		h.writeError(c, "GetCart", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.AbortError(c, http.StatusBadRequest, codeBadRequest, bindErrorMessage(err))
		return
	}
	if !h.quantityAllowed(c, req.Quantity) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	cart, err := h.service.AddItem(ctx, c.Param("cartId"), req.ProductID, req.Quantity)
	if err != nil {
		h.writeError(c, "AddItem", err)
		return
	}
	c.JSON(http.StatusCreated, cart)
}

func (h *Handler) updateItem(c *gin.Context) {
	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.AbortError(c, http.StatusBadRequest, codeBadRequest, bindErrorMessage(err))
		return
	}
	if !h.quantityAllowed(c, req.Quantity) {
		return
	}

	ctx, cancel := h.requestContext(c)
	defer cancel()

	cart, err := h.service.UpdateItem(ctx, c.Param("cartId"), c.Param("itemId"), req.Quantity)
	if err != nil {
		h.writeError(c, "UpdateItem", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) removeItem(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	cart, err := h.service.RemoveItem(ctx, c.Param("cartId"), c.Param("itemId"))
	if err != nil {
		h.writeError(c, "RemoveItem", err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *Handler) validateCart(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	res, err := h.service.ValidateCart(ctx, c.Param("cartId"))
	if err != nil {
		h.writeError(c, "ValidateCart", err)
		return
	}
	if res.Errors == nil {
		res.Errors = []string{}
	}
	c.JSON(http.StatusOK, res)
}

func (h *Handler) expireContext(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	if err := h.service.ExpireContext(ctx, c.Param("cartId")); err != nil {
		h.writeError(c, "ExpireContext", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) listProducts(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	products, err := h.service.GetProducts(ctx)
	if err != nil {
		h.writeError(c, "GetProducts", err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (h *Handler) getProduct(c *gin.Context) {
	ctx, cancel := h.requestContext(c)
	defer cancel()

	product, err := h.service.GetProduct(ctx, c.Param("productId"))
	if err != nil {
		h.writeError(c, "GetProduct", err)
		return
	}
	c.JSON(http.StatusOK, product)
}

// requestContext — контекст запроса с таймаутом на вызов сервиса.
func (h *Handler) requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	if h.reqTimeout <= 0 {
		return context.WithCancel(c.Request.Context())
	}
	return context.WithTimeout(c.Request.Context(), h.reqTimeout)
}

func (h *Handler) quantityAllowed(c *gin.Context, quantity int) bool {
	if quantity <= h.maxQuantity {
		return true
	}
	httpx.AbortError(c, http.StatusBadRequest, codeBadRequest, quantityMessage(h.maxQuantity))
	return false
}
