package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	app "order_compare/internal/application/comparison"
	domain "order_compare/internal/domain/comparison"
	"order_compare/internal/domain/order"
	"order_compare/pkg/logger"
)

// ComparisonService là phần của application service mà handler dùng.
type ComparisonService interface {
	Stores() []string
	ParsePairs(input string) ([]order.OrderPair, []order.ParseWarning)
	NewPair(factoryOrderID, shopOrderName string) (order.OrderPair, error)
	CompareOrders(ctx context.Context, pair order.OrderPair) (*domain.Result, error)
	FactoryOrder(ctx context.Context, id string) (*order.FactoryOrder, error)
	Comparison(ctx context.Context, id string) (*domain.Summary, error)
}

type ComparisonHandler struct {
	svc ComparisonService
	log logger.Logger
}

func NewComparisonHandler(svc ComparisonService, log logger.Logger) *ComparisonHandler {
	return &ComparisonHandler{svc: svc, log: log}
}

type parseRequest struct {
	Input string `json:"input"`
}

type compareRequest struct {
	FactoryOrderID string `json:"factory_order_id" binding:"required"`
	ShopOrderName  string `json:"shop_order_name" binding:"required"`
}

func (h *ComparisonHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "stores": h.svc.Stores()})
}

func (h *ComparisonHandler) ParsePairs(c *gin.Context) {
	var req parseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pairs, warnings := h.svc.ParsePairs(req.Input)
	if pairs == nil {
		pairs = []order.OrderPair{}
	}
	if warnings == nil {
		warnings = []order.ParseWarning{}
	}
	c.JSON(http.StatusOK, gin.H{"pairs": pairs, "warnings": warnings})
}

func (h *ComparisonHandler) CompareOrders(c *gin.Context) {
	var req compareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.svc.NewPair(req.FactoryOrderID, req.ShopOrderName)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.svc.CompareOrders(c.Request.Context(), pair)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ComparisonHandler) GetComparison(c *gin.Context) {
	summary, err := h.svc.Comparison(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

func (h *ComparisonHandler) GetFactoryOrder(c *gin.Context) {
	fo, err := h.svc.FactoryOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, fo)
}

func (h *ComparisonHandler) fail(c *gin.Context, err error) {
	status := StatusFor(err)
	if status >= http.StatusInternalServerError {
		h.log.WithContext(c.Request.Context()).Error("request failed", logger.Error(err))
	}
	_ = c.Error(err)
	c.JSON(status, gin.H{"error": err.Error()})
}

// StatusFor maps an error to the HTTP status returned to the caller. Vendor
// failures are reported as 502.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, order.ErrInvalidPair),
		errors.Is(err, order.ErrUnknownStore),
		errors.Is(err, order.ErrMissingOrderRef):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, app.ErrHistoryDisabled):
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}
