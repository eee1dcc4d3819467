package handlers

import (
	"log/slog"
	"net/http"

	"pho-paradise-api/checkout"
	"pho-paradise-api/metrics"

	"github.com/gin-gonic/gin"
)

type CheckoutHandler struct {
	builder *checkout.Builder
	logger  *slog.Logger
}

func NewCheckoutHandler(builder *checkout.Builder, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{builder: builder, logger: logger.With("component", "checkout_handler")}
}

// CreateSession validates the cart, persists a pending order, and opens
// a hosted payment session. A processor failure after the order is
// persisted reports an error but keeps the pending order.
func (h *CheckoutHandler) CreateSession(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatBindingError(err)})
		return
	}

	result, err := h.builder.Create(c.Request.Context(), req)
	if err != nil {
		h.logger.Error("checkout failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create checkout session"})
		return
	}
	metrics.OrdersCreated.Inc()

	c.JSON(http.StatusOK, gin.H{
		"session_id": result.SessionID,
		"url":        result.URL,
		"order_id":   result.OrderID,
	})
}
