package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"pho-paradise-api/checkout"
	"pho-paradise-api/metrics"
	"pho-paradise-api/models"
	"pho-paradise-api/notify"
	"pho-paradise-api/statemachine"
	"pho-paradise-api/store"

	"github.com/gin-gonic/gin"
)

type OrderHandler struct {
	orders   store.OrderStore
	notifier notify.Sender
	events   *notify.EventPublisher // nil when Kafka is not configured
	logger   *slog.Logger
}

func NewOrderHandler(orders store.OrderStore, notifier notify.Sender,
	events *notify.EventPublisher, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:   orders,
		notifier: notifier,
		events:   events,
		logger:   logger.With("component", "order_handler"),
	}
}

// ListOrders returns orders, newest first, with a per-status summary for
// the dashboard. Filterable by status and customer email.
func (h *OrderHandler) ListOrders(c *gin.Context) {
	filter := store.OrderFilter{
		Status:        models.OrderStatus(c.Query("status")),
		CustomerEmail: c.Query("email"),
	}
	orders, err := h.orders.Find(c.Request.Context(), filter)
	if err != nil {
		h.logger.Error("failed to list orders", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch orders"})
		return
	}

	summary := map[string]int{}
	for _, o := range orders {
		summary[string(o.Status)]++
	}
	c.JSON(http.StatusOK, gin.H{
		"count":         len(orders),
		"order_summary": summary,
		"orders":        orders,
	})
}

// CreateOrder persists an order directly, without a payment session.
// The declared total is stored verbatim; see the checkout handler for
// the paid path.
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req checkout.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatBindingError(err)})
		return
	}
	order := checkout.NewOrder(req)
	if err := h.orders.Create(c.Request.Context(), order); err != nil {
		h.logger.Error("failed to create order", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	metrics.OrdersCreated.Inc()
	c.JSON(http.StatusCreated, order)
}

// GetOrder returns one order by id.
func (h *OrderHandler) GetOrder(c *gin.Context) {
	order, err := h.orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.logger.Error("failed to fetch order", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}
	c.JSON(http.StatusOK, order)
}

type UpdateOrderStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
}

// UpdateStatus applies a state-machine-checked status change: the
// current status (idempotent no-op) or the single forward edge. Any
// other jump must go through the admin override.
func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	var req UpdateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatBindingError(err)})
		return
	}
	if !statemachine.Valid(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.logger.Error("failed to fetch order", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if order.Status == req.Status {
		c.JSON(http.StatusOK, gin.H{"message": "Status unchanged", "order": order})
		return
	}

	if err := statemachine.CanAdvance(order.Status, req.Status); err != nil {
		next, _ := statemachine.Next(order.Status)
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":          "Invalid state transition",
			"current_status": order.Status,
			"requested":      req.Status,
			"reason":         err.Error(),
			"next_status":    next,
		})
		return
	}

	prevStatus := order.Status
	updated, err := h.orders.UpdateByID(c.Request.Context(), order.ID, map[string]any{"status": req.Status})
	if err != nil {
		h.logger.Error("failed to update order status", "order_id", order.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	h.afterStatusChange(updated)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status updated",
		"previous_status": prevStatus,
		"order":           updated,
	})
}

type OverrideStatusRequest struct {
	Status models.OrderStatus `json:"status" binding:"required"`
	Reason string             `json:"reason"`
}

// OverrideStatus lets an operator jump an order to any status,
// bypassing the transition table. Kept separate from UpdateStatus so
// the forward-only guarantee holds on the normal path and every bypass
// carries a recorded reason.
func (h *OrderHandler) OverrideStatus(c *gin.Context) {
	var req OverrideStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": formatBindingError(err)})
		return
	}
	if !statemachine.Valid(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown status: " + string(req.Status)})
		return
	}

	order, err := h.orders.FindByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		h.logger.Error("failed to fetch order", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	prevStatus := order.Status
	updated, err := h.orders.UpdateByID(c.Request.Context(), order.ID, map[string]any{"status": req.Status})
	if err != nil {
		h.logger.Error("failed to override order status", "order_id", order.ID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}
	h.logger.Warn("operator override applied",
		"order_id", order.ID, "from", prevStatus, "to", req.Status, "reason", req.Reason)
	h.afterStatusChange(updated)

	c.JSON(http.StatusOK, gin.H{
		"message":         "Order status overridden",
		"previous_status": prevStatus,
		"new_status":      req.Status,
		"order_id":        updated.ID,
	})
}

// afterStatusChange dispatches the fire-and-forget side effects of a
// manual status change. Failures are logged inside the sinks and never
// affect the HTTP response.
func (h *OrderHandler) afterStatusChange(order *models.Order) {
	snapshot := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if snapshot.CustomerEmail != "" {
			_ = h.notifier.SendStatusUpdate(ctx, &snapshot, snapshot.CustomerEmail)
		}
		if h.events != nil {
			if err := h.events.PublishStatusChange(ctx, &snapshot); err != nil {
				h.logger.Error("failed to publish status event", "order_id", snapshot.ID, "error", err)
			}
		}
	}()
}
