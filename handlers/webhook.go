package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"pho-paradise-api/metrics"
	"pho-paradise-api/models"
	"pho-paradise-api/notify"
	"pho-paradise-api/payments"
	"pho-paradise-api/store"

	"github.com/gin-gonic/gin"
)

type WebhookHandler struct {
	orders   store.OrderStore
	notifier notify.Sender
	events   *notify.EventPublisher // nil when Kafka is not configured
	secret   string
	logger   *slog.Logger
}

func NewWebhookHandler(orders store.OrderStore, notifier notify.Sender,
	events *notify.EventPublisher, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		orders:   orders,
		notifier: notifier,
		events:   events,
		secret:   secret,
		logger:   logger.With("component", "webhook_handler"),
	}
}

// HandlePaymentWebhook is the sole writer of payment status. The raw
// body is signature-checked before any field is trusted; a bad
// signature mutates nothing. Applying the same completed event twice is
// a natural no-op, so redelivery needs no dedup state.
func (h *WebhookHandler) HandlePaymentWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read request body"})
		return
	}

	signature := c.GetHeader("Stripe-Signature")
	if err := payments.VerifySignature(body, signature, h.secret, payments.DefaultTolerance); err != nil {
		h.logger.Warn("webhook signature rejected", "error", err)
		metrics.PaymentEvents.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid signature"})
		return
	}

	var event payments.Event
	if err := json.Unmarshal(body, &event); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Malformed event payload"})
		return
	}

	if event.Type != payments.EventCheckoutCompleted {
		metrics.PaymentEvents.WithLabelValues("ignored").Inc()
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	session := event.Data.Object
	orderID := session.Metadata[payments.MetadataOrderID]
	if orderID == "" {
		// A session created outside the checkout builder, or a
		// metadata propagation bug. Acknowledge anyway: the processor
		// would only redeliver an event we can never apply.
		h.logger.Error("no orderId in session metadata", "session_id", session.ID)
		metrics.PaymentEvents.WithLabelValues("missing_order").Inc()
		c.JSON(http.StatusOK, gin.H{"received": true})
		return
	}

	order, err := h.orders.UpdateByID(c.Request.Context(), orderID, map[string]any{
		"status":            models.StatusPending, // explicit re-assertion, not an advance
		"payment_status":    models.PaymentPaid,
		"stripe_session_id": session.ID,
	})
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			h.logger.Error("webhook references unknown order", "order_id", orderID)
			metrics.PaymentEvents.WithLabelValues("missing_order").Inc()
			c.JSON(http.StatusOK, gin.H{"received": true})
			return
		}
		h.logger.Error("failed to confirm payment", "order_id", orderID, "error", err)
		metrics.PaymentEvents.WithLabelValues("error").Inc()
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook handler failed"})
		return
	}
	h.logger.Info("order payment confirmed", "order_id", orderID, "session_id", session.ID)
	metrics.PaymentEvents.WithLabelValues("confirmed").Inc()

	h.afterConfirmation(order, session.CustomerDetails.Email)

	c.JSON(http.StatusOK, gin.H{"received": true})
}

// afterConfirmation sends the confirmation email to whichever address
// the processor surfaced, falling back to the one on the order. The
// processor's acknowledgment never waits on this.
func (h *WebhookHandler) afterConfirmation(order *models.Order, processorEmail string) {
	email := processorEmail
	if email == "" {
		email = order.CustomerEmail
	}
	snapshot := *order
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if email != "" {
			_ = h.notifier.SendOrderConfirmation(ctx, &snapshot, email)
		}
		if h.events != nil {
			if err := h.events.PublishStatusChange(ctx, &snapshot); err != nil {
				h.logger.Error("failed to publish payment event", "order_id", snapshot.ID, "error", err)
			}
		}
	}()
}
