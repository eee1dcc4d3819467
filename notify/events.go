package notify

import (
	"context"
	"encoding/json"
	"time"

	"pho-paradise-api/models"

	"github.com/segmentio/kafka-go"
)

// OrderEvent is published whenever an order changes status, for
// downstream consumers (dashboards, analytics).
type OrderEvent struct {
	OrderID    string             `json:"order_id"`
	Status     models.OrderStatus `json:"status"`
	Total      float64            `json:"total"`
	OccurredAt time.Time          `json:"occurred_at"`
}

type EventPublisher struct {
	Writer *kafka.Writer
}

func NewEventPublisher(writer *kafka.Writer) *EventPublisher {
	return &EventPublisher{Writer: writer}
}

func (p *EventPublisher) PublishStatusChange(ctx context.Context, order *models.Order) error {
	payload, _ := json.Marshal(OrderEvent{
		OrderID:    order.ID,
		Status:     order.Status,
		Total:      order.Total,
		OccurredAt: time.Now(),
	})
	return p.Writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(order.ID),
		Value: payload,
	})
}
