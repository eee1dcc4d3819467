package models

import "time"

// OrderStatus represents the kitchen lifecycle stage of an order
type OrderStatus string

const (
	StatusPending   OrderStatus = "pending"
	StatusPreparing OrderStatus = "preparing"
	StatusReady     OrderStatus = "ready"
	StatusDelivered OrderStatus = "delivered"
)

// PaymentStatus is set only after the processor confirms payment.
// It is independent of OrderStatus: an order can be delivered unpaid
// if an operator drives the status by hand.
type PaymentStatus string

const PaymentPaid PaymentStatus = "paid"

type Order struct {
	ID                  string        `json:"id" gorm:"primaryKey"`
	Items               []OrderItem   `json:"items" gorm:"foreignKey:OrderID"`
	Total               float64       `json:"total" gorm:"not null"`
	Status              OrderStatus   `json:"status" gorm:"not null;default:'pending'"`
	PaymentStatus       PaymentStatus `json:"payment_status,omitempty"`
	StripeSessionID     string        `json:"stripe_session_id,omitempty"`
	SpecialInstructions string        `json:"special_instructions,omitempty"`
	CustomerName        string        `json:"customer_name,omitempty"`
	CustomerEmail       string        `json:"customer_email,omitempty"`
	CustomerPhone       string        `json:"customer_phone,omitempty"`
	CreatedAt           time.Time     `json:"created_at"`
	UpdatedAt           time.Time     `json:"updated_at"`
}

type OrderItem struct {
	ID         uint     `json:"id" gorm:"primaryKey"`
	OrderID    string   `json:"order_id" gorm:"not null;index"`
	MenuItemID string   `json:"menu_item_id"`
	Name       string   `json:"name" gorm:"not null"` // snapshot name at time of order
	UnitPrice  float64  `json:"unit_price" gorm:"not null"`
	Quantity   int      `json:"quantity" gorm:"not null"`
	SpiceLevel string   `json:"spice_level,omitempty"`
	Addons     []string `json:"addons,omitempty" gorm:"serializer:json"`
}

// LastActivity is the reference point for dwell-time checks: the last
// mutation if there was one, otherwise creation.
func (o *Order) LastActivity() time.Time {
	if !o.UpdatedAt.IsZero() {
		return o.UpdatedAt
	}
	return o.CreatedAt
}
