package checkout

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"pho-paradise-api/models"
	"pho-paradise-api/payments"
	"pho-paradise-api/store"

	"github.com/google/uuid"
)

// CartLine is one client-submitted cart entry. Prices are snapshots
// taken by the client from the menu; see Request.Total for the trust
// boundary.
type CartLine struct {
	MenuItemID  string   `json:"menu_item_id"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	UnitPrice   float64  `json:"unit_price" binding:"min=0"`
	Quantity    int      `json:"quantity" binding:"required,min=1"`
	SpiceLevel  string   `json:"spice_level" binding:"omitempty,oneof=Mild Medium Hot 'Extra Hot'"`
	Addons      []string `json:"addons"`
}

// Request is a checkout submission. Total is the client-declared figure
// and is stored verbatim; the server prices line items for the payment
// session but does not recompute or verify the stored total.
type Request struct {
	Items               []CartLine `json:"items" binding:"required,min=1,dive"`
	Total               float64    `json:"total" binding:"required,min=0"`
	SpecialInstructions string     `json:"special_instructions"`
	CustomerName        string     `json:"customer_name"`
	CustomerEmail       string     `json:"customer_email" binding:"omitempty,email"`
	CustomerPhone       string     `json:"customer_phone"`
}

// NewOrder converts a validated request into a pending order record.
func NewOrder(req Request) *models.Order {
	order := &models.Order{
		ID:                  uuid.NewString(),
		Total:               req.Total,
		Status:              models.StatusPending,
		SpecialInstructions: req.SpecialInstructions,
		CustomerName:        req.CustomerName,
		CustomerEmail:       req.CustomerEmail,
		CustomerPhone:       req.CustomerPhone,
	}
	for _, line := range req.Items {
		order.Items = append(order.Items, models.OrderItem{
			MenuItemID: line.MenuItemID,
			Name:       line.Name,
			UnitPrice:  line.UnitPrice,
			Quantity:   line.Quantity,
			SpiceLevel: line.SpiceLevel,
			Addons:     line.Addons,
		})
	}
	return order
}

// Result is what the client needs to hand control to the processor.
type Result struct {
	OrderID   string `json:"order_id"`
	SessionID string `json:"session_id"`
	URL       string `json:"url"`
}

// Builder turns a cart into a persisted pending order plus a hosted
// payment session.
type Builder struct {
	orders      store.OrderStore
	sessions    payments.SessionCreator
	surcharges  map[string]float64
	deliveryFee float64
	appBaseURL  string
	logger      *slog.Logger
}

func NewBuilder(orders store.OrderStore, sessions payments.SessionCreator,
	surcharges map[string]float64, deliveryFee float64, appBaseURL string, logger *slog.Logger) *Builder {
	if surcharges == nil {
		surcharges = DefaultAddonSurcharges()
	}
	return &Builder{
		orders:      orders,
		sessions:    sessions,
		surcharges:  surcharges,
		deliveryFee: deliveryFee,
		appBaseURL:  appBaseURL,
		logger:      logger.With("component", "checkout"),
	}
}

// Create persists the order first, then opens the payment session, so a
// processor failure still leaves a traceable pending order behind. That
// orphan is deliberate and is not rolled back here.
func (b *Builder) Create(ctx context.Context, req Request) (*Result, error) {
	order := NewOrder(req)
	if err := b.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("persist order: %w", err)
	}
	b.logger.Info("order created", "order_id", order.ID, "total", order.Total)

	session, err := b.sessions.CreateSession(ctx, b.sessionParams(order, req))
	if err != nil {
		b.logger.Error("payment session failed, pending order kept",
			"order_id", order.ID, "error", err)
		return nil, fmt.Errorf("create payment session: %w", err)
	}

	return &Result{OrderID: order.ID, SessionID: session.ID, URL: session.URL}, nil
}

func (b *Builder) sessionParams(order *models.Order, req Request) payments.SessionParams {
	var lineItems []payments.LineItem
	for _, line := range req.Items {
		lineItems = append(lineItems, payments.LineItem{
			Name:        line.Name,
			Description: lineDescription(line),
			UnitAmount:  Cents(EffectiveUnitPrice(line, b.surcharges)),
			Quantity:    line.Quantity,
		})
	}
	lineItems = append(lineItems, payments.LineItem{
		Name:        "Delivery Fee",
		Description: "Standard delivery to your location",
		UnitAmount:  Cents(b.deliveryFee),
		Quantity:    1,
	})

	return payments.SessionParams{
		LineItems:  lineItems,
		SuccessURL: b.appBaseURL + "/success?session_id={CHECKOUT_SESSION_ID}&order_id=" + order.ID,
		CancelURL:  b.appBaseURL + "/?canceled=true",
		Metadata: map[string]string{
			payments.MetadataOrderID: order.ID,
			"totalAmount":            strconv.FormatFloat(order.Total, 'f', 2, 64),
		},
	}
}
