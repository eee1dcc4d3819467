package notify

import (
	"context"
	"fmt"
	"log/slog"
	"net/smtp"
	"strings"

	"pho-paradise-api/models"
)

// Sender delivers customer notifications. Failures are reported to the
// caller but are never fatal to the operation that triggered them.
type Sender interface {
	SendOrderConfirmation(ctx context.Context, order *models.Order, to string) error
	SendStatusUpdate(ctx context.Context, order *models.Order, to string) error
}

type statusMessage struct {
	emoji   string
	title   string
	message string
}

var statusMessages = map[models.OrderStatus]statusMessage{
	models.StatusPending:   {"⏳", "Order Received", "We have received your order and will start preparing it soon!"},
	models.StatusPreparing: {"👨‍🍳", "Cooking in Progress", "Our chefs are preparing your delicious Vietnamese meal!"},
	models.StatusReady:     {"✅", "Order Ready", "Your order is ready and will be delivered shortly!"},
	models.StatusDelivered: {"🎉", "Order Delivered", "Your order has been delivered! Enjoy your meal!"},
}

// ShortOrderID is the customer-facing order reference: the uppercased
// last six characters of the id.
func ShortOrderID(id string) string {
	if len(id) > 6 {
		id = id[len(id)-6:]
	}
	return strings.ToUpper(id)
}

// SMTPSender delivers mail through a configured relay.
type SMTPSender struct {
	addr   string // host:port
	from   string
	auth   smtp.Auth
	logger *slog.Logger
}

func NewSMTPSender(addr, from, username, password string, logger *slog.Logger) *SMTPSender {
	host, _, _ := strings.Cut(addr, ":")
	var auth smtp.Auth
	if username != "" {
		auth = smtp.PlainAuth("", username, password, host)
	}
	return &SMTPSender{addr: addr, from: from, auth: auth, logger: logger.With("component", "email")}
}

func (s *SMTPSender) SendOrderConfirmation(ctx context.Context, order *models.Order, to string) error {
	subject := fmt.Sprintf("Order Confirmation #%s - Phở Paradise", ShortOrderID(order.ID))

	var items strings.Builder
	for _, item := range order.Items {
		fmt.Fprintf(&items, "%dx %s", item.Quantity, item.Name)
		if item.SpiceLevel != "" {
			fmt.Fprintf(&items, " (%s)", item.SpiceLevel)
		}
		if len(item.Addons) > 0 {
			fmt.Fprintf(&items, " + %s", strings.Join(item.Addons, ", "))
		}
		fmt.Fprintf(&items, " - $%.2f<br>", item.UnitPrice*float64(item.Quantity))
	}

	body := fmt.Sprintf(`<h1>🍜 Order Confirmed!</h1>
<p>Thank you for choosing Phở Paradise.</p>
<h2>Order #%s</h2>
<p>%s</p>
<p><strong>Total: $%.2f</strong></p>
<p>Your meal is being prepared with care. We'll keep you updated on your order status.</p>`,
		ShortOrderID(order.ID), items.String(), order.Total)

	return s.send(to, subject, body)
}

func (s *SMTPSender) SendStatusUpdate(ctx context.Context, order *models.Order, to string) error {
	msg, ok := statusMessages[order.Status]
	if !ok {
		msg = statusMessages[models.StatusPending]
	}
	subject := fmt.Sprintf("%s Order Update #%s - %s", msg.emoji, ShortOrderID(order.ID), msg.title)
	body := fmt.Sprintf(`<h1>%s %s</h1>
<h2>Order #%s</h2>
<p>%s</p>`, msg.emoji, msg.title, ShortOrderID(order.ID), msg.message)

	return s.send(to, subject, body)
}

func (s *SMTPSender) send(to, subject, body string) error {
	msg := strings.Join([]string{
		"From: \"Phở Paradise\" <" + s.from + ">",
		"To: " + to,
		"Subject: " + subject,
		"MIME-Version: 1.0",
		"Content-Type: text/html; charset=\"UTF-8\"",
		"",
		body,
	}, "\r\n")
	if err := smtp.SendMail(s.addr, s.auth, s.from, []string{to}, []byte(msg)); err != nil {
		s.logger.Error("failed to send email", "to", to, "subject", subject, "error", err)
		return err
	}
	s.logger.Info("email sent", "to", to, "subject", subject)
	return nil
}

// LogSender is the no-relay fallback: it records what would have been
// sent. Used in development and whenever SMTP is not configured.
type LogSender struct {
	logger *slog.Logger
}

func NewLogSender(logger *slog.Logger) *LogSender {
	return &LogSender{logger: logger.With("component", "email")}
}

func (s *LogSender) SendOrderConfirmation(ctx context.Context, order *models.Order, to string) error {
	s.logger.Info("order confirmation (not delivered, SMTP unconfigured)",
		"to", to, "order_id", ShortOrderID(order.ID), "total", order.Total)
	return nil
}

func (s *LogSender) SendStatusUpdate(ctx context.Context, order *models.Order, to string) error {
	s.logger.Info("status update (not delivered, SMTP unconfigured)",
		"to", to, "order_id", ShortOrderID(order.ID), "status", order.Status)
	return nil
}
