package queue

import (
	"context"
	"log/slog"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// Notifier delivers the order confirmation to the customer.
type Notifier interface {
	SendOrderConfirmation(ctx context.Context, email, name, orderID, total string) error
}

// OrderPlacedHandler drains order.placed events into the confirmation
// notifier. Intended for use with queue.JSONHandler[usecase.OrderPlacedMsg].
type OrderPlacedHandler struct {
	notifier Notifier
	log      *slog.Logger
}

func NewOrderPlacedHandler(n Notifier) *OrderPlacedHandler {
	return &OrderPlacedHandler{notifier: n, log: logging.New("order-placed")}
}

func (h *OrderPlacedHandler) HandlePlaced(ctx context.Context, msg usecase.OrderPlacedMsg) error {
	if err := h.notifier.SendOrderConfirmation(ctx, msg.CustomerEmail, msg.CustomerName, msg.OrderID, msg.TotalAmount); err != nil {
		return err
	}
	h.log.Info("order confirmation sent", "order_id", msg.OrderID)
	return nil
}

// LogNotifier is the cash-on-delivery default: confirmations are recorded in
// the application log until a mail provider is wired in.
type LogNotifier struct{}

func (LogNotifier) SendOrderConfirmation(_ context.Context, email, name, orderID, total string) error {
	logging.New("notifier").Info("order confirmation",
		"email", email, "name", name, "order_id", orderID, "total", total)
	return nil
}
