package kafka

import (
	"context"
	"fmt"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// OrderStatusChangedHandler applies fulfilment-side status events
// (processing, shipped, delivered, cancelled) to the order row, then
// refreshes the status cache.
type OrderStatusChangedHandler struct {
	Repo  usecase.OrderRepo
	Cache usecase.StatusCache // optional
}

func NewOrderStatusChangedHandler(repo usecase.OrderRepo, cache usecase.StatusCache) *OrderStatusChangedHandler {
	return &OrderStatusChangedHandler{Repo: repo, Cache: cache}
}

func (h *OrderStatusChangedHandler) Handle(ctx context.Context, ev usecase.OrderStatusChangedMsg) error {
	status := domain.Status(ev.Status)
	if !status.Valid() {
		return fmt.Errorf("unknown order status %q for order %s", ev.Status, ev.OrderID)
	}

	if err := h.Repo.UpdateStatus(ctx, ev.OrderID, string(status)); err != nil {
		return err
	}

	// Cache best-effort
	if h.Cache != nil {
		_ = h.Cache.SetStatus(ctx, ev.OrderID, string(status))
	}
	return nil
}
