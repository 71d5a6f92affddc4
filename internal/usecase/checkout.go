package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

var (
	ErrDuplicate = errors.New("duplicate idempotency key")
	ErrEmptyCart = fmt.Errorf("%w: cart is empty", domain.ErrValidation)
)

type PlaceOrderInput struct {
	CartID         string
	UserID         string
	IdempotencyKey string
	Customer       domain.CustomerInfo
}

type PlaceOrderOutput struct {
	OrderID     string
	Status      string
	TotalAmount string
}

// PlaceOrder snapshots the cart into an immutable order at checkout time.
// The cart is cleared only after the insert is confirmed; any earlier
// failure leaves it untouched so the user can retry.
type PlaceOrder struct {
	carts  CartStore
	orders OrderRepo
	idem   IdempotencyStore
	events OrderEvents
}

func NewPlaceOrder(carts CartStore, orders OrderRepo, idem IdempotencyStore, events OrderEvents) *PlaceOrder {
	return &PlaceOrder{carts: carts, orders: orders, idem: idem, events: events}
}

func (uc *PlaceOrder) Execute(ctx context.Context, in PlaceOrderInput) (PlaceOrderOutput, error) {
	if err := in.Customer.Validate(); err != nil {
		return PlaceOrderOutput{}, err
	}

	cart, err := uc.carts.Load(ctx, in.CartID)
	if err != nil {
		return PlaceOrderOutput{}, err
	}
	if cart.Empty() {
		return PlaceOrderOutput{}, ErrEmptyCart
	}

	if in.IdempotencyKey != "" {
		// Fast path: a retried submission returns the first order's
		// confirmation, rebuilt from the persisted record.
		if id, ok, _ := uc.idem.Recall(ctx, in.CartID, in.IdempotencyKey); ok {
			rec, err := uc.orders.GetByID(ctx, id)
			if err != nil {
				return PlaceOrderOutput{}, err
			}
			return PlaceOrderOutput{OrderID: rec.ID, Status: rec.Status, TotalAmount: rec.TotalAmount}, nil
		}
		ok, err := uc.idem.TryLock(ctx, in.CartID, in.IdempotencyKey)
		if err != nil {
			return PlaceOrderOutput{}, err
		}
		if !ok {
			return PlaceOrderOutput{}, ErrDuplicate
		}
	}

	order := domain.Order{
		ID:          uuid.NewString(),
		Customer:    in.Customer,
		Items:       cart.Snapshot(),
		TotalAmount: cart.TotalPrice(),
		Status:      domain.StatusPending,
		UserID:      in.UserID,
		CreatedAt:   time.Now().UTC(),
	}

	rec, err := toRecord(order)
	if err != nil {
		return PlaceOrderOutput{}, uc.abandon(ctx, in, err)
	}
	if err := uc.orders.Create(ctx, rec); err != nil {
		return PlaceOrderOutput{}, uc.abandon(ctx, in, err)
	}

	// Post-persist side effects are best-effort: the order exists either way.
	if in.IdempotencyKey != "" {
		_ = uc.idem.Remember(ctx, in.CartID, in.IdempotencyKey, order.ID)
	}
	if uc.events != nil {
		_ = uc.events.PublishPlaced(ctx, OrderPlacedMsg{
			OrderID:       order.ID,
			UserID:        order.UserID,
			CustomerName:  order.Customer.Name,
			CustomerEmail: order.Customer.Email,
			TotalAmount:   rec.TotalAmount,
		})
	}
	_ = uc.carts.Delete(ctx, in.CartID)

	return PlaceOrderOutput{
		OrderID:     order.ID,
		Status:      string(order.Status),
		TotalAmount: rec.TotalAmount,
	}, nil
}

// abandon releases the idempotency lock taken for this submission so the
// next retry with the same key is not rejected as a duplicate.
func (uc *PlaceOrder) abandon(ctx context.Context, in PlaceOrderInput, cause error) error {
	if in.IdempotencyKey != "" {
		_ = uc.idem.Unlock(ctx, in.CartID, in.IdempotencyKey)
	}
	return cause
}

// OrderItem is the wire/storage shape of one snapshotted cart line.
type OrderItem struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
}

func toRecord(o domain.Order) (*OrderRecord, error) {
	items := make([]OrderItem, len(o.Items))
	for i, l := range o.Items {
		items[i] = OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.String(),
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
			Category:  l.Category,
		}
	}
	b, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("marshal order items: %w", err)
	}
	return &OrderRecord{
		ID:              o.ID,
		UserID:          o.UserID,
		CustomerName:    o.Customer.Name,
		CustomerEmail:   o.Customer.Email,
		CustomerPhone:   o.Customer.Phone,
		CustomerAddress: o.Customer.Address,
		Status:          string(o.Status),
		TotalAmount:     domain.FormatAmount(o.TotalAmount),
		ItemsJSON:       string(b),
		CreatedAt:       o.CreatedAt,
	}, nil
}

// ItemsFromJSON decodes a stored order_items snapshot for display.
func ItemsFromJSON(raw string) ([]OrderItem, error) {
	var items []OrderItem
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return items, nil
}
