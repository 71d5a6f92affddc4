package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/http/middleware"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/repo"
	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type OrderHandler struct {
	checkout *usecase.PlaceOrder
	query    usecase.OrderRepo
	statuses usecase.StatusCache
}

func NewOrderHandler(checkout *usecase.PlaceOrder, query usecase.OrderRepo, statuses usecase.StatusCache) *OrderHandler {
	return &OrderHandler{checkout: checkout, query: query, statuses: statuses}
}

type checkoutReq struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Phone   string `json:"phone" binding:"required"`
	Address string `json:"address" binding:"required"`
}

type checkoutResp struct {
	OrderID     string `json:"orderId"`
	Status      string `json:"status"`
	TotalAmount string `json:"totalAmount"`
}

// Checkout handles POST /v1/checkout: snapshot the cart into an order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	var req checkoutReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	idemKey := c.GetHeader("X-Idempotency-Key") // prevent duplicated orders

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	out, err := h.checkout.Execute(ctx, usecase.PlaceOrderInput{
		CartID:         middleware.CartID(c),
		UserID:         middleware.UserID(c),
		IdempotencyKey: idemKey,
		Customer: domain.CustomerInfo{
			Name:    req.Name,
			Email:   req.Email,
			Phone:   req.Phone,
			Address: req.Address,
		},
	})

	if err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, domain.ErrValidation):
			status = http.StatusBadRequest
		case errors.Is(err, usecase.ErrDuplicate):
			status = http.StatusConflict
		default:
			logging.From(c).Error("checkout failed", "err", err)
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, checkoutResp(out))
}

type orderResp struct {
	ID              string              `json:"id"`
	Status          string              `json:"status"`
	TotalAmount     string              `json:"total_amount"`
	CustomerName    string              `json:"customer_name"`
	CustomerAddress string              `json:"customer_address"`
	Items           []usecase.OrderItem `json:"order_items"`
	CreatedAt       string              `json:"created_at"`
}

func toOrderResp(rec usecase.OrderRecord, status string) (orderResp, error) {
	items, err := usecase.ItemsFromJSON(rec.ItemsJSON)
	if err != nil {
		return orderResp{}, err
	}
	return orderResp{
		ID:              rec.ID,
		Status:          status,
		TotalAmount:     rec.TotalAmount,
		CustomerName:    rec.CustomerName,
		CustomerAddress: rec.CustomerAddress,
		Items:           items,
		CreatedAt:       rec.CreatedAt.UTC().Format(time.RFC3339),
	}, nil
}

// ListMine handles GET /v1/orders: the signed-in user's order history.
func (h *OrderHandler) ListMine(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	recs, err := h.query.ListByUser(ctx, middleware.UserID(c))
	if err != nil {
		logging.From(c).Error("order list failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	out := make([]orderResp, 0, len(recs))
	for _, rec := range recs {
		resp, err := toOrderResp(rec, rec.Status)
		if err != nil {
			logging.From(c).Error("order decode failed", "order_id", rec.ID, "err", err)
			continue
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{"orders": out})
}

// Get handles GET /v1/orders/:id. The status cache is consulted first; the
// row is the fallback and the source of everything but the live status.
func (h *OrderHandler) Get(c *gin.Context) {
	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	rec, err := h.query.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		logging.From(c).Error("order fetch failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	// Guests may only see their own orders through the confirmation link;
	// signed-in users only their own history.
	if rec.UserID != "" && rec.UserID != middleware.UserID(c) {
		c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
		return
	}

	status := rec.Status
	if h.statuses != nil {
		if cached, ok, err := h.statuses.GetStatus(ctx, id); err == nil && ok {
			status = cached
		}
	}

	resp, err := toOrderResp(*rec, status)
	if err != nil {
		logging.From(c).Error("order decode failed", "order_id", id, "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, resp)
}
