package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/repo"
	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// AdminHandler serves the dashboard: full listings plus CRUD on products
// and order status. Listings are complete re-fetches ordered newest-first;
// concurrent edits are last-write-wins.
type AdminHandler struct {
	orders   usecase.OrderRepo
	products usecase.ProductRepo
	contacts usecase.ContactRepo
	statuses usecase.StatusCache
}

func NewAdminHandler(orders usecase.OrderRepo, products usecase.ProductRepo, contacts usecase.ContactRepo, statuses usecase.StatusCache) *AdminHandler {
	return &AdminHandler{orders: orders, products: products, contacts: contacts, statuses: statuses}
}

// ListOrders handles GET /v1/admin/orders
func (h *AdminHandler) ListOrders(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	recs, err := h.orders.ListAll(ctx)
	if err != nil {
		logging.From(c).Error("admin order list failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	out := make([]orderResp, 0, len(recs))
	pending := 0
	for _, rec := range recs {
		if rec.Status == string(domain.StatusPending) {
			pending++
		}
		resp, err := toOrderResp(rec, rec.Status)
		if err != nil {
			logging.From(c).Error("order decode failed", "order_id", rec.ID, "err", err)
			continue
		}
		out = append(out, resp)
	}
	c.JSON(http.StatusOK, gin.H{
		"orders":         out,
		"total_orders":   len(out),
		"pending_orders": pending,
	})
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

// UpdateOrderStatus handles PATCH /v1/admin/orders/:id/status
func (h *AdminHandler) UpdateOrderStatus(c *gin.Context) {
	var req updateStatusReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	status := domain.Status(req.Status)
	if !status.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid_status"})
		return
	}

	id := c.Param("id")
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.orders.UpdateStatus(ctx, id, string(status)); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		logging.From(c).Error("status update failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	if h.statuses != nil {
		_ = h.statuses.SetStatus(ctx, id, string(status))
	}
	c.JSON(http.StatusOK, gin.H{"id": id, "status": string(status)})
}

// ListProducts handles GET /v1/admin/products
func (h *AdminHandler) ListProducts(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	products, err := h.products.List(ctx)
	if err != nil {
		logging.From(c).Error("admin product list failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	out := make([]productResp, len(products))
	for i, p := range products {
		out[i] = toProductResp(p)
	}
	c.JSON(http.StatusOK, gin.H{"products": out, "total_products": len(out)})
}

type productReq struct {
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Price       string `json:"price" binding:"required"`
	ImageURL    string `json:"image_url"`
	Category    string `json:"category"`
}

func (r productReq) toDomain(id string) (*domain.Product, error) {
	price, err := domain.ParsePrice(r.Price)
	if err != nil {
		return nil, err
	}
	if price.IsNegative() {
		return nil, errors.New("price must not be negative")
	}
	return &domain.Product{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
		Price:       price,
		ImageURL:    r.ImageURL,
		Category:    r.Category,
	}, nil
}

// CreateProduct handles POST /v1/admin/products
func (h *AdminHandler) CreateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	p, err := req.toDomain(uuid.NewString())
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.products.Create(ctx, p); err != nil {
		logging.From(c).Error("product create failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusCreated, toProductResp(*p))
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *AdminHandler) UpdateProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}
	p, err := req.toDomain(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.products.Update(ctx, p); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		logging.From(c).Error("product update failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p))
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *AdminHandler) DeleteProduct(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	if err := h.products.Delete(ctx, c.Param("id")); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		logging.From(c).Error("product delete failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// ListMessages handles GET /v1/admin/messages
func (h *AdminHandler) ListMessages(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	msgs, err := h.contacts.List(ctx)
	if err != nil {
		logging.From(c).Error("message list failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}
