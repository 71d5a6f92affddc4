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

type CartHandler struct {
	carts *usecase.CartService
}

func NewCartHandler(carts *usecase.CartService) *CartHandler {
	return &CartHandler{carts: carts}
}

type cartLineResp struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	LineTotal string `json:"line_total"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
}

type cartResp struct {
	CartID     string         `json:"cart_id"`
	Items      []cartLineResp `json:"items"`
	TotalItems int            `json:"total_items"`
	TotalPrice string         `json:"total_price"`
}

func toCartResp(cartID string, cart domain.Cart) cartResp {
	items := make([]cartLineResp, len(cart.Lines))
	for i, l := range cart.Lines {
		items[i] = cartLineResp{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     domain.FormatAmount(l.Price),
			Quantity:  l.Quantity,
			LineTotal: domain.FormatAmount(l.Total()),
			ImageURL:  l.ImageURL,
			Category:  l.Category,
		}
	}
	return cartResp{
		CartID:     cartID,
		Items:      items,
		TotalItems: cart.TotalItems(),
		TotalPrice: domain.FormatAmount(cart.TotalPrice()),
	}
}

// Get handles GET /v1/cart
func (h *CartHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	cartID := middleware.CartID(c)
	cart, err := h.carts.Get(ctx, cartID)
	if err != nil {
		logging.From(c).Error("cart load failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toCartResp(cartID, cart))
}

type addItemReq struct {
	ProductID string `json:"product_id" binding:"required"`
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cartID := middleware.CartID(c)
	cart, err := h.carts.AddItem(ctx, cartID, req.ProductID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "product_not_found"})
			return
		}
		logging.From(c).Error("cart add failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toCartResp(cartID, cart))
}

type setQuantityReq struct {
	// Zero removes the line, so no lower bound beyond the type's.
	Quantity int `json:"quantity"`
}

// SetQuantity handles PUT /v1/cart/items/:productId
func (h *CartHandler) SetQuantity(c *gin.Context) {
	var req setQuantityReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "bad_request"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cartID := middleware.CartID(c)
	cart, err := h.carts.SetQuantity(ctx, cartID, c.Param("productId"), req.Quantity)
	if err != nil {
		logging.From(c).Error("cart update failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toCartResp(cartID, cart))
}

// RemoveItem handles DELETE /v1/cart/items/:productId
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cartID := middleware.CartID(c)
	cart, err := h.carts.RemoveItem(ctx, cartID, c.Param("productId"))
	if err != nil {
		logging.From(c).Error("cart remove failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toCartResp(cartID, cart))
}

// Clear handles DELETE /v1/cart
func (h *CartHandler) Clear(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cartID := middleware.CartID(c)
	if err := h.carts.Clear(ctx, cartID); err != nil {
		logging.From(c).Error("cart clear failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toCartResp(cartID, domain.Cart{}))
}
