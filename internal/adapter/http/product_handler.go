package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/repo"
	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type ProductHandler struct {
	catalog *usecase.Catalog
}

func NewProductHandler(catalog *usecase.Catalog) *ProductHandler {
	return &ProductHandler{catalog: catalog}
}

type productResp struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	ImageURL    string `json:"image_url,omitempty"`
	Category    string `json:"category,omitempty"`
	CreatedAt   string `json:"created_at"`
}

func toProductResp(p domain.Product) productResp {
	return productResp{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       domain.FormatAmount(p.Price),
		ImageURL:    p.ImageURL,
		Category:    p.Category,
		CreatedAt:   p.CreatedAt.UTC().Format(time.RFC3339),
	}
}

// List handles GET /v1/products?q=&category=&sort=
func (h *ProductHandler) List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	query := c.Query("q")
	category := c.DefaultQuery("category", domain.CategoryAll)
	sortKey := domain.SortKey(c.DefaultQuery("sort", string(domain.SortNewest)))

	products, err := h.catalog.Browse(ctx, query, category, sortKey)
	if err != nil {
		logging.From(c).Error("browse failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}

	out := make([]productResp, len(products))
	for i, p := range products {
		out[i] = toProductResp(p)
	}
	c.JSON(http.StatusOK, gin.H{"products": out, "count": len(out)})
}

// Categories handles GET /v1/products/categories
func (h *ProductHandler) Categories(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	cats, err := h.catalog.Categories(ctx)
	if err != nil {
		logging.From(c).Error("categories failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"categories": cats})
}

// Get handles GET /v1/products/:id
func (h *ProductHandler) Get(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	p, err := h.catalog.Get(ctx, c.Param("id"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not_found"})
			return
		}
		logging.From(c).Error("product fetch failed", "err", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "server_error"})
		return
	}
	c.JSON(http.StatusOK, toProductResp(*p))
}
