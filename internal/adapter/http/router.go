package http

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/misbahulhassan/Aeroflux-Electric/internal/adapter/http/middleware"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

type Handlers struct {
	Auth    *AuthHandler
	Product *ProductHandler
	Cart    *CartHandler
	Order   *OrderHandler
	Admin   *AdminHandler
	Contact *ContactHandler
}

func NewRouter(h Handlers, authz *middleware.Authz, admins usecase.AdminRepo) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.MetricsMiddleware())

	l := logging.New("http")
	r.Use(middleware.Logging(l))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true})
	})
	// Prometheus endpoint (scraped by Prometheus)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/v1", authz.Authenticate())
	{
		auth := v1.Group("/auth")
		{
			auth.POST("/signup", h.Auth.SignUp)
			auth.POST("/signin", h.Auth.SignIn)
			auth.POST("/signout", h.Auth.SignOut)
		}

		v1.GET("/products", h.Product.List)
		v1.GET("/products/categories", h.Product.Categories)
		v1.GET("/products/:id", h.Product.Get)

		v1.POST("/contact", h.Contact.Submit)

		cart := v1.Group("", middleware.CartSession())
		{
			cart.GET("/cart", h.Cart.Get)
			cart.POST("/cart/items", h.Cart.AddItem)
			cart.PUT("/cart/items/:productId", h.Cart.SetQuantity)
			cart.DELETE("/cart/items/:productId", h.Cart.RemoveItem)
			cart.DELETE("/cart", h.Cart.Clear)
			cart.POST("/checkout", h.Order.Checkout)
		}

		v1.GET("/orders", authz.RequireUser(), h.Order.ListMine)
		v1.GET("/orders/:id", h.Order.Get)

		admin := v1.Group("/admin", authz.RequireAdmin(admins))
		{
			admin.GET("/orders", h.Admin.ListOrders)
			admin.PATCH("/orders/:id/status", h.Admin.UpdateOrderStatus)
			admin.GET("/products", h.Admin.ListProducts)
			admin.POST("/products", h.Admin.CreateProduct)
			admin.PUT("/products/:id", h.Admin.UpdateProduct)
			admin.DELETE("/products/:id", h.Admin.DeleteProduct)
			admin.GET("/messages", h.Admin.ListMessages)
		}
	}

	return r
}
