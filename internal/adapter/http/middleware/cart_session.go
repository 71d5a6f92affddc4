package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	cartIDHeader = "X-Cart-Id"
	ctxCartID    = "cart.id"
)

// CartSession resolves the caller's cart id. First-time shoppers get a
// freshly minted id; it is always echoed back so the client can persist it.
// The id doubles as the idempotency scope at checkout.
func CartSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(cartIDHeader)
		if id == "" || uuid.Validate(id) != nil {
			id = uuid.NewString()
		}
		c.Set(ctxCartID, id)
		c.Header(cartIDHeader, id)
		c.Next()
	}
}

// CartID returns the cart id resolved by CartSession.
func CartID(c *gin.Context) string {
	return c.GetString(ctxCartID)
}
