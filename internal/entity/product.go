package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product is read-only from the cart/checkout core's perspective; only the
// admin CRUD flow mutates it.
type Product struct {
	ID          string
	Name        string
	Description string
	Price       decimal.Decimal
	ImageURL    string
	Category    string
	CreatedAt   time.Time
}
