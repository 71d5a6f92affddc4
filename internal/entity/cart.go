package domain

import (
	"github.com/shopspring/decimal"
)

// CartLine is one product entry in the cart with its chosen quantity.
// A cart never holds two lines for the same product id.
type CartLine struct {
	ProductID string
	Name      string
	Price     decimal.Decimal
	Quantity  int
	ImageURL  string
	Category  string
}

// Total returns price × quantity for this line.
func (l CartLine) Total() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is an ordered sequence of lines, insertion order = add order.
type Cart struct {
	Lines []CartLine
}

// Add merges the product into the cart: an existing line for the same id
// gets its quantity bumped by one, otherwise a new line is appended with
// quantity 1, copying the product snapshot.
func (c *Cart) Add(p Product) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == p.ID {
			c.Lines[i].Quantity++
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Quantity:  1,
		ImageURL:  p.ImageURL,
		Category:  p.Category,
	})
}

// SetQuantity sets the line's quantity; qty <= 0 removes the line.
// Unknown product ids are a no-op.
func (c *Cart) SetQuantity(productID string, qty int) {
	if qty <= 0 {
		c.Remove(productID)
		return
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = qty
			return
		}
	}
}

// Remove deletes the line with the given product id if present.
func (c *Cart) Remove(productID string) {
	for i, l := range c.Lines {
		if l.ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

func (c Cart) Empty() bool { return len(c.Lines) == 0 }

// TotalItems is the sum of all line quantities.
func (c Cart) TotalItems() int {
	n := 0
	for _, l := range c.Lines {
		n += l.Quantity
	}
	return n
}

// TotalPrice is recomputed from the lines on every call, never cached.
func (c Cart) TotalPrice() decimal.Decimal {
	sum := decimal.Zero
	for _, l := range c.Lines {
		sum = sum.Add(l.Total())
	}
	return sum
}

// Snapshot returns an independent copy of the cart lines, safe to keep in
// an order after the live cart mutates.
func (c Cart) Snapshot() []CartLine {
	if len(c.Lines) == 0 {
		return nil
	}
	out := make([]CartLine, len(c.Lines))
	copy(out, c.Lines)
	return out
}
