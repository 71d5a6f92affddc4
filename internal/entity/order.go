package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Status string

const (
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusShipped    Status = "shipped"
	StatusDelivered  Status = "delivered"
	StatusCancelled  Status = "cancelled"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled:
		return true
	}
	return false
}

var ErrValidation = errors.New("validation failed")

type CustomerInfo struct {
	Name    string
	Email   string
	Phone   string
	Address string
}

// Validate enforces the checkout form contract: all four fields non-empty.
func (ci CustomerInfo) Validate() error {
	for _, f := range []struct{ name, val string }{
		{"name", ci.Name},
		{"email", ci.Email},
		{"phone", ci.Phone},
		{"address", ci.Address},
	} {
		if strings.TrimSpace(f.val) == "" {
			return fmt.Errorf("%w: %s is required", ErrValidation, f.name)
		}
	}
	return nil
}

// Order is an immutable snapshot of a completed checkout. Items and
// TotalAmount are fixed at creation; Status is the only field mutated
// afterwards, by an admin or a fulfilment event.
type Order struct {
	ID          string
	Customer    CustomerInfo
	Items       []CartLine
	TotalAmount decimal.Decimal
	Status      Status
	UserID      string
	CreatedAt   time.Time
}
