package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func product(id, name, price string) Product {
	d, err := decimal.NewFromString(price)
	if err != nil {
		panic(err)
	}
	return Product{ID: id, Name: name, Price: d}
}

func TestCart_AddMergesSameProduct(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Desk Fan", "10"))
	c.Add(product("p1", "Desk Fan", "10"))

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 2, c.Lines[0].Quantity)
	assert.Equal(t, 2, c.TotalItems())
}

func TestCart_AddPreservesInsertionOrder(t *testing.T) {
	var c Cart
	c.Add(product("p2", "Heater", "49.99"))
	c.Add(product("p1", "Desk Fan", "10"))
	c.Add(product("p2", "Heater", "49.99"))

	require.Len(t, c.Lines, 2)
	assert.Equal(t, "p2", c.Lines[0].ProductID)
	assert.Equal(t, "p1", c.Lines[1].ProductID)
}

func TestCart_Totals(t *testing.T) {
	var c Cart
	c.Add(product("1", "A", "10.00"))
	c.SetQuantity("1", 2)
	c.Add(product("2", "B", "5.50"))

	assert.Equal(t, 3, c.TotalItems())
	assert.Equal(t, "25.50", FormatAmount(c.TotalPrice()))
}

func TestCart_SetQuantityZeroRemovesLine(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Desk Fan", "10"))
	c.Add(product("p2", "Heater", "49.99"))

	c.SetQuantity("p1", 0)
	require.Len(t, c.Lines, 1)
	assert.Equal(t, "p2", c.Lines[0].ProductID)

	c.SetQuantity("p2", -3)
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.TotalItems())
	assert.True(t, c.TotalPrice().IsZero())
}

func TestCart_SetQuantityUnknownIDIsNoop(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Desk Fan", "10"))
	c.SetQuantity("missing", 5)

	require.Len(t, c.Lines, 1)
	assert.Equal(t, 1, c.Lines[0].Quantity)
}

func TestCart_RemoveAndClear(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Desk Fan", "10"))
	c.Add(product("p2", "Heater", "49.99"))

	c.Remove("missing") // no-op
	require.Len(t, c.Lines, 2)

	c.Remove("p1")
	require.Len(t, c.Lines, 1)

	c.Clear()
	assert.True(t, c.Empty())
}

func TestCart_EmptyCartTotalsAreZero(t *testing.T) {
	var c Cart
	assert.Equal(t, 0, c.TotalItems())
	assert.Equal(t, "0.00", FormatAmount(c.TotalPrice()))
}

func TestCart_SnapshotIsIndependent(t *testing.T) {
	var c Cart
	c.Add(product("p1", "Desk Fan", "10"))
	snap := c.Snapshot()

	c.SetQuantity("p1", 7)
	c.Lines[0].Name = "renamed"

	require.Len(t, snap, 1)
	assert.Equal(t, 1, snap[0].Quantity)
	assert.Equal(t, "Desk Fan", snap[0].Name)
}

func TestCustomerInfo_Validate(t *testing.T) {
	ok := CustomerInfo{Name: "N", Email: "n@example.com", Phone: "1", Address: "Street 1"}
	require.NoError(t, ok.Validate())

	missing := ok
	missing.Address = "   "
	err := missing.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "address")
}

func TestStatus_Valid(t *testing.T) {
	for _, s := range []Status{StatusPending, StatusProcessing, StatusShipped, StatusDelivered, StatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, Status("refunded").Valid())
	assert.False(t, Status("").Valid())
}
