package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

func testClient(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func testCart(t *testing.T) domain.Cart {
	t.Helper()
	price, err := decimal.NewFromString("25.50")
	require.NoError(t, err)
	return domain.Cart{Lines: []domain.CartLine{
		{ProductID: "p1", Name: "Desk Fan", Price: price, Quantity: 2, Category: "fans"},
	}}
}

func TestRedisCartStore_RoundTrip(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()

	store := NewRedisCartStore(rdb, time.Hour)
	require.NoError(t, store.Save(ctx, "c1", testCart(t)))

	// A fresh store over the same backend sees the snapshot: the cart
	// survives a process restart.
	reopened := NewRedisCartStore(rdb, time.Hour)
	cart, err := reopened.Load(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p1", cart.Lines[0].ProductID)
	assert.Equal(t, 2, cart.Lines[0].Quantity)
	assert.Equal(t, "51.00", domain.FormatAmount(cart.TotalPrice()))
}

func TestRedisCartStore_MissingKeyIsEmptyCart(t *testing.T) {
	store := NewRedisCartStore(testClient(t), time.Hour)
	cart, err := store.Load(context.Background(), "nope")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestRedisCartStore_MalformedSnapshotDiscarded(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	store := NewRedisCartStore(rdb, time.Hour)

	for _, raw := range []string{
		"not json at all",
		`{"lines":[{"id":"p1","price":"not-a-number","quantity":1}]}`,
		`{"lines":[{"id":"p1","price":"10.00","quantity":0}]}`,
	} {
		require.NoError(t, rdb.Set(ctx, "cart:bad", raw, 0).Err())

		cart, err := store.Load(ctx, "bad")
		require.NoError(t, err, raw)
		assert.True(t, cart.Empty(), raw)

		// The poisoned key is dropped, not left to fail every load.
		exists, err := rdb.Exists(ctx, "cart:bad").Result()
		require.NoError(t, err)
		assert.Zero(t, exists, raw)
	}
}

func TestRedisCartStore_DeleteClears(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	store := NewRedisCartStore(rdb, time.Hour)

	require.NoError(t, store.Save(ctx, "c1", testCart(t)))
	require.NoError(t, store.Delete(ctx, "c1"))

	cart, err := store.Load(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestRedisIdempotencyStore(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	store := NewRedisIdempotencyStore(rdb, time.Minute)

	ok, err := store.TryLock(ctx, "c1", "k1")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = store.TryLock(ctx, "c1", "k1")
	require.NoError(t, err)
	assert.False(t, ok, "second lock on same key fails")

	require.NoError(t, store.Unlock(ctx, "c1", "k1"))
	ok, err = store.TryLock(ctx, "c1", "k1")
	require.NoError(t, err)
	assert.True(t, ok, "released key can be locked again")

	_, found, err := store.Recall(ctx, "c1", "k1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.Remember(ctx, "c1", "k1", "order-1"))
	val, found, err := store.Recall(ctx, "c1", "k1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "order-1", val)
}

func TestRedisStatusCache(t *testing.T) {
	store := NewRedisStatusCache(testClient(t), time.Minute)
	ctx := context.Background()

	_, found, err := store.GetStatus(ctx, "o1")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, store.SetStatus(ctx, "o1", "shipped"))
	val, found, err := store.GetStatus(ctx, "o1")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "shipped", val)
}
