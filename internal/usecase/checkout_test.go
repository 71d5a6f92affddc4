package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

type memCartStore struct {
	m     sync.Mutex
	carts map[string]domain.Cart
}

func newMemCartStore() *memCartStore {
	return &memCartStore{carts: map[string]domain.Cart{}}
}

func (s *memCartStore) Load(_ context.Context, cartID string) (domain.Cart, error) {
	s.m.Lock()
	defer s.m.Unlock()
	c := s.carts[cartID]
	return domain.Cart{Lines: append([]domain.CartLine(nil), c.Lines...)}, nil
}

func (s *memCartStore) Save(_ context.Context, cartID string, cart domain.Cart) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.carts[cartID] = domain.Cart{Lines: append([]domain.CartLine(nil), cart.Lines...)}
	return nil
}

func (s *memCartStore) Delete(_ context.Context, cartID string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.carts, cartID)
	return nil
}

type memOrderRepo struct {
	m      sync.Mutex
	orders []OrderRecord
	err    error
}

func (r *memOrderRepo) Create(_ context.Context, o *OrderRecord) error {
	r.m.Lock()
	defer r.m.Unlock()
	if r.err != nil {
		return r.err
	}
	r.orders = append(r.orders, *o)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*OrderRecord, error) {
	r.m.Lock()
	defer r.m.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			o := r.orders[i]
			return &o, nil
		}
	}
	return nil, errors.New("not found")
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]OrderRecord, error) {
	var out []OrderRecord
	for _, o := range r.orders {
		if o.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListAll(context.Context) ([]OrderRecord, error) { return r.orders, nil }

func (r *memOrderRepo) UpdateStatus(_ context.Context, id, toStatus string) error {
	r.m.Lock()
	defer r.m.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = toStatus
			return nil
		}
	}
	return errors.New("not found")
}

type memIdemStore struct {
	m      sync.Mutex
	locks  map[string]bool
	values map[string]string
}

func newMemIdemStore() *memIdemStore {
	return &memIdemStore{locks: map[string]bool{}, values: map[string]string{}}
}

func (s *memIdemStore) TryLock(_ context.Context, scope, key string) (bool, error) {
	s.m.Lock()
	defer s.m.Unlock()
	k := scope + ":" + key
	if s.locks[k] {
		return false, nil
	}
	s.locks[k] = true
	return true, nil
}

func (s *memIdemStore) Unlock(_ context.Context, scope, key string) error {
	s.m.Lock()
	defer s.m.Unlock()
	delete(s.locks, scope+":"+key)
	return nil
}

func (s *memIdemStore) Remember(_ context.Context, scope, key, value string) error {
	s.m.Lock()
	defer s.m.Unlock()
	s.values[scope+":"+key] = value
	return nil
}

func (s *memIdemStore) Recall(_ context.Context, scope, key string) (string, bool, error) {
	s.m.Lock()
	defer s.m.Unlock()
	v, ok := s.values[scope+":"+key]
	return v, ok, nil
}

type memEvents struct {
	m    sync.Mutex
	msgs []OrderPlacedMsg
}

func (e *memEvents) PublishPlaced(_ context.Context, msg OrderPlacedMsg) error {
	e.m.Lock()
	defer e.m.Unlock()
	e.msgs = append(e.msgs, msg)
	return nil
}

func mustDec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}

func seedCart(t *testing.T, store CartStore, cartID string) domain.Cart {
	t.Helper()
	cart := domain.Cart{Lines: []domain.CartLine{
		{ProductID: "p1", Name: "Desk Fan", Price: mustDec(t, "10.00"), Quantity: 2},
		{ProductID: "p2", Name: "Heater", Price: mustDec(t, "5.50"), Quantity: 1},
	}}
	require.NoError(t, store.Save(context.Background(), cartID, cart))
	return cart
}

func validCustomer() domain.CustomerInfo {
	return domain.CustomerInfo{
		Name:    "Asha Rao",
		Email:   "asha@example.com",
		Phone:   "+91 98765 43210",
		Address: "12 MG Road, Bengaluru",
	}
}

func TestPlaceOrder_Success(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{}
	events := &memEvents{}
	seedCart(t, carts, "c1")

	uc := NewPlaceOrder(carts, orders, newMemIdemStore(), events)
	out, err := uc.Execute(context.Background(), PlaceOrderInput{
		CartID:   "c1",
		UserID:   "u1",
		Customer: validCustomer(),
	})
	require.NoError(t, err)
	assert.NotEmpty(t, out.OrderID)
	assert.Equal(t, "pending", out.Status)
	assert.Equal(t, "25.50", out.TotalAmount)

	require.Len(t, orders.orders, 1)
	rec := orders.orders[0]
	assert.Equal(t, "u1", rec.UserID)
	assert.Equal(t, "25.50", rec.TotalAmount)

	items, err := ItemsFromJSON(rec.ItemsJSON)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "p1", items[0].ProductID)
	assert.Equal(t, 2, items[0].Quantity)

	// Confirmed persistence clears the cart.
	cart, err := carts.Load(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())

	require.Len(t, events.msgs, 1)
	assert.Equal(t, out.OrderID, events.msgs[0].OrderID)
}

func TestPlaceOrder_SnapshotSurvivesCartMutation(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{}
	seedCart(t, carts, "c1")

	uc := NewPlaceOrder(carts, orders, newMemIdemStore(), nil)
	out, err := uc.Execute(context.Background(), PlaceOrderInput{CartID: "c1", Customer: validCustomer()})
	require.NoError(t, err)

	// New cart activity after checkout must not touch the stored snapshot.
	cart, _ := carts.Load(context.Background(), "c1")
	cart.Add(domain.Product{ID: "p9", Name: "Lamp", Price: mustDec(t, "99")})
	require.NoError(t, carts.Save(context.Background(), "c1", cart))

	rec, err := orders.GetByID(context.Background(), out.OrderID)
	require.NoError(t, err)
	items, err := ItemsFromJSON(rec.ItemsJSON)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestPlaceOrder_ValidationFailureLeavesCartIntact(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{}
	seedCart(t, carts, "c1")

	uc := NewPlaceOrder(carts, orders, newMemIdemStore(), nil)
	cust := validCustomer()
	cust.Address = ""
	_, err := uc.Execute(context.Background(), PlaceOrderInput{CartID: "c1", Customer: cust})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)

	assert.Empty(t, orders.orders, "no insert on validation failure")
	cart, _ := carts.Load(context.Background(), "c1")
	assert.Equal(t, 3, cart.TotalItems(), "cart unchanged")
}

func TestPlaceOrder_EmptyCartFailsValidation(t *testing.T) {
	uc := NewPlaceOrder(newMemCartStore(), &memOrderRepo{}, newMemIdemStore(), nil)
	_, err := uc.Execute(context.Background(), PlaceOrderInput{CartID: "nope", Customer: validCustomer()})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPlaceOrder_InsertFailureLeavesCartForRetry(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{err: errors.New("db down")}
	seedCart(t, carts, "c1")

	uc := NewPlaceOrder(carts, orders, newMemIdemStore(), nil)
	_, err := uc.Execute(context.Background(), PlaceOrderInput{
		CartID:         "c1",
		IdempotencyKey: "k1",
		Customer:       validCustomer(),
	})
	require.Error(t, err)

	cart, _ := carts.Load(context.Background(), "c1")
	assert.False(t, cart.Empty(), "cart kept so the user can retry")
}

func TestPlaceOrder_RetrySucceedsAfterInsertFailure(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{err: errors.New("db down")}
	idem := newMemIdemStore()
	seedCart(t, carts, "c1")

	uc := NewPlaceOrder(carts, orders, idem, nil)
	in := PlaceOrderInput{CartID: "c1", IdempotencyKey: "k1", Customer: validCustomer()}

	_, err := uc.Execute(context.Background(), in)
	require.Error(t, err)

	// The failed attempt must release its lock: once the database is back,
	// the same key goes through instead of bouncing off ErrDuplicate.
	orders.m.Lock()
	orders.err = nil
	orders.m.Unlock()

	out, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.NotEmpty(t, out.OrderID)
	require.Len(t, orders.orders, 1)
}

func TestPlaceOrder_DuplicateSubmissionReturnsFirstOrder(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{}
	idem := newMemIdemStore()
	seedCart(t, carts, "c1")

	uc := NewPlaceOrder(carts, orders, idem, nil)
	in := PlaceOrderInput{CartID: "c1", IdempotencyKey: "k1", Customer: validCustomer()}

	first, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)

	// Retry after the confirmation was lost: cart is already cleared, but
	// the recorded key short-circuits to the same order.
	seedCart(t, carts, "c1")
	second, err := uc.Execute(context.Background(), in)
	require.NoError(t, err)
	assert.Equal(t, first.OrderID, second.OrderID)
	assert.Equal(t, first.Status, second.Status)
	assert.Equal(t, first.TotalAmount, second.TotalAmount, "replay carries the original confirmation")
	assert.Len(t, orders.orders, 1, "no second insert")
}

func TestPlaceOrder_ConcurrentSameKeyConflicts(t *testing.T) {
	carts := newMemCartStore()
	orders := &memOrderRepo{}
	idem := newMemIdemStore()
	seedCart(t, carts, "c1")

	// Simulate a racing submission that took the lock but has not yet
	// remembered the order id.
	ok, err := idem.TryLock(context.Background(), "c1", "k1")
	require.NoError(t, err)
	require.True(t, ok)

	uc := NewPlaceOrder(carts, orders, idem, nil)
	_, err = uc.Execute(context.Background(), PlaceOrderInput{
		CartID:         "c1",
		IdempotencyKey: "k1",
		Customer:       validCustomer(),
	})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Empty(t, orders.orders)
}
