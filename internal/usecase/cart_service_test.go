package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

type memProductRepo struct {
	byID map[string]domain.Product
	list []domain.Product
}

func (r *memProductRepo) List(context.Context) ([]domain.Product, error) { return r.list, nil }

func (r *memProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, errors.New("not found")
	}
	return &p, nil
}

func (r *memProductRepo) Create(context.Context, *domain.Product) error { return nil }
func (r *memProductRepo) Update(context.Context, *domain.Product) error { return nil }
func (r *memProductRepo) Delete(context.Context, string) error          { return nil }

func fanRepo(t *testing.T) *memProductRepo {
	t.Helper()
	fan := domain.Product{ID: "p1", Name: "Desk Fan", Price: mustDec(t, "25.50"), Category: "fans"}
	heater := domain.Product{ID: "p2", Name: "Heater", Price: mustDec(t, "89.99"), Category: "heaters"}
	return &memProductRepo{
		byID: map[string]domain.Product{"p1": fan, "p2": heater},
		list: []domain.Product{heater, fan},
	}
}

func TestCartService_AddItemTwiceMergesLine(t *testing.T) {
	store := newMemCartStore()
	svc := NewCartService(store, fanRepo(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)
	cart, err := svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)

	require.Len(t, cart.Lines, 1)
	assert.Equal(t, 2, cart.Lines[0].Quantity)

	// The merged line survives the round-trip through the store.
	reloaded, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	require.Len(t, reloaded.Lines, 1)
	assert.Equal(t, 2, reloaded.Lines[0].Quantity)
}

func TestCartService_AddUnknownProduct(t *testing.T) {
	svc := NewCartService(newMemCartStore(), fanRepo(t))
	_, err := svc.AddItem(context.Background(), "c1", "ghost")
	require.Error(t, err)

	cart, err := svc.Get(context.Background(), "c1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCartService_QuantityAndRemoval(t *testing.T) {
	svc := NewCartService(newMemCartStore(), fanRepo(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)
	_, err = svc.AddItem(ctx, "c1", "p2")
	require.NoError(t, err)

	cart, err := svc.SetQuantity(ctx, "c1", "p1", 4)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.TotalItems())

	cart, err = svc.SetQuantity(ctx, "c1", "p2", 0)
	require.NoError(t, err)
	require.Len(t, cart.Lines, 1)
	assert.Equal(t, "p1", cart.Lines[0].ProductID)

	cart, err = svc.RemoveItem(ctx, "c1", "p1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCartService_ClearDropsPersistedCart(t *testing.T) {
	store := newMemCartStore()
	svc := NewCartService(store, fanRepo(t))
	ctx := context.Background()

	_, err := svc.AddItem(ctx, "c1", "p1")
	require.NoError(t, err)
	require.NoError(t, svc.Clear(ctx, "c1"))

	cart, err := svc.Get(ctx, "c1")
	require.NoError(t, err)
	assert.True(t, cart.Empty())
}

func TestCatalog_BrowseAppliesViewPipeline(t *testing.T) {
	cat := NewCatalog(fanRepo(t))
	out, err := cat.Browse(context.Background(), "fan", domain.CategoryAll, domain.SortName)
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Desk Fan", out[0].Name)

	cats, err := cat.Categories(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"all", "heaters", "fans"}, cats)
}
