package usecase

import (
	"context"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

// CartService owns the load-modify-persist cycle for carts. Every mutation
// writes the whole snapshot back so a reload after restart observes the
// latest cart, never a torn intermediate state.
type CartService struct {
	store    CartStore
	products ProductRepo
}

func NewCartService(store CartStore, products ProductRepo) *CartService {
	return &CartService{store: store, products: products}
}

func (s *CartService) Get(ctx context.Context, cartID string) (domain.Cart, error) {
	return s.store.Load(ctx, cartID)
}

// AddItem resolves the product snapshot and merges it into the cart.
func (s *CartService) AddItem(ctx context.Context, cartID, productID string) (domain.Cart, error) {
	p, err := s.products.GetByID(ctx, productID)
	if err != nil {
		return domain.Cart{}, err
	}

	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Add(*p)
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) SetQuantity(ctx context.Context, cartID, productID string, qty int) (domain.Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.SetQuantity(productID, qty)
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) RemoveItem(ctx context.Context, cartID, productID string) (domain.Cart, error) {
	cart, err := s.store.Load(ctx, cartID)
	if err != nil {
		return domain.Cart{}, err
	}
	cart.Remove(productID)
	if err := s.store.Save(ctx, cartID, cart); err != nil {
		return domain.Cart{}, err
	}
	return cart, nil
}

func (s *CartService) Clear(ctx context.Context, cartID string) error {
	return s.store.Delete(ctx, cartID)
}
