package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/logging"
	"github.com/misbahulhassan/Aeroflux-Electric/internal/usecase"
)

// RedisCartStore persists whole cart snapshots as JSON, one key per cart id.
// A malformed snapshot hydrates as an empty cart instead of an error, so
// stale or corrupted data never blocks the shopper.
type RedisCartStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCartStore(rdb *redis.Client, ttl time.Duration) *RedisCartStore {
	return &RedisCartStore{rdb: rdb, ttl: ttl}
}

// cartDoc is the persisted shape; prices are stored as decimal strings and
// re-parsed on hydration so a bad value is caught at the boundary.
type cartDoc struct {
	Lines []lineDoc `json:"lines"`
}

type lineDoc struct {
	ProductID string `json:"id"`
	Name      string `json:"name"`
	Price     string `json:"price"`
	Quantity  int    `json:"quantity"`
	ImageURL  string `json:"image_url,omitempty"`
	Category  string `json:"category,omitempty"`
}

func (s *RedisCartStore) Load(ctx context.Context, cartID string) (domain.Cart, error) {
	data, err := s.rdb.Get(ctx, cartKey(cartID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return domain.Cart{}, nil
	}
	if err != nil {
		return domain.Cart{}, fmt.Errorf("redis get failed: %w", err)
	}

	cart, err := decodeCart(data)
	if err != nil {
		logging.FromCtx(ctx).Warn("discarding malformed cart snapshot", "cart_id", cartID, "err", err)
		_ = s.rdb.Del(ctx, cartKey(cartID)).Err()
		return domain.Cart{}, nil
	}
	return cart, nil
}

func (s *RedisCartStore) Save(ctx context.Context, cartID string, cart domain.Cart) error {
	doc := cartDoc{Lines: make([]lineDoc, len(cart.Lines))}
	for i, l := range cart.Lines {
		doc.Lines[i] = lineDoc{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price.String(),
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
			Category:  l.Category,
		}
	}
	b, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.rdb.Set(ctx, cartKey(cartID), b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisCartStore) Delete(ctx context.Context, cartID string) error {
	if err := s.rdb.Del(ctx, cartKey(cartID)).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func decodeCart(data []byte) (domain.Cart, error) {
	var doc cartDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return domain.Cart{}, err
	}
	cart := domain.Cart{}
	for _, l := range doc.Lines {
		price, err := domain.ParsePrice(l.Price)
		if err != nil {
			return domain.Cart{}, err
		}
		if l.Quantity < 1 {
			return domain.Cart{}, fmt.Errorf("line %s: quantity %d out of range", l.ProductID, l.Quantity)
		}
		cart.Lines = append(cart.Lines, domain.CartLine{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     price,
			Quantity:  l.Quantity,
			ImageURL:  l.ImageURL,
			Category:  l.Category,
		})
	}
	return cart, nil
}

func cartKey(cartID string) string { return "cart:" + cartID }

var _ usecase.CartStore = (*RedisCartStore)(nil)
