package usecase

import (
	"context"
	"time"

	domain "github.com/misbahulhassan/Aeroflux-Electric/internal/entity"
)

// Persistence shapes (kept out of domain).

type OrderRecord struct {
	ID              string
	UserID          string
	CustomerName    string
	CustomerEmail   string
	CustomerPhone   string
	CustomerAddress string
	Status          string
	TotalAmount     string
	ItemsJSON       string
	CreatedAt       time.Time
}

type UserRecord struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	CreatedAt    time.Time
}

type ContactMessage struct {
	ID        int64
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

type ProductRepo interface {
	List(ctx context.Context) ([]domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	Create(ctx context.Context, p *domain.Product) error
	Update(ctx context.Context, p *domain.Product) error
	Delete(ctx context.Context, id string) error
}

type OrderRepo interface {
	Create(ctx context.Context, o *OrderRecord) error
	GetByID(ctx context.Context, id string) (*OrderRecord, error)
	ListByUser(ctx context.Context, userID string) ([]OrderRecord, error)
	ListAll(ctx context.Context) ([]OrderRecord, error)
	UpdateStatus(ctx context.Context, id, toStatus string) error
}

type UserRepo interface {
	Create(ctx context.Context, u *UserRecord) error
	GetByEmail(ctx context.Context, email string) (*UserRecord, error)
}

type AdminRepo interface {
	IsAdmin(ctx context.Context, userID string) (bool, error)
}

type ContactRepo interface {
	Insert(ctx context.Context, m *ContactMessage) error
	List(ctx context.Context) ([]ContactMessage, error)
}

// CartStore persists whole cart snapshots keyed by cart id. Load returns an
// empty cart when the key is absent or the stored snapshot is malformed.
type CartStore interface {
	Load(ctx context.Context, cartID string) (domain.Cart, error)
	Save(ctx context.Context, cartID string, cart domain.Cart) error
	Delete(ctx context.Context, cartID string) error
}

type IdempotencyStore interface {
	TryLock(ctx context.Context, scope, key string) (bool, error)
	Unlock(ctx context.Context, scope, key string) error
	Remember(ctx context.Context, scope, key, value string) error
	Recall(ctx context.Context, scope, key string) (string, bool, error)
}

// StatusCache keeps the hot order-status lookup off the database.
type StatusCache interface {
	SetStatus(ctx context.Context, orderID, status string) error
	GetStatus(ctx context.Context, orderID string) (string, bool, error)
}

// OrderEvents publishes order lifecycle events to the message broker.
type OrderEvents interface {
	PublishPlaced(ctx context.Context, msg OrderPlacedMsg) error
}
