// Package repository defines the persistence interfaces for the shop.
// Implementations live in the postgres and redis subpackages.
package repository

import (
	"context"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
)

// ProductRepository persists the catalog.
type ProductRepository interface {
	Create(ctx context.Context, product *domain.Product) error
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	// GetByIDs resolves a batch of product IDs in one round trip.
	// Unknown IDs are simply absent from the result.
	GetByIDs(ctx context.Context, ids []string) ([]domain.Product, error)
	List(ctx context.Context) ([]domain.Product, error)
	Update(ctx context.Context, product *domain.Product) error
	Delete(ctx context.Context, id string) error
	AddImage(ctx context.Context, image *domain.ProductImage) error
	RemoveImage(ctx context.Context, productID, imageID string) error
	ListImages(ctx context.Context, productID string) ([]domain.ProductImage, error)
}

// CartRepository persists the carts of authenticated users. Anonymous
// carts live only in the SessionCartStore.
type CartRepository interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	// AddLine upserts a cart line, incrementing the quantity when the
	// product is already present.
	AddLine(ctx context.Context, userID, productID string, quantity int) error
	SetQuantity(ctx context.Context, userID, productID string, quantity int) error
	RemoveLine(ctx context.Context, userID, productID string) error
	// RemoveLines removes exactly the given product lines, leaving any
	// other lines in place.
	RemoveLines(ctx context.Context, userID string, productIDs []string) error
	Clear(ctx context.Context, userID string) error
}

// SessionCartStore holds session-scoped cart copies in Redis. For
// authenticated users it mirrors the persisted cart; for anonymous
// sessions it is the only cart storage.
type SessionCartStore interface {
	Get(ctx context.Context, sessionID string) (*domain.Cart, error)
	Save(ctx context.Context, sessionID string, cart *domain.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// OrderListFilter narrows and pages the admin order listing. A zero
// Status matches all orders; a zero Limit disables paging.
type OrderListFilter struct {
	Status domain.OrderStatus
	Limit  int
	Offset int
}

// OrderRepository persists orders and their item snapshots.
type OrderRepository interface {
	Create(ctx context.Context, order *domain.Order) error
	GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	// List returns matching orders plus the total match count for paging.
	List(ctx context.Context, filter OrderListFilter) ([]domain.Order, int, error)
	UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error
	// ReferencesProduct reports whether any order item snapshot refers
	// to the product. Referenced products must not be deleted.
	ReferencesProduct(ctx context.Context, productID string) (bool, error)
}
