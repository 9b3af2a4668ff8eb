package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/database"
)

// CartRepository implements repository.CartRepository using PostgreSQL.
// Each cart line is one row keyed by (user_id, product_id).
type CartRepository struct {
	pool database.DBTX
}

// NewCartRepository creates a new PostgreSQL-backed cart repository.
func NewCartRepository(pool database.DBTX) *CartRepository {
	return &CartRepository{pool: pool}
}

// Get loads the persisted cart for a user. A user with no rows gets an
// empty cart, not an error.
func (r *CartRepository) Get(ctx context.Context, userID string) (*domain.Cart, error) {
	query := `
		SELECT product_id, quantity
		FROM cart_items
		WHERE user_id = $1
		ORDER BY created_at`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("query cart items: %w", err)
	}
	defer rows.Close()

	cart := &domain.Cart{UserID: userID, Lines: []domain.CartLine{}}
	for rows.Next() {
		var line domain.CartLine
		if err := rows.Scan(&line.ProductID, &line.Quantity); err != nil {
			return nil, fmt.Errorf("scan cart item row: %w", err)
		}
		cart.Lines = append(cart.Lines, line)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cart item rows: %w", err)
	}

	return cart, nil
}

// AddLine upserts a cart line, incrementing the quantity when the user
// already has the product in their cart.
func (r *CartRepository) AddLine(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	query := `
		INSERT INTO cart_items (user_id, product_id, quantity, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (user_id, product_id)
		DO UPDATE SET quantity = cart_items.quantity + EXCLUDED.quantity, updated_at = EXCLUDED.updated_at`

	_, err := r.pool.Exec(ctx, query, userID, productID, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("upsert cart item: %w", err)
	}

	return nil
}

// SetQuantity replaces the quantity of an existing cart line. When the
// user has no line for the product, no row changes and no error is
// returned.
func (r *CartRepository) SetQuantity(ctx context.Context, userID, productID string, quantity int) error {
	if quantity < 1 {
		quantity = 1
	}

	query := `
		UPDATE cart_items
		SET quantity = $3, updated_at = $4
		WHERE user_id = $1 AND product_id = $2`

	_, err := r.pool.Exec(ctx, query, userID, productID, quantity, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set cart item quantity: %w", err)
	}

	return nil
}

// RemoveLine deletes one cart line. Removing an absent line is a no-op.
func (r *CartRepository) RemoveLine(ctx context.Context, userID, productID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = $2`

	if _, err := r.pool.Exec(ctx, query, userID, productID); err != nil {
		return fmt.Errorf("delete cart item: %w", err)
	}

	return nil
}

// RemoveLines deletes exactly the given product lines, leaving any other
// lines in the cart untouched.
func (r *CartRepository) RemoveLines(ctx context.Context, userID string, productIDs []string) error {
	if len(productIDs) == 0 {
		return nil
	}

	query := `DELETE FROM cart_items WHERE user_id = $1 AND product_id = ANY($2)`

	if _, err := r.pool.Exec(ctx, query, userID, productIDs); err != nil {
		return fmt.Errorf("delete cart items: %w", err)
	}

	return nil
}

// Clear empties the user's cart.
func (r *CartRepository) Clear(ctx context.Context, userID string) error {
	query := `DELETE FROM cart_items WHERE user_id = $1`

	if _, err := r.pool.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}

	return nil
}
