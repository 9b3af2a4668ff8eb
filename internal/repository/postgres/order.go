package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/database"
	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
)

// OrderRepository implements repository.OrderRepository using PostgreSQL.
type OrderRepository struct {
	pool database.DBTX
}

// NewOrderRepository creates a new PostgreSQL-backed order repository.
func NewOrderRepository(pool database.DBTX) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create inserts an order and its item snapshots atomically.
func (r *OrderRepository) Create(ctx context.Context, o *domain.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	orderQuery := `
		INSERT INTO orders (order_id, user_id, user_email, total_amount, payment_method, delivery_address, phone_number, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err = tx.Exec(ctx, orderQuery,
		o.OrderID,
		o.UserID,
		o.UserEmail,
		o.TotalAmount,
		o.PaymentMethod,
		o.DeliveryAddress,
		o.PhoneNumber,
		o.Status,
		o.CreatedAt,
		o.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert order: %w", err)
	}

	itemQuery := `
		INSERT INTO order_items (order_id, product_id, name, unit_price, quantity, subtotal)
		VALUES ($1, $2, $3, $4, $5, $6)`

	for _, item := range o.Items {
		_, err = tx.Exec(ctx, itemQuery,
			o.OrderID,
			item.ProductID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert order item: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	return nil
}

// GetByOrderID retrieves an order by its public ID, eagerly loading its
// item snapshots in a single query via JSONB_AGG.
func (r *OrderRepository) GetByOrderID(ctx context.Context, orderID string) (*domain.Order, error) {
	query := `
		SELECT
			o.order_id, o.user_id, o.user_email, o.total_amount, o.payment_method,
			o.delivery_address, o.phone_number, o.status, o.created_at, o.updated_at,
			COALESCE(
				JSONB_AGG(
					JSONB_BUILD_OBJECT(
						'product_id', oi.product_id,
						'name', oi.name,
						'unit_price', oi.unit_price,
						'quantity', oi.quantity,
						'subtotal', oi.subtotal
					) ORDER BY oi.id
				) FILTER (WHERE oi.id IS NOT NULL),
				'[]'::jsonb
			) AS items
		FROM orders o
		LEFT JOIN order_items oi ON o.order_id = oi.order_id
		WHERE o.order_id = $1
		GROUP BY o.order_id, o.user_id, o.user_email, o.total_amount, o.payment_method,
			o.delivery_address, o.phone_number, o.status, o.created_at, o.updated_at`

	var (
		o         domain.Order
		itemsJSON []byte
	)

	err := r.pool.QueryRow(ctx, query, orderID).Scan(
		&o.OrderID,
		&o.UserID,
		&o.UserEmail,
		&o.TotalAmount,
		&o.PaymentMethod,
		&o.DeliveryAddress,
		&o.PhoneNumber,
		&o.Status,
		&o.CreatedAt,
		&o.UpdatedAt,
		&itemsJSON,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NotFound("order", orderID)
		}
		return nil, fmt.Errorf("scan order: %w", err)
	}

	o.Items = []domain.OrderItem{}
	if len(itemsJSON) > 0 && string(itemsJSON) != "null" {
		if err := json.Unmarshal(itemsJSON, &o.Items); err != nil {
			return nil, fmt.Errorf("unmarshal order items: %w", err)
		}
	}

	return &o, nil
}

// ListByUser returns a user's orders, newest first, with items loaded.
func (r *OrderRepository) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	query := `
		SELECT order_id, user_id, user_email, total_amount, payment_method, delivery_address, phone_number, status, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC`

	return r.listOrders(ctx, query, userID)
}

// List returns orders matching the filter, newest first, with items
// loaded, plus the total match count for paging.
func (r *OrderRepository) List(ctx context.Context, filter repository.OrderListFilter) ([]domain.Order, int, error) {
	where := ""
	countArgs := []any{}
	if filter.Status != "" {
		where = " WHERE status = $1"
		countArgs = append(countArgs, filter.Status)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM orders` + where
	if err := r.pool.QueryRow(ctx, countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count orders: %w", err)
	}

	query := `
		SELECT order_id, user_id, user_email, total_amount, payment_method, delivery_address, phone_number, status, created_at, updated_at
		FROM orders` + where + `
		ORDER BY created_at DESC`
	args := append([]any{}, countArgs...)
	if filter.Limit > 0 {
		query += fmt.Sprintf(" LIMIT $%d OFFSET $%d", len(args)+1, len(args)+2)
		args = append(args, filter.Limit, filter.Offset)
	}

	orders, err := r.listOrders(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	return orders, total, nil
}

func (r *OrderRepository) listOrders(ctx context.Context, query string, args ...any) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	orders := make([]domain.Order, 0)
	for rows.Next() {
		var o domain.Order
		if err := rows.Scan(
			&o.OrderID,
			&o.UserID,
			&o.UserEmail,
			&o.TotalAmount,
			&o.PaymentMethod,
			&o.DeliveryAddress,
			&o.PhoneNumber,
			&o.Status,
			&o.CreatedAt,
			&o.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan order row: %w", err)
		}
		orders = append(orders, o)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate order rows: %w", err)
	}

	// Batch-load items for all orders in a single query to avoid N+1.
	if len(orders) > 0 {
		orderIDs := make([]string, len(orders))
		for i := range orders {
			orderIDs[i] = orders[i].OrderID
		}

		itemsQuery := `
			SELECT order_id, product_id, name, unit_price, quantity, subtotal
			FROM order_items
			WHERE order_id = ANY($1)
			ORDER BY id`

		itemRows, err := r.pool.Query(ctx, itemsQuery, orderIDs)
		if err != nil {
			return nil, fmt.Errorf("batch load order items: %w", err)
		}
		defer itemRows.Close()

		itemsByOrderID := make(map[string][]domain.OrderItem, len(orders))
		for itemRows.Next() {
			var (
				orderID string
				item    domain.OrderItem
			)
			if err := itemRows.Scan(
				&orderID,
				&item.ProductID,
				&item.Name,
				&item.UnitPrice,
				&item.Quantity,
				&item.Subtotal,
			); err != nil {
				return nil, fmt.Errorf("scan order item row: %w", err)
			}
			itemsByOrderID[orderID] = append(itemsByOrderID[orderID], item)
		}
		if err := itemRows.Err(); err != nil {
			return nil, fmt.Errorf("iterate order item rows: %w", err)
		}

		for i := range orders {
			if items, ok := itemsByOrderID[orders[i].OrderID]; ok {
				orders[i].Items = items
			} else {
				orders[i].Items = []domain.OrderItem{}
			}
		}
	}

	return orders, nil
}

// UpdateStatus changes the status of an order.
func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID string, status domain.OrderStatus) error {
	query := `
		UPDATE orders
		SET status = $1, updated_at = $2
		WHERE order_id = $3`

	ct, err := r.pool.Exec(ctx, query, status, time.Now().UTC(), orderID)
	if err != nil {
		return fmt.Errorf("update order status: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("order", orderID)
	}

	return nil
}

// ReferencesProduct reports whether any order item snapshot refers to the
// product.
func (r *OrderRepository) ReferencesProduct(ctx context.Context, productID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM order_items WHERE product_id = $1)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("check product references: %w", err)
	}

	return exists, nil
}
