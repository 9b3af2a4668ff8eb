package service

import (
	"context"
	"fmt"
	"log/slog"

	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/pagination"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/event"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository"
)

// OrderService implements order retrieval and the status lifecycle.
type OrderService struct {
	orders repository.OrderRepository
	events *event.Publisher
	logger *slog.Logger
}

// NewOrderService creates a new order service.
func NewOrderService(orders repository.OrderRepository, events *event.Publisher, logger *slog.Logger) *OrderService {
	return &OrderService{orders: orders, events: events, logger: logger}
}

// GetForUser returns the order only when it belongs to the given user.
// Orders owned by someone else look exactly like missing orders.
func (s *OrderService) GetForUser(ctx context.Context, orderID, userID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order.UserID != userID {
		return nil, apperrors.NotFound("order", orderID)
	}

	return order, nil
}

// Get returns any order regardless of owner. Admin use only.
func (s *OrderService) Get(ctx context.Context, orderID string) (*domain.Order, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}
	return s.orders.GetByOrderID(ctx, orderID)
}

// ListByUser returns the user's orders, newest first.
func (s *OrderService) ListByUser(ctx context.Context, userID string) ([]domain.Order, error) {
	if userID == "" {
		return nil, apperrors.InvalidInput("user id is required")
	}

	orders, err := s.orders.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list user orders: %w", err)
	}
	return orders, nil
}

// Dashboard is the user's order history with per-status tallies.
type Dashboard struct {
	Orders []domain.Order      `json:"orders"`
	Counts domain.StatusCounts `json:"counts"`
}

// GetDashboard returns the user's orders together with status counts.
func (s *OrderService) GetDashboard(ctx context.Context, userID string) (*Dashboard, error) {
	orders, err := s.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Dashboard{
		Orders: orders,
		Counts: domain.CountOrders(orders),
	}, nil
}

// List returns a page of orders, optionally narrowed to one status.
// Admin use only.
func (s *OrderService) List(ctx context.Context, status domain.OrderStatus, params pagination.Params) (*pagination.Result[domain.Order], error) {
	if status != "" && !domain.ValidStatus(status) {
		return nil, apperrors.InvalidInput(fmt.Sprintf("unknown order status %q", status))
	}

	orders, total, err := s.orders.List(ctx, repository.OrderListFilter{
		Status: status,
		Limit:  params.PerPage,
		Offset: params.Offset,
	})
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}

	result := pagination.NewResult(orders, total, params)
	return &result, nil
}

// UpdateStatus moves an order through its lifecycle, enforcing the
// transition rules. Admin use only.
func (s *OrderService) UpdateStatus(ctx context.Context, orderID string, target domain.OrderStatus) (*domain.Order, error) {
	if orderID == "" {
		return nil, apperrors.InvalidInput("order id is required")
	}

	order, err := s.orders.GetByOrderID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	from := order.Status
	if err := order.Transition(target); err != nil {
		return nil, err
	}

	if err := s.orders.UpdateStatus(ctx, orderID, target); err != nil {
		return nil, fmt.Errorf("persist order status: %w", err)
	}

	s.logger.InfoContext(ctx, "order status changed",
		slog.String("order_id", orderID),
		slog.String("from", string(from)),
		slog.String("to", string(target)),
	)

	s.events.OrderStatusChanged(ctx, order, from)

	return order, nil
}
