package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/event"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository"
)

// CheckoutService turns a cart selection into an order. Prices and names
// are snapshotted from the catalog at checkout time; the client never
// supplies a price.
type CheckoutService struct {
	carts    repository.CartRepository
	sessions repository.SessionCartStore
	products repository.ProductRepository
	orders   repository.OrderRepository
	events   *event.Publisher
	logger   *slog.Logger
}

// NewCheckoutService creates a new checkout service.
func NewCheckoutService(
	carts repository.CartRepository,
	sessions repository.SessionCartStore,
	products repository.ProductRepository,
	orders repository.OrderRepository,
	events *event.Publisher,
	logger *slog.Logger,
) *CheckoutService {
	return &CheckoutService{
		carts:    carts,
		sessions: sessions,
		products: products,
		orders:   orders,
		events:   events,
		logger:   logger,
	}
}

// Preview resolves the selected cart lines against the catalog so the
// client can review the priced selection before placing the order.
func (s *CheckoutService) Preview(ctx context.Context, owner domain.Owner, selected []domain.SelectedLine) (*domain.CartView, error) {
	if !owner.Authenticated() {
		return nil, apperrors.Unauthorized("authentication required for checkout")
	}
	if len(selected) == 0 {
		return nil, apperrors.InvalidInput("no products selected for checkout")
	}

	items, err := s.snapshot(ctx, owner, selected)
	if err != nil {
		return nil, err
	}

	view := &domain.CartView{Items: []domain.CartItem{}}
	for _, item := range items {
		view.Items = append(view.Items, domain.CartItem{
			ProductID: item.ProductID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			Subtotal:  item.UnitPrice * int64(item.Quantity),
		})
		view.Total += item.UnitPrice * int64(item.Quantity)
	}

	return view, nil
}

// Checkout places an order for the selected cart lines. The pipeline is:
// validate the request, snapshot prices from the catalog, assemble and
// verify the order, persist it, then clear the purchased lines from the
// cart. Cart cleanup runs after the order is durable, so a cleanup
// failure leaves a stale cart rather than a lost order.
func (s *CheckoutService) Checkout(ctx context.Context, owner domain.Owner, req domain.CheckoutRequest) (*domain.Order, error) {
	if !owner.Authenticated() {
		return nil, apperrors.Unauthorized("authentication required for checkout")
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	items, err := s.snapshot(ctx, owner, req.Items)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, apperrors.InvalidInput("no valid items to order")
	}

	order, err := domain.NewOrder(uuid.New().String(), owner.UserID, owner.Email, items, req)
	if err != nil {
		return nil, err
	}
	if err := order.VerifyTotal(); err != nil {
		return nil, err
	}

	if err := s.orders.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("create order: %w", err)
	}

	s.logger.InfoContext(ctx, "order placed",
		slog.String("order_id", order.OrderID),
		slog.String("user_id", order.UserID),
		slog.Int64("total_amount", order.TotalAmount),
		slog.Int("items", len(order.Items)),
	)

	s.events.OrderCreated(ctx, order)

	s.clearPurchasedLines(ctx, owner, order)

	return order, nil
}

// snapshot resolves the selected lines into priced order items. Prices
// come from the catalog in one batched read; quantities come from the
// client, coerced to a minimum of one. Duplicate product IDs keep their
// first occurrence and products missing from the catalog are dropped
// rather than failing the whole checkout.
func (s *CheckoutService) snapshot(ctx context.Context, owner domain.Owner, selected []domain.SelectedLine) ([]domain.OrderItem, error) {
	seen := make(map[string]struct{}, len(selected))
	lines := make([]domain.SelectedLine, 0, len(selected))
	for _, line := range selected {
		if _, dup := seen[line.ProductID]; dup {
			continue
		}
		seen[line.ProductID] = struct{}{}
		lines = append(lines, line)
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	items := make([]domain.OrderItem, 0, len(lines))
	for _, line := range lines {
		p, ok := byID[line.ProductID]
		if !ok {
			s.logger.WarnContext(ctx, "dropping unresolvable checkout line",
				slog.String("product_id", line.ProductID),
				slog.String("user_id", owner.UserID),
			)
			continue
		}

		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		items = append(items, domain.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  qty,
		})
	}

	return items, nil
}

// clearPurchasedLines removes the ordered lines from the cart and
// refreshes the session copy. Failures are logged, never returned: the
// order is already durable.
func (s *CheckoutService) clearPurchasedLines(ctx context.Context, owner domain.Owner, order *domain.Order) {
	purchased := make([]string, len(order.Items))
	for i, item := range order.Items {
		purchased[i] = item.ProductID
	}

	if err := s.carts.RemoveLines(ctx, owner.UserID, purchased); err != nil {
		s.logger.WarnContext(ctx, "failed to clear purchased cart lines",
			slog.String("order_id", order.OrderID),
			slog.String("user_id", owner.UserID),
			slog.String("error", err.Error()),
		)
		return
	}

	if owner.SessionID != "" {
		cart, err := s.carts.Get(ctx, owner.UserID)
		if err != nil {
			s.logger.WarnContext(ctx, "failed to reload cart after checkout",
				slog.String("user_id", owner.UserID),
				slog.String("error", err.Error()),
			)
			return
		}
		if err := s.sessions.Save(ctx, owner.SessionID, cart); err != nil {
			s.logger.WarnContext(ctx, "failed to refresh session cart copy",
				slog.String("session_id", owner.SessionID),
				slog.String("error", err.Error()),
			)
		}
	}
}
