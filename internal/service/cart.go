package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/event"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository"
)

// Cart operation upper-bound limits to prevent abuse.
const (
	// MaxQuantityPerItem is the maximum quantity allowed for a single cart line.
	MaxQuantityPerItem = 100
	// MaxItemsPerCart is the maximum number of distinct lines allowed in a cart.
	MaxItemsPerCart = 50
)

// CartService implements the business logic for cart operations. For
// authenticated owners the PostgreSQL cart is the source of truth and
// the Redis session copy is rewritten after every mutation; anonymous
// owners have only the session copy.
type CartService struct {
	carts    repository.CartRepository
	sessions repository.SessionCartStore
	products repository.ProductRepository
	events   *event.Publisher
	logger   *slog.Logger
}

// NewCartService creates a new cart service.
func NewCartService(
	carts repository.CartRepository,
	sessions repository.SessionCartStore,
	products repository.ProductRepository,
	events *event.Publisher,
	logger *slog.Logger,
) *CartService {
	return &CartService{
		carts:    carts,
		sessions: sessions,
		products: products,
		events:   events,
		logger:   logger,
	}
}

// Get returns the owner's cart.
func (s *CartService) Get(ctx context.Context, owner domain.Owner) (*domain.Cart, error) {
	if !owner.Known() {
		return nil, apperrors.InvalidInput("cart owner could not be identified")
	}

	if owner.Authenticated() {
		cart, err := s.carts.Get(ctx, owner.UserID)
		if err != nil {
			return nil, fmt.Errorf("get cart: %w", err)
		}
		return cart, nil
	}

	cart, err := s.sessions.Get(ctx, owner.SessionID)
	if err != nil {
		return nil, fmt.Errorf("get session cart: %w", err)
	}
	return cart, nil
}

// AddItem adds a product to the owner's cart, merging quantity into an
// existing line. The product must exist in the catalog.
func (s *CartService) AddItem(ctx context.Context, owner domain.Owner, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity exceeds the per-item limit of %d", MaxQuantityPerItem))
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("resolve product: %w", err)
	}

	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	if cart.Quantity(productID) == 0 && len(cart.Lines) >= MaxItemsPerCart {
		return nil, apperrors.InvalidInput(fmt.Sprintf("cart cannot hold more than %d distinct items", MaxItemsPerCart))
	}

	if owner.Authenticated() {
		if err := s.carts.AddLine(ctx, owner.UserID, productID, quantity); err != nil {
			return nil, fmt.Errorf("add cart line: %w", err)
		}
		return s.finishMutation(ctx, owner)
	}

	cart.AddLine(productID, quantity)
	if err := s.sessions.Save(ctx, owner.SessionID, cart); err != nil {
		return nil, fmt.Errorf("save session cart: %w", err)
	}
	s.events.CartUpdated(ctx, owner, cart)
	return cart, nil
}

// SetQuantity replaces the quantity of a cart line. Values below one are
// coerced to one. A product the cart does not hold is left untouched;
// the call still succeeds.
func (s *CartService) SetQuantity(ctx context.Context, owner domain.Owner, productID string, quantity int) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	if quantity < 1 {
		quantity = 1
	}
	if quantity > MaxQuantityPerItem {
		return nil, apperrors.InvalidInput(fmt.Sprintf("quantity exceeds the per-item limit of %d", MaxQuantityPerItem))
	}

	if owner.Authenticated() {
		if err := s.carts.SetQuantity(ctx, owner.UserID, productID, quantity); err != nil {
			return nil, fmt.Errorf("set cart quantity: %w", err)
		}
		return s.finishMutation(ctx, owner)
	}

	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.SetQuantity(productID, quantity)
	if err := s.sessions.Save(ctx, owner.SessionID, cart); err != nil {
		return nil, fmt.Errorf("save session cart: %w", err)
	}
	s.events.CartUpdated(ctx, owner, cart)
	return cart, nil
}

// RemoveItem removes a product line from the cart. Removing an absent
// product succeeds without changing anything.
func (s *CartService) RemoveItem(ctx context.Context, owner domain.Owner, productID string) (*domain.Cart, error) {
	if productID == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}

	if owner.Authenticated() {
		if err := s.carts.RemoveLine(ctx, owner.UserID, productID); err != nil {
			return nil, fmt.Errorf("remove cart line: %w", err)
		}
		return s.finishMutation(ctx, owner)
	}

	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}
	cart.RemoveLine(productID)
	if err := s.sessions.Save(ctx, owner.SessionID, cart); err != nil {
		return nil, fmt.Errorf("save session cart: %w", err)
	}
	s.events.CartUpdated(ctx, owner, cart)
	return cart, nil
}

// RemoveLines removes exactly the given product lines from an
// authenticated owner's cart, leaving other lines in place. Used after
// checkout to clear the purchased selection.
func (s *CartService) RemoveLines(ctx context.Context, owner domain.Owner, productIDs []string) error {
	if !owner.Authenticated() {
		return apperrors.Unauthorized("authentication required")
	}
	if err := s.carts.RemoveLines(ctx, owner.UserID, productIDs); err != nil {
		return fmt.Errorf("remove cart lines: %w", err)
	}
	if _, err := s.finishMutation(ctx, owner); err != nil {
		return err
	}
	return nil
}

// Sync merges client-held cart lines into the authenticated owner's
// persisted cart, then rewrites the session copy. Called when a visitor
// logs in with a cart accumulated before authentication.
func (s *CartService) Sync(ctx context.Context, owner domain.Owner, lines []domain.CartLine) (*domain.Cart, error) {
	if !owner.Authenticated() {
		return nil, apperrors.Unauthorized("authentication required")
	}

	for _, line := range lines {
		if line.ProductID == "" {
			continue
		}
		if err := s.carts.AddLine(ctx, owner.UserID, line.ProductID, line.Quantity); err != nil {
			return nil, fmt.Errorf("merge cart line: %w", err)
		}
	}

	return s.finishMutation(ctx, owner)
}

// View resolves the owner's cart against the catalog for display. Lines
// whose product no longer exists are flagged unavailable rather than
// hidden. The view is never used for pricing; checkout re-resolves.
func (s *CartService) View(ctx context.Context, owner domain.Owner) (*domain.CartView, error) {
	cart, err := s.Get(ctx, owner)
	if err != nil {
		return nil, err
	}

	return s.resolve(ctx, cart.Lines)
}

func (s *CartService) resolve(ctx context.Context, lines []domain.CartLine) (*domain.CartView, error) {
	view := &domain.CartView{Items: []domain.CartItem{}}
	if len(lines) == 0 {
		return view, nil
	}

	ids := make([]string, len(lines))
	for i, line := range lines {
		ids[i] = line.ProductID
	}

	products, err := s.products.GetByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("resolve cart products: %w", err)
	}

	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}

	for _, line := range lines {
		qty := line.Quantity
		if qty < 1 {
			qty = 1
		}

		p, ok := byID[line.ProductID]
		if !ok {
			// The product left the catalog. Show the line as unavailable
			// instead of hiding it, so the shopper can remove it.
			s.logger.DebugContext(ctx, "cart line no longer resolves",
				slog.String("product_id", line.ProductID),
			)
			view.Items = append(view.Items, domain.CartItem{
				ProductID:   line.ProductID,
				Name:        "Unknown",
				Quantity:    qty,
				Unavailable: true,
			})
			continue
		}

		view.Items = append(view.Items, domain.CartItem{
			ProductID: p.ID,
			Name:      p.Name,
			UnitPrice: p.Price,
			Quantity:  qty,
			Subtotal:  p.Price * int64(qty),
			ImagePath: p.ImagePath,
		})
		view.Total += p.Price * int64(qty)
	}

	return view, nil
}

// finishMutation reloads the persisted cart, rewrites the session copy
// when the request carries a session, and emits the cart event.
func (s *CartService) finishMutation(ctx context.Context, owner domain.Owner) (*domain.Cart, error) {
	cart, err := s.carts.Get(ctx, owner.UserID)
	if err != nil {
		return nil, fmt.Errorf("reload cart: %w", err)
	}

	if owner.SessionID != "" {
		if err := s.sessions.Save(ctx, owner.SessionID, cart); err != nil {
			s.logger.WarnContext(ctx, "failed to refresh session cart copy",
				slog.String("session_id", owner.SessionID),
				slog.String("error", err.Error()),
			)
		}
	}

	s.events.CartUpdated(ctx, owner, cart)
	return cart, nil
}
