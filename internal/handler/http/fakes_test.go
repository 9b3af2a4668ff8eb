package http

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository"
	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// In-memory repository fakes so handler tests can exercise the real
// services end to end.

type memProducts struct {
	mu     sync.Mutex
	m      map[string]domain.Product
	images []domain.ProductImage
}

func newMemProducts(products ...domain.Product) *memProducts {
	m := make(map[string]domain.Product, len(products))
	for _, p := range products {
		m[p.ID] = p
	}
	return &memProducts{m: m}
}

func (s *memProducts) Create(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[p.ID] = *p
	return nil
}

func (s *memProducts) GetByID(_ context.Context, id string) (*domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.m[id]
	if !ok {
		return nil, apperrors.NotFound("product", id)
	}
	return &p, nil
}

func (s *memProducts) GetByIDs(_ context.Context, ids []string) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(ids))
	for _, id := range ids {
		if p, ok := s.m[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *memProducts) List(_ context.Context) ([]domain.Product, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Product, 0, len(s.m))
	for _, p := range s.m {
		out = append(out, p)
	}
	return out, nil
}

func (s *memProducts) Update(_ context.Context, p *domain.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[p.ID]; !ok {
		return apperrors.NotFound("product", p.ID)
	}
	s.m[p.ID] = *p
	return nil
}

func (s *memProducts) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[id]; !ok {
		return apperrors.NotFound("product", id)
	}
	delete(s.m, id)
	return nil
}

func (s *memProducts) AddImage(_ context.Context, img *domain.ProductImage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.images = append(s.images, *img)
	return nil
}

func (s *memProducts) RemoveImage(_ context.Context, productID, imageID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, img := range s.images {
		if img.ID == imageID && img.ProductID == productID {
			s.images = append(s.images[:i], s.images[i+1:]...)
			return nil
		}
	}
	return apperrors.NotFound("product image", imageID)
}

func (s *memProducts) ListImages(_ context.Context, productID string) ([]domain.ProductImage, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.ProductImage, 0)
	for _, img := range s.images {
		if img.ProductID == productID {
			out = append(out, img)
		}
	}
	return out, nil
}

type memCarts struct {
	mu sync.Mutex
	m  map[string][]domain.CartLine
}

func newMemCarts() *memCarts {
	return &memCarts{m: make(map[string][]domain.CartLine)}
}

func (s *memCarts) Get(_ context.Context, userID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	lines := make([]domain.CartLine, len(s.m[userID]))
	copy(lines, s.m[userID])
	return &domain.Cart{UserID: userID, Lines: lines}, nil
}

func (s *memCarts) AddLine(_ context.Context, userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.Cart{Lines: s.m[userID]}
	cart.AddLine(productID, quantity)
	s.m[userID] = cart.Lines
	return nil
}

func (s *memCarts) SetQuantity(_ context.Context, userID, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.Cart{Lines: s.m[userID]}
	cart.SetQuantity(productID, quantity)
	s.m[userID] = cart.Lines
	return nil
}

func (s *memCarts) RemoveLine(_ context.Context, userID, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.Cart{Lines: s.m[userID]}
	cart.RemoveLine(productID)
	s.m[userID] = cart.Lines
	return nil
}

func (s *memCarts) RemoveLines(_ context.Context, userID string, productIDs []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cart := domain.Cart{Lines: s.m[userID]}
	cart.RemoveLines(productIDs)
	s.m[userID] = cart.Lines
	return nil
}

func (s *memCarts) Clear(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, userID)
	return nil
}

type memSessions struct {
	mu sync.Mutex
	m  map[string]*domain.Cart
}

func newMemSessions() *memSessions {
	return &memSessions{m: make(map[string]*domain.Cart)}
}

func (s *memSessions) Get(_ context.Context, sessionID string) (*domain.Cart, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if cart, ok := s.m[sessionID]; ok {
		cp := *cart
		return &cp, nil
	}
	return &domain.Cart{SessionID: sessionID, Lines: []domain.CartLine{}}, nil
}

func (s *memSessions) Save(_ context.Context, sessionID string, cart *domain.Cart) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *cart
	s.m[sessionID] = &cp
	return nil
}

func (s *memSessions) Delete(_ context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, sessionID)
	return nil
}

type memOrders struct {
	mu sync.Mutex
	m  map[string]*domain.Order
}

func newMemOrders() *memOrders {
	return &memOrders{m: make(map[string]*domain.Order)}
}

func (s *memOrders) Create(_ context.Context, order *domain.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.m[order.OrderID]; ok {
		return fmt.Errorf("duplicate order %s", order.OrderID)
	}
	cp := *order
	s.m[order.OrderID] = &cp
	return nil
}

func (s *memOrders) GetByOrderID(_ context.Context, orderID string) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.m[orderID]
	if !ok {
		return nil, apperrors.NotFound("order", orderID)
	}
	cp := *order
	return &cp, nil
}

func (s *memOrders) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.Order, 0)
	for _, o := range s.m {
		if o.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

func (s *memOrders) List(_ context.Context, filter repository.OrderListFilter) ([]domain.Order, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	matched := make([]domain.Order, 0, len(s.m))
	for _, o := range s.m {
		if filter.Status != "" && o.Status != filter.Status {
			continue
		}
		matched = append(matched, *o)
	}
	total := len(matched)
	if filter.Limit > 0 {
		if filter.Offset >= len(matched) {
			matched = matched[:0]
		} else {
			end := filter.Offset + filter.Limit
			if end > len(matched) {
				end = len(matched)
			}
			matched = matched[filter.Offset:end]
		}
	}
	return matched, total, nil
}

func (s *memOrders) UpdateStatus(_ context.Context, orderID string, status domain.OrderStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.m[orderID]
	if !ok {
		return apperrors.NotFound("order", orderID)
	}
	order.Status = status
	return nil
}

func (s *memOrders) ReferencesProduct(_ context.Context, productID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range s.m {
		for _, item := range o.Items {
			if item.ProductID == productID {
				return true, nil
			}
		}
	}
	return false, nil
}
