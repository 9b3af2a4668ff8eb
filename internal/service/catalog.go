package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/event"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/repository"
)

// CatalogService implements product management. Deletion is guarded:
// products referenced by order item snapshots are never removed, so
// order history stays resolvable.
type CatalogService struct {
	products repository.ProductRepository
	orders   repository.OrderRepository
	events   *event.Publisher
	logger   *slog.Logger
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	events *event.Publisher,
	logger *slog.Logger,
) *CatalogService {
	return &CatalogService{
		products: products,
		orders:   orders,
		events:   events,
		logger:   logger,
	}
}

// Create adds a product to the catalog.
func (s *CatalogService) Create(ctx context.Context, req domain.CreateProductRequest) (*domain.Product, error) {
	product, err := domain.NewProduct(uuid.New().String(), req)
	if err != nil {
		return nil, err
	}

	if err := s.products.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	s.logger.InfoContext(ctx, "product created",
		slog.String("product_id", product.ID),
		slog.String("name", product.Name),
	)

	return product, nil
}

// Get returns one product.
func (s *CatalogService) Get(ctx context.Context, id string) (*domain.Product, error) {
	if id == "" {
		return nil, apperrors.InvalidInput("product id is required")
	}
	return s.products.GetByID(ctx, id)
}

// List returns the full catalog.
func (s *CatalogService) List(ctx context.Context) ([]domain.Product, error) {
	return s.products.List(ctx)
}

// Update applies partial changes to a product.
func (s *CatalogService) Update(ctx context.Context, id string, req domain.UpdateProductRequest) (*domain.Product, error) {
	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := product.Apply(req); err != nil {
		return nil, err
	}

	if err := s.products.Update(ctx, product); err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	return product, nil
}

// CanDelete reports whether the product may be deleted, i.e. no order
// item snapshot references it.
func (s *CatalogService) CanDelete(ctx context.Context, id string) (bool, error) {
	referenced, err := s.orders.ReferencesProduct(ctx, id)
	if err != nil {
		return false, fmt.Errorf("check product references: %w", err)
	}
	return !referenced, nil
}

// Delete removes a product from the catalog. Deletion is refused when
// existing orders reference the product.
func (s *CatalogService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return apperrors.InvalidInput("product id is required")
	}

	product, err := s.products.GetByID(ctx, id)
	if err != nil {
		return err
	}

	referenced, err := s.orders.ReferencesProduct(ctx, id)
	if err != nil {
		return fmt.Errorf("check product references: %w", err)
	}
	if referenced {
		return apperrors.ProductReferenced(id)
	}

	if err := s.products.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "product deleted",
		slog.String("product_id", id),
		slog.String("name", product.Name),
	)

	s.events.ProductDeleted(ctx, product)

	return nil
}

// AddImage attaches a gallery image to a product.
func (s *CatalogService) AddImage(ctx context.Context, productID, path string, position int) (*domain.ProductImage, error) {
	if path == "" {
		return nil, apperrors.InvalidInput("image path is required")
	}

	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}

	img := &domain.ProductImage{
		ID:        uuid.New().String(),
		ProductID: productID,
		Path:      path,
		Position:  position,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.products.AddImage(ctx, img); err != nil {
		return nil, fmt.Errorf("add product image: %w", err)
	}

	return img, nil
}

// RemoveImage detaches a gallery image from a product.
func (s *CatalogService) RemoveImage(ctx context.Context, productID, imageID string) error {
	if imageID == "" {
		return apperrors.InvalidInput("image id is required")
	}
	return s.products.RemoveImage(ctx, productID, imageID)
}

// ListImages returns the gallery images for a product.
func (s *CatalogService) ListImages(ctx context.Context, productID string) ([]domain.ProductImage, error) {
	if _, err := s.products.GetByID(ctx, productID); err != nil {
		return nil, err
	}
	return s.products.ListImages(ctx, productID)
}
