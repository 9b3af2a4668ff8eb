package domain

import (
	"strings"
	"time"

	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
)

// Product is a catalog entry. Price is stored in cents to avoid
// floating point rounding in totals.
type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	ImagePath   string    `json:"image_path,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ProductImage is an additional gallery image attached to a product.
type ProductImage struct {
	ID        string    `json:"id"`
	ProductID string    `json:"product_id"`
	Path      string    `json:"path"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// CreateProductRequest is the payload for creating a product.
type CreateProductRequest struct {
	Name        string `json:"name" validate:"required,min=1,max=200"`
	Description string `json:"description" validate:"max=5000"`
	Price       int64  `json:"price" validate:"gte=0"`
	ImagePath   string `json:"image_path" validate:"max=500"`
}

// UpdateProductRequest is the payload for updating a product. Nil fields
// are left unchanged.
type UpdateProductRequest struct {
	Name        *string `json:"name" validate:"omitempty,min=1,max=200"`
	Description *string `json:"description" validate:"omitempty,max=5000"`
	Price       *int64  `json:"price" validate:"omitempty,gte=0"`
	ImagePath   *string `json:"image_path" validate:"omitempty,max=500"`
}

// NewProduct builds a Product from a create request.
func NewProduct(id string, req CreateProductRequest) (*Product, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.InvalidInput("product name is required")
	}
	if req.Price < 0 {
		return nil, errors.InvalidInput("product price cannot be negative")
	}

	now := time.Now().UTC()
	return &Product{
		ID:          id,
		Name:        name,
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		ImagePath:   req.ImagePath,
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Apply merges an update request into the product.
func (p *Product) Apply(req UpdateProductRequest) error {
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return errors.InvalidInput("product name cannot be empty")
		}
		p.Name = name
	}
	if req.Description != nil {
		p.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		if *req.Price < 0 {
			return errors.InvalidInput("product price cannot be negative")
		}
		p.Price = *req.Price
	}
	if req.ImagePath != nil {
		p.ImagePath = *req.ImagePath
	}
	p.UpdatedAt = time.Now().UTC()
	return nil
}
