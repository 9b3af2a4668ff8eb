package http

import (
	"log/slog"
	"net/http"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/service"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/httputil"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/validator"
)

// CartHandler exposes the cart operations over HTTP.
type CartHandler struct {
	carts  *service.CartService
	logger *slog.Logger
}

// NewCartHandler creates a new cart handler.
func NewCartHandler(carts *service.CartService, logger *slog.Logger) *CartHandler {
	return &CartHandler{carts: carts, logger: logger}
}

type addItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

type removeItemRequest struct {
	ProductID string `json:"product_id" validate:"required"`
}

type updateQuantityRequest struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required"`
}

type syncCartRequest struct {
	Lines []domain.CartLine `json:"lines" validate:"required,dive"`
}

// Get returns the owner's cart resolved against the catalog.
func (h *CartHandler) Get(w http.ResponseWriter, r *http.Request) {
	view, err := h.carts.View(r.Context(), ownerFromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// Add puts a product into the cart, merging quantity into an existing line.
func (h *CartHandler) Add(w http.ResponseWriter, r *http.Request) {
	var req addItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.AddItem(r.Context(), ownerFromRequest(r), req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Remove drops a product line from the cart.
func (h *CartHandler) Remove(w http.ResponseWriter, r *http.Request) {
	var req removeItemRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.RemoveItem(r.Context(), ownerFromRequest(r), req.ProductID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// UpdateQuantity replaces the quantity of a cart line.
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	var req updateQuantityRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.SetQuantity(r.Context(), ownerFromRequest(r), req.ProductID, req.Quantity)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}

// Sync merges client-held cart lines into the authenticated user's cart.
func (h *CartHandler) Sync(w http.ResponseWriter, r *http.Request) {
	var req syncCartRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	cart, err := h.carts.Sync(r.Context(), ownerFromRequest(r), req.Lines)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: cart})
}
