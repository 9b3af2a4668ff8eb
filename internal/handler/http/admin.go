package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/service"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/httputil"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/pagination"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/validator"
)

// AdminHandler exposes catalog management and order administration.
// Every route behind it requires the admin role.
type AdminHandler struct {
	catalog *service.CatalogService
	orders  *service.OrderService
	logger  *slog.Logger
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(catalog *service.CatalogService, orders *service.OrderService, logger *slog.Logger) *AdminHandler {
	return &AdminHandler{catalog: catalog, orders: orders, logger: logger}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

type addImageRequest struct {
	Path     string `json:"path" validate:"required,max=500"`
	Position int    `json:"position" validate:"gte=0"`
}

// ListOrders returns a page of orders, optionally filtered by a status
// query parameter.
func (h *AdminHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := domain.OrderStatus(r.URL.Query().Get("status"))

	result, err := h.orders.List(r.Context(), status, pagination.FromRequest(r))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: result})
}

// GetOrder returns any order regardless of owner.
func (h *AdminHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	order, err := h.orders.Get(r.Context(), chi.URLParam(r, "orderID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// UpdateOrderStatus moves an order through its lifecycle.
func (h *AdminHandler) UpdateOrderStatus(w http.ResponseWriter, r *http.Request) {
	var req updateStatusRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.orders.UpdateStatus(r.Context(), chi.URLParam(r, "orderID"), domain.OrderStatus(req.Status))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// CreateProduct adds a product to the catalog.
func (h *AdminHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.CreateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.catalog.Create(r.Context(), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: product})
}

// UpdateProduct applies partial changes to a product.
func (h *AdminHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateProductRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	product, err := h.catalog.Update(r.Context(), chi.URLParam(r, "productID"), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: product})
}

// DeleteProduct removes a product unless order snapshots still reference
// it, in which case the request fails with 409 PRODUCT_REFERENCED.
func (h *AdminHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.Delete(r.Context(), chi.URLParam(r, "productID")); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "deleted"}})
}

// CanDeleteProduct reports whether a product may be deleted.
func (h *AdminHandler) CanDeleteProduct(w http.ResponseWriter, r *http.Request) {
	ok, err := h.catalog.CanDelete(r.Context(), chi.URLParam(r, "productID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]bool{"can_delete": ok}})
}

// AddProductImage attaches a gallery image to a product.
func (h *AdminHandler) AddProductImage(w http.ResponseWriter, r *http.Request) {
	var req addImageRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	img, err := h.catalog.AddImage(r.Context(), chi.URLParam(r, "productID"), req.Path, req.Position)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: img})
}

// RemoveProductImage detaches a gallery image from a product.
func (h *AdminHandler) RemoveProductImage(w http.ResponseWriter, r *http.Request) {
	err := h.catalog.RemoveImage(r.Context(), chi.URLParam(r, "productID"), chi.URLParam(r, "imageID"))
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: map[string]string{"status": "removed"}})
}
