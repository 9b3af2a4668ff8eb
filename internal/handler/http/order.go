package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/service"
	apperrors "github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/httputil"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/validator"
)

// OrderHandler exposes checkout and order retrieval over HTTP.
type OrderHandler struct {
	checkout *service.CheckoutService
	orders   *service.OrderService
	logger   *slog.Logger
}

// NewOrderHandler creates a new order handler.
func NewOrderHandler(checkout *service.CheckoutService, orders *service.OrderService, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{checkout: checkout, orders: orders, logger: logger}
}

// PreviewCheckout resolves the selected cart lines into a priced summary.
// The selection arrives as a json-encoded items query parameter, e.g.
// items=[{"product_id":"p1","quantity":2}].
func (h *OrderHandler) PreviewCheckout(w http.ResponseWriter, r *http.Request) {
	var selected []domain.SelectedLine
	if raw := r.URL.Query().Get("items"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &selected); err != nil {
			httputil.WriteError(w, r, apperrors.InvalidInput("items must be a json array of {product_id, quantity}"), h.logger)
			return
		}
	}

	view, err := h.checkout.Preview(r.Context(), ownerFromRequest(r), selected)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: view})
}

// Checkout places an order for the selected cart lines.
func (h *OrderHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req domain.CheckoutRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteValidationError(w, err)
		return
	}

	order, err := h.checkout.Checkout(r.Context(), ownerFromRequest(r), req)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	w.Header().Set("Location", fmt.Sprintf("/orders/confirmation/%s", order.OrderID))
	httputil.WriteJSON(w, http.StatusCreated, httputil.Response{Data: order})
}

// Confirmation returns the order placed by the requesting user.
func (h *OrderHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")
	owner := ownerFromRequest(r)

	order, err := h.orders.GetForUser(r.Context(), orderID, owner.UserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: order})
}

// ListMine returns the requesting user's orders, newest first.
func (h *OrderHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)

	orders, err := h.orders.ListByUser(r.Context(), owner.UserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: orders})
}

// Dashboard returns the user's orders with per-status counts.
func (h *OrderHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	owner := ownerFromRequest(r)

	dash, err := h.orders.GetDashboard(r.Context(), owner.UserID)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Response{Data: dash})
}
