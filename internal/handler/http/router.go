// Package http wires the shop's HTTP surface: public catalog, cart,
// checkout, user order history, and the admin panel.
package http

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/health"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/middleware"
)

// RouterConfig carries everything the router needs.
type RouterConfig struct {
	Logger        *slog.Logger
	ServiceName   string
	Validator     middleware.TokenValidator
	Cart          *CartHandler
	Catalog       *CatalogHandler
	Order         *OrderHandler
	Admin         *AdminHandler
	HealthHandler *health.Handler
}

// NewRouter builds the chi router with the full middleware stack.
func NewRouter(cfg RouterConfig) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.Recovery(cfg.Logger))
	r.Use(middleware.RequestLogging(cfg.Logger))
	r.Use(middleware.PrometheusMetrics(cfg.ServiceName))

	r.Get("/health/live", cfg.HealthHandler.LivenessHandler())
	r.Get("/health/ready", cfg.HealthHandler.ReadinessHandler())
	r.Handle("/metrics", promhttp.Handler())

	// Public catalog and cart. Cart requests may be anonymous: identity
	// comes from a bearer token when present, the session header otherwise.
	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.Validator))
		r.Use(middleware.RequestLogger(cfg.Logger))

		r.Get("/products", cfg.Catalog.List)
		r.Get("/products/{productID}", cfg.Catalog.Get)
		r.Get("/products/{productID}/images", cfg.Catalog.ListImages)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", cfg.Cart.Get)
			r.Post("/add", cfg.Cart.Add)
			r.Post("/remove", cfg.Cart.Remove)
			r.Post("/update-quantity", cfg.Cart.UpdateQuantity)
			r.Post("/sync", cfg.Cart.Sync)
		})
	})

	// Checkout and order history fail closed without a valid token.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Validator))
		r.Use(middleware.RequestLogger(cfg.Logger))

		r.Get("/orders/checkout", cfg.Order.PreviewCheckout)
		r.Post("/orders/checkout", cfg.Order.Checkout)
		r.Get("/orders/confirmation/{orderID}", cfg.Order.Confirmation)

		r.Get("/user/orders", cfg.Order.ListMine)
		r.Get("/user/dashboard", cfg.Order.Dashboard)
	})

	// Admin panel.
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(cfg.Validator))
		r.Use(middleware.RequireRole("admin"))
		r.Use(middleware.RequestLogger(cfg.Logger))

		r.Route("/admin", func(r chi.Router) {
			r.Get("/orders", cfg.Admin.ListOrders)
			r.Get("/orders/{orderID}", cfg.Admin.GetOrder)
			r.Post("/orders/{orderID}/status", cfg.Admin.UpdateOrderStatus)

			r.Post("/products", cfg.Admin.CreateProduct)
			r.Put("/products/{productID}", cfg.Admin.UpdateProduct)
			r.Post("/products/delete/{productID}", cfg.Admin.DeleteProduct)
			r.Get("/products/{productID}/can-delete", cfg.Admin.CanDeleteProduct)
			r.Post("/products/{productID}/images", cfg.Admin.AddProductImage)
			r.Delete("/products/{productID}/images/{imageID}", cfg.Admin.RemoveProductImage)
		})
	})

	return r
}
