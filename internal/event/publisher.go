// Package event publishes shop domain events to Kafka. Publishing is
// best effort: a broker outage must never fail the customer's request,
// so errors are logged and swallowed.
package event

import (
	"context"
	"log/slog"

	"github.com/Billick-J/ws2-ecommerce-project-g1/internal/domain"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/kafka"
	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/logger"
)

// Kafka topics.
const (
	TopicOrderCreated       = "shop.order.created"
	TopicOrderStatusChanged = "shop.order.status_changed"
	TopicCartUpdated        = "shop.cart.updated"
	TopicProductDeleted     = "shop.product.deleted"
)

const source = "shop"

// OrderCreatedPayload is the data carried on shop.order.created.
type OrderCreatedPayload struct {
	OrderID       string             `json:"order_id"`
	UserID        string             `json:"user_id"`
	TotalAmount   int64              `json:"total_amount"`
	PaymentMethod string             `json:"payment_method"`
	Items         []domain.OrderItem `json:"items"`
}

// OrderStatusChangedPayload is the data carried on shop.order.status_changed.
type OrderStatusChangedPayload struct {
	OrderID    string             `json:"order_id"`
	UserID     string             `json:"user_id"`
	FromStatus domain.OrderStatus `json:"from_status"`
	ToStatus   domain.OrderStatus `json:"to_status"`
}

// CartUpdatedPayload is the data carried on shop.cart.updated.
type CartUpdatedPayload struct {
	UserID    string `json:"user_id,omitempty"`
	SessionID string `json:"session_id,omitempty"`
	LineCount int    `json:"line_count"`
	TotalQty  int    `json:"total_qty"`
}

// ProductDeletedPayload is the data carried on shop.product.deleted.
type ProductDeletedPayload struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
}

// Publisher emits shop domain events.
type Publisher struct {
	producer *kafka.Producer
	logger   *slog.Logger
}

// NewPublisher creates an event publisher.
func NewPublisher(producer *kafka.Producer, l *slog.Logger) *Publisher {
	return &Publisher{producer: producer, logger: l}
}

// OrderCreated emits shop.order.created for a freshly placed order.
func (p *Publisher) OrderCreated(ctx context.Context, order *domain.Order) {
	p.publish(ctx, TopicOrderCreated, "order.created", order.OrderID, "order", OrderCreatedPayload{
		OrderID:       order.OrderID,
		UserID:        order.UserID,
		TotalAmount:   order.TotalAmount,
		PaymentMethod: order.PaymentMethod,
		Items:         order.Items,
	})
}

// OrderStatusChanged emits shop.order.status_changed after a transition.
func (p *Publisher) OrderStatusChanged(ctx context.Context, order *domain.Order, from domain.OrderStatus) {
	p.publish(ctx, TopicOrderStatusChanged, "order.status_changed", order.OrderID, "order", OrderStatusChangedPayload{
		OrderID:    order.OrderID,
		UserID:     order.UserID,
		FromStatus: from,
		ToStatus:   order.Status,
	})
}

// CartUpdated emits shop.cart.updated after any cart mutation.
func (p *Publisher) CartUpdated(ctx context.Context, owner domain.Owner, cart *domain.Cart) {
	aggregateID := owner.UserID
	if aggregateID == "" {
		aggregateID = owner.SessionID
	}
	p.publish(ctx, TopicCartUpdated, "cart.updated", aggregateID, "cart", CartUpdatedPayload{
		UserID:    owner.UserID,
		SessionID: owner.SessionID,
		LineCount: len(cart.Lines),
		TotalQty:  cart.TotalQuantity(),
	})
}

// ProductDeleted emits shop.product.deleted after a catalog deletion.
func (p *Publisher) ProductDeleted(ctx context.Context, product *domain.Product) {
	p.publish(ctx, TopicProductDeleted, "product.deleted", product.ID, "product", ProductDeletedPayload{
		ProductID: product.ID,
		Name:      product.Name,
	})
}

func (p *Publisher) publish(ctx context.Context, topic, eventType, aggregateID, aggregateType string, payload any) {
	if p.producer == nil {
		return
	}

	event, err := kafka.NewEvent(eventType, aggregateID, aggregateType, source, payload)
	if err != nil {
		p.logger.ErrorContext(ctx, "failed to build event",
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
		return
	}

	if cid := logger.CorrelationIDFromContext(ctx); cid != "" {
		event.WithCorrelationID(cid)
	}

	if err := p.producer.Publish(ctx, topic, event); err != nil {
		p.logger.WarnContext(ctx, "failed to publish event",
			slog.String("topic", topic),
			slog.String("event_type", eventType),
			slog.String("error", err.Error()),
		)
	}
}
