package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/Billick-J/ws2-ecommerce-project-g1/pkg/errors"
)

// OrderStatus tracks where an order is in its lifecycle.
type OrderStatus string

const (
	StatusToPay     OrderStatus = "to_pay"
	StatusToShip    OrderStatus = "to_ship"
	StatusToReceive OrderStatus = "to_receive"
	StatusCompleted OrderStatus = "completed"
	StatusRefund    OrderStatus = "refund"
	StatusCancelled OrderStatus = "cancelled"
)

// AllowedTransitions defines the order status state machine. Cancelled
// and refund are terminal.
var AllowedTransitions = map[OrderStatus][]OrderStatus{
	StatusToPay:     {StatusToShip, StatusCancelled},
	StatusToShip:    {StatusToReceive, StatusCancelled},
	StatusToReceive: {StatusCompleted, StatusRefund},
	StatusCompleted: {StatusRefund},
	StatusRefund:    {},
	StatusCancelled: {},
}

// ValidStatus reports whether s is a known order status.
func ValidStatus(s OrderStatus) bool {
	_, ok := AllowedTransitions[s]
	return ok
}

// CanTransitionTo reports whether the status may move to target.
func (s OrderStatus) CanTransitionTo(target OrderStatus) bool {
	for _, allowed := range AllowedTransitions[s] {
		if allowed == target {
			return true
		}
	}
	return false
}

// Payment methods accepted at checkout.
const (
	PaymentCashOnDelivery = "cod"
	PaymentCashOnPickup   = "cop"
)

// ValidPaymentMethod reports whether m is an accepted payment method.
func ValidPaymentMethod(m string) bool {
	return m == PaymentCashOnDelivery || m == PaymentCashOnPickup
}

// OrderItem is a priced snapshot of one cart line, frozen at checkout
// time. Later catalog price changes never alter it.
type OrderItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	UnitPrice int64  `json:"unit_price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// Order is a finalized purchase.
type Order struct {
	OrderID         string      `json:"order_id"`
	UserID          string      `json:"user_id"`
	UserEmail       string      `json:"user_email"`
	Items           []OrderItem `json:"items"`
	TotalAmount     int64       `json:"total_amount"`
	PaymentMethod   string      `json:"payment_method"`
	DeliveryAddress string      `json:"delivery_address"`
	PhoneNumber     string      `json:"phone_number"`
	Status          OrderStatus `json:"status"`
	CreatedAt       time.Time   `json:"created_at"`
	UpdatedAt       time.Time   `json:"updated_at"`
}

// SelectedLine is one cart row the shopper chose to buy. The quantity
// comes from the client; values below one are coerced to one during
// checkout. Prices never do, those are re-read from the catalog.
type SelectedLine struct {
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity"`
}

// CheckoutRequest is the payload for placing an order. Items selects
// which cart lines to buy, with client-chosen quantities.
type CheckoutRequest struct {
	Items           []SelectedLine `json:"items" validate:"required,min=1,dive"`
	PaymentMethod   string         `json:"payment_method" validate:"required,oneof=cod cop"`
	DeliveryAddress string         `json:"delivery_address" validate:"required,min=1,max=500"`
	PhoneNumber     string         `json:"phone_number" validate:"required,min=1,max=30"`
}

// Validate applies the checkout business rules beyond struct tags.
func (r CheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return errors.InvalidInput("no products selected for checkout")
	}
	for _, line := range r.Items {
		if strings.TrimSpace(line.ProductID) == "" {
			return errors.InvalidInput("selected item is missing a product id")
		}
	}
	if strings.TrimSpace(r.DeliveryAddress) == "" {
		return errors.InvalidInput("delivery address is required")
	}
	if strings.TrimSpace(r.PhoneNumber) == "" {
		return errors.InvalidInput("phone number is required")
	}
	if !ValidPaymentMethod(r.PaymentMethod) {
		return errors.InvalidInput(fmt.Sprintf("unsupported payment method %q", r.PaymentMethod))
	}
	return nil
}

// NewOrder assembles an order from snapshot items. The total is computed
// from the items themselves, never taken from the client.
func NewOrder(orderID, userID, userEmail string, items []OrderItem, req CheckoutRequest) (*Order, error) {
	if len(items) == 0 {
		return nil, errors.InvalidInput("no valid items to order")
	}

	var total int64
	for i := range items {
		if items[i].Quantity < 1 {
			items[i].Quantity = 1
		}
		items[i].Subtotal = items[i].UnitPrice * int64(items[i].Quantity)
		total += items[i].Subtotal
	}

	now := time.Now().UTC()
	return &Order{
		OrderID:         orderID,
		UserID:          userID,
		UserEmail:       userEmail,
		Items:           items,
		TotalAmount:     total,
		PaymentMethod:   req.PaymentMethod,
		DeliveryAddress: strings.TrimSpace(req.DeliveryAddress),
		PhoneNumber:     strings.TrimSpace(req.PhoneNumber),
		Status:          StatusToPay,
		CreatedAt:       now,
		UpdatedAt:       now,
	}, nil
}

// VerifyTotal recomputes the item subtotals and checks them against the
// stored total. A mismatch means the order was tampered with between
// assembly and persistence.
func (o *Order) VerifyTotal() error {
	var total int64
	for _, item := range o.Items {
		if item.Subtotal != item.UnitPrice*int64(item.Quantity) {
			return errors.InvalidInput("order item subtotal mismatch")
		}
		total += item.Subtotal
	}
	if total != o.TotalAmount {
		return errors.InvalidInput("order total does not match item subtotals")
	}
	return nil
}

// Transition moves the order to a new status, enforcing the state
// machine.
func (o *Order) Transition(target OrderStatus) error {
	if !ValidStatus(target) {
		return errors.InvalidInput(fmt.Sprintf("unknown order status %q", target))
	}
	if !o.Status.CanTransitionTo(target) {
		return errors.InvalidInput(fmt.Sprintf("cannot transition order from %s to %s", o.Status, target))
	}
	o.Status = target
	o.UpdatedAt = time.Now().UTC()
	return nil
}

// StatusCounts summarizes a user's orders per status for the dashboard.
type StatusCounts struct {
	ToPay     int `json:"to_pay"`
	ToShip    int `json:"to_ship"`
	ToReceive int `json:"to_receive"`
	Completed int `json:"completed"`
	Refund    int `json:"refund"`
	Cancelled int `json:"cancelled"`
}

// CountOrders tallies orders by status.
func CountOrders(orders []Order) StatusCounts {
	var c StatusCounts
	for _, o := range orders {
		switch o.Status {
		case StatusToPay:
			c.ToPay++
		case StatusToShip:
			c.ToShip++
		case StatusToReceive:
			c.ToReceive++
		case StatusCompleted:
			c.Completed++
		case StatusRefund:
			c.Refund++
		case StatusCancelled:
			c.Cancelled++
		}
	}
	return c
}
