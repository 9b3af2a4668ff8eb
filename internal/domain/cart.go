package domain

import "time"

// CartLine is a single product reference in a cart. The cart stores only
// the product ID and quantity; names and prices are resolved against the
// catalog at display and checkout time.
type CartLine struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

// Cart holds the lines for one owner. Exactly one of UserID or SessionID
// identifies the owner.
type Cart struct {
	UserID    string     `json:"user_id,omitempty"`
	SessionID string     `json:"session_id,omitempty"`
	Lines     []CartLine `json:"lines"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// AddLine merges quantity into an existing line for the product, or
// appends a new line. Quantities below one are coerced to one.
func (c *Cart) AddLine(productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity += quantity
			return
		}
	}
	c.Lines = append(c.Lines, CartLine{ProductID: productID, Quantity: quantity})
}

// SetQuantity replaces the quantity for a product line. Values below one
// are coerced to one. A product not in the cart is left alone; only
// AddLine introduces new lines.
func (c *Cart) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines[i].Quantity = quantity
			return
		}
	}
}

// RemoveLine drops the line for a product. Removing an absent product is
// a no-op.
func (c *Cart) RemoveLine(productID string) {
	for i := range c.Lines {
		if c.Lines[i].ProductID == productID {
			c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
			return
		}
	}
}

// RemoveLines drops every line whose product ID is in the given set,
// keeping all other lines untouched.
func (c *Cart) RemoveLines(productIDs []string) {
	if len(productIDs) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(productIDs))
	for _, id := range productIDs {
		drop[id] = struct{}{}
	}
	kept := c.Lines[:0]
	for _, line := range c.Lines {
		if _, ok := drop[line.ProductID]; !ok {
			kept = append(kept, line)
		}
	}
	c.Lines = kept
}

// Quantity returns the quantity for a product, or zero if absent.
func (c *Cart) Quantity(productID string) int {
	for _, line := range c.Lines {
		if line.ProductID == productID {
			return line.Quantity
		}
	}
	return 0
}

// TotalQuantity sums quantities across all lines.
func (c *Cart) TotalQuantity() int {
	var n int
	for _, line := range c.Lines {
		n += line.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	return len(c.Lines) == 0
}

// CartItem is a cart line enriched with current catalog data for display.
// Unavailable marks a line whose product is gone from the catalog; it
// renders with a placeholder name and zero price but keeps its spot so
// the shopper can see and remove it.
type CartItem struct {
	ProductID   string `json:"product_id"`
	Name        string `json:"name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
	ImagePath   string `json:"image_path,omitempty"`
	Unavailable bool   `json:"unavailable,omitempty"`
}

// CartView is the display form of a cart with catalog data resolved and
// a grand total computed.
type CartView struct {
	Items []CartItem `json:"items"`
	Total int64      `json:"total"`
}
