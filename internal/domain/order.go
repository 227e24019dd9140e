package domain

import (
	"time"

	"github.com/google/uuid"
)

// OrderStatus is the order lifecycle state. The set is flat: the admin
// dashboard may move an order from any status directly to any other.
type OrderStatus string

const (
	StatusSubmitted  OrderStatus = "Submitted"
	StatusProcessing OrderStatus = "Processing"
	StatusPaid       OrderStatus = "Paid"
	StatusShipped    OrderStatus = "Shipped"
)

// Valid reports whether s is one of the enumerated statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case StatusSubmitted, StatusProcessing, StatusPaid, StatusShipped:
		return true
	}
	return false
}

// OrderItem is one product line within an order. Subtotal is computed
// from the product's price at submission time and never re-derived.
type OrderItem struct {
	ProductID   uuid.UUID `json:"product_id"`
	Quantity    int       `json:"quantity"`
	PackageSize *float64  `json:"package_size,omitempty"`
	Subtotal    float64   `json:"subtotal"`
}

// Order references its customer and embeds its line items (denormalized,
// stored as a JSON document alongside the order row).
type Order struct {
	ID         uuid.UUID   `json:"id" db:"id"`
	CustomerID uuid.UUID   `json:"customer_id" db:"customer_id"`
	TotalPrice float64     `json:"total_price" db:"total_price"`
	Status     OrderStatus `json:"order_status" db:"order_status"`
	Items      []OrderItem `json:"products" db:"products"`
	CreatedAt  time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time   `json:"updated_at" db:"updated_at"`
}

// OrderWithCustomer is the admin order listing projection, joining the
// customer's contact fields onto each order.
type OrderWithCustomer struct {
	Order
	CustomerName    string `json:"customer_name"`
	CustomerEmail   string `json:"customer_email"`
	CustomerCompany string `json:"customer_company"`
}
