package models

import (
	"strings"
	"time"
)

// Order is an active order, present in the orders table while its status is
// pending or preparing. Completion relocates it to completed_orders under
// the same ID.
type Order struct {
	ID        string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID   string      `gorm:"type:varchar(64);not null" json:"order_id"`
	UserName  string      `gorm:"type:varchar(255)" json:"user_name"`
	Status    string      `gorm:"type:varchar(20);not null;default:'pending'" json:"order_status"`
	CreatedAt time.Time   `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time   `gorm:"not null" json:"updated_at"`
	Items     []OrderItem `gorm:"foreignKey:OrderRef;references:ID;constraint:-" json:"items"`
}

// ShortCode returns the human order code shown on a card: the first 8
// characters of the client-facing order id, upper-cased.
func (o *Order) ShortCode() string {
	return ShortOrderCode(o.OrderID)
}

// CustomerName returns the display name, defaulting when absent.
func (o *Order) CustomerName() string {
	if o.UserName == "" {
		return "Customer"
	}
	return o.UserName
}

// ShortOrderCode derives the display code from a client-facing order id.
func ShortOrderCode(orderID string) string {
	if len(orderID) > 8 {
		orderID = orderID[:8]
	}
	return strings.ToUpper(orderID)
}
