package models

// OrderItem is one line of an order. Items are keyed by the order id, which
// stays stable when the order is relocated to completed_orders, so the rows
// never move. Both parent relations carry constraint:- — a row cannot
// reference two tables, so OrderRef must stay a plain indexed column.
type OrderItem struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	OrderRef   string `gorm:"type:varchar(36);not null;index" json:"-"`
	Quantity   int    `gorm:"not null" json:"quantity"`
	CoffeeName string `gorm:"type:varchar(255);not null" json:"coffee_name"`
	Variant    string `gorm:"type:varchar(100)" json:"variant"`
	Size       string `gorm:"type:varchar(50)" json:"size"`
}
