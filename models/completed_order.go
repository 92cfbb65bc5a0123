package models

import "time"

// CompletedOrder is the terminal form of an order. It carries every field of
// the active record plus the pickup number and completion timestamp, and is
// created under the same ID in the same transaction that deletes the active
// row.
type CompletedOrder struct {
	ID           string      `gorm:"primaryKey;type:varchar(36)" json:"id"`
	OrderID      string      `gorm:"type:varchar(64);not null" json:"order_id"`
	UserName     string      `gorm:"type:varchar(255)" json:"user_name"`
	Status       string      `gorm:"type:varchar(20);not null;default:'completed'" json:"order_status"`
	PickupNumber string      `gorm:"type:varchar(8);not null" json:"pickup_number"`
	CreatedAt    time.Time   `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time   `gorm:"not null" json:"updated_at"`
	CompletedAt  time.Time   `gorm:"not null;index" json:"completed_at"`
	Items        []OrderItem `gorm:"foreignKey:OrderRef;references:ID;constraint:-" json:"items"`
}
