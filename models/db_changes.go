package models

import (
	"time"
)

// Change journal tables.
const (
	ChangeTableOrders          = "orders"
	ChangeTableCompletedOrders = "completed_orders"
)

// Change journal actions.
const (
	ActionInsert = "INSERT"
	ActionUpdate = "UPDATE"
	ActionDelete = "DELETE"
)

// DBChange is one row of the change journal the live feed is driven by.
// Mutating endpoints append a row in the same transaction as the mutation;
// the change monitor polls unprocessed rows and broadcasts fresh snapshots.
type DBChange struct {
	ID         uint      `gorm:"primaryKey"`
	TableName  string    `gorm:"type:varchar(50);not null;index:idx_table_action"`
	RecordID   string    `gorm:"type:varchar(36);not null"`
	ActionType string    `gorm:"type:varchar(10);not null;index:idx_table_action"`
	ChangedAt  time.Time `gorm:"not null"`
	Processed  bool      `gorm:"default:false;index:idx_processed"`
}
