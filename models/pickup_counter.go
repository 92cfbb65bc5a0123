package models

import (
	"fmt"
	"time"
)

// PickupCounterID is the primary key of the single counter row.
const PickupCounterID uint = 1

// PickupCounter is the singleton sequence behind pickup numbers. It is a
// perpetual monotonic counter, incremented by exactly one per completed
// order inside the completion transaction. There is no calendar reset.
type PickupCounter struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Counter     int64     `gorm:"not null;default:0" json:"counter"`
	LastUpdated time.Time `gorm:"not null" json:"last_updated"`
}

// PickupNumber formats the current counter value as the 4-digit zero-padded
// code handed to the customer. Values >= 10000 overflow the fixed width.
func (pc *PickupCounter) PickupNumber() string {
	return FormatPickupNumber(pc.Counter)
}

// FormatPickupNumber formats a counter value as a pickup code, e.g. 1 -> "0001".
func FormatPickupNumber(n int64) string {
	return fmt.Sprintf("%04d", n)
}
