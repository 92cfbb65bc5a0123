package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/feed"
	"github.com/brewline/coffee-shop/models"
)

// FetchActiveSnapshot runs the live query backing the dashboard: every order
// with status pending or preparing, newest first, items included.
func FetchActiveSnapshot(db *gorm.DB) (feed.ActiveSnapshot, error) {
	var orders []models.Order
	if err := db.Preload("Items").
		Where("status IN ?", models.ActiveStatuses).
		Order("created_at DESC").
		Find(&orders).Error; err != nil {
		return feed.ActiveSnapshot{}, err
	}

	snapshot := feed.ActiveSnapshot{Orders: orders}
	for _, o := range orders {
		switch o.Status {
		case models.StatusPending:
			snapshot.PendingCount++
		case models.StatusPreparing:
			snapshot.PreparingCount++
		}
	}
	return snapshot, nil
}

// CompletedTodayCount counts orders completed since the start of the current
// day. A range query on the indexed completed_at column, not a table scan.
func CompletedTodayCount(db *gorm.DB, now time.Time) (int64, error) {
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	var count int64
	err := db.Model(&models.CompletedOrder{}).
		Where("completed_at >= ?", dayStart).
		Count(&count).Error
	return count, err
}

// RecordChange appends a change-journal row. Call it on the same *gorm.DB
// handle as the mutation so a transactional mutation journals atomically.
func RecordChange(db *gorm.DB, table, recordID, action string) error {
	return db.Create(&models.DBChange{
		TableName:  table,
		RecordID:   recordID,
		ActionType: action,
		ChangedAt:  time.Now(),
	}).Error
}
