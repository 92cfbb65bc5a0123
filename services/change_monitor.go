package services

import (
	"time"

	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/feed"
	"github.com/brewline/coffee-shop/models"
	"github.com/brewline/coffee-shop/utils"
)

// ChangeMonitor polls the change journal and turns mutations into feed
// broadcasts. Any change to the orders table rebuilds the full active
// snapshot; any change to completed_orders refreshes the completed-today
// count. Broadcast errors are logged and never stop the loop.
type ChangeMonitor struct {
	DB       *gorm.DB
	StopChan chan struct{}
	Interval time.Duration
}

func NewChangeMonitor(db *gorm.DB) *ChangeMonitor {
	return &ChangeMonitor{
		DB:       db,
		StopChan: make(chan struct{}),
		Interval: 1 * time.Second,
	}
}

func (cm *ChangeMonitor) Start() {
	go func() {
		ticker := time.NewTicker(cm.Interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				cm.checkChanges()
			case <-cm.StopChan:
				return
			}
		}
	}()
}

func (cm *ChangeMonitor) Stop() {
	close(cm.StopChan)
}

func (cm *ChangeMonitor) checkChanges() {
	var changes []models.DBChange

	tx := cm.DB.Begin()

	if err := tx.Where("processed = ?", false).
		Order("changed_at ASC").
		Limit(100).
		Find(&changes).Error; err != nil {
		tx.Rollback()
		utils.ErrorLogger.Printf("Error fetching changes: %v", err)
		return
	}

	if len(changes) == 0 {
		tx.Rollback()
		return
	}

	// One batch of changes yields at most one broadcast per feed event,
	// regardless of how many rows touched each table.
	ordersChanged := false
	completedChanged := false

	for _, change := range changes {
		switch change.TableName {
		case models.ChangeTableOrders:
			ordersChanged = true
		case models.ChangeTableCompletedOrders:
			completedChanged = true
		}

		if err := tx.Model(&models.DBChange{}).
			Where("id = ?", change.ID).
			Update("processed", true).Error; err != nil {
			tx.Rollback()
			utils.ErrorLogger.Printf("Error marking change as processed: %v", err)
			return
		}
	}

	if err := tx.Commit().Error; err != nil {
		utils.ErrorLogger.Printf("Error committing change batch: %v", err)
		return
	}

	if ordersChanged {
		cm.broadcastActiveOrders()
	}
	if completedChanged {
		cm.broadcastCompletedToday()
	}
}

func (cm *ChangeMonitor) broadcastActiveOrders() {
	snapshot, err := FetchActiveSnapshot(cm.DB)
	if err != nil {
		utils.ErrorLogger.Printf("Error building active-orders snapshot: %v", err)
		return
	}
	feed.BroadcastActiveOrders(snapshot)
}

func (cm *ChangeMonitor) broadcastCompletedToday() {
	count, err := CompletedTodayCount(cm.DB, time.Now())
	if err != nil {
		// Degrade to zero, same as the stats endpoint.
		utils.ErrorLogger.Printf("Error counting completed orders: %v", err)
		count = 0
	}
	feed.BroadcastCompletedToday(count)
}
