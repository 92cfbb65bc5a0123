package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/services"
	"github.com/brewline/coffee-shop/utils"
)

type StatsController struct {
	DB *gorm.DB
}

func NewStatsController(db *gorm.DB) *StatsController {
	return &StatsController{DB: db}
}

// GetDashboardStats returns the header numbers for the barista dashboard:
// open-order counts plus orders completed since the start of the day. The
// completed count degrades to zero on failure instead of failing the
// request; it is display-only.
func (sc *StatsController) GetDashboardStats(c *gin.Context) {
	snapshot, err := services.FetchActiveSnapshot(sc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	completedToday, err := services.CompletedTodayCount(sc.DB, time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("Error getting completed count: %v", err)
		completedToday = 0
	}

	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"pending_count":   snapshot.PendingCount,
		"preparing_count": snapshot.PreparingCount,
		"completed_today": completedToday,
	})
}
