package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/feed"
	"github.com/brewline/coffee-shop/services"
	"github.com/brewline/coffee-shop/utils"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type FeedController struct {
	DB *gorm.DB
}

func NewFeedController(db *gorm.DB) *FeedController {
	return &FeedController{DB: db}
}

// FeedHandler is the live-subscription endpoint. The role gate has already
// verified the caller, so the handler sends the initial snapshot, registers
// the connection on the hub, and blocks until the client hangs up. Closing
// the connection is the only teardown; there is nothing else to cancel.
func (fc *FeedController) FeedHandler(c *gin.Context) {
	role := c.GetString("role")

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		utils.ErrorLogger.Printf("Feed upgrade failed: %v", err)
		return
	}

	// Initial load: the current result set, then the completed-today count.
	if snapshot, err := services.FetchActiveSnapshot(fc.DB); err != nil {
		utils.ErrorLogger.Printf("Error building initial snapshot: %v", err)
	} else if err := feed.SendTo(ws, feed.Message{Event: feed.EventActiveOrders, Data: snapshot}); err != nil {
		ws.Close()
		return
	}

	count, err := services.CompletedTodayCount(fc.DB, time.Now())
	if err != nil {
		utils.ErrorLogger.Printf("Error getting completed count: %v", err)
		count = 0
	}
	if err := feed.SendTo(ws, feed.Message{Event: feed.EventCompletedToday, Data: count}); err != nil {
		ws.Close()
		return
	}

	feed.RegisterClient(ws, role)

	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			break
		}
	}

	feed.UnregisterClient(ws)
}
