package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/brewline/coffee-shop/cards"
	"github.com/brewline/coffee-shop/models"
	"github.com/brewline/coffee-shop/services"
	"github.com/brewline/coffee-shop/utils"
)

// ErrOrderNotFound is returned when an order is gone from the active
// collection, e.g. it was already completed by a concurrent barista.
var ErrOrderNotFound = errors.New("order not found")

type OrderController struct {
	DB *gorm.DB
}

func NewOrderController(db *gorm.DB) *OrderController {
	return &OrderController{DB: db}
}

// CreateOrder is the customer-facing ordering flow. Orders always start out
// pending and immediately show up on the barista feed.
func (oc *OrderController) CreateOrder(c *gin.Context) {
	type itemReq struct {
		Quantity   int    `json:"quantity" binding:"required,min=1"`
		CoffeeName string `json:"coffee_name" binding:"required"`
		Variant    string `json:"variant"`
		Size       string `json:"size"`
	}
	type reqBody struct {
		UserName string    `json:"user_name"`
		Items    []itemReq `json:"items" binding:"required,min=1,dive"`
	}

	var body reqBody
	if err := c.ShouldBindJSON(&body); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	now := time.Now()
	order := models.Order{
		ID:        uuid.NewString(),
		OrderID:   uuid.NewString(),
		UserName:  body.UserName,
		Status:    models.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	for _, item := range body.Items {
		order.Items = append(order.Items, models.OrderItem{
			OrderRef:   order.ID,
			Quantity:   item.Quantity,
			CoffeeName: item.CoffeeName,
			Variant:    item.Variant,
			Size:       item.Size,
		})
	}

	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		return services.RecordChange(tx, models.ChangeTableOrders, order.ID, models.ActionInsert)
	})
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	utils.InfoLogger.Printf("Order created: %s (#%s)", order.ID, order.ShortCode())
	utils.RespondJSON(c, http.StatusCreated, "Order created", order)
}

// GetActiveOrders is the REST snapshot of the live feed query, optionally
// projected into dashboard cards via ?filter=all|pending|preparing.
func (oc *OrderController) GetActiveOrders(c *gin.Context) {
	snapshot, err := services.FetchActiveSnapshot(oc.DB)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	filter := c.DefaultQuery("filter", cards.FilterAll)
	utils.RespondJSON(c, http.StatusOK, "Active orders", gin.H{
		"orders":          snapshot.Orders,
		"pending_count":   snapshot.PendingCount,
		"preparing_count": snapshot.PreparingCount,
		"cards":           cards.Render(snapshot.Orders, filter, time.Now()),
	})
}

// GetOrderByID looks an order up in the active collection first, then in
// completed orders, so a customer can find their pickup number.
func (oc *OrderController) GetOrderByID(c *gin.Context) {
	id := c.Param("order_id")

	var order models.Order
	if err := oc.DB.Preload("Items").First(&order, "id = ?", id).Error; err == nil {
		utils.RespondJSON(c, http.StatusOK, "Order detail", order)
		return
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}

	var completed models.CompletedOrder
	if err := oc.DB.Preload("Items").First(&completed, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.RespondError(c, http.StatusNotFound, ErrOrderNotFound)
		} else {
			utils.RespondError(c, http.StatusInternalServerError, err)
		}
		return
	}

	utils.RespondJSON(c, http.StatusOK, "Order detail", completed)
}

// StartPreparing moves a pending order to preparing. A single-row update of
// the status and update timestamp; every other field is untouched.
func (oc *OrderController) StartPreparing(c *gin.Context) {
	id := c.Param("order_id")

	var order models.Order
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := models.CanTransition(order.Status, models.StatusPreparing); err != nil {
			return err
		}

		now := time.Now()
		if err := tx.Model(&models.Order{}).
			Where("id = ?", id).
			Updates(map[string]interface{}{
				"status":     models.StatusPreparing,
				"updated_at": now,
			}).Error; err != nil {
			return err
		}
		order.Status = models.StatusPreparing
		order.UpdatedAt = now

		return services.RecordChange(tx, models.ChangeTableOrders, id, models.ActionUpdate)
	})

	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s marked as preparing", id)
	utils.RespondJSON(c, http.StatusOK, "Order is being prepared", order)
}

// CompleteOrder finishes a preparing order: allocate the next pickup number,
// relocate the record to completed_orders, and delete the active row, all in
// one transaction so concurrent completions serialize instead of racing.
func (oc *OrderController) CompleteOrder(c *gin.Context) {
	id := c.Param("order_id")

	var completed models.CompletedOrder
	err := oc.DB.Transaction(func(tx *gorm.DB) error {
		var order models.Order
		if err := tx.Preload("Items").First(&order, "id = ?", id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrOrderNotFound
			}
			return err
		}

		if err := models.CanTransition(order.Status, models.StatusCompleted); err != nil {
			return err
		}

		now := time.Now()

		counter := models.PickupCounter{ID: models.PickupCounterID, LastUpdated: now}
		if err := tx.FirstOrCreate(&counter, "id = ?", models.PickupCounterID).Error; err != nil {
			return err
		}
		// Increment in SQL so two completions contend on the row lock
		// rather than both reading the same value.
		if err := tx.Model(&models.PickupCounter{}).
			Where("id = ?", models.PickupCounterID).
			Updates(map[string]interface{}{
				"counter":      gorm.Expr("counter + ?", 1),
				"last_updated": now,
			}).Error; err != nil {
			return err
		}
		if err := tx.First(&counter, models.PickupCounterID).Error; err != nil {
			return err
		}

		completed = models.CompletedOrder{
			ID:           order.ID,
			OrderID:      order.OrderID,
			UserName:     order.UserName,
			Status:       models.StatusCompleted,
			PickupNumber: counter.PickupNumber(),
			CreatedAt:    order.CreatedAt,
			UpdatedAt:    now,
			CompletedAt:  now,
		}
		// Item rows are keyed by the order id and stay where they are.
		if err := tx.Omit(clause.Associations).Create(&completed).Error; err != nil {
			// A duplicate key here means a concurrent completion already
			// relocated this order.
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return ErrOrderNotFound
			}
			return err
		}

		res := tx.Where("id = ?", id).Delete(&models.Order{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return ErrOrderNotFound
		}

		completed.Items = order.Items

		if err := services.RecordChange(tx, models.ChangeTableOrders, id, models.ActionDelete); err != nil {
			return err
		}
		return services.RecordChange(tx, models.ChangeTableCompletedOrders, id, models.ActionInsert)
	})

	if err != nil {
		respondOrderError(c, err)
		return
	}

	utils.InfoLogger.Printf("Order %s completed with pickup number %s", id, completed.PickupNumber)
	utils.RespondJSON(c, http.StatusOK, "Order completed", gin.H{
		"order":         completed,
		"pickup_number": completed.PickupNumber,
	})
}

func respondOrderError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrOrderNotFound):
		utils.RespondError(c, http.StatusNotFound, err)
	case errors.Is(err, models.ErrInvalidTransition):
		utils.RespondError(c, http.StatusConflict, err)
	default:
		utils.ErrorLogger.Printf("Order operation failed: %v", err)
		utils.RespondError(c, http.StatusInternalServerError, err)
	}
}
