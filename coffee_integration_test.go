package main

import (
	"bytes"
	"encoding/json"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/brewline/coffee-shop/models"
	"github.com/brewline/coffee-shop/router"
	"github.com/brewline/coffee-shop/utils"
)

func TestMain(m *testing.M) {
	utils.InitLogger()
	os.Exit(m.Run())
}

// TestEndToEndIntegration walks the main flow:
// 0. Register a barista, login -> token
// 1. Customer places an order (pending)
// 2. Barista starts preparing
// 3. Barista completes -> pickup number "0001"
// 4. Stats show the completion; the order is addressable in its
//    completed form
func TestEndToEndIntegration(t *testing.T) {
	db := setupIntegrationDB()
	r := router.SetupRouter(db)

	token := registerAndLogin(t, r)
	orderID := placeOrder(t, r)

	// Start preparing.
	w := authedJSON(r, "POST", "/barista/orders/"+orderID+"/start", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)

	// Complete.
	w = authedJSON(r, "POST", "/barista/orders/"+orderID+"/complete", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var completeResp struct {
		Data struct {
			PickupNumber string `json:"pickup_number"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &completeResp))
	assert.Equal(t, "0001", completeResp.Data.PickupNumber)

	// Stats reflect the completion.
	w = authedJSON(r, "GET", "/barista/stats", nil, token)
	assert.Equal(t, http.StatusOK, w.Code)
	var statsResp struct {
		Data struct {
			PendingCount   int   `json:"pending_count"`
			PreparingCount int   `json:"preparing_count"`
			CompletedToday int64 `json:"completed_today"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &statsResp))
	assert.Equal(t, 0, statsResp.Data.PendingCount)
	assert.Equal(t, 0, statsResp.Data.PreparingCount)
	assert.Equal(t, int64(1), statsResp.Data.CompletedToday)

	// The customer can still look the order up for its pickup number.
	w = authedJSON(r, "GET", "/orders/"+orderID, nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pickup_number":"0001"`)
}

func setupIntegrationDB() *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		log.Fatalf("failed to open in-memory sqlite: %v", err)
	}
	err = db.AutoMigrate(
		&models.User{},
		&models.Order{},
		&models.OrderItem{},
		&models.CompletedOrder{},
		&models.PickupCounter{},
		&models.DBChange{},
	)
	if err != nil {
		log.Fatalf("failed to migrate: %v", err)
	}
	return db
}

func registerAndLogin(t *testing.T, r http.Handler) string {
	w := authedJSON(r, "POST", "/register", map[string]string{
		"name":     "Maria",
		"email":    "maria@example.com",
		"password": "secret-password",
		"role":     models.RoleBarista,
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	w = authedJSON(r, "POST", "/login", map[string]string{
		"email":    "maria@example.com",
		"password": "secret-password",
	}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.NotEmpty(t, resp.Data.Token)
	return resp.Data.Token
}

func placeOrder(t *testing.T, r http.Handler) string {
	w := authedJSON(r, "POST", "/orders", map[string]interface{}{
		"user_name": "Alex",
		"items": []map[string]interface{}{
			{"quantity": 1, "coffee_name": "Cappuccino", "variant": "Whole Milk", "size": "Medium"},
		},
	}, "")
	assert.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.Order `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, models.StatusPending, resp.Data.Status)
	return resp.Data.ID
}

func authedJSON(r http.Handler, method, url string, body interface{}, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}
