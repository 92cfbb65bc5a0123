// Package feed holds the websocket hub behind the barista dashboard's live
// order feed. Every relevant change produces a fresh full snapshot, so
// interleaved broadcasts are safe: the client always replaces its whole view.
package feed

import (
	"encoding/json"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/brewline/coffee-shop/models"
	"github.com/brewline/coffee-shop/utils"
)

// Event types
const (
	EventActiveOrders   = "active_orders"
	EventCompletedToday = "completed_today"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// ActiveSnapshot is the payload of an active_orders event: the full result
// set of the live query plus the per-status counts shown in the header.
type ActiveSnapshot struct {
	Orders         []models.Order `json:"orders"`
	PendingCount   int            `json:"pending_count"`
	PreparingCount int            `json:"preparing_count"`
}

// Hub tracks every connected dashboard client.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the broadcast set.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient removes and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastActiveOrders pushes a fresh active-orders snapshot to every client.
func BroadcastActiveOrders(snapshot ActiveSnapshot) {
	broadcast(Message{
		Event: EventActiveOrders,
		Data:  snapshot,
	})
}

// BroadcastCompletedToday pushes the refreshed completed-today count.
func BroadcastCompletedToday(count int64) {
	broadcast(Message{
		Event: EventCompletedToday,
		Data:  count,
	})
}

// SendTo writes a message to a single connection, used for the initial
// snapshot right after a client connects.
func SendTo(conn *websocket.Conn, msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return conn.WriteMessage(websocket.TextMessage, data)
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		utils.ErrorLogger.Printf("Error marshaling feed message: %v", err)
		return
	}

	for conn, role := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			utils.ErrorLogger.Printf("Error sending feed message to %s client: %v", role, err)
			continue
		}
	}
}
