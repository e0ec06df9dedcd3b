// order_feed.go
package controllers

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"go-storefront/services"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// OrderFeed broadcasts order lifecycle events to connected admin dashboards.
// It implements services.OrderNotifier.
type OrderFeed struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]bool
}

// NewOrderFeed creates an empty feed hub
func NewOrderFeed() *OrderFeed {
	return &OrderFeed{clients: make(map[*websocket.Conn]bool)}
}

// Handler upgrades the connection and keeps it registered until it drops
func (f *OrderFeed) Handler(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	defer conn.Close()

	f.mu.Lock()
	f.clients[conn] = true
	f.mu.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			f.mu.Lock()
			delete(f.clients, conn)
			f.mu.Unlock()
			break
		}
	}
}

// NotifyOrder pushes the event to every connected client
func (f *OrderFeed) NotifyOrder(event services.OrderEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	for client := range f.clients {
		if err := client.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("dropping order feed client: %v", err)
			client.Close()
			delete(f.clients, client)
		}
	}
}
