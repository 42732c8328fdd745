package routes

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"hydrolink/models"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Adjust this for production
	},
}

// Connected clients map with mutex for thread safety
var wsClients = make(map[*websocket.Conn]bool)
var wsBroadcast = make(chan []byte, 100) // Buffered channel to prevent blocking
var wsMutex = &sync.Mutex{}
var wsOnce sync.Once

type orderEvent struct {
	Event       string  `json:"event"`
	OrderID     uint    `json:"order_id"`
	Status      string  `json:"status"`
	TotalAmount float64 `json:"total_amount"`
}

// publishOrderEvent pushes an order event onto the feed. Drops the event when
// the buffer is full rather than blocking the request.
func publishOrderEvent(event string, order *models.Order) {
	message, err := json.Marshal(orderEvent{
		Event:       event,
		OrderID:     order.ID,
		Status:      order.Status,
		TotalAmount: order.TotalAmount,
	})
	if err != nil {
		return
	}
	select {
	case wsBroadcast <- message:
	default:
		log.Println("Order feed buffer full, dropping event")
	}
}

func startOrderFeed() {
	wsOnce.Do(func() {
		go func() {
			for message := range wsBroadcast {
				wsMutex.Lock()
				for client := range wsClients {
					if err := client.WriteMessage(websocket.TextMessage, message); err != nil {
						log.Printf("WebSocket write error: %v", err)
						client.Close()
						delete(wsClients, client)
					}
				}
				wsMutex.Unlock()
			}
		}()
	})
}

// orderFeedHandler upgrades the connection and keeps it registered until it
// closes. Inbound messages are read only to detect disconnects.
func orderFeedHandler() fiber.Handler {
	return adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			log.Println("Error upgrading:", err)
			return
		}
		defer conn.Close()

		wsMutex.Lock()
		wsClients[conn] = true
		wsMutex.Unlock()
		log.Println("Feed client connected:", conn.RemoteAddr())

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("WebSocket read error: %v", err)
				}
				wsMutex.Lock()
				delete(wsClients, conn)
				wsMutex.Unlock()
				log.Println("Feed client disconnected:", conn.RemoteAddr())
				break
			}
		}
	})
}
