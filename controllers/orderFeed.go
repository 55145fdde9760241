package controllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"go-restaurant-ordering/models"
)

const (
	writeWait  = 5 * time.Second
	sendBuffer = 16
)

// Hub fans order notifications out to connected admin dashboards. Each client
// has its own writer goroutine; a client whose queue is full or whose write
// fails is dropped, so one stalled dashboard never delays the others.
type Hub struct {
	upgrader websocket.Upgrader
	log      *zap.Logger
	pumps    sync.WaitGroup

	mu      sync.Mutex
	clients map[*feedClient]bool
}

type feedClient struct {
	conn *websocket.Conn
	send chan []byte
}

// NewHub accepts websocket connections from the given origins. "*" allows any
// origin; requests without an Origin header are always accepted.
func NewHub(allowedOrigins []string, log *zap.Logger) *Hub {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return &Hub{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				return origin == "" || allowed["*"] || allowed[origin]
			},
		},
		log:     log.Named("feed"),
		clients: make(map[*feedClient]bool),
	}
}

func (h *Hub) HandleWebSocket() gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			h.log.Warn("websocket upgrade failed", zap.Error(err))
			return
		}

		client := &feedClient{conn: conn, send: make(chan []byte, sendBuffer)}
		h.mu.Lock()
		h.clients[client] = true
		h.pumps.Add(1)
		h.mu.Unlock()
		go h.writePump(client)
		h.log.Debug("feed client connected", zap.String("remote", conn.RemoteAddr().String()))

		// Incoming messages are ignored; reading only detects disconnects.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				break
			}
		}
		h.remove(client)
	}
}

// writePump is the only writer on client.conn. It runs until client.send is
// closed, then says goodbye and closes the connection.
func (h *Hub) writePump(client *feedClient) {
	defer h.pumps.Done()
	defer client.conn.Close()

	for message := range client.send {
		_ = client.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := client.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			h.log.Warn("dropping feed client", zap.Error(err))
			h.remove(client)
			return
		}
	}
	_ = client.conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
		time.Now().Add(writeWait))
}

// Notify queues n for every connected client without waiting on the network.
func (h *Hub) Notify(n models.Notification) {
	messageBytes, err := json.Marshal(n)
	if err != nil {
		h.log.Error("marshal notification", zap.String("event", n.Event), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for client := range h.clients {
		select {
		case client.send <- messageBytes:
		default:
			h.log.Warn("dropping slow feed client")
			h.drop(client)
		}
	}
}

// Clients reports how many dashboards are connected.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and waits for their writers to finish.
func (h *Hub) Close() {
	h.mu.Lock()
	for client := range h.clients {
		h.drop(client)
	}
	h.mu.Unlock()
	h.pumps.Wait()
}

func (h *Hub) remove(client *feedClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.clients[client] {
		h.drop(client)
	}
}

// drop unregisters client and ends its writer. Callers hold h.mu.
func (h *Hub) drop(client *feedClient) {
	delete(h.clients, client)
	close(client.send)
}
