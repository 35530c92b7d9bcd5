package realtime

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"leadflow/internal/models"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// dashboards connect from any origin in local setups
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Event is what a dashboard client receives for every notification.
type Event struct {
	Type         string              `json:"type"`
	Notification models.Notification `json:"notification"`
}

const EventNotification = "notification"

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans notifications out to every connected dashboard.
type Hub struct {
	mu      sync.RWMutex
	clients map[*client]struct{}
	log     *logrus.Logger
}

func NewHub(log *logrus.Logger) *Hub {
	if log == nil {
		log = logrus.StandardLogger()
	}
	return &Hub{clients: make(map[*client]struct{}), log: log}
}

func (h *Hub) register(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[c] = struct{}{}
}

func (h *Hub) unregister(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		close(c.send)
	}
}

// Len is the number of connected clients.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Publish implements services.Subscriber. Slow clients drop messages
// instead of blocking the mutation that produced them.
func (h *Hub) Publish(n models.Notification) {
	data, err := json.Marshal(Event{Type: EventNotification, Notification: n})
	if err != nil {
		h.log.WithError(err).Error("marshal notification event")
		return
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			h.log.WithField("notification_id", n.ID).Warn("websocket client too slow, dropping event")
		}
	}
}

// Serve upgrades the request and streams events until the client leaves.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request) error {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.register(c)
	h.log.WithField("remote", r.RemoteAddr).Debug("websocket client connected")

	go h.writeLoop(c)
	h.readLoop(c)
	return nil
}

// readLoop only drains control frames; clients never send data.
func (h *Hub) readLoop(c *client) {
	defer func() {
		h.unregister(c)
		_ = c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.WithError(err).Warn("websocket read")
			}
			return
		}
	}
}

func (h *Hub) writeLoop(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
