package panel

import (
	"context"
	"log"
	"time"

	"github.com/gorilla/websocket"
)

const (
	writeWait      = 5 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	sendBuffer     = 32
	broadcastQueue = 64
)

type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub fans published records out to clients from a single goroutine
type Hub struct {
	register   chan *client
	unregister chan *client
	broadcast  chan Record
	clients    map[*client]struct{}
	lastInfo   []byte // replayed to new clients
	metrics    *Metrics
}

// NewHub creates a hub; metrics may be nil
func NewHub(m *Metrics) *Hub {
	return &Hub{
		register:   make(chan *client),
		unregister: make(chan *client),
		broadcast:  make(chan Record, broadcastQueue),
		clients:    make(map[*client]struct{}),
		metrics:    m,
	}
}

// Publish queues a record without blocking; a full queue drops it
func (h *Hub) Publish(r Record) bool {
	select {
	case h.broadcast <- r:
		return true
	default:
		return false
	}
}

// Run serves the hub until ctx is done, then closes every client
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			for c := range h.clients {
				h.drop(c)
			}
			return

		case c := <-h.register:
			h.clients[c] = struct{}{}
			if h.lastInfo != nil {
				h.deliver(c, h.lastInfo)
			}
			h.gauge()

		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
				h.gauge()
			}

		case r := <-h.broadcast:
			msg := r.encode()
			switch {
			case r.Type == TypeSelect:
				h.lastInfo = msg
			case r.Type == TypeHide && r.Target == TargetInfo:
				h.lastInfo = nil
			}
			if h.metrics != nil {
				h.metrics.recordPublished(r.Type)
			}
			for c := range h.clients {
				h.deliver(c, msg)
			}
		}
	}
}

// deliver drops clients that cannot keep up
func (h *Hub) deliver(c *client, msg []byte) {
	select {
	case c.send <- msg:
	default:
		log.Printf("panel: dropping slow client %s", c.conn.RemoteAddr())
		h.drop(c)
		h.gauge()
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
}

func (h *Hub) gauge() {
	if h.metrics != nil {
		h.metrics.setClients(len(h.clients))
	}
}

// serve registers conn and pumps until it closes
func (h *Hub) serve(ctx context.Context, conn *websocket.Conn) {
	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-ctx.Done():
		conn.Close()
		return
	}
	go h.writePump(c)
	h.readPump(ctx, c)
}

// readPump only services control frames; client data is discarded
func (h *Hub) readPump(ctx context.Context, c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-ctx.Done():
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
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
