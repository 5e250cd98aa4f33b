// Package feed streams session snapshots to spectators over WebSocket.
//
// A Hub keeps the set of connected clients and fans every published
// snapshot out to them. Clients pick their encoding with ?format=msgpack;
// the default is JSON text frames. Spectators only watch: anything they
// send is read and discarded.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"tesla-tower/internal/sim"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

// Format is a snapshot wire encoding.
type Format uint8

const (
	FormatJSON Format = iota
	FormatMsgpack
)

// ParseFormat maps a query value to a Format. Anything unknown is JSON.
func ParseFormat(s string) Format {
	if s == "msgpack" {
		return FormatMsgpack
	}
	return FormatJSON
}

// Encode serializes a snapshot in the given format.
func Encode(snap *sim.Snapshot, f Format) ([]byte, error) {
	if f == FormatMsgpack {
		return msgpack.Marshal(snap)
	}
	return json.Marshal(snap)
}

func (f Format) messageType() int {
	if f == FormatMsgpack {
		return websocket.BinaryMessage
	}
	return websocket.TextMessage
}

type client struct {
	hub    *Hub
	conn   *websocket.Conn
	format Format
	send   chan []byte
}

// Hub owns the spectator set. Run must be running for clients to register
// and for Publish to deliver.
type Hub struct {
	log        logrus.FieldLogger
	clients    map[*client]struct{}
	broadcast  chan sim.Snapshot
	register   chan *client
	unregister chan *client
	done       chan struct{}
	count      atomic.Int64
	upgrader   websocket.Upgrader
}

// NewHub creates an idle hub.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		log:        log.WithField("component", "feed"),
		clients:    make(map[*client]struct{}),
		broadcast:  make(chan sim.Snapshot, 1),
		register:   make(chan *client),
		unregister: make(chan *client),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Clients returns the number of registered spectators.
func (h *Hub) Clients() int { return int(h.count.Load()) }

// Publish offers a snapshot to the hub without blocking. If the previous
// snapshot has not been fanned out yet, the new one is dropped.
func (h *Hub) Publish(snap sim.Snapshot) bool {
	select {
	case h.broadcast <- snap:
		return true
	default:
		return false
	}
}

// Run serves registrations and broadcasts until ctx is done, then closes
// every client. A hub runs once.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		for c := range h.clients {
			h.drop(c)
		}
		close(h.done)
	}()
	for {
		select {
		case <-ctx.Done():
			return
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			h.log.WithField("remote", c.conn.RemoteAddr().String()).Info("spectator joined")
		case c := <-h.unregister:
			if _, ok := h.clients[c]; ok {
				h.drop(c)
			}
		case snap := <-h.broadcast:
			h.fanOut(&snap)
		}
	}
}

func (h *Hub) fanOut(snap *sim.Snapshot) {
	var frames [2][]byte
	for c := range h.clients {
		data := frames[c.format]
		if data == nil {
			var err error
			data, err = Encode(snap, c.format)
			if err != nil {
				h.log.WithError(err).Warn("snapshot encode failed")
				continue
			}
			frames[c.format] = data
		}
		select {
		case c.send <- data:
		default:
			h.log.Debug("slow spectator dropped")
			h.drop(c)
		}
	}
}

func (h *Hub) drop(c *client) {
	delete(h.clients, c)
	close(c.send)
	h.count.Add(-1)
}

// ServeHTTP upgrades the request and registers a spectator.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.WithError(err).Warn("websocket upgrade failed")
		return
	}
	c := &client{
		hub:    h,
		conn:   conn,
		format: ParseFormat(r.URL.Query().Get("format")),
		send:   make(chan []byte, sendBuffer),
	}
	select {
	case h.register <- c:
	case <-r.Context().Done():
		conn.Close()
		return
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// readPump discards inbound frames and notices when the peer goes away.
func (c *client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.WithError(err).Debug("spectator read failed")
			}
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(c.format.messageType(), data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
