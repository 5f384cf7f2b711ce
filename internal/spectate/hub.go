// Package spectate streams live games to websocket clients. A Broadcaster
// display publishes engine notifications to a Hub, which fans them out to
// every spectator of that session.
package spectate

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/tui-2048/internal/display"
	"github.com/vovakirdan/tui-2048/internal/grid"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Spectators only send control frames.
	maxMessageSize = 512

	sendBuffer      = 64
	broadcastBuffer = 256
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Message types.
const (
	TypeSnapshot = "snapshot"
	TypeEvent    = "event"
)

// Message is the JSON frame sent to spectators. Event frames carry the board
// after the event so a client that missed frames can resync.
type Message struct {
	Type      string         `json:"type"`
	SessionID string         `json:"session_id"`
	Event     *display.Event `json:"event,omitempty"`
	Board     [][]int        `json:"board,omitempty"`
	Snapshot  *grid.Snapshot `json:"snapshot,omitempty"`
}

type client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub maintains the spectators of every session and fans out messages.
type Hub struct {
	mu       sync.RWMutex
	sessions map[string]map[*client]bool

	broadcast  chan *Message
	register   chan *client
	unregister chan *client
	endSession chan string
	done       chan struct{}

	logger *log.Logger
}

// NewHub creates a hub. Run must be called for it to deliver messages.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.Default()
	}
	return &Hub{
		sessions:   make(map[string]map[*client]bool),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *client),
		unregister: make(chan *client),
		endSession: make(chan string),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes hub events until ctx is cancelled, then disconnects every
// spectator.
func (h *Hub) Run(ctx context.Context) {
	defer func() {
		h.mu.Lock()
		for id, clients := range h.sessions {
			for c := range clients {
				close(c.send)
			}
			delete(h.sessions, id)
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for {
		select {
		case <-ctx.Done():
			return

		case c := <-h.register:
			h.registerClient(c)

		case c := <-h.unregister:
			h.unregisterClient(c)

		case id := <-h.endSession:
			h.dropSession(id)

		case m := <-h.broadcast:
			h.broadcastMessage(m)
		}
	}
}

// Publish queues a message for the spectators of m.SessionID. It never
// blocks: when the queue is full the message is dropped.
func (h *Hub) Publish(m *Message) {
	select {
	case h.broadcast <- m:
	case <-h.done:
	default:
		h.logger.Debug("spectator queue full, dropping message", "session", m.SessionID)
	}
}

// EndSession disconnects every spectator of a session.
func (h *Hub) EndSession(sessionID string) {
	select {
	case h.endSession <- sessionID:
	case <-h.done:
	}
}

// ClientCount returns the number of spectators watching a session.
func (h *Hub) ClientCount(sessionID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.sessions[sessionID])
}

// ServeWS upgrades the request and subscribes the connection to sessionID.
// The initial message, if any, is delivered before live updates.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string, initial *Message) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", "error", err)
		return
	}

	c := &client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, sendBuffer),
		sessionID: sessionID,
	}

	if initial != nil {
		data, err := json.Marshal(initial)
		if err != nil {
			h.logger.Error("failed to marshal initial message", "error", err)
			conn.Close()
			return
		}
		c.send <- data
	}

	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}

	go c.writePump()
	go c.readPump()
}

func (h *Hub) registerClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.sessions[c.sessionID] == nil {
		h.sessions[c.sessionID] = make(map[*client]bool)
	}
	h.sessions[c.sessionID][c] = true

	h.logger.Info("spectator joined", "session", c.sessionID, "spectators", len(h.sessions[c.sessionID]))
}

func (h *Hub) unregisterClient(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	clients, ok := h.sessions[c.sessionID]
	if !ok || !clients[c] {
		return
	}
	delete(clients, c)
	close(c.send)

	if len(clients) == 0 {
		delete(h.sessions, c.sessionID)
	}

	h.logger.Info("spectator left", "session", c.sessionID, "spectators", len(clients))
}

func (h *Hub) dropSession(id string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.sessions[id] {
		h.removeLocked(c)
	}
}

func (h *Hub) broadcastMessage(m *Message) {
	data, err := json.Marshal(m)
	if err != nil {
		h.logger.Error("failed to marshal broadcast message", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.sessions[m.SessionID] {
		select {
		case c.send <- data:
		default:
			// Slow spectator; drop it rather than stall the game.
			h.removeLocked(c)
		}
	}
}

// readPump discards client frames and keeps the read deadline fresh.
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
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.logger.Warn("websocket error", "session", c.sessionID, "error", err)
			}
			return
		}
	}
}

// writePump sends queued messages and pings to the connection.
func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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
