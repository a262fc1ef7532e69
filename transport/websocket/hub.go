package websocket

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/wricardo/battleship/game/view"
)

const (
	writeWait = 10 * time.Second
	pongWait  = 60 * time.Second
	// pingPeriod stays below pongWait so a live peer never times out
	pingPeriod = pongWait * 9 / 10

	// spectators only send control frames
	maxMessageSize = 512

	clientBuffer    = 256
	broadcastBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Boards are watched from any origin, including the MCP tunnel
	CheckOrigin: func(*http.Request) bool { return true },
}

// Event names pushed to clients
const (
	EventMatchUpdate = "match_update"
	EventShot        = "shot"
	EventRestart     = "restart"
)

// Message is one frame pushed to the watchers of a session
type Message struct {
	SessionID string          `json:"session_id"`
	Match     *view.MatchView `json:"match,omitempty"`
	Event     string          `json:"event,omitempty"`
	Data      interface{}     `json:"data,omitempty"`
}

// Client is one WebSocket connection watching a session
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans match updates out to the clients watching each session.
// Only the Run goroutine touches the sessions map.
type Hub struct {
	sessions   map[string]map[*Client]bool
	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
}

func NewHub() *Hub {
	return &Hub{
		sessions:   make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run serves registrations and broadcasts until the process exits
func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.registerClient(c)
		case c := <-h.unregister:
			h.unregisterClient(c)
		case m := <-h.broadcast:
			h.broadcastMessage(m)
		}
	}
}

// ServeWS upgrades the request and subscribes the connection to sessionID
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade failed for session %s: %v", sessionID, err)
		return
	}

	c := &Client{hub: h, conn: conn, send: make(chan []byte, clientBuffer), sessionID: sessionID}
	h.register <- c

	go c.writePump()
	go c.readPump()
}

// BroadcastToSession pushes the current match view to a session's watchers
func (h *Hub) BroadcastToSession(sessionID string, match *view.MatchView) {
	h.broadcast <- &Message{SessionID: sessionID, Match: match, Event: EventMatchUpdate}
}

// BroadcastEvent pushes a named event with an arbitrary payload
func (h *Hub) BroadcastEvent(sessionID string, event string, data interface{}) {
	h.broadcast <- &Message{SessionID: sessionID, Event: event, Data: data}
}

func (h *Hub) registerClient(c *Client) {
	watchers := h.sessions[c.sessionID]
	if watchers == nil {
		watchers = make(map[*Client]bool)
		h.sessions[c.sessionID] = watchers
	}
	watchers[c] = true
	log.Printf("Watcher joined session %s (%d watching)", c.sessionID, len(watchers))
}

// unregisterClient closes the client's queue and forgets the session once
// nobody watches it. Unknown clients are ignored.
func (h *Hub) unregisterClient(c *Client) {
	watchers := h.sessions[c.sessionID]
	if !watchers[c] {
		return
	}
	delete(watchers, c)
	close(c.send)
	if len(watchers) == 0 {
		delete(h.sessions, c.sessionID)
	}
	log.Printf("Watcher left session %s (%d watching)", c.sessionID, len(watchers))
}

// broadcastMessage drops any watcher whose queue is full
func (h *Hub) broadcastMessage(m *Message) {
	watchers := h.sessions[m.SessionID]
	if len(watchers) == 0 {
		return
	}
	data, err := json.Marshal(m)
	if err != nil {
		log.Printf("Failed to encode %s event for session %s: %v", m.Event, m.SessionID, err)
		return
	}
	for c := range watchers {
		select {
		case c.send <- data:
		default:
			h.unregisterClient(c)
		}
	}
}

// readPump discards client frames and keeps the read deadline fresh on pongs.
// It unregisters the client when the connection drops.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
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
				log.Printf("WebSocket error in session %s: %v", c.sessionID, err)
			}
			return
		}
	}
}

// writePump drains the send queue into the connection and pings on a timer
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case first, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.writeBatch(first); err != nil {
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

// writeBatch sends first plus whatever is already queued as one
// newline-separated text frame.
func (c *Client) writeBatch(first []byte) error {
	w, err := c.conn.NextWriter(websocket.TextMessage)
	if err != nil {
		return err
	}
	w.Write(first)
	for n := len(c.send); n > 0; n-- {
		w.Write([]byte{'\n'})
		w.Write(<-c.send)
	}
	return w.Close()
}
