// Package relay broadcasts toasts to browsers over WebSocket.
//
// A Hub is a toast.Toaster. Pages include ClientScript, which connects to
// the hub and re-dispatches every toast as a "vango:toast" CustomEvent, so
// the same client handler serves session toasts and relayed ones.
package relay

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/feedback/pkg/toast"
)

// MessageType represents the type of relay message.
type MessageType string

// MessageTypeToast carries a toast.
const MessageTypeToast MessageType = "toast"

// Message is sent to browsers via WebSocket.
type Message struct {
	Type  MessageType  `json:"type"`
	Toast *toast.Toast `json:"toast,omitempty"`
}

const (
	// writeWait bounds a single frame write to a client.
	writeWait = 10 * time.Second

	// sendBuffer is the number of frames queued per client before the
	// client counts as too slow and is dropped.
	sendBuffer = 16

	// maxMessageSize bounds frames read from clients, which send nothing.
	maxMessageSize = 512
)

// client is one connected browser. send is closed exactly once, by
// Hub.remove or Hub.Close, while holding Hub.mu.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub manages WebSocket connections and broadcasts toasts to them.
// Toast never blocks on a client: each client has its own queue and
// writer goroutine.
type Hub struct {
	clients  map[*client]bool
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewHub creates a new hub. checkOrigin controls which origins may connect;
// nil allows same-origin requests only. A nil logger means slog.Default().
func NewHub(checkOrigin func(r *http.Request) bool, logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*client]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     checkOrigin,
		},
		logger: logger,
	}
}

// HandleWebSocket handles WebSocket upgrade and connection.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("relay upgrade failed", "error", err)
		return
	}
	conn.SetReadLimit(maxMessageSize)

	c := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[c] = true
	h.mu.Unlock()

	go h.writePump(c)

	// Keep connection alive until client disconnects
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(c)
}

// writePump writes queued frames to c until its queue is closed or a
// write fails.
func (h *Hub) writePump(c *client) {
	defer c.conn.Close()

	for data := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.logger.Debug("relay client dropped", "error", err)
			h.remove(c)
			return
		}
	}
}

// Toast broadcasts t to all connected clients.
func (h *Hub) Toast(t toast.Toast) {
	h.broadcast(Message{Type: MessageTypeToast, Toast: &t})
}

// broadcast queues a message for all connected clients.
// Clients whose queue is full are dropped.
func (h *Hub) broadcast(msg Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.Error("relay encode failed", "error", err)
		return
	}

	var slow []*client
	h.mu.RLock()
	for c := range h.clients {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		h.logger.Debug("relay client too slow, dropped")
		h.remove(c)
	}
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.clients[c] {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		delete(h.clients, c)
		close(c.send)
		c.conn.Close()
	}
}

// ClientScript returns the JavaScript that connects to the relay at
// path and dispatches each toast as a toast.EventName CustomEvent.
func ClientScript(path string) string {
	return `<script>
(function() {
    'use strict';

    var reconnectDelay = 1000;
    var maxReconnectDelay = 30000;

    function connect() {
        var protocol = location.protocol === 'https:' ? 'wss:' : 'ws:';
        var ws = new WebSocket(protocol + '//' + location.host + ` + jsString(path) + `);

        ws.onopen = function() {
            reconnectDelay = 1000;
        };

        ws.onmessage = function(e) {
            var msg;
            try {
                msg = JSON.parse(e.data);
            } catch (err) {
                return;
            }
            if (msg.type === 'toast' && msg.toast) {
                window.dispatchEvent(new CustomEvent(` + jsString(toast.EventName) + `, { detail: msg.toast }));
            }
        };

        ws.onclose = function() {
            setTimeout(function() {
                reconnectDelay = Math.min(reconnectDelay * 2, maxReconnectDelay);
                connect();
            }, reconnectDelay);
        };

        ws.onerror = function() {
            ws.close();
        };
    }

    if (document.readyState === 'loading') {
        document.addEventListener('DOMContentLoaded', connect);
    } else {
        connect();
    }
})();
</script>
`
}

// jsString quotes s as a JavaScript string literal.
func jsString(s string) string {
	data, _ := json.Marshal(s)
	return string(data)
}

// AllowOrigins returns an origin check for NewHub.
// No origins yields nil (same-origin only); "*" allows any origin. Requests
// without an Origin header come from non-browser clients and are allowed.
func AllowOrigins(origins []string) func(r *http.Request) bool {
	if len(origins) == 0 {
		return nil
	}
	allowed := make(map[string]bool, len(origins))
	for _, o := range origins {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		allowed[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || allowed[origin]
	}
}
