// Package messaging pushes re-rendered sidebar HTML to live preview clients
// over websockets.
package messaging

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/AtRiskMedia/monster-widget/internal/infrastructure/observability/logging"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 16
)

const (
	MessageRender = "render"
	MessageError  = "error"
)

// Renderer produces the current HTML of a sidebar.
type Renderer func(ctx context.Context, sidebarID string) (string, error)

// ConnectionObserver is told when preview clients come and go.
type ConnectionObserver interface {
	ClientConnected()
	ClientDisconnected()
}

// Message is the JSON frame sent to preview clients.
type Message struct {
	Type      string `json:"type"`
	SidebarID string `json:"sidebarId"`
	HTML      string `json:"html,omitempty"`
	Error     string `json:"error,omitempty"`
	Rendered  string `json:"rendered"`
}

// Client is a single connected preview tab watching one sidebar.
type Client struct {
	Conn      *websocket.Conn
	SidebarID string
	Send      chan []byte
}

// PreviewHub tracks preview clients per sidebar and re-renders on Refresh.
type PreviewHub struct {
	sidebarClients map[string]map[*Client]bool
	register       chan *Client
	unregister     chan *Client
	refresh        chan struct{}
	done           chan struct{}

	render   Renderer
	observer ConnectionObserver
	logger   *logging.ChanneledLogger
	mu       sync.RWMutex
}

func NewPreviewHub(render Renderer, observer ConnectionObserver, logger *logging.ChanneledLogger) *PreviewHub {
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &PreviewHub{
		sidebarClients: make(map[string]map[*Client]bool),
		register:       make(chan *Client),
		unregister:     make(chan *Client),
		refresh:        make(chan struct{}, 1),
		done:           make(chan struct{}),
		render:         render,
		observer:       observer,
		logger:         logger,
	}
}

// Run is the hub's main loop. It returns when ctx is cancelled, closing every
// client's send channel.
func (h *PreviewHub) Run(ctx context.Context) {
	defer close(h.done)

	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			return

		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.sidebarClients[client.SidebarID]; !ok {
				h.sidebarClients[client.SidebarID] = make(map[*Client]bool)
			}
			h.sidebarClients[client.SidebarID][client] = true
			h.mu.Unlock()
			if h.observer != nil {
				h.observer.ClientConnected()
			}
			h.logger.HTTP().Debug("Preview client registered", "sidebarId", client.SidebarID)

		case client := <-h.unregister:
			h.remove(client)

		case <-h.refresh:
			h.broadcastAll(ctx)
		}
	}
}

// Register queues a client. It is a no-op once Run has returned.
func (h *PreviewHub) Register(client *Client) {
	select {
	case h.register <- client:
	case <-h.done:
	}
}

func (h *PreviewHub) Unregister(client *Client) {
	select {
	case h.unregister <- client:
	case <-h.done:
	}
}

// Refresh asks the hub to re-render every watched sidebar. Calls made while a
// refresh is already pending coalesce into it.
func (h *PreviewHub) Refresh() {
	select {
	case h.refresh <- struct{}{}:
	default:
	}
}

// ClientCount returns the number of connected clients across all sidebars.
func (h *PreviewHub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	n := 0
	for _, clients := range h.sidebarClients {
		n += len(clients)
	}
	return n
}

// Serve attaches conn to sidebarID, sends the current render and blocks
// until the connection closes.
func (h *PreviewHub) Serve(ctx context.Context, conn *websocket.Conn, sidebarID string) {
	client := &Client{
		Conn:      conn,
		SidebarID: sidebarID,
		Send:      make(chan []byte, sendBuffer),
	}

	if msg, err := h.message(ctx, sidebarID); err == nil {
		client.Send <- msg
	}

	h.Register(client)
	go h.writePump(client)
	h.readPump(client)
}

func (h *PreviewHub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	clients, ok := h.sidebarClients[client.SidebarID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.sidebarClients, client.SidebarID)
	}
	if h.observer != nil {
		h.observer.ClientDisconnected()
	}
	h.logger.HTTP().Debug("Preview client unregistered", "sidebarId", client.SidebarID)
}

func (h *PreviewHub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for id, clients := range h.sidebarClients {
		for client := range clients {
			close(client.Send)
			if h.observer != nil {
				h.observer.ClientDisconnected()
			}
		}
		delete(h.sidebarClients, id)
	}
}

func (h *PreviewHub) broadcastAll(ctx context.Context) {
	h.mu.RLock()
	ids := make([]string, 0, len(h.sidebarClients))
	for id := range h.sidebarClients {
		ids = append(ids, id)
	}
	h.mu.RUnlock()

	for _, id := range ids {
		msg, err := h.message(ctx, id)
		if err != nil {
			h.logger.HTTP().Error("Failed to marshal preview message", "sidebarId", id, "error", err)
			continue
		}

		h.mu.RLock()
		for client := range h.sidebarClients[id] {
			select {
			case client.Send <- msg:
			default:
				h.logger.HTTP().Warn("Preview client too slow, dropping frame", "sidebarId", id)
			}
		}
		h.mu.RUnlock()
	}
}

// message renders sidebarID into a frame. Render failures become error
// frames rather than errors.
func (h *PreviewHub) message(ctx context.Context, sidebarID string) ([]byte, error) {
	msg := Message{
		Type:      MessageRender,
		SidebarID: sidebarID,
		Rendered:  time.Now().UTC().Format(time.RFC3339),
	}

	html, err := h.render(ctx, sidebarID)
	if err != nil {
		msg.Type = MessageError
		msg.Error = err.Error()
	} else {
		msg.HTML = html
	}
	return json.Marshal(msg)
}

func (h *PreviewHub) readPump(client *Client) {
	defer func() {
		h.Unregister(client)
		client.Conn.Close()
	}()

	client.Conn.SetReadLimit(maxMessageSize)
	_ = client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	client.Conn.SetPongHandler(func(string) error {
		return client.Conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := client.Conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.HTTP().Warn("Preview connection closed unexpectedly", "sidebarId", client.SidebarID, "error", err)
			}
			return
		}
		// Any inbound frame is treated as a refresh request.
		h.Refresh()
	}
}

func (h *PreviewHub) writePump(client *Client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		client.Conn.Close()
	}()

	for {
		select {
		case msg, ok := <-client.Send:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = client.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := client.Conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}

		case <-ticker.C:
			_ = client.Conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := client.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
