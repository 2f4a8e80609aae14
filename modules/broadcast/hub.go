package broadcast

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
)

// Conn is the subset of the websocket connection the hub writes to.
type Conn interface {
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Client represents a connected WebSocket client.
type Client struct {
	ID   string
	Conn Conn
}

// Envelope is the wire frame sent to WebSocket clients.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Delivery is one outbound fan-out computed by the router. A nil
// Targets slice means every connected client; Exclude skips one
// connection id within that set.
type Delivery struct {
	Type    string
	Payload any
	Targets []string
	Exclude string
}

// Hub manages WebSocket connections and delivers router output.
// Sends are fire-and-forget: a write error is logged and the client
// simply misses the event.
type Hub struct {
	clients    map[string]*Client // connectionID -> Client
	register   chan *Client
	unregister chan *Client
	deliver    chan *Delivery
	done       chan struct{}
	mu         sync.RWMutex
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]*Client),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		deliver:    make(chan *Delivery, 256),
		done:       make(chan struct{}),
	}
}

// Run starts the hub's main loop. It accepts a context for graceful shutdown.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			log.Println("[hub] Shutting down...")
			h.closeAllClients()
			close(h.done)
			return
		case client := <-h.register:
			h.handleRegister(client)
		case client := <-h.unregister:
			h.handleUnregister(client)
		case d := <-h.deliver:
			h.handleDeliver(d)
		}
	}
}

// Wait blocks until the hub has stopped.
func (h *Hub) Wait() {
	<-h.done
}

// closeAllClients closes all connected client connections.
func (h *Hub) closeAllClients() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, client := range h.clients {
		_ = client.Conn.Close()
	}
	h.clients = make(map[string]*Client)
}

func (h *Hub) handleRegister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.clients[client.ID] = client
	log.Printf("[hub] Client %s registered", client.ID)
}

func (h *Hub) handleUnregister(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[client.ID]; ok {
		delete(h.clients, client.ID)
		log.Printf("[hub] Client %s unregistered", client.ID)
	}
}

func (h *Hub) handleDeliver(d *Delivery) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	env := Envelope{Type: d.Type}
	if d.Payload != nil {
		payload, err := json.Marshal(d.Payload)
		if err != nil {
			log.Printf("[hub] Failed to marshal %s payload: %v", d.Type, err)
			return
		}
		env.Payload = payload
	}
	data, err := json.Marshal(env)
	if err != nil {
		log.Printf("[hub] Failed to marshal %s envelope: %v", d.Type, err)
		return
	}

	if d.Targets == nil {
		for id, client := range h.clients {
			if id == d.Exclude {
				continue
			}
			h.sendToClient(client, data)
		}
		return
	}

	for _, id := range d.Targets {
		if client, ok := h.clients[id]; ok {
			h.sendToClient(client, data)
		}
	}
}

func (h *Hub) sendToClient(client *Client, data []byte) {
	if err := client.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
		log.Printf("[hub] Failed to send to client %s: %v", client.ID, err)
	}
}

// Register adds a client to the hub.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client from the hub.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

// Deliver queues an outbound fan-out.
func (h *Hub) Deliver(d *Delivery) {
	h.deliver <- d
}

// GetClient returns a client by connection id.
func (h *Hub) GetClient(connectionID string) *Client {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.clients[connectionID]
}

// ClientCount returns the total number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
