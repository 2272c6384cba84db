package broadcast

import (
	"context"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Hub caches connected viewers by id and accepts new ones over websocket.
// It is the Directory the server's task manager delivers to.
type Hub struct {
	endpoints map[string]Endpoint
	mu        sync.RWMutex
	upgrader  websocket.Upgrader
	opts      options
}

// NewHub creates an empty hub.
func NewHub(opts ...Option) *Hub {
	return &Hub{
		endpoints: make(map[string]Endpoint),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		opts: buildOptions(opts),
	}
}

// Register adds e, replacing and closing any endpoint with the same id.
func (h *Hub) Register(e Endpoint) {
	h.mu.Lock()
	old, replaced := h.endpoints[e.ID()]
	h.endpoints[e.ID()] = e
	h.mu.Unlock()

	if replaced {
		closeEndpoint(old)
	} else {
		h.opts.metrics.RecordEndpointConnect()
	}
}

// Unregister removes and closes the endpoint with id.
func (h *Hub) Unregister(id string) bool {
	h.mu.Lock()
	e, ok := h.endpoints[id]
	delete(h.endpoints, id)
	h.mu.Unlock()

	if ok {
		h.opts.metrics.RecordEndpointDisconnect()
		closeEndpoint(e)
	}
	return ok
}

// remove drops e only if it is still the registered endpoint for its id.
func (h *Hub) remove(e Endpoint) {
	h.mu.Lock()
	current, ok := h.endpoints[e.ID()]
	if ok && current == e {
		delete(h.endpoints, e.ID())
	}
	h.mu.Unlock()

	if ok && current == e {
		h.opts.metrics.RecordEndpointDisconnect()
	}
	closeEndpoint(e)
}

// Get returns the endpoint with id.
func (h *Hub) Get(id string) (Endpoint, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	e, ok := h.endpoints[id]
	return e, ok
}

// Endpoints returns the registered endpoints sorted by id.
func (h *Hub) Endpoints() []Endpoint {
	h.mu.RLock()
	out := make([]Endpoint, 0, len(h.endpoints))
	for _, e := range h.endpoints {
		out = append(out, e)
	}
	h.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].ID() < out[j].ID() })
	return out
}

// Len returns the number of registered endpoints.
func (h *Hub) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.endpoints)
}

// ServeHTTP upgrades the request and registers the connection under the
// "id" query parameter, in the world named by "world". The connection stays
// registered until the viewer disconnects.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.opts.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	ep := &wsEndpoint{
		id:      id,
		world:   r.URL.Query().Get("world"),
		conn:    conn,
		timeout: h.opts.writeTimeout,
	}
	h.Register(ep)
	h.opts.logger.Info("endpoint connected", "id", id, "world", ep.world)

	// Viewers only receive; reading drives ping/close handling.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.remove(ep)
	h.opts.logger.Info("endpoint disconnected", "id", id)
}

// Close closes every connection.
func (h *Hub) Close() {
	h.mu.Lock()
	endpoints := h.endpoints
	h.endpoints = make(map[string]Endpoint)
	h.mu.Unlock()

	for _, e := range endpoints {
		h.opts.metrics.RecordEndpointDisconnect()
		closeEndpoint(e)
	}
}

func closeEndpoint(e Endpoint) {
	if c, ok := e.(interface{ Close() error }); ok {
		c.Close()
	}
}

type wsEndpoint struct {
	id      string
	world   string
	conn    *websocket.Conn
	timeout time.Duration

	// gorilla connections allow one concurrent writer
	mu sync.Mutex
}

func (e *wsEndpoint) ID() string    { return e.id }
func (e *wsEndpoint) World() string { return e.world }

// Send writes frame as one binary message.
func (e *wsEndpoint) Send(ctx context.Context, frame []byte) error {
	deadline := time.Now().Add(e.timeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err := e.conn.SetWriteDeadline(deadline); err != nil {
		return err
	}
	return e.conn.WriteMessage(websocket.BinaryMessage, frame)
}

func (e *wsEndpoint) Close() error {
	return e.conn.Close()
}
