package chat

import (
	"context"
	"sync"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/creatorstack/storefront/internal/domain"
	"github.com/creatorstack/storefront/internal/eventbus"
)

// Frame is what the websocket gateway writes to connected browsers.
type Frame struct {
	Kind    string              `json:"kind"` // "message", "presence" or "catalog"
	Message *domain.ChatMessage `json:"message,omitempty"`
	Users   []domain.Identity   `json:"users,omitempty"`
	Topic   string              `json:"topic,omitempty"` // catalog frames: the bus topic that fired
}

// inbound is a frame read from a browser.
type inbound struct {
	Text string `json:"text"`
}

// Hub bridges the realtime channel to websocket clients. A single broadcast
// goroutine fans inbound channel events out to clients; per-connection write
// locks keep frames whole.
type Hub struct {
	svc    *Service
	bus    *eventbus.Bus
	events chan Frame

	mu      sync.Mutex
	clients map[*websocket.Conn]*sync.Mutex
}

func NewHub(svc *Service, bus *eventbus.Bus) *Hub {
	return &Hub{
		svc:     svc,
		bus:     bus,
		events:  make(chan Frame, 64),
		clients: make(map[*websocket.Conn]*sync.Mutex),
	}
}

// Run attaches the hub to the channel and the event bus, then pumps events
// until ctx is done.
func (h *Hub) Run(ctx context.Context) {
	h.svc.Attach(
		func(msg domain.ChatMessage) {
			h.push(Frame{Kind: "message", Message: &msg})
		},
		func(users []domain.Identity) {
			h.push(Frame{Kind: "presence", Users: users})
		},
	)
	defer h.watchCatalog()()

	for {
		select {
		case <-ctx.Done():
			return
		case frame := <-h.events:
			h.broadcast(frame)
		}
	}
}

// watchCatalog pushes an invalidation frame to connected browsers whenever a
// record mutation publishes, so open storefront tabs re-query without polling.
// The returned stop func releases both subscriptions.
func (h *Hub) watchCatalog() (stop func()) {
	created := h.bus.Subscribe(eventbus.TopicProductCreated, func(interface{}) {
		h.push(Frame{Kind: "catalog", Topic: eventbus.TopicProductCreated})
	})
	deleted := h.bus.Subscribe(eventbus.TopicProductDeleted, func(interface{}) {
		h.push(Frame{Kind: "catalog", Topic: eventbus.TopicProductDeleted})
	})
	return func() {
		created()
		deleted()
	}
}

// Serve owns one websocket connection: announces who on the channel, replays
// history, then relays the client's messages until the connection drops.
func (h *Hub) Serve(conn *websocket.Conn, who domain.Identity) {
	if err := h.svc.Enter(who); err != nil {
		zap.L().Error("chat join failed", zap.String("userId", who.ID), zap.Error(err))
		_ = conn.Close()
		return
	}

	wl := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = wl
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		h.svc.Leave(who)
		_ = conn.Close()
	}()

	if history, err := h.svc.History(); err == nil {
		for _, msg := range history {
			m := msg
			h.write(conn, wl, Frame{Kind: "message", Message: &m})
		}
	}

	for {
		var in inbound
		if err := conn.ReadJSON(&in); err != nil {
			return
		}
		if err := h.svc.Send(who, in.Text); err != nil {
			zap.L().Warn("chat send failed", zap.String("userId", who.ID), zap.Error(err))
		}
	}
}

func (h *Hub) push(frame Frame) {
	select {
	case h.events <- frame:
	default:
		zap.L().Warn("chat hub event dropped", zap.String("kind", frame.Kind))
	}
}

func (h *Hub) broadcast(frame Frame) {
	h.mu.Lock()
	conns := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, wl := range h.clients {
		conns[c] = wl
	}
	h.mu.Unlock()

	for conn, wl := range conns {
		h.write(conn, wl, frame)
	}
}

func (h *Hub) write(conn *websocket.Conn, wl *sync.Mutex, frame Frame) {
	wl.Lock()
	defer wl.Unlock()
	if err := conn.WriteJSON(frame); err != nil {
		zap.L().Debug("chat client write failed", zap.Error(err))
	}
}
