package realtime

import (
	"sync"

	"github.com/mohamedammar2729/Parking-System/internal/logger"
	"github.com/mohamedammar2729/Parking-System/internal/metrics"
)

const clientBufferSize = 32

// Client is one connected realtime consumer. The hub only writes to its
// buffered channel; the transport (websocket write pump) drains it.
type Client struct {
	id   string
	send chan Envelope

	mu     sync.Mutex
	closed bool
}

func newClient(id string) *Client {
	return &Client{
		id:   id,
		send: make(chan Envelope, clientBufferSize),
	}
}

// Messages returns the channel the transport drains.
func (c *Client) Messages() <-chan Envelope {
	return c.send
}

// trySend enqueues without blocking. A full buffer means the client is too
// slow to keep up; the frame is dropped for that client only.
func (c *Client) trySend(msg Envelope) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return false
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

func (c *Client) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.closed = true
		close(c.send)
	}
}

// Hub maps gate topics to subscribed clients and fans events out to them.
// Publishing never blocks on a slow consumer and never fails the caller.
type Hub struct {
	mu      sync.RWMutex
	clients map[*Client]struct{}
	topics  map[string]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		topics:  make(map[string]map[*Client]struct{}),
	}
}

func (h *Hub) Register(id string) *Client {
	c := newClient(id)
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	metrics.RealtimeClients.Inc()
	return c
}

func (h *Hub) Unregister(c *Client) {
	h.mu.Lock()
	if _, ok := h.clients[c]; !ok {
		h.mu.Unlock()
		return
	}
	delete(h.clients, c)
	for topic, subs := range h.topics {
		delete(subs, c)
		if len(subs) == 0 {
			delete(h.topics, topic)
		}
	}
	h.mu.Unlock()

	c.close()
	metrics.RealtimeClients.Dec()
}

// Subscribe is idempotent: subscribing twice to the same gate is a no-op.
func (h *Hub) Subscribe(c *Client, gateID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	subs, ok := h.topics[gateID]
	if !ok {
		subs = make(map[*Client]struct{})
		h.topics[gateID] = subs
	}
	subs[c] = struct{}{}
}

// Unsubscribe is idempotent: unsubscribing from a gate the client never
// subscribed to is a no-op.
func (h *Hub) Unsubscribe(c *Client, gateID string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[gateID]
	if !ok {
		return
	}
	delete(subs, c)
	if len(subs) == 0 {
		delete(h.topics, gateID)
	}
}

func (h *Hub) PublishZoneUpdate(gateIDs []string, zone any) {
	msg := Envelope{Type: MessageZoneUpdate, Payload: zone}

	// Snapshot the recipient set under the read lock, send outside it so a
	// concurrent unregister can't race the iteration.
	h.mu.RLock()
	seen := make(map[*Client]struct{})
	for _, gateID := range gateIDs {
		for c := range h.topics[gateID] {
			seen[c] = struct{}{}
		}
	}
	recipients := make([]*Client, 0, len(seen))
	for c := range seen {
		recipients = append(recipients, c)
	}
	h.mu.RUnlock()

	h.deliver(recipients, msg)
}

func (h *Hub) PublishAdminUpdate(update AdminUpdate) {
	msg := Envelope{Type: MessageAdminUpdate, Payload: update}

	h.mu.RLock()
	recipients := make([]*Client, 0, len(h.clients))
	for c := range h.clients {
		recipients = append(recipients, c)
	}
	h.mu.RUnlock()

	h.deliver(recipients, msg)
}

func (h *Hub) deliver(recipients []*Client, msg Envelope) {
	for _, c := range recipients {
		if !c.trySend(msg) {
			metrics.RealtimeDropped.Inc()
			logger.Warn("realtime client too slow, frame dropped", "client_id", c.id, "type", msg.Type)
		}
	}
}

// SubscriberCount reports how many clients follow a gate topic.
func (h *Hub) SubscriberCount(gateID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.topics[gateID])
}
