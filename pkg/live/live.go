// Package live pushes "collection changed" notifications to connected clients so they
// can re-fetch their lists.
package live

import (
	"context"
	"encoding/json"
	"sync"
	"time"
)

const Channel = "tripnest:live"

type Event struct {
	Collection string    `json:"collection"`
	Action     string    `json:"action"`
	ID         string    `json:"id,omitempty"`
	At         time.Time `json:"at"`
}

func NewEvent(collection, action, id string) Event {
	return Event{Collection: collection, Action: action, ID: id, At: time.Now().UTC()}
}

// Publisher announces a change. Delivery is best effort.
type Publisher interface {
	Publish(ctx context.Context, ev Event) error
}

// Hub fans events out to local subscribers grouped by collection.
type Hub struct {
	mu   sync.Mutex
	subs map[string]map[chan Event]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[string]map[chan Event]struct{})}
}

// Subscribe registers a buffered receiver for one collection. The returned func
// unregisters and closes it.
func (h *Hub) Subscribe(collection string) (<-chan Event, func()) {
	ch := make(chan Event, 16)

	h.mu.Lock()
	if h.subs[collection] == nil {
		h.subs[collection] = make(map[chan Event]struct{})
	}
	h.subs[collection][ch] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs[collection], ch)
			if len(h.subs[collection]) == 0 {
				delete(h.subs, collection)
			}
			h.mu.Unlock()
			close(ch)
		})
	}
}

// Broadcast delivers ev to every subscriber of its collection. Slow subscribers
// drop the event instead of blocking the hub.
func (h *Hub) Broadcast(ev Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs[ev.Collection] {
		select {
		case ch <- ev:
		default:
		}
	}
}

func (h *Hub) Subscribers(collection string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[collection])
}

// Local publishes straight into a hub in the same process.
type Local struct {
	Hub *Hub
}

func (l Local) Publish(_ context.Context, ev Event) error {
	l.Hub.Broadcast(ev)
	return nil
}

// Noop discards events.
type Noop struct{}

func (Noop) Publish(context.Context, Event) error { return nil }

func encode(ev Event) ([]byte, error) {
	return json.Marshal(ev)
}

func decode(payload string) (Event, error) {
	var ev Event
	err := json.Unmarshal([]byte(payload), &ev)
	return ev, err
}
