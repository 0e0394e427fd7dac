// Package notifier fans transaction status changes out to live subscribers.
package notifier

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

const subscriberBuffer = 16

type Event struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}

type StatusNotifier interface {
	// Subscribe returns the event stream for id and a cancel func that
	// detaches it. The stream is closed on cancel or when the topic ends.
	Subscribe(id string) (<-chan Event, func())

	// Publish delivers status to the current subscribers of id, if any.
	// Nothing is buffered for subscribers that join later.
	Publish(id string, status string)
}

type topic struct {
	subs    map[uint64]chan Event
	closing bool
}

// Hub is the in-process StatusNotifier. A topic is removed a grace period
// after a terminal status so subscribers can drain the final event.
type Hub struct {
	mu       sync.Mutex
	topics   map[string]*topic
	nextID   uint64
	grace    time.Duration
	terminal func(status string) bool
	log      *zap.Logger
}

func NewHub(grace time.Duration, terminal func(status string) bool, log *zap.Logger) *Hub {
	if log == nil {
		log = zap.NewNop()
	}
	return &Hub{
		topics:   make(map[string]*topic),
		grace:    grace,
		terminal: terminal,
		log:      log,
	}
}

func (h *Hub) Subscribe(id string) (<-chan Event, func()) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[id]
	if !ok {
		t = &topic{subs: make(map[uint64]chan Event)}
		h.topics[id] = t
	}

	h.nextID++
	key := h.nextID
	ch := make(chan Event, subscriberBuffer)
	t.subs[key] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() { h.unsubscribe(id, t, key) })
	}
	return ch, cancel
}

func (h *Hub) Publish(id string, status string) {
	h.mu.Lock()
	defer h.mu.Unlock()

	t, ok := h.topics[id]
	if !ok {
		return
	}

	ev := Event{ID: id, Status: status}
	for key, ch := range t.subs {
		select {
		case ch <- ev:
		default:
			h.log.Warn("dropping status event for slow subscriber",
				zap.String("transaction_id", id),
				zap.Uint64("subscriber", key))
		}
	}
	h.log.Debug("status published",
		zap.String("transaction_id", id),
		zap.String("status", status),
		zap.Int("subscribers", len(t.subs)))

	if h.terminal != nil && h.terminal(status) && !t.closing {
		t.closing = true
		time.AfterFunc(h.grace, func() { h.closeTopic(id, t) })
	}
}

// Len reports the number of live topics.
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics)
}

// Close ends every topic immediately.
func (h *Hub) Close() {
	h.mu.Lock()
	topics := h.topics
	h.topics = make(map[string]*topic)
	h.mu.Unlock()

	for id, t := range topics {
		h.closeTopic(id, t)
	}
}

func (h *Hub) closeTopic(id string, t *topic) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.topics[id] == t {
		delete(h.topics, id)
	}
	for key, ch := range t.subs {
		close(ch)
		delete(t.subs, key)
	}
	h.log.Debug("status stream closed", zap.String("transaction_id", id))
}

func (h *Hub) unsubscribe(id string, t *topic, key uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch, ok := t.subs[key]
	if !ok {
		return
	}
	close(ch)
	delete(t.subs, key)

	if len(t.subs) == 0 && !t.closing && h.topics[id] == t {
		delete(h.topics, id)
	}
}
