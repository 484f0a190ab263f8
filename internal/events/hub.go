package events

import "sync"

// subBuffer is how many events a subscriber may fall behind before we
// start dropping for it. SSE clients that stall should not block a
// scrape pass from publishing.
const subBuffer = 16

// Hub fans published event strings out to every live subscriber.
type Hub struct {
	mu   sync.Mutex
	subs map[chan string]struct{}
}

func NewHub() *Hub {
	return &Hub{subs: make(map[chan string]struct{})}
}

// Subscribe registers a new listener. The caller must hand the channel
// back to Unsubscribe when done; the hub never closes it on its own.
func (h *Hub) Subscribe() chan string {
	ch := make(chan string, subBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

// Unsubscribe removes the listener and closes its channel. Calling it
// with a channel that was already removed is a no-op.
func (h *Hub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	_, ok := h.subs[ch]
	delete(h.subs, ch)
	h.mu.Unlock()
	if ok {
		close(ch)
	}
}

// Publish delivers evt to every subscriber whose buffer has room.
// Slow subscribers miss events instead of stalling the publisher.
func (h *Hub) Publish(evt string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- evt:
		default:
		}
	}
}
