package notify

import (
	"sync"
	"time"
)

// PurchaseEvent is what subscribers receive when a purchase settles.
type PurchaseEvent struct {
	OwnerID    string    `json:"owner_id"`
	Name       string    `json:"name,omitempty"`
	Item       string    `json:"item"`
	Qty        int       `json:"qty"`
	Total      int64     `json:"total"`
	OccurredAt time.Time `json:"occurred_at"`
}

const subscriberBuffer = 16

// Broadcaster fans purchase events out to subscribers. The underlying
// channel set is created lazily on first use through a single acquisition
// point and lives until Close; Publish after Close is a no-op.
type Broadcaster struct {
	mu     sync.Mutex
	subs   map[int]chan PurchaseEvent
	nextID int
	closed bool
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{}
}

// acquire is the only place the subscriber set is created.
func (b *Broadcaster) acquire() map[int]chan PurchaseEvent {
	if b.subs == nil {
		b.subs = make(map[int]chan PurchaseEvent)
	}

	return b.subs
}

// Subscribe returns a receive channel and a cancel function. The channel is
// closed on cancel or when the broadcaster shuts down.
func (b *Broadcaster) Subscribe() (<-chan PurchaseEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan PurchaseEvent, subscriberBuffer)

	if b.closed {
		close(ch)
		return ch, func() {}
	}

	subs := b.acquire()
	id := b.nextID
	b.nextID++
	subs[id] = ch

	cancel := func() {
		b.mu.Lock()
		defer b.mu.Unlock()

		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
	}

	return ch, cancel
}

// Publish delivers the event to every subscriber. Slow subscribers with a
// full buffer are skipped rather than blocking the purchase flow.
func (b *Broadcaster) Publish(ev PurchaseEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	for _, ch := range b.acquire() {
		select {
		case ch <- ev:
		default:
		}
	}
}

// Close shuts the broadcaster down and closes all subscriber channels.
// Safe to call more than once.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return
	}

	b.closed = true

	for id, ch := range b.subs {
		delete(b.subs, id)
		close(ch)
	}
}
