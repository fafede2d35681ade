// Package events provides a lightweight in-process pub-sub bus carrying entry
// change events from the service layer to feed subscribers.
package events

import (
	"sync"

	"github.com/Dawn-Fighter/Mandi-Counter/internal/model"
)

// Bus fans change events out to every active subscriber. Publish never
// blocks: a subscriber whose buffer is full misses the event and is expected
// to resync from the store.
type Bus struct {
	mu     sync.Mutex
	buffer int
	subs   map[int]chan model.ChangeEvent
	nextID int
	closed bool
}

// NewBus creates a bus whose subscriber channels hold up to buffer events.
func NewBus(buffer int) *Bus {
	return &Bus{
		buffer: buffer,
		subs:   make(map[int]chan model.ChangeEvent),
	}
}

// Subscribe registers a new subscriber and returns its event channel along
// with a cancel function. Cancel is idempotent and closes the channel.
func (b *Bus) Subscribe() (<-chan model.ChangeEvent, func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	ch := make(chan model.ChangeEvent, b.buffer)
	if b.closed {
		close(ch)
		return ch, func() {}
	}

	id := b.nextID
	b.nextID++
	b.subs[id] = ch

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			defer b.mu.Unlock()
			if c, ok := b.subs[id]; ok {
				delete(b.subs, id)
				close(c)
			}
		})
	}
	return ch, cancel
}

// Publish enqueues the event on every subscriber without blocking and
// returns the number of subscribers that received it.
func (b *Bus) Publish(evt model.ChangeEvent) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	delivered := 0
	for _, ch := range b.subs {
		select {
		case ch <- evt:
			delivered++
		default:
		}
	}
	return delivered
}

// Close removes all subscribers and closes their channels. Publish after
// Close is a no-op; Subscribe after Close returns a closed channel.
func (b *Bus) Close() {
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
