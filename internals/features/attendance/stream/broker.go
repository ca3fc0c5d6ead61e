// internals/features/attendance/stream/broker.go
package stream

import (
	"log"
	"sync"
)

type subscription struct {
	ch   chan ChangeEvent
	done chan struct{}
}

// Broker fans decoded change events out to view subscriptions. Each view
// owns exactly one subscription for its lifetime; cancel detaches it so a
// torn-down view can never be delivered to again.
type Broker struct {
	mu     sync.Mutex
	subs   map[int]*subscription
	nextID int
}

func NewBroker() *Broker {
	return &Broker{subs: map[int]*subscription{}}
}

// Subscribe returns a buffered event channel and its cancel func. Cancel is
// idempotent and unblocks any in-flight delivery to this subscriber.
func (b *Broker) Subscribe(buf int) (<-chan ChangeEvent, func()) {
	if buf <= 0 {
		buf = 256
	}
	sub := &subscription{
		ch:   make(chan ChangeEvent, buf),
		done: make(chan struct{}),
	}

	b.mu.Lock()
	id := b.nextID
	b.nextID++
	b.subs[id] = sub
	b.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			b.mu.Lock()
			delete(b.subs, id)
			b.mu.Unlock()
			close(sub.done)
		})
	}
	return sub.ch, cancel
}

// Publish delivers ev to every live subscription. The buffer absorbs bursts;
// per-row ordering is preserved because there is a single publishing
// goroutine (the stream consumer). Delivery never blocks: a subscriber whose
// buffer is full has the event dropped (logged) rather than stalling every
// other view — its rows re-converge from later events and from
// store-acknowledged writes, same as after a stream reconnect.
func (b *Broker) Publish(ev ChangeEvent) {
	b.mu.Lock()
	targets := make([]*subscription, 0, len(b.subs))
	for _, sub := range b.subs {
		targets = append(targets, sub)
	}
	b.mu.Unlock()

	for _, sub := range targets {
		select {
		case sub.ch <- ev:
		case <-sub.done:
		default:
			log.Printf("[WARN] stream: subscriber buffer full, dropping event")
		}
	}
}

// SubscriberCount is used by health reporting.
func (b *Broker) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
