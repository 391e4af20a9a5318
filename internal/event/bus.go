package event

import "sync"

// Bus is an unbounded, FIFO-ordered, multi-producer single-consumer channel
// of events. Publish never blocks the producer; the pump goroutine delivers
// queued events to the consumer channel in arrival order.
//
// The single consumer draining Events() is the only entity permitted to
// mutate log and running state, which is what removes the need for locking
// on that state elsewhere.
type Bus struct {
	mu     sync.Mutex
	queue  []Event
	closed bool

	// wake is buffered (size 1) so Publish can always signal the pump
	// without blocking, even when a signal is already pending.
	wake chan struct{}
	out  chan Event
}

// NewBus creates a bus and starts its delivery goroutine.
func NewBus() *Bus {
	b := &Bus{
		wake: make(chan struct{}, 1),
		out:  make(chan Event),
	}
	go b.pump()
	return b
}

// Publish enqueues an event for delivery. It never blocks. Events published
// after Close are dropped.
func (b *Bus) Publish(ev Event) {
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.queue = append(b.queue, ev)
	b.mu.Unlock()

	b.signal()
}

// Events returns the delivery channel. It is closed after Close() once all
// previously published events have been delivered.
func (b *Bus) Events() <-chan Event {
	return b.out
}

// Close stops accepting new events. Already-queued events are still
// delivered before the Events() channel closes.
func (b *Bus) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()

	b.signal()
}

// signal nudges the pump without blocking.
func (b *Bus) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}

// pump moves events from the queue to the consumer channel in FIFO order.
func (b *Bus) pump() {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			closed := b.closed
			b.mu.Unlock()
			if closed {
				close(b.out)
				return
			}
			<-b.wake
			continue
		}
		ev := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		b.out <- ev
	}
}
