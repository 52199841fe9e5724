package eventbus

import (
	"context"
	"sync"

	"pkt.systems/pslog"
	"pkt.systems/viu/schema"
)

// Bus is an unbounded FIFO queue of viewer events. Any number of producers may
// publish; a single consumer drains it with Next.
type Bus struct {
	mu     sync.Mutex
	queue  []schema.Event
	wake   chan struct{}
	closed bool
	log    pslog.Logger
}

// New constructs a Bus.
func New(logger pslog.Logger) *Bus {
	if logger == nil {
		logger = pslog.Ctx(context.Background())
	}
	return &Bus{
		wake: make(chan struct{}, 1),
		log:  logger,
	}
}

// Publish appends an event. It never blocks; events published after Close are dropped.
func (b *Bus) Publish(event schema.Event) {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		if b.log != nil {
			b.log.Trace("eventbus dropped", "event", event.Type.String())
		}
		return
	}
	b.queue = append(b.queue, event)
	depth := len(b.queue)
	b.mu.Unlock()
	b.signal()
	if b.log != nil {
		b.log.Trace("eventbus publish", "event", event.Type.String(), "depth", depth)
	}
}

// Next blocks until an event is available, the bus is closed and drained, or ctx is done.
func (b *Bus) Next(ctx context.Context) (schema.Event, error) {
	for {
		b.mu.Lock()
		if len(b.queue) > 0 {
			event := b.queue[0]
			b.queue[0] = schema.Event{}
			b.queue = b.queue[1:]
			if len(b.queue) == 0 {
				b.queue = nil
			}
			b.mu.Unlock()
			return event, nil
		}
		closed := b.closed
		b.mu.Unlock()
		if closed {
			return schema.Event{}, schema.ErrBusClosed
		}
		select {
		case <-ctx.Done():
			return schema.Event{}, ctx.Err()
		case <-b.wake:
		}
	}
}

// Close stops accepting events. Events already queued can still be drained.
func (b *Bus) Close() {
	if b == nil {
		return
	}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		return
	}
	b.closed = true
	b.mu.Unlock()
	b.signal()
	if b.log != nil {
		b.log.Debug("eventbus closed")
	}
}

// Len reports how many events are waiting.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}

func (b *Bus) signal() {
	select {
	case b.wake <- struct{}{}:
	default:
	}
}
