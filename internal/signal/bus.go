// Package signal carries access-change events between the decision path and
// the per-user session schedulers. It is an explicit in-process channel
// scoped to the application, not a process-wide event bus.
package signal

import "sync"

// AccessChanged is published after a decision alters a user's lesson access.
type AccessChanged struct {
	UserID   string
	LessonID string
}

type Bus struct {
	mu   sync.Mutex
	next int
	subs map[int]chan AccessChanged
}

func NewBus() *Bus {
	return &Bus{subs: make(map[int]chan AccessChanged)}
}

// Subscribe registers a listener and returns its channel plus an unsubscribe
// function. Unsubscribing closes the channel; it is safe to call once.
func (b *Bus) Subscribe(buffer int) (<-chan AccessChanged, func()) {
	ch := make(chan AccessChanged, buffer)

	b.mu.Lock()
	id := b.next
	b.next++
	b.subs[id] = ch
	b.mu.Unlock()

	unsubscribe := func() {
		b.mu.Lock()
		if sub, ok := b.subs[id]; ok {
			delete(b.subs, id)
			close(sub)
		}
		b.mu.Unlock()
	}

	return ch, unsubscribe
}

// Publish delivers the event to every subscriber. A subscriber with a full
// buffer is skipped rather than blocking the publisher; schedulers coalesce
// triggers anyway, so a dropped duplicate costs nothing.
func (b *Bus) Publish(ev AccessChanged) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
}
