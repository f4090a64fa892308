package queue

import (
	"context"
	"sync"
)

// MemoryBus is a synchronous in-process Bus.  Handlers run inline on
// the publishing goroutine.  It backs tests and single-node
// deployments where no broker is configured.
type MemoryBus struct {
	mu     sync.RWMutex
	nextID int
	subs   map[string]map[int]Handler // category -> subscriber id -> handler
}

// NewMemoryBus returns an empty in-process bus.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subs: make(map[string]map[int]Handler)}
}

// Publish delivers the event synchronously to every subscriber of
// its category.
func (b *MemoryBus) Publish(_ context.Context, ev Event) error {
	b.mu.RLock()
	handlers := make([]Handler, 0, len(b.subs[ev.Category]))
	for _, h := range b.subs[ev.Category] {
		handlers = append(handlers, h)
	}
	b.mu.RUnlock()
	for _, h := range handlers {
		h(ev)
	}
	return nil
}

// Subscribe registers a handler for a category.
func (b *MemoryBus) Subscribe(category string, h Handler) (func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.subs[category] == nil {
		b.subs[category] = make(map[int]Handler)
	}
	id := b.nextID
	b.nextID++
	b.subs[category][id] = h
	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.subs[category], id)
	}, nil
}

// Close is a no-op for the in-process bus.
func (b *MemoryBus) Close() error { return nil }
