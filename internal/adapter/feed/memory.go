package feed

import (
	"context"
	"sync"

	"github.com/Ganderlu/taskmate/internal/core/ports"
)

// MemoryBus is an in-process ChangeBus with the same coalescing
// semantics as the redis one. It backs tests and single-node runs where
// no redis is configured.
type MemoryBus struct {
	mu          sync.Mutex
	subscribers map[string]map[int]chan struct{}
	nextID      int
}

var _ ports.ChangeBus = (*MemoryBus)(nil)

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{subscribers: make(map[string]map[int]chan struct{})}
}

func (b *MemoryBus) Publish(_ context.Context, collection string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, ch := range b.subscribers[collection] {
		select {
		case ch <- struct{}{}:
		default:
		}
	}
	return nil
}

func (b *MemoryBus) Changes(_ context.Context, collection string) (<-chan struct{}, func(), error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.subscribers[collection] == nil {
		b.subscribers[collection] = make(map[int]chan struct{})
	}
	id := b.nextID
	b.nextID++
	ch := make(chan struct{}, 1)
	b.subscribers[collection][id] = ch

	stop := func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		if _, ok := b.subscribers[collection][id]; ok {
			delete(b.subscribers[collection], id)
			close(ch)
		}
	}
	return ch, stop, nil
}
