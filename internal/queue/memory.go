package queue

import (
	"context"
	"sync"
)

// MemoryBroker is an in-process Broker for the single-session mode and for
// tests. Delivery is synchronous; handler errors are the handler's problem,
// matching the fire-and-forget contract of store notifications.
type MemoryBroker struct {
	mu       sync.RWMutex
	closed   bool
	handlers map[string][]subscription
}

type subscription struct {
	ctx     context.Context
	handler MessageHandler
}

func NewMemoryBroker() *MemoryBroker {
	return &MemoryBroker{
		handlers: make(map[string][]subscription),
	}
}

func (b *MemoryBroker) Publish(ctx context.Context, queueName string, message []byte) error {
	b.mu.RLock()
	subs := append([]subscription(nil), b.handlers[queueName]...)
	closed := b.closed
	b.mu.RUnlock()

	if closed {
		return nil
	}

	for _, sub := range subs {
		if sub.ctx.Err() != nil {
			continue
		}
		_ = sub.handler(ctx, message)
	}

	return nil
}

func (b *MemoryBroker) Subscribe(ctx context.Context, queueName string, handler MessageHandler) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[queueName] = append(b.handlers[queueName], subscription{ctx: ctx, handler: handler})
	return nil
}

func (b *MemoryBroker) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.closed = true
	b.handlers = make(map[string][]subscription)
	return nil
}
