package domain

import "sync"

// Subscription cancels a registered callback. Dispose is idempotent.
type Subscription interface {
	Dispose()
}

type subscriptionFunc struct {
	once sync.Once
	fn   func()
}

func (s *subscriptionFunc) Dispose() {
	s.once.Do(s.fn)
}

// NewSubscription wraps fn so that it runs at most once.
func NewSubscription(fn func()) Subscription {
	return &subscriptionFunc{fn: fn}
}

// Subscriptions disposes a group of subscriptions together.
type Subscriptions []Subscription

// Dispose implements Subscription.
func (s Subscriptions) Dispose() {
	for _, sub := range s {
		if sub != nil {
			sub.Dispose()
		}
	}
}

type handler[T any] struct {
	id int
	fn func(T)
}

// Emitter fans a value out to registered handlers. Handlers are invoked on
// the emitting goroutine, in registration order, with no lock held.
type Emitter[T any] struct {
	mu       sync.Mutex
	next     int
	handlers []handler[T]
}

// On registers fn.
func (e *Emitter[T]) On(fn func(T)) Subscription {
	e.mu.Lock()
	e.next++
	id := e.next
	e.handlers = append(e.handlers, handler[T]{id: id, fn: fn})
	e.mu.Unlock()

	return NewSubscription(func() {
		e.mu.Lock()
		defer e.mu.Unlock()

		for i, h := range e.handlers {
			if h.id == id {
				e.handlers = append(e.handlers[:i:i], e.handlers[i+1:]...)
				return
			}
		}
	})
}

// Emit calls every handler registered at the time of the call.
func (e *Emitter[T]) Emit(value T) {
	e.mu.Lock()
	handlers := e.handlers
	e.mu.Unlock()

	for _, h := range handlers {
		h.fn(value)
	}
}

// Clear drops every handler.
func (e *Emitter[T]) Clear() {
	e.mu.Lock()
	e.handlers = nil
	e.mu.Unlock()
}

// Len returns the number of registered handlers.
func (e *Emitter[T]) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()

	return len(e.handlers)
}
