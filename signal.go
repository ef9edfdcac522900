package mosaic

import "sync"

// Signal is a typed observer list for state that nodes render from.
// Emit notifies every live subscriber; Subscribe returns the unsubscribe
// function scoped to that one registration, so a node torn down mid-flight
// detaches exactly its own callback. The zero value is ready to use.
type Signal[T any] struct {
	mu   sync.RWMutex
	subs map[int]func(T)
	next int
}

// NewSignal creates an empty signal.
func NewSignal[T any]() *Signal[T] {
	return &Signal[T]{subs: make(map[int]func(T))}
}

// Subscribe registers fn and returns its unsubscribe function. Calling it
// more than once is harmless.
func (s *Signal[T]) Subscribe(fn func(T)) (unsubscribe func()) {
	s.mu.Lock()
	if s.subs == nil {
		s.subs = make(map[int]func(T))
	}
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

// Emit calls every subscriber with the value. Safe from any goroutine;
// subscribers that mutate nodes should do so via a watcher or BumpVersion
// so the change lands on the event loop.
func (s *Signal[T]) Emit(value T) {
	s.mu.RLock()
	fns := make([]func(T), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn(value)
	}
}

// Len returns the number of live subscribers.
func (s *Signal[T]) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.subs)
}
