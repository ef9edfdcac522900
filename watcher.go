package mosaic

import (
	"time"

	"github.com/mosaicui/mosaic/internal/debug"
)

// Watcher represents a deferred event source that starts when the app
// runs. Watchers are collected during construction and started by
// App.SetRoot.
type Watcher interface {
	// Start begins the watcher goroutine. The eventQueue channel and
	// stopCh are provided by the App.
	Start(eventQueue chan<- func(), stopCh <-chan struct{})
}

// ChannelWatcher watches a channel and calls handler for each value.
type ChannelWatcher[T any] struct {
	ch      <-chan T
	handler func(T)
}

// Watch creates a channel watcher. The handler runs on the event loop
// whenever data arrives on the channel.
func Watch[T any](ch <-chan T, handler func(T)) Watcher {
	return &ChannelWatcher[T]{ch: ch, handler: handler}
}

// Start the watcher.
func (w *ChannelWatcher[T]) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		for {
			select {
			case <-stopCh:
				return
			case val, ok := <-w.ch:
				if !ok {
					return
				}
				v := val
				select {
				case eventQueue <- func() { w.handler(v) }:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// SignalWatcher bridges a Signal onto the event loop: each emitted value
// is handed to the handler on the main goroutine, and the subscription is
// released when the app stops.
type SignalWatcher[T any] struct {
	signal  *Signal[T]
	handler func(T)
}

// WatchSignal creates a watcher delivering sig's emissions to handler on
// the event loop.
func WatchSignal[T any](sig *Signal[T], handler func(T)) Watcher {
	return &SignalWatcher[T]{signal: sig, handler: handler}
}

// Start the watcher.
func (w *SignalWatcher[T]) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	ch := make(chan T, 16)
	unsubscribe := w.signal.Subscribe(func(v T) {
		select {
		case ch <- v:
		case <-stopCh:
		}
	})
	go func() {
		defer unsubscribe()
		for {
			select {
			case <-stopCh:
				return
			case v := <-ch:
				select {
				case eventQueue <- func() { w.handler(v) }:
				case <-stopCh:
					return
				}
			}
		}
	}()
}

// timerWatcher fires at a regular interval.
type timerWatcher struct {
	interval time.Duration
	handler  func()
}

// OnTimer creates a timer watcher that fires at the given interval.
// The handler runs on the event loop.
func OnTimer(interval time.Duration, handler func()) Watcher {
	return &timerWatcher{interval: interval, handler: handler}
}

// Start the watcher.
func (w *timerWatcher) Start(eventQueue chan<- func(), stopCh <-chan struct{}) {
	go func() {
		debug.Log("timerWatcher started interval=%v", w.interval)
		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-stopCh:
				return
			case <-ticker.C:
				select {
				case eventQueue <- w.handler:
				case <-stopCh:
					return
				}
			}
		}
	}()
}
