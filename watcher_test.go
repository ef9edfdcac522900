package mosaic

import (
	"testing"
	"time"
)

func TestChannelWatcher(t *testing.T) {
	queue := make(chan func(), 8)
	stop := make(chan struct{})
	defer close(stop)

	ch := make(chan int, 2)
	var got []int
	Watch(ch, func(v int) { got = append(got, v) }).Start(queue, stop)

	ch <- 7
	ch <- 8

	for len(got) < 2 {
		select {
		case fn := <-queue:
			fn()
		case <-time.After(time.Second):
			t.Fatalf("received %v, want [7 8]", got)
		}
	}
	if got[0] != 7 || got[1] != 8 {
		t.Errorf("received %v, want [7 8]", got)
	}
}

func TestSignalWatcher(t *testing.T) {
	queue := make(chan func(), 8)
	stop := make(chan struct{})

	var sig Signal[string]
	var got string
	WatchSignal(&sig, func(v string) { got = v }).Start(queue, stop)

	if sig.Len() != 1 {
		t.Fatal("watcher did not subscribe")
	}
	sig.Emit("update")

	select {
	case fn := <-queue:
		fn()
	case <-time.After(time.Second):
		t.Fatal("no handler queued after Emit")
	}
	if got != "update" {
		t.Errorf("handler received %q, want %q", got, "update")
	}

	// Stopping releases the subscription.
	close(stop)
	deadline := time.Now().Add(time.Second)
	for sig.Len() != 0 {
		if time.Now().After(deadline) {
			t.Fatal("subscription not released after stop")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestOnTimer(t *testing.T) {
	queue := make(chan func(), 8)
	stop := make(chan struct{})
	defer close(stop)

	fired := 0
	OnTimer(5*time.Millisecond, func() { fired++ }).Start(queue, stop)

	select {
	case fn := <-queue:
		fn()
	case <-time.After(time.Second):
		t.Fatal("timer never fired")
	}
	if fired != 1 {
		t.Errorf("handler ran %d times, want 1", fired)
	}
}
