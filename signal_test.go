package mosaic

import "testing"

func TestSignalSubscribeEmit(t *testing.T) {
	var sig Signal[int]
	var got []int
	sig.Subscribe(func(v int) { got = append(got, v) })

	sig.Emit(1)
	sig.Emit(2)

	if len(got) != 2 || got[0] != 1 || got[1] != 2 {
		t.Errorf("received %v, want [1 2]", got)
	}
}

func TestSignalUnsubscribe(t *testing.T) {
	var sig Signal[string]
	var a, b int
	unsubA := sig.Subscribe(func(string) { a++ })
	sig.Subscribe(func(string) { b++ })

	sig.Emit("x")
	unsubA()
	sig.Emit("y")

	if a != 1 {
		t.Errorf("unsubscribed handler fired %d times, want 1", a)
	}
	if b != 2 {
		t.Errorf("remaining handler fired %d times, want 2", b)
	}
	if got := sig.Len(); got != 1 {
		t.Errorf("Len() = %d, want 1", got)
	}
}

func TestSignalUnsubscribeTwice(t *testing.T) {
	var sig Signal[int]
	unsub := sig.Subscribe(func(int) {})

	unsub()
	unsub()
	if got := sig.Len(); got != 0 {
		t.Errorf("Len() = %d, want 0", got)
	}
}

func TestSignalEmitWithoutSubscribers(t *testing.T) {
	var sig Signal[int]
	sig.Emit(42)
}
