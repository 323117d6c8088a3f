package wizard

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestAutoSaveFiresPeriodically(t *testing.T) {
	var calls atomic.Int32
	a := NewAutoSave(10*time.Millisecond, func() { calls.Add(1) })
	a.Start()
	defer a.Stop()

	deadline := time.After(2 * time.Second)
	for calls.Load() < 3 {
		select {
		case <-deadline:
			t.Fatalf("only %d saves fired within deadline", calls.Load())
		case <-time.After(5 * time.Millisecond):
		}
	}
}

func TestAutoSaveStopHasNoTrailingSaves(t *testing.T) {
	var calls atomic.Int32
	a := NewAutoSave(5*time.Millisecond, func() { calls.Add(1) })
	a.Start()

	time.Sleep(30 * time.Millisecond)
	a.Stop()

	after := calls.Load()
	time.Sleep(50 * time.Millisecond)
	if calls.Load() != after {
		t.Errorf("saves fired after Stop: %d -> %d", after, calls.Load())
	}
}

func TestAutoSaveReadsLiveState(t *testing.T) {
	var mu sync.Mutex
	title := "first"
	var seen []string

	a := NewAutoSave(5*time.Millisecond, func() {
		mu.Lock()
		seen = append(seen, title)
		mu.Unlock()
	})
	a.Start()

	time.Sleep(20 * time.Millisecond)
	mu.Lock()
	title = "second"
	mu.Unlock()
	time.Sleep(20 * time.Millisecond)
	a.Stop()

	mu.Lock()
	defer mu.Unlock()
	var sawSecond bool
	for _, s := range seen {
		if s == "second" {
			sawSecond = true
		}
	}
	if !sawSecond {
		t.Error("auto-save never observed the updated state")
	}
}

func TestAutoSaveStartAndStopAreIdempotent(t *testing.T) {
	var calls atomic.Int32
	a := NewAutoSave(time.Hour, func() { calls.Add(1) })

	// Stop before Start is a no-op.
	a.Stop()

	a.Start()
	a.Start()
	a.Stop()
	a.Stop()

	if calls.Load() != 0 {
		t.Errorf("unexpected saves: %d", calls.Load())
	}
}
