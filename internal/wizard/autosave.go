package wizard

import (
	"sync"
	"time"

	"github.com/khidmahq/khidma/internal/logger"
)

// AutoSave runs a save function on a fixed interval for the lifetime of a
// wizard session. Each tick reads the aggregate as it is at that moment, so
// a save started late still captures the latest edits.
type AutoSave struct {
	mu       sync.Mutex
	interval time.Duration
	save     func()
	stop     chan struct{}
	done     chan struct{}
}

// NewAutoSave creates a scheduler that calls save every interval once started.
func NewAutoSave(interval time.Duration, save func()) *AutoSave {
	return &AutoSave{
		interval: interval,
		save:     save,
	}
}

// Start launches the periodic save loop. Calling Start on a running scheduler
// is a no-op.
func (a *AutoSave) Start() {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.stop != nil {
		return
	}
	a.stop = make(chan struct{})
	a.done = make(chan struct{})
	go a.loop(a.stop, a.done)
	logger.Debug("Auto-save started (every %s)", a.interval)
}

// Stop halts the loop and waits for it to exit. After Stop returns no further
// saves will run. Stopping an idle scheduler is a no-op.
func (a *AutoSave) Stop() {
	a.mu.Lock()
	if a.stop == nil {
		a.mu.Unlock()
		return
	}
	stop, done := a.stop, a.done
	a.stop = nil
	a.done = nil
	a.mu.Unlock()

	close(stop)
	<-done
	logger.Debug("Auto-save stopped")
}

func (a *AutoSave) loop(stop <-chan struct{}, done chan<- struct{}) {
	defer close(done)

	ticker := time.NewTicker(a.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			a.save()
		case <-stop:
			return
		}
	}
}
