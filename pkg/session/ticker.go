package session

import (
	"sync"
	"time"
)

// ElapsedTicker counts session seconds. It runs only while the session is
// live and the avatar is present; pausing keeps the accumulated count.
type ElapsedTicker struct {
	mu       sync.Mutex
	interval time.Duration
	elapsed  int
	stopCh   chan struct{}
	running  bool
}

func NewElapsedTicker() *ElapsedTicker {
	return &ElapsedTicker{
		interval: time.Second,
	}
}

// Start begins ticking. Calling Start on a running ticker is a no-op, so
// repeated presence events never spawn duplicate tickers.
func (t *ElapsedTicker) Start() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.running {
		return
	}
	t.running = true
	t.stopCh = make(chan struct{})
	go t.run(t.stopCh)
}

func (t *ElapsedTicker) run(stopCh chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			t.mu.Lock()
			t.elapsed++
			t.mu.Unlock()
		case <-stopCh:
			return
		}
	}
}

// Pause stops ticking without losing the accumulated count.
func (t *ElapsedTicker) Pause() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if !t.running {
		return
	}
	t.running = false
	close(t.stopCh)
	t.stopCh = nil
}

// Stop halts the ticker for good. The count stays readable.
func (t *ElapsedTicker) Stop() {
	t.Pause()
}

// Elapsed returns the accumulated seconds.
func (t *ElapsedTicker) Elapsed() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed
}

func (t *ElapsedTicker) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.running
}
