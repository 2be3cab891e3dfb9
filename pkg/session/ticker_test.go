package session

import (
	"testing"
	"time"
)

func TestTickerStartIsIdempotent(t *testing.T) {
	tk := NewElapsedTicker()
	tk.interval = 10 * time.Millisecond
	defer tk.Stop()

	// Repeated Start calls must not spawn duplicate tickers
	tk.Start()
	tk.Start()
	tk.Start()

	time.Sleep(55 * time.Millisecond)
	tk.Pause()

	elapsed := tk.Elapsed()
	if elapsed < 3 || elapsed > 7 {
		t.Errorf("elapsed = %d, want roughly 5 (single ticker)", elapsed)
	}
}

func TestTickerPauseKeepsCount(t *testing.T) {
	tk := NewElapsedTicker()
	tk.interval = 5 * time.Millisecond
	defer tk.Stop()

	tk.Start()
	waitFor(t, time.Second, func() bool { return tk.Elapsed() >= 2 })
	tk.Pause()

	frozen := tk.Elapsed()
	time.Sleep(30 * time.Millisecond)
	if tk.Elapsed() != frozen {
		t.Errorf("elapsed advanced while paused: %d != %d", tk.Elapsed(), frozen)
	}

	tk.Start()
	waitFor(t, time.Second, func() bool { return tk.Elapsed() > frozen })
}

func TestTickerPauseWithoutStart(t *testing.T) {
	tk := NewElapsedTicker()
	tk.Pause()
	tk.Stop()
	if tk.Elapsed() != 0 {
		t.Errorf("elapsed = %d, want 0", tk.Elapsed())
	}
}
