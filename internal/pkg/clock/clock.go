// Package clock renders the check-in timer: elapsed time since a start
// instant and the current wall clock, both refreshed on a fixed cadence.
package clock

import (
	"fmt"
	"sync"
	"time"
)

const (
	// ZeroElapsed and ZeroWallClock are the resting displays when no
	// check-in is active.
	ZeroElapsed   = "00:00"
	ZeroWallClock = "00:00:00"

	defaultInterval = time.Second
)

// FormatElapsed renders a duration as MM:SS. Minutes are unbounded,
// seconds are computed by integer-dividing the elapsed milliseconds.
func FormatElapsed(since time.Duration) string {
	totalSeconds := since.Milliseconds() / 1000
	if totalSeconds < 0 {
		totalSeconds = 0
	}
	minutes := totalSeconds / 60
	seconds := totalSeconds % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatWallClock renders a time as HH:MM:SS in its own location.
func FormatWallClock(t time.Time) string {
	return t.Format("15:04:05")
}

// Ticker keeps the two formatted strings current. It is re-armed whenever
// the start instant changes and fully disarmed on Close; a tick from a
// previous arming never writes into the current state.
type Ticker struct {
	mu       sync.Mutex
	now      func() time.Time
	interval time.Duration
	start    *time.Time
	elapsed  string
	current  string
	stop     chan struct{}
	closed   bool
}

// NewTicker creates a disarmed ticker with a 1 second cadence.
func NewTicker() *Ticker {
	return newTicker(time.Now, defaultInterval)
}

func newTicker(now func() time.Time, interval time.Duration) *Ticker {
	return &Ticker{
		now:      now,
		interval: interval,
		elapsed:  ZeroElapsed,
		current:  ZeroWallClock,
	}
}

// SetStart arms the ticker from the given instant, replacing any previous
// arming. A nil start disarms the ticker and resets both displays to their
// zero states.
func (t *Ticker) SetStart(start *time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}

	if t.closed || start == nil {
		t.start = nil
		t.elapsed = ZeroElapsed
		t.current = ZeroWallClock
		return
	}

	at := *start
	t.start = &at
	t.refreshLocked()

	stop := make(chan struct{})
	t.stop = stop
	go t.run(stop)
}

func (t *Ticker) run(stop chan struct{}) {
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			t.mu.Lock()
			// The arming this loop belongs to may have been replaced
			// between the tick firing and the lock being acquired.
			if t.stop != stop {
				t.mu.Unlock()
				return
			}
			t.refreshLocked()
			t.mu.Unlock()
		}
	}
}

func (t *Ticker) refreshLocked() {
	if t.start == nil {
		return
	}
	now := t.now()
	t.elapsed = FormatElapsed(now.Sub(*t.start))
	t.current = FormatWallClock(now)
}

// Snapshot returns the current elapsed and wall-clock strings.
func (t *Ticker) Snapshot() (elapsed, current string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.elapsed, t.current
}

// Close disarms the ticker permanently.
func (t *Ticker) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	if t.stop != nil {
		close(t.stop)
		t.stop = nil
	}
	t.start = nil
	t.elapsed = ZeroElapsed
	t.current = ZeroWallClock
}
