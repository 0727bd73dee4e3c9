package session

import (
	"sync"
	"time"
)

// CountdownSeconds gates the set timer before the first set of an
// exercise.
const CountdownSeconds = 5

// RestTimer counts down to an absolute end time, emitting one tick per
// second. Extending moves the end time without resetting elapsed time.
// Stop is synchronous: once it returns, no callback fires again.
type RestTimer struct {
	clock func() time.Time

	mu       sync.Mutex
	endAt    time.Time
	duration time.Duration
	stop     chan struct{}
	done     chan struct{}
}

func NewRestTimer(clock func() time.Time) *RestTimer {
	if clock == nil {
		clock = time.Now
	}
	return &RestTimer{clock: clock}
}

// Start begins a countdown of d. onTick receives the remaining time once
// per second; onDone fires once on natural completion. A running timer
// is stopped first.
func (t *RestTimer) Start(d time.Duration, onTick func(remaining time.Duration), onDone func()) {
	t.Stop()

	t.mu.Lock()
	t.endAt = t.clock().Add(d)
	t.duration = d
	stop := make(chan struct{})
	done := make(chan struct{})
	t.stop = stop
	t.done = done
	t.mu.Unlock()

	go t.run(stop, done, onTick, onDone)
}

func (t *RestTimer) run(stop, done chan struct{}, onTick func(time.Duration), onDone func()) {
	defer close(done)
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			remaining := t.Remaining()
			if remaining > 0 {
				if onTick != nil {
					onTick(remaining)
				}
				continue
			}
			t.clear(stop)
			if onDone != nil {
				onDone()
			}
			return
		}
	}
}

// Extend lengthens both the end time and the nominal duration by delta.
// Elapsed time is untouched.
func (t *RestTimer) Extend(delta time.Duration) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return
	}
	t.endAt = t.endAt.Add(delta)
	t.duration += delta
}

// Remaining returns the time left, clamped at zero.
func (t *RestTimer) Remaining() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == nil {
		return 0
	}
	r := t.endAt.Sub(t.clock())
	if r < 0 {
		return 0
	}
	return r
}

// Duration returns the nominal countdown length including extensions.
func (t *RestTimer) Duration() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.duration
}

// Active reports whether a countdown is running.
func (t *RestTimer) Active() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stop != nil
}

// Stop cancels the countdown and waits for the tick goroutine to exit.
func (t *RestTimer) Stop() {
	t.mu.Lock()
	stop, done := t.stop, t.done
	t.stop, t.done = nil, nil
	t.duration = 0
	t.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

// clear drops the timer state after natural completion, but only when it
// still owns the run identified by stop.
func (t *RestTimer) clear(stop chan struct{}) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.stop == stop {
		t.stop, t.done = nil, nil
		t.duration = 0
	}
}

// SetTimer records when the current set started and reports elapsed time
// on demand. It carries no goroutine; the display layer polls it.
type SetTimer struct {
	clock func() time.Time

	mu      sync.Mutex
	started time.Time
}

func NewSetTimer(clock func() time.Time) *SetTimer {
	if clock == nil {
		clock = time.Now
	}
	return &SetTimer{clock: clock}
}

// MarkStart stamps the start of the current set.
func (t *SetTimer) MarkStart() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = t.clock()
}

// Elapsed returns time since MarkStart, or 0 when no set is running.
func (t *SetTimer) Elapsed() time.Duration {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.started.IsZero() {
		return 0
	}
	return t.clock().Sub(t.started)
}

// Running reports whether a set start has been marked.
func (t *SetTimer) Running() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return !t.started.IsZero()
}

// Reset clears the start mark.
func (t *SetTimer) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.started = time.Time{}
}

// Countdown runs a short fixed count before the first set of an
// exercise, ticking once per second from n down to 1, then firing the
// completion callback. Stop is synchronous like RestTimer.Stop.
type Countdown struct {
	mu   sync.Mutex
	stop chan struct{}
	done chan struct{}
}

func NewCountdown() *Countdown {
	return &Countdown{}
}

// Start begins a countdown of seconds. A running countdown is stopped
// first.
func (c *Countdown) Start(seconds int, onTick func(remaining int), onDone func()) {
	c.Stop()

	c.mu.Lock()
	stop := make(chan struct{})
	done := make(chan struct{})
	c.stop = stop
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for n := seconds; n > 0; n-- {
			if onTick != nil {
				onTick(n)
			}
			select {
			case <-stop:
				return
			case <-ticker.C:
			}
		}
		c.clear(stop)
		if onDone != nil {
			onDone()
		}
	}()
}

// Active reports whether a countdown is running.
func (c *Countdown) Active() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.stop != nil
}

// Stop cancels the countdown and waits for its goroutine to exit.
func (c *Countdown) Stop() {
	c.mu.Lock()
	stop, done := c.stop, c.done
	c.stop, c.done = nil, nil
	c.mu.Unlock()
	if stop == nil {
		return
	}
	close(stop)
	<-done
}

func (c *Countdown) clear(stop chan struct{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.stop == stop {
		c.stop, c.done = nil, nil
	}
}
