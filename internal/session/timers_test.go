package session

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/claude/ironvault/internal/models"
)

func TestRestTimerRemainingAndExtend(t *testing.T) {
	clock := newTestClock()
	timer := NewRestTimer(clock.Now)

	timer.Start(60*time.Second, nil, nil)
	defer timer.Stop()

	if !timer.Active() {
		t.Fatal("timer not active after Start")
	}
	if got := timer.Remaining(); got != 60*time.Second {
		t.Errorf("remaining = %v, want 60s", got)
	}

	clock.Advance(20 * time.Second)
	if got := timer.Remaining(); got != 40*time.Second {
		t.Errorf("remaining after 20s = %v, want 40s", got)
	}

	// Extending moves the end time without resetting elapsed.
	timer.Extend(30 * time.Second)
	if got := timer.Remaining(); got != 70*time.Second {
		t.Errorf("remaining after extend = %v, want 70s", got)
	}
	if got := timer.Duration(); got != 90*time.Second {
		t.Errorf("duration after extend = %v, want 90s", got)
	}

	clock.Advance(2 * time.Minute)
	if got := timer.Remaining(); got != 0 {
		t.Errorf("overdue remaining = %v, want 0", got)
	}
}

func TestRestTimerStopIsSynchronous(t *testing.T) {
	timer := NewRestTimer(time.Now)

	var ticks atomic.Int64
	timer.Start(time.Hour, func(time.Duration) { ticks.Add(1) }, nil)
	timer.Stop()

	if timer.Active() {
		t.Error("timer active after Stop")
	}
	before := ticks.Load()
	time.Sleep(1200 * time.Millisecond)
	if after := ticks.Load(); after != before {
		t.Errorf("tick fired after Stop: %d -> %d", before, after)
	}
}

func TestRestTimerCompletion(t *testing.T) {
	clock := newTestClock()
	timer := NewRestTimer(clock.Now)

	done := make(chan struct{})
	timer.Start(0, nil, func() { close(done) })

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("completion callback never fired")
	}
	if timer.Active() {
		t.Error("timer still active after natural completion")
	}
	// Stop after completion is a no-op.
	timer.Stop()
}

func TestSetTimer(t *testing.T) {
	clock := newTestClock()
	timer := NewSetTimer(clock.Now)

	if timer.Running() || timer.Elapsed() != 0 {
		t.Fatal("fresh set timer should be idle")
	}
	timer.MarkStart()
	clock.Advance(42 * time.Second)
	if got := timer.Elapsed(); got != 42*time.Second {
		t.Errorf("elapsed = %v, want 42s", got)
	}
	timer.Reset()
	if timer.Running() || timer.Elapsed() != 0 {
		t.Error("set timer not cleared by Reset")
	}
}

func TestCountdownTicksAndCompletes(t *testing.T) {
	cd := NewCountdown()

	var ticks []int
	tickCh := make(chan int, 8)
	done := make(chan struct{})
	cd.Start(1, func(n int) { tickCh <- n }, func() { close(done) })

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("countdown never completed")
	}
	close(tickCh)
	for n := range tickCh {
		ticks = append(ticks, n)
	}
	if len(ticks) != 1 || ticks[0] != 1 {
		t.Errorf("ticks = %v, want [1]", ticks)
	}
	if cd.Active() {
		t.Error("countdown still active after completion")
	}
}

func TestCountdownStopCancels(t *testing.T) {
	cd := NewCountdown()

	var doneFired atomic.Bool
	cd.Start(CountdownSeconds, nil, func() { doneFired.Store(true) })
	cd.Stop()

	if cd.Active() {
		t.Error("countdown active after Stop")
	}
	time.Sleep(1200 * time.Millisecond)
	if doneFired.Load() {
		t.Error("completion fired after Stop")
	}
}

func TestBeginSetGatesFirstSetOnly(t *testing.T) {
	eng, _, _ := testEngine(t)
	if _, err := eng.StartFromWorkout(testWorkout()); err != nil {
		t.Fatal(err)
	}

	// First set of the exercise: the countdown gates the stopwatch.
	if err := eng.BeginSet(nil); err != nil {
		t.Fatal(err)
	}
	if eng.SetTimer().Running() {
		t.Error("set timer started before the countdown finished")
	}
	if !eng.countdown.Active() {
		t.Error("countdown not running before the first set")
	}
	eng.countdown.Stop()

	// After a logged set the stopwatch starts immediately.
	if err := eng.LogSet(0, models.LoggedSet{Weight: 80, Reps: 8}); err != nil {
		t.Fatal(err)
	}
	if err := eng.BeginSet(nil); err != nil {
		t.Fatal(err)
	}
	if eng.countdown.Active() {
		t.Error("countdown ran for a non-first set")
	}
	if !eng.SetTimer().Running() {
		t.Error("set timer not started for a non-first set")
	}
}
