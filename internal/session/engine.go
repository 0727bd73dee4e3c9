// Package session owns the active training session: in-memory mutation,
// a coalescing single-flight save queue with existence-race recovery,
// lifecycle transitions, and the rest/set/duration timers.
package session

import (
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/records"
	"github.com/claude/ironvault/internal/vault"
)

var (
	ErrNoSession       = errors.New("no active session")
	ErrSessionRunning  = errors.New("a session is already running")
	ErrBadTransition   = errors.New("illegal status transition")
	ErrNoCompletedSets = errors.New("session has no completed sets")
	ErrBadIndex        = errors.New("index out of range")
	ErrInvalidSet      = errors.New("invalid set")
)

// Engine is the single owner of the active session document. No other
// component reads or writes it. All mutation goes through engine
// methods; the document on disk eventually reflects the last in-memory
// state, with rapid edits coalesced into one trailing save.
type Engine struct {
	store    vault.Store
	sessions *records.SessionRepo
	log      *slog.Logger
	clock    func() time.Time

	mu            sync.Mutex
	current       *models.Session
	currentIdx    int
	dirty         bool
	saverRunning  bool
	firstSetSaved bool

	// saveMu serializes writes to the session document: at most one
	// in-flight save, and awaited saves queue behind it.
	saveMu sync.Mutex

	rest      *RestTimer
	setTimer  *SetTimer
	countdown *Countdown
}

func NewEngine(store vault.Store, log *slog.Logger) *Engine {
	return NewEngineWithClock(store, log, time.Now)
}

// NewEngineWithClock injects the time source, for tests.
func NewEngineWithClock(store vault.Store, log *slog.Logger, clock func() time.Time) *Engine {
	if log == nil {
		log = slog.Default()
	}
	return &Engine{
		store:     store,
		sessions:  records.NewSessionRepo(store),
		log:       log,
		clock:     clock,
		rest:      NewRestTimer(clock),
		setTimer:  NewSetTimer(clock),
		countdown: NewCountdown(),
	}
}

// StartFromWorkout opens a fresh active session seeded with the
// workout's prescription and persists the initial document before
// returning.
func (e *Engine) StartFromWorkout(w models.Workout) (models.Session, error) {
	now := e.clock()
	s := models.Session{
		ID:            records.SessionID(now, w.Name),
		Workout:       w.ID,
		WorkoutSource: models.SourceCustom,
		Status:        models.StatusActive,
		StartedAt:     now,
		Exercises:     make([]models.SessionExercise, 0, len(w.Exercises)),
	}
	for _, ref := range w.Exercises {
		s.Exercises = append(s.Exercises, models.SessionExercise{
			Exercise:      ref.Exercise,
			Source:        ref.Source,
			TargetSets:    ref.TargetSets,
			TargetRepsMin: ref.TargetRepsMin,
			TargetRepsMax: ref.TargetRepsMax,
			RestSeconds:   ref.RestSeconds,
		})
	}
	return e.start(s)
}

// StartEmpty opens a fresh active session with no workout behind it.
func (e *Engine) StartEmpty() (models.Session, error) {
	now := e.clock()
	return e.start(models.Session{
		ID:        records.SessionID(now, ""),
		Status:    models.StatusActive,
		StartedAt: now,
	})
}

func (e *Engine) start(s models.Session) (models.Session, error) {
	e.mu.Lock()
	if e.current != nil {
		e.mu.Unlock()
		return models.Session{}, ErrSessionRunning
	}
	e.current = &s
	e.currentIdx = 0
	e.dirty = false
	e.firstSetSaved = false
	e.mu.Unlock()

	if err := e.confirmSave(); err != nil {
		e.mu.Lock()
		e.current = nil
		e.mu.Unlock()
		return models.Session{}, err
	}
	e.log.Info("session started", "id", s.ID, "workout", s.Workout)
	return cloneSession(&s), nil
}

// Adopt resumes an existing active or paused session, typically after a
// process restart.
func (e *Engine) Adopt(s models.Session) error {
	if s.Status.IsTerminal() {
		return fmt.Errorf("adopt session %q: %w", s.ID, ErrBadTransition)
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current != nil {
		return ErrSessionRunning
	}
	clone := cloneSession(&s)
	e.current = &clone
	e.currentIdx = 0
	e.dirty = false
	e.firstSetSaved = clone.CompletedSets() > 0
	return nil
}

// Current returns a copy of the session under the engine's control.
func (e *Engine) Current() (models.Session, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return models.Session{}, false
	}
	return cloneSession(e.current), true
}

// SelectExercise moves the cursor the set timers act on.
func (e *Engine) SelectExercise(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	if i < 0 || i >= len(e.current.Exercises) {
		return fmt.Errorf("select exercise %d: %w", i, ErrBadIndex)
	}
	e.currentIdx = i
	return nil
}

// CurrentExercise returns the cursor position.
func (e *Engine) CurrentExercise() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.currentIdx
}

// AddExercise appends an exercise to the session and enqueues a save.
func (e *Engine) AddExercise(ref models.ExerciseRef) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	e.current.Exercises = append(e.current.Exercises, models.SessionExercise{
		Exercise:      ref.Exercise,
		Source:        ref.Source,
		TargetSets:    ref.TargetSets,
		TargetRepsMin: ref.TargetRepsMin,
		TargetRepsMax: ref.TargetRepsMax,
		RestSeconds:   ref.RestSeconds,
	})
	e.scheduleSave()
	return nil
}

// RemoveExercise drops the exercise at i, sets included.
func (e *Engine) RemoveExercise(i int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	if i < 0 || i >= len(e.current.Exercises) {
		return fmt.Errorf("remove exercise %d: %w", i, ErrBadIndex)
	}
	e.current.Exercises = append(e.current.Exercises[:i], e.current.Exercises[i+1:]...)
	if e.currentIdx >= len(e.current.Exercises) && e.currentIdx > 0 {
		e.currentIdx--
	}
	e.scheduleSave()
	return nil
}

// ReorderExercises moves the exercise at from to position to.
func (e *Engine) ReorderExercises(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	n := len(e.current.Exercises)
	if from < 0 || from >= n || to < 0 || to >= n {
		return fmt.Errorf("reorder %d -> %d: %w", from, to, ErrBadIndex)
	}
	if from == to {
		return nil
	}
	exs := e.current.Exercises
	moved := exs[from]
	exs = append(exs[:from], exs[from+1:]...)
	exs = append(exs[:to], append([]models.SessionExercise{moved}, exs[to:]...)...)
	e.current.Exercises = exs
	e.scheduleSave()
	return nil
}

// LogSet records a completed set and returns only after it reached
// storage. Weight 0 means bodyweight; negative weight and non-positive
// reps are rejected before any state changes.
func (e *Engine) LogSet(exIdx int, set models.LoggedSet) error {
	if set.Weight < 0 || set.Reps <= 0 {
		return fmt.Errorf("log set (%.1f kg × %d): %w", set.Weight, set.Reps, ErrInvalidSet)
	}
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if exIdx < 0 || exIdx >= len(e.current.Exercises) {
		e.mu.Unlock()
		return fmt.Errorf("log set for exercise %d: %w", exIdx, ErrBadIndex)
	}
	set.Completed = true
	if set.Timestamp.IsZero() {
		set.Timestamp = e.clock()
	}
	ex := &e.current.Exercises[exIdx]
	ex.Sets = append(ex.Sets, set)
	e.mu.Unlock()

	e.setTimer.Reset()
	if err := e.confirmSave(); err != nil {
		return err
	}
	e.mu.Lock()
	e.firstSetSaved = true
	e.mu.Unlock()
	return nil
}

// EditSet replaces a logged set in place and confirms the write.
func (e *Engine) EditSet(exIdx, setIdx int, set models.LoggedSet) error {
	if set.Weight < 0 || set.Reps <= 0 {
		return fmt.Errorf("edit set (%.1f kg × %d): %w", set.Weight, set.Reps, ErrInvalidSet)
	}
	e.mu.Lock()
	if err := e.checkSetIndex(exIdx, setIdx); err != nil {
		e.mu.Unlock()
		return err
	}
	old := e.current.Exercises[exIdx].Sets[setIdx]
	set.Completed = old.Completed
	if set.Timestamp.IsZero() {
		set.Timestamp = old.Timestamp
	}
	e.current.Exercises[exIdx].Sets[setIdx] = set
	e.mu.Unlock()
	return e.confirmSave()
}

// DeleteSet removes a logged set and confirms the write.
func (e *Engine) DeleteSet(exIdx, setIdx int) error {
	e.mu.Lock()
	if err := e.checkSetIndex(exIdx, setIdx); err != nil {
		e.mu.Unlock()
		return err
	}
	sets := e.current.Exercises[exIdx].Sets
	e.current.Exercises[exIdx].Sets = append(sets[:setIdx], sets[setIdx+1:]...)
	e.mu.Unlock()
	return e.confirmSave()
}

// checkSetIndex validates both indices. Caller holds mu.
func (e *Engine) checkSetIndex(exIdx, setIdx int) error {
	if e.current == nil {
		return ErrNoSession
	}
	if exIdx < 0 || exIdx >= len(e.current.Exercises) {
		return fmt.Errorf("exercise %d: %w", exIdx, ErrBadIndex)
	}
	if setIdx < 0 || setIdx >= len(e.current.Exercises[exIdx].Sets) {
		return fmt.Errorf("set %d of exercise %d: %w", setIdx, exIdx, ErrBadIndex)
	}
	return nil
}

// SetExerciseRPE stores the per-exercise rating and enqueues a save.
func (e *Engine) SetExerciseRPE(exIdx int, rpe float64) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	if exIdx < 0 || exIdx >= len(e.current.Exercises) {
		return fmt.Errorf("exercise %d: %w", exIdx, ErrBadIndex)
	}
	e.current.Exercises[exIdx].RPE = &rpe
	e.scheduleSave()
	return nil
}

// SetMuscleEngagement stores the engagement answer and enqueues a save.
func (e *Engine) SetMuscleEngagement(exIdx int, eng models.MuscleEngagement) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	if exIdx < 0 || exIdx >= len(e.current.Exercises) {
		return fmt.Errorf("exercise %d: %w", exIdx, ErrBadIndex)
	}
	e.current.Exercises[exIdx].Engagement = eng
	e.scheduleSave()
	return nil
}

// SetNotes replaces the session notes and enqueues a save.
func (e *Engine) SetNotes(notes string) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	e.current.Notes = notes
	e.scheduleSave()
	return nil
}

// Pause suspends the active session.
func (e *Engine) Pause() error {
	return e.transition(models.StatusPaused)
}

// Resume reactivates a paused session.
func (e *Engine) Resume() error {
	return e.transition(models.StatusActive)
}

func (e *Engine) transition(to models.SessionStatus) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return ErrNoSession
	}
	if !models.IsValidTransition(e.current.Status, to) {
		return fmt.Errorf("%s -> %s: %w", e.current.Status, to, ErrBadTransition)
	}
	e.current.Status = to
	e.scheduleSave()
	return nil
}

// FinalizeActive completes the session: stamps the end time, persists
// to the same document identity, and releases the engine. A session
// with zero completed sets cannot be finished, only discarded.
func (e *Engine) FinalizeActive() (models.Session, error) {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return models.Session{}, ErrNoSession
	}
	if e.current.CompletedSets() == 0 {
		e.mu.Unlock()
		return models.Session{}, ErrNoCompletedSets
	}
	if !models.IsValidTransition(e.current.Status, models.StatusCompleted) {
		from := e.current.Status
		e.mu.Unlock()
		return models.Session{}, fmt.Errorf("%s -> completed: %w", from, ErrBadTransition)
	}
	prev := e.current.Status
	e.current.Status = models.StatusCompleted
	e.current.EndedAt = e.clock()
	e.dirty = false // the final write supersedes anything pending
	snap := cloneSession(e.current)
	e.mu.Unlock()

	e.stopTimers()

	e.saveMu.Lock()
	err := e.persist(snap)
	e.saveMu.Unlock()
	if err != nil {
		e.mu.Lock()
		if e.current != nil {
			e.current.Status = prev
			e.current.EndedAt = time.Time{}
		}
		e.mu.Unlock()
		return models.Session{}, err
	}

	e.mu.Lock()
	e.current = nil
	e.firstSetSaved = false
	e.mu.Unlock()
	e.log.Info("session completed", "id", snap.ID, "sets", snap.CompletedSets())
	return snap, nil
}

// Discard abandons the session. Pending saves are cleared first so a
// late enqueue cannot resurrect the document; an already-in-flight
// write is allowed to complete and its output is trashed with the rest.
func (e *Engine) Discard() error {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	if !models.IsValidTransition(e.current.Status, models.StatusDiscarded) {
		from := e.current.Status
		e.mu.Unlock()
		return fmt.Errorf("%s -> discarded: %w", from, ErrBadTransition)
	}
	id := e.current.ID
	e.dirty = false
	e.current = nil
	e.firstSetSaved = false
	e.mu.Unlock()

	e.stopTimers()

	// Wait out any in-flight save, then best-effort cleanup.
	e.saveMu.Lock()
	defer e.saveMu.Unlock()
	if h, ok := e.store.Resolve(e.sessions.Path(id)); ok {
		if err := e.store.Trash(h); err != nil {
			e.log.Warn("discard cleanup failed", "id", id, "error", err)
		}
	}
	e.log.Info("session discarded", "id", id)
	return nil
}

// Duration reports elapsed wall-clock time since session start, or 0
// until the first set has been persisted.
func (e *Engine) Duration() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil || !e.firstSetSaved {
		return 0
	}
	return e.clock().Sub(e.current.StartedAt)
}

// RestTimer exposes the rest countdown.
func (e *Engine) RestTimer() *RestTimer { return e.rest }

// SetTimer exposes the per-set stopwatch.
func (e *Engine) SetTimer() *SetTimer { return e.setTimer }

// Countdown exposes the first-set countdown.
func (e *Engine) Countdown() *Countdown { return e.countdown }

// BeginSet starts timing the next set of the current exercise. The
// first set of an exercise is gated behind a short countdown; later
// sets start immediately.
func (e *Engine) BeginSet(onCountdownTick func(remaining int)) error {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	first := e.currentIdx < len(e.current.Exercises) &&
		len(e.current.Exercises[e.currentIdx].Sets) == 0
	e.mu.Unlock()

	if first {
		e.countdown.Start(CountdownSeconds, onCountdownTick, e.setTimer.MarkStart)
		return nil
	}
	e.setTimer.MarkStart()
	return nil
}

// StartRest begins the rest countdown after a logged set.
func (e *Engine) StartRest(d time.Duration, onTick func(remaining time.Duration), onDone func()) error {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	e.mu.Unlock()
	e.rest.Start(d, onTick, onDone)
	return nil
}

// ExtendRest adds delta to the running rest countdown.
func (e *Engine) ExtendRest(delta time.Duration) {
	e.rest.Extend(delta)
}

func (e *Engine) stopTimers() {
	e.rest.Stop()
	e.countdown.Stop()
	e.setTimer.Reset()
}

// Close stops all timers. Any in-flight save finishes on its own
// goroutine.
func (e *Engine) Close() {
	e.stopTimers()
}

// scheduleSave marks the session dirty and ensures a saver goroutine is
// draining. Caller holds mu.
func (e *Engine) scheduleSave() {
	e.dirty = true
	if e.saverRunning {
		return
	}
	e.saverRunning = true
	go e.saverLoop()
}

// saverLoop drains dirty state: each pass snapshots the latest session
// and writes it, so rapid edits collapse into one trailing save.
func (e *Engine) saverLoop() {
	for {
		e.mu.Lock()
		if !e.dirty || e.current == nil {
			e.saverRunning = false
			e.mu.Unlock()
			return
		}
		e.dirty = false
		snap := cloneSession(e.current)
		e.mu.Unlock()

		e.saveMu.Lock()
		err := e.persist(snap)
		e.saveMu.Unlock()
		if err != nil {
			e.log.Error("session save failed", "id", snap.ID, "error", err)
			e.mu.Lock()
			e.dirty = true // keep the edit; a later enqueue retries
			e.saverRunning = false
			e.mu.Unlock()
			return
		}
	}
}

// confirmSave persists the latest state and returns once it is on
// disk, queueing behind any in-flight background save.
func (e *Engine) confirmSave() error {
	e.mu.Lock()
	if e.current == nil {
		e.mu.Unlock()
		return ErrNoSession
	}
	e.dirty = false
	snap := cloneSession(e.current)
	e.mu.Unlock()

	e.saveMu.Lock()
	defer e.saveMu.Unlock()
	return e.persist(snap)
}

// persist writes one snapshot through the fallback ladder: modify when
// the handle resolves, otherwise create; a create that loses the race
// re-resolves and modifies; a raw path write is the last resort. The
// ladder exists because the store's cache can be stale relative to a
// write this process just completed.
func (e *Engine) persist(s models.Session) error {
	path := e.sessions.Path(s.ID)
	text := records.EncodeSession(s)
	if err := e.store.EnsureFolder(records.SessionsFolder); err != nil {
		return fmt.Errorf("persist session %s: %w", s.ID, err)
	}

	if h, ok := e.store.Resolve(path); ok {
		if err := e.store.Modify(h, text); err == nil {
			return nil
		}
	} else if _, err := e.store.Create(path, text); err == nil {
		return nil
	} else if errors.Is(err, vault.ErrExists) {
		time.Sleep(10 * time.Millisecond)
		if h, ok := e.store.Resolve(path); ok {
			if err := e.store.Modify(h, text); err == nil {
				return nil
			}
		}
	}

	if err := e.store.WriteRaw(path, text); err != nil {
		return fmt.Errorf("persist session %s: %w", s.ID, err)
	}
	return nil
}

func cloneSession(s *models.Session) models.Session {
	out := *s
	out.Exercises = make([]models.SessionExercise, len(s.Exercises))
	copy(out.Exercises, s.Exercises)
	for i := range out.Exercises {
		sets := make([]models.LoggedSet, len(out.Exercises[i].Sets))
		copy(sets, s.Exercises[i].Sets)
		out.Exercises[i].Sets = sets
	}
	if s.Review != nil {
		r := *s.Review
		r.Answers = append([]models.QuestionAnswer(nil), s.Review.Answers...)
		out.Review = &r
	}
	return out
}
