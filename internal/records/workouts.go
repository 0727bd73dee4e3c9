package records

import (
	"fmt"
	"strings"

	"github.com/claude/ironvault/internal/body"
	"github.com/claude/ironvault/internal/frontmatter"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/vault"
)

// EncodeWorkout renders a workout: metadata block plus the exercise table.
func EncodeWorkout(w models.Workout) string {
	b := frontmatter.New()
	b.Set("id", w.ID)
	b.Set("name", w.Name)
	if w.Description != "" {
		b.Set("description", w.Description)
	}
	if w.EstimatedDuration > 0 {
		b.Set("estimatedDuration", float64(w.EstimatedDuration))
	}

	var sb strings.Builder
	sb.WriteString(frontmatter.Serialize(b))
	sb.WriteString("\n")
	sb.WriteString(body.BuildWorkoutExercises(w.Exercises))
	return sb.String()
}

// DecodeWorkout rebuilds a workout from its document.
func DecodeWorkout(text string) (models.Workout, bool) {
	block, bodyText := frontmatter.Parse(text)
	if block == nil || block.String("name") == "" {
		return models.Workout{}, false
	}
	return models.Workout{
		ID:                block.String("id"),
		Name:              block.String("name"),
		Description:       block.String("description"),
		EstimatedDuration: block.Int("estimatedDuration"),
		Exercises:         body.ParseWorkoutExercises(bodyText),
	}, true
}

// WorkoutRepo stores workout definitions as vault documents.
type WorkoutRepo struct {
	store vault.Store
}

func NewWorkoutRepo(store vault.Store) *WorkoutRepo {
	return &WorkoutRepo{store: store}
}

func (r *WorkoutRepo) path(id string) string {
	return DocPath(WorkoutsFolder, id)
}

func (r *WorkoutRepo) Create(w models.Workout) (models.Workout, error) {
	if w.ID == "" {
		w.ID = Slugify(w.Name)
	}
	if w.ID == "" {
		return models.Workout{}, fmt.Errorf("create workout: empty name")
	}
	if r.store.Exists(r.path(w.ID)) {
		return models.Workout{}, fmt.Errorf("create workout %q: %w", w.ID, ErrExists)
	}
	if err := r.store.EnsureFolder(WorkoutsFolder); err != nil {
		return models.Workout{}, fmt.Errorf("create workout %q: %w", w.ID, err)
	}
	if _, err := r.store.Create(r.path(w.ID), EncodeWorkout(w)); err != nil {
		return models.Workout{}, fmt.Errorf("create workout %q: %w", w.ID, err)
	}
	return w, nil
}

func (r *WorkoutRepo) Get(id string) (models.Workout, error) {
	h, ok := r.store.Resolve(r.path(id))
	if !ok {
		return models.Workout{}, fmt.Errorf("workout %q: %w", id, ErrNotFound)
	}
	text, err := r.store.CachedRead(h)
	if err != nil {
		return models.Workout{}, fmt.Errorf("workout %q: %w", id, err)
	}
	w, ok := DecodeWorkout(text)
	if !ok {
		return models.Workout{}, fmt.Errorf("workout %q: %w", id, ErrNotFound)
	}
	if w.ID == "" {
		w.ID = id
	}
	return w, nil
}

func (r *WorkoutRepo) Update(w models.Workout) error {
	h, ok := r.store.Resolve(r.path(w.ID))
	if !ok {
		return fmt.Errorf("update workout %q: %w", w.ID, ErrNotFound)
	}
	if err := r.store.Modify(h, EncodeWorkout(w)); err != nil {
		return fmt.Errorf("update workout %q: %w", w.ID, err)
	}
	return nil
}

func (r *WorkoutRepo) Delete(id string) error {
	h, ok := r.store.Resolve(r.path(id))
	if !ok {
		return fmt.Errorf("delete workout %q: %w", id, ErrNotFound)
	}
	if err := r.store.Trash(h); err != nil {
		return fmt.Errorf("delete workout %q: %w", id, err)
	}
	return nil
}

func (r *WorkoutRepo) List() []models.Workout {
	handles, err := r.store.ListChildren(WorkoutsFolder)
	if err != nil {
		return nil
	}
	var out []models.Workout
	for _, h := range handles {
		text, err := r.store.CachedRead(h)
		if err != nil {
			continue
		}
		w, ok := DecodeWorkout(text)
		if !ok {
			continue
		}
		if w.ID == "" {
			w.ID = idFromPath(h.Path)
		}
		out = append(out, w)
	}
	return out
}
