package records

import (
	"fmt"
	"strings"

	"github.com/claude/ironvault/internal/frontmatter"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/vault"
)

// EncodeExercise renders an exercise as a document. Notes become the free
// body text after the metadata block.
func EncodeExercise(ex models.Exercise) string {
	b := frontmatter.New()
	b.Set("id", ex.ID)
	b.Set("name", ex.Name)
	if ex.Category != "" {
		b.Set("category", ex.Category)
	}
	if ex.Equipment != "" {
		b.Set("equipment", ex.Equipment)
	}
	if len(ex.MuscleGroups) > 0 {
		groups := make([]any, len(ex.MuscleGroups))
		for i, g := range ex.MuscleGroups {
			groups[i] = g
		}
		b.Set("muscleGroups", groups)
	}
	if ex.DefaultWeight != nil {
		b.Set("defaultWeight", *ex.DefaultWeight)
	}
	if ex.WeightIncrement != nil {
		b.Set("weightIncrement", *ex.WeightIncrement)
	}
	if ex.ImageURL != "" {
		b.Set("image", ex.ImageURL)
	}
	if ex.SecondImageURL != "" {
		b.Set("imageSecondary", ex.SecondImageURL)
	}

	var sb strings.Builder
	sb.WriteString(frontmatter.Serialize(b))
	if ex.Notes != "" {
		sb.WriteString("\n")
		sb.WriteString(ex.Notes)
		sb.WriteString("\n")
	}
	return sb.String()
}

// DecodeExercise rebuilds an exercise from its document. ok is false when
// the metadata block is missing or carries no name.
func DecodeExercise(text string) (models.Exercise, bool) {
	block, bodyText := frontmatter.Parse(text)
	if block == nil || block.String("name") == "" {
		return models.Exercise{}, false
	}
	ex := models.Exercise{
		ID:             block.String("id"),
		Name:           block.String("name"),
		Category:       block.String("category"),
		Equipment:      block.String("equipment"),
		MuscleGroups:   block.Strings("muscleGroups"),
		ImageURL:       block.String("image"),
		SecondImageURL: block.String("imageSecondary"),
		Notes:          strings.TrimSpace(bodyText),
		Source:         models.SourceCustom,
	}
	if v, ok := block.Get("defaultWeight"); ok {
		if f, ok := v.(float64); ok {
			ex.DefaultWeight = &f
		}
	}
	if v, ok := block.Get("weightIncrement"); ok {
		if f, ok := v.(float64); ok {
			ex.WeightIncrement = &f
		}
	}
	return ex, true
}

// ExerciseRepo stores custom exercise definitions as vault documents.
type ExerciseRepo struct {
	store vault.Store
}

func NewExerciseRepo(store vault.Store) *ExerciseRepo {
	return &ExerciseRepo{store: store}
}

func (r *ExerciseRepo) path(id string) string {
	return DocPath(ExercisesFolder, id)
}

// Create writes a new exercise. An empty ID is derived from the name.
func (r *ExerciseRepo) Create(ex models.Exercise) (models.Exercise, error) {
	if ex.ID == "" {
		ex.ID = Slugify(ex.Name)
	}
	if ex.ID == "" {
		return models.Exercise{}, fmt.Errorf("create exercise: empty name")
	}
	ex.Source = models.SourceCustom
	if r.store.Exists(r.path(ex.ID)) {
		return models.Exercise{}, fmt.Errorf("create exercise %q: %w", ex.ID, ErrExists)
	}
	if err := r.store.EnsureFolder(ExercisesFolder); err != nil {
		return models.Exercise{}, fmt.Errorf("create exercise %q: %w", ex.ID, err)
	}
	if _, err := r.store.Create(r.path(ex.ID), EncodeExercise(ex)); err != nil {
		return models.Exercise{}, fmt.Errorf("create exercise %q: %w", ex.ID, err)
	}
	return ex, nil
}

func (r *ExerciseRepo) Get(id string) (models.Exercise, error) {
	h, ok := r.store.Resolve(r.path(id))
	if !ok {
		return models.Exercise{}, fmt.Errorf("exercise %q: %w", id, ErrNotFound)
	}
	text, err := r.store.CachedRead(h)
	if err != nil {
		return models.Exercise{}, fmt.Errorf("exercise %q: %w", id, err)
	}
	ex, ok := DecodeExercise(text)
	if !ok {
		return models.Exercise{}, fmt.Errorf("exercise %q: %w", id, ErrNotFound)
	}
	if ex.ID == "" {
		ex.ID = id
	}
	return ex, nil
}

func (r *ExerciseRepo) Update(ex models.Exercise) error {
	h, ok := r.store.Resolve(r.path(ex.ID))
	if !ok {
		return fmt.Errorf("update exercise %q: %w", ex.ID, ErrNotFound)
	}
	ex.Source = models.SourceCustom
	if err := r.store.Modify(h, EncodeExercise(ex)); err != nil {
		return fmt.Errorf("update exercise %q: %w", ex.ID, err)
	}
	return nil
}

func (r *ExerciseRepo) Delete(id string) error {
	h, ok := r.store.Resolve(r.path(id))
	if !ok {
		return fmt.Errorf("delete exercise %q: %w", id, ErrNotFound)
	}
	if err := r.store.Trash(h); err != nil {
		return fmt.Errorf("delete exercise %q: %w", id, err)
	}
	return nil
}

// List returns every decodable exercise, skipping corrupt documents.
func (r *ExerciseRepo) List() []models.Exercise {
	handles, err := r.store.ListChildren(ExercisesFolder)
	if err != nil {
		return nil
	}
	var out []models.Exercise
	for _, h := range handles {
		text, err := r.store.CachedRead(h)
		if err != nil {
			continue
		}
		ex, ok := DecodeExercise(text)
		if !ok {
			continue
		}
		if ex.ID == "" {
			ex.ID = idFromPath(h.Path)
		}
		out = append(out, ex)
	}
	return out
}

// Search filters the listing by case-insensitive name substring.
func (r *ExerciseRepo) Search(query string) []models.Exercise {
	var out []models.Exercise
	for _, ex := range r.List() {
		if matchesQuery(ex.Name, query) {
			out = append(out, ex)
		}
	}
	return out
}
