package records

import (
	"fmt"
	"strings"

	"github.com/claude/ironvault/internal/body"
	"github.com/claude/ironvault/internal/frontmatter"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/vault"
)

// EncodeProgram renders a program document: workout references live in
// the metadata block as an inline array, inline workout definitions and
// the review questionnaire in the body.
func EncodeProgram(p models.Program) string {
	b := frontmatter.New()
	b.Set("id", p.ID)
	b.Set("name", p.Name)
	if len(p.WorkoutIDs) > 0 {
		ids := make([]any, len(p.WorkoutIDs))
		for i, id := range p.WorkoutIDs {
			ids[i] = id
		}
		b.Set("workouts", ids)
	}

	var sb strings.Builder
	sb.WriteString(frontmatter.Serialize(b))
	if p.Description != "" {
		sb.WriteString("\n")
		sb.WriteString(body.BuildProgramDescription(p.Description))
	}
	if len(p.Workouts) > 0 {
		sb.WriteString("\n")
		sb.WriteString(body.BuildInlineWorkouts(p.Workouts))
	}
	if len(p.Questions) > 0 {
		sb.WriteString("\n")
		sb.WriteString(body.BuildProgramQuestions(p.Questions))
	}
	return sb.String()
}

// DecodeProgram rebuilds a program from its document.
func DecodeProgram(text string) (models.Program, bool) {
	block, bodyText := frontmatter.Parse(text)
	if block == nil || block.String("name") == "" {
		return models.Program{}, false
	}
	return models.Program{
		ID:          block.String("id"),
		Name:        block.String("name"),
		WorkoutIDs:  block.Strings("workouts"),
		Description: body.ParseProgramDescription(bodyText),
		Workouts:    body.ParseInlineWorkouts(bodyText),
		Questions:   body.ParseProgramQuestions(bodyText),
	}, true
}

// ProgramRepo stores training programs as vault documents.
type ProgramRepo struct {
	store vault.Store
}

func NewProgramRepo(store vault.Store) *ProgramRepo {
	return &ProgramRepo{store: store}
}

func (r *ProgramRepo) path(id string) string {
	return DocPath(ProgramsFolder, id)
}

func (r *ProgramRepo) Create(p models.Program) (models.Program, error) {
	if p.ID == "" {
		p.ID = Slugify(p.Name)
	}
	if p.ID == "" {
		return models.Program{}, fmt.Errorf("create program: empty name")
	}
	if r.store.Exists(r.path(p.ID)) {
		return models.Program{}, fmt.Errorf("create program %q: %w", p.ID, ErrExists)
	}
	if err := r.store.EnsureFolder(ProgramsFolder); err != nil {
		return models.Program{}, fmt.Errorf("create program %q: %w", p.ID, err)
	}
	if _, err := r.store.Create(r.path(p.ID), EncodeProgram(p)); err != nil {
		return models.Program{}, fmt.Errorf("create program %q: %w", p.ID, err)
	}
	return p, nil
}

func (r *ProgramRepo) Get(id string) (models.Program, error) {
	h, ok := r.store.Resolve(r.path(id))
	if !ok {
		return models.Program{}, fmt.Errorf("program %q: %w", id, ErrNotFound)
	}
	text, err := r.store.CachedRead(h)
	if err != nil {
		return models.Program{}, fmt.Errorf("program %q: %w", id, err)
	}
	p, ok := DecodeProgram(text)
	if !ok {
		return models.Program{}, fmt.Errorf("program %q: %w", id, ErrNotFound)
	}
	if p.ID == "" {
		p.ID = id
	}
	return p, nil
}

func (r *ProgramRepo) Update(p models.Program) error {
	h, ok := r.store.Resolve(r.path(p.ID))
	if !ok {
		return fmt.Errorf("update program %q: %w", p.ID, ErrNotFound)
	}
	if err := r.store.Modify(h, EncodeProgram(p)); err != nil {
		return fmt.Errorf("update program %q: %w", p.ID, err)
	}
	return nil
}

func (r *ProgramRepo) Delete(id string) error {
	h, ok := r.store.Resolve(r.path(id))
	if !ok {
		return fmt.Errorf("delete program %q: %w", id, ErrNotFound)
	}
	if err := r.store.Trash(h); err != nil {
		return fmt.Errorf("delete program %q: %w", id, err)
	}
	return nil
}

func (r *ProgramRepo) List() []models.Program {
	handles, err := r.store.ListChildren(ProgramsFolder)
	if err != nil {
		return nil
	}
	var out []models.Program
	for _, h := range handles {
		text, err := r.store.CachedRead(h)
		if err != nil {
			continue
		}
		p, ok := DecodeProgram(text)
		if !ok {
			continue
		}
		if p.ID == "" {
			p.ID = idFromPath(h.Path)
		}
		out = append(out, p)
	}
	return out
}

// ResolveWorkouts expands a program's workout list in order: referenced
// workouts are loaded through the workout repo, inline definitions are
// used as-is. Unresolvable references are skipped.
func (r *ProgramRepo) ResolveWorkouts(p models.Program, workouts *WorkoutRepo) []models.Workout {
	out := make([]models.Workout, 0, len(p.WorkoutIDs)+len(p.Workouts))
	for _, id := range p.WorkoutIDs {
		w, err := workouts.Get(id)
		if err != nil {
			continue
		}
		out = append(out, w)
	}
	out = append(out, p.Workouts...)
	return out
}
