package mcp

import (
	"context"

	"github.com/claude/ironvault/internal/exercisedb"
	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/records"
	"github.com/claude/ironvault/internal/vault"
)

// DataSource abstracts the data layer for MCP tools. LocalSource (vault
// repositories) and HTTPClient (remote via REST API) both satisfy it.
type DataSource interface {
	ListExercises(ctx context.Context, query string) ([]models.Exercise, error)
	GetExercise(ctx context.Context, id string) (models.Exercise, error)
	ListWorkouts(ctx context.Context) ([]models.Workout, error)
	GetWorkout(ctx context.Context, id string) (models.Workout, error)
	ListPrograms(ctx context.Context) ([]models.Program, error)
	GetProgram(ctx context.Context, id string) (models.Program, error)
	ProgramWorkouts(ctx context.Context, id string) ([]models.Workout, error)
	ListSessions(ctx context.Context, status string) ([]models.Session, error)
	GetSession(ctx context.Context, id string) (models.Session, error)
	SearchCatalog(ctx context.Context, query string, limit int) ([]models.DatabaseExercise, error)
}

// LocalSource serves MCP tools directly from the vault repositories and
// the imported exercise catalog. Catalog may be nil when no database file
// is configured; catalog searches then return empty results.
type LocalSource struct {
	exercises *records.ExerciseRepo
	workouts  *records.WorkoutRepo
	programs  *records.ProgramRepo
	sessions  *records.SessionRepo
	catalog   *exercisedb.DB
}

var _ DataSource = (*LocalSource)(nil)

// NewLocalSource creates a LocalSource over the given store and catalog.
func NewLocalSource(store vault.Store, catalog *exercisedb.DB) *LocalSource {
	return &LocalSource{
		exercises: records.NewExerciseRepo(store),
		workouts:  records.NewWorkoutRepo(store),
		programs:  records.NewProgramRepo(store),
		sessions:  records.NewSessionRepo(store),
		catalog:   catalog,
	}
}

func (s *LocalSource) ListExercises(_ context.Context, query string) ([]models.Exercise, error) {
	return s.exercises.Search(query), nil
}

func (s *LocalSource) GetExercise(_ context.Context, id string) (models.Exercise, error) {
	return s.exercises.Get(id)
}

func (s *LocalSource) ListWorkouts(_ context.Context) ([]models.Workout, error) {
	return s.workouts.List(), nil
}

func (s *LocalSource) GetWorkout(_ context.Context, id string) (models.Workout, error) {
	return s.workouts.Get(id)
}

func (s *LocalSource) ListPrograms(_ context.Context) ([]models.Program, error) {
	return s.programs.List(), nil
}

func (s *LocalSource) GetProgram(_ context.Context, id string) (models.Program, error) {
	return s.programs.Get(id)
}

func (s *LocalSource) ProgramWorkouts(_ context.Context, id string) ([]models.Workout, error) {
	p, err := s.programs.Get(id)
	if err != nil {
		return nil, err
	}
	return s.programs.ResolveWorkouts(p, s.workouts), nil
}

func (s *LocalSource) ListSessions(_ context.Context, status string) ([]models.Session, error) {
	if status != "" {
		return s.sessions.ListByStatus(models.SessionStatus(status)), nil
	}
	return s.sessions.List(), nil
}

func (s *LocalSource) GetSession(_ context.Context, id string) (models.Session, error) {
	return s.sessions.Get(id)
}

func (s *LocalSource) SearchCatalog(ctx context.Context, query string, limit int) ([]models.DatabaseExercise, error) {
	if s.catalog == nil {
		return nil, nil
	}
	return s.catalog.Search(ctx, query, limit)
}
