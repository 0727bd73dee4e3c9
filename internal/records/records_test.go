package records

import (
	"errors"
	"testing"

	"github.com/claude/ironvault/internal/models"
	"github.com/claude/ironvault/internal/vault"
)

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Bench Press", "bench-press"},
		{"  Push Day  ", "push-day"},
		{"Pull-Ups (Weighted)", "pull-ups-weighted"},
		{"A  --  B", "a-b"},
		{"", ""},
		{"!!!", ""},
	}
	for _, c := range cases {
		if got := Slugify(c.in); got != c.want {
			t.Errorf("Slugify(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func sampleExercise() models.Exercise {
	dw := 60.0
	inc := 2.5
	return models.Exercise{
		Name:            "Bench Press",
		Category:        "Chest",
		Equipment:       "Barbell",
		MuscleGroups:    []string{"chest", "triceps"},
		DefaultWeight:   &dw,
		WeightIncrement: &inc,
		Notes:           "Keep shoulder blades retracted.",
	}
}

func TestExerciseRepoLifecycle(t *testing.T) {
	store := vault.NewMemStore()
	repo := NewExerciseRepo(store)

	created, err := repo.Create(sampleExercise())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID != "bench-press" {
		t.Fatalf("derived id = %q, want bench-press", created.ID)
	}
	if created.Source != models.SourceCustom {
		t.Errorf("source = %q, want custom", created.Source)
	}

	if _, err := repo.Create(sampleExercise()); !errors.Is(err, ErrExists) {
		t.Fatalf("duplicate Create err = %v, want ErrExists", err)
	}

	got, err := repo.Get("bench-press")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Bench Press" || got.Category != "Chest" {
		t.Errorf("Get = %+v", got)
	}
	if got.DefaultWeight == nil || *got.DefaultWeight != 60 {
		t.Errorf("defaultWeight = %v, want 60", got.DefaultWeight)
	}
	if got.Notes != "Keep shoulder blades retracted." {
		t.Errorf("notes = %q", got.Notes)
	}
	if len(got.MuscleGroups) != 2 || got.MuscleGroups[0] != "chest" {
		t.Errorf("muscleGroups = %v", got.MuscleGroups)
	}

	got.Equipment = "Dumbbell"
	if err := repo.Update(got); err != nil {
		t.Fatalf("Update: %v", err)
	}
	again, _ := repo.Get("bench-press")
	if again.Equipment != "Dumbbell" {
		t.Errorf("equipment after update = %q", again.Equipment)
	}

	if err := repo.Update(models.Exercise{ID: "ghost"}); !errors.Is(err, ErrNotFound) {
		t.Errorf("Update missing err = %v, want ErrNotFound", err)
	}

	if err := repo.Delete("bench-press"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := repo.Get("bench-press"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after delete err = %v, want ErrNotFound", err)
	}
	if err := repo.Delete("bench-press"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete missing err = %v, want ErrNotFound", err)
	}
}

func TestExerciseListSkipsCorrupt(t *testing.T) {
	store := vault.NewMemStore()
	repo := NewExerciseRepo(store)

	if _, err := repo.Create(models.Exercise{Name: "Squat"}); err != nil {
		t.Fatal(err)
	}
	store.Put("Exercises/broken.md", "no metadata block here")
	store.Put("Exercises/nameless.md", "---\ncategory: Legs\n---\n")

	list := repo.List()
	if len(list) != 1 || list[0].Name != "Squat" {
		t.Fatalf("List = %+v, want only Squat", list)
	}
}

func TestExerciseSearch(t *testing.T) {
	store := vault.NewMemStore()
	repo := NewExerciseRepo(store)
	for _, name := range []string{"Bench Press", "Incline Bench Press", "Squat"} {
		if _, err := repo.Create(models.Exercise{Name: name}); err != nil {
			t.Fatal(err)
		}
	}
	if got := repo.Search("bench"); len(got) != 2 {
		t.Errorf("Search(bench) returned %d results, want 2", len(got))
	}
	if got := repo.Search(""); len(got) != 3 {
		t.Errorf("Search(empty) returned %d results, want 3", len(got))
	}
}

func sampleWorkout() models.Workout {
	return models.Workout{
		Name:              "Push Day",
		Description:       "Chest and shoulders",
		EstimatedDuration: 60,
		Exercises: []models.ExerciseRef{
			{Exercise: "bench-press", Source: models.SourceCustom, TargetSets: 4, TargetRepsMin: 6, TargetRepsMax: 8, RestSeconds: 180},
			{Exercise: "Overhead Press", Source: models.SourceDatabase, TargetSets: 3, TargetRepsMin: 8, TargetRepsMax: 10, RestSeconds: 120},
		},
	}
}

func TestWorkoutRoundTrip(t *testing.T) {
	store := vault.NewMemStore()
	repo := NewWorkoutRepo(store)

	created, err := repo.Create(sampleWorkout())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Name != "Push Day" || got.EstimatedDuration != 60 {
		t.Errorf("got %+v", got)
	}
	if len(got.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(got.Exercises))
	}
	first := got.Exercises[0]
	if first.Exercise != "bench-press" || first.Source != models.SourceCustom {
		t.Errorf("first ref = %+v", first)
	}
	if first.TargetSets != 4 || first.TargetRepsMin != 6 || first.TargetRepsMax != 8 || first.RestSeconds != 180 {
		t.Errorf("first prescription = %+v", first)
	}
	if got.Exercises[1].Source != models.SourceDatabase {
		t.Errorf("second ref source = %q", got.Exercises[1].Source)
	}
}

func sampleProgram() models.Program {
	return models.Program{
		Name:        "Push Pull Legs",
		Description: "Three-day split.",
		WorkoutIDs:  []string{"push-day", "pull-day"},
		Workouts: []models.Workout{
			{Name: "Legs", Exercises: []models.ExerciseRef{
				{Exercise: "squat", Source: models.SourceCustom, TargetSets: 5, TargetRepsMin: 5, TargetRepsMax: 5, RestSeconds: 240},
			}},
		},
		Questions: []models.Question{
			{ID: "intensity", Prompt: "How hard was it?", Options: []models.QuestionOption{
				{ID: "easy", Label: "Easy"},
				{ID: "hard", Label: "Hard", FreeText: true, FreeTextMax: 200},
			}},
		},
	}
}

func TestProgramRoundTrip(t *testing.T) {
	store := vault.NewMemStore()
	repo := NewProgramRepo(store)

	created, err := repo.Create(sampleProgram())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	got, err := repo.Get(created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Description != "Three-day split." {
		t.Errorf("description = %q", got.Description)
	}
	if len(got.WorkoutIDs) != 2 || got.WorkoutIDs[0] != "push-day" {
		t.Errorf("workoutIDs = %v", got.WorkoutIDs)
	}
	if len(got.Workouts) != 1 || got.Workouts[0].Name != "Legs" {
		t.Fatalf("inline workouts = %+v", got.Workouts)
	}
	if len(got.Questions) != 1 {
		t.Fatalf("questions = %+v", got.Questions)
	}
	opts := got.Questions[0].Options
	if len(opts) != 2 || !opts[1].FreeText || opts[1].FreeTextMax != 200 {
		t.Errorf("options = %+v", opts)
	}
}

func TestProgramResolveWorkouts(t *testing.T) {
	store := vault.NewMemStore()
	workouts := NewWorkoutRepo(store)
	programs := NewProgramRepo(store)

	if _, err := workouts.Create(models.Workout{Name: "Push Day"}); err != nil {
		t.Fatal(err)
	}
	p, err := programs.Create(sampleProgram())
	if err != nil {
		t.Fatal(err)
	}
	p, err = programs.Get(p.ID)
	if err != nil {
		t.Fatal(err)
	}

	// pull-day does not exist and is skipped; the inline Legs workout
	// comes after the resolved references.
	resolved := programs.ResolveWorkouts(p, workouts)
	if len(resolved) != 2 {
		t.Fatalf("resolved %d workouts, want 2", len(resolved))
	}
	if resolved[0].Name != "Push Day" || resolved[1].Name != "Legs" {
		t.Errorf("resolved = [%s, %s]", resolved[0].Name, resolved[1].Name)
	}
}
