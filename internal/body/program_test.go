package body

import (
	"strings"
	"testing"

	"github.com/claude/ironvault/internal/models"
)

const programBody = `
## Description

Three day push-pull-legs split.

` + "```" + `
## Exercises
this heading is sample text, not a section
` + "```" + `

Run it for 8 weeks.

## Workouts

### Push Day

| Exercise | Sets | Reps | Rest |
| --- | --- | --- | --- |
| [[bench-press]] | 4 | 6-8 | 180s |
| overhead-press | 3 | 8-10 | 120s |

### Rest Day

No table here, just notes.

## Review

### how-was-it

**How was the workout?**

- great: Great
- ok: OK
- bad: Bad | freeText: 200
`

// TestProgramDescription verifies the Description section is bounded by
// the next sibling heading while skipping headings inside code fences.
func TestProgramDescription(t *testing.T) {
	desc := ParseProgramDescription(programBody)
	if !strings.Contains(desc, "Three day push-pull-legs split.") {
		t.Errorf("description = %q", desc)
	}
	if !strings.Contains(desc, "Run it for 8 weeks.") {
		t.Error("description ended at the fenced heading")
	}
	if strings.Contains(desc, "Push Day") {
		t.Error("description ran into the Workouts section")
	}
}

// TestInlineWorkouts verifies only sub-sections with exercise tables
// become inline workouts.
func TestInlineWorkouts(t *testing.T) {
	workouts := ParseInlineWorkouts(programBody)
	if len(workouts) != 1 {
		t.Fatalf("workouts = %d, want 1", len(workouts))
	}
	w := workouts[0]
	if w.Name != "Push Day" {
		t.Errorf("name = %q", w.Name)
	}
	if len(w.Exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(w.Exercises))
	}
	if w.Exercises[0].Exercise != "bench-press" || w.Exercises[0].Source != models.SourceCustom {
		t.Errorf("exercises[0] = %+v", w.Exercises[0])
	}
	if w.Exercises[1].Source != models.SourceDatabase {
		t.Errorf("exercises[1] = %+v", w.Exercises[1])
	}
}

// TestProgramQuestions verifies question blocks parse with options and
// the free-text trigger suffix.
func TestProgramQuestions(t *testing.T) {
	questions := ParseProgramQuestions(programBody)
	if len(questions) != 1 {
		t.Fatalf("questions = %d, want 1", len(questions))
	}
	q := questions[0]
	if q.ID != "how-was-it" {
		t.Errorf("id = %q", q.ID)
	}
	if q.Prompt != "How was the workout?" {
		t.Errorf("prompt = %q", q.Prompt)
	}
	if len(q.Options) != 3 {
		t.Fatalf("options = %d, want 3", len(q.Options))
	}
	if q.Options[0].ID != "great" || q.Options[0].Label != "Great" || q.Options[0].FreeText {
		t.Errorf("options[0] = %+v", q.Options[0])
	}
	last := q.Options[2]
	if last.ID != "bad" || last.Label != "Bad" || !last.FreeText || last.FreeTextMax != 200 {
		t.Errorf("options[2] = %+v", last)
	}
}

func TestProgramRoundTrip(t *testing.T) {
	questions := []models.Question{{
		ID:     "energy",
		Prompt: "Energy level?",
		Options: []models.QuestionOption{
			{ID: "high", Label: "High"},
			{ID: "low", Label: "Low", FreeText: true, FreeTextMax: 140},
		},
	}}
	workouts := []models.Workout{{
		Name: "Pull Day",
		Exercises: []models.ExerciseRef{
			{Exercise: "deadlift", Source: models.SourceCustom, TargetSets: 3, TargetRepsMin: 5, TargetRepsMax: 5, RestSeconds: 240},
		},
	}}

	text := BuildProgramDescription("A program.") + "\n" +
		BuildInlineWorkouts(workouts) + "\n" +
		BuildProgramQuestions(questions)

	if got := ParseProgramDescription(text); got != "A program." {
		t.Errorf("description = %q", got)
	}
	gotWorkouts := ParseInlineWorkouts(text)
	if len(gotWorkouts) != 1 || len(gotWorkouts[0].Exercises) != 1 {
		t.Fatalf("workouts = %+v", gotWorkouts)
	}
	if gotWorkouts[0].Exercises[0] != workouts[0].Exercises[0] {
		t.Errorf("exercise = %+v", gotWorkouts[0].Exercises[0])
	}
	gotQuestions := ParseProgramQuestions(text)
	if len(gotQuestions) != 1 || len(gotQuestions[0].Options) != 2 {
		t.Fatalf("questions = %+v", gotQuestions)
	}
	if gotQuestions[0].Options[1] != questions[0].Options[1] {
		t.Errorf("option = %+v", gotQuestions[0].Options[1])
	}
}
