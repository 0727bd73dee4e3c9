package body

import (
	"strings"
	"testing"

	"github.com/claude/ironvault/internal/models"
)

const boundedBody = `
## Exercises

### [[bench-press]]

Target: 4 × 6-8 | Rest: 180s

| # | kg | reps | rpe | time | rest | +rest | s/rep |
| --- | --- | --- | --- | --- | --- | --- | --- |
| 1 | 80 | 8 | - | 10:30:15 | - | - | - |

## Previous

### [[bench-press]]

Target: 4 × 6-8 | Rest: 180s

| # | kg | reps | rpe | time | rest | +rest | s/rep |
| --- | --- | --- | --- | --- | --- | --- | --- |
| 1 | 75 | 8 | - | 09:00:00 | - | - | - |
| 2 | 75 | 7 | - | 09:03:30 | - | - | - |

## Review

**How was the workout?** Great (new bench PR)
`

// TestSectionBoundaries verifies that a section stops at the next sibling
// heading even when the following section contains tables that would look
// like valid exercise blocks.
func TestSectionBoundaries(t *testing.T) {
	content, ok := Section(boundedBody, HeadingExercises)
	if !ok {
		t.Fatal("Exercises section not found")
	}
	if strings.Contains(content, "Previous") || strings.Contains(content, "09:00:00") {
		t.Errorf("Exercises section leaked into Previous:\n%s", content)
	}

	prev, ok := Section(boundedBody, HeadingPrevious)
	if !ok {
		t.Fatal("Previous section not found")
	}
	if strings.Contains(prev, "How was the workout?") {
		t.Error("Previous section leaked into Review")
	}
	if !strings.Contains(prev, "09:03:30") {
		t.Error("Previous section missing its own rows")
	}
}

func TestSectionInsideCodeFence(t *testing.T) {
	text := "## Description\n\nSome text.\n\n```\n## Exercises\nnot a heading\n```\n\nMore text.\n\n## Review\n"
	content, ok := Section(text, HeadingDescription)
	if !ok {
		t.Fatal("Description section not found")
	}
	if !strings.Contains(content, "More text.") {
		t.Errorf("fenced heading ended the section early:\n%s", content)
	}
	if strings.Contains(content, "## Review") {
		t.Error("section ran past the Review heading")
	}
}

func TestSectionExactTitle(t *testing.T) {
	text := "## Coach Feedback (Previous)\n\nold notes\n\n## Coach Feedback\n\nnew notes\n"
	current, ok := Section(text, HeadingCoachFeedback)
	if !ok || !strings.Contains(current, "new notes") {
		t.Errorf("current feedback = %q", current)
	}
	if strings.Contains(current, "old notes") {
		t.Error("current feedback matched the previous-feedback heading")
	}
	previous, ok := Section(text, HeadingPrevFeedback)
	if !ok || !strings.Contains(previous, "old notes") {
		t.Errorf("previous feedback = %q", previous)
	}
}

func TestParseLink(t *testing.T) {
	tests := []struct {
		in     string
		target string
		alias  string
		ok     bool
	}{
		{"[[bench-press]]", "bench-press", "", true},
		{"[[bench-press|Bench Press]]", "bench-press", "Bench Press", true},
		{"[[Exercises/bench-press|Bench]]", "bench-press", "Bench", true},
		{"[[bench-press#Notes]]", "bench-press", "", true},
		{"overhead-press", "", "", false},
		{"[[]]", "", "", false},
	}
	for _, tt := range tests {
		target, alias, ok := ParseLink(tt.in)
		if target != tt.target || alias != tt.alias || ok != tt.ok {
			t.Errorf("ParseLink(%q) = (%q, %q, %v), want (%q, %q, %v)",
				tt.in, target, alias, ok, tt.target, tt.alias, tt.ok)
		}
	}
}

// TestExerciseCellSource verifies the link-vs-plain reference convention:
// bracket-links mean custom exercises, bare text means database ones, and
// round-tripping preserves the convention.
func TestExerciseCellSource(t *testing.T) {
	name, source := ParseExerciseCell("[[bench-press]]")
	if name != "bench-press" || source != models.SourceCustom {
		t.Errorf("link cell = (%q, %q)", name, source)
	}
	name, source = ParseExerciseCell("overhead-press")
	if name != "overhead-press" || source != models.SourceDatabase {
		t.Errorf("plain cell = (%q, %q)", name, source)
	}

	if got := FormatExerciseCell("bench-press", models.SourceCustom); got != "[[bench-press]]" {
		t.Errorf("custom cell = %q", got)
	}
	if got := FormatExerciseCell("overhead-press", models.SourceDatabase); got != "overhead-press" {
		t.Errorf("database cell = %q", got)
	}
	if got := FormatExerciseCell("overhead-press", models.SourceUnknown); got != "overhead-press" {
		t.Errorf("unknown cell = %q", got)
	}
}

// TestBodyweightSentinel verifies the sentinel's idempotence: every
// accepted spelling parses to 0, and 0 always serializes to "body weight".
func TestBodyweightSentinel(t *testing.T) {
	for _, cell := range []string{"body weight", "", "-", "0", "Body Weight"} {
		if got := ParseWeightCell(cell); got != 0 {
			t.Errorf("ParseWeightCell(%q) = %v, want 0", cell, got)
		}
	}
	if got := FormatWeightCell(0); got != "body weight" {
		t.Errorf("FormatWeightCell(0) = %q", got)
	}
	if got := ParseWeightCell(FormatWeightCell(0)); got != 0 {
		t.Errorf("sentinel not idempotent: %v", got)
	}
	if got := FormatWeightCell(82.5); got != "82.5" {
		t.Errorf("FormatWeightCell(82.5) = %q", got)
	}
}

func TestRepsAndRestCells(t *testing.T) {
	if min, max := ParseRepsCell("6-8"); min != 6 || max != 8 {
		t.Errorf("6-8 = (%d, %d)", min, max)
	}
	if min, max := ParseRepsCell("12"); min != 12 || max != 12 {
		t.Errorf("12 = (%d, %d)", min, max)
	}
	if min, max := ParseRepsCell("junk"); min != 0 || max != 0 {
		t.Errorf("junk = (%d, %d)", min, max)
	}
	if got := FormatRepsCell(6, 8); got != "6-8" {
		t.Errorf("FormatRepsCell(6,8) = %q", got)
	}
	if got := FormatRepsCell(12, 12); got != "12" {
		t.Errorf("FormatRepsCell(12,12) = %q", got)
	}
	if got := ParseRestCell("180s"); got != 180 {
		t.Errorf("180s = %d", got)
	}
	if got := ParseRestCell("bad"); got != 0 {
		t.Errorf("bad rest = %d", got)
	}
	if got := FormatRestCell(90); got != "90s" {
		t.Errorf("FormatRestCell(90) = %q", got)
	}
}

// TestWorkoutTableRoundTrip verifies the workout table codec both ways,
// including the custom/database rendering rule.
func TestWorkoutTableRoundTrip(t *testing.T) {
	refs := []models.ExerciseRef{
		{Exercise: "bench-press", Source: models.SourceCustom, TargetSets: 4, TargetRepsMin: 6, TargetRepsMax: 8, RestSeconds: 180},
		{Exercise: "overhead-press", Source: models.SourceDatabase, TargetSets: 3, TargetRepsMin: 8, TargetRepsMax: 10, RestSeconds: 120},
	}
	text := BuildWorkoutExercises(refs)
	if !strings.Contains(text, "| [[bench-press]] | 4 | 6-8 | 180s |") {
		t.Errorf("custom row missing:\n%s", text)
	}
	if !strings.Contains(text, "| overhead-press | 3 | 8-10 | 120s |") {
		t.Errorf("database row missing:\n%s", text)
	}

	parsed := ParseWorkoutExercises(text)
	if len(parsed) != 2 {
		t.Fatalf("parsed = %d rows, want 2", len(parsed))
	}
	for i, want := range refs {
		if parsed[i] != want {
			t.Errorf("row %d = %+v, want %+v", i, parsed[i], want)
		}
	}
}

func TestParseWorkoutExercisesLenient(t *testing.T) {
	if got := ParseWorkoutExercises("no sections here"); got != nil {
		t.Errorf("missing section = %v, want nil", got)
	}
	if got := ParseWorkoutExercises("## Exercises\n\nprose, no table\n"); got != nil {
		t.Errorf("missing table = %v, want nil", got)
	}
}

func TestReviewAnswers(t *testing.T) {
	content := "**How was the workout?** Great (new bench PR)\n**Energy level?**   Low\n"
	answers := ParseReviewAnswers(content)
	if len(answers) != 2 {
		t.Fatalf("answers = %d, want 2", len(answers))
	}
	if answers[0].Answer != "Great" || answers[0].FreeText != "new bench PR" {
		t.Errorf("answers[0] = %+v", answers[0])
	}
	if answers[1].Question != "Energy level?" || answers[1].Answer != "Low" || answers[1].FreeText != "" {
		t.Errorf("answers[1] = %+v", answers[1])
	}

	rebuilt := BuildReviewAnswers(answers)
	again := ParseReviewAnswers(rebuilt)
	if len(again) != 2 || again[0] != answers[0] || again[1] != answers[1] {
		t.Errorf("round trip = %+v", again)
	}
}

func TestCoachFeedbackFencing(t *testing.T) {
	plain := "Keep your elbows tucked on bench."
	section := BuildCoachFeedback(HeadingCoachFeedback, plain)
	if strings.Contains(section, codeFence) {
		t.Errorf("plain feedback fenced:\n%s", section)
	}
	if got := ParseCoachFeedback(section); got != plain {
		t.Errorf("plain feedback = %q", got)
	}

	structured := "---\nfocus: tempo\nweeks: 4\n---\n"
	section = BuildCoachFeedback(HeadingCoachFeedback, structured)
	if !strings.Contains(section, codeFence) {
		t.Errorf("metadata-like feedback not fenced:\n%s", section)
	}
	if got := ParseCoachFeedback(section); strings.TrimSpace(got) != strings.TrimSpace(structured) {
		t.Errorf("fenced feedback = %q", got)
	}
}
