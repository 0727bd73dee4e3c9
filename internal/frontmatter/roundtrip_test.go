package frontmatter

import (
	"strings"
	"testing"
)

func exerciseRef(name string, sets, min, max, rest int) *Block {
	b := New()
	b.Set("exercise", name)
	b.Set("targetSets", float64(sets))
	b.Set("targetRepsMin", float64(min))
	b.Set("targetRepsMax", float64(max))
	b.Set("restSeconds", float64(rest))
	return b
}

// TestRoundTripWorkout is the round-trip law for the shape the session
// save/reload cycle depends on: serialize then reparse must reproduce an
// equivalent block.
func TestRoundTripWorkout(t *testing.T) {
	b := New()
	b.Set("name", "Push Day")
	b.Set("description", "Chest, shoulders: triceps")
	b.Set("estimatedDuration", 60.0)
	b.Set("exercises", []*Block{
		exerciseRef("Bench Press", 4, 6, 8, 180),
		exerciseRef("[[overhead-press]]", 3, 8, 10, 120),
	})

	text := Serialize(b)
	reparsed, rest := Parse(text)
	if reparsed == nil {
		t.Fatalf("reparse failed:\n%s", text)
	}
	if rest != "" {
		t.Errorf("remainder = %q, want empty", rest)
	}
	if !b.Equal(reparsed) {
		t.Errorf("round trip mismatch:\n%s", text)
	}

	exercises := reparsed.Blocks("exercises")
	if len(exercises) != 2 {
		t.Fatalf("exercises = %d, want 2", len(exercises))
	}
	if got := exercises[0].String("exercise"); got != "Bench Press" {
		t.Errorf("exercises[0] = %q", got)
	}
	if got := exercises[1].String("exercise"); got != "[[overhead-press]]" {
		t.Errorf("exercises[1] = %q", got)
	}
}

// TestRoundTripDeepNesting covers arrays nested inside array elements:
// a session block with per-exercise set arrays.
func TestRoundTripDeepNesting(t *testing.T) {
	set := func(weight float64, reps int) *Block {
		s := New()
		s.Set("weight", weight)
		s.Set("reps", float64(reps))
		s.Set("completed", true)
		s.Set("timestamp", "2026-01-15T10:30:00Z")
		return s
	}
	ex := New()
	ex.Set("exercise", "Bench Press")
	ex.Set("sets", []*Block{set(80, 8), set(80, 7), set(82.5, 6), set(82.5, 6)})

	b := New()
	b.Set("status", "active")
	b.Set("exercises", []*Block{ex})

	text := Serialize(b)
	reparsed, _ := Parse(text)
	if !b.Equal(reparsed) {
		t.Fatalf("round trip mismatch:\n%s", text)
	}
	sets := reparsed.Blocks("exercises")[0].Blocks("sets")
	if len(sets) != 4 {
		t.Fatalf("sets = %d, want 4", len(sets))
	}
	if got := sets[2].Float("weight"); got != 82.5 {
		t.Errorf("sets[2].weight = %v", got)
	}
	if !sets[0].Bool("completed") {
		t.Error("sets[0].completed = false")
	}
}

// TestRoundTripQuotedScalars verifies the quoting normal form survives a
// second round trip unchanged.
func TestRoundTripQuotedScalars(t *testing.T) {
	b := New()
	b.Set("workout", "[[push-day|Push Day]]")
	b.Set("notes", "felt strong: new PR #2")
	b.Set("muscleGroups", []any{"chest", "front delts"})
	b.Set("bodyweight", true)

	once := Serialize(b)
	mid, _ := Parse(once)
	if mid == nil {
		t.Fatal("first reparse failed")
	}
	twice := Serialize(mid)
	if once != twice {
		t.Errorf("serialization not stable:\n%q\n%q", once, twice)
	}
	if !b.Equal(mid) {
		t.Error("round trip mismatch")
	}
}

// TestRoundTripAmbiguousStrings covers string values that would change
// type or split the line-based format if serialized bare: numeric and
// boolean text, multi-line notes, embedded quotes, and text shaped like
// an inline array.
func TestRoundTripAmbiguousStrings(t *testing.T) {
	tests := []struct {
		name  string
		notes string
	}{
		{"numeric text", "42"},
		{"decimal text", "82.5"},
		{"boolean text", "true"},
		{"multi-line", "felt strong\nstopped early on the last set"},
		{"embedded quotes", `coach said "lock out"`},
		{"array-shaped", "[a, b]"},
		{"link-shaped", "[[push-day]]"},
		{"padded", "  trimmed  "},
		{"empty", ""},
		{"backslash", `5x5 @ RPE8\9`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New()
			b.Set("exercise", "Bench Press")
			b.Set("notes", tt.notes)

			text := Serialize(b)
			reparsed, rest := Parse(text)
			if reparsed == nil {
				t.Fatalf("reparse failed:\n%s", text)
			}
			if rest != "" {
				t.Errorf("remainder = %q, want empty", rest)
			}
			if got := reparsed.String("notes"); got != tt.notes {
				t.Errorf("notes = %q, want %q\nserialized:\n%s", got, tt.notes, text)
			}
			if !b.Equal(reparsed) {
				t.Errorf("round trip mismatch:\n%s", text)
			}
		})
	}
}

// TestRoundTripAmbiguousStringsInArrays is the same shapes as array
// elements, where a bare comma or quote would also break the split.
func TestRoundTripAmbiguousStringsInArrays(t *testing.T) {
	b := New()
	b.Set("tags", []any{"42", "push, pull", `say "hi"`, "plain"})

	text := Serialize(b)
	reparsed, _ := Parse(text)
	if reparsed == nil {
		t.Fatalf("reparse failed:\n%s", text)
	}
	if !b.Equal(reparsed) {
		t.Errorf("round trip mismatch:\n%s", text)
	}
	tags := reparsed.Strings("tags")
	want := []string{"42", "push, pull", `say "hi"`, "plain"}
	if len(tags) != len(want) {
		t.Fatalf("tags = %v, want %v", tags, want)
	}
	for i := range want {
		if tags[i] != want[i] {
			t.Errorf("tags[%d] = %q, want %q", i, tags[i], want[i])
		}
	}
}

// TestRoundTripSkipsEmpty verifies nil values and empty arrays vanish.
func TestRoundTripSkipsEmpty(t *testing.T) {
	b := New()
	b.Set("name", "Leg Day")
	b.Set("notes", nil)
	b.Set("exercises", []*Block{})
	b.Set("tags", []any{})

	text := Serialize(b)
	if strings.Contains(text, "notes") || strings.Contains(text, "exercises") || strings.Contains(text, "tags") {
		t.Errorf("empty fields serialized:\n%s", text)
	}
	reparsed, _ := Parse(text)
	if reparsed.Len() != 1 {
		t.Errorf("keys = %v, want [name]", reparsed.Keys())
	}
}
