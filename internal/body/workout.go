package body

import (
	"strconv"
	"strings"

	"github.com/claude/ironvault/internal/models"
)

var workoutTableHeader = []string{"Exercise", "Sets", "Reps", "Rest"}

// ParseWorkoutExercises decodes the exercise table under the "Exercises"
// heading. Rows missing cells fall back to zero values; an absent section
// or table yields nil.
func ParseWorkoutExercises(text string) []models.ExerciseRef {
	content, ok := Section(text, HeadingExercises)
	if !ok {
		return nil
	}
	return parseExerciseTable(content)
}

func parseExerciseTable(content string) []models.ExerciseRef {
	var refs []models.ExerciseRef
	for _, cells := range tableRows(content) {
		if len(cells) < 1 || cells[0] == "" {
			continue
		}
		name, source := ParseExerciseCell(cells[0])
		ref := models.ExerciseRef{Exercise: name, Source: source}
		if len(cells) > 1 {
			ref.TargetSets = ParseIntCell(cells[1], 0)
		}
		if len(cells) > 2 {
			ref.TargetRepsMin, ref.TargetRepsMax = ParseRepsCell(cells[2])
		}
		if len(cells) > 3 {
			ref.RestSeconds = ParseRestCell(cells[3])
		}
		refs = append(refs, ref)
	}
	return refs
}

// BuildWorkoutExercises renders the "Exercises" section with its table.
func BuildWorkoutExercises(refs []models.ExerciseRef) string {
	var sb strings.Builder
	sb.WriteString(sectionPrefix + HeadingExercises + "\n\n")
	writeExerciseTable(&sb, refs)
	return sb.String()
}

func writeExerciseTable(sb *strings.Builder, refs []models.ExerciseRef) {
	sb.WriteString(FormatRow(workoutTableHeader) + "\n")
	sb.WriteString(FormatSeparator(len(workoutTableHeader)) + "\n")
	for _, ref := range refs {
		sb.WriteString(FormatRow([]string{
			FormatExerciseCell(ref.Exercise, ref.Source),
			strconv.Itoa(ref.TargetSets),
			FormatRepsCell(ref.TargetRepsMin, ref.TargetRepsMax),
			FormatRestCell(ref.RestSeconds),
		}) + "\n")
	}
}
