// Package body parses and builds the free-form section bodies that follow
// a record's metadata block: exercise tables, per-exercise set blocks,
// program questionnaires, review Q&A lines, and coach feedback. All
// parsers are lenient — malformed structure degrades to an empty or
// partial result, never an error.
package body

import "strings"

// Top-level section headings shared across record bodies.
const (
	HeadingExercises     = "Exercises"
	HeadingPrevious      = "Previous"
	HeadingReview        = "Review"
	HeadingCoachFeedback = "Coach Feedback"
	HeadingPrevFeedback  = "Coach Feedback (Previous)"
	HeadingDescription   = "Description"
	HeadingWorkouts      = "Workouts"
)

const (
	sectionPrefix    = "## "
	subsectionPrefix = "### "
	codeFence        = "```"
)

// Section returns the content of the "## title" section, up to but not
// including the next sibling "## " heading. Headings inside fenced code
// blocks do not open or close sections. The title must match exactly, so
// "Coach Feedback" never swallows "Coach Feedback (Previous)".
func Section(text, title string) (string, bool) {
	lines := strings.Split(text, "\n")
	inFence := false
	start := -1
	for i, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, codeFence) {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		if !strings.HasPrefix(line, sectionPrefix) || strings.HasPrefix(line, subsectionPrefix) {
			continue
		}
		heading := strings.TrimSpace(line[len(sectionPrefix):])
		if start >= 0 {
			return strings.Join(lines[start:i], "\n"), true
		}
		if heading == title {
			start = i + 1
		}
	}
	if start >= 0 {
		return strings.Join(lines[start:], "\n"), true
	}
	return "", false
}

// SubSection is one "### " block inside a section.
type SubSection struct {
	Title   string
	Content string
}

// SubSections splits section content into its "### " blocks. Text before
// the first sub-heading is dropped.
func SubSections(content string) []SubSection {
	lines := strings.Split(content, "\n")
	var out []SubSection
	var current *SubSection
	var buf []string
	inFence := false

	flush := func() {
		if current != nil {
			current.Content = strings.Join(buf, "\n")
			out = append(out, *current)
		}
		current = nil
		buf = nil
	}

	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, codeFence) {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(line, subsectionPrefix) {
			flush()
			current = &SubSection{Title: strings.TrimSpace(line[len(subsectionPrefix):])}
			continue
		}
		if current != nil {
			buf = append(buf, line)
		}
	}
	flush()
	return out
}
