package body

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/claude/ironvault/internal/models"
)

var optionLineRe = regexp.MustCompile(`^-\s+([^:]+):\s*(.*)$`)

// ParseProgramDescription returns the free text of the "Description"
// section. Headings inside fenced code blocks do not end the section.
func ParseProgramDescription(text string) string {
	content, ok := Section(text, HeadingDescription)
	if !ok {
		return ""
	}
	return strings.TrimSpace(content)
}

// ParseInlineWorkouts decodes workouts embedded directly in a program
// document: each "### " sub-section of "Workouts" that contains an
// exercise table becomes a workout named after its heading.
func ParseInlineWorkouts(text string) []models.Workout {
	content, ok := Section(text, HeadingWorkouts)
	if !ok {
		return nil
	}
	var out []models.Workout
	for _, sub := range SubSections(content) {
		refs := parseExerciseTable(sub.Content)
		if len(refs) == 0 {
			continue
		}
		out = append(out, models.Workout{Name: sub.Title, Exercises: refs})
	}
	return out
}

// ParseProgramQuestions decodes the "Review" questionnaire: one sub-block
// per question holding a bold prompt line and "- optionId: label" lines.
// A "| freeText: N" suffix marks the free-text trigger option with its
// maximum length.
func ParseProgramQuestions(text string) []models.Question {
	content, ok := Section(text, HeadingReview)
	if !ok {
		return nil
	}
	var out []models.Question
	for _, sub := range SubSections(content) {
		q := models.Question{ID: sub.Title}
		for _, line := range strings.Split(sub.Content, "\n") {
			trimmed := strings.TrimSpace(line)
			if m := boldLineRe.FindStringSubmatch(trimmed); m != nil && q.Prompt == "" {
				q.Prompt = strings.TrimSpace(m[1])
				continue
			}
			if m := optionLineRe.FindStringSubmatch(trimmed); m != nil {
				q.Options = append(q.Options, parseOption(m[1], m[2]))
			}
		}
		if q.Prompt == "" && len(q.Options) == 0 {
			continue
		}
		out = append(out, q)
	}
	return out
}

func parseOption(id, rest string) models.QuestionOption {
	opt := models.QuestionOption{ID: strings.TrimSpace(id)}
	label := rest
	if i := strings.Index(rest, "|"); i >= 0 {
		label = rest[:i]
		suffix := strings.TrimSpace(rest[i+1:])
		if v, ok := strings.CutPrefix(suffix, "freeText:"); ok {
			opt.FreeText = true
			opt.FreeTextMax, _ = strconv.Atoi(strings.TrimSpace(v))
		}
	}
	opt.Label = strings.TrimSpace(label)
	return opt
}

// BuildProgramDescription renders the "Description" section.
func BuildProgramDescription(description string) string {
	return sectionPrefix + HeadingDescription + "\n\n" + strings.TrimSpace(description) + "\n"
}

// BuildInlineWorkouts renders inline workout definitions under a
// "Workouts" heading.
func BuildInlineWorkouts(workouts []models.Workout) string {
	var sb strings.Builder
	sb.WriteString(sectionPrefix + HeadingWorkouts + "\n")
	for _, w := range workouts {
		sb.WriteString("\n" + subsectionPrefix + w.Name + "\n\n")
		writeExerciseTable(&sb, w.Exercises)
	}
	return sb.String()
}

// BuildProgramQuestions renders the review questionnaire.
func BuildProgramQuestions(questions []models.Question) string {
	var sb strings.Builder
	sb.WriteString(sectionPrefix + HeadingReview + "\n")
	for _, q := range questions {
		sb.WriteString("\n" + subsectionPrefix + q.ID + "\n\n")
		sb.WriteString("**" + q.Prompt + "**\n\n")
		for _, opt := range q.Options {
			sb.WriteString("- " + opt.ID + ": " + opt.Label)
			if opt.FreeText {
				sb.WriteString(" | freeText: " + strconv.Itoa(opt.FreeTextMax))
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}
