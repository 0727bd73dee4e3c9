package body

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/claude/ironvault/internal/models"
)

// MuscleQuestion is the fixed per-exercise question whose answer maps to
// the muscle-engagement rating.
const MuscleQuestion = "Did you feel the correct muscle working?"

const timeCellLayout = "15:04:05"

var (
	setTableHeader = []string{"#", "kg", "reps", "rpe", "time", "rest", "+rest", "s/rep"}

	targetLineRe = regexp.MustCompile(`^Target:\s*(\d+)\s*×\s*(\S+)\s*\|\s*Rest:\s*(\S+)\s*$`)
	boldLineRe   = regexp.MustCompile(`^\*\*(.+?)\*\*\s*(.*)$`)
)

// ParseSessionExercises decodes the per-exercise sub-blocks of a session's
// "Exercises" section. Set timestamps carry only a time of day in the
// table; date supplies the calendar day they are rebuilt on. The parser
// stops at the next sibling heading, so tables under "Previous" or
// "Review" are never consumed.
func ParseSessionExercises(text string, date time.Time) []models.SessionExercise {
	content, ok := Section(text, HeadingExercises)
	if !ok {
		return nil
	}

	var out []models.SessionExercise
	for _, sub := range SubSections(content) {
		name, source := ParseExerciseCell(sub.Title)
		if name == "" {
			continue
		}
		ex := models.SessionExercise{Exercise: name, Source: source}
		parseExerciseBlock(&ex, sub.Content, date)
		out = append(out, ex)
	}
	return out
}

func parseExerciseBlock(ex *models.SessionExercise, content string, date time.Time) {
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if m := targetLineRe.FindStringSubmatch(trimmed); m != nil {
			ex.TargetSets, _ = strconv.Atoi(m[1])
			ex.TargetRepsMin, ex.TargetRepsMax = ParseRepsCell(m[2])
			ex.RestSeconds = ParseRestCell(m[3])
			continue
		}
		if m := boldLineRe.FindStringSubmatch(trimmed); m != nil {
			switch strings.TrimSuffix(strings.TrimSpace(m[1]), ":") {
			case MuscleQuestion:
				ex.Engagement = models.EngagementFromLabel(strings.TrimSpace(m[2]))
			case "RPE":
				ex.RPE = ParseOptFloatCell(m[2])
			}
		}
	}

	for _, cells := range tableRows(content) {
		set, ok := parseSetRow(cells, date)
		if !ok {
			continue
		}
		ex.Sets = append(ex.Sets, set)
	}
}

// parseSetRow decodes one row of the sets table: #, kg, reps, rpe, time,
// rest, +rest, s/rep. Missing or dashed cells take their documented
// fallbacks; a row without a set number is not a set.
func parseSetRow(cells []string, date time.Time) (models.LoggedSet, bool) {
	if len(cells) < 3 {
		return models.LoggedSet{}, false
	}
	if _, err := strconv.Atoi(cells[0]); err != nil {
		return models.LoggedSet{}, false
	}
	set := models.LoggedSet{
		Weight: ParseWeightCell(cells[1]),
		Reps:   ParseIntCell(cells[2], 0),
	}
	if len(cells) > 3 {
		set.RPE = ParseOptFloatCell(cells[3])
	}
	if len(cells) > 4 {
		if ts, ok := parseTimeCell(cells[4], date); ok {
			set.Timestamp = ts
			set.Completed = true
		}
	}
	if len(cells) > 5 {
		set.RestSeconds = ParseOptRestCell(cells[5])
	}
	if len(cells) > 6 {
		set.ExtraRestSeconds = ParseOptRestCell(cells[6])
	}
	if len(cells) > 7 {
		set.AvgRepDuration = ParseOptFloatCell(cells[7])
	}
	return set, true
}

func parseTimeCell(cell string, date time.Time) (time.Time, bool) {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return time.Time{}, false
	}
	t, err := time.Parse(timeCellLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return time.Date(date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), t.Second(), 0, date.Location()), true
}

// BuildSessionExercises renders the "Exercises" section: one sub-block
// per exercise with its target line, sets table, and trailing Q&A lines.
func BuildSessionExercises(exs []models.SessionExercise) string {
	var sb strings.Builder
	sb.WriteString(sectionPrefix + HeadingExercises + "\n")
	for _, ex := range exs {
		sb.WriteString("\n" + subsectionPrefix + FormatExerciseCell(ex.Exercise, ex.Source) + "\n\n")
		sb.WriteString("Target: " + strconv.Itoa(ex.TargetSets) + " × " +
			FormatRepsCell(ex.TargetRepsMin, ex.TargetRepsMax) + " | Rest: " +
			FormatRestCell(ex.RestSeconds) + "\n\n")

		sb.WriteString(FormatRow(setTableHeader) + "\n")
		sb.WriteString(FormatSeparator(len(setTableHeader)) + "\n")
		for i, set := range ex.Sets {
			sb.WriteString(FormatRow([]string{
				strconv.Itoa(i + 1),
				FormatWeightCell(set.Weight),
				strconv.Itoa(set.Reps),
				FormatOptFloatCell(set.RPE),
				formatTimeCell(set),
				FormatOptRestCell(set.RestSeconds),
				FormatOptRestCell(set.ExtraRestSeconds),
				FormatOptFloatCell(set.AvgRepDuration),
			}) + "\n")
		}

		if ex.RPE != nil {
			sb.WriteString("\n**RPE:** " + FormatOptFloatCell(ex.RPE) + "\n")
		}
		if ex.Engagement != models.EngagementUnset {
			sb.WriteString("\n**" + MuscleQuestion + "** " + ex.Engagement.Label() + "\n")
		}
	}
	return sb.String()
}

func formatTimeCell(set models.LoggedSet) string {
	if !set.Completed || set.Timestamp.IsZero() {
		return "-"
	}
	return set.Timestamp.Format(timeCellLayout)
}
