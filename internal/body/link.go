package body

import (
	"strings"

	"github.com/claude/ironvault/internal/models"
)

// ParseLink extracts the target and alias from a "[[target]]" or
// "[[target|alias]]" bracket-link. Any folder prefix on the target is
// stripped, so "[[Exercises/bench-press|Bench]]" yields "bench-press".
func ParseLink(s string) (target, alias string, ok bool) {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "[[") || !strings.HasSuffix(s, "]]") {
		return "", "", false
	}
	inner := s[2 : len(s)-2]
	if i := strings.IndexByte(inner, '|'); i >= 0 {
		alias = strings.TrimSpace(inner[i+1:])
		inner = inner[:i]
	}
	if i := strings.LastIndexByte(inner, '/'); i >= 0 {
		inner = inner[i+1:]
	}
	// Anchors reference a section of the target, not a different record.
	if i := strings.IndexByte(inner, '#'); i >= 0 {
		inner = inner[:i]
	}
	target = strings.TrimSpace(inner)
	return target, alias, target != ""
}

// FormatLink renders a bracket-link, with an alias when given.
func FormatLink(target, alias string) string {
	if alias != "" && alias != target {
		return "[[" + target + "|" + alias + "]]"
	}
	return "[[" + target + "]]"
}

// ParseExerciseCell decodes an exercise reference cell. A bracket-link
// means a custom, file-backed exercise; bare text means a database one.
func ParseExerciseCell(cell string) (name string, source models.Source) {
	if target, _, ok := ParseLink(cell); ok {
		return target, models.SourceCustom
	}
	return strings.TrimSpace(cell), models.SourceDatabase
}

// FormatExerciseCell renders an exercise reference. Custom exercises are
// always emitted as links; database and unknown sources stay plain.
func FormatExerciseCell(name string, source models.Source) string {
	if source == models.SourceCustom {
		return FormatLink(name, "")
	}
	return name
}
