package frontmatter

import (
	"strconv"
	"strings"
)

// decodeScalar converts a raw cell of text into a typed scalar. Matching
// single or double quotes are stripped first; the quoted content is always
// a string, and double-quoted content additionally unescapes \n, \" and
// \\ so that quoting can carry any text through the line-based format.
// Unquoted text becomes a bool for true/false, a float64 when the text is
// a number that survives a format round trip, and a plain string
// otherwise.
func decodeScalar(raw string) any {
	s := strings.TrimSpace(raw)
	if len(s) >= 2 {
		if s[0] == '"' && s[len(s)-1] == '"' {
			return unescapeString(s[1 : len(s)-1])
		}
		if s[0] == '\'' && s[len(s)-1] == '\'' {
			return s[1 : len(s)-1]
		}
	}
	switch s {
	case "true":
		return true
	case "false":
		return false
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		// Only treat as a number if formatting it back reproduces the
		// source text; "007" and "1e3" stay strings.
		if strconv.FormatFloat(f, 'f', -1, 64) == s {
			return f
		}
	}
	return s
}

// formatScalar renders a scalar for serialization. Strings are quoted when
// re-parsing them unquoted would change their meaning: a leading [[ reads
// as a link, a colon, hash, or comma would be cut at the wrong place, and
// text that reads back as a bool, number, array, or quoted string would
// change type. Quoted strings escape newlines so a multi-line value
// cannot split the line-based format.
func formatScalar(v any) string {
	switch t := v.(type) {
	case string:
		if needsQuoting(t) {
			return quoteString(t)
		}
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case int:
		return strconv.Itoa(t)
	case int64:
		return strconv.FormatInt(t, 10)
	default:
		return ""
	}
}

func needsQuoting(s string) bool {
	if s == "" {
		// A bare "key:" line opens a nested block instead.
		return true
	}
	if strings.HasPrefix(s, "[") {
		// Reads back as a link or an inline array.
		return true
	}
	if strings.ContainsAny(s, ":#,\n") {
		return true
	}
	if strings.TrimSpace(s) != s {
		return true
	}
	// Anything decodeScalar would not hand back unchanged: true/false,
	// numeric text like "42", or text wrapped in matching quotes.
	v, ok := decodeScalar(s).(string)
	return !ok || v != s
}

// quoteString wraps s in double quotes, escaping the characters the
// quoted form cannot carry literally.
func quoteString(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		default:
			b.WriteByte(s[i])
		}
	}
	b.WriteByte('"')
	return b.String()
}

// unescapeString reverses quoteString's escapes. Unknown escape pairs
// keep the backslash literally.
func unescapeString(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' && i+1 < len(s) {
			switch s[i+1] {
			case 'n':
				b.WriteByte('\n')
				i++
				continue
			case '\\', '"':
				b.WriteByte(s[i+1])
				i++
				continue
			}
		}
		b.WriteByte(s[i])
	}
	return b.String()
}

// splitInlineArray splits the interior of an inline array on commas,
// leaving quoted segments intact.
func splitInlineArray(s string) []string {
	var parts []string
	var quote byte
	start := 0
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case quote != 0:
			if quote == '"' && c == '\\' {
				i++ // escaped character, never a closing quote
				continue
			}
			if c == quote {
				quote = 0
			}
		case c == '"' || c == '\'':
			quote = c
		case c == ',':
			parts = append(parts, s[start:i])
			start = i + 1
		}
	}
	parts = append(parts, s[start:])
	return parts
}
