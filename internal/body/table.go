package body

import "strings"

// SplitRow splits a pipe-delimited table row into trimmed cells. Returns
// nil when the line is not a table row.
func SplitRow(line string) []string {
	s := strings.TrimSpace(line)
	if !strings.HasPrefix(s, "|") {
		return nil
	}
	s = strings.TrimPrefix(s, "|")
	s = strings.TrimSuffix(s, "|")
	parts := strings.Split(s, "|")
	cells := make([]string, len(parts))
	for i, p := range parts {
		cells[i] = strings.TrimSpace(p)
	}
	return cells
}

// IsSeparatorRow reports whether cells form the dashed separator row.
func IsSeparatorRow(cells []string) bool {
	if len(cells) == 0 {
		return false
	}
	for _, c := range cells {
		if c == "" {
			return false
		}
		for _, r := range c {
			if r != '-' && r != ':' {
				return false
			}
		}
	}
	return true
}

// FormatRow renders cells as a pipe-delimited row.
func FormatRow(cells []string) string {
	return "| " + strings.Join(cells, " | ") + " |"
}

// FormatSeparator renders the dashed separator row for n columns.
func FormatSeparator(n int) string {
	cells := make([]string, n)
	for i := range cells {
		cells[i] = "---"
	}
	return FormatRow(cells)
}

// tableRows extracts the data rows of the first table in content: cells of
// every row after the header and separator.
func tableRows(content string) [][]string {
	var rows [][]string
	sawHeader := false
	sawSeparator := false
	for _, line := range strings.Split(content, "\n") {
		cells := SplitRow(line)
		if cells == nil {
			if sawSeparator {
				break // table ended
			}
			continue
		}
		switch {
		case !sawHeader:
			sawHeader = true
		case !sawSeparator:
			if IsSeparatorRow(cells) {
				sawSeparator = true
				continue
			}
			// No separator; treat as a data row anyway.
			sawSeparator = true
			rows = append(rows, cells)
		default:
			rows = append(rows, cells)
		}
	}
	return rows
}
