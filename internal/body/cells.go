package body

import (
	"strconv"
	"strings"
)

// BodyweightLabel is the textual form of the weight-0 sentinel.
const BodyweightLabel = "body weight"

// ParseWeightCell decodes a weight cell. "body weight", "-", "", and "0"
// all mean the bodyweight sentinel (0); anything unparseable falls back
// to 0 as well.
func ParseWeightCell(cell string) float64 {
	s := strings.ToLower(strings.TrimSpace(cell))
	switch s {
	case BodyweightLabel, "-", "", "0":
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || f < 0 {
		return 0
	}
	return f
}

// FormatWeightCell renders a weight; 0 always becomes "body weight".
func FormatWeightCell(w float64) string {
	if w == 0 {
		return BodyweightLabel
	}
	return strconv.FormatFloat(w, 'f', -1, 64)
}

// ParseRestCell decodes an "Ns" rest cell; fallback 0.
func ParseRestCell(cell string) int {
	s := strings.TrimSuffix(strings.TrimSpace(cell), "s")
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}

// FormatRestCell renders seconds with the "s" suffix.
func FormatRestCell(seconds int) string {
	return strconv.Itoa(seconds) + "s"
}

// ParseRepsCell decodes "min" or "min-max". A bare minimum yields
// min == max; fallback (0, 0).
func ParseRepsCell(cell string) (min, max int) {
	s := strings.TrimSpace(cell)
	if i := strings.IndexByte(s, '-'); i > 0 {
		lo, err1 := strconv.Atoi(strings.TrimSpace(s[:i]))
		hi, err2 := strconv.Atoi(strings.TrimSpace(s[i+1:]))
		if err1 != nil || err2 != nil {
			return 0, 0
		}
		return lo, hi
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, 0
	}
	return n, n
}

// FormatRepsCell renders a rep range, collapsing min == max (or an unset
// max) to the bare minimum.
func FormatRepsCell(min, max int) string {
	if max > min {
		return strconv.Itoa(min) + "-" + strconv.Itoa(max)
	}
	return strconv.Itoa(min)
}

// ParseIntCell decodes an integer cell; "-" and "" mean fallback.
func ParseIntCell(cell string, fallback int) int {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return fallback
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return n
}

// ParseOptFloatCell decodes an optional numeric cell; "-" and "" are nil.
func ParseOptFloatCell(cell string) *float64 {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &f
}

// ParseOptRestCell decodes an optional "Ns" cell; "-" and "" are nil.
func ParseOptRestCell(cell string) *int {
	s := strings.TrimSpace(cell)
	if s == "" || s == "-" {
		return nil
	}
	n := ParseRestCell(s)
	return &n
}

// FormatOptFloatCell renders an optional float; nil becomes "-".
func FormatOptFloatCell(v *float64) string {
	if v == nil {
		return "-"
	}
	return strconv.FormatFloat(*v, 'f', -1, 64)
}

// FormatOptRestCell renders an optional rest; nil becomes "-".
func FormatOptRestCell(v *int) string {
	if v == nil {
		return "-"
	}
	return FormatRestCell(*v)
}
