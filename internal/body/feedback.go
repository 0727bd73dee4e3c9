package body

import (
	"strings"

	"github.com/claude/ironvault/internal/frontmatter"
)

// ParseCoachFeedback returns the current coach-feedback text from a
// session body, and ParsePreviousFeedback the superseded one. The two
// sections share a heading prefix and must not be confused.
func ParseCoachFeedback(text string) string {
	content, ok := Section(text, HeadingCoachFeedback)
	if !ok {
		return ""
	}
	return unwrapFeedback(content)
}

// ParsePreviousFeedback returns the "Coach Feedback (Previous)" text.
func ParsePreviousFeedback(text string) string {
	content, ok := Section(text, HeadingPrevFeedback)
	if !ok {
		return ""
	}
	return unwrapFeedback(content)
}

// unwrapFeedback strips a surrounding code fence when present; plain
// content comes back trimmed.
func unwrapFeedback(content string) string {
	s := strings.TrimSpace(content)
	if !strings.HasPrefix(s, codeFence) {
		return s
	}
	s = strings.TrimPrefix(s, codeFence)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:] // drop the fence line's language tag, if any
	}
	if i := strings.LastIndex(s, codeFence); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, "\n")
}

// BuildCoachFeedback renders a feedback section. Content that itself
// parses as a metadata block is wrapped in a code fence so its fences
// cannot be mistaken for the document's own.
func BuildCoachFeedback(heading, feedback string) string {
	var sb strings.Builder
	sb.WriteString(sectionPrefix + heading + "\n\n")
	if looksLikeMetadataBlock(feedback) {
		sb.WriteString(codeFence + "\n" + feedback)
		if !strings.HasSuffix(feedback, "\n") {
			sb.WriteByte('\n')
		}
		sb.WriteString(codeFence + "\n")
	} else {
		sb.WriteString(strings.TrimSpace(feedback) + "\n")
	}
	return sb.String()
}

func looksLikeMetadataBlock(text string) bool {
	block, _ := frontmatter.Parse(text)
	return block != nil
}
