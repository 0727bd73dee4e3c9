package body

import (
	"strings"

	"github.com/claude/ironvault/internal/models"
)

// ParseReviewAnswers decodes session-level Q&A lines of the form
// "**Question?** Answer (optional free-text comment)". Whitespace around
// the answer and comment is not significant.
func ParseReviewAnswers(content string) []models.QuestionAnswer {
	var out []models.QuestionAnswer
	for _, line := range strings.Split(content, "\n") {
		m := boldLineRe.FindStringSubmatch(strings.TrimSpace(line))
		if m == nil {
			continue
		}
		qa := models.QuestionAnswer{Question: strings.TrimSpace(m[1])}
		answer := strings.TrimSpace(m[2])
		if strings.HasSuffix(answer, ")") {
			if i := strings.LastIndex(answer, "("); i >= 0 {
				qa.FreeText = strings.TrimSpace(answer[i+1 : len(answer)-1])
				answer = strings.TrimSpace(answer[:i])
			}
		}
		qa.Answer = answer
		if qa.Question == "" {
			continue
		}
		out = append(out, qa)
	}
	return out
}

// BuildReviewAnswers renders the "Review" section of a session document.
func BuildReviewAnswers(answers []models.QuestionAnswer) string {
	var sb strings.Builder
	sb.WriteString(sectionPrefix + HeadingReview + "\n\n")
	for _, qa := range answers {
		sb.WriteString("**" + qa.Question + "** " + qa.Answer)
		if qa.FreeText != "" {
			sb.WriteString(" (" + qa.FreeText + ")")
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
