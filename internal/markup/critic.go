package markup

import "regexp"

var (
	criticComment  = regexp.MustCompile(`(?s)\{>>.*?<<\}`)
	criticAddition = regexp.MustCompile(`(?s)\{\+\+.*?\+\+\}`)
	criticDeletion = regexp.MustCompile(`(?s)\{--(.*?)--\}`)
)

// StripCritic removes editorial review markup from body text. Comments and
// additions are dropped entirely, deletions keep their inner text (rejecting a
// proposed deletion means keeping the original). The transform is pure and
// idempotent, and must run before section or field parsing so markup never
// corrupts a header line or field value.
func StripCritic(text string) string {
	text = criticComment.ReplaceAllString(text, "")
	text = criticAddition.ReplaceAllString(text, "")
	text = criticDeletion.ReplaceAllString(text, "$1")
	return text
}
