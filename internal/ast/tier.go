package ast

import "strings"

// Tier is the content-maturity label a file declares in frontmatter. The
// flattener compares tiers across references: linking from a higher tier into
// a lower one is a policy violation, and the terminal validator-ignore tier
// excludes content from output entirely.
type Tier string

const (
	TierProduction      Tier = "production"
	TierWIP             Tier = "wip"
	TierValidatorIgnore Tier = "validator-ignore"
)

// ParseTier maps the frontmatter spellings onto a tier. The second return is
// false for unrecognized labels.
func ParseTier(value string) (Tier, bool) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "production", "prod":
		return TierProduction, true
	case "wip", "work-in-progress":
		return TierWIP, true
	case "validator-ignore", "ignore":
		return TierValidatorIgnore, true
	default:
		return "", false
	}
}

// Rank orders tiers for the violation check; a reference from a higher rank
// into a lower rank is a violation. Unknown tiers rank zero.
func (t Tier) Rank() int {
	switch t {
	case TierProduction:
		return 3
	case TierWIP:
		return 2
	case TierValidatorIgnore:
		return 1
	default:
		return 0
	}
}
