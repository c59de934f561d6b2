package validate

import (
	"strings"

	"github.com/goliatone/go-courseware/internal/ast"
)

// LearningOutcome checks a parsed learning-outcome file. The file is
// excluded when it lacks a usable UUID id, lists no lenses, or carries a lens
// reference with no source, since none of those leave a minimally valid
// outcome to flatten.
func (v *Validator) LearningOutcome(outcome *ast.LearningOutcome) Result {
	var res Result
	file := outcome.Path
	res.Errors = append(res.Errors, headerIssues(file, outcome.Header)...)

	v.checkRequiredID(file, outcome.Header, "learning outcome", &res)

	if value, ok := headerString(outcome.Header, "discussion"); ok && value != "" {
		if !strings.HasPrefix(value, "http://") && !strings.HasPrefix(value, "https://") {
			res.warn(file, 1, "discussion should be a URL", "")
		}
	}

	if outcome.TestRef != nil {
		v.checkFields(file, outcome.TestRef.Raw, ast.TestRefFields, &res)
		v.checkSourceRef(file, "Test", outcome.TestRef.Raw, outcome.TestRef.Line, &res)
	}

	if len(outcome.LensRefs) == 0 {
		res.err(file, 0, "learning outcome requires at least one Lens section", "")
		res.Excluded = true
	}
	for _, ref := range outcome.LensRefs {
		v.checkFields(file, ref.Raw, ast.RefFields, &res)
		if !v.checkSourceRef(file, "Lens", ref.Raw, ref.Line, &res) {
			res.Excluded = true
		}
	}

	v.logger.Debug("learning outcome validated", "file", file, "findings", len(res.Errors), "excluded", res.Excluded)
	return res
}

// checkRequiredID enforces a mandatory UUID id in frontmatter. kind names the
// file kind in messages.
func (v *Validator) checkRequiredID(file string, header map[string]any, kind string, res *Result) {
	if _, ok := header["id"]; !ok {
		res.err(file, 1, kind+" frontmatter needs an id", "")
		res.Excluded = true
		return
	}
	v.checkAuthoredID(file, header, res)
}
