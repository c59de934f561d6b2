package validate

import (
	"fmt"
	"strings"

	"github.com/xrash/smetrics"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
)

// checkFields reports unknown field names, suggesting the nearest known name
// within edit distance two, and enforces that boolean fields carry only
// "true" or "false".
func (v *Validator) checkFields(file string, block markup.FieldBlock, known []string, res *Result) {
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}

	seen := map[string]bool{}
	for _, field := range block.Fields {
		if seen[field.Name] {
			continue
		}
		seen[field.Name] = true
		if knownSet[field.Name] {
			continue
		}
		suggestion := ""
		if near := nearestName(field.Name, known); near != "" {
			suggestion = fmt.Sprintf("did you mean %q?", near)
		}
		res.warn(file, field.Line, fmt.Sprintf("unknown field %q", field.Name), suggestion)
	}

	for _, name := range ast.BooleanFields {
		if !knownSet[name] || !block.Has(name) {
			continue
		}
		if value := block.Value(name); value != "true" && value != "false" {
			field, _ := block.FieldFor(name)
			res.err(file, field.Line, fmt.Sprintf("field %q must be \"true\" or \"false\"", name), name+":: true")
		}
	}
}

// checkSourceRef reports a missing or malformed source field on a reference
// section. kind names the section in messages. Returns true when the source
// resolves to a wikilink path.
func (v *Validator) checkSourceRef(file, kind string, block markup.FieldBlock, line int, res *Result) bool {
	value, has := block.Get("source")
	if !has || strings.TrimSpace(value) == "" {
		res.err(file, line, kind+" section needs a source field", "source:: [[path/to/file]]")
		return false
	}
	if _, ok := markup.ParseWikilink(value); !ok {
		field, _ := block.FieldFor("source")
		res.err(file, field.Line, "source must be a wikilink", "source:: [["+strings.TrimSpace(value)+"]]")
		return false
	}
	return true
}

// nearestName returns the known field name closest to name, or "" when none
// is within edit distance two.
func nearestName(name string, known []string) string {
	best, bestDist := "", 3
	for _, candidate := range known {
		d := smetrics.WagnerFischer(strings.ToLower(name), strings.ToLower(candidate), 1, 1, 1)
		if d < bestDist {
			best, bestDist = candidate, d
		}
	}
	return best
}
