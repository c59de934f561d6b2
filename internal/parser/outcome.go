package parser

import (
	"fmt"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// ParseLearningOutcome reads a learning outcome file: frontmatter identity, an
// optional test reference, and the lens references that make up the outcome.
func (p *Parser) ParseLearningOutcome(path, raw string) (*ast.LearningOutcome, []interfaces.ContentError) {
	var errs []interfaces.ContentError
	header := p.parseHeader(path, raw, &errs)

	outcome := &ast.LearningOutcome{
		Path:          path,
		Title:         header.fm.HeaderString("title"),
		ContentID:     contentID(header.fm),
		DiscussionURL: header.fm.HeaderString("discussion"),
		Tier:          header.tier,
		Header:        header.fm.Header,
	}

	sections, findings := markup.Split(header.body, header.fm.BodyLine, 2, ast.OutcomeSectionKeywords)
	errs = appendFindings(errs, path, findings)

	for _, section := range sections {
		switch section.Keyword {
		case "Test":
			fields, fieldFindings := markup.ParseFields(section.Body, section.BodyLine, ast.TestRefFields)
			errs = appendFindings(errs, path, fieldFindings)
			if outcome.TestRef != nil {
				errs = append(errs, interfaces.ContentError{
					File:     path,
					Line:     section.Line,
					Message:  fmt.Sprintf("duplicate Test section overrides the one from line %d", outcome.TestRef.Line),
					Severity: interfaces.SeverityWarning,
				})
			}
			outcome.TestRef = &ast.TestRef{
				Title:      section.Title,
				SourcePath: linkPath(fields),
				Line:       section.Line,
				Raw:        fields,
			}
		case "Lens":
			fields, fieldFindings := markup.ParseFields(section.Body, section.BodyLine, ast.RefFields)
			errs = appendFindings(errs, path, fieldFindings)
			outcome.LensRefs = append(outcome.LensRefs, ast.LensRef{
				Title:      section.Title,
				SourcePath: linkPath(fields),
				Optional:   boolField(fields, "optional"),
				Line:       section.Line,
				Raw:        fields,
			})
		}
	}

	p.logger.Debug("learning outcome parsed",
		"file", path,
		"lens_refs", len(outcome.LensRefs),
		"errors", len(errs),
	)
	return outcome, errs
}
