package parser

import (
	"strconv"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// parseSegments builds the segment list for one section region. Every
// recognized segment kind is accepted here regardless of the enclosing
// section; the validator enforces the legality table so the findings land in
// one place.
func (p *Parser) parseSegments(path, region string, baseLine, level int) ([]ast.Segment, []interfaces.ContentError) {
	var errs []interfaces.ContentError

	sections, findings := markup.Split(region, baseLine, level, ast.SegmentKeywords)
	errs = appendFindings(errs, path, findings)

	segments := make([]ast.Segment, 0, len(sections))
	for _, section := range sections {
		fields, fieldFindings := markup.ParseFields(section.Body, section.BodyLine, ast.SegmentFields(section.Keyword))
		errs = appendFindings(errs, path, fieldFindings)

		switch section.Keyword {
		case "Text":
			segments = append(segments, ast.TextSegment{
				Content: fields.Value("content"),
				Line:    section.Line,
				Raw:     fields,
			})
		case "Chat":
			segments = append(segments, ast.ChatSegment{
				Instructions:  fields.Value("instructions"),
				Title:         section.Title,
				HideFromUser:  boolField(fields, "hidePreviousContentFromUser"),
				HideFromTutor: boolField(fields, "hidePreviousContentFromTutor"),
				Line:          section.Line,
				Raw:           fields,
			})
		case "Article-excerpt":
			segments = append(segments, ast.ArticleExcerptSegment{
				FromAnchor: fields.Value("from"),
				ToAnchor:   fields.Value("to"),
				Optional:   boolField(fields, "optional"),
				Line:       section.Line,
				Raw:        fields,
			})
		case "Video-excerpt":
			from := fields.Value("from")
			if from == "" {
				from = "0:00"
			}
			segments = append(segments, ast.VideoExcerptSegment{
				FromTime: from,
				ToTime:   fields.Value("to"),
				Optional: boolField(fields, "optional"),
				Line:     section.Line,
				Raw:      fields,
			})
		case "Question":
			segments = append(segments, ast.QuestionSegment{
				UserInstruction:  fields.Value("question"),
				AssessmentPrompt: fields.Value("assessment"),
				MaxTimeSeconds:   intField(fields, "max-time"),
				MaxChars:         intField(fields, "max-chars"),
				EnforceVoice:     boolField(fields, "enforce-voice"),
				Feedback:         fields.Value("feedback"),
				Optional:         boolField(fields, "optional"),
				Line:             section.Line,
				Raw:              fields,
			})
		}
	}
	return segments, errs
}

// intField reads a numeric field leniently; the validator reports values that
// are not whole numbers.
func intField(fields markup.FieldBlock, name string) int {
	value, ok := fields.Get(name)
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
