package validate

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/markup"
)

// segmentScope names an enclosing section kind and the excerpt variants it
// permits. Text, Chat, and Question are legal everywhere.
type segmentScope struct {
	section      string
	articleSpans bool
	videoSpans   bool
}

var (
	pageScope    = segmentScope{section: "Page"}
	videoScope   = segmentScope{section: "Video", videoSpans: true}
	articleScope = segmentScope{section: "Article", articleSpans: true}
)

// checkSegments enforces per-segment requirements and the legality of each
// segment kind for its enclosing section.
func (v *Validator) checkSegments(file string, segments []ast.Segment, scope segmentScope, res *Result) {
	for _, segment := range segments {
		switch s := segment.(type) {
		case ast.TextSegment:
			v.checkFields(file, s.Raw, ast.TextFields, res)
			if strings.TrimSpace(s.Content) == "" {
				res.warn(file, s.Line, "text segment has no content", "")
			}
		case ast.ChatSegment:
			v.checkFields(file, s.Raw, ast.ChatFields, res)
			if strings.TrimSpace(s.Instructions) == "" {
				res.err(file, s.Line, "chat segment needs an instructions field", "instructions:: Guide the learner through the material.")
			}
		case ast.QuestionSegment:
			v.checkFields(file, s.Raw, ast.QuestionFields, res)
			if strings.TrimSpace(s.UserInstruction) == "" {
				res.err(file, s.Line, "question segment needs a question field", "question:: What did you take away?")
			}
			v.checkCount(file, s.Raw, "max-time", res)
			v.checkCount(file, s.Raw, "max-chars", res)
		case ast.ArticleExcerptSegment:
			v.checkFields(file, s.Raw, ast.ArticleExcerptFields, res)
			if !scope.articleSpans {
				res.err(file, s.Line, fmt.Sprintf("Article-excerpt segments are not allowed in a %s section", scope.section), "")
			}
		case ast.VideoExcerptSegment:
			v.checkFields(file, s.Raw, ast.VideoExcerptFields, res)
			if !scope.videoSpans {
				res.err(file, s.Line, fmt.Sprintf("Video-excerpt segments are not allowed in a %s section", scope.section), "")
			}
			if strings.TrimSpace(s.ToTime) == "" {
				res.err(file, s.Line, "video excerpt needs a to timestamp", "to:: 5:00")
			}
		}
	}
}

func (v *Validator) checkCount(file string, block markup.FieldBlock, name string, res *Result) {
	if !block.Has(name) {
		return
	}
	value := block.Value(name)
	if n, err := strconv.Atoi(value); err != nil || n < 0 {
		field, _ := block.FieldFor(name)
		res.err(file, field.Line, fmt.Sprintf("field %q must be a whole number", name), "")
	}
}
