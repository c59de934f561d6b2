package flatten

import (
	"fmt"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/excerpt"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// excerptSource carries the resolved leaf file the excerpt segments of a lens
// section draw from. nil in page context, where excerpts are not legal.
type excerptSource struct {
	kind ast.LensSectionKind
	body string
}

// segments resolves authored segments into their served form. file names the
// file the segments were authored in, for diagnostics.
func (t *traversal) segments(file string, list []ast.Segment, src *excerptSource) []interfaces.ResolvedSegment {
	var out []interfaces.ResolvedSegment
	for _, seg := range list {
		switch s := seg.(type) {
		case ast.TextSegment:
			out = append(out, interfaces.ResolvedSegment{
				Kind:    interfaces.SegmentText,
				Content: s.Content,
				HTML:    t.f.render(file, s.Content),
			})
		case ast.ChatSegment:
			out = append(out, interfaces.ResolvedSegment{
				Kind:          interfaces.SegmentChat,
				Title:         s.Title,
				Instructions:  s.Instructions,
				HideFromUser:  s.HideFromUser,
				HideFromTutor: s.HideFromTutor,
			})
		case ast.QuestionSegment:
			out = append(out, interfaces.ResolvedSegment{
				Kind: interfaces.SegmentQuestion,
				Question: &interfaces.QuestionSpec{
					UserInstruction:  s.UserInstruction,
					AssessmentPrompt: s.AssessmentPrompt,
					MaxTimeSeconds:   s.MaxTimeSeconds,
					MaxChars:         s.MaxChars,
					EnforceVoice:     s.EnforceVoice,
					Feedback:         s.Feedback,
				},
				Optional: s.Optional,
			})
		case ast.ArticleExcerptSegment:
			if resolved, ok := t.articleExcerpt(file, s, src); ok {
				out = append(out, resolved)
			}
		case ast.VideoExcerptSegment:
			if resolved, ok := t.videoExcerpt(file, s, src); ok {
				out = append(out, resolved)
			}
		}
	}
	return out
}

// articleExcerpt cuts the anchored span out of the article body. A missing
// from anchor degrades to the whole body with a warning rather than dropping
// the segment.
func (t *traversal) articleExcerpt(file string, seg ast.ArticleExcerptSegment, src *excerptSource) (interfaces.ResolvedSegment, bool) {
	if src == nil || src.kind != ast.LensArticle {
		// The validator already rejected the segment as illegal here.
		return interfaces.ResolvedSegment{}, false
	}
	content, err := excerpt.Article(src.body, seg.FromAnchor, seg.ToAnchor)
	if err != nil {
		t.warnf(file, seg.Line, fmt.Sprintf("from anchor %q not found in source", seg.FromAnchor), "")
	}
	return interfaces.ResolvedSegment{
		Kind:     interfaces.SegmentArticleExcerpt,
		Content:  content,
		HTML:     t.f.render(file, content),
		Optional: seg.Optional,
	}, true
}

// videoExcerpt selects the transcript lines stamped inside [from, to). Bad
// timestamps drop the segment with a warning; an inverted range is an error.
func (t *traversal) videoExcerpt(file string, seg ast.VideoExcerptSegment, src *excerptSource) (interfaces.ResolvedSegment, bool) {
	if src == nil || src.kind != ast.LensVideo {
		return interfaces.ResolvedSegment{}, false
	}
	from, err := excerpt.Seconds(seg.FromTime)
	if err != nil {
		t.warnf(file, seg.Line, fmt.Sprintf("invalid from timestamp %q", seg.FromTime), "from:: 0:00")
		return interfaces.ResolvedSegment{}, false
	}
	to, err := excerpt.Seconds(seg.ToTime)
	if err != nil {
		t.warnf(file, seg.Line, fmt.Sprintf("invalid to timestamp %q", seg.ToTime), "to:: 5:00")
		return interfaces.ResolvedSegment{}, false
	}
	if from >= to {
		t.errorf(file, seg.Line, fmt.Sprintf("excerpt from %s must be before to %s", seg.FromTime, seg.ToTime), "")
		return interfaces.ResolvedSegment{}, false
	}
	return interfaces.ResolvedSegment{
		Kind:     interfaces.SegmentVideoExcerpt,
		Content:  excerpt.TranscriptLines(src.body, from, to),
		Optional: seg.Optional,
	}, true
}
