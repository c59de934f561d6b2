package ast

// Section keyword sets per file kind. The module set includes the legacy flat
// section types so they are recognized and rejected with a precise message
// instead of surfacing as unknown keywords.
var (
	CourseSectionKeywords  = []string{"Module", "Meeting"}
	ModuleSectionKeywords  = []string{"Page", "Learning-outcome", "Uncategorized", "Article", "Video", "Text", "Chat"}
	OutcomeSectionKeywords = []string{"Test", "Lens"}
	LensSectionKeywords    = []string{"Video", "Article"}

	// SegmentKeywords is the union recognized at segment level; the validator
	// enforces which kinds are legal per enclosing section.
	SegmentKeywords = []string{"Text", "Chat", "Question", "Article-excerpt", "Video-excerpt"}

	// LegacyModuleSections are recognized and rejected at module top level.
	LegacyModuleSections = []string{"Article", "Video", "Text", "Chat"}
)

// Recognized fields per section or segment kind. These back both the
// single-colon typo detection during parsing and the validator's
// unknown-field suggestions.
var (
	RefFields         = []string{"source", "optional"}
	TestRefFields     = []string{"source"}
	PageFields        = []string{"id"}
	LensSectionFields = []string{"source"}

	TextFields           = []string{"content"}
	ChatFields           = []string{"instructions", "hidePreviousContentFromUser", "hidePreviousContentFromTutor"}
	ArticleExcerptFields = []string{"from", "to", "optional"}
	VideoExcerptFields   = []string{"from", "to", "optional"}
	QuestionFields       = []string{"question", "assessment", "max-time", "max-chars", "enforce-voice", "feedback", "optional"}
)

// SegmentFields returns the recognized fields for a segment keyword.
func SegmentFields(keyword string) []string {
	switch keyword {
	case "Text":
		return TextFields
	case "Chat":
		return ChatFields
	case "Article-excerpt":
		return ArticleExcerptFields
	case "Video-excerpt":
		return VideoExcerptFields
	case "Question":
		return QuestionFields
	default:
		return nil
	}
}

// BooleanFields names every field that must carry only "true" or "false".
var BooleanFields = []string{"optional", "hidePreviousContentFromUser", "hidePreviousContentFromTutor", "enforce-voice"}
