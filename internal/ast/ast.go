package ast

import (
	"github.com/google/uuid"

	"github.com/goliatone/go-courseware/internal/markup"
)

// FileKind identifies which grammar a corpus file follows.
type FileKind string

const (
	KindCourse          FileKind = "course"
	KindModule          FileKind = "module"
	KindLearningOutcome FileKind = "learning-outcome"
	KindLens            FileKind = "lens"
	KindSource          FileKind = "source"
)

// Course is the typed AST of a course file: an ordered progression of module
// references and meeting markers.
type Course struct {
	Path   string
	Slug   string
	Title  string
	Tier   Tier
	Header map[string]any
	Items  []CourseItem
}

// CourseItem is a progression entry: ModuleRef or MeetingMarker.
type CourseItem interface{ courseItem() }

// ModuleRef references a module by its authored wikilink path. The path is
// never turned into a slug here; the corpus-wide resolution pass maps it onto
// the target module's frontmatter slug.
type ModuleRef struct {
	Title    string
	LinkPath string
	Optional bool
	Line     int
	Raw      markup.FieldBlock
}

// MeetingMarker marks a synchronous meeting point in the progression.
type MeetingMarker struct {
	Number int
	Line   int
}

func (ModuleRef) courseItem()     {}
func (MeetingMarker) courseItem() {}

// Module is the typed AST of a module file.
type Module struct {
	Path      string
	Slug      string
	Title     string
	ContentID uuid.UUID
	Tier      Tier
	Header    map[string]any
	Sections  []ModuleSection
}

// ModuleSection is a top-level module entry: PageSection,
// LearningOutcomeRef, or UncategorizedSection. These three are the only legal
// kinds at this level.
type ModuleSection interface{ moduleSection() }

// PageSection is inline authored content: a titled list of segments. The
// ContentID is zero when the author did not declare one; the flattener then
// derives a deterministic id.
type PageSection struct {
	Title     string
	ContentID uuid.UUID
	Segments  []Segment
	Line      int
	Raw       markup.FieldBlock
}

// LearningOutcomeRef points at a learning-outcome file.
type LearningOutcomeRef struct {
	Title      string
	SourcePath string
	Optional   bool
	Line       int
	Raw        markup.FieldBlock
}

// UncategorizedSection buckets bare lens references that belong to no
// learning outcome.
type UncategorizedSection struct {
	LensRefs []LensRef
	Line     int
}

func (PageSection) moduleSection()          {}
func (LearningOutcomeRef) moduleSection()   {}
func (UncategorizedSection) moduleSection() {}

// LearningOutcome is the typed AST of a learning-outcome file.
type LearningOutcome struct {
	Path          string
	Title         string
	ContentID     uuid.UUID
	DiscussionURL string
	TestRef       *TestRef
	LensRefs      []LensRef
	Tier          Tier
	Header        map[string]any
}

// TestRef points at the source file backing a learning-outcome test.
type TestRef struct {
	Title      string
	SourcePath string
	Line       int
	Raw        markup.FieldBlock
}

// LensRef points at a lens file. Used by learning outcomes and by the module
// Uncategorized bucket.
type LensRef struct {
	Title      string
	SourcePath string
	Optional   bool
	Line       int
	Raw        markup.FieldBlock
}

// Lens is the typed AST of a lens file: the sections that carry actual
// video/article material.
type Lens struct {
	Path      string
	Title     string
	ContentID uuid.UUID
	Tier      Tier
	Header    map[string]any
	Sections  []LensSection
}

// LensSectionKind tags a lens section as video- or article-backed.
type LensSectionKind string

const (
	LensVideo   LensSectionKind = "video"
	LensArticle LensSectionKind = "article"
)

// LensSection is one video or article section inside a lens. SourcePath names
// the transcript or article file its excerpt segments draw from.
type LensSection struct {
	Kind       LensSectionKind
	Title      string
	SourcePath string
	Segments   []Segment
	Line       int
	Raw        markup.FieldBlock
}

// Segment is the smallest authored unit: Text, Chat, ArticleExcerpt,
// VideoExcerpt, or Question. Which kinds are legal depends on the enclosing
// section; the validator enforces the legality table.
type Segment interface{ segment() }

// TextSegment is freeform authored prose.
type TextSegment struct {
	Content string
	Line    int
	Raw     markup.FieldBlock
}

// ChatSegment prompts a tutored conversation.
type ChatSegment struct {
	Instructions  string
	Title         string
	HideFromUser  bool
	HideFromTutor bool
	Line          int
	Raw           markup.FieldBlock
}

// ArticleExcerptSegment selects a span of an article body by literal
// substring anchors. Both anchors absent means the entire body.
type ArticleExcerptSegment struct {
	FromAnchor string
	ToAnchor   string
	Optional   bool
	Line       int
	Raw        markup.FieldBlock
}

// VideoExcerptSegment selects transcript lines by timestamp range. From
// defaults to "0:00"; To is mandatory.
type VideoExcerptSegment struct {
	FromTime string
	ToTime   string
	Optional bool
	Line     int
	Raw      markup.FieldBlock
}

// QuestionSegment is an assessed free-response prompt.
type QuestionSegment struct {
	UserInstruction  string
	AssessmentPrompt string
	MaxTimeSeconds   int
	MaxChars         int
	EnforceVoice     bool
	Feedback         string
	Optional         bool
	Line             int
	Raw              markup.FieldBlock
}

func (TextSegment) segment()           {}
func (ChatSegment) segment()           {}
func (ArticleExcerptSegment) segment() {}
func (VideoExcerptSegment) segment()   {}
func (QuestionSegment) segment()       {}
