package interfaces

import "github.com/google/uuid"

// Severity classifies a ContentError. Only two levels exist: warnings never
// block compilation of the file they apply to, errors may.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ContentError is the single diagnostic record produced by every compiler
// stage. Errors are accumulated, never raised across file boundaries, so a
// broken file cannot abort the batch.
type ContentError struct {
	File       string   `json:"file"`
	Line       int      `json:"line,omitempty"`
	Message    string   `json:"message"`
	Suggestion string   `json:"suggestion,omitempty"`
	Severity   Severity `json:"severity"`
}

// ProgressionKind discriminates course progression entries.
type ProgressionKind string

const (
	ProgressionModule  ProgressionKind = "module"
	ProgressionMeeting ProgressionKind = "meeting"
)

// ProgressionItem is one entry in a course progression: either a reference to
// a module (by resolved frontmatter slug, never a filename-derived value) or a
// meeting marker.
type ProgressionItem struct {
	Kind     ProgressionKind `json:"kind"`
	Slug     string          `json:"slug,omitempty"`
	Optional bool            `json:"optional,omitempty"`
	Number   int             `json:"number,omitempty"`
}

// Course is the compiled view of a course file.
type Course struct {
	Slug        string            `json:"slug"`
	Title       string            `json:"title"`
	Href        string            `json:"href,omitempty"`
	Progression []ProgressionItem `json:"progression"`
}

// SectionKind enumerates the flattened section types the runtime renders.
type SectionKind string

const (
	SectionPage    SectionKind = "page"
	SectionArticle SectionKind = "article"
	SectionVideo   SectionKind = "video"
)

// SourceMeta carries presentation metadata lifted from a source file's
// frontmatter during flattening. Articles populate Title/Author/SourceURL,
// video transcripts populate Title/Channel/SourceURL.
type SourceMeta struct {
	Title     string `json:"title,omitempty"`
	Author    string `json:"author,omitempty"`
	SourceURL string `json:"source_url,omitempty"`
	Channel   string `json:"channel,omitempty"`
}

// SegmentKind enumerates resolved segment types.
type SegmentKind string

const (
	SegmentText           SegmentKind = "text"
	SegmentChat           SegmentKind = "chat"
	SegmentArticleExcerpt SegmentKind = "article-excerpt"
	SegmentVideoExcerpt   SegmentKind = "video-excerpt"
	SegmentQuestion       SegmentKind = "question"
)

// QuestionSpec describes an assessed question segment.
type QuestionSpec struct {
	UserInstruction  string `json:"user_instruction"`
	AssessmentPrompt string `json:"assessment_prompt,omitempty"`
	MaxTimeSeconds   int    `json:"max_time_seconds,omitempty"`
	MaxChars         int    `json:"max_chars,omitempty"`
	EnforceVoice     bool   `json:"enforce_voice,omitempty"`
	Feedback         string `json:"feedback,omitempty"`
}

// ResolvedSegment is a fully dereferenced segment: excerpts carry their
// extracted text in Content, text segments optionally carry rendered HTML when
// markdown rendering is enabled.
type ResolvedSegment struct {
	Kind          SegmentKind   `json:"kind"`
	Content       string        `json:"content,omitempty"`
	HTML          string        `json:"html,omitempty"`
	Title         string        `json:"title,omitempty"`
	Instructions  string        `json:"instructions,omitempty"`
	HideFromUser  bool          `json:"hide_from_user,omitempty"`
	HideFromTutor bool          `json:"hide_from_tutor,omitempty"`
	Question      *QuestionSpec `json:"question,omitempty"`
	Optional      bool          `json:"optional,omitempty"`
}

// FlattenedSection is one linearized section of a compiled module. No
// cross-file references remain: segments are resolved and source metadata is
// inlined.
type FlattenedSection struct {
	Kind      SectionKind       `json:"kind"`
	ContentID uuid.UUID         `json:"content_id"`
	Meta      SourceMeta        `json:"meta"`
	Segments  []ResolvedSegment `json:"segments"`
	Optional  bool              `json:"optional,omitempty"`
}

// FlattenedModule is the compiler's primary output: a module with every
// learning-outcome and lens reference resolved into a flat section list.
type FlattenedModule struct {
	Slug      string             `json:"slug"`
	Title     string             `json:"title"`
	ContentID uuid.UUID          `json:"content_id"`
	Href      string             `json:"href,omitempty"`
	Sections  []FlattenedSection `json:"sections"`
}
