package ast

import (
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Serialize renders the course back to canonical authored form.
func (c *Course) Serialize() string {
	var b strings.Builder
	writeFrontmatter(&b,
		headerEntry{"type", string(KindCourse)},
		headerEntry{"slug", c.Slug},
		headerEntry{"title", c.Title},
		headerEntry{"tier", string(c.Tier)},
	)
	for _, item := range c.Items {
		switch it := item.(type) {
		case ModuleRef:
			writeHeader(&b, 1, "Module", it.Title)
			writeField(&b, "source", "[["+it.LinkPath+"]]")
			if it.Optional {
				writeField(&b, "optional", "true")
			}
		case MeetingMarker:
			writeHeader(&b, 1, "Meeting", strconv.Itoa(it.Number))
		}
	}
	return b.String()
}

// Serialize renders the module back to canonical authored form.
func (m *Module) Serialize() string {
	var b strings.Builder
	entries := []headerEntry{
		{"type", string(KindModule)},
		{"slug", m.Slug},
		{"title", m.Title},
	}
	if m.ContentID != uuid.Nil {
		entries = append(entries, headerEntry{"id", m.ContentID.String()})
	}
	entries = append(entries, headerEntry{"tier", string(m.Tier)})
	writeFrontmatter(&b, entries...)

	for _, section := range m.Sections {
		switch s := section.(type) {
		case PageSection:
			writeHeader(&b, 1, "Page", s.Title)
			if s.ContentID != uuid.Nil {
				writeField(&b, "id", s.ContentID.String())
			}
			writeSegments(&b, s.Segments, 2)
		case LearningOutcomeRef:
			writeHeader(&b, 1, "Learning-outcome", s.Title)
			writeField(&b, "source", "[["+s.SourcePath+"]]")
			if s.Optional {
				writeField(&b, "optional", "true")
			}
		case UncategorizedSection:
			writeHeader(&b, 1, "Uncategorized", "")
			for _, ref := range s.LensRefs {
				writeLensRef(&b, 2, ref)
			}
		}
	}
	return b.String()
}

// Serialize renders the learning outcome back to canonical authored form.
func (o *LearningOutcome) Serialize() string {
	var b strings.Builder
	entries := []headerEntry{
		{"type", string(KindLearningOutcome)},
	}
	if o.ContentID != uuid.Nil {
		entries = append(entries, headerEntry{"id", o.ContentID.String()})
	}
	entries = append(entries,
		headerEntry{"title", o.Title},
		headerEntry{"discussion", o.DiscussionURL},
		headerEntry{"tier", string(o.Tier)},
	)
	writeFrontmatter(&b, entries...)

	if o.TestRef != nil {
		writeHeader(&b, 2, "Test", o.TestRef.Title)
		writeField(&b, "source", "[["+o.TestRef.SourcePath+"]]")
	}
	for _, ref := range o.LensRefs {
		writeLensRef(&b, 2, ref)
	}
	return b.String()
}

// Serialize renders the lens back to canonical authored form.
func (l *Lens) Serialize() string {
	var b strings.Builder
	entries := []headerEntry{
		{"type", string(KindLens)},
	}
	if l.ContentID != uuid.Nil {
		entries = append(entries, headerEntry{"id", l.ContentID.String()})
	}
	entries = append(entries,
		headerEntry{"title", l.Title},
		headerEntry{"tier", string(l.Tier)},
	)
	writeFrontmatter(&b, entries...)

	for _, section := range l.Sections {
		switch section.Kind {
		case LensVideo:
			writeHeader(&b, 3, "Video", section.Title)
		case LensArticle:
			writeHeader(&b, 3, "Article", section.Title)
		}
		writeField(&b, "source", "[["+section.SourcePath+"]]")
		writeSegments(&b, section.Segments, 4)
	}
	return b.String()
}

func writeLensRef(b *strings.Builder, level int, ref LensRef) {
	writeHeader(b, level, "Lens", ref.Title)
	writeField(b, "source", "[["+ref.SourcePath+"]]")
	if ref.Optional {
		writeField(b, "optional", "true")
	}
}

func writeSegments(b *strings.Builder, segments []Segment, level int) {
	for _, segment := range segments {
		switch s := segment.(type) {
		case TextSegment:
			writeHeader(b, level, "Text", "")
			writeField(b, "content", s.Content)
		case ChatSegment:
			writeHeader(b, level, "Chat", s.Title)
			writeField(b, "instructions", s.Instructions)
			if s.HideFromUser {
				writeField(b, "hidePreviousContentFromUser", "true")
			}
			if s.HideFromTutor {
				writeField(b, "hidePreviousContentFromTutor", "true")
			}
		case ArticleExcerptSegment:
			writeHeader(b, level, "Article-excerpt", "")
			if s.FromAnchor != "" {
				writeField(b, "from", s.FromAnchor)
			}
			if s.ToAnchor != "" {
				writeField(b, "to", s.ToAnchor)
			}
			if s.Optional {
				writeField(b, "optional", "true")
			}
		case VideoExcerptSegment:
			writeHeader(b, level, "Video-excerpt", "")
			if s.FromTime != "" && s.FromTime != "0:00" {
				writeField(b, "from", s.FromTime)
			}
			writeField(b, "to", s.ToTime)
			if s.Optional {
				writeField(b, "optional", "true")
			}
		case QuestionSegment:
			writeHeader(b, level, "Question", "")
			writeField(b, "question", s.UserInstruction)
			if s.AssessmentPrompt != "" {
				writeField(b, "assessment", s.AssessmentPrompt)
			}
			if s.MaxTimeSeconds > 0 {
				writeField(b, "max-time", strconv.Itoa(s.MaxTimeSeconds))
			}
			if s.MaxChars > 0 {
				writeField(b, "max-chars", strconv.Itoa(s.MaxChars))
			}
			if s.EnforceVoice {
				writeField(b, "enforce-voice", "true")
			}
			if s.Feedback != "" {
				writeField(b, "feedback", s.Feedback)
			}
			if s.Optional {
				writeField(b, "optional", "true")
			}
		}
	}
}

type headerEntry struct {
	key   string
	value string
}

func writeFrontmatter(b *strings.Builder, entries ...headerEntry) {
	b.WriteString("---\n")
	for _, entry := range entries {
		if entry.value == "" {
			continue
		}
		b.WriteString(entry.key + ": " + yamlScalar(entry.value) + "\n")
	}
	b.WriteString("---\n")
}

func writeHeader(b *strings.Builder, level int, keyword, title string) {
	b.WriteString(strings.Repeat("#", level) + " " + keyword)
	if title != "" {
		b.WriteString(": " + title)
	}
	b.WriteString("\n")
}

func writeField(b *strings.Builder, name, value string) {
	if value == "" {
		b.WriteString(name + "::\n")
		return
	}
	b.WriteString(name + ":: " + value + "\n")
}

// yamlScalar quotes values the YAML decoder would otherwise mangle.
func yamlScalar(value string) string {
	if strings.ContainsAny(value, ":#'\"{}[]|>&*!?%@`") || strings.TrimSpace(value) != value {
		return strconv.Quote(value)
	}
	return value
}
