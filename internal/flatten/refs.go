package flatten

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/goliatone/go-courseware/internal/ast"
	"github.com/goliatone/go-courseware/internal/fileset"
	"github.com/goliatone/go-courseware/internal/identity"
	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// page flattens an inline page section. index is the section's position in
// the module, used to derive a stable id when the author declared none.
func (t *traversal) page(module *ast.Module, index int, section ast.PageSection) interfaces.FlattenedSection {
	out := interfaces.FlattenedSection{
		Kind:      interfaces.SectionPage,
		ContentID: section.ContentID,
		Meta:      interfaces.SourceMeta{Title: section.Title},
	}
	if out.ContentID == uuid.Nil {
		out.ContentID = identity.SectionUUID(module.Path, index, section.Title)
	}
	out.Segments = t.segments(module.Path, section.Segments, nil)
	return out
}

// outcomeRef expands a learning-outcome reference into the lens sections it
// transitively names. The outcome file itself contributes no section of its
// own.
func (t *traversal) outcomeRef(fromPath string, refTier ast.Tier, ref ast.LearningOutcomeRef, out *interfaces.FlattenedModule) {
	if ref.SourcePath == "" {
		return
	}
	path, ok := t.f.corpus.Resolve(fromPath, ref.SourcePath)
	if !ok {
		t.unresolved(fromPath, ref.Line, ref.SourcePath)
		return
	}
	if !t.enter(fromPath, ref.Line, path) {
		return
	}
	tier, ok := t.follow(fromPath, ref.Line, refTier, path)
	if !ok {
		return
	}
	outcome, ok := t.f.corpus.Outcome(path)
	if !ok {
		t.errorf(fromPath, ref.Line, fmt.Sprintf("%q is not a learning outcome", ref.SourcePath), "")
		return
	}
	if t.f.corpus.Excluded(path) {
		return
	}
	for _, lens := range outcome.LensRefs {
		t.lensRef(path, tier, lens, ref.Optional || lens.Optional, out)
	}
}

// lensRef expands a lens reference into one flattened section per lens
// section. optional is the flag accumulated along the reference chain.
func (t *traversal) lensRef(fromPath string, refTier ast.Tier, ref ast.LensRef, optional bool, out *interfaces.FlattenedModule) {
	if ref.SourcePath == "" {
		return
	}
	path, ok := t.f.corpus.Resolve(fromPath, ref.SourcePath)
	if !ok {
		t.unresolved(fromPath, ref.Line, ref.SourcePath)
		return
	}
	if !t.enter(fromPath, ref.Line, path) {
		return
	}
	tier, ok := t.follow(fromPath, ref.Line, refTier, path)
	if !ok {
		return
	}
	lens, ok := t.f.corpus.Lens(path)
	if !ok {
		t.errorf(fromPath, ref.Line, fmt.Sprintf("%q is not a lens", ref.SourcePath), "")
		return
	}
	if t.f.corpus.Excluded(path) {
		return
	}
	for _, section := range lens.Sections {
		t.lensSection(lens, tier, section, optional, out)
	}
}

// lensSection resolves one lens section's backing source file and appends the
// flattened section. Every section of a lens carries the lens's content id.
func (t *traversal) lensSection(lens *ast.Lens, refTier ast.Tier, section ast.LensSection, optional bool, out *interfaces.FlattenedModule) {
	if section.SourcePath == "" {
		return
	}
	path, ok := t.f.corpus.Resolve(lens.Path, section.SourcePath)
	if !ok {
		t.unresolved(lens.Path, section.Line, section.SourcePath)
		return
	}
	if !t.leaf(lens.Path, section.Line, path) {
		return
	}
	if _, ok := t.follow(lens.Path, section.Line, refTier, path); !ok {
		return
	}
	src, ok := t.f.corpus.Source(path)
	if !ok {
		t.errorf(lens.Path, section.Line, fmt.Sprintf("cannot read source %q", section.SourcePath), "")
		return
	}

	flat := interfaces.FlattenedSection{
		Kind:      interfaces.SectionArticle,
		ContentID: lens.ContentID,
		Meta:      sourceMeta(section.Kind, src),
		Optional:  optional,
	}
	if section.Kind == ast.LensVideo {
		flat.Kind = interfaces.SectionVideo
	}
	if flat.Meta.Title == "" {
		flat.Meta.Title = section.Title
	}
	flat.Segments = t.segments(lens.Path, section.Segments, &excerptSource{kind: section.Kind, body: src.Body})
	out.Sections = append(out.Sections, flat)
}

// enter records path as expanded and reports a circular reference when it was
// already expanded in this traversal.
func (t *traversal) enter(fromPath string, line int, path string) bool {
	if t.visited[path] {
		t.errorf(fromPath, line, fmt.Sprintf("circular reference to %q", path), "")
		return false
	}
	t.visited[path] = true
	return true
}

// leaf reports a circular reference when a source edge points back into the
// expansion chain. Leaf paths are not recorded: two sections excerpting the
// same article is ordinary reuse, not a cycle.
func (t *traversal) leaf(fromPath string, line int, path string) bool {
	if t.visited[path] {
		t.errorf(fromPath, line, fmt.Sprintf("circular reference to %q", path), "")
		return false
	}
	return true
}

// follow enforces the tier policy on a reference edge. It reports a violation
// when the edge descends in rank, drops the branch when the target is tiered
// validator-ignore, and returns the tier governing edges below the target.
func (t *traversal) follow(fromPath string, line int, refTier ast.Tier, path string) (ast.Tier, bool) {
	target := t.f.effectiveTier(t.f.corpus.Tier(path))
	if refTier.Rank() > target.Rank() {
		t.errorf(fromPath, line,
			fmt.Sprintf("tier violation: %s content references %s file %q", refTier, target, path), "")
	}
	if target == ast.TierValidatorIgnore {
		return target, false
	}
	return t.f.nextTier(refTier, target), true
}

func (t *traversal) unresolved(file string, line int, link string) {
	suggestion := ""
	if near := t.f.corpus.Suggest(file, link); near != "" {
		suggestion = fmt.Sprintf("source:: [[%s]]", near)
	}
	t.errorf(file, line, fmt.Sprintf("cannot resolve [[%s]]", link), suggestion)
}

// sourceMeta lifts presentation metadata from a leaf file's frontmatter.
// Video transcripts carry a channel, articles an author; both accept a few
// spellings for the original URL.
func sourceMeta(kind ast.LensSectionKind, src fileset.Source) interfaces.SourceMeta {
	meta := interfaces.SourceMeta{Title: src.MetaString("title")}
	if kind == ast.LensVideo {
		meta.Channel = src.MetaString("channel")
		meta.SourceURL = src.MetaString("url", "sourceUrl", "source_url")
		return meta
	}
	meta.Author = src.MetaString("author")
	meta.SourceURL = src.MetaString("sourceUrl", "source_url", "url")
	return meta
}
