// Package markdown renders authored segment content to HTML. The compiler
// feeds it text and article-excerpt bodies during flattening; transcripts are
// served verbatim and never pass through here.
package markdown
