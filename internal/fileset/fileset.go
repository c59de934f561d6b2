package fileset

import (
	"path"
	"sort"
	"strings"
)

// FileSet is the virtual corpus handed to the compiler: slash-separated
// relative paths mapped to raw file text. The core never reads from disk;
// callers assemble a FileSet from whatever storage they have (see FromFS for
// the filesystem convenience).
type FileSet struct {
	files map[string]string
	// stems indexes lower-cased file stems ("my cool module") to the paths
	// that carry them, backing the fallback used when direct link resolution
	// misses.
	stems map[string][]string
}

// New builds a FileSet from a path→text map. Paths are normalized to cleaned,
// slash-separated relative form; later duplicates after normalization win.
func New(files map[string]string) *FileSet {
	fs := &FileSet{
		files: make(map[string]string, len(files)),
		stems: make(map[string][]string, len(files)),
	}
	for p, text := range files {
		fs.add(Normalize(p), text)
	}
	return fs
}

func (fs *FileSet) add(p, text string) {
	if p == "" || p == "." {
		return
	}
	if _, exists := fs.files[p]; !exists {
		stem := Stem(p)
		fs.stems[stem] = append(fs.stems[stem], p)
		sort.Strings(fs.stems[stem])
	}
	fs.files[p] = text
}

// Len reports the number of files in the corpus.
func (fs *FileSet) Len() int {
	return len(fs.files)
}

// Get returns the raw text stored at the (normalized) path.
func (fs *FileSet) Get(p string) (string, bool) {
	text, ok := fs.files[Normalize(p)]
	return text, ok
}

// Has reports whether the corpus contains the path.
func (fs *FileSet) Has(p string) bool {
	_, ok := fs.files[Normalize(p)]
	return ok
}

// Paths returns every corpus path in sorted order.
func (fs *FileSet) Paths() []string {
	out := make([]string, 0, len(fs.files))
	for p := range fs.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// Resolve maps a wikilink target, relative to the file containing it, onto a
// corpus path. It tries the combined path as written, then with a ".md"
// extension, then falls back to a corpus-wide stem match. The fallback only
// succeeds when the stem is unambiguous.
func (fs *FileSet) Resolve(fromFile, link string) (string, bool) {
	for _, candidate := range fs.candidates(fromFile, link) {
		if _, ok := fs.files[candidate]; ok {
			return candidate, true
		}
	}

	stem := Stem(link)
	if matches := fs.stems[stem]; len(matches) == 1 {
		return matches[0], true
	}
	return "", false
}

// Suggest returns a corrected path for a link that failed to resolve, when a
// near miss (case or extension mismatch, or a unique stem elsewhere in the
// corpus) can be identified. An empty string means no suggestion.
func (fs *FileSet) Suggest(fromFile, link string) string {
	candidates := fs.candidates(fromFile, link)
	for _, candidate := range candidates {
		lowered := strings.ToLower(candidate)
		for p := range fs.files {
			if strings.ToLower(p) == lowered {
				return p
			}
		}
	}

	if matches := fs.stems[Stem(link)]; len(matches) > 0 {
		return matches[0]
	}
	return ""
}

func (fs *FileSet) candidates(fromFile, link string) []string {
	link = strings.TrimSpace(link)
	var joined string
	if strings.HasPrefix(link, "/") {
		// Leading slash anchors the link at the corpus root.
		joined = Normalize(link)
	} else {
		joined = Normalize(path.Join(path.Dir(Normalize(fromFile)), link))
	}
	if joined == "" || joined == "." {
		return nil
	}
	if path.Ext(joined) != "" {
		return []string{joined}
	}
	return []string{joined, joined + ".md"}
}

// Normalize cleans a path into the canonical corpus form: slash-separated,
// relative, no leading "./".
func Normalize(p string) string {
	p = strings.TrimSpace(strings.ReplaceAll(p, "\\", "/"))
	p = path.Clean(p)
	p = strings.TrimPrefix(p, "/")
	if p == "." {
		return ""
	}
	return p
}

// Stem extracts the lower-cased base name without extension, the key used for
// fallback matching.
func Stem(p string) string {
	base := path.Base(Normalize(p))
	if ext := path.Ext(base); ext != "" {
		base = strings.TrimSuffix(base, ext)
	}
	return strings.ToLower(base)
}
