package fileset

import (
	"fmt"
	"io/fs"
	"path/filepath"
)

// FromFS walks a filesystem into a FileSet. Patterns match against base names
// (filepath.Match); when none are given, Markdown and plain-text files are
// collected. Intended for CLI and host wiring; the core passes never touch a
// filesystem.
func FromFS(fsys fs.FS, patterns ...string) (*FileSet, error) {
	if len(patterns) == 0 {
		patterns = []string{"*.md", "*.txt"}
	}

	files := map[string]string{}
	err := fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		if !matchesAny(filepath.Base(p), patterns) {
			return nil
		}
		data, err := fs.ReadFile(fsys, p)
		if err != nil {
			return fmt.Errorf("fileset: read %s: %w", p, err)
		}
		files[p] = string(data)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return New(files), nil
}

func matchesAny(name string, patterns []string) bool {
	for _, pattern := range patterns {
		if ok, err := filepath.Match(pattern, name); err == nil && ok {
			return true
		}
	}
	return false
}
