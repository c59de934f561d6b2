// Package testsupport provides corpus fixtures shared by tests across the
// module and by host applications testing their own integrations.
package testsupport

import (
	"os"
	"path/filepath"
)

// Corpus returns a small self-consistent course corpus: one course, one
// module, a learning outcome, a lens, and the source essay the lens
// excerpts. The corpus compiles without findings, so tests can mutate a
// single file and assert on the delta.
func Corpus() map[string]string {
	return map[string]string{
		"courses/deep-history.md": `---
type: course
slug: deep-history
title: Deep History
---
# Meeting: 1
# Module: Work
source:: [[../modules/work.md]]
`,
		"modules/work.md": `---
type: module
slug: work-history
title: Work
---
# Page: Welcome
## Text
content:: Start with the big picture.
# Learning-outcome: Foraging
source:: [[../outcomes/foraging.md]]
`,
		"outcomes/foraging.md": `---
type: learning-outcome
id: 16fd2706-8baf-433b-82eb-8c7fada847da
title: Foraging Economics
---
## Lens: Original Affluence
source:: [[../lenses/affluence.md]]
`,
		"lenses/affluence.md": `---
type: lens
id: 6ba7b810-9dad-11d1-80b4-00c04fd430c8
title: Original Affluence
---
### Article: Affluence Essay
source:: [[../sources/affluence-essay.md]]
#### Article-excerpt
from:: Hunters keep short hours
`,
		"sources/affluence-essay.md": `---
title: Notes on Affluence
author: M. Sahlins
sourceUrl: https://essays.example/affluence
---
The conventional view says scarcity rules everything. Hunters keep short hours, three to five a day. The evidence suggests abundance was ordinary.
`,
	}
}

// WriteCorpus materialises a virtual corpus under dir, creating parent
// directories as needed. Keys are slash separated paths relative to dir.
func WriteCorpus(dir string, files map[string]string) error {
	for name, body := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return err
		}
		if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
			return err
		}
	}
	return nil
}
