package compilecmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

const (
	compileCorpusMessageType = "courseware.compiler.compile_corpus"
	compileModuleMessageType = "courseware.compiler.compile_module"
	lintCorpusMessageType    = "courseware.compiler.lint_corpus"
)

// CompileCorpusCommand compiles every course and module reachable from the
// corpus. A pre-loaded Files map bypasses the filesystem walk; otherwise the
// handler loads markdown files under Directory.
type CompileCorpusCommand struct {
	// Directory selects the corpus root on disk.
	Directory string `json:"directory,omitempty"`
	// Patterns narrows the walk to matching base names; empty means the
	// fileset defaults.
	Patterns []string `json:"patterns,omitempty"`
	// Files supplies an in-memory corpus keyed by relative path.
	Files map[string]string `json:"files,omitempty"`
}

// Type implements command.Message.
func (CompileCorpusCommand) Type() string { return compileCorpusMessageType }

// Validate ensures the command names a corpus before handlers execute.
func (cmd CompileCorpusCommand) Validate() error {
	if len(cmd.Files) > 0 {
		return nil
	}
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required,
			validation.By(requireText("courseware.compiler.compile_corpus.directory_required", "directory is required"))),
	)
}

// CompileModuleCommand compiles a single module, addressed by corpus path or
// frontmatter slug, against the full corpus.
type CompileModuleCommand struct {
	// Directory selects the corpus root on disk.
	Directory string `json:"directory,omitempty"`
	// Patterns narrows the walk to matching base names.
	Patterns []string `json:"patterns,omitempty"`
	// Files supplies an in-memory corpus keyed by relative path.
	Files map[string]string `json:"files,omitempty"`
	// Module is the target module's path or slug.
	Module string `json:"module"`
}

// Type implements command.Message.
func (CompileModuleCommand) Type() string { return compileModuleMessageType }

// Validate ensures both a corpus and a module target are present.
func (cmd CompileModuleCommand) Validate() error {
	fields := []*validation.FieldRules{
		validation.Field(&cmd.Module, validation.Required,
			validation.By(requireText("courseware.compiler.compile_module.module_required", "module is required"))),
	}
	if len(cmd.Files) == 0 {
		fields = append(fields,
			validation.Field(&cmd.Directory, validation.Required,
				validation.By(requireText("courseware.compiler.compile_module.directory_required", "directory is required"))))
	}
	return validation.ValidateStruct(&cmd, fields...)
}

// LintCorpusCommand runs the full pipeline for its findings only.
type LintCorpusCommand struct {
	// Directory selects the corpus root on disk.
	Directory string `json:"directory,omitempty"`
	// Patterns narrows the walk to matching base names.
	Patterns []string `json:"patterns,omitempty"`
	// Files supplies an in-memory corpus keyed by relative path.
	Files map[string]string `json:"files,omitempty"`
}

// Type implements command.Message.
func (LintCorpusCommand) Type() string { return lintCorpusMessageType }

// Validate ensures the command names a corpus before handlers execute.
func (cmd LintCorpusCommand) Validate() error {
	if len(cmd.Files) > 0 {
		return nil
	}
	return validation.ValidateStruct(&cmd,
		validation.Field(&cmd.Directory, validation.Required,
			validation.By(requireText("courseware.compiler.lint_corpus.directory_required", "directory is required"))),
	)
}

func requireText(code, message string) validation.RuleFunc {
	return func(value any) error {
		if text, _ := value.(string); strings.TrimSpace(text) == "" {
			return validation.NewError(code, message)
		}
		return nil
	}
}
