package interfaces

import "context"

// CompileRequest carries the virtual corpus handed to the compiler: a map of
// repository-relative paths to file contents. The compiler never touches the
// filesystem itself, so hosts can feed it from disk, an editor buffer, or a
// test fixture without adapters.
type CompileRequest struct {
	// Files maps slash-separated relative paths to raw file text.
	Files map[string]string
	// Root optionally names the corpus origin for diagnostics.
	Root string
}

// CompileResult is the full output of a corpus compilation. Errors holds every
// diagnostic accumulated across all files; a non-empty Errors slice does not
// mean compilation failed, only that some findings were recorded.
type CompileResult struct {
	Modules []FlattenedModule `json:"modules"`
	Courses []Course          `json:"courses"`
	Errors  []ContentError    `json:"errors"`
}

// CompilerService exposes the corpus compilation workflows. Compile processes
// every course and module in the request, CompileModule restricts output to a
// single module file, and Lint runs the full pipeline but discards compiled
// output, returning diagnostics only.
type CompilerService interface {
	Compile(ctx context.Context, req CompileRequest) (*CompileResult, error)
	CompileModule(ctx context.Context, req CompileRequest, path string) (*CompileResult, error)
	Lint(ctx context.Context, req CompileRequest) ([]ContentError, error)
}
