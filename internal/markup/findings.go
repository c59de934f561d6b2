package markup

import "fmt"

// Finding is a localized diagnostic produced by the grammar layer. Findings
// carry line numbers only; callers attach file context when converting them
// into content errors.
type Finding struct {
	Line       int
	Message    string
	Suggestion string
	Warning    bool
}

func errf(line int, format string, args ...any) Finding {
	return Finding{Line: line, Message: fmt.Sprintf(format, args...)}
}

func warnf(line int, format string, args ...any) Finding {
	return Finding{Line: line, Message: fmt.Sprintf(format, args...), Warning: true}
}
