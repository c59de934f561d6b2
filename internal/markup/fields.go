package markup

import (
	"regexp"
	"strings"
)

var (
	fieldLinePattern   = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*)::\s*(.*)$`)
	singleColonPattern = regexp.MustCompile(`^([A-Za-z][A-Za-z0-9_-]*):(\s+.*)?$`)
)

// Field is one name:: value entry parsed from a block.
type Field struct {
	Name  string
	Value string
	Line  int
}

// FieldBlock holds every field parsed from one bounded region, in authored
// order and including duplicates. Rest carries the unconsumed remainder from
// the first heading line onward; RestLine is zero when the region had none.
type FieldBlock struct {
	Fields   []Field
	Rest     string
	RestLine int
}

// ParseFields scans a bounded region for name:: value entries. A field's value
// is its inline text plus every following line up to the next field or heading
// line; blank lines inside a value are preserved and the joined value is
// trimmed of trailing whitespace. Single-colon typos on known field names and
// duplicate names are reported as warnings (last write wins).
func ParseFields(region string, baseLine int, known []string) (FieldBlock, []Finding) {
	knownSet := make(map[string]bool, len(known))
	for _, name := range known {
		knownSet[name] = true
	}

	var (
		block        FieldBlock
		findings     []Finding
		continuation []string
		current      *Field
		looseWarned  bool
	)
	firstSeen := map[string]int{}

	flush := func() {
		if current == nil {
			return
		}
		value := current.Value
		if len(continuation) > 0 {
			joined := strings.Join(continuation, "\n")
			if value == "" {
				value = joined
			} else {
				value += "\n" + joined
			}
		}
		current.Value = strings.TrimRight(value, " \t\r\n")
		current = nil
		continuation = nil
	}

	lines := strings.Split(region, "\n")
	for i, rawLine := range lines {
		line := strings.TrimRight(rawLine, "\r")
		lineNo := baseLine + i

		if strings.HasPrefix(line, "#") {
			flush()
			block.Rest = strings.Join(lines[i:], "\n")
			block.RestLine = lineNo
			return block, findings
		}

		if m := fieldLinePattern.FindStringSubmatch(line); m != nil {
			flush()
			name := m[1]
			if prev, dup := firstSeen[name]; dup {
				findings = append(findings, warnf(lineNo, "duplicate field %q overrides the value from line %d", name, prev))
			} else {
				firstSeen[name] = lineNo
			}
			block.Fields = append(block.Fields, Field{Name: name, Value: m[2], Line: lineNo})
			current = &block.Fields[len(block.Fields)-1]
			continue
		}

		if m := singleColonPattern.FindStringSubmatch(line); m != nil && knownSet[m[1]] {
			findings = append(findings, Finding{
				Line:       lineNo,
				Message:    "field \"" + m[1] + "\" uses a single colon",
				Suggestion: m[1] + ":: " + strings.TrimSpace(m[2]),
				Warning:    true,
			})
		}

		if current != nil {
			continuation = append(continuation, line)
			continue
		}
		if strings.TrimSpace(line) != "" && !looseWarned {
			findings = append(findings, warnf(lineNo, "text is not part of any field and will be ignored"))
			looseWarned = true
		}
	}

	flush()
	return block, findings
}

// Get returns the last value written for name.
func (b FieldBlock) Get(name string) (string, bool) {
	for i := len(b.Fields) - 1; i >= 0; i-- {
		if b.Fields[i].Name == name {
			return b.Fields[i].Value, true
		}
	}
	return "", false
}

// Value returns the last value written for name, or "" when absent.
func (b FieldBlock) Value(name string) string {
	value, _ := b.Get(name)
	return value
}

// Has reports whether the block defines name.
func (b FieldBlock) Has(name string) bool {
	_, ok := b.Get(name)
	return ok
}

// FieldFor returns the winning (last) entry for name, for line reporting.
func (b FieldBlock) FieldFor(name string) (Field, bool) {
	for i := len(b.Fields) - 1; i >= 0; i-- {
		if b.Fields[i].Name == name {
			return b.Fields[i], true
		}
	}
	return Field{}, false
}

// Names returns the distinct field names in first-seen order.
func (b FieldBlock) Names() []string {
	seen := map[string]bool{}
	names := make([]string, 0, len(b.Fields))
	for _, field := range b.Fields {
		if !seen[field.Name] {
			seen[field.Name] = true
			names = append(names, field.Name)
		}
	}
	return names
}
