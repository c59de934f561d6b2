package validate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/goliatone/go-courseware/pkg/interfaces"
)

// headerSchema types the shared frontmatter keys. Requiredness is enforced
// per kind in Go code so messages stay friendly; the schema's job is to catch
// wrong-typed values, like the numeric id a loose YAML decode would coerce.
var headerSchema = mustCompileHeaderSchema()

func mustCompileHeaderSchema() *jsonschema.Schema {
	schema := map[string]any{
		"$schema": "https://json-schema.org/draft/2020-12/schema",
		"type":    "object",
		"properties": map[string]any{
			"type":       map[string]any{"type": "string"},
			"slug":       map[string]any{"type": "string"},
			"title":      map[string]any{"type": "string"},
			"tier":       map[string]any{"type": "string"},
			"id":         map[string]any{"type": "string"},
			"discussion": map[string]any{"type": "string"},
		},
	}

	encoded, err := json.Marshal(schema)
	if err != nil {
		panic(err)
	}
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("frontmatter.json", bytes.NewReader(encoded)); err != nil {
		panic(err)
	}
	return compiler.MustCompile("frontmatter.json")
}

// headerIssues validates a frontmatter mapping against the shared schema and
// converts the leaf causes into content errors.
func headerIssues(file string, header map[string]any) []interfaces.ContentError {
	if len(header) == 0 {
		return nil
	}
	err := headerSchema.Validate(header)
	if err == nil {
		return nil
	}

	var verr *jsonschema.ValidationError
	if !errors.As(err, &verr) {
		return []interfaces.ContentError{{
			File:     file,
			Line:     1,
			Message:  err.Error(),
			Severity: interfaces.SeverityError,
		}}
	}

	var issues []interfaces.ContentError
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if node == nil {
			return
		}
		if len(node.Causes) == 0 {
			name := strings.TrimPrefix(strings.TrimSpace(node.InstanceLocation), "/")
			message := "frontmatter " + strings.TrimSpace(node.Message)
			if name != "" {
				message = fmt.Sprintf("frontmatter %q %s", name, strings.TrimSpace(node.Message))
			}
			issues = append(issues, interfaces.ContentError{
				File:     file,
				Line:     1,
				Message:  message,
				Severity: interfaces.SeverityError,
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(verr)
	return issues
}

// headerString reads a frontmatter value only when it decoded as a string.
func headerString(header map[string]any, key string) (string, bool) {
	value, ok := header[key]
	if !ok {
		return "", false
	}
	s, ok := value.(string)
	return strings.TrimSpace(s), ok
}
