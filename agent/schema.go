package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// SchemaHandle pairs the raw JSON Schema object (used for tool-definition
// injection) with its compiled Draft-7 validator. Immutable after
// construction; safe to share between configuration, tool-definition
// generation, and validation.
type SchemaHandle struct {
	raw      map[string]interface{}
	compiled *jsonschema.Schema
}

// NewSchemaHandle compiles schema once against Draft 7. Construction fails
// with a Configuration error on compilation failure.
func NewSchemaHandle(schema map[string]interface{}) (*SchemaHandle, error) {
	raw, err := json.Marshal(schema)
	if err != nil {
		return nil, newError(KindConfiguration, "schema is not valid JSON", err)
	}

	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7

	const resourceID = "completion-schema.json"
	if err := compiler.AddResource(resourceID, strings.NewReader(string(raw))); err != nil {
		return nil, newError(KindConfiguration, "invalid schema", fmt.Errorf("%w: %v", ErrInvalidSchema, err))
	}
	compiled, err := compiler.Compile(resourceID)
	if err != nil {
		return nil, newError(KindConfiguration, "schema compilation failed", fmt.Errorf("%w: %v", ErrInvalidSchema, err))
	}

	return &SchemaHandle{raw: schema, compiled: compiled}, nil
}

// Raw returns the original JSON Schema object.
func (s *SchemaHandle) Raw() map[string]interface{} {
	return s.raw
}

// Properties returns the schema's top-level "properties" object, or an
// empty map if absent.
func (s *SchemaHandle) Properties() map[string]interface{} {
	if props, ok := s.raw["properties"].(map[string]interface{}); ok {
		return props
	}
	return map[string]interface{}{}
}

// Required returns the schema's top-level "required" array, or an empty
// slice if absent.
func (s *SchemaHandle) Required() []string {
	raw, ok := s.raw["required"].([]interface{})
	if !ok {
		return []string{}
	}
	required := make([]string, 0, len(raw))
	for _, r := range raw {
		if name, ok := r.(string); ok {
			required = append(required, name)
		}
	}
	return required
}

// Title returns the schema's "title" if present, otherwise "target".
func (s *SchemaHandle) Title() string {
	if title, ok := s.raw["title"].(string); ok && title != "" {
		return title
	}
	return "target"
}

// Validate runs the compiled validator against payload. On failure it
// returns a *ValidationFailedError carrying at most the first three error
// records, each formatted as "<json-pointer-path>: <message>"; it
// truncates silently beyond three to avoid overwhelming the model's
// context.
func (s *SchemaHandle) Validate(payload interface{}) error {
	err := s.compiled.Validate(payload)
	if err == nil {
		return nil
	}

	validationErr, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return &ValidationFailedError{Messages: []string{err.Error()}}
	}

	messages := flattenValidationErrors(validationErr, nil)
	if len(messages) > 3 {
		messages = messages[:3]
	}
	if len(messages) == 0 {
		messages = []string{err.Error()}
	}
	return &ValidationFailedError{Messages: messages}
}

// flattenValidationErrors walks the jsonschema library's cause tree and
// collects leaf errors (those with no further causes) as
// "<instance-location>: <message>" strings, in encounter order.
func flattenValidationErrors(verr *jsonschema.ValidationError, out []string) []string {
	if len(verr.Causes) == 0 {
		loc := verr.InstanceLocation
		if loc == "" {
			loc = "/"
		} else if !strings.HasPrefix(loc, "/") {
			loc = "/" + loc
		}
		return append(out, fmt.Sprintf("%s: %s", loc, verr.Message))
	}
	for _, cause := range verr.Causes {
		out = flattenValidationErrors(cause, out)
	}
	return out
}
