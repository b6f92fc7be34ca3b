package valueobjects

import (
	"encoding/json"

	pkgerrors "atomcms/pkg/errors"
)

// Schema describes the fields an atom type accepts and how each field
// renders. It is a deliberately small subset of JSON Schema: the shape
// information the composer needs, nothing more.
type Schema struct {
	Name        string               `json:"name,omitempty"`
	Description string               `json:"description,omitempty"`
	Type        string               `json:"type"`
	Properties  map[string]FieldSpec `json:"properties,omitempty"`
	Items       *FieldSpec           `json:"items,omitempty"`
}

// FieldSpec describes a single schema field.
type FieldSpec struct {
	Type        string               `json:"type"`
	Description string               `json:"description,omitempty"`
	// Markdown flags a text field whose value is converted from
	// markdown to HTML before template substitution.
	Markdown   bool                 `json:"markdown,omitempty"`
	Properties map[string]FieldSpec `json:"properties,omitempty"`
	Items      *FieldSpec           `json:"items,omitempty"`
	MaxItems   int                  `json:"maxItems,omitempty"`
}

// ParseSchema decodes the JSON schema document stored on an atom type.
func ParseSchema(raw string) (Schema, error) {
	var s Schema
	if err := json.Unmarshal([]byte(raw), &s); err != nil {
		return Schema{}, pkgerrors.NewValidationError("type schema is not valid JSON").WithCause(err)
	}
	return s, nil
}

// HasProperties reports whether the schema declares named fields. A
// schema without properties renders the whole content document through
// the template's root placeholder.
func (s Schema) HasProperties() bool {
	return len(s.Properties) > 0
}

// Field returns the declaration of a named field, if present.
func (s Schema) Field(name string) (FieldSpec, bool) {
	f, ok := s.Properties[name]
	return f, ok
}
