package valueobjects

import (
	"encoding/json"

	"atomcms/domain/config"
	pkgerrors "atomcms/pkg/errors"
)

// AtomContent is the schema-shaped JSON document carried by an atom.
// It is stored verbatim; interpretation happens at render time against
// the atom type's schema.
type AtomContent struct {
	raw string
}

// NewAtomContent validates and wraps a raw JSON content document.
func NewAtomContent(raw string) (AtomContent, error) {
	return NewAtomContentWithConfig(raw, config.DefaultDomainConfig())
}

// NewAtomContentWithConfig validates content against the given domain
// configuration.
func NewAtomContentWithConfig(raw string, cfg *config.DomainConfig) (AtomContent, error) {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	if raw == "" {
		return AtomContent{}, pkgerrors.NewValidationError("atom content cannot be empty")
	}
	if len(raw) > cfg.MaxAtomContentBytes {
		return AtomContent{}, pkgerrors.NewValidationError("atom content too large")
	}
	if !json.Valid([]byte(raw)) {
		return AtomContent{}, pkgerrors.NewValidationError("atom content must be valid JSON")
	}
	return AtomContent{raw: raw}, nil
}

// Raw returns the stored JSON document.
func (c AtomContent) Raw() string {
	return c.raw
}

// IsEmpty reports whether the content is unset.
func (c AtomContent) IsEmpty() bool {
	return c.raw == ""
}

// Decode unmarshals the document into an untyped value. Objects come
// back as map[string]interface{}, arrays as []interface{}.
func (c AtomContent) Decode() (interface{}, error) {
	var v interface{}
	if err := json.Unmarshal([]byte(c.raw), &v); err != nil {
		return nil, pkgerrors.NewValidationError("atom content is not decodable JSON").WithCause(err)
	}
	return v, nil
}

// Fields unmarshals the document as an object. Non-object content
// yields a validation error; callers render it through the schema's
// root placeholder instead.
func (c AtomContent) Fields() (map[string]interface{}, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal([]byte(c.raw), &fields); err != nil {
		return nil, pkgerrors.NewValidationError("atom content is not a JSON object").WithCause(err)
	}
	return fields, nil
}
