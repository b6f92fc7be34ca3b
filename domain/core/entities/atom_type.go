package entities

import (
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// AtomType pairs a schema (which fields an atom of this type carries)
// with a template (how those fields render into a content fragment).
// Types with an empty clientID are base types shared by every tenant.
type AtomType struct {
	id       string
	clientID string
	name     string
	schema   string
	template string
}

// NewAtomType creates a type after checking its schema parses.
func NewAtomType(id, clientID, name, schema, template string) (*AtomType, error) {
	if id == "" {
		return nil, pkgerrors.NewValidationError("type ID cannot be empty")
	}
	if name == "" {
		return nil, pkgerrors.NewValidationError("type name cannot be empty")
	}
	if template == "" {
		return nil, pkgerrors.NewValidationError("type template cannot be empty")
	}
	if _, err := valueobjects.ParseSchema(schema); err != nil {
		return nil, err
	}
	return &AtomType{
		id:       id,
		clientID: clientID,
		name:     name,
		schema:   schema,
		template: template,
	}, nil
}

// ID returns the type identifier
func (t *AtomType) ID() string { return t.id }

// ClientID returns the owning tenant ("" for base types)
func (t *AtomType) ClientID() string { return t.clientID }

// Name returns the type's display name
func (t *AtomType) Name() string { return t.name }

// RawSchema returns the stored schema document
func (t *AtomType) RawSchema() string { return t.schema }

// Template returns the rendering template
func (t *AtomType) Template() string { return t.template }

// Schema parses and returns the field schema.
func (t *AtomType) Schema() (valueobjects.Schema, error) {
	return valueobjects.ParseSchema(t.schema)
}

// IsBase reports whether the type is shared across tenants.
func (t *AtomType) IsBase() bool {
	return t.clientID == ""
}
