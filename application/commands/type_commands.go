package commands

import "errors"

// CreateAtomTypeCommand registers an atom type: a schema describing the
// fields plus a template describing how they render
type CreateAtomTypeCommand struct {
	// TypeID is assigned by the API layer; empty means the handler
	// picks one.
	TypeID   string `json:"type_id,omitempty" validate:"omitempty,uuid"`
	ClientID string `json:"client_id" validate:"required"`
	Name     string `json:"name" validate:"required"`
	Schema   string `json:"schema" validate:"required"`
	Template string `json:"template" validate:"required"`
}

// Validate validates the command
func (cmd CreateAtomTypeCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.Name == "" {
		return errors.New("type name is required")
	}
	if cmd.Schema == "" {
		return errors.New("schema is required")
	}
	if cmd.Template == "" {
		return errors.New("template is required")
	}
	return nil
}
