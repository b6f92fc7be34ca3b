package commands

import (
	"errors"

	"atomcms/domain/config"
)

// CreateAtomCommand stores a new atom
type CreateAtomCommand struct {
	// AtomID is assigned by the API layer so the caller learns the
	// identity from the response; empty means the handler picks one.
	AtomID   string `json:"atom_id,omitempty" validate:"omitempty,uuid"`
	ClientID string `json:"client_id" validate:"required"`
	TypeName string `json:"type" validate:"required"`
	Content  string `json:"content" validate:"required"`
	Key      string `json:"key,omitempty"`
}

// Validate validates the command
func (cmd CreateAtomCommand) Validate() error {
	cfg := config.DefaultDomainConfig()
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.TypeName == "" {
		return errors.New("type is required")
	}
	if cmd.Content == "" {
		return errors.New("content is required")
	}
	if len(cmd.Key) > cfg.MaxAtomKeyLength {
		return errors.New("key exceeds maximum length")
	}
	return nil
}

// UpdateAtomCommand replaces an atom's content, issuing a new version
type UpdateAtomCommand struct {
	ClientID string `json:"client_id" validate:"required"`
	AtomID   string `json:"atom_id" validate:"required,uuid"`
	Content  string `json:"content" validate:"required"`
}

// Validate validates the command
func (cmd UpdateAtomCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.AtomID == "" {
		return errors.New("atom ID is required")
	}
	if cmd.Content == "" {
		return errors.New("content is required")
	}
	return nil
}

// DeleteAtomCommand removes an atom
type DeleteAtomCommand struct {
	ClientID string `json:"client_id" validate:"required"`
	AtomID   string `json:"atom_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd DeleteAtomCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.AtomID == "" {
		return errors.New("atom ID is required")
	}
	return nil
}
