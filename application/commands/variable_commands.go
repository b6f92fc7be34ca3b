package commands

import (
	"errors"

	"atomcms/domain/config"
)

// SetVariableCommand writes one stored (global-tier) variable
type SetVariableCommand struct {
	ClientID string `json:"client_id" validate:"required"`
	Tag      string `json:"tag" validate:"required"`
	Value    string `json:"value"`
}

// Validate validates the command
func (cmd SetVariableCommand) Validate() error {
	cfg := config.DefaultDomainConfig()
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.Tag == "" {
		return errors.New("tag is required")
	}
	if len(cmd.Tag) > cfg.MaxTagLength {
		return errors.New("tag exceeds maximum length")
	}
	if len(cmd.Value) > cfg.MaxVariableValueLength {
		return errors.New("value exceeds maximum length")
	}
	return nil
}

// DeleteVariableCommand removes one stored variable
type DeleteVariableCommand struct {
	ClientID string `json:"client_id" validate:"required"`
	Tag      string `json:"tag" validate:"required"`
}

// Validate validates the command
func (cmd DeleteVariableCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.Tag == "" {
		return errors.New("tag is required")
	}
	return nil
}
