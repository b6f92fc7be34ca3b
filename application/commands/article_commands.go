package commands

import (
	"errors"

	"atomcms/domain/config"
)

// CreateArticleCommand creates an empty article, optionally appending
// an initial list of atoms in the given order
type CreateArticleCommand struct {
	// ArticleID is assigned by the API layer; empty means the handler
	// picks one.
	ArticleID string   `json:"article_id,omitempty" validate:"omitempty,uuid"`
	ClientID  string   `json:"client_id" validate:"required"`
	Name      string   `json:"name" validate:"required"`
	AtomIDs   []string `json:"atom_ids,omitempty" validate:"dive,uuid"`
}

// Validate validates the command
func (cmd CreateArticleCommand) Validate() error {
	cfg := config.DefaultDomainConfig()
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.Name == "" {
		return errors.New("article name is required")
	}
	if len(cmd.Name) > cfg.MaxArticleNameLength {
		return errors.New("article name exceeds maximum length")
	}
	return nil
}

// AttachAtomCommand places an atom in an article. A negative SortOrder
// means append after the current last position.
type AttachAtomCommand struct {
	ClientID  string `json:"client_id" validate:"required"`
	ArticleID string `json:"article_id" validate:"required,uuid"`
	AtomID    string `json:"atom_id" validate:"required,uuid"`
	SortOrder int    `json:"sort_order"`
}

// Validate validates the command
func (cmd AttachAtomCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.ArticleID == "" {
		return errors.New("article ID is required")
	}
	if cmd.AtomID == "" {
		return errors.New("atom ID is required")
	}
	return nil
}

// DetachAtomCommand removes an atom from an article
type DetachAtomCommand struct {
	ClientID  string `json:"client_id" validate:"required"`
	ArticleID string `json:"article_id" validate:"required,uuid"`
	AtomID    string `json:"atom_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd DetachAtomCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.ArticleID == "" {
		return errors.New("article ID is required")
	}
	if cmd.AtomID == "" {
		return errors.New("atom ID is required")
	}
	return nil
}
