package commands

import (
	"errors"

	"atomcms/domain/config"
)

// CreateCollectionCommand creates a collection. Every new collection
// gets its main menu immediately.
type CreateCollectionCommand struct {
	// CollectionID is assigned by the API layer; empty means the
	// handler picks one.
	CollectionID string `json:"collection_id,omitempty" validate:"omitempty,uuid"`
	ClientID     string `json:"client_id" validate:"required"`
	Name         string `json:"name" validate:"required"`
}

// Validate validates the command
func (cmd CreateCollectionCommand) Validate() error {
	cfg := config.DefaultDomainConfig()
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.Name == "" {
		return errors.New("collection name is required")
	}
	if len(cmd.Name) > cfg.MaxCollectionNameLength {
		return errors.New("collection name exceeds maximum length")
	}
	return nil
}

// AddToCollectionCommand places an article in a collection. A negative
// SortOrder means append after the current last position.
type AddToCollectionCommand struct {
	ClientID       string `json:"client_id" validate:"required"`
	CollectionName string `json:"collection" validate:"required"`
	ArticleID      string `json:"article_id" validate:"required,uuid"`
	SortOrder      int    `json:"sort_order"`
	URL            string `json:"url,omitempty"`
	Template       string `json:"template,omitempty"`
	Meta           string `json:"meta,omitempty"`
}

// Validate validates the command
func (cmd AddToCollectionCommand) Validate() error {
	cfg := config.DefaultDomainConfig()
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.CollectionName == "" {
		return errors.New("collection name is required")
	}
	if cmd.ArticleID == "" {
		return errors.New("article ID is required")
	}
	if len(cmd.URL) > cfg.MaxURLLength {
		return errors.New("url exceeds maximum length")
	}
	if len(cmd.Template) > cfg.MaxTemplateNameLength {
		return errors.New("template name exceeds maximum length")
	}
	return nil
}

// RemoveFromCollectionCommand removes an article slot from a collection
type RemoveFromCollectionCommand struct {
	ClientID       string `json:"client_id" validate:"required"`
	CollectionName string `json:"collection" validate:"required"`
	ArticleID      string `json:"article_id" validate:"required,uuid"`
}

// Validate validates the command
func (cmd RemoveFromCollectionCommand) Validate() error {
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.CollectionName == "" {
		return errors.New("collection name is required")
	}
	if cmd.ArticleID == "" {
		return errors.New("article ID is required")
	}
	return nil
}

// MenuEntryInput is one entry in a saved menu
type MenuEntryInput struct {
	ArticleID   string `json:"article_id" validate:"required,uuid"`
	SortOrder   int    `json:"sort_order"`
	DisplayName string `json:"display_name,omitempty"`
}

// SaveMenuCommand writes a menu's full entry list, replacing whatever
// the menu held before
type SaveMenuCommand struct {
	ClientID       string           `json:"client_id" validate:"required"`
	CollectionName string           `json:"collection" validate:"required"`
	MenuName       string           `json:"menu" validate:"required"`
	Entries        []MenuEntryInput `json:"entries" validate:"dive"`
}

// Validate validates the command
func (cmd SaveMenuCommand) Validate() error {
	cfg := config.DefaultDomainConfig()
	if cmd.ClientID == "" {
		return errors.New("client ID is required")
	}
	if cmd.CollectionName == "" {
		return errors.New("collection name is required")
	}
	if cmd.MenuName == "" {
		return errors.New("menu name is required")
	}
	if len(cmd.MenuName) > cfg.MaxMenuNameLength {
		return errors.New("menu name exceeds maximum length")
	}
	for _, entry := range cmd.Entries {
		if entry.ArticleID == "" {
			return errors.New("menu entry article ID is required")
		}
	}
	return nil
}
