package queries

import (
	"errors"

	"atomcms/application/services"
)

// GetMenuQuery requests the navigation entries of a menu
type GetMenuQuery struct {
	ClientID       string
	CollectionName string
	// MenuName defaults to the collection's main menu when empty
	MenuName string
}

// Validate validates the GetMenuQuery
func (q GetMenuQuery) Validate() error {
	if q.ClientID == "" {
		return errors.New("client ID is required")
	}
	if q.CollectionName == "" {
		return errors.New("collection name is required")
	}
	return nil
}

// GetMenuResult contains the ordered navigation entries
type GetMenuResult struct {
	CollectionName string                     `json:"collection"`
	MenuName       string                     `json:"menu"`
	Entries        []services.NavigationEntry `json:"entries"`
}
