package queries

import "errors"

// GetCollectionQuery requests a collection document: its ordered
// article slots with their urls and templates.
type GetCollectionQuery struct {
	ClientID       string
	CollectionName string
}

// Validate validates the GetCollectionQuery
func (q GetCollectionQuery) Validate() error {
	if q.ClientID == "" {
		return errors.New("client ID is required")
	}
	if q.CollectionName == "" {
		return errors.New("collection name is required")
	}
	return nil
}

// CollectionSlotView is one article slot in a collection document
type CollectionSlotView struct {
	ArticleID   string `json:"article_id"`
	ArticleName string `json:"article_name"`
	SortOrder   int    `json:"sort_order"`
	URL         string `json:"url,omitempty"`
	Template    string `json:"template,omitempty"`
	Meta        string `json:"meta,omitempty"`
}

// GetCollectionResult is the collection document
type GetCollectionResult struct {
	ID    string               `json:"id"`
	Name  string               `json:"name"`
	Slots []CollectionSlotView `json:"articles"`
	Menus []string             `json:"menus"`
}
