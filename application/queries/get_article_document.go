package queries

import "errors"

// GetArticleDocumentQuery requests an article as a structured document:
// one entry per atom, rendered individually, in composition order.
// Unlike a render this never consults the cache; consumers that want
// the atoms separately always see current content.
type GetArticleDocumentQuery struct {
	ClientID    string
	ArticleName string
	ArticleID   string

	// UncacheableVars substitutes the request tier into each fragment
	UncacheableVars map[string]string

	// Raw returns each atom's stored JSON content without applying the
	// type template or any variable substitution
	Raw bool
}

// Validate validates the GetArticleDocumentQuery
func (q GetArticleDocumentQuery) Validate() error {
	if q.ClientID == "" {
		return errors.New("client ID is required")
	}
	if q.ArticleName == "" && q.ArticleID == "" {
		return errors.New("article name or ID is required")
	}
	return nil
}

// AtomFragmentView is one atom's rendered fragment in a document
type AtomFragmentView struct {
	AtomID    string `json:"atom_id"`
	Key       string `json:"key,omitempty"`
	Type      string `json:"type"`
	SortOrder int    `json:"sort_order"`
	Content   string `json:"content"`
}

// GetArticleDocumentResult is the structured article document
type GetArticleDocumentResult struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	Version string             `json:"version"`
	Atoms   []AtomFragmentView `json:"atoms"`
}
