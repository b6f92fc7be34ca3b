package queries

import "errors"

// ListArticlesQuery requests every article of a client
type ListArticlesQuery struct {
	ClientID string
}

// Validate validates the ListArticlesQuery
func (q ListArticlesQuery) Validate() error {
	if q.ClientID == "" {
		return errors.New("client ID is required")
	}
	return nil
}

// ArticleSummary is one article in a listing
type ArticleSummary struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AtomCount int    `json:"atom_count"`
	Version   string `json:"version"`
	CreatedAt string `json:"created_at"`
}

// ListArticlesResult contains the article summaries
type ListArticlesResult struct {
	Articles []ArticleSummary `json:"articles"`
	Total    int              `json:"total"`
}
