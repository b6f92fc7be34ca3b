package queries

import "errors"

// RenderArticleQuery requests a fully substituted render. The target is
// either a collection name plus url, or a bare article ID; exactly one
// addressing mode must be used.
type RenderArticleQuery struct {
	ClientID       string
	CollectionName string
	URL            string
	ArticleID      string

	// CacheableVars is the per-collection variable tier, stable across
	// requests; it enters the cache key.
	CacheableVars map[string]string
	// UncacheableVars is the per-request tier, never cached.
	UncacheableVars map[string]string
}

// Validate validates the RenderArticleQuery
func (q RenderArticleQuery) Validate() error {
	if q.ClientID == "" {
		return errors.New("client ID is required")
	}
	byURL := q.CollectionName != "" && q.URL != ""
	byArticle := q.ArticleID != ""
	if byURL == byArticle {
		return errors.New("exactly one of collection+url or article ID is required")
	}
	return nil
}

// RenderArticleResult is the final content returned to the caller
type RenderArticleResult struct {
	ArticleID string `json:"article_id"`
	Content   string `json:"content"`
	Version   string `json:"version"`
}
