package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/application/queries"
)

// ListArticlesHandler lists a client's articles
type ListArticlesHandler struct {
	articles ports.ArticleRepository
	logger   *zap.Logger
}

// NewListArticlesHandler creates a new list handler
func NewListArticlesHandler(articles ports.ArticleRepository, logger *zap.Logger) *ListArticlesHandler {
	return &ListArticlesHandler{
		articles: articles,
		logger:   logger,
	}
}

// Handle executes the list query
func (h *ListArticlesHandler) Handle(ctx context.Context, query queries.ListArticlesQuery) (*queries.ListArticlesResult, error) {
	articles, err := h.articles.ListByClient(ctx, query.ClientID)
	if err != nil {
		return nil, err
	}

	summaries := make([]queries.ArticleSummary, 0, len(articles))
	for _, article := range articles {
		summaries = append(summaries, queries.ArticleSummary{
			ID:        article.ID().String(),
			Name:      article.Name(),
			AtomCount: len(article.OrderedAtoms()),
			Version:   article.Version().String(),
			CreatedAt: article.CreatedAt().Format(time.RFC3339),
		})
	}

	return &queries.ListArticlesResult{
		Articles: summaries,
		Total:    len(summaries),
	}, nil
}
