package handlers

import (
	"context"

	"go.uber.org/zap"

	"atomcms/application/queries"
	"atomcms/application/services"
	"atomcms/domain/core/valueobjects"
)

// RenderArticleHandler runs the render pipeline for a query
type RenderArticleHandler struct {
	renderer *services.RenderService
	logger   *zap.Logger
}

// NewRenderArticleHandler creates a new render handler
func NewRenderArticleHandler(renderer *services.RenderService, logger *zap.Logger) *RenderArticleHandler {
	return &RenderArticleHandler{
		renderer: renderer,
		logger:   logger,
	}
}

// Handle executes the render query
func (h *RenderArticleHandler) Handle(ctx context.Context, query queries.RenderArticleQuery) (*queries.RenderArticleResult, error) {
	cacheable, err := valueobjects.NewVariableSet(query.CacheableVars)
	if err != nil {
		return nil, err
	}
	uncacheable, err := valueobjects.NewVariableSet(query.UncacheableVars)
	if err != nil {
		return nil, err
	}

	var output *services.RenderOutput
	if query.ArticleID != "" {
		articleID, err := valueobjects.NewArticleIDFromString(query.ArticleID)
		if err != nil {
			return nil, err
		}
		output, err = h.renderer.RenderArticle(ctx, query.ClientID, articleID, cacheable, uncacheable)
		if err != nil {
			return nil, err
		}
	} else {
		output, err = h.renderer.RenderByURL(ctx, query.ClientID, query.CollectionName, query.URL, cacheable, uncacheable)
		if err != nil {
			return nil, err
		}
	}

	return &queries.RenderArticleResult{
		ArticleID: output.ArticleID.String(),
		Content:   output.Content,
		Version:   output.Version.String(),
	}, nil
}
