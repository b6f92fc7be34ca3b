package handlers

import (
	"context"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/application/queries"
	"atomcms/application/services"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
)

// GetArticleDocumentHandler renders an article as a structured document
// of individual atom fragments. Bypasses the render cache on purpose.
type GetArticleDocumentHandler struct {
	articles ports.ArticleRepository
	composer *services.Composer
	resolver *services.VariableResolver
	logger   *zap.Logger
}

// NewGetArticleDocumentHandler creates a new document handler
func NewGetArticleDocumentHandler(
	articles ports.ArticleRepository,
	composer *services.Composer,
	resolver *services.VariableResolver,
	logger *zap.Logger,
) *GetArticleDocumentHandler {
	return &GetArticleDocumentHandler{
		articles: articles,
		composer: composer,
		resolver: resolver,
		logger:   logger,
	}
}

// Handle executes the document query
func (h *GetArticleDocumentHandler) Handle(ctx context.Context, query queries.GetArticleDocumentQuery) (*queries.GetArticleDocumentResult, error) {
	article, err := h.loadArticle(ctx, query)
	if err != nil {
		return nil, err
	}

	compose := h.composer.Compose
	if query.Raw {
		compose = h.composer.ComposeRaw
	}
	composition, err := compose(ctx, article)
	if err != nil {
		return nil, err
	}

	uncacheable, err := valueobjects.NewVariableSet(query.UncacheableVars)
	if err != nil {
		return nil, err
	}
	reserved := uncacheable.Tags()

	views := make([]queries.AtomFragmentView, 0, len(composition.Fragments))
	for _, fragment := range composition.Fragments {
		content := fragment.Content
		if !query.Raw {
			content, err = h.resolver.ResolveGlobalAndCacheable(ctx, content, article.ClientID(), valueobjects.EmptyVariableSet(), reserved)
			if err != nil {
				return nil, err
			}
			content = h.resolver.ResolveUncacheable(content, uncacheable)
		}

		views = append(views, queries.AtomFragmentView{
			AtomID:    fragment.AtomID.String(),
			Key:       fragment.Key,
			Type:      fragment.TypeName,
			SortOrder: fragment.SortOrder,
			Content:   content,
		})
	}

	return &queries.GetArticleDocumentResult{
		ID:      article.ID().String(),
		Name:    article.Name(),
		Version: composition.Version.String(),
		Atoms:   views,
	}, nil
}

func (h *GetArticleDocumentHandler) loadArticle(ctx context.Context, query queries.GetArticleDocumentQuery) (*entities.Article, error) {
	if query.ArticleID != "" {
		id, err := valueobjects.NewArticleIDFromString(query.ArticleID)
		if err != nil {
			return nil, err
		}
		return h.articles.GetByID(ctx, query.ClientID, id)
	}
	return h.articles.GetByName(ctx, query.ClientID, query.ArticleName)
}
