package handlers

import (
	"context"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/application/queries"
)

// GetCollectionHandler builds a collection document
type GetCollectionHandler struct {
	collections ports.CollectionRepository
	menus       ports.MenuRepository
	articles    ports.ArticleRepository
	logger      *zap.Logger
}

// NewGetCollectionHandler creates a new collection handler
func NewGetCollectionHandler(
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	articles ports.ArticleRepository,
	logger *zap.Logger,
) *GetCollectionHandler {
	return &GetCollectionHandler{
		collections: collections,
		menus:       menus,
		articles:    articles,
		logger:      logger,
	}
}

// Handle executes the collection query
func (h *GetCollectionHandler) Handle(ctx context.Context, query queries.GetCollectionQuery) (*queries.GetCollectionResult, error) {
	collection, err := h.collections.GetByName(ctx, query.ClientID, query.CollectionName)
	if err != nil {
		return nil, err
	}

	slots := collection.OrderedSlots()
	views := make([]queries.CollectionSlotView, 0, len(slots))
	for _, slot := range slots {
		view := queries.CollectionSlotView{
			ArticleID: slot.ArticleID.String(),
			SortOrder: slot.SortOrder,
			URL:       slot.URL,
			Template:  slot.Template,
			Meta:      slot.Meta,
		}
		// A dangling slot still lists; the article name is just blank.
		// Rendering it is what raises the integrity error.
		if article, err := h.articles.GetByID(ctx, query.ClientID, slot.ArticleID); err == nil {
			view.ArticleName = article.Name()
		} else {
			h.logger.Warn("collection slot references unloadable article",
				zap.String("collectionID", collection.ID()),
				zap.String("articleID", slot.ArticleID.String()),
				zap.Error(err),
			)
		}
		views = append(views, view)
	}

	menus, err := h.menus.ListByCollection(ctx, collection.ID())
	if err != nil {
		return nil, err
	}
	menuNames := make([]string, 0, len(menus))
	for _, menu := range menus {
		menuNames = append(menuNames, menu.Name())
	}

	return &queries.GetCollectionResult{
		ID:    collection.ID(),
		Name:  collection.Name(),
		Slots: views,
		Menus: menuNames,
	}, nil
}
