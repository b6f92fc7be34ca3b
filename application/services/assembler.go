package services

import (
	"context"

	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

// NavigationEntry is one rendered menu line: the article it points at,
// the name to display and the url it answers to within the collection.
type NavigationEntry struct {
	ArticleID valueobjects.ArticleID `json:"article_id"`
	Name      string                 `json:"name"`
	URL       string                 `json:"url,omitempty"`
	SortOrder int                    `json:"sort_order"`
}

// ResolvedTarget is the outcome of mapping a request onto an article:
// the collection that answered, the slot that matched and the article
// itself.
type ResolvedTarget struct {
	Collection *entities.Collection
	Slot       entities.CollectionSlot
	Article    *entities.Article
}

// Assembler maps caller-facing addresses (collection name plus url, or
// a bare article) onto the article to compose, and builds navigation
// from menus.
type Assembler struct {
	collections ports.CollectionRepository
	menus       ports.MenuRepository
	articles    ports.ArticleRepository
	logger      *zap.Logger
}

// NewAssembler creates an assembler.
func NewAssembler(
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	articles ports.ArticleRepository,
	logger *zap.Logger,
) *Assembler {
	return &Assembler{
		collections: collections,
		menus:       menus,
		articles:    articles,
		logger:      logger,
	}
}

// ResolveByURL finds the article a collection serves at a url. An
// unknown collection or url is a not-found error; a slot pointing at a
// missing article is an integrity error.
func (a *Assembler) ResolveByURL(ctx context.Context, clientID, collectionName, url string) (*ResolvedTarget, error) {
	collection, err := a.collections.GetByName(ctx, clientID, collectionName)
	if err != nil {
		return nil, err
	}

	slot, ok := collection.SlotByURL(url)
	if !ok {
		return nil, pkgerrors.NewNotFoundError("article at url " + url)
	}

	article, err := a.articles.GetByID(ctx, clientID, slot.ArticleID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			return nil, pkgerrors.NewIntegrityError(
				"collection "+collection.ID(),
				"article "+slot.ArticleID.String(),
			)
		}
		return nil, err
	}

	return &ResolvedTarget{Collection: collection, Slot: slot, Article: article}, nil
}

// ResolveArticle finds an article directly by identifier, outside any
// collection.
func (a *Assembler) ResolveArticle(ctx context.Context, clientID string, id valueobjects.ArticleID) (*entities.Article, error) {
	return a.articles.GetByID(ctx, clientID, id)
}

// ListMenu builds the navigation entries of a menu, in sortorder with
// the article ID breaking ties. Display names override article names;
// urls come from the collection's slots.
func (a *Assembler) ListMenu(ctx context.Context, clientID, collectionName, menuName string) ([]NavigationEntry, error) {
	if menuName == "" {
		menuName = entities.DefaultMenuName
	}

	collection, err := a.collections.GetByName(ctx, clientID, collectionName)
	if err != nil {
		return nil, err
	}

	menu, err := a.menus.GetByName(ctx, collection.ID(), menuName)
	if err != nil {
		return nil, err
	}

	entries := menu.OrderedEntries()
	navigation := make([]NavigationEntry, 0, len(entries))
	for _, entry := range entries {
		article, err := a.articles.GetByID(ctx, clientID, entry.ArticleID)
		if err != nil {
			if pkgerrors.IsNotFound(err) {
				return nil, pkgerrors.NewIntegrityError(
					"menu "+menu.ID(),
					"article "+entry.ArticleID.String(),
				)
			}
			return nil, err
		}

		name := entry.DisplayName
		if name == "" {
			name = article.Name()
		}

		var url string
		if slot, ok := collection.SlotByArticle(entry.ArticleID); ok {
			url = slot.URL
		}

		navigation = append(navigation, NavigationEntry{
			ArticleID: entry.ArticleID,
			Name:      name,
			URL:       url,
			SortOrder: entry.SortOrder,
		})
	}

	return navigation, nil
}
