package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"atomcms/application/commands"
	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/domain/events"
	pkgerrors "atomcms/pkg/errors"
)

// CreateCollectionHandler handles the CreateCollectionCommand
type CreateCollectionHandler struct {
	collections ports.CollectionRepository
	menus       ports.MenuRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewCreateCollectionHandler creates a new handler instance
func NewCreateCollectionHandler(
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateCollectionHandler {
	return &CreateCollectionHandler{
		collections: collections,
		menus:       menus,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the create collection command. The collection's main
// menu is created along with it so navigation always has somewhere to
// hang entries.
func (h *CreateCollectionHandler) Handle(ctx context.Context, cmd commands.CreateCollectionCommand) (*entities.Collection, error) {
	if existing, err := h.collections.GetByName(ctx, cmd.ClientID, cmd.Name); err == nil && existing != nil {
		return nil, pkgerrors.NewConflictError("collection name already in use: " + cmd.Name)
	}

	collectionID := cmd.CollectionID
	if collectionID == "" {
		collectionID = uuid.New().String()
	}

	collection, err := entities.NewCollection(collectionID, cmd.ClientID, cmd.Name)
	if err != nil {
		return nil, err
	}

	if err := h.collections.Save(ctx, collection); err != nil {
		return nil, err
	}

	mainMenu, err := entities.NewMenu(uuid.New().String(), collection.ID(), entities.DefaultMenuName)
	if err != nil {
		return nil, err
	}
	if err := h.menus.Save(ctx, mainMenu); err != nil {
		return nil, err
	}

	event := events.NewCollectionChanged(collection.ID(), collection.ClientID(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish collection.changed", zap.Error(err))
	}

	h.logger.Info("collection created",
		zap.String("collectionID", collection.ID()),
		zap.String("name", collection.Name()),
	)
	return collection, nil
}

// AddToCollectionHandler handles the AddToCollectionCommand
type AddToCollectionHandler struct {
	collections ports.CollectionRepository
	articles    ports.ArticleRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewAddToCollectionHandler creates a new handler instance
func NewAddToCollectionHandler(
	collections ports.CollectionRepository,
	articles ports.ArticleRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *AddToCollectionHandler {
	return &AddToCollectionHandler{
		collections: collections,
		articles:    articles,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the add to collection command
func (h *AddToCollectionHandler) Handle(ctx context.Context, cmd commands.AddToCollectionCommand) error {
	articleID, err := valueobjects.NewArticleIDFromString(cmd.ArticleID)
	if err != nil {
		return err
	}

	if _, err := h.articles.GetByID(ctx, cmd.ClientID, articleID); err != nil {
		return err
	}

	collection, err := h.collections.GetByName(ctx, cmd.ClientID, cmd.CollectionName)
	if err != nil {
		return err
	}

	sortOrder := cmd.SortOrder
	if sortOrder < 0 {
		sortOrder = 0
		for _, slot := range collection.OrderedSlots() {
			if slot.SortOrder >= sortOrder {
				sortOrder = slot.SortOrder + 1
			}
		}
	}

	err = collection.AttachArticle(entities.CollectionSlot{
		ArticleID: articleID,
		SortOrder: sortOrder,
		URL:       cmd.URL,
		Template:  cmd.Template,
		Meta:      cmd.Meta,
	})
	if err != nil {
		return err
	}

	if err := h.collections.Save(ctx, collection); err != nil {
		return err
	}

	event := events.NewCollectionChanged(collection.ID(), collection.ClientID(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish collection.changed", zap.Error(err))
	}

	return nil
}

// RemoveFromCollectionHandler handles the RemoveFromCollectionCommand
type RemoveFromCollectionHandler struct {
	collections ports.CollectionRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewRemoveFromCollectionHandler creates a new handler instance
func NewRemoveFromCollectionHandler(
	collections ports.CollectionRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *RemoveFromCollectionHandler {
	return &RemoveFromCollectionHandler{
		collections: collections,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the remove from collection command
func (h *RemoveFromCollectionHandler) Handle(ctx context.Context, cmd commands.RemoveFromCollectionCommand) error {
	articleID, err := valueobjects.NewArticleIDFromString(cmd.ArticleID)
	if err != nil {
		return err
	}

	collection, err := h.collections.GetByName(ctx, cmd.ClientID, cmd.CollectionName)
	if err != nil {
		return err
	}

	if err := collection.DetachArticle(articleID); err != nil {
		return err
	}

	if err := h.collections.Save(ctx, collection); err != nil {
		return err
	}

	event := events.NewCollectionChanged(collection.ID(), collection.ClientID(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish collection.changed", zap.Error(err))
	}

	return nil
}

// SaveMenuHandler handles the SaveMenuCommand
type SaveMenuHandler struct {
	collections ports.CollectionRepository
	menus       ports.MenuRepository
	articles    ports.ArticleRepository
	publisher   ports.EventPublisher
	logger      *zap.Logger
}

// NewSaveMenuHandler creates a new handler instance
func NewSaveMenuHandler(
	collections ports.CollectionRepository,
	menus ports.MenuRepository,
	articles ports.ArticleRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *SaveMenuHandler {
	return &SaveMenuHandler{
		collections: collections,
		menus:       menus,
		articles:    articles,
		publisher:   publisher,
		logger:      logger,
	}
}

// Handle executes the save menu command. The saved entry list replaces
// the menu's previous contents entirely.
func (h *SaveMenuHandler) Handle(ctx context.Context, cmd commands.SaveMenuCommand) error {
	collection, err := h.collections.GetByName(ctx, cmd.ClientID, cmd.CollectionName)
	if err != nil {
		return err
	}

	menu, err := h.menus.GetByName(ctx, collection.ID(), cmd.MenuName)
	if err != nil {
		if !pkgerrors.IsNotFound(err) {
			return err
		}
		menu, err = entities.NewMenu(uuid.New().String(), collection.ID(), cmd.MenuName)
		if err != nil {
			return err
		}
	} else {
		for _, entry := range menu.OrderedEntries() {
			if err := menu.RemoveEntry(entry.ArticleID); err != nil {
				return err
			}
		}
	}

	for _, input := range cmd.Entries {
		articleID, err := valueobjects.NewArticleIDFromString(input.ArticleID)
		if err != nil {
			return err
		}
		if _, err := h.articles.GetByID(ctx, cmd.ClientID, articleID); err != nil {
			return err
		}
		err = menu.AddEntry(entities.MenuEntry{
			ArticleID:   articleID,
			SortOrder:   input.SortOrder,
			DisplayName: input.DisplayName,
		})
		if err != nil {
			return err
		}
	}

	if err := h.menus.Save(ctx, menu); err != nil {
		return err
	}

	event := events.NewMenuSaved(menu.ID(), menu.CollectionID(), menu.Name(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish menu.saved", zap.Error(err))
	}

	return nil
}
