package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atomcms/application/commands"
	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/domain/events"
)

// CreateArticleHandler handles the CreateArticleCommand
type CreateArticleHandler struct {
	articles  ports.ArticleRepository
	atoms     ports.AtomRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateArticleHandler creates a new handler instance
func NewCreateArticleHandler(
	articles ports.ArticleRepository,
	atoms ports.AtomRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateArticleHandler {
	return &CreateArticleHandler{
		articles:  articles,
		atoms:     atoms,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the create article command
func (h *CreateArticleHandler) Handle(ctx context.Context, cmd commands.CreateArticleCommand) (*entities.Article, error) {
	articleID := valueobjects.NewArticleID()
	if cmd.ArticleID != "" {
		var err error
		articleID, err = valueobjects.NewArticleIDFromString(cmd.ArticleID)
		if err != nil {
			return nil, err
		}
	}

	article, err := entities.NewArticleWithID(articleID, cmd.ClientID, cmd.Name)
	if err != nil {
		return nil, err
	}

	for _, raw := range cmd.AtomIDs {
		atomID, err := valueobjects.NewAtomIDFromString(raw)
		if err != nil {
			return nil, err
		}
		// The atom must exist before it can be composed in.
		if _, err := h.atoms.GetByID(ctx, cmd.ClientID, atomID); err != nil {
			return nil, err
		}
		if err := article.AppendAtom(atomID); err != nil {
			return nil, err
		}
	}

	if err := h.articles.Save(ctx, article); err != nil {
		return nil, err
	}

	event := events.NewArticleCreated(article.ID(), article.ClientID(), article.Name(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish article.created", zap.Error(err))
	}

	h.logger.Info("article created",
		zap.String("articleID", article.ID().String()),
		zap.String("name", article.Name()),
		zap.Int("atoms", len(cmd.AtomIDs)),
	)
	return article, nil
}

// AttachAtomHandler handles the AttachAtomCommand
type AttachAtomHandler struct {
	articles  ports.ArticleRepository
	atoms     ports.AtomRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewAttachAtomHandler creates a new handler instance
func NewAttachAtomHandler(
	articles ports.ArticleRepository,
	atoms ports.AtomRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *AttachAtomHandler {
	return &AttachAtomHandler{
		articles:  articles,
		atoms:     atoms,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the attach atom command
func (h *AttachAtomHandler) Handle(ctx context.Context, cmd commands.AttachAtomCommand) error {
	articleID, err := valueobjects.NewArticleIDFromString(cmd.ArticleID)
	if err != nil {
		return err
	}
	atomID, err := valueobjects.NewAtomIDFromString(cmd.AtomID)
	if err != nil {
		return err
	}

	if _, err := h.atoms.GetByID(ctx, cmd.ClientID, atomID); err != nil {
		return err
	}

	article, err := h.articles.GetByID(ctx, cmd.ClientID, articleID)
	if err != nil {
		return err
	}

	if cmd.SortOrder < 0 {
		err = article.AppendAtom(atomID)
	} else {
		err = article.AttachAtom(atomID, cmd.SortOrder)
	}
	if err != nil {
		return err
	}

	if err := h.articles.Save(ctx, article); err != nil {
		return err
	}

	event := events.NewArticleCompositionChanged(article.ID(), article.ClientID(), article.Version(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish article.composition_changed", zap.Error(err))
	}

	return nil
}

// DetachAtomHandler handles the DetachAtomCommand
type DetachAtomHandler struct {
	articles  ports.ArticleRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDetachAtomHandler creates a new handler instance
func NewDetachAtomHandler(
	articles ports.ArticleRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DetachAtomHandler {
	return &DetachAtomHandler{
		articles:  articles,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the detach atom command
func (h *DetachAtomHandler) Handle(ctx context.Context, cmd commands.DetachAtomCommand) error {
	articleID, err := valueobjects.NewArticleIDFromString(cmd.ArticleID)
	if err != nil {
		return err
	}
	atomID, err := valueobjects.NewAtomIDFromString(cmd.AtomID)
	if err != nil {
		return err
	}

	article, err := h.articles.GetByID(ctx, cmd.ClientID, articleID)
	if err != nil {
		return err
	}

	if err := article.DetachAtom(atomID); err != nil {
		return err
	}

	if err := h.articles.Save(ctx, article); err != nil {
		return err
	}

	event := events.NewArticleCompositionChanged(article.ID(), article.ClientID(), article.Version(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish article.composition_changed", zap.Error(err))
	}

	return nil
}
