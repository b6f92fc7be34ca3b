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

// CreateAtomHandler handles the CreateAtomCommand
type CreateAtomHandler struct {
	atoms     ports.AtomRepository
	types     ports.AtomTypeRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewCreateAtomHandler creates a new handler instance
func NewCreateAtomHandler(
	atoms ports.AtomRepository,
	types ports.AtomTypeRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *CreateAtomHandler {
	return &CreateAtomHandler{
		atoms:     atoms,
		types:     types,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the create atom command
func (h *CreateAtomHandler) Handle(ctx context.Context, cmd commands.CreateAtomCommand) (*entities.Atom, error) {
	atomType, err := h.types.GetByName(ctx, cmd.ClientID, cmd.TypeName)
	if err != nil {
		return nil, err
	}

	content, err := valueobjects.NewAtomContent(cmd.Content)
	if err != nil {
		return nil, err
	}

	atomID := valueobjects.NewAtomID()
	if cmd.AtomID != "" {
		atomID, err = valueobjects.NewAtomIDFromString(cmd.AtomID)
		if err != nil {
			return nil, err
		}
	}

	atom, err := entities.NewAtomWithID(atomID, cmd.ClientID, atomType.ID(), content)
	if err != nil {
		return nil, err
	}
	if cmd.Key != "" {
		atom.SetKey(cmd.Key)
	}

	if err := h.atoms.Save(ctx, atom); err != nil {
		return nil, err
	}

	event := events.NewAtomCreated(atom.ID(), atom.ClientID(), atom.TypeID(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish atom.created", zap.Error(err))
	}

	h.logger.Info("atom created",
		zap.String("atomID", atom.ID().String()),
		zap.String("clientID", atom.ClientID()),
		zap.String("type", cmd.TypeName),
	)
	return atom, nil
}

// UpdateAtomHandler handles the UpdateAtomCommand
type UpdateAtomHandler struct {
	atoms     ports.AtomRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewUpdateAtomHandler creates a new handler instance
func NewUpdateAtomHandler(
	atoms ports.AtomRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *UpdateAtomHandler {
	return &UpdateAtomHandler{
		atoms:     atoms,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the update atom command
func (h *UpdateAtomHandler) Handle(ctx context.Context, cmd commands.UpdateAtomCommand) (*entities.Atom, error) {
	atomID, err := valueobjects.NewAtomIDFromString(cmd.AtomID)
	if err != nil {
		return nil, err
	}

	atom, err := h.atoms.GetByID(ctx, cmd.ClientID, atomID)
	if err != nil {
		return nil, err
	}

	content, err := valueobjects.NewAtomContent(cmd.Content)
	if err != nil {
		return nil, err
	}
	if err := atom.UpdateContent(content); err != nil {
		return nil, err
	}

	if err := h.atoms.Save(ctx, atom); err != nil {
		return nil, err
	}

	event := events.NewAtomContentUpdated(atom.ID(), atom.ClientID(), atom.Version(), time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish atom.content_updated", zap.Error(err))
	}

	return atom, nil
}

// DeleteAtomHandler handles the DeleteAtomCommand
type DeleteAtomHandler struct {
	atoms     ports.AtomRepository
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewDeleteAtomHandler creates a new handler instance
func NewDeleteAtomHandler(
	atoms ports.AtomRepository,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *DeleteAtomHandler {
	return &DeleteAtomHandler{
		atoms:     atoms,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the delete atom command. Articles still referencing
// the atom are left alone; their next render raises the integrity
// error that tells the operator what dangles.
func (h *DeleteAtomHandler) Handle(ctx context.Context, cmd commands.DeleteAtomCommand) error {
	atomID, err := valueobjects.NewAtomIDFromString(cmd.AtomID)
	if err != nil {
		return err
	}

	if err := h.atoms.Delete(ctx, cmd.ClientID, atomID); err != nil {
		return err
	}

	event := events.NewAtomDeleted(atomID, cmd.ClientID, time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish atom.deleted", zap.Error(err))
	}

	return nil
}
