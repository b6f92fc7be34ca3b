package handlers

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"atomcms/application/commands"
	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	pkgerrors "atomcms/pkg/errors"
)

// CreateAtomTypeHandler handles the CreateAtomTypeCommand
type CreateAtomTypeHandler struct {
	types  ports.AtomTypeRepository
	logger *zap.Logger
}

// NewCreateAtomTypeHandler creates a new handler instance
func NewCreateAtomTypeHandler(types ports.AtomTypeRepository, logger *zap.Logger) *CreateAtomTypeHandler {
	return &CreateAtomTypeHandler{
		types:  types,
		logger: logger,
	}
}

// Handle executes the create atom type command
func (h *CreateAtomTypeHandler) Handle(ctx context.Context, cmd commands.CreateAtomTypeCommand) (*entities.AtomType, error) {
	if existing, err := h.types.GetByName(ctx, cmd.ClientID, cmd.Name); err == nil && existing != nil {
		return nil, pkgerrors.NewConflictError("type name already in use: " + cmd.Name)
	}

	typeID := cmd.TypeID
	if typeID == "" {
		typeID = uuid.New().String()
	}

	atomType, err := entities.NewAtomType(typeID, cmd.ClientID, cmd.Name, cmd.Schema, cmd.Template)
	if err != nil {
		return nil, err
	}

	if err := h.types.Save(ctx, atomType); err != nil {
		return nil, err
	}

	h.logger.Info("atom type created",
		zap.String("typeID", atomType.ID()),
		zap.String("name", atomType.Name()),
	)
	return atomType, nil
}
