package handlers

import (
	"context"
	"time"

	"go.uber.org/zap"

	"atomcms/application/commands"
	"atomcms/application/ports"
	"atomcms/domain/events"
)

// SetVariableHandler handles the SetVariableCommand
type SetVariableHandler struct {
	variables ports.VariableRepository
	cache     ports.RenderCache
	publisher ports.EventPublisher
	logger    *zap.Logger
}

// NewSetVariableHandler creates a new handler instance
func NewSetVariableHandler(
	variables ports.VariableRepository,
	cache ports.RenderCache,
	publisher ports.EventPublisher,
	logger *zap.Logger,
) *SetVariableHandler {
	return &SetVariableHandler{
		variables: variables,
		cache:     cache,
		publisher: publisher,
		logger:    logger,
	}
}

// Handle executes the set variable command. Global values are baked
// into cached stable passes but do not appear in cache keys, so the
// cache is purged; otherwise stale substitutions would keep serving
// under unchanged keys.
func (h *SetVariableHandler) Handle(ctx context.Context, cmd commands.SetVariableCommand) error {
	if err := h.variables.Set(ctx, cmd.ClientID, cmd.Tag, cmd.Value); err != nil {
		return err
	}
	h.cache.Purge()

	event := events.NewVariableSet(cmd.ClientID, cmd.Tag, time.Now())
	if err := h.publisher.Publish(ctx, event); err != nil {
		h.logger.Warn("failed to publish variable.set", zap.Error(err))
	}

	return nil
}

// DeleteVariableHandler handles the DeleteVariableCommand
type DeleteVariableHandler struct {
	variables ports.VariableRepository
	cache     ports.RenderCache
	logger    *zap.Logger
}

// NewDeleteVariableHandler creates a new handler instance
func NewDeleteVariableHandler(variables ports.VariableRepository, cache ports.RenderCache, logger *zap.Logger) *DeleteVariableHandler {
	return &DeleteVariableHandler{
		variables: variables,
		cache:     cache,
		logger:    logger,
	}
}

// Handle executes the delete variable command
func (h *DeleteVariableHandler) Handle(ctx context.Context, cmd commands.DeleteVariableCommand) error {
	if err := h.variables.Delete(ctx, cmd.ClientID, cmd.Tag); err != nil {
		return err
	}
	h.cache.Purge()
	return nil
}
