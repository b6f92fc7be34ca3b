package handlers

import (
	"context"

	"go.uber.org/zap"

	"atomcms/application/queries"
	"atomcms/application/services"
	"atomcms/domain/core/entities"
)

// GetMenuHandler builds navigation from a menu
type GetMenuHandler struct {
	assembler *services.Assembler
	logger    *zap.Logger
}

// NewGetMenuHandler creates a new menu handler
func NewGetMenuHandler(assembler *services.Assembler, logger *zap.Logger) *GetMenuHandler {
	return &GetMenuHandler{
		assembler: assembler,
		logger:    logger,
	}
}

// Handle executes the menu query
func (h *GetMenuHandler) Handle(ctx context.Context, query queries.GetMenuQuery) (*queries.GetMenuResult, error) {
	menuName := query.MenuName
	if menuName == "" {
		menuName = entities.DefaultMenuName
	}

	entries, err := h.assembler.ListMenu(ctx, query.ClientID, query.CollectionName, menuName)
	if err != nil {
		return nil, err
	}

	return &queries.GetMenuResult{
		CollectionName: query.CollectionName,
		MenuName:       menuName,
		Entries:        entries,
	}, nil
}
