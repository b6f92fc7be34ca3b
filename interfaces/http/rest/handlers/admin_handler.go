package handlers

import (
	"encoding/json"
	"net/http"

	"atomcms/application/commands"
	"atomcms/application/commands/bus"
	"atomcms/pkg/common"
	pkgerrors "atomcms/pkg/errors"
	"atomcms/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// AdminHandler handles the write path: atoms, types, articles,
// collections, menus and stored variables. Every command is scoped to
// the client carried by the caller's token.
type AdminHandler struct {
	commandBus   *bus.CommandBus
	logger       *zap.Logger
	errorHandler *pkgerrors.ErrorHandler
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(commandBus *bus.CommandBus, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		commandBus:   commandBus,
		logger:       logger,
		errorHandler: pkgerrors.NewErrorHandler(logger, false),
	}
}

// CreateAtomRequest represents the request body for creating an atom
type CreateAtomRequest struct {
	Type    string `json:"type" validate:"required,max=50"`
	Content string `json:"content" validate:"required"`
	Key     string `json:"key,omitempty" validate:"omitempty,max=100"`
}

// CreateAtom handles POST /atoms
func (h *AdminHandler) CreateAtom(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req CreateAtomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	atomID := uuid.New().String()
	cmd := commands.CreateAtomCommand{
		AtomID:   atomID,
		ClientID: clientID,
		TypeName: req.Type,
		Content:  req.Content,
		Key:      req.Key,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":         atomID,
		"created_at": utils.NowRFC3339(),
	})
}

// UpdateAtomRequest represents the request body for updating an atom
type UpdateAtomRequest struct {
	Content string `json:"content" validate:"required"`
}

// UpdateAtom handles PUT /atoms/{atomID}
func (h *AdminHandler) UpdateAtom(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req UpdateAtomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	cmd := commands.UpdateAtomCommand{
		ClientID: clientID,
		AtomID:   chi.URLParam(r, "atomID"),
		Content:  req.Content,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"id": cmd.AtomID})
}

// DeleteAtom handles DELETE /atoms/{atomID}
func (h *AdminHandler) DeleteAtom(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	cmd := commands.DeleteAtomCommand{
		ClientID: clientID,
		AtomID:   chi.URLParam(r, "atomID"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateAtomTypeRequest represents the request body for creating a type
type CreateAtomTypeRequest struct {
	Name     string `json:"name" validate:"required,max=50"`
	Schema   string `json:"schema" validate:"required"`
	Template string `json:"template" validate:"required"`
}

// CreateAtomType handles POST /types
func (h *AdminHandler) CreateAtomType(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req CreateAtomTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	typeID := uuid.New().String()
	cmd := commands.CreateAtomTypeCommand{
		TypeID:   typeID,
		ClientID: clientID,
		Name:     req.Name,
		Schema:   req.Schema,
		Template: req.Template,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": typeID})
}

// CreateArticleRequest represents the request body for creating an article
type CreateArticleRequest struct {
	Name    string   `json:"name" validate:"required,max=255"`
	AtomIDs []string `json:"atom_ids,omitempty" validate:"omitempty,dive,uuid"`
}

// CreateArticle handles POST /articles
func (h *AdminHandler) CreateArticle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req CreateArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	articleID := uuid.New().String()
	cmd := commands.CreateArticleCommand{
		ArticleID: articleID,
		ClientID:  clientID,
		Name:      req.Name,
		AtomIDs:   req.AtomIDs,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{
		"id":         articleID,
		"created_at": utils.NowRFC3339(),
	})
}

// AttachAtomRequest represents the request body for attaching an atom
type AttachAtomRequest struct {
	AtomID string `json:"atom_id" validate:"required,uuid"`
	// SortOrder below zero appends after the article's last atom.
	SortOrder *int `json:"sort_order,omitempty"`
}

// AttachAtom handles POST /articles/{articleID}/atoms
func (h *AdminHandler) AttachAtom(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req AttachAtomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	sortOrder := -1
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	cmd := commands.AttachAtomCommand{
		ClientID:  clientID,
		ArticleID: chi.URLParam(r, "articleID"),
		AtomID:    req.AtomID,
		SortOrder: sortOrder,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"article_id": cmd.ArticleID})
}

// DetachAtom handles DELETE /articles/{articleID}/atoms/{atomID}
func (h *AdminHandler) DetachAtom(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	cmd := commands.DetachAtomCommand{
		ClientID:  clientID,
		ArticleID: chi.URLParam(r, "articleID"),
		AtomID:    chi.URLParam(r, "atomID"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// CreateCollectionRequest represents the request body for creating a collection
type CreateCollectionRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

// CreateCollection handles POST /collections
func (h *AdminHandler) CreateCollection(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req CreateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	collectionID := uuid.New().String()
	cmd := commands.CreateCollectionCommand{
		CollectionID: collectionID,
		ClientID:     clientID,
		Name:         req.Name,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusCreated, map[string]string{"id": collectionID})
}

// AddToCollectionRequest represents the request body for adding an
// article to a collection
type AddToCollectionRequest struct {
	ArticleID string `json:"article_id" validate:"required,uuid"`
	SortOrder *int   `json:"sort_order,omitempty"`
	URL       string `json:"url,omitempty" validate:"omitempty,max=50"`
	Template  string `json:"template,omitempty" validate:"omitempty,max=50"`
	Meta      string `json:"meta,omitempty"`
}

// AddToCollection handles POST /collections/{collection}/articles
func (h *AdminHandler) AddToCollection(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req AddToCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	sortOrder := -1
	if req.SortOrder != nil {
		sortOrder = *req.SortOrder
	}

	cmd := commands.AddToCollectionCommand{
		ClientID:       clientID,
		CollectionName: chi.URLParam(r, "collection"),
		ArticleID:      req.ArticleID,
		SortOrder:      sortOrder,
		URL:            req.URL,
		Template:       req.Template,
		Meta:           req.Meta,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"collection": cmd.CollectionName})
}

// RemoveFromCollection handles DELETE /collections/{collection}/articles/{articleID}
func (h *AdminHandler) RemoveFromCollection(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	cmd := commands.RemoveFromCollectionCommand{
		ClientID:       clientID,
		CollectionName: chi.URLParam(r, "collection"),
		ArticleID:      chi.URLParam(r, "articleID"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SaveMenuRequest represents the request body for saving a menu
type SaveMenuRequest struct {
	Entries []MenuEntryRequest `json:"entries" validate:"dive"`
}

// MenuEntryRequest is one menu entry in a save request
type MenuEntryRequest struct {
	ArticleID   string `json:"article_id" validate:"required,uuid"`
	SortOrder   int    `json:"sort_order"`
	DisplayName string `json:"display_name,omitempty" validate:"omitempty,max=255"`
}

// SaveMenu handles PUT /collections/{collection}/menus/{menu}
func (h *AdminHandler) SaveMenu(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req SaveMenuRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}
	if err := utils.ValidateStruct(req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError(err.Error()))
		return
	}

	entries := make([]commands.MenuEntryInput, 0, len(req.Entries))
	for _, entry := range req.Entries {
		entries = append(entries, commands.MenuEntryInput{
			ArticleID:   entry.ArticleID,
			SortOrder:   entry.SortOrder,
			DisplayName: entry.DisplayName,
		})
	}

	cmd := commands.SaveMenuCommand{
		ClientID:       clientID,
		CollectionName: chi.URLParam(r, "collection"),
		MenuName:       chi.URLParam(r, "menu"),
		Entries:        entries,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"menu": cmd.MenuName})
}

// SetVariableRequest represents the request body for setting a variable
type SetVariableRequest struct {
	Value string `json:"value" validate:"max=255"`
}

// SetVariable handles PUT /variables/{tag}
func (h *AdminHandler) SetVariable(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	var req SetVariableRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.errorHandler.Handle(w, r, pkgerrors.NewValidationError("invalid request body: "+err.Error()))
		return
	}

	cmd := commands.SetVariableCommand{
		ClientID: clientID,
		Tag:      chi.URLParam(r, "tag"),
		Value:    req.Value,
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, map[string]string{"tag": cmd.Tag})
}

// DeleteVariable handles DELETE /variables/{tag}
func (h *AdminHandler) DeleteVariable(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	cmd := commands.DeleteVariableCommand{
		ClientID: clientID,
		Tag:      chi.URLParam(r, "tag"),
	}

	if err := h.commandBus.Send(r.Context(), cmd); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
