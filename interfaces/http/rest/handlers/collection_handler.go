package handlers

import (
	"net/http"

	"atomcms/application/queries"
	querybus "atomcms/application/queries/bus"
	"atomcms/pkg/common"
	pkgerrors "atomcms/pkg/errors"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// isUUID reports whether an article reference is an ID rather than a name
func isUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}

// CollectionHandler serves the structured JSON document surface:
// collection documents, menus and per-atom article documents.
type CollectionHandler struct {
	queryBus     *querybus.QueryBus
	logger       *zap.Logger
	errorHandler *pkgerrors.ErrorHandler
}

// NewCollectionHandler creates a new collection handler
func NewCollectionHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *CollectionHandler {
	return &CollectionHandler{
		queryBus:     queryBus,
		logger:       logger,
		errorHandler: pkgerrors.NewErrorHandler(logger, false),
	}
}

// GetCollection handles GET /collections/{collection}
func (h *CollectionHandler) GetCollection(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	query := queries.GetCollectionQuery{
		ClientID:       clientID,
		CollectionName: chi.URLParam(r, "collection"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetMenu handles GET /collections/{collection}/menus/{menu} and
// GET /collections/{collection}/menu (the collection's main menu)
func (h *CollectionHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	query := queries.GetMenuQuery{
		ClientID:       clientID,
		CollectionName: chi.URLParam(r, "collection"),
		MenuName:       chi.URLParam(r, "menu"),
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// ListArticles handles GET /articles
func (h *CollectionHandler) ListArticles(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	result, err := h.queryBus.Ask(r.Context(), queries.ListArticlesQuery{ClientID: clientID})
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// GetArticleDocument handles GET /articles/{article}/document, where
// {article} is an article ID or name. Returns the per-atom document
// rather than the joined render.
func (h *CollectionHandler) GetArticleDocument(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	ref := chi.URLParam(r, "article")
	_, uncacheable := splitVariableParams(r.URL.Query())

	query := queries.GetArticleDocumentQuery{
		ClientID:        clientID,
		UncacheableVars: uncacheable,
		Raw:             r.URL.Query().Get("raw") == "1" || r.URL.Query().Get("raw") == "true",
	}
	if isUUID(ref) {
		query.ArticleID = ref
	} else {
		query.ArticleName = ref
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}
