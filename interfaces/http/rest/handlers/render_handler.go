package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"atomcms/application/queries"
	querybus "atomcms/application/queries/bus"
	"atomcms/pkg/common"
	pkgerrors "atomcms/pkg/errors"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// uncacheablePrefix marks a query parameter as belonging to the
// per-request variable tier. Plain parameters are the cacheable tier
// and enter the render cache key.
const uncacheablePrefix = "u."

// RenderHandler serves composed article content.
type RenderHandler struct {
	queryBus     *querybus.QueryBus
	logger       *zap.Logger
	errorHandler *pkgerrors.ErrorHandler
}

// NewRenderHandler creates a new render handler
func NewRenderHandler(queryBus *querybus.QueryBus, logger *zap.Logger) *RenderHandler {
	return &RenderHandler{
		queryBus:     queryBus,
		logger:       logger,
		errorHandler: pkgerrors.NewErrorHandler(logger, false),
	}
}

// RenderByURL handles GET /content/{collection}/*
func (h *RenderHandler) RenderByURL(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	collection := chi.URLParam(r, "collection")
	pageURL := "/" + chi.URLParam(r, "*")
	cacheable, uncacheable := splitVariableParams(r.URL.Query())

	query := queries.RenderArticleQuery{
		ClientID:        clientID,
		CollectionName:  collection,
		URL:             pageURL,
		CacheableVars:   cacheable,
		UncacheableVars: uncacheable,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// RenderArticle handles GET /articles/{article}/render
func (h *RenderHandler) RenderArticle(w http.ResponseWriter, r *http.Request) {
	clientID, ok := common.GetClientID(r.Context())
	if !ok {
		h.errorHandler.Handle(w, r, pkgerrors.NewUnauthorizedError("no client in context"))
		return
	}

	articleID := chi.URLParam(r, "article")
	cacheable, uncacheable := splitVariableParams(r.URL.Query())

	query := queries.RenderArticleQuery{
		ClientID:        clientID,
		ArticleID:       articleID,
		CacheableVars:   cacheable,
		UncacheableVars: uncacheable,
	}

	result, err := h.queryBus.Ask(r.Context(), query)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	common.RespondJSON(w, http.StatusOK, result)
}

// splitVariableParams partitions query parameters into the cacheable
// and per-request variable tiers. Credential parameters are dropped.
func splitVariableParams(params url.Values) (cacheable, uncacheable map[string]string) {
	cacheable = make(map[string]string)
	uncacheable = make(map[string]string)
	for name, values := range params {
		if len(values) == 0 || name == "apikey" {
			continue
		}
		if strings.HasPrefix(name, uncacheablePrefix) {
			uncacheable[strings.TrimPrefix(name, uncacheablePrefix)] = values[0]
		} else {
			cacheable[name] = values[0]
		}
	}
	return cacheable, uncacheable
}
