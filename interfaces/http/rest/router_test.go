package rest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/application/ports"
	"atomcms/application/queries"
	"atomcms/application/services"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/domain/events"
	"atomcms/infrastructure/cache"
	"atomcms/infrastructure/config"
	"atomcms/infrastructure/di"
	"atomcms/infrastructure/persistence/memory"
	"atomcms/pkg/auth"
	pkgerrors "atomcms/pkg/errors"
)

const (
	testRawKey   = "serve-key-1"
	testClientID = "client-1"
	testSecret   = "test-secret"
	testIssuer   = "atomcms"
)

type noopPublisher struct{}

func (noopPublisher) Publish(ctx context.Context, event events.DomainEvent) error { return nil }
func (noopPublisher) PublishBatch(ctx context.Context, batch []events.DomainEvent) error {
	return nil
}

type routerFixture struct {
	store   *memory.Store
	cache   *cache.LRURenderCache
	handler http.Handler
	tokens  *auth.JWTGenerator
}

// newRouterFixture wires the full stack over the in-memory store: one
// "site" collection serving an article at /home whose content uses the
// stored {sitename} variable and the per-request {visitor} variable.
func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()
	ctx := context.Background()
	logger := zap.NewNop()
	store := memory.NewStore()

	renderCache, err := cache.NewLRURenderCache(16, logger)
	require.NoError(t, err)

	atomType, err := entities.NewAtomType("type-1", testClientID, "text",
		`{"type":"string"}`,
		"<p>{root}</p>",
	)
	require.NoError(t, err)
	require.NoError(t, store.TypeRepo().Save(ctx, atomType))

	content, err := valueobjects.NewAtomContent(`"Welcome to {sitename}, {visitor}."`)
	require.NoError(t, err)
	atom, err := entities.NewAtom(testClientID, "type-1", content)
	require.NoError(t, err)
	require.NoError(t, store.AtomRepo().Save(ctx, atom))

	article, err := entities.NewArticle(testClientID, "home")
	require.NoError(t, err)
	require.NoError(t, article.AttachAtom(atom.ID(), 0))
	require.NoError(t, store.ArticleRepo().Save(ctx, article))

	collection, err := entities.NewCollection("coll-1", testClientID, "site")
	require.NoError(t, err)
	require.NoError(t, collection.AttachArticle(entities.CollectionSlot{
		ArticleID: article.ID(),
		SortOrder: 0,
		URL:       "/home",
	}))
	require.NoError(t, store.CollectionRepo().Save(ctx, collection))

	require.NoError(t, store.VariableRepo().Set(ctx, testClientID, "sitename", "Example"))

	store.AddAPIKey(testRawKey, ports.APIKeyRecord{
		KeyID:    "key-1",
		ClientID: testClientID,
		Active:   true,
	})

	renderer := services.NewTemplateRenderer()
	composer := services.NewComposer(store.AtomRepo(), store.TypeRepo(), renderer, logger)
	resolver := services.NewVariableResolver(store.VariableRepo(), logger)
	assembler := services.NewAssembler(store.CollectionRepo(), store.MenuRepo(), store.ArticleRepo(), logger)
	renderService := services.NewRenderService(assembler, composer, resolver, renderCache, logger)

	// The command bus and render service share one cache so variable
	// writes purge stale renders.
	commandBus := di.ProvideCommandBus(
		store.AtomRepo(), store.TypeRepo(), store.ArticleRepo(),
		store.CollectionRepo(), store.MenuRepo(), store.VariableRepo(),
		renderCache, noopPublisher{}, logger,
	)
	queryBus := di.ProvideQueryBus(
		renderService, assembler, composer, resolver,
		store.CollectionRepo(), store.MenuRepo(), store.ArticleRepo(),
		nil, &config.Config{}, logger,
	)

	jwtConfig := auth.JWTConfig{SecretKey: testSecret, Issuer: testIssuer}
	validator, err := auth.NewJWTValidator(jwtConfig)
	require.NoError(t, err)
	tokens, err := auth.NewJWTGenerator(jwtConfig, time.Hour)
	require.NoError(t, err)

	return &routerFixture{
		store:   store,
		cache:   renderCache,
		handler: NewRouter(commandBus, queryBus, store.KeyStore(), validator, logger).Setup(),
		tokens:  tokens,
	}
}

func (f *routerFixture) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	f.handler.ServeHTTP(rec, req)
	return rec
}

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestHealthEndpointsAreOpen(t *testing.T) {
	f := newRouterFixture(t)

	for _, path := range []string{"/health", "/ready"} {
		rec := f.do(t, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, rec.Code, path)
	}
}

func TestContentRequiresAPIKey(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp pkgerrors.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Error)
	assert.Equal(t, string(pkgerrors.ErrorTypeUnauthorized), resp.Type)
}

func TestContentAcceptsKeyHeader(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/articles", nil)
	req.Header.Set("X-API-Key", testRawKey)
	rec := f.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestContentAcceptsKeyQueryParam(t *testing.T) {
	f := newRouterFixture(t)

	rec := f.do(t, httptest.NewRequest(http.MethodGet, "/api/v1/articles?apikey="+testRawKey, nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, decodeEnvelope(t, rec).Success)
}

func TestRenderByURLSubstitutesAllTiers(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/site/home?u.visitor=Ada", nil)
	req.Header.Set("X-API-Key", testRawKey)
	rec := f.do(t, req)

	require.Equal(t, http.StatusOK, rec.Code)
	env := decodeEnvelope(t, rec)
	require.True(t, env.Success)

	var result queries.RenderArticleResult
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.Equal(t, "<p>Welcome to Example, Ada.</p>", result.Content)
	assert.NotEmpty(t, result.Version)
}

func TestRenderUnknownURLIsNotFound(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/content/site/missing", nil)
	req.Header.Set("X-API-Key", testRawKey)
	rec := f.do(t, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdminRequiresBearerToken(t *testing.T) {
	f := newRouterFixture(t)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/variables/sitename",
		strings.NewReader(`{"value":"Changed"}`))
	rec := f.do(t, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdminRejectsTokenWithoutClient(t *testing.T) {
	f := newRouterFixture(t)

	token, err := f.tokens.GenerateToken("user-1", "", []string{"admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/variables/sitename",
		strings.NewReader(`{"value":"Changed"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	rec := f.do(t, req)

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestVariableWriteInvalidatesRenders(t *testing.T) {
	f := newRouterFixture(t)

	render := func() string {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/content/site/home?u.visitor=Ada", nil)
		req.Header.Set("X-API-Key", testRawKey)
		rec := f.do(t, req)
		require.Equal(t, http.StatusOK, rec.Code)

		var result queries.RenderArticleResult
		require.NoError(t, json.Unmarshal(decodeEnvelope(t, rec).Data, &result))
		return result.Content
	}

	require.Equal(t, "<p>Welcome to Example, Ada.</p>", render())
	require.Equal(t, 1, f.cache.Len())

	token, err := f.tokens.GenerateToken("user-1", testClientID, []string{"admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/v1/admin/variables/sitename",
		strings.NewReader(`{"value":"Rebranded"}`))
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")
	rec := f.do(t, req)
	require.Equal(t, http.StatusOK, rec.Code)

	// The write purged the shared cache, so the next render picks up
	// the new stored value immediately.
	assert.Equal(t, 0, f.cache.Len())
	assert.Equal(t, "<p>Welcome to Rebranded, Ada.</p>", render())
}
