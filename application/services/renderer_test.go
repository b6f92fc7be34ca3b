package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/infrastructure/cache"
	"atomcms/infrastructure/persistence/memory"
	pkgerrors "atomcms/pkg/errors"
)

type renderFixture struct {
	store    *memory.Store
	cache    *cache.LRURenderCache
	renderer *RenderService
	article  *entities.Article
}

// newRenderFixture builds a full pipeline over the in-memory store with
// one article whose content references {sitename} and {visitor}.
func newRenderFixture(t *testing.T) *renderFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	logger := zap.NewNop()

	renderCache, err := cache.NewLRURenderCache(16, logger)
	require.NoError(t, err)

	saveTextType(t, store, "type-1")
	atom := saveTextAtom(t, store, "11111111-0000-0000-0000-000000000000", "type-1", "Welcome to {sitename}, {visitor}.")

	article, err := entities.NewArticle(testClient, "home")
	require.NoError(t, err)
	require.NoError(t, article.AttachAtom(atom.ID(), 0))
	require.NoError(t, store.ArticleRepo().Save(ctx, article))

	require.NoError(t, store.VariableRepo().Set(ctx, testClient, "sitename", "Example"))

	resolver := NewVariableResolver(store.VariableRepo(), logger)
	composer := NewComposer(store.AtomRepo(), store.TypeRepo(), NewTemplateRenderer(), logger)
	assembler := NewAssembler(store.CollectionRepo(), store.MenuRepo(), store.ArticleRepo(), logger)

	return &renderFixture{
		store:    store,
		cache:    renderCache,
		renderer: NewRenderService(assembler, composer, resolver, renderCache, logger),
		article:  article,
	}
}

func TestRenderArticleSubstitutesAllTiers(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	uncacheable := mustVariableSet(t, map[string]string{"visitor": "Ada"})

	out, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), uncacheable)
	require.NoError(t, err)

	assert.Equal(t, "<p>Welcome to Example, Ada.</p>", out.Content)
	assert.True(t, out.ArticleID.Equals(f.article.ID()))
	assert.False(t, out.Version.IsZero())
}

func TestRenderReusesStablePassAcrossRequests(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	ada := mustVariableSet(t, map[string]string{"visitor": "Ada"})
	bob := mustVariableSet(t, map[string]string{"visitor": "Bob"})

	first, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), ada)
	require.NoError(t, err)
	second, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), bob)
	require.NoError(t, err)

	// Same reserved tag names, so the second request hits the cached
	// stable pass yet still gets its own request values.
	assert.Equal(t, "<p>Welcome to Example, Ada.</p>", first.Content)
	assert.Equal(t, "<p>Welcome to Example, Bob.</p>", second.Content)

	stats := f.cache.Stats()
	assert.Equal(t, int64(1), stats.Hits)
	assert.Equal(t, int64(1), stats.Misses)
}

func TestRenderKeyVariesWithReservedTags(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	withVisitor := mustVariableSet(t, map[string]string{"visitor": "Ada"})

	// First request reserves {visitor}; second reserves nothing, so its
	// stable pass must not reuse the first entry.
	reserved, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), withVisitor)
	require.NoError(t, err)
	plain, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)

	assert.Equal(t, "<p>Welcome to Example, Ada.</p>", reserved.Content)
	assert.Equal(t, "<p>Welcome to Example, {visitor}.</p>", plain.Content)
	assert.Equal(t, int64(2), f.cache.Stats().Misses)
}

func TestRenderKeyVariesWithCacheableValues(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	preview := mustVariableSet(t, map[string]string{"sitename": "Preview"})

	live, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)
	previewed, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), preview, valueobjects.EmptyVariableSet())
	require.NoError(t, err)

	assert.Contains(t, live.Content, "Example")
	assert.Contains(t, previewed.Content, "Preview")
	assert.Equal(t, int64(2), f.cache.Stats().Misses)
}

func TestRenderServesStaleUntilPurged(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	first, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)
	assert.Contains(t, first.Content, "Example")

	// A global value change does not move any version token, so the old
	// stable pass keeps serving until the cache is purged. The variable
	// command handlers purge on every write for exactly this reason.
	require.NoError(t, f.store.VariableRepo().Set(ctx, testClient, "sitename", "Renamed"))

	stale, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)
	assert.Contains(t, stale.Content, "Example")

	f.cache.Purge()

	fresh, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)
	assert.Contains(t, fresh.Content, "Renamed")
}

func TestRenderContentEditInvalidatesByVersion(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	first, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)

	// Editing the atom issues a new version token; the next render keys
	// differently and misses without any explicit purge.
	refs := f.article.OrderedAtoms()
	require.NotEmpty(t, refs)
	atom, err := f.store.AtomRepo().GetByID(ctx, testClient, refs[0].AtomID)
	require.NoError(t, err)

	content, err := valueobjects.NewAtomContent(`"Edited body."`)
	require.NoError(t, err)
	require.NoError(t, atom.UpdateContent(content))
	require.NoError(t, f.store.AtomRepo().Save(ctx, atom))

	second, err := f.renderer.RenderArticle(ctx, testClient, f.article.ID(), valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
	require.NoError(t, err)

	assert.NotEqual(t, first.Content, second.Content)
	assert.Contains(t, second.Content, "Edited body.")
	assert.True(t, second.Version.After(first.Version))
	assert.Equal(t, int64(2), f.cache.Stats().Misses)
}

func TestRenderByURL(t *testing.T) {
	ctx := context.Background()
	f := newRenderFixture(t)

	collection, err := entities.NewCollection("col-1", testClient, "site")
	require.NoError(t, err)
	require.NoError(t, collection.AttachArticle(entities.CollectionSlot{
		ArticleID: f.article.ID(),
		SortOrder: 0,
		URL:       "/home",
	}))
	require.NoError(t, f.store.CollectionRepo().Save(ctx, collection))

	t.Run("resolves slot url", func(t *testing.T) {
		out, err := f.renderer.RenderByURL(ctx, testClient, "site", "/home",
			valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
		require.NoError(t, err)
		assert.Contains(t, out.Content, "Welcome to Example")
	})

	t.Run("unknown url is not found", func(t *testing.T) {
		_, err := f.renderer.RenderByURL(ctx, testClient, "site", "/missing",
			valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("dangling slot is an integrity error", func(t *testing.T) {
		require.NoError(t, collection.AttachArticle(entities.CollectionSlot{
			ArticleID: valueobjects.NewArticleID(),
			SortOrder: 1,
			URL:       "/gone",
		}))
		require.NoError(t, f.store.CollectionRepo().Save(ctx, collection))

		_, err := f.renderer.RenderByURL(ctx, testClient, "site", "/gone",
			valueobjects.EmptyVariableSet(), valueobjects.EmptyVariableSet())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsIntegrity(err))
	})
}
