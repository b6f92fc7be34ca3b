package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/infrastructure/persistence/memory"
	pkgerrors "atomcms/pkg/errors"
)

type assemblerFixture struct {
	store     *memory.Store
	assembler *Assembler
	home      *entities.Article
	about     *entities.Article
}

func newAssemblerFixture(t *testing.T) *assemblerFixture {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()

	home, err := entities.NewArticle(testClient, "home")
	require.NoError(t, err)
	require.NoError(t, store.ArticleRepo().Save(ctx, home))

	about, err := entities.NewArticle(testClient, "about")
	require.NoError(t, err)
	require.NoError(t, store.ArticleRepo().Save(ctx, about))

	collection, err := entities.NewCollection("col-1", testClient, "site")
	require.NoError(t, err)
	require.NoError(t, collection.AttachArticle(entities.CollectionSlot{ArticleID: home.ID(), SortOrder: 0, URL: "/"}))
	require.NoError(t, collection.AttachArticle(entities.CollectionSlot{ArticleID: about.ID(), SortOrder: 1, URL: "/about"}))
	require.NoError(t, store.CollectionRepo().Save(ctx, collection))

	menu, err := entities.NewMenu("menu-1", "col-1", entities.DefaultMenuName)
	require.NoError(t, err)
	require.NoError(t, menu.AddEntry(entities.MenuEntry{ArticleID: about.ID(), SortOrder: 0, DisplayName: "About Us"}))
	require.NoError(t, menu.AddEntry(entities.MenuEntry{ArticleID: home.ID(), SortOrder: 1}))
	require.NoError(t, store.MenuRepo().Save(ctx, menu))

	return &assemblerFixture{
		store:     store,
		assembler: NewAssembler(store.CollectionRepo(), store.MenuRepo(), store.ArticleRepo(), zap.NewNop()),
		home:      home,
		about:     about,
	}
}

func TestResolveByURL(t *testing.T) {
	ctx := context.Background()
	f := newAssemblerFixture(t)

	t.Run("resolves", func(t *testing.T) {
		target, err := f.assembler.ResolveByURL(ctx, testClient, "site", "/about")
		require.NoError(t, err)
		assert.True(t, target.Article.ID().Equals(f.about.ID()))
		assert.Equal(t, "/about", target.Slot.URL)
		assert.Equal(t, "col-1", target.Collection.ID())
	})

	t.Run("unknown collection", func(t *testing.T) {
		_, err := f.assembler.ResolveByURL(ctx, testClient, "nope", "/about")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("unknown url", func(t *testing.T) {
		_, err := f.assembler.ResolveByURL(ctx, testClient, "site", "/nope")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("other tenant sees nothing", func(t *testing.T) {
		_, err := f.assembler.ResolveByURL(ctx, "client-2", "site", "/about")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}

func TestListMenu(t *testing.T) {
	ctx := context.Background()
	f := newAssemblerFixture(t)

	t.Run("orders and overrides names", func(t *testing.T) {
		entries, err := f.assembler.ListMenu(ctx, testClient, "site", "")
		require.NoError(t, err)
		require.Len(t, entries, 2)

		// Display name overrides the article name; missing override
		// falls back to it.
		assert.Equal(t, "About Us", entries[0].Name)
		assert.Equal(t, "/about", entries[0].URL)
		assert.Equal(t, "home", entries[1].Name)
		assert.Equal(t, "/", entries[1].URL)
	})

	t.Run("empty menu name means main", func(t *testing.T) {
		byDefault, err := f.assembler.ListMenu(ctx, testClient, "site", "")
		require.NoError(t, err)
		byName, err := f.assembler.ListMenu(ctx, testClient, "site", entities.DefaultMenuName)
		require.NoError(t, err)
		assert.Equal(t, byName, byDefault)
	})

	t.Run("unknown menu", func(t *testing.T) {
		_, err := f.assembler.ListMenu(ctx, testClient, "site", "footer")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("dangling entry is an integrity error", func(t *testing.T) {
		menu, err := f.store.MenuRepo().GetByName(ctx, "col-1", entities.DefaultMenuName)
		require.NoError(t, err)
		require.NoError(t, menu.AddEntry(entities.MenuEntry{ArticleID: valueobjects.NewArticleID(), SortOrder: 9}))
		require.NoError(t, f.store.MenuRepo().Save(ctx, menu))

		_, err = f.assembler.ListMenu(ctx, testClient, "site", "")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsIntegrity(err))
	})
}
