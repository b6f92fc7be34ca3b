package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomcms/domain/core/valueobjects"
)

func TestCollectionAttachArticle(t *testing.T) {
	collection, err := NewCollection("col-1", "client-1", "site")
	require.NoError(t, err)

	articleA := valueobjects.NewArticleID()
	articleB := valueobjects.NewArticleID()

	require.NoError(t, collection.AttachArticle(CollectionSlot{
		ArticleID: articleA,
		SortOrder: 0,
		URL:       "/home",
	}))

	t.Run("duplicate article rejected", func(t *testing.T) {
		err := collection.AttachArticle(CollectionSlot{ArticleID: articleA, SortOrder: 1})
		assert.Error(t, err)
	})

	t.Run("duplicate url rejected", func(t *testing.T) {
		err := collection.AttachArticle(CollectionSlot{ArticleID: articleB, SortOrder: 1, URL: "/home"})
		assert.Error(t, err)
	})

	t.Run("empty urls may repeat", func(t *testing.T) {
		err := collection.AttachArticle(CollectionSlot{ArticleID: articleB, SortOrder: 1})
		assert.NoError(t, err)
	})
}

func TestCollectionSlotLookup(t *testing.T) {
	collection, err := NewCollection("col-1", "client-1", "site")
	require.NoError(t, err)

	articleID := valueobjects.NewArticleID()
	require.NoError(t, collection.AttachArticle(CollectionSlot{
		ArticleID: articleID,
		SortOrder: 0,
		URL:       "/about",
		Template:  "page.html",
	}))

	t.Run("by url", func(t *testing.T) {
		slot, ok := collection.SlotByURL("/about")
		require.True(t, ok)
		assert.True(t, slot.ArticleID.Equals(articleID))
		assert.Equal(t, "page.html", slot.Template)
	})

	t.Run("unknown url misses", func(t *testing.T) {
		_, ok := collection.SlotByURL("/missing")
		assert.False(t, ok)
	})

	t.Run("empty url never matches", func(t *testing.T) {
		unrouted := valueobjects.NewArticleID()
		require.NoError(t, collection.AttachArticle(CollectionSlot{ArticleID: unrouted, SortOrder: 1}))
		_, ok := collection.SlotByURL("")
		assert.False(t, ok)
	})

	t.Run("by article", func(t *testing.T) {
		slot, ok := collection.SlotByArticle(articleID)
		require.True(t, ok)
		assert.Equal(t, "/about", slot.URL)
	})
}

func TestMenuEntries(t *testing.T) {
	menu, err := NewMenu("menu-1", "col-1", DefaultMenuName)
	require.NoError(t, err)

	articleA := valueobjects.NewArticleID()
	articleB := valueobjects.NewArticleID()

	require.NoError(t, menu.AddEntry(MenuEntry{ArticleID: articleA, SortOrder: 2}))
	require.NoError(t, menu.AddEntry(MenuEntry{ArticleID: articleB, SortOrder: 1, DisplayName: "Start"}))

	t.Run("duplicate article rejected", func(t *testing.T) {
		err := menu.AddEntry(MenuEntry{ArticleID: articleA, SortOrder: 5})
		assert.Error(t, err)
	})

	t.Run("ordered by sortorder", func(t *testing.T) {
		entries := menu.OrderedEntries()
		require.Len(t, entries, 2)
		assert.True(t, entries[0].ArticleID.Equals(articleB))
		assert.Equal(t, "Start", entries[0].DisplayName)
	})

	t.Run("remove entry", func(t *testing.T) {
		require.NoError(t, menu.RemoveEntry(articleA))
		assert.Len(t, menu.OrderedEntries(), 1)
		assert.Error(t, menu.RemoveEntry(articleA))
	})
}
