package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomcms/domain/core/valueobjects"
)

func TestNewArticle(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		article, err := NewArticle("client-1", "home")
		require.NoError(t, err)
		assert.Equal(t, "client-1", article.ClientID())
		assert.Equal(t, "home", article.Name())
		assert.False(t, article.Version().IsZero())
		assert.Empty(t, article.OrderedAtoms())
	})

	t.Run("requires client", func(t *testing.T) {
		_, err := NewArticle("", "home")
		assert.Error(t, err)
	})

	t.Run("requires name", func(t *testing.T) {
		_, err := NewArticle("client-1", "")
		assert.Error(t, err)
	})
}

func TestArticleAttachAtom(t *testing.T) {
	article, err := NewArticle("client-1", "home")
	require.NoError(t, err)

	atomA := valueobjects.NewAtomID()
	atomB := valueobjects.NewAtomID()

	require.NoError(t, article.AttachAtom(atomA, 10))

	t.Run("duplicate atom rejected", func(t *testing.T) {
		err := article.AttachAtom(atomA, 20)
		assert.Error(t, err)
	})

	t.Run("duplicate sort order rejected", func(t *testing.T) {
		err := article.AttachAtom(atomB, 10)
		assert.Error(t, err)
	})

	t.Run("negative sort order rejected", func(t *testing.T) {
		err := article.AttachAtom(atomB, -1)
		assert.Error(t, err)
	})

	t.Run("attach bumps version", func(t *testing.T) {
		before := article.Version()
		require.NoError(t, article.AttachAtom(atomB, 20))
		assert.True(t, article.Version().After(before) || article.Version() == before)
	})
}

func TestArticleAppendAtom(t *testing.T) {
	article, err := NewArticle("client-1", "home")
	require.NoError(t, err)

	first := valueobjects.NewAtomID()
	second := valueobjects.NewAtomID()

	require.NoError(t, article.AttachAtom(first, 5))
	require.NoError(t, article.AppendAtom(second))

	refs := article.OrderedAtoms()
	require.Len(t, refs, 2)
	assert.Equal(t, 5, refs[0].SortOrder)
	assert.Equal(t, 6, refs[1].SortOrder)
	assert.True(t, refs[1].AtomID.Equals(second))
}

func TestArticleDetachAtom(t *testing.T) {
	article, err := NewArticle("client-1", "home")
	require.NoError(t, err)

	atomID := valueobjects.NewAtomID()
	require.NoError(t, article.AttachAtom(atomID, 0))

	require.NoError(t, article.DetachAtom(atomID))
	assert.Empty(t, article.OrderedAtoms())

	assert.Error(t, article.DetachAtom(atomID))
}

func TestOrderedAtoms(t *testing.T) {
	t.Run("sorted by sortorder", func(t *testing.T) {
		article, err := NewArticle("client-1", "home")
		require.NoError(t, err)

		a := valueobjects.NewAtomID()
		b := valueobjects.NewAtomID()
		c := valueobjects.NewAtomID()

		require.NoError(t, article.AttachAtom(a, 30))
		require.NoError(t, article.AttachAtom(b, 10))
		require.NoError(t, article.AttachAtom(c, 20))

		refs := article.OrderedAtoms()
		require.Len(t, refs, 3)
		assert.Equal(t, []int{10, 20, 30}, []int{refs[0].SortOrder, refs[1].SortOrder, refs[2].SortOrder})
	})

	t.Run("atom ID breaks sortorder ties", func(t *testing.T) {
		idA, err := valueobjects.NewAtomIDFromString("aaaaaaaa-0000-0000-0000-000000000000")
		require.NoError(t, err)
		idB, err := valueobjects.NewAtomIDFromString("bbbbbbbb-0000-0000-0000-000000000000")
		require.NoError(t, err)

		refs := []AtomRef{
			{AtomID: idB, SortOrder: 1},
			{AtomID: idA, SortOrder: 1},
		}
		SortAtomRefs(refs)

		assert.True(t, refs[0].AtomID.Equals(idA))
		assert.True(t, refs[1].AtomID.Equals(idB))
	})
}
