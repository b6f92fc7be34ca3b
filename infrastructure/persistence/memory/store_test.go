package memory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomcms/application/ports"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	pkgerrors "atomcms/pkg/errors"
)

func TestAtomRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.AtomRepo()

	content, err := valueobjects.NewAtomContent(`"hello"`)
	require.NoError(t, err)
	atom, err := entities.NewAtom("client-1", "type-1", content)
	require.NoError(t, err)
	atom.SetKey("intro")
	require.NoError(t, repo.Save(ctx, atom))

	t.Run("get by id", func(t *testing.T) {
		got, err := repo.GetByID(ctx, "client-1", atom.ID())
		require.NoError(t, err)
		assert.Equal(t, "intro", got.Key())
	})

	t.Run("get by key", func(t *testing.T) {
		got, err := repo.GetByKey(ctx, "client-1", "intro")
		require.NoError(t, err)
		assert.True(t, got.ID().Equals(atom.ID()))
	})

	t.Run("tenant isolation", func(t *testing.T) {
		_, err := repo.GetByID(ctx, "client-2", atom.ID())
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})

	t.Run("batch skips missing atoms", func(t *testing.T) {
		missing := valueobjects.NewAtomID()
		batch, err := repo.GetBatch(ctx, "client-1", []valueobjects.AtomID{atom.ID(), missing})
		require.NoError(t, err)
		assert.Len(t, batch, 1)
		_, ok := batch[missing]
		assert.False(t, ok)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "client-1", atom.ID()))
		_, err := repo.GetByID(ctx, "client-1", atom.ID())
		assert.True(t, pkgerrors.IsNotFound(err))
		assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, "client-1", atom.ID())))
	})
}

func TestArticleRepoByName(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.ArticleRepo()

	article, err := entities.NewArticle("client-1", "home")
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, article))

	got, err := repo.GetByName(ctx, "client-1", "home")
	require.NoError(t, err)
	assert.True(t, got.ID().Equals(article.ID()))

	_, err = repo.GetByName(ctx, "client-1", "absent")
	assert.True(t, pkgerrors.IsNotFound(err))
}

func TestVariableRepo(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	repo := store.VariableRepo()

	require.NoError(t, repo.Set(ctx, "client-1", "sitename", "Example"))
	require.NoError(t, repo.Set(ctx, "client-1", "year", "2026"))
	require.NoError(t, repo.Set(ctx, "client-2", "sitename", "Other"))

	t.Run("get all is tenant scoped", func(t *testing.T) {
		set, err := repo.GetAll(ctx, "client-1")
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())

		v, ok := set.Lookup("sitename")
		assert.True(t, ok)
		assert.Equal(t, "Example", v)
	})

	t.Run("set overwrites", func(t *testing.T) {
		require.NoError(t, repo.Set(ctx, "client-1", "sitename", "Renamed"))
		set, err := repo.GetAll(ctx, "client-1")
		require.NoError(t, err)
		v, _ := set.Lookup("sitename")
		assert.Equal(t, "Renamed", v)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, repo.Delete(ctx, "client-1", "year"))
		assert.True(t, pkgerrors.IsNotFound(repo.Delete(ctx, "client-1", "year")))
	})

	t.Run("empty client yields empty set", func(t *testing.T) {
		set, err := repo.GetAll(ctx, "client-3")
		require.NoError(t, err)
		assert.True(t, set.IsEmpty())
	})
}

func TestKeyStoreResolve(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	store.AddAPIKey("raw-key", ports.APIKeyRecord{
		KeyID:    "key-1",
		ClientID: "client-1",
		UserID:   "user-1",
		Active:   true,
	})

	t.Run("known key", func(t *testing.T) {
		record, err := store.KeyStore().Resolve(ctx, "raw-key")
		require.NoError(t, err)
		assert.Equal(t, "client-1", record.ClientID)
	})

	t.Run("unknown key", func(t *testing.T) {
		_, err := store.KeyStore().Resolve(ctx, "nope")
		require.Error(t, err)
		assert.True(t, pkgerrors.IsNotFound(err))
	})
}
