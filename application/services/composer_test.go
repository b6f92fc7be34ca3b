package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/infrastructure/persistence/memory"
	pkgerrors "atomcms/pkg/errors"
)

const testClient = "client-1"

func newTestComposer(t *testing.T, store *memory.Store) *Composer {
	t.Helper()
	return NewComposer(store.AtomRepo(), store.TypeRepo(), NewTemplateRenderer(), zap.NewNop())
}

func saveTextType(t *testing.T, store *memory.Store, id string) *entities.AtomType {
	t.Helper()
	atomType, err := entities.NewAtomType(id, testClient, "text-"+id,
		`{"type":"string"}`,
		"<p>{root}</p>",
	)
	require.NoError(t, err)
	require.NoError(t, store.TypeRepo().Save(context.Background(), atomType))
	return atomType
}

func saveTextAtom(t *testing.T, store *memory.Store, id, typeID, text string) *entities.Atom {
	t.Helper()
	atomID, err := valueobjects.NewAtomIDFromString(id)
	require.NoError(t, err)
	content, err := valueobjects.NewAtomContent(`"` + text + `"`)
	require.NoError(t, err)
	atom, err := entities.NewAtomWithID(atomID, testClient, typeID, content)
	require.NoError(t, err)
	require.NoError(t, store.AtomRepo().Save(context.Background(), atom))
	return atom
}

func TestComposeOrdering(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	saveTextType(t, store, "type-1")
	first := saveTextAtom(t, store, "11111111-0000-0000-0000-000000000000", "type-1", "first")
	second := saveTextAtom(t, store, "22222222-0000-0000-0000-000000000000", "type-1", "second")
	third := saveTextAtom(t, store, "33333333-0000-0000-0000-000000000000", "type-1", "third")

	article, err := entities.NewArticle(testClient, "home")
	require.NoError(t, err)
	// Attach out of order; composition must sort.
	require.NoError(t, article.AttachAtom(third.ID(), 30))
	require.NoError(t, article.AttachAtom(first.ID(), 10))
	require.NoError(t, article.AttachAtom(second.ID(), 20))

	composition, err := composer.Compose(ctx, article)
	require.NoError(t, err)

	assert.Equal(t, "<p>first</p><p>second</p><p>third</p>", composition.Content)
	require.Len(t, composition.Fragments, 3)
	assert.True(t, composition.Fragments[0].AtomID.Equals(first.ID()))
	assert.True(t, composition.Fragments[2].AtomID.Equals(third.ID()))
}

func TestComposeTieBreakByAtomID(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	saveTextType(t, store, "type-1")
	low := saveTextAtom(t, store, "aaaaaaaa-0000-0000-0000-000000000000", "type-1", "low")
	high := saveTextAtom(t, store, "bbbbbbbb-0000-0000-0000-000000000000", "type-1", "high")

	// Equal sortorder can only come from stored state, so reconstitute.
	article := entities.ReconstituteArticle(
		valueobjects.NewArticleID(), testClient, "home",
		[]entities.AtomRef{
			{AtomID: high.ID(), SortOrder: 1},
			{AtomID: low.ID(), SortOrder: 1},
		},
		valueobjects.NewVersionToken(), time.Now(),
	)

	composition, err := composer.Compose(ctx, article)
	require.NoError(t, err)

	assert.Equal(t, "<p>low</p><p>high</p>", composition.Content)
}

func TestComposeMissingAtomFailsWhole(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	saveTextType(t, store, "type-1")
	present := saveTextAtom(t, store, "11111111-0000-0000-0000-000000000000", "type-1", "present")

	article, err := entities.NewArticle(testClient, "home")
	require.NoError(t, err)
	require.NoError(t, article.AttachAtom(present.ID(), 0))
	require.NoError(t, article.AttachAtom(valueobjects.NewAtomID(), 1))

	_, err = composer.Compose(ctx, article)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsIntegrity(err))
}

func TestComposeMissingTypeIsIntegrityError(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	// Atom references a type that was never stored.
	atom := saveTextAtom(t, store, "11111111-0000-0000-0000-000000000000", "type-gone", "text")

	article, err := entities.NewArticle(testClient, "home")
	require.NoError(t, err)
	require.NoError(t, article.AttachAtom(atom.ID(), 0))

	_, err = composer.Compose(ctx, article)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsIntegrity(err))
}

func TestComposeEmptyArticle(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	article, err := entities.NewArticle(testClient, "empty")
	require.NoError(t, err)

	composition, err := composer.Compose(ctx, article)
	require.NoError(t, err)
	assert.Empty(t, composition.Content)
	assert.Equal(t, article.Version(), composition.Version)
}

func TestComposeVersionIsNewestToken(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	saveTextType(t, store, "type-1")

	atomID, err := valueobjects.NewAtomIDFromString("11111111-0000-0000-0000-000000000000")
	require.NoError(t, err)
	content, err := valueobjects.NewAtomContent(`"text"`)
	require.NoError(t, err)

	articleToken := valueobjects.VersionTokenAt(time.Unix(100, 0))
	atomToken := valueobjects.VersionTokenAt(time.Unix(200, 0))

	atom := entities.ReconstituteAtom(atomID, testClient, "", "type-1", content, atomToken, time.Unix(100, 0))
	require.NoError(t, store.AtomRepo().Save(ctx, atom))

	article := entities.ReconstituteArticle(
		valueobjects.NewArticleID(), testClient, "home",
		[]entities.AtomRef{{AtomID: atomID, SortOrder: 0}},
		articleToken, time.Unix(100, 0),
	)

	composition, err := composer.Compose(ctx, article)
	require.NoError(t, err)
	assert.Equal(t, atomToken, composition.Version)
}

func TestComposeMarkdownField(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	composer := newTestComposer(t, store)

	atomType, err := entities.NewAtomType("type-md", testClient, "post",
		`{"type":"object","properties":{"title":{"type":"string"},"body":{"type":"string","markdown":true}}}`,
		"<h1>{title}</h1>\n{body}",
	)
	require.NoError(t, err)
	require.NoError(t, store.TypeRepo().Save(ctx, atomType))

	content, err := valueobjects.NewAtomContent(`{"title":"Hello","body":"Some **bold** text"}`)
	require.NoError(t, err)
	atom, err := entities.NewAtom(testClient, "type-md", content)
	require.NoError(t, err)
	require.NoError(t, store.AtomRepo().Save(ctx, atom))

	article, err := entities.NewArticle(testClient, "home")
	require.NoError(t, err)
	require.NoError(t, article.AttachAtom(atom.ID(), 0))

	composition, err := composer.Compose(ctx, article)
	require.NoError(t, err)
	assert.Contains(t, composition.Content, "<h1>Hello</h1>")
	assert.Contains(t, composition.Content, "<strong>bold</strong>")
}
