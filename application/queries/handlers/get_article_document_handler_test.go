package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/application/queries"
	"atomcms/application/services"
	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
	"atomcms/infrastructure/persistence/memory"
)

const docTestClient = "client-1"

// newDocumentFixture seeds one article with a single text atom whose
// content references the stored {sitename} variable.
func newDocumentFixture(t *testing.T) (*GetArticleDocumentHandler, *entities.Article) {
	t.Helper()
	ctx := context.Background()
	store := memory.NewStore()
	logger := zap.NewNop()

	atomType, err := entities.NewAtomType("type-1", docTestClient, "text",
		`{"type":"string"}`,
		"<p>{root}</p>",
	)
	require.NoError(t, err)
	require.NoError(t, store.TypeRepo().Save(ctx, atomType))

	content, err := valueobjects.NewAtomContent(`"About {sitename}"`)
	require.NoError(t, err)
	atom, err := entities.NewAtom(docTestClient, "type-1", content)
	require.NoError(t, err)
	atom.SetKey("intro")
	require.NoError(t, store.AtomRepo().Save(ctx, atom))

	article, err := entities.NewArticle(docTestClient, "about")
	require.NoError(t, err)
	require.NoError(t, article.AttachAtom(atom.ID(), 0))
	require.NoError(t, store.ArticleRepo().Save(ctx, article))

	require.NoError(t, store.VariableRepo().Set(ctx, docTestClient, "sitename", "Example"))

	composer := services.NewComposer(store.AtomRepo(), store.TypeRepo(), services.NewTemplateRenderer(), logger)
	resolver := services.NewVariableResolver(store.VariableRepo(), logger)
	return NewGetArticleDocumentHandler(store.ArticleRepo(), composer, resolver, logger), article
}

func TestArticleDocumentRendersFragments(t *testing.T) {
	handler, article := newDocumentFixture(t)

	result, err := handler.Handle(context.Background(), queries.GetArticleDocumentQuery{
		ClientID:    docTestClient,
		ArticleName: "about",
	})
	require.NoError(t, err)

	assert.Equal(t, article.ID().String(), result.ID)
	require.Len(t, result.Atoms, 1)
	assert.Equal(t, "intro", result.Atoms[0].Key)
	assert.Equal(t, "text", result.Atoms[0].Type)
	assert.Equal(t, "<p>About Example</p>", result.Atoms[0].Content)
}

func TestArticleDocumentRawSkipsTemplatesAndVariables(t *testing.T) {
	handler, _ := newDocumentFixture(t)

	result, err := handler.Handle(context.Background(), queries.GetArticleDocumentQuery{
		ClientID:    docTestClient,
		ArticleName: "about",
		Raw:         true,
	})
	require.NoError(t, err)

	require.Len(t, result.Atoms, 1)
	assert.Equal(t, `"About {sitename}"`, result.Atoms[0].Content)
}
