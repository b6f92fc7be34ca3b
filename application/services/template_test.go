package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"atomcms/domain/core/entities"
	"atomcms/domain/core/valueobjects"
)

func renderAtom(t *testing.T, schema, template, content string) string {
	t.Helper()
	atomType, err := entities.NewAtomType("type-1", testClient, "fixture", schema, template)
	require.NoError(t, err)
	atomContent, err := valueobjects.NewAtomContent(content)
	require.NoError(t, err)
	atom, err := entities.NewAtom(testClient, "type-1", atomContent)
	require.NoError(t, err)

	rendered, err := NewTemplateRenderer().RenderAtom(atom, atomType)
	require.NoError(t, err)
	return rendered
}

const twoFieldSchema = `{"type":"object","properties":{"title":{"type":"string"},"body":{"type":"string"}}}`

func TestRenderAtomValueContainingPlaceholderStaysLiteral(t *testing.T) {
	rendered := renderAtom(t, twoFieldSchema,
		"{title}|{body}",
		`{"title":"{body}","body":"X"}`,
	)

	// The value "{body}" is content, not a template slot.
	assert.Equal(t, "{body}|X", rendered)
}

func TestRenderAtomIsDeterministic(t *testing.T) {
	first := renderAtom(t, twoFieldSchema,
		"{title}|{body}",
		`{"title":"{body}","body":"X"}`,
	)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, renderAtom(t, twoFieldSchema,
			"{title}|{body}",
			`{"title":"{body}","body":"X"}`,
		))
	}
}

func TestRenderAtomLeavesUndeclaredPlaceholders(t *testing.T) {
	rendered := renderAtom(t, twoFieldSchema,
		"{title} on {sitename}",
		`{"title":"Hello"}`,
	)

	// {sitename} is no schema field; it survives for the variable
	// passes. The absent body field would render as nothing.
	assert.Equal(t, "Hello on {sitename}", rendered)
}

func TestRenderAtomAbsentFieldRendersEmpty(t *testing.T) {
	rendered := renderAtom(t, twoFieldSchema,
		"[{title}][{body}]",
		`{"title":"Hello"}`,
	)

	assert.Equal(t, "[Hello][]", rendered)
}
