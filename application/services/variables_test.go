package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/domain/core/valueobjects"
	"atomcms/infrastructure/persistence/memory"
)

func mustVariableSet(t *testing.T, values map[string]string) valueobjects.VariableSet {
	t.Helper()
	set, err := valueobjects.NewVariableSet(values)
	require.NoError(t, err)
	return set
}

func TestResolveGlobalAndCacheable(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	resolver := NewVariableResolver(store.VariableRepo(), zap.NewNop())

	require.NoError(t, store.VariableRepo().Set(ctx, testClient, "sitename", "Example Site"))
	require.NoError(t, store.VariableRepo().Set(ctx, testClient, "footer", "All rights reserved"))

	t.Run("global tier substitutes", func(t *testing.T) {
		out, err := resolver.ResolveGlobalAndCacheable(ctx,
			"Welcome to {sitename}. {footer}.",
			testClient, valueobjects.EmptyVariableSet(), nil)
		require.NoError(t, err)
		assert.Equal(t, "Welcome to Example Site. All rights reserved.", out)
	})

	t.Run("cacheable overrides global", func(t *testing.T) {
		cacheable := mustVariableSet(t, map[string]string{"sitename": "Preview Site"})
		out, err := resolver.ResolveGlobalAndCacheable(ctx,
			"Welcome to {sitename}.",
			testClient, cacheable, nil)
		require.NoError(t, err)
		assert.Equal(t, "Welcome to Preview Site.", out)
	})

	t.Run("reserved tags stay literal", func(t *testing.T) {
		out, err := resolver.ResolveGlobalAndCacheable(ctx,
			"{sitename} greets {visitor}. {footer}.",
			testClient, valueobjects.EmptyVariableSet(), []string{"visitor", "sitename"})
		require.NoError(t, err)
		// sitename has a global value but the request tier owns it now.
		assert.Equal(t, "{sitename} greets {visitor}. All rights reserved.", out)
	})

	t.Run("unknown tags stay literal", func(t *testing.T) {
		out, err := resolver.ResolveGlobalAndCacheable(ctx,
			"{sitename} and {nosuchtag}",
			testClient, valueobjects.EmptyVariableSet(), nil)
		require.NoError(t, err)
		assert.Equal(t, "Example Site and {nosuchtag}", out)
	})

	t.Run("no tiers leaves content untouched", func(t *testing.T) {
		empty := memory.NewStore()
		r := NewVariableResolver(empty.VariableRepo(), zap.NewNop())
		out, err := r.ResolveGlobalAndCacheable(ctx, "{anything} goes", testClient, valueobjects.EmptyVariableSet(), nil)
		require.NoError(t, err)
		assert.Equal(t, "{anything} goes", out)
	})
}

func TestResolveUncacheable(t *testing.T) {
	store := memory.NewStore()
	resolver := NewVariableResolver(store.VariableRepo(), zap.NewNop())

	t.Run("substitutes request tier", func(t *testing.T) {
		uncacheable := mustVariableSet(t, map[string]string{"visitor": "Ada"})
		out := resolver.ResolveUncacheable("Hello {visitor}!", uncacheable)
		assert.Equal(t, "Hello Ada!", out)
	})

	t.Run("empty tier is a no-op", func(t *testing.T) {
		out := resolver.ResolveUncacheable("Hello {visitor}!", valueobjects.EmptyVariableSet())
		assert.Equal(t, "Hello {visitor}!", out)
	})

	t.Run("braces without a valid tag survive", func(t *testing.T) {
		uncacheable := mustVariableSet(t, map[string]string{"visitor": "Ada"})
		out := resolver.ResolveUncacheable("body { margin: 0 } {visitor}", uncacheable)
		assert.Equal(t, "body { margin: 0 } Ada", out)
	})
}
