package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewVariableSet(t *testing.T) {
	t.Run("accepts plain tags", func(t *testing.T) {
		set, err := NewVariableSet(map[string]string{"sitename": "Example", "year": "2026"})
		require.NoError(t, err)
		assert.Equal(t, 2, set.Len())

		v, ok := set.Lookup("sitename")
		assert.True(t, ok)
		assert.Equal(t, "Example", v)
	})

	t.Run("unwraps braces around tags", func(t *testing.T) {
		set, err := NewVariableSet(map[string]string{"{sitename}": "Example"})
		require.NoError(t, err)

		v, ok := set.Lookup("sitename")
		assert.True(t, ok)
		assert.Equal(t, "Example", v)
	})

	t.Run("rejects empty tag", func(t *testing.T) {
		_, err := NewVariableSet(map[string]string{"": "value"})
		assert.Error(t, err)
	})

	t.Run("rejects tag with spaces", func(t *testing.T) {
		_, err := NewVariableSet(map[string]string{"site name": "value"})
		assert.Error(t, err)
	})

	t.Run("empty input yields empty set", func(t *testing.T) {
		set, err := NewVariableSet(nil)
		require.NoError(t, err)
		assert.True(t, set.IsEmpty())
	})
}

func TestVariableSetTags(t *testing.T) {
	set, err := NewVariableSet(map[string]string{"b": "2", "a": "1", "c": "3"})
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b", "c"}, set.Tags())
}

func TestVariableSetSignature(t *testing.T) {
	t.Run("equal sets share a signature", func(t *testing.T) {
		a, err := NewVariableSet(map[string]string{"x": "1", "y": "2"})
		require.NoError(t, err)
		b, err := NewVariableSet(map[string]string{"y": "2", "x": "1"})
		require.NoError(t, err)

		assert.Equal(t, a.Signature(), b.Signature())
	})

	t.Run("different values differ", func(t *testing.T) {
		a, err := NewVariableSet(map[string]string{"x": "1"})
		require.NoError(t, err)
		b, err := NewVariableSet(map[string]string{"x": "2"})
		require.NoError(t, err)

		assert.NotEqual(t, a.Signature(), b.Signature())
	})

	t.Run("tag and value boundaries do not blur", func(t *testing.T) {
		a, err := NewVariableSet(map[string]string{"ab": "c"})
		require.NoError(t, err)
		b, err := NewVariableSet(map[string]string{"a": "bc"})
		require.NoError(t, err)

		assert.NotEqual(t, a.Signature(), b.Signature())
	})

	t.Run("empty set is stable", func(t *testing.T) {
		assert.Equal(t, EmptyVariableSet().Signature(), EmptyVariableSet().Signature())
	})
}

func TestLookupChain(t *testing.T) {
	global, err := NewVariableSet(map[string]string{"sitename": "Global", "footer": "global footer"})
	require.NoError(t, err)
	cacheable, err := NewVariableSet(map[string]string{"sitename": "Cacheable"})
	require.NoError(t, err)
	uncacheable, err := NewVariableSet(map[string]string{"sitename": "Uncacheable"})
	require.NoError(t, err)

	t.Run("most specific tier wins", func(t *testing.T) {
		chain := NewLookupChain(uncacheable, cacheable, global)

		v, ok := chain.Lookup("sitename")
		assert.True(t, ok)
		assert.Equal(t, "Uncacheable", v)
	})

	t.Run("falls through missing tiers", func(t *testing.T) {
		chain := NewLookupChain(uncacheable, cacheable, global)

		v, ok := chain.Lookup("footer")
		assert.True(t, ok)
		assert.Equal(t, "global footer", v)
	})

	t.Run("unknown tag misses", func(t *testing.T) {
		chain := NewLookupChain(uncacheable, cacheable, global)

		_, ok := chain.Lookup("absent")
		assert.False(t, ok)
	})

	t.Run("empty chain is empty", func(t *testing.T) {
		assert.True(t, NewLookupChain(EmptyVariableSet()).IsEmpty())
		assert.False(t, NewLookupChain(global).IsEmpty())
	})
}
