package handlers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"atomcms/application/commands"
	"atomcms/infrastructure/cache"
	"atomcms/infrastructure/persistence/memory"
	pkgerrors "atomcms/pkg/errors"
)

func primedCache(t *testing.T) *cache.LRURenderCache {
	t.Helper()
	c, err := cache.NewLRURenderCache(8, zap.NewNop())
	require.NoError(t, err)
	_, err = c.GetOrCompute(context.Background(), "key", func(ctx context.Context) (string, error) {
		return "cached", nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, c.Len())
	return c
}

func TestSetVariablePurgesRenderCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	renderCache := primedCache(t)
	publisher := &capturingPublisher{}

	handler := NewSetVariableHandler(store.VariableRepo(), renderCache, publisher, zap.NewNop())
	require.NoError(t, handler.Handle(ctx, commands.SetVariableCommand{
		ClientID: "client-1",
		Tag:      "sitename",
		Value:    "Example",
	}))

	assert.Equal(t, 0, renderCache.Len())

	set, err := store.VariableRepo().GetAll(ctx, "client-1")
	require.NoError(t, err)
	v, ok := set.Lookup("sitename")
	assert.True(t, ok)
	assert.Equal(t, "Example", v)

	published := publisher.published()
	require.Len(t, published, 1)
	assert.Equal(t, "variable.set", published[0].GetEventType())
}

func TestDeleteVariablePurgesRenderCache(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	require.NoError(t, store.VariableRepo().Set(ctx, "client-1", "sitename", "Example"))

	renderCache := primedCache(t)
	handler := NewDeleteVariableHandler(store.VariableRepo(), renderCache, zap.NewNop())

	require.NoError(t, handler.Handle(ctx, commands.DeleteVariableCommand{
		ClientID: "client-1",
		Tag:      "sitename",
	}))
	assert.Equal(t, 0, renderCache.Len())

	set, err := store.VariableRepo().GetAll(ctx, "client-1")
	require.NoError(t, err)
	assert.True(t, set.IsEmpty())
}

func TestDeleteVariableUnknownTag(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	renderCache := primedCache(t)
	handler := NewDeleteVariableHandler(store.VariableRepo(), renderCache, zap.NewNop())

	err := handler.Handle(ctx, commands.DeleteVariableCommand{
		ClientID: "client-1",
		Tag:      "absent",
	})
	require.Error(t, err)
	assert.True(t, pkgerrors.IsNotFound(err))
}
