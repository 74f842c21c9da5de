package tree_test

import (
	"context"
	"testing"

	"github.com/ariaghora/libdtree/tree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestMemoryStore saves, loads, lists and deletes trees on an
// in-memory store.
func TestMemoryStore(t *testing.T) {
	ctx := context.Background()
	store := tree.NewMemoryStore()
	defer store.Close(ctx)

	tr := testingTree()
	require.NoError(t, store.Save(ctx, "iris", tr))
	require.NoError(t, store.Save(ctx, "churn", testingTree()))

	loaded, err := store.Load(ctx, "iris")
	require.NoError(t, err)
	assert.Equal(t, tr, loaded)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"churn", "iris"}, names, "names should come back in lexical order")

	require.NoError(t, store.Delete(ctx, "churn"))
	names, err = store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"iris"}, names)
}

// TestMemoryStoreLoadMissing returns no tree and no error for names
// nothing was saved under.
func TestMemoryStoreLoadMissing(t *testing.T) {
	ctx := context.Background()
	store := tree.NewMemoryStore()
	defer store.Close(ctx)

	loaded, err := store.Load(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

// TestMemoryStoreDeleteMissing accepts deleting names nothing was
// saved under.
func TestMemoryStoreDeleteMissing(t *testing.T) {
	ctx := context.Background()
	store := tree.NewMemoryStore()
	defer store.Close(ctx)

	assert.NoError(t, store.Delete(ctx, "missing"))
}

// TestMemoryStoreSaveReplaces replaces the tree previously saved under
// the same name.
func TestMemoryStoreSaveReplaces(t *testing.T) {
	ctx := context.Background()
	store := tree.NewMemoryStore()
	defer store.Close(ctx)

	require.NoError(t, store.Save(ctx, "iris", testingTree()))
	leaf := tree.New(&tree.Node{Leaf: true, Value: 3}, 2)
	require.NoError(t, store.Save(ctx, "iris", leaf))

	loaded, err := store.Load(ctx, "iris")
	require.NoError(t, err)
	assert.Equal(t, leaf, loaded)

	names, err := store.List(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"iris"}, names)
}

// TestMemoryStoreCancelledContext refuses operations once the context
// is cancelled.
func TestMemoryStoreCancelledContext(t *testing.T) {
	store := tree.NewMemoryStore()
	defer store.Close(context.Background())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.Save(ctx, "iris", testingTree())
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.Load(ctx, "iris")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = store.List(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	err = store.Delete(ctx, "iris")
	assert.ErrorIs(t, err, context.Canceled)
}
