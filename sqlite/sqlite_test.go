package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/meikuraledutech/graphnav"
	"github.com/meikuraledutech/graphnav/internal/storetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) graphnav.Store {
	t.Helper()
	ctx := context.Background()
	s, err := Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	require.NoError(t, s.CreateSchema(ctx))
	return s
}

func TestStore_Conformance(t *testing.T) {
	storetest.Run(t, newTestStore)
}

func TestStore_FileRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "graph.db")

	s, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.CreateSchema(ctx))
	_, err = s.CreateGraph(ctx, storetest.Chain(2))
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(ctx, path)
	require.NoError(t, err)
	defer s.Close()

	ids, err := s.ReachableIDs(ctx, 1, graphnav.DefaultMaxDepth)
	require.NoError(t, err)
	assert.Equal(t, []int64{2, 3}, ids)
}

func TestStore_DropSchema(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.DropSchema(ctx))

	_, err := s.ListNodes(ctx)
	assert.ErrorIs(t, err, graphnav.ErrStoreUnavailable)
}

func TestStore_DeepChainHitsCeiling(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	_, err := s.CreateGraph(ctx, storetest.Chain(graphnav.DefaultMaxDepth+5))
	require.NoError(t, err)

	ids, err := s.ReachableIDs(ctx, 1, graphnav.DefaultMaxDepth)
	require.NoError(t, err)
	assert.Len(t, ids, graphnav.DefaultMaxDepth)
	assert.Equal(t, int64(graphnav.DefaultMaxDepth+1), ids[len(ids)-1])
}
