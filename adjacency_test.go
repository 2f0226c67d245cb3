package graphnav

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func edges(pairs ...[2]int64) []Edge {
	out := make([]Edge, len(pairs))
	for i, p := range pairs {
		out[i] = Edge{ID: int64(i + 1), SourceID: p[0], TargetID: p[1]}
	}
	return out
}

func TestBuildAdjacency(t *testing.T) {
	adj := BuildAdjacency(edges(
		[2]int64{1, 3}, [2]int64{2, 4}, [2]int64{1, 2}, [2]int64{1, 3},
	))

	assert.Equal(t, []int64{3, 2, 3}, adj[1], "order and parallel edges kept")
	assert.Equal(t, []int64{4}, adj[2])
	assert.Empty(t, adj[4])
	assert.Len(t, adj, 2)
}

func TestBuildAdjacency_Empty(t *testing.T) {
	assert.Empty(t, BuildAdjacency(nil))
}

func TestAdjacency_Reachable(t *testing.T) {
	tests := []struct {
		name   string
		edges  []Edge
		origin int64
		want   []int64
	}{
		{"no edges", nil, 1, []int64{}},
		{"chain", edges([2]int64{1, 2}, [2]int64{2, 3}), 1, []int64{2, 3}},
		{"sorted output", edges([2]int64{1, 9}, [2]int64{9, 4}, [2]int64{1, 2}), 1, []int64{2, 4, 9}},
		{"cycle back to origin", edges([2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1}), 1, []int64{2, 3}},
		{"self loop on origin", edges([2]int64{1, 1}), 1, []int64{}},
		{"self loop downstream", edges([2]int64{1, 2}, [2]int64{2, 2}), 1, []int64{2}},
		{"diamond", edges([2]int64{1, 2}, [2]int64{1, 3}, [2]int64{2, 4}, [2]int64{3, 4}), 1, []int64{2, 3, 4}},
		{"upstream not included", edges([2]int64{1, 2}, [2]int64{2, 3}), 2, []int64{3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildAdjacency(tt.edges).Reachable(tt.origin))
		})
	}
}

func TestAdjacency_ReachableWithin(t *testing.T) {
	chain := edges([2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 4}, [2]int64{4, 5})
	adj := BuildAdjacency(chain)

	assert.Equal(t, []int64{2}, adj.ReachableWithin(1, 1))
	assert.Equal(t, []int64{2, 3, 4}, adj.ReachableWithin(1, 3))
	assert.Equal(t, []int64{2, 3, 4, 5}, adj.ReachableWithin(1, 100))
	assert.Equal(t, []int64{2}, adj.ReachableWithin(1, 0), "direct successors are always included")

	// Shortcut 1->4 puts 4 at distance 1, so 5 is within two hops.
	shortcut := BuildAdjacency(append(chain, Edge{SourceID: 1, TargetID: 4}))
	assert.Equal(t, []int64{2, 3, 4, 5}, shortcut.ReachableWithin(1, 2))

	cycle := BuildAdjacency(edges([2]int64{1, 2}, [2]int64{2, 1}))
	assert.Equal(t, []int64{2}, cycle.ReachableWithin(1, 100))
}

func TestAdjacency_ReachableDeepChain(t *testing.T) {
	// Deep enough that a recursive walk would be a concern.
	const n = 200000
	chain := make([]Edge, n)
	for i := range chain {
		chain[i] = Edge{SourceID: int64(i + 1), TargetID: int64(i + 2)}
	}

	ids := BuildAdjacency(chain).Reachable(1)
	assert.Len(t, ids, n)
	assert.Equal(t, int64(2), ids[0])
	assert.Equal(t, int64(n+1), ids[n-1])
}
