// Package storetest is a conformance suite for graphnav.Store implementations.
package storetest

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/meikuraledutech/graphnav"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Factory returns an empty store with its schema created.
type Factory func(t *testing.T) graphnav.Store

// Chain builds nodes 1..n+1 named "n1".. with edges i -> i+1.
func Chain(n int) *graphnav.Graph {
	g := &graphnav.Graph{}
	for i := 1; i <= n+1; i++ {
		ref := fmt.Sprintf("n%d", i)
		g.Nodes = append(g.Nodes, graphnav.Node{Ref: ref, Name: ref})
		if i > 1 {
			g.Edges = append(g.Edges, graphnav.Edge{SourceRef: fmt.Sprintf("n%d", i-1), TargetRef: ref})
		}
	}
	return g
}

// FromPairs builds nodes 1..nodes with the given edges, which use the ids
// the nodes will be assigned by CreateGraph.
func FromPairs(nodes int, pairs ...[2]int64) *graphnav.Graph {
	g := &graphnav.Graph{}
	for i := 1; i <= nodes; i++ {
		g.Nodes = append(g.Nodes, graphnav.Node{Ref: fmt.Sprint(i), Name: fmt.Sprintf("Node %d", i)})
	}
	for _, p := range pairs {
		g.Edges = append(g.Edges, graphnav.Edge{SourceRef: fmt.Sprint(p[0]), TargetRef: fmt.Sprint(p[1])})
	}
	return g
}

// Run exercises every Store operation against stores made by newStore.
func Run(t *testing.T, newStore Factory) {
	ctx := context.Background()

	seed := func(t *testing.T, g *graphnav.Graph) graphnav.Store {
		t.Helper()
		s := newStore(t)
		_, err := s.CreateGraph(ctx, g)
		require.NoError(t, err)
		return s
	}

	t.Run("CreateGraph resolves refs", func(t *testing.T) {
		s := newStore(t)
		g, err := s.CreateGraph(ctx, &graphnav.Graph{
			Nodes: []graphnav.Node{{Ref: "a", Name: "A"}, {Ref: "b", Name: "B"}},
			Edges: []graphnav.Edge{{SourceRef: "a", TargetRef: "b"}},
		})
		require.NoError(t, err)

		assert.Equal(t, int64(1), g.Nodes[0].ID)
		assert.Equal(t, int64(2), g.Nodes[1].ID)
		assert.Equal(t, int64(1), g.Edges[0].SourceID)
		assert.Equal(t, int64(2), g.Edges[0].TargetID)
		assert.NotZero(t, g.Edges[0].ID)
		assert.Empty(t, g.Nodes[0].Ref)
		assert.Empty(t, g.Edges[0].SourceRef)
	})

	t.Run("CreateGraph leaves its input untouched", func(t *testing.T) {
		s := newStore(t)
		in := &graphnav.Graph{
			Nodes: []graphnav.Node{{Ref: "a", Name: "A"}, {Ref: "b", Name: "B"}},
			Edges: []graphnav.Edge{{SourceRef: "a", TargetRef: "b"}},
		}
		out, err := s.CreateGraph(ctx, in)
		require.NoError(t, err)
		require.NotSame(t, in, out)

		assert.Equal(t, []graphnav.Node{{Ref: "a", Name: "A"}, {Ref: "b", Name: "B"}}, in.Nodes)
		assert.Equal(t, []graphnav.Edge{{SourceRef: "a", TargetRef: "b"}}, in.Edges)
	})

	t.Run("failed CreateGraph assigns no ids", func(t *testing.T) {
		s := newStore(t)
		// The node insert succeeds, then the edge names a node that never exists.
		in := &graphnav.Graph{
			Nodes: []graphnav.Node{{Ref: "a", Name: "A"}},
			Edges: []graphnav.Edge{{SourceRef: "a", TargetID: 99}},
		}
		_, err := s.CreateGraph(ctx, in)
		require.ErrorIs(t, err, graphnav.ErrNodeNotFound)

		assert.Zero(t, in.Nodes[0].ID)
		assert.Equal(t, "a", in.Nodes[0].Ref)
		assert.Zero(t, in.Edges[0].ID)
		assert.Zero(t, in.Edges[0].SourceID)
	})

	t.Run("CreateGraph replaces previous graph", func(t *testing.T) {
		s := seed(t, Chain(3))
		_, err := s.CreateGraph(ctx, FromPairs(2, [2]int64{2, 1}))
		require.NoError(t, err)

		nodes, err := s.ListNodes(ctx)
		require.NoError(t, err)
		assert.Equal(t, []graphnav.Node{{ID: 1, Name: "Node 1"}, {ID: 2, Name: "Node 2"}}, nodes)

		edges, err := s.ListEdges(ctx)
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, int64(2), edges[0].SourceID)
		assert.Equal(t, int64(1), edges[0].TargetID)
	})

	t.Run("CreateGraph rejects bad input", func(t *testing.T) {
		s := seed(t, Chain(1))

		_, err := s.CreateGraph(ctx, &graphnav.Graph{
			Nodes: []graphnav.Node{{Ref: "a", Name: "A"}},
			Edges: []graphnav.Edge{{SourceRef: "a", TargetRef: "missing"}},
		})
		assert.ErrorIs(t, err, graphnav.ErrUnknownRef)

		_, err = s.CreateGraph(ctx, &graphnav.Graph{Nodes: []graphnav.Node{{Name: ""}}})
		assert.ErrorIs(t, err, graphnav.ErrInvalidGraph)

		_, err = s.CreateGraph(ctx, &graphnav.Graph{Nodes: []graphnav.Node{{Name: strings.Repeat("x", 256)}}})
		assert.ErrorIs(t, err, graphnav.ErrInvalidGraph)

		// The stored graph is untouched.
		nodes, err := s.ListNodes(ctx)
		require.NoError(t, err)
		assert.Len(t, nodes, 2)
	})

	t.Run("ReadGraph returns both lists", func(t *testing.T) {
		s := seed(t, FromPairs(4, [2]int64{3, 4}, [2]int64{1, 3}, [2]int64{1, 2}))

		g, err := s.ReadGraph(ctx)
		require.NoError(t, err)

		nodes, err := s.ListNodes(ctx)
		require.NoError(t, err)
		edges, err := s.ListEdges(ctx)
		require.NoError(t, err)
		assert.Equal(t, nodes, g.Nodes)
		assert.Equal(t, edges, g.Edges)
	})

	t.Run("ReadGraph on an empty store", func(t *testing.T) {
		g, err := newStore(t).ReadGraph(ctx)
		require.NoError(t, err)
		assert.NotNil(t, g.Nodes)
		assert.NotNil(t, g.Edges)
		assert.Empty(t, g.Nodes)
		assert.Empty(t, g.Edges)
	})

	t.Run("empty store lists empty slices", func(t *testing.T) {
		s := newStore(t)

		nodes, err := s.ListNodes(ctx)
		require.NoError(t, err)
		assert.NotNil(t, nodes)
		assert.Empty(t, nodes)

		edges, err := s.ListEdges(ctx)
		require.NoError(t, err)
		assert.NotNil(t, edges)
		assert.Empty(t, edges)
	})

	t.Run("ListEdges keeps insertion order", func(t *testing.T) {
		s := seed(t, FromPairs(4, [2]int64{3, 4}, [2]int64{1, 3}, [2]int64{1, 2}))

		edges, err := s.ListEdges(ctx)
		require.NoError(t, err)
		require.Len(t, edges, 3)
		assert.Equal(t, [2]int64{3, 4}, [2]int64{edges[0].SourceID, edges[0].TargetID})
		assert.Equal(t, [2]int64{1, 3}, [2]int64{edges[1].SourceID, edges[1].TargetID})
		assert.Equal(t, [2]int64{1, 2}, [2]int64{edges[2].SourceID, edges[2].TargetID})
	})

	t.Run("GetNode", func(t *testing.T) {
		s := seed(t, FromPairs(2))

		n, err := s.GetNode(ctx, 2)
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, "Node 2", n.Name)

		n, err = s.GetNode(ctx, 99)
		require.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("GetNodeByName returns lowest id", func(t *testing.T) {
		s := seed(t, &graphnav.Graph{Nodes: []graphnav.Node{{Name: "B"}, {Name: "A"}, {Name: "A"}}})

		n, err := s.GetNodeByName(ctx, "A")
		require.NoError(t, err)
		require.NotNil(t, n)
		assert.Equal(t, int64(2), n.ID)

		n, err = s.GetNodeByName(ctx, "Z")
		require.NoError(t, err)
		assert.Nil(t, n)
	})

	t.Run("AddNode and AddEdge", func(t *testing.T) {
		s := newStore(t)

		a := &graphnav.Node{Name: "A"}
		aID, err := s.AddNode(ctx, a)
		require.NoError(t, err)
		assert.Equal(t, aID, a.ID)

		b := &graphnav.Node{Name: "B"}
		bID, err := s.AddNode(ctx, b)
		require.NoError(t, err)

		e := &graphnav.Edge{SourceID: aID, TargetID: bID}
		eID, err := s.AddEdge(ctx, e)
		require.NoError(t, err)
		assert.Equal(t, eID, e.ID)

		_, err = s.AddEdge(ctx, &graphnav.Edge{SourceID: aID, TargetID: 999})
		assert.ErrorIs(t, err, graphnav.ErrNodeNotFound)

		_, err = s.AddNode(ctx, &graphnav.Node{})
		assert.ErrorIs(t, err, graphnav.ErrInvalidGraph)
	})

	t.Run("DeleteNode cascades to edges", func(t *testing.T) {
		s := seed(t, FromPairs(3, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{1, 3}))

		require.NoError(t, s.DeleteNode(ctx, 2))
		require.NoError(t, s.DeleteNode(ctx, 42))

		edges, err := s.ListEdges(ctx)
		require.NoError(t, err)
		require.Len(t, edges, 1)
		assert.Equal(t, int64(1), edges[0].SourceID)
		assert.Equal(t, int64(3), edges[0].TargetID)
	})

	t.Run("ReachableIDs", func(t *testing.T) {
		cases := []struct {
			name     string
			graph    *graphnav.Graph
			origin   int64
			maxDepth int
			want     []int64
		}{
			{"chain", Chain(3), 1, 100, []int64{2, 3, 4}},
			{"leaf", Chain(3), 4, 100, []int64{}},
			{"unknown origin", Chain(3), 99, 100, []int64{}},
			{"cycle excludes origin", FromPairs(3, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 1}), 1, 100, []int64{2, 3}},
			{"self loop", FromPairs(2, [2]int64{1, 1}, [2]int64{1, 2}), 1, 100, []int64{2}},
			{"parallel edges", FromPairs(3, [2]int64{1, 2}, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{1, 3}), 1, 100, []int64{2, 3}},
			{"depth ceiling", Chain(10), 1, 4, []int64{2, 3, 4, 5}},
			{"ceiling counts shortest path", FromPairs(5, [2]int64{1, 2}, [2]int64{2, 3}, [2]int64{3, 4}, [2]int64{1, 4}, [2]int64{4, 5}), 1, 2, []int64{2, 3, 4, 5}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				s := seed(t, tc.graph)
				ids, err := s.ReachableIDs(ctx, tc.origin, tc.maxDepth)
				require.NoError(t, err)
				assert.Equal(t, tc.want, ids)
			})
		}
	})
}
