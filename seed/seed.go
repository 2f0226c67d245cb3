// Package seed builds the sample graph used for demos and manual testing:
// a tree five levels deep below a single root, with two cross-level edges.
package seed

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/graphnav"
)

// Stats summarizes a seeded graph. Levels counts nodes by shortest distance
// from the root.
type Stats struct {
	Nodes  int     `json:"nodes"`
	Edges  int     `json:"edges"`
	Levels []int   `json:"levels"`
	RootID int64   `json:"root_id"`
	Leaves []int64 `json:"-"`
}

// builder hands out refs and names in creation order: "Node 0", "Node 1", ...
type builder struct {
	g       graphnav.Graph
	counter int
}

func (b *builder) node() string {
	ref := fmt.Sprintf("n%d", b.counter)
	b.g.Nodes = append(b.g.Nodes, graphnav.Node{Ref: ref, Name: fmt.Sprintf("Node %d", b.counter)})
	b.counter++
	return ref
}

func (b *builder) edge(source, target string) {
	b.g.Edges = append(b.g.Edges, graphnav.Edge{SourceRef: source, TargetRef: target})
}

// children adds perParent(i) new children under each parent i.
func (b *builder) children(parents []string, perParent func(i int) int) []string {
	var level []string
	for i, parent := range parents {
		for range perParent(i) {
			child := b.node()
			b.edge(parent, child)
			level = append(level, child)
		}
	}
	return level
}

func fixed(n int) func(int) int { return func(int) int { return n } }

// Build returns the sample graph with refs set, ready for CreateGraph.
//
// Level sizes are 1, 3, 9, 18, 36 and 48: three children per node on the
// first two levels, two on the next two, and on the last level two children
// for every third parent and one otherwise. Two extra edges link level 2
// straight to level 4.
func Build() *graphnav.Graph {
	b := &builder{}

	root := []string{b.node()}
	l1 := b.children(root, fixed(3))
	l2 := b.children(l1, fixed(3))
	l3 := b.children(l2, fixed(2))
	l4 := b.children(l3, fixed(2))
	b.children(l4, func(i int) int {
		if i%3 == 0 {
			return 2
		}
		return 1
	})

	b.edge(l2[0], l4[0])
	b.edge(l2[1], l4[10])

	return &b.g
}

// Apply replaces the graph in store with the sample graph.
func Apply(ctx context.Context, store graphnav.Store) (*Stats, error) {
	g, err := store.CreateGraph(ctx, Build())
	if err != nil {
		return nil, fmt.Errorf("seed: %w", err)
	}
	return stats(g), nil
}

func stats(g *graphnav.Graph) *Stats {
	s := &Stats{Nodes: len(g.Nodes), Edges: len(g.Edges)}
	if len(g.Nodes) == 0 {
		return s
	}
	s.RootID = g.Nodes[0].ID

	adj := graphnav.BuildAdjacency(g.Edges)
	depth := map[int64]int{s.RootID: 0}
	frontier := []int64{s.RootID}
	for len(frontier) > 0 {
		s.Levels = append(s.Levels, len(frontier))
		var next []int64
		for _, id := range frontier {
			for _, child := range adj[id] {
				if _, seen := depth[child]; seen {
					continue
				}
				depth[child] = depth[id] + 1
				next = append(next, child)
			}
		}
		frontier = next
	}

	for _, n := range g.Nodes {
		if len(adj[n.ID]) == 0 {
			s.Leaves = append(s.Leaves, n.ID)
		}
	}
	return s
}
