// Package memory implements graphnav.Store in process memory. It stands in
// for a database in tests and demos; ReachableIDs reproduces the recursive
// query, depth ceiling included, with a bounded breadth-first scan.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/meikuraledutech/graphnav"
)

// Store is an in-memory graph store. It is safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	nodes    []graphnav.Node // ascending id
	edges    []graphnav.Edge // insertion order
	nextNode int64
	nextEdge int64
}

var _ graphnav.Store = (*Store)(nil)

func New() *Store {
	return &Store{nextNode: 1, nextEdge: 1}
}

func (s *Store) CreateSchema(ctx context.Context) error { return nil }

// DropSchema discards every node and edge.
func (s *Store) DropSchema(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.reset()
	return nil
}

func (s *Store) Close() error { return nil }

// CreateGraph replaces the stored graph with g. Id assignment restarts at 1.
func (s *Store) CreateGraph(ctx context.Context, g *graphnav.Graph) (*graphnav.Graph, error) {
	if err := graphnav.Validate(g); err != nil {
		return nil, err
	}

	g = g.Clone()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Build into a scratch store so a failure leaves the current graph intact.
	next := New()
	refs := make(map[string]int64)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		n.ID = next.insertNode(n.Name)
		if n.Ref != "" {
			refs[n.Ref] = n.ID
		}
	}
	for i := range g.Edges {
		e := &g.Edges[i]
		if err := graphnav.ResolveEdge(e, refs); err != nil {
			return nil, err
		}
		id, err := next.insertEdge(e.SourceID, e.TargetID)
		if err != nil {
			return nil, err
		}
		e.ID = id
	}

	s.nodes, s.edges = next.nodes, next.edges
	s.nextNode, s.nextEdge = next.nextNode, next.nextEdge

	graphnav.ClearRefs(g)
	return g, nil
}

func (s *Store) AddNode(ctx context.Context, node *graphnav.Node) (int64, error) {
	if err := graphnav.ValidateNode(node); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	node.ID = s.insertNode(node.Name)
	return node.ID, nil
}

func (s *Store) AddEdge(ctx context.Context, edge *graphnav.Edge) (int64, error) {
	if err := graphnav.ValidateEdge(edge); err != nil {
		return 0, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, err := s.insertEdge(edge.SourceID, edge.TargetID)
	if err != nil {
		return 0, err
	}
	edge.ID = id
	return id, nil
}

// DeleteNode removes the node and every edge touching it.
// No error if the node doesn't exist.
func (s *Store) DeleteNode(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i, found := s.index(id)
	if !found {
		return nil
	}
	s.nodes = slices.Delete(s.nodes, i, i+1)
	s.edges = slices.DeleteFunc(s.edges, func(e graphnav.Edge) bool {
		return e.SourceID == id || e.TargetID == id
	})
	return nil
}

func (s *Store) ListNodes(ctx context.Context) ([]graphnav.Node, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: list nodes: %w", graphnav.ErrStoreUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]graphnav.Node{}, s.nodes...), nil
}

func (s *Store) ListEdges(ctx context.Context) ([]graphnav.Edge, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: list edges: %w", graphnav.ErrStoreUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]graphnav.Edge{}, s.edges...), nil
}

// ReadGraph copies nodes and edges under a single read lock.
func (s *Store) ReadGraph(ctx context.Context) (*graphnav.Graph, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: read graph: %w", graphnav.ErrStoreUnavailable, err)
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return &graphnav.Graph{
		Nodes: append([]graphnav.Node{}, s.nodes...),
		Edges: append([]graphnav.Edge{}, s.edges...),
	}, nil
}

func (s *Store) GetNode(ctx context.Context, id int64) (*graphnav.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, found := s.index(id)
	if !found {
		return nil, nil
	}
	n := s.nodes[i]
	return &n, nil
}

func (s *Store) GetNodeByName(ctx context.Context, name string) (*graphnav.Node, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, n := range s.nodes {
		if n.Name == name {
			return &n, nil
		}
	}
	return nil, nil
}

// ReachableIDs scans the edges into an adjacency mapping and expands it
// breadth first, stopping at maxDepth hops like the recursive SQL query.
func (s *Store) ReachableIDs(ctx context.Context, originID int64, maxDepth int) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: reachable query: %w", graphnav.ErrStoreUnavailable, err)
	}
	s.mu.RLock()
	adj := graphnav.BuildAdjacency(s.edges)
	s.mu.RUnlock()
	return adj.ReachableWithin(originID, maxDepth), nil
}

func (s *Store) reset() {
	s.nodes, s.edges = nil, nil
	s.nextNode, s.nextEdge = 1, 1
}

func (s *Store) insertNode(name string) int64 {
	id := s.nextNode
	s.nextNode++
	s.nodes = append(s.nodes, graphnav.Node{ID: id, Name: name})
	return id
}

func (s *Store) insertEdge(source, target int64) (int64, error) {
	for _, id := range [...]int64{source, target} {
		if _, found := s.index(id); !found {
			return 0, fmt.Errorf("%w: edge %d -> %d", graphnav.ErrNodeNotFound, source, target)
		}
	}
	id := s.nextEdge
	s.nextEdge++
	s.edges = append(s.edges, graphnav.Edge{ID: id, SourceID: source, TargetID: target})
	return id, nil
}

// index finds a node by id; nodes are kept in ascending id order.
func (s *Store) index(id int64) (int, bool) {
	return slices.BinarySearchFunc(s.nodes, id, func(n graphnav.Node, target int64) int {
		return cmp.Compare(n.ID, target)
	})
}
