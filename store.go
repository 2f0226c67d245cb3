package graphnav

import (
	"context"
	"errors"
)

var (
	ErrNodeNotFound     = errors.New("graphnav: node not found")
	ErrStoreUnavailable = errors.New("graphnav: store unavailable")
	ErrInvalidGraph     = errors.New("graphnav: invalid graph")
	ErrUnknownRef       = errors.New("graphnav: unknown node ref")
)

// Reader is the read side of a graph store. It is everything the
// reachability engines and the renderer need.
type Reader interface {
	// ListNodes returns every node ordered by id.
	ListNodes(ctx context.Context) ([]Node, error)

	// ListEdges returns every edge in insertion order.
	ListEdges(ctx context.Context) ([]Edge, error)

	// GetNode returns nil, nil when no node has the id.
	GetNode(ctx context.Context, id int64) (*Node, error)

	// GetNodeByName returns the lowest-id node with the name, or nil, nil.
	GetNodeByName(ctx context.Context, name string) (*Node, error)

	// ReadGraph returns every node and edge from one consistent snapshot,
	// ordered as ListNodes and ListEdges order them.
	ReadGraph(ctx context.Context) (*Graph, error)

	// ReachableIDs runs the recursive reachability query: ids reachable in
	// 1..maxDepth hops from originID, deduplicated, ascending, origin excluded.
	ReachableIDs(ctx context.Context, originID int64, maxDepth int) ([]int64, error)
}

// Store defines the contract for persisting and retrieving graphs.
type Store interface {
	Reader

	// Schema
	CreateSchema(ctx context.Context) error
	DropSchema(ctx context.Context) error

	// Graph (bulk, replace semantics)
	CreateGraph(ctx context.Context, g *Graph) (*Graph, error)

	// Nodes
	AddNode(ctx context.Context, node *Node) (int64, error)
	DeleteNode(ctx context.Context, id int64) error

	// Edges
	AddEdge(ctx context.Context, edge *Edge) (int64, error)

	Close() error
}
