package graphnav

import "slices"

// Graph is a bulk container of nodes and edges used by CreateGraph.
type Graph struct {
	Nodes []Node `json:"nodes" validate:"dive"`
	Edges []Edge `json:"edges" validate:"dive"`
}

// Node represents a vertex in the graph.
// Ref is a temporary key used only during CreateGraph for edge wiring. It is never persisted.
type Node struct {
	ID   int64  `json:"id"`
	Name string `json:"name" validate:"required,max=255"`
	Ref  string `json:"ref,omitempty"`
}

// Edge represents a directed connection between two nodes.
// SourceRef / TargetRef are temporary keys used only during CreateGraph. They are never persisted.
type Edge struct {
	ID        int64  `json:"id"`
	SourceID  int64  `json:"source_node_id" validate:"required_without=SourceRef"`
	TargetID  int64  `json:"target_node_id" validate:"required_without=TargetRef"`
	SourceRef string `json:"source_node_ref,omitempty"`
	TargetRef string `json:"target_node_ref,omitempty"`
}

// Reachability is the result of a forward reachability query.
// ReachableIDs is strictly ascending and never contains OriginID.
type Reachability struct {
	OriginID     int64   `json:"source_node_id"`
	ReachableIDs []int64 `json:"connected_node_ids"`
	Count        int     `json:"total_count"`
}

// Clone returns a copy of g that shares no backing arrays with it.
func (g *Graph) Clone() *Graph {
	return &Graph{Nodes: slices.Clone(g.Nodes), Edges: slices.Clone(g.Edges)}
}

func newReachability(originID int64, ids []int64) *Reachability {
	if ids == nil {
		ids = []int64{}
	}
	return &Reachability{OriginID: originID, ReachableIDs: ids, Count: len(ids)}
}
