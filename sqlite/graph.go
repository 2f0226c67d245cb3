package sqlite

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/graphnav"
)

// CreateGraph replaces the stored graph with g in one transaction, resolving
// edge refs to the ids assigned to their nodes. Id assignment restarts at 1.
func (s *Store) CreateGraph(ctx context.Context, g *graphnav.Graph) (*graphnav.Graph, error) {
	if err := graphnav.Validate(g); err != nil {
		return nil, err
	}

	// Ids are filled into a copy so a rolled back insert leaves g as it was.
	g = g.Clone()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin tx", err)
	}
	defer tx.Rollback()

	for _, q := range []string{`DELETE FROM edges`, `DELETE FROM nodes`} {
		if _, err := tx.ExecContext(ctx, q); err != nil {
			return nil, unavailable("clear", err)
		}
	}

	nodeStmt, err := tx.PrepareContext(ctx, `INSERT INTO nodes (name) VALUES (?)`)
	if err != nil {
		return nil, unavailable("prepare node insert", err)
	}
	defer nodeStmt.Close()

	refs := make(map[string]int64)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		res, err := nodeStmt.ExecContext(ctx, n.Name)
		if err != nil {
			return nil, unavailable(fmt.Sprintf("insert node %q", n.Name), err)
		}
		if n.ID, err = res.LastInsertId(); err != nil {
			return nil, unavailable("node id", err)
		}
		if n.Ref != "" {
			refs[n.Ref] = n.ID
		}
	}

	edgeStmt, err := tx.PrepareContext(ctx, `INSERT INTO edges (source_node_id, target_node_id) VALUES (?, ?)`)
	if err != nil {
		return nil, unavailable("prepare edge insert", err)
	}
	defer edgeStmt.Close()

	for i := range g.Edges {
		e := &g.Edges[i]
		if err := graphnav.ResolveEdge(e, refs); err != nil {
			return nil, err
		}
		res, err := edgeStmt.ExecContext(ctx, e.SourceID, e.TargetID)
		if err != nil {
			if isForeignKeyViolation(err) {
				return nil, fmt.Errorf("%w: edge %d -> %d", graphnav.ErrNodeNotFound, e.SourceID, e.TargetID)
			}
			return nil, unavailable("insert edge", err)
		}
		if e.ID, err = res.LastInsertId(); err != nil {
			return nil, unavailable("edge id", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("commit", err)
	}

	graphnav.ClearRefs(g)
	return g, nil
}

// ReadGraph lists nodes and edges inside one transaction. SQLite holds a
// read snapshot from the first read until the transaction ends.
func (s *Store) ReadGraph(ctx context.Context) (*graphnav.Graph, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, unavailable("begin read tx", err)
	}
	defer tx.Rollback()

	nodes, err := listNodes(ctx, tx)
	if err != nil {
		return nil, err
	}
	edges, err := listEdges(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, unavailable("commit read tx", err)
	}
	return &graphnav.Graph{Nodes: nodes, Edges: edges}, nil
}
