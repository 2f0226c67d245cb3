package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/meikuraledutech/graphnav"
)

// CreateGraph replaces the stored graph with g in one transaction.
// Id assignment restarts at 1. Edge refs (SourceRef/TargetRef) are resolved
// to the ids assigned to the referenced nodes.
// Returns a copy of the graph with all IDs filled in; g itself is not modified.
func (s *PGStore) CreateGraph(ctx context.Context, g *graphnav.Graph) (*graphnav.Graph, error) {
	if err := graphnav.Validate(g); err != nil {
		return nil, err
	}

	// Ids are filled into a copy so a rolled back insert leaves g as it was.
	g = g.Clone()

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, unavailable("begin tx", err)
	}
	defer tx.Rollback(ctx)

	// Replace semantics.
	if _, err := tx.Exec(ctx, `TRUNCATE edges, nodes RESTART IDENTITY`); err != nil {
		return nil, unavailable("truncate", err)
	}

	// Insert nodes, collecting ref → id.
	refs := make(map[string]int64)
	for i := range g.Nodes {
		n := &g.Nodes[i]
		if err := tx.QueryRow(ctx,
			`INSERT INTO nodes (name) VALUES ($1) RETURNING id`, n.Name,
		).Scan(&n.ID); err != nil {
			return nil, unavailable(fmt.Sprintf("insert node %q", n.Name), err)
		}
		if n.Ref != "" {
			refs[n.Ref] = n.ID
		}
	}

	// Insert edges.
	for i := range g.Edges {
		e := &g.Edges[i]
		if err := graphnav.ResolveEdge(e, refs); err != nil {
			return nil, err
		}
		if err := tx.QueryRow(ctx,
			`INSERT INTO edges (source_node_id, target_node_id) VALUES ($1, $2) RETURNING id`,
			e.SourceID, e.TargetID,
		).Scan(&e.ID); err != nil {
			if isForeignKeyViolation(err) {
				return nil, fmt.Errorf("%w: edge %d -> %d", graphnav.ErrNodeNotFound, e.SourceID, e.TargetID)
			}
			return nil, unavailable("insert edge", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, unavailable("commit", err)
	}

	graphnav.ClearRefs(g)
	return g, nil
}

// ReadGraph lists nodes and edges inside one read-only repeatable read
// transaction, so both come from the same snapshot.
func (s *PGStore) ReadGraph(ctx context.Context) (*graphnav.Graph, error) {
	tx, err := s.db.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return nil, unavailable("begin read tx", err)
	}
	defer tx.Rollback(ctx)

	nodes, err := listNodes(ctx, tx)
	if err != nil {
		return nil, err
	}
	edges, err := listEdges(ctx, tx)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, unavailable("commit read tx", err)
	}
	return &graphnav.Graph{Nodes: nodes, Edges: edges}, nil
}
