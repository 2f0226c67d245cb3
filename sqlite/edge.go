package sqlite

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/graphnav"
)

// AddEdge inserts a single edge between two existing nodes.
// Returns ErrNodeNotFound if either endpoint is missing.
func (s *Store) AddEdge(ctx context.Context, edge *graphnav.Edge) (int64, error) {
	if err := graphnav.ValidateEdge(edge); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx,
		`INSERT INTO edges (source_node_id, target_node_id) VALUES (?, ?)`,
		edge.SourceID, edge.TargetID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: edge %d -> %d", graphnav.ErrNodeNotFound, edge.SourceID, edge.TargetID)
		}
		return 0, unavailable("insert edge", err)
	}
	if edge.ID, err = res.LastInsertId(); err != nil {
		return 0, unavailable("edge id", err)
	}
	return edge.ID, nil
}

// ListEdges returns all edges in insertion order; an empty slice if none.
func (s *Store) ListEdges(ctx context.Context) ([]graphnav.Edge, error) {
	return listEdges(ctx, s.db)
}

func listEdges(ctx context.Context, q queryer) ([]graphnav.Edge, error) {
	rows, err := q.QueryContext(ctx,
		`SELECT id, source_node_id, target_node_id FROM edges ORDER BY id`)
	if err != nil {
		return nil, unavailable("list edges", err)
	}
	defer rows.Close()

	edges := []graphnav.Edge{}
	for rows.Next() {
		var e graphnav.Edge
		if err := rows.Scan(&e.ID, &e.SourceID, &e.TargetID); err != nil {
			return nil, fmt.Errorf("graphnav: scan edge: %w", err)
		}
		edges = append(edges, e)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("rows edges", err)
	}
	return edges, nil
}
