package postgres

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/graphnav"
)

// AddEdge inserts a single edge between two existing nodes.
// Returns ErrNodeNotFound if either endpoint is missing.
func (s *PGStore) AddEdge(ctx context.Context, edge *graphnav.Edge) (int64, error) {
	if err := graphnav.ValidateEdge(edge); err != nil {
		return 0, err
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO edges (source_node_id, target_node_id) VALUES ($1, $2) RETURNING id`,
		edge.SourceID, edge.TargetID,
	).Scan(&edge.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return 0, fmt.Errorf("%w: edge %d -> %d", graphnav.ErrNodeNotFound, edge.SourceID, edge.TargetID)
		}
		return 0, unavailable("insert edge", err)
	}

	return edge.ID, nil
}

// ListEdges returns all edges in insertion order.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListEdges(ctx context.Context) ([]graphnav.Edge, error) {
	return listEdges(ctx, s.db)
}

func listEdges(ctx context.Context, q querier) ([]graphnav.Edge, error) {
	rows, err := q.Query(ctx,
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
