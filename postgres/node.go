package postgres

import (
	"context"
	"fmt"

	"github.com/meikuraledutech/graphnav"
)

// AddNode inserts a single node.
// Returns the id assigned by the database.
func (s *PGStore) AddNode(ctx context.Context, node *graphnav.Node) (int64, error) {
	if err := graphnav.ValidateNode(node); err != nil {
		return 0, err
	}

	err := s.db.QueryRow(ctx,
		`INSERT INTO nodes (name) VALUES ($1) RETURNING id`, node.Name,
	).Scan(&node.ID)
	if err != nil {
		return 0, unavailable("insert node", err)
	}

	return node.ID, nil
}

// GetNode fetches a single node by its ID.
// Returns nil, nil if not found.
func (s *PGStore) GetNode(ctx context.Context, id int64) (*graphnav.Node, error) {
	var n graphnav.Node
	err := s.db.QueryRow(ctx,
		`SELECT id, name FROM nodes WHERE id = $1`, id,
	).Scan(&n.ID, &n.Name)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, unavailable("get node", err)
	}

	return &n, nil
}

// GetNodeByName fetches the lowest-id node with the given name.
// Returns nil, nil if not found.
func (s *PGStore) GetNodeByName(ctx context.Context, name string) (*graphnav.Node, error) {
	var n graphnav.Node
	err := s.db.QueryRow(ctx,
		`SELECT id, name FROM nodes WHERE name = $1 ORDER BY id LIMIT 1`, name,
	).Scan(&n.ID, &n.Name)

	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, unavailable("get node by name", err)
	}

	return &n, nil
}

// DeleteNode deletes a node by its ID.
// Associated edges are cascade-deleted by the DB.
// No error if the node doesn't exist.
func (s *PGStore) DeleteNode(ctx context.Context, id int64) error {
	_, err := s.db.Exec(ctx, `DELETE FROM nodes WHERE id = $1`, id)
	if err != nil {
		return unavailable("delete node", err)
	}
	return nil
}

// ListNodes returns all nodes, ordered by id.
// Returns an empty slice (not nil) if none found.
func (s *PGStore) ListNodes(ctx context.Context) ([]graphnav.Node, error) {
	return listNodes(ctx, s.db)
}

func listNodes(ctx context.Context, q querier) ([]graphnav.Node, error) {
	rows, err := q.Query(ctx, `SELECT id, name FROM nodes ORDER BY id`)
	if err != nil {
		return nil, unavailable("list nodes", err)
	}
	defer rows.Close()

	nodes := []graphnav.Node{}
	for rows.Next() {
		var n graphnav.Node
		if err := rows.Scan(&n.ID, &n.Name); err != nil {
			return nil, fmt.Errorf("graphnav: scan node: %w", err)
		}
		nodes = append(nodes, n)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("rows nodes", err)
	}

	return nodes, nil
}
