package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/meikuraledutech/graphnav"
)

// AddNode inserts a single node and returns its id.
func (s *Store) AddNode(ctx context.Context, node *graphnav.Node) (int64, error) {
	if err := graphnav.ValidateNode(node); err != nil {
		return 0, err
	}

	res, err := s.db.ExecContext(ctx, `INSERT INTO nodes (name) VALUES (?)`, node.Name)
	if err != nil {
		return 0, unavailable("insert node", err)
	}
	if node.ID, err = res.LastInsertId(); err != nil {
		return 0, unavailable("node id", err)
	}
	return node.ID, nil
}

// GetNode returns nil, nil if no node has the id.
func (s *Store) GetNode(ctx context.Context, id int64) (*graphnav.Node, error) {
	return s.getNode(ctx, `SELECT id, name FROM nodes WHERE id = ?`, id)
}

// GetNodeByName returns the lowest-id node with the name, or nil, nil.
func (s *Store) GetNodeByName(ctx context.Context, name string) (*graphnav.Node, error) {
	return s.getNode(ctx, `SELECT id, name FROM nodes WHERE name = ? ORDER BY id LIMIT 1`, name)
}

func (s *Store) getNode(ctx context.Context, query string, arg any) (*graphnav.Node, error) {
	var n graphnav.Node
	err := s.db.QueryRowContext(ctx, query, arg).Scan(&n.ID, &n.Name)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, unavailable("get node", err)
	}
	return &n, nil
}

// DeleteNode deletes a node and, through the foreign keys, its edges.
// No error if the node doesn't exist.
func (s *Store) DeleteNode(ctx context.Context, id int64) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM nodes WHERE id = ?`, id); err != nil {
		return unavailable("delete node", err)
	}
	return nil
}

// ListNodes returns all nodes ordered by id; an empty slice if none.
func (s *Store) ListNodes(ctx context.Context) ([]graphnav.Node, error) {
	return listNodes(ctx, s.db)
}

func listNodes(ctx context.Context, q queryer) ([]graphnav.Node, error) {
	rows, err := q.QueryContext(ctx, `SELECT id, name FROM nodes ORDER BY id`)
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
