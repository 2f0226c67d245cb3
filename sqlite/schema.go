package sqlite

import "context"

var schemaQueries = []string{
	`CREATE TABLE IF NOT EXISTS nodes (
		id   INTEGER PRIMARY KEY,
		name TEXT NOT NULL
	);`,
	`CREATE TABLE IF NOT EXISTS edges (
		id             INTEGER PRIMARY KEY,
		source_node_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
		target_node_id INTEGER NOT NULL REFERENCES nodes(id) ON DELETE CASCADE
	);`,
	`CREATE INDEX IF NOT EXISTS idx_nodes_name ON nodes(name);`,
	`CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_node_id);`,
	`CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_node_id);`,
}

// CreateSchema creates the nodes and edges tables if they don't exist.
func (s *Store) CreateSchema(ctx context.Context) error {
	for _, q := range schemaQueries {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return unavailable("create schema", err)
		}
	}
	return nil
}

// DropSchema drops the edges and nodes tables.
func (s *Store) DropSchema(ctx context.Context) error {
	for _, q := range []string{`DROP TABLE IF EXISTS edges;`, `DROP TABLE IF EXISTS nodes;`} {
		if _, err := s.db.ExecContext(ctx, q); err != nil {
			return unavailable("drop schema", err)
		}
	}
	return nil
}
