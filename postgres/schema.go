package postgres

import "context"

const schemaSQL = `
CREATE TABLE IF NOT EXISTS nodes (
    id   BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL
);

CREATE TABLE IF NOT EXISTS edges (
    id             BIGSERIAL PRIMARY KEY,
    source_node_id BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE,
    target_node_id BIGINT NOT NULL REFERENCES nodes(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_nodes_name   ON nodes(name);
CREATE INDEX IF NOT EXISTS idx_edges_source ON edges(source_node_id);
CREATE INDEX IF NOT EXISTS idx_edges_target ON edges(target_node_id);
`

// CreateSchema creates the nodes and edges tables if they don't exist.
func (s *PGStore) CreateSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return unavailable("create schema", err)
	}
	return nil
}

// DropSchema drops the edges and nodes tables.
func (s *PGStore) DropSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, `DROP TABLE IF EXISTS edges, nodes CASCADE;`); err != nil {
		return unavailable("drop schema", err)
	}
	return nil
}
