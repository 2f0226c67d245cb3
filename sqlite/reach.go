package sqlite

import (
	"context"
	"fmt"
)

// reachableSQL mirrors the PostgreSQL query. Arguments: origin, depth
// ceiling, origin.
const reachableSQL = `
WITH RECURSIVE reachable_nodes (node_id, depth) AS (
    SELECT target_node_id, 1
    FROM edges
    WHERE source_node_id = ?

    UNION

    SELECT e.target_node_id, rn.depth + 1
    FROM edges e
    INNER JOIN reachable_nodes rn ON e.source_node_id = rn.node_id
    WHERE rn.depth < ?
)
SELECT DISTINCT node_id
FROM reachable_nodes
WHERE node_id <> ?
ORDER BY node_id
`

// ReachableIDs returns the ids reachable from originID in at most maxDepth
// hops, ascending, using a single recursive query.
func (s *Store) ReachableIDs(ctx context.Context, originID int64, maxDepth int) ([]int64, error) {
	rows, err := s.db.QueryContext(ctx, reachableSQL, originID, maxDepth, originID)
	if err != nil {
		return nil, unavailable("reachable query", err)
	}
	defer rows.Close()

	ids := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("graphnav: scan reachable id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, unavailable("rows reachable", err)
	}
	return ids, nil
}
