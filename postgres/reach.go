package postgres

import (
	"context"
	"fmt"
)

// reachableSQL walks outgoing edges from $1. The base case is the direct
// successors at depth 1; the recursive case adds successors of discovered
// rows while depth < $2. UNION collapses duplicate (node_id, depth) rows, so
// cycles stop at the depth ceiling at the latest.
const reachableSQL = `
WITH RECURSIVE reachable_nodes (node_id, depth) AS (
    SELECT target_node_id, 1
    FROM edges
    WHERE source_node_id = $1

    UNION

    SELECT e.target_node_id, rn.depth + 1
    FROM edges e
    INNER JOIN reachable_nodes rn ON e.source_node_id = rn.node_id
    WHERE rn.depth < $2
)
SELECT DISTINCT node_id
FROM reachable_nodes
WHERE node_id <> $1
ORDER BY node_id
`

// ReachableIDs returns the ids reachable from originID in at most maxDepth
// hops, ascending, using a single recursive query.
func (s *PGStore) ReachableIDs(ctx context.Context, originID int64, maxDepth int) ([]int64, error) {
	rows, err := s.db.Query(ctx, reachableSQL, originID, int32(maxDepth))
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
