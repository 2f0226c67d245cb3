package graphnav

import "slices"

// Adjacency maps a node id to the targets of its outgoing edges, in the
// order the edges were supplied. Parallel edges are kept.
type Adjacency map[int64][]int64

// BuildAdjacency groups edges by source id, preserving edge order.
func BuildAdjacency(edges []Edge) Adjacency {
	adj := make(Adjacency)
	for _, e := range edges {
		adj[e.SourceID] = append(adj[e.SourceID], e.TargetID)
	}
	return adj
}

// Reachable returns every node reachable in one or more hops from origin,
// ascending. It is an iterative DFS; the visited set is the only thing that
// stops it on cycles, so the origin is seeded into it and never reported.
func (a Adjacency) Reachable(origin int64) []int64 {
	visited := map[int64]struct{}{origin: {}}
	ids := []int64{}

	stack := pushReversed(nil, a[origin])
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if _, ok := visited[id]; ok {
			continue
		}
		visited[id] = struct{}{}
		ids = append(ids, id)

		stack = pushReversed(stack, a[id])
	}

	slices.Sort(ids)
	return ids
}

// ReachableWithin returns the nodes reachable in 1..maxDepth hops from origin,
// ascending. It expands level by level and stops expanding once maxDepth is
// reached, which gives the same answer as the recursive reachability query:
// a node is included exactly when its shortest distance from origin is at
// most maxDepth. Direct successors are always included.
func (a Adjacency) ReachableWithin(origin int64, maxDepth int) []int64 {
	visited := map[int64]struct{}{origin: {}}
	ids := []int64{}

	frontier := []int64{origin}
	for depth := 1; len(frontier) > 0; depth++ {
		var next []int64
		for _, id := range frontier {
			for _, target := range a[id] {
				if _, ok := visited[target]; ok {
					continue
				}
				visited[target] = struct{}{}
				ids = append(ids, target)
				next = append(next, target)
			}
		}
		if depth >= maxDepth {
			break
		}
		frontier = next
	}

	slices.Sort(ids)
	return ids
}

// pushReversed pushes ids so the first one is popped first, which keeps
// discovery order the same as a recursive walk.
func pushReversed(stack, ids []int64) []int64 {
	for i := len(ids) - 1; i >= 0; i-- {
		stack = append(stack, ids[i])
	}
	return stack
}
