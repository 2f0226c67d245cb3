package graphnav

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

const (
	renderTitle = "Graph Visualization"

	// Markers for a node met again during one render.
	markerCycle = " [CYCLE]" // the node is an ancestor on the current path
	markerSeen  = " [SEEN]"  // the node was already drawn somewhere else

	connMid   = "├─ "
	connLast  = "└─ "
	indentMid = "│  "
	indentEnd = "   "

	// rootIndent offsets the children of a root from its label.
	rootIndent = "  "
)

var renderRule = strings.Repeat("=", 60)

// Render draws the graph as indented ASCII trees, one per root.
//
// Roots are nodes with outgoing edges and no incoming edge, drawn in
// ascending id order. A node is expanded only the first time it is reached
// during the whole render; later visits print it with a marker. Nodes with no
// edges at all are listed on a separate line, and nodes that sit on cycles
// with no root leading into them are listed as unrooted. The trailer counts
// every node and edge passed in.
func Render(nodes []Node, edges []Edge) string {
	adj := BuildAdjacency(edges)

	targets := make(map[int64]struct{}, len(edges))
	for _, e := range edges {
		targets[e.TargetID] = struct{}{}
	}

	ids := make([]int64, 0, len(nodes))
	for _, n := range nodes {
		ids = append(ids, n.ID)
	}
	slices.Sort(ids)

	var roots, isolated []int64
	for _, id := range ids {
		_, incoming := targets[id]
		outgoing := len(adj[id]) > 0
		switch {
		case !incoming && !outgoing:
			isolated = append(isolated, id)
		case !incoming:
			roots = append(roots, id)
		}
	}

	var b strings.Builder
	b.WriteString(renderTitle + "\n")
	b.WriteString(renderRule + "\n\n")

	tr := newTreeRender(adj, &b)
	for _, root := range roots {
		tr.draw(root)
		b.WriteString("\n")
	}

	var unrooted []int64
	for _, id := range ids {
		if _, drawn := tr.visited[id]; drawn {
			continue
		}
		if _, incoming := targets[id]; incoming {
			unrooted = append(unrooted, id)
		}
	}
	if len(unrooted) > 0 {
		b.WriteString("Unrooted nodes: " + joinIDs(unrooted) + "\n\n")
	}
	if len(isolated) > 0 {
		b.WriteString("Isolated nodes: " + joinIDs(isolated) + "\n\n")
	}

	b.WriteString(renderRule + "\n")
	fmt.Fprintf(&b, "Total nodes: %d | Total edges: %d\n", len(nodes), len(edges))
	return b.String()
}

// treeRender is the state of one Render call. visited spans every tree drawn
// in the call, onPath only the branch currently being drawn.
type treeRender struct {
	adj     Adjacency
	out     *strings.Builder
	visited map[int64]struct{}
	onPath  map[int64]struct{}
}

// treeFrame is a pending unit of work on the draw stack.
type treeFrame struct {
	id     int64
	lead   string // written before the label: parent indent plus connector
	indent string // indent for this node's children
	leave  bool   // pop id off the current path
}

func newTreeRender(adj Adjacency, out *strings.Builder) *treeRender {
	return &treeRender{
		adj:     adj,
		out:     out,
		visited: make(map[int64]struct{}),
		onPath:  make(map[int64]struct{}),
	}
}

// draw writes the tree under root in pre-order.
func (r *treeRender) draw(root int64) {
	stack := []treeFrame{{id: root, indent: rootIndent}}
	for len(stack) > 0 {
		f := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if f.leave {
			delete(r.onPath, f.id)
			continue
		}

		label := strconv.FormatInt(f.id, 10)
		if _, ok := r.onPath[f.id]; ok {
			r.out.WriteString(f.lead + label + markerCycle + "\n")
			continue
		}
		if _, ok := r.visited[f.id]; ok {
			r.out.WriteString(f.lead + label + markerSeen + "\n")
			continue
		}

		r.visited[f.id] = struct{}{}
		r.onPath[f.id] = struct{}{}
		r.out.WriteString(f.lead + label + "\n")

		stack = append(stack, treeFrame{id: f.id, leave: true})
		children := r.adj[f.id]
		for i := len(children) - 1; i >= 0; i-- {
			conn, indent := connMid, indentMid
			if i == len(children)-1 {
				conn, indent = connLast, indentEnd
			}
			stack = append(stack, treeFrame{
				id:     children[i],
				lead:   f.indent + conn,
				indent: f.indent + indent,
			})
		}
	}
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ", ")
}
