package graphnav

import (
	"fmt"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks a graph before it is persisted: every node has a name of at
// most 255 characters, refs are unique, and every edge endpoint is either an
// id or a known ref.
func Validate(g *Graph) error {
	if err := validate.Struct(g); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}

	refs := make(map[string]struct{}, len(g.Nodes))
	for _, n := range g.Nodes {
		if n.Ref == "" {
			continue
		}
		if _, dup := refs[n.Ref]; dup {
			return fmt.Errorf("%w: duplicate ref %q", ErrInvalidGraph, n.Ref)
		}
		refs[n.Ref] = struct{}{}
	}

	for _, e := range g.Edges {
		for _, ref := range [...]string{e.SourceRef, e.TargetRef} {
			if ref == "" {
				continue
			}
			if _, ok := refs[ref]; !ok {
				return fmt.Errorf("%w %q", ErrUnknownRef, ref)
			}
		}
	}
	return nil
}

// ValidateNode checks a single node before insertion.
func ValidateNode(n *Node) error {
	if err := validate.Struct(n); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}
	return nil
}

// ValidateEdge checks a single edge before insertion. Refs are not accepted here.
func ValidateEdge(e *Edge) error {
	if e.SourceID <= 0 || e.TargetID <= 0 {
		return fmt.Errorf("%w: edge needs source and target ids", ErrInvalidGraph)
	}
	return nil
}

// ResolveEdge fills SourceID / TargetID from refs, using the ids assigned
// to nodes during insertion.
func ResolveEdge(e *Edge, ids map[string]int64) error {
	if e.SourceRef != "" {
		id, ok := ids[e.SourceRef]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownRef, e.SourceRef)
		}
		e.SourceID = id
	}
	if e.TargetRef != "" {
		id, ok := ids[e.TargetRef]
		if !ok {
			return fmt.Errorf("%w %q", ErrUnknownRef, e.TargetRef)
		}
		e.TargetID = id
	}
	return nil
}

// ClearRefs removes the transient ref fields; they are not persisted.
func ClearRefs(g *Graph) {
	for i := range g.Nodes {
		g.Nodes[i].Ref = ""
	}
	for i := range g.Edges {
		g.Edges[i].SourceRef = ""
		g.Edges[i].TargetRef = ""
	}
}
