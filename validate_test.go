package graphnav

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		g := &Graph{
			Nodes: []Node{{Ref: "a", Name: "A"}, {Ref: "b", Name: strings.Repeat("é", 255)}},
			Edges: []Edge{{SourceRef: "a", TargetRef: "b"}, {SourceID: 1, TargetRef: "a"}},
		}
		assert.NoError(t, Validate(g))
	})

	t.Run("missing name", func(t *testing.T) {
		err := Validate(&Graph{Nodes: []Node{{Ref: "a"}}})
		assert.ErrorIs(t, err, ErrInvalidGraph)
	})

	t.Run("name too long", func(t *testing.T) {
		err := Validate(&Graph{Nodes: []Node{{Name: strings.Repeat("x", 256)}}})
		assert.ErrorIs(t, err, ErrInvalidGraph)
	})

	t.Run("duplicate ref", func(t *testing.T) {
		err := Validate(&Graph{Nodes: []Node{{Ref: "a", Name: "A"}, {Ref: "a", Name: "B"}}})
		assert.ErrorIs(t, err, ErrInvalidGraph)
	})

	t.Run("unknown ref", func(t *testing.T) {
		err := Validate(&Graph{
			Nodes: []Node{{Ref: "a", Name: "A"}},
			Edges: []Edge{{SourceRef: "a", TargetRef: "b"}},
		})
		assert.ErrorIs(t, err, ErrUnknownRef)
	})

	t.Run("edge without endpoint", func(t *testing.T) {
		err := Validate(&Graph{
			Nodes: []Node{{Ref: "a", Name: "A"}},
			Edges: []Edge{{SourceRef: "a"}},
		})
		assert.ErrorIs(t, err, ErrInvalidGraph)
	})
}

func TestResolveEdge(t *testing.T) {
	e := Edge{SourceRef: "a", TargetID: 9}
	require.NoError(t, ResolveEdge(&e, map[string]int64{"a": 4}))
	assert.Equal(t, int64(4), e.SourceID)
	assert.Equal(t, int64(9), e.TargetID)

	e = Edge{SourceRef: "x"}
	assert.ErrorIs(t, ResolveEdge(&e, nil), ErrUnknownRef)
}

func TestValidateEdge(t *testing.T) {
	assert.NoError(t, ValidateEdge(&Edge{SourceID: 1, TargetID: 1}))
	assert.ErrorIs(t, ValidateEdge(&Edge{SourceID: 1}), ErrInvalidGraph)
}
