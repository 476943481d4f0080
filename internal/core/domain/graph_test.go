package domain_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/rebuild/internal/core/domain"
	"go.trai.ch/zerr"
)

func id(s string) domain.InternedString {
	return domain.NewInternedString(s)
}

func chunkStrings(chunks []domain.Chunk) [][]string {
	out := make([][]string, len(chunks))
	for i, c := range chunks {
		out[i] = domain.Strings(c)
	}
	return out
}

func TestGraph_AddNode_MergesChildren(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(id("a"), id("b"))
	g.AddNode(id("a"), id("b"), id("c"))
	g.AddNode(id("b"))
	g.AddNode(id("c"))

	assert.Equal(t, 3, g.Len())
	assert.Equal(t, []string{"b", "c"}, domain.Strings(g.Children(id("a"))))
}

func TestGraph_Children_IgnoresNodesOutsideGraph(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(id("a"), id("b"), id("outside"))
	g.AddNode(id("b"))

	assert.Equal(t, []string{"b"}, domain.Strings(g.Children(id("a"))))
}

func TestGraph_Sequence(t *testing.T) {
	tests := []struct {
		name  string
		edges map[string][]string
		want  [][]string
	}{
		{
			name:  "empty graph",
			edges: map[string][]string{},
			want:  [][]string{},
		},
		{
			name:  "single node",
			edges: map[string][]string{"a": nil},
			want:  [][]string{{"a"}},
		},
		{
			name:  "linear chain",
			edges: map[string][]string{"a": {"b"}, "b": {"c"}, "c": nil},
			want:  [][]string{{"c"}, {"b"}, {"a"}},
		},
		{
			name:  "diamond",
			edges: map[string][]string{"a": {"b", "c"}, "b": {"d"}, "c": {"d"}, "d": nil},
			want:  [][]string{{"d"}, {"b", "c"}, {"a"}},
		},
		{
			name:  "independent nodes share a chunk",
			edges: map[string][]string{"z": nil, "y": nil, "x": {"y"}},
			want:  [][]string{{"y", "z"}, {"x"}},
		},
		{
			name:  "edges to nodes outside the graph are dropped",
			edges: map[string][]string{"a": {"missing"}},
			want:  [][]string{{"a"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := domain.NewGraph()
			for node, children := range tt.edges {
				g.AddNode(id(node), domain.NewInternedStrings(children)...)
			}

			chunks, err := g.Sequence()
			require.NoError(t, err)
			assert.Equal(t, tt.want, chunkStrings(chunks))
		})
	}
}

func TestGraph_Sequence_Cycle(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(id("a"), id("b"))
	g.AddNode(id("b"), id("c"))
	g.AddNode(id("c"), id("a"))
	g.AddNode(id("leaf"))
	g.AddNode(id("top"), id("a"))

	chunks, err := g.Sequence()
	require.Error(t, err)
	assert.Nil(t, chunks)
	assert.True(t, errors.Is(err, domain.ErrCyclicGraph))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, "a -> b -> c -> a", meta["cycle"])
	assert.Equal(t, []string{"a", "b", "c", "top"}, meta["nodes"])
}

func TestGraph_Sequence_SelfEdge(t *testing.T) {
	g := domain.NewGraph()
	g.AddNode(id("a"), id("a"))

	_, err := g.Sequence()
	require.ErrorIs(t, err, domain.ErrCyclicGraph)
}

// TestGraph_Sequence_TopologicalValidity checks on random DAGs that every node
// appears exactly once and every dependency lands in an earlier chunk.
func TestGraph_Sequence_TopologicalValidity(t *testing.T) {
	for seed := range uint64(25) {
		t.Run(fmt.Sprintf("seed_%d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed+1))
			n := 2 + rng.IntN(40)
			g := domain.NewGraph()
			edges := make(map[int][]int)

			for i := range n {
				var children []domain.InternedString
				for j := i + 1; j < n; j++ {
					if rng.IntN(4) == 0 {
						children = append(children, id(fmt.Sprintf("n%02d", j)))
						edges[i] = append(edges[i], j)
					}
				}
				g.AddNode(id(fmt.Sprintf("n%02d", i)), children...)
			}

			chunks, err := g.Sequence()
			require.NoError(t, err)

			position := make(map[string]int)
			for ci, chunk := range chunks {
				require.NotEmpty(t, chunk)
				for _, node := range chunk {
					_, dup := position[node.String()]
					require.False(t, dup, "node %s appears twice", node)
					position[node.String()] = ci
				}
			}
			require.Len(t, position, n)

			for parent, children := range edges {
				for _, child := range children {
					p := position[fmt.Sprintf("n%02d", parent)]
					c := position[fmt.Sprintf("n%02d", child)]
					assert.Less(t, c, p, "dependency n%02d must precede n%02d", child, parent)
				}
			}
		})
	}
}

func TestNodeSet(t *testing.T) {
	s := domain.NewNodeSet(id("b"), id("a"))
	s.Add(id("a"))

	assert.True(t, s.Has(id("a")))
	assert.False(t, s.Has(id("c")))
	assert.Equal(t, []string{"a", "b"}, domain.Strings(s.Sorted()))
}
