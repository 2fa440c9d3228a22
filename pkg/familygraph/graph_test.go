package familygraph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/kinship/pkg/types"
)

// workedExample is the reference family: R has children A and B; B is
// married to B2; A has child C.
func workedExample() *types.Person {
	return &types.Person{
		Name: "R",
		Children: []*types.Person{
			{Name: "A", Children: []*types.Person{{Name: "C"}}},
			{Name: "B", Spouse: "B2"},
		},
	}
}

func TestBuildWorkedExample(t *testing.T) {
	g, err := Build(workedExample())
	require.NoError(t, err)

	assert.Equal(t, []string{"A", "B", "B2", "C", "R"}, g.Names())

	// Parent/child adjacency.
	assert.Contains(t, g.ChildrenOf("R"), "A")
	assert.Contains(t, g.ChildrenOf("R"), "B")
	assert.Contains(t, g.ChildrenOf("A"), "C")
	assert.Contains(t, g.ParentsOf("C"), "A")
	assert.Contains(t, g.ParentsOf("A"), "R")

	// Spouse symmetry and child-set initialization for the married-in
	// individual.
	s, ok := g.SpouseOf("B")
	require.True(t, ok)
	assert.Equal(t, "B2", s)
	s, ok = g.SpouseOf("B2")
	require.True(t, ok)
	assert.Equal(t, "B", s)
	assert.NotNil(t, g.ChildrenOf("B2"))
	assert.Empty(t, g.ChildrenOf("B2"))
}

func TestBuildSpouseCoParenting(t *testing.T) {
	// A married individual's children belong to both co-parents; this is
	// the 4-cycle the inference engine must tolerate.
	tree := &types.Person{
		Name:   "P",
		Spouse: "Q",
		Children: []*types.Person{
			{Name: "K"},
		},
	}
	g, err := Build(tree)
	require.NoError(t, err)

	assert.Contains(t, g.ChildrenOf("P"), "K")
	assert.Contains(t, g.ChildrenOf("Q"), "K")
	require.Len(t, g.ParentsOf("K"), 2)
	assert.Contains(t, g.ParentsOf("K"), "P")
	assert.Contains(t, g.ParentsOf("K"), "Q")
}

func TestBuildParentsChildrenAreInverse(t *testing.T) {
	g, err := Build(workedExample())
	require.NoError(t, err)

	for child, parents := range g.Parents {
		for parent := range parents {
			assert.Contains(t, g.Children[parent], child,
				"parents/children maps disagree on %s -> %s", parent, child)
		}
	}
	for parent, children := range g.Children {
		for child := range children {
			assert.Contains(t, g.Parents[child], parent,
				"children/parents maps disagree on %s -> %s", parent, child)
		}
	}
}

func TestBuildStructureErrors(t *testing.T) {
	tests := []struct {
		name string
		tree *types.Person
	}{
		{"nil root", nil},
		{"missing name", &types.Person{Name: "R", Children: []*types.Person{{}}}},
		{"self spouse", &types.Person{Name: "R", Spouse: "R"}},
		{
			"duplicate position",
			&types.Person{Name: "R", Children: []*types.Person{
				{Name: "X"},
				{Name: "X"},
			}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.tree)
			require.Error(t, err)
			var serr *types.StructureError
			assert.ErrorAs(t, err, &serr)
		})
	}
}

func TestBuildNoSelfLoops(t *testing.T) {
	g, err := Build(workedExample())
	require.NoError(t, err)

	for _, name := range g.Names() {
		assert.NotContains(t, g.ParentsOf(name), name)
		assert.NotContains(t, g.ChildrenOf(name), name)
		if s, ok := g.SpouseOf(name); ok {
			assert.NotEqual(t, name, s)
		}
	}
}
