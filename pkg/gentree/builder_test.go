package gentree

import (
	"encoding/json"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/kinship/pkg/types"
)

func TestGenerateMeetsTargets(t *testing.T) {
	cases := []Params{
		{Generations: 2, Nodes: 2},
		{Generations: 3, Nodes: 9},
		{Generations: 4, Nodes: 12},
		{Generations: 5, Nodes: 25},
		{Generations: 6, Nodes: 30},
		{Generations: 7, Nodes: 21},
	}

	for _, params := range cases {
		for seed := int64(0); seed < 5; seed++ {
			rng := rand.New(rand.NewSource(seed))
			res, err := Generate(params, nil, rng)
			require.NoError(t, err, "G=%d N=%d seed=%d", params.Generations, params.Nodes, seed)
			require.True(t, res.Validated)

			assert.Equal(t, params.Generations, res.Tree.MaxDepth())
			assert.Equal(t, params.Nodes, res.Tree.Count())
			assert.Equal(t, res.Tree.MaxDepth(), res.Stats.Depth)
			assert.Equal(t, res.Tree.Count(), res.Stats.Nodes)
		}
	}
}

func TestGenerateBranchAsymmetry(t *testing.T) {
	// N >= 2D-2 leaves budget for a second major branch, so asymmetry
	// must hold strictly: one root branch reaches D, another stops at
	// D-1 or D-2.
	params := Params{Generations: 5, Nodes: 20}
	for seed := int64(0); seed < 10; seed++ {
		rng := rand.New(rand.NewSource(seed))
		res, err := Generate(params, nil, rng)
		require.NoError(t, err)
		require.True(t, res.Stats.Asymmetric, "seed %d", seed)

		var reached, short bool
		for _, c := range res.Tree.Children {
			d := 1 + c.MaxDepth()
			switch {
			case d == params.Generations:
				if reached {
					continue
				}
				reached = true
			case params.Generations-d >= 1 && params.Generations-d <= 2:
				short = true
			}
		}
		assert.True(t, reached, "seed %d: no branch reaches target depth", seed)
		assert.True(t, short, "seed %d: no branch terminates early", seed)
	}
}

func TestGenerateRejectsInfeasibleParams(t *testing.T) {
	tests := []struct {
		name   string
		params Params
	}{
		{"nodes below depth", Params{Generations: 5, Nodes: 4}},
		{"depth below two", Params{Generations: 1, Nodes: 10}},
		{"negative retries", Params{Generations: 3, Nodes: 9, Retries: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := Generate(tt.params, nil, rand.New(rand.NewSource(1)))
			assert.ErrorIs(t, err, types.ErrInfeasible)
			assert.Nil(t, res)
		})
	}
}

func TestGenerateDeterministicPerSeed(t *testing.T) {
	params := Params{Generations: 4, Nodes: 16}

	render := func(seed int64) string {
		rng := rand.New(rand.NewSource(seed))
		res, err := Generate(params, nil, rng)
		require.NoError(t, err)
		data, err := json.Marshal(res.Tree)
		require.NoError(t, err)
		return string(data)
	}

	assert.Equal(t, render(42), render(42), "same seed must yield the same tree")
	assert.NotEqual(t, render(42), render(43), "different seeds should diverge")
}

func TestGenerateTightBudgetRelaxesAsymmetry(t *testing.T) {
	// N < 2D-2: there is no room for a second major branch, so the run
	// passes on depth and count alone.
	params := Params{Generations: 6, Nodes: 7}
	rng := rand.New(rand.NewSource(3))
	res, err := Generate(params, nil, rng)
	require.NoError(t, err)
	require.True(t, res.Validated)
	assert.Equal(t, 6, res.Stats.Depth)
	assert.Equal(t, 7, res.Stats.Nodes)
}

func TestGenerateUniqueNamesWithinPool(t *testing.T) {
	params := Params{Generations: 4, Nodes: 20}
	rng := rand.New(rand.NewSource(7))
	res, err := Generate(params, nil, rng)
	require.NoError(t, err)

	seen := map[string]bool{}
	stack := []*types.Person{res.Tree}
	for len(stack) > 0 {
		p := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		require.NotEmpty(t, p.Name)
		assert.False(t, seen[p.Name], "duplicate name %q with ample pool", p.Name)
		seen[p.Name] = true
		if p.Spouse != "" {
			assert.False(t, seen[p.Spouse], "spouse %q collides with an individual", p.Spouse)
			seen[p.Spouse] = true
		}
		stack = append(stack, p.Children...)
	}
}

func TestVerifyRejectsSymmetricTree(t *testing.T) {
	// Two root branches both reaching the maximum depth: depth and count
	// match but no branch terminates early, so the attempt must be
	// retried.
	tree := &types.Person{
		Name: "r",
		Children: []*types.Person{
			{Name: "a", Children: []*types.Person{{Name: "c"}}},
			{Name: "b", Children: []*types.Person{{Name: "d"}}},
		},
	}
	stats, ok := verify(tree, Params{Generations: 3, Nodes: 5})
	assert.False(t, ok)
	assert.False(t, stats.Asymmetric)
	assert.Equal(t, 3, stats.Depth)
	assert.Equal(t, 5, stats.Nodes)
}

func TestVerifyAcceptsAsymmetricTree(t *testing.T) {
	tree := &types.Person{
		Name: "r",
		Children: []*types.Person{
			{Name: "a", Children: []*types.Person{{Name: "c", Children: []*types.Person{{Name: "e"}}}}},
			{Name: "b", Children: []*types.Person{{Name: "d"}}},
		},
	}
	stats, ok := verify(tree, Params{Generations: 4, Nodes: 6})
	assert.True(t, ok)
	assert.True(t, stats.Asymmetric)
}
