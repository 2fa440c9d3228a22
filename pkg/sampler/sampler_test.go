package sampler

import (
	"bytes"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/kinship/pkg/types"
)

func sampleTable() types.Table {
	t := types.Table{}
	t.Add(types.Parent, "R", "A")
	t.Add(types.Parent, "R", "B")
	t.Add(types.Child, "A", "R")
	t.Add(types.Child, "B", "R")
	t.Add(types.Sibling, "A", "B")
	t.Add(types.Sibling, "B", "A")
	t.Normalize()
	return t
}

func TestSampleOnePerKind(t *testing.T) {
	table := sampleTable()
	rng := rand.New(rand.NewSource(1))

	cases := Sample(table, rng, 1)

	require.Len(t, cases, 3, "one case per non-empty kind")
	kinds := map[types.Kind]bool{}
	for _, c := range cases {
		assert.NotEmpty(t, c.ID)
		assert.True(t, table.Has(c.Kind, c.PersonA, c.PersonB), "sampled pair not in table")
		kinds[c.Kind] = true
	}
	assert.True(t, kinds[types.Parent])
	assert.True(t, kinds[types.Child])
	assert.True(t, kinds[types.Sibling])
}

func TestSampleCapsAtAvailablePairs(t *testing.T) {
	table := sampleTable()
	rng := rand.New(rand.NewSource(2))

	cases := Sample(table, rng, 10)
	assert.Len(t, cases, 6, "perKind above pair count returns every pair")
}

func TestQueriesExhaustiveAnswers(t *testing.T) {
	table := sampleTable()
	cases := []Case{
		{ID: "1", PersonA: "R", PersonB: "A", Kind: types.Parent},
		{ID: "2", PersonA: "R", PersonB: "A", Kind: types.Parent}, // duplicate query key
		{ID: "3", PersonA: "B", PersonB: "A", Kind: types.Sibling},
	}

	queries := Queries(table, cases)

	require.Len(t, queries, 2, "queries dedup on (person_b, kind)")
	assert.Equal(t, "A", queries[0].PersonB)
	assert.Equal(t, types.Parent, queries[0].Kind)
	assert.Equal(t, []string{"R"}, queries[0].PossibleA)
	assert.Equal(t, []string{"B"}, queries[1].PossibleA)
}

func TestCSVRoundTrip(t *testing.T) {
	cases := []Case{
		{ID: "x", PersonA: "R", PersonB: "A", Kind: types.Parent},
		{ID: "y", PersonA: "A", PersonB: "B", Kind: types.Sibling},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, cases))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "person_a,person_b,relationship_type", lines[0])

	got, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "R", got[0].PersonA)
	assert.Equal(t, types.Sibling, got[1].Kind)
	assert.NotEmpty(t, got[0].ID)
}

func TestReadCSVRejectsUnknownKind(t *testing.T) {
	in := strings.NewReader("person_a,person_b,relationship_type\nx,y,GODPARENT\n")
	_, err := ReadCSV(in)
	assert.Error(t, err)
}
