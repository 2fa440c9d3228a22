package treestore

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/soundprediction/kinship/pkg/sampler"
	"github.com/soundprediction/kinship/pkg/types"
)

func testTree() *types.Person {
	return &types.Person{
		Name: "R",
		Children: []*types.Person{
			{Name: "A", Children: []*types.Person{{Name: "C"}}},
			{Name: "B", Spouse: "B2"},
		},
	}
}

func testCases() []sampler.Case {
	return []sampler.Case{
		{ID: "1", PersonA: "R", PersonB: "A", Kind: types.Parent},
		{ID: "2", PersonA: "A", PersonB: "B", Kind: types.Sibling},
	}
}

// exerciseStore runs the shared contract against any backend.
func exerciseStore(t *testing.T, store Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, store.PutTree(ctx, "G3_N4_1", testTree()))
	require.NoError(t, store.PutTree(ctx, "G3_N4_2", testTree()))

	tree, err := store.GetTree(ctx, "G3_N4_1")
	require.NoError(t, err)
	assert.Equal(t, "R", tree.Name)
	assert.Len(t, tree.Children, 2)
	assert.Equal(t, 4, tree.Count())

	ids, err := store.ListTrees(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"G3_N4_1", "G3_N4_2"}, ids)

	require.NoError(t, store.PutCases(ctx, "G3_N4_1", testCases()))
	cases, err := store.GetCases(ctx, "G3_N4_1")
	require.NoError(t, err)
	require.Len(t, cases, 2)
	assert.Equal(t, types.Sibling, cases[1].Kind)

	_, err = store.GetTree(ctx, "missing")
	assert.Error(t, err)

	badTree := &types.Person{Name: "R", Children: []*types.Person{{}}}
	assert.Error(t, store.PutTree(ctx, "bad", badTree))
}

func TestFSStore(t *testing.T) {
	store, err := New(Config{Backend: BackendFS, Path: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestBadgerStoreInMemory(t *testing.T) {
	store, err := New(Config{Backend: BackendBadger})
	require.NoError(t, err)
	defer store.Close()
	exerciseStore(t, store)
}

func TestNewDefaultsToFS(t *testing.T) {
	store, err := New(Config{Path: t.TempDir()})
	require.NoError(t, err)
	defer store.Close()
	_, ok := store.(*fsStore)
	assert.True(t, ok)
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	_, err := New(Config{Backend: "postgres"})
	assert.Error(t, err)

	_, err = New(Config{Backend: BackendFS})
	assert.Error(t, err, "fs backend requires a path")
}

func TestRelationsParquetRoundTrip(t *testing.T) {
	table := types.Table{}
	table.Add(types.Parent, "R", "A")
	table.Add(types.Sibling, "A", "B")
	table.Add(types.Sibling, "B", "A")
	table.Normalize()

	path := filepath.Join(t.TempDir(), "relations.parquet")
	require.NoError(t, WriteRelationsParquet(path, "G3_N4_1", table))

	records, err := ReadRelationsParquet(path)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "G3_N4_1", records[0].TreeID)
	assert.Equal(t, string(types.Parent), records[0].Kind)
	assert.Equal(t, "R", records[0].PersonA)
}
