package treestore

import (
	"fmt"
	"os"

	"github.com/parquet-go/parquet-go"

	"github.com/soundprediction/kinship/pkg/types"
)

// RelationRecord is one ground-truth pair flattened for columnar
// export. Downstream analysis reads these instead of re-deriving
// relations from the tree JSON.
type RelationRecord struct {
	TreeID  string `parquet:"tree_id"`
	Kind    string `parquet:"relationship_type"`
	PersonA string `parquet:"person_a"`
	PersonB string `parquet:"person_b"`
}

// WriteRelationsParquet writes a full relation table to a parquet file,
// kinds in canonical order, pairs in table order.
func WriteRelationsParquet(path, treeID string, table types.Table) error {
	var records []RelationRecord
	for _, kind := range types.Kinds {
		for _, p := range table[kind] {
			records = append(records, RelationRecord{
				TreeID:  treeID,
				Kind:    string(kind),
				PersonA: p.A,
				PersonB: p.B,
			})
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create parquet file: %w", err)
	}
	w := parquet.NewGenericWriter[RelationRecord](f)
	if _, err := w.Write(records); err != nil {
		f.Close()
		return fmt.Errorf("failed to write relation records: %w", err)
	}
	if err := w.Close(); err != nil {
		f.Close()
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return f.Close()
}

// ReadRelationsParquet reads records back from a relation export.
func ReadRelationsParquet(path string) ([]RelationRecord, error) {
	records, err := parquet.ReadFile[RelationRecord](path)
	if err != nil {
		return nil, fmt.Errorf("failed to read relation records: %w", err)
	}
	return records, nil
}
