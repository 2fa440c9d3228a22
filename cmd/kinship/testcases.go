package kinship

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	kinship "github.com/soundprediction/kinship"
	"github.com/soundprediction/kinship/pkg/config"
	"github.com/soundprediction/kinship/pkg/logger"
	"github.com/soundprediction/kinship/pkg/sampler"
	"github.com/soundprediction/kinship/pkg/treestore"
)

var testcasesCmd = &cobra.Command{
	Use:   "testcases",
	Short: "Sample test cases from stored trees",
	Long: `Derive the ground-truth relation table for every stored tree, sample
up to a fixed number of cases per relationship kind, and write the
cases out as CSV together with a JSON file of exhaustive queries
(every valid answer per sampled question).

With --parquet the full relation table of each tree is also written as
a Parquet file for offline analysis.`,
	RunE: runTestcases,
}

var (
	testcasesOut     string
	testcasesPerKind int
	testcasesSeed    int64
	testcasesParquet bool
)

func init() {
	rootCmd.AddCommand(testcasesCmd)

	testcasesCmd.Flags().StringVar(&testcasesOut, "out", "./testcases", "Output directory")
	testcasesCmd.Flags().IntVar(&testcasesPerKind, "per-kind", 8, "Max sampled cases per relationship kind")
	testcasesCmd.Flags().Int64Var(&testcasesSeed, "seed", 0, "Sampling seed (0 means time-seeded)")
	testcasesCmd.Flags().BoolVar(&testcasesParquet, "parquet", false, "Also write full relation tables as Parquet")
	testcasesCmd.Flags().String("store-backend", "", "Store backend (fs, badger)")
	testcasesCmd.Flags().String("store-path", "", "Store path")
}

func runTestcases(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if cmd.Flags().Changed("store-backend") {
		backend, _ := cmd.Flags().GetString("store-backend")
		cfg.Store.Backend = treestore.Backend(backend)
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	}

	log := logger.New(os.Stderr, cfg.Log)

	store, err := treestore.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	if err := os.MkdirAll(testcasesOut, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	seed := testcasesSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	ctx := context.Background()
	ids, err := store.ListTrees(ctx)
	if err != nil {
		return fmt.Errorf("failed to list trees: %w", err)
	}
	if len(ids) == 0 {
		return fmt.Errorf("store holds no trees; run generate first")
	}

	h := kinship.New(kinship.WithLogger(log))
	total := 0
	for _, id := range ids {
		tree, err := store.GetTree(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load tree %s: %w", id, err)
		}

		table, err := h.Relations(tree)
		if err != nil {
			return fmt.Errorf("failed to infer relations for %s: %w", id, err)
		}

		cases := sampler.Sample(table, rng, testcasesPerKind)
		queries := sampler.Queries(table, cases)

		if err := store.PutCases(ctx, id, cases); err != nil {
			return fmt.Errorf("failed to store cases for %s: %w", id, err)
		}
		if err := writeCaseFiles(id, cases, queries); err != nil {
			return err
		}
		if testcasesParquet {
			path := filepath.Join(testcasesOut, id+".parquet")
			if err := treestore.WriteRelationsParquet(path, id, table); err != nil {
				return fmt.Errorf("failed to write parquet for %s: %w", id, err)
			}
		}

		log.Info("test cases written", "id", id, "cases", len(cases), "queries", len(queries))
		total += len(cases)
	}

	fmt.Printf("Sampled %d test cases from %d trees into %s\n", total, len(ids), testcasesOut)
	return nil
}

func writeCaseFiles(id string, cases []sampler.Case, queries []sampler.Query) error {
	f, err := os.Create(filepath.Join(testcasesOut, id+".csv"))
	if err != nil {
		return fmt.Errorf("failed to create case file for %s: %w", id, err)
	}
	if err := sampler.WriteCSV(f, cases); err != nil {
		f.Close()
		return fmt.Errorf("failed to write cases for %s: %w", id, err)
	}
	if err := f.Close(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(queries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal queries for %s: %w", id, err)
	}
	return os.WriteFile(filepath.Join(testcasesOut, id+"_queries.json"), data, 0644)
}
