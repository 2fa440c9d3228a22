package kinship

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	kinship "github.com/soundprediction/kinship"
	"github.com/soundprediction/kinship/pkg/config"
	"github.com/soundprediction/kinship/pkg/familygraph"
	"github.com/soundprediction/kinship/pkg/graphdb"
	"github.com/soundprediction/kinship/pkg/logger"
	"github.com/soundprediction/kinship/pkg/treestore"
)

var exportCmd = &cobra.Command{
	Use:   "export [tree IDs...]",
	Short: "Export stored trees to Neo4j",
	Long: `Export trees and their derived relation tables to a Neo4j instance.
Each tree becomes a set of Person nodes tagged with the tree ID, and
every inferred relation becomes a typed edge between them. Exporting a
tree replaces any previous export of the same ID.

With no arguments every stored tree is exported.`,
	RunE: runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().String("uri", "", "Neo4j URI")
	exportCmd.Flags().String("username", "", "Neo4j username")
	exportCmd.Flags().String("password", "", "Neo4j password")
	exportCmd.Flags().String("database", "", "Neo4j database")
	exportCmd.Flags().String("store-backend", "", "Store backend (fs, badger)")
	exportCmd.Flags().String("store-path", "", "Store path")
}

func runExport(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	overrideExportFlags(cmd, cfg)

	log := logger.New(os.Stderr, cfg.Log)

	store, err := treestore.New(cfg.Store)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer store.Close()

	ctx := context.Background()
	ids := args
	if len(ids) == 0 {
		ids, err = store.ListTrees(ctx)
		if err != nil {
			return fmt.Errorf("failed to list trees: %w", err)
		}
	}
	if len(ids) == 0 {
		return fmt.Errorf("store holds no trees; run generate first")
	}

	exporter, err := graphdb.NewExporter(cfg.Neo4j)
	if err != nil {
		return fmt.Errorf("failed to connect to neo4j: %w", err)
	}
	defer exporter.Close(ctx)

	h := kinship.New(kinship.WithLogger(log))
	for _, id := range ids {
		tree, err := store.GetTree(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to load tree %s: %w", id, err)
		}
		g, err := familygraph.Build(tree)
		if err != nil {
			return fmt.Errorf("failed to build graph for %s: %w", id, err)
		}
		table, err := h.Relations(tree)
		if err != nil {
			return fmt.Errorf("failed to infer relations for %s: %w", id, err)
		}
		if err := exporter.ExportTree(ctx, id, g, table); err != nil {
			return fmt.Errorf("failed to export %s: %w", id, err)
		}
		log.Info("tree exported", "id", id, "people", len(g.Names()), "relations", table.Total())
	}

	fmt.Printf("Exported %d trees to %s\n", len(ids), cfg.Neo4j.URI)
	return nil
}

func overrideExportFlags(cmd *cobra.Command, cfg *config.Config) {
	if cmd.Flags().Changed("uri") {
		cfg.Neo4j.URI, _ = cmd.Flags().GetString("uri")
	}
	if cmd.Flags().Changed("username") {
		cfg.Neo4j.Username, _ = cmd.Flags().GetString("username")
	}
	if cmd.Flags().Changed("password") {
		cfg.Neo4j.Password, _ = cmd.Flags().GetString("password")
	}
	if cmd.Flags().Changed("database") {
		cfg.Neo4j.Database, _ = cmd.Flags().GetString("database")
	}
	if cmd.Flags().Changed("store-backend") {
		backend, _ := cmd.Flags().GetString("store-backend")
		cfg.Store.Backend = treestore.Backend(backend)
	}
	if cmd.Flags().Changed("store-path") {
		cfg.Store.Path, _ = cmd.Flags().GetString("store-path")
	}
}
