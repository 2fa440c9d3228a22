package kinship

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/spf13/cobra"

	"github.com/soundprediction/kinship/pkg/scorer"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate [result files...]",
	Short: "Score model answers against the ground truth",
	Long: `Score one or more result CSV files. Each file must carry a header with
at least relationship_type (the ground truth) and llm_prediction (the
raw model output); predictions are normalized before comparison so
quoted, fenced, or lightly broken JSON answers still count.

Accuracy is reported overall, per relationship kind, and per dataset
complexity (the G<depth> prefix of the file name).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runEvaluate,
}

var evaluateJSON bool

func init() {
	rootCmd.AddCommand(evaluateCmd)

	evaluateCmd.Flags().BoolVar(&evaluateJSON, "json", false, "Print the report as JSON")
}

func runEvaluate(cmd *cobra.Command, args []string) error {
	report := scorer.NewReport()

	for _, path := range args {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", path, err)
		}
		results, err := scorer.ReadResults(f)
		f.Close()
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		report.AddFile(filepath.Base(path), results)
	}

	if evaluateJSON {
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	printReport(report)
	return nil
}

func printReport(r *scorer.Report) {
	fmt.Printf("Overall: %d/%d (%.1f%%)\n", r.Correct, r.Total, r.Accuracy*100)

	fmt.Println("\nBy relationship kind:")
	printBuckets(r.ByKind)

	fmt.Println("\nBy complexity:")
	printBuckets(r.ByComplexity)
}

func printBuckets(buckets map[string]scorer.Bucket) {
	keys := make([]string, 0, len(buckets))
	for k := range buckets {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		b := buckets[k]
		fmt.Printf("  %-20s %d/%d (%.1f%%)\n", k, b.Correct, b.Total, b.Accuracy()*100)
	}
}
