package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/worldmind-ai/worldmind/internal/eval"
	"github.com/worldmind-ai/worldmind/internal/metrics"
)

var metricsOut string

var metricsCmd = &cobra.Command{
	Use:   "metrics <results.jsonl>",
	Short: "Compute epistemic metrics from evaluation results",
	Long: `Metrics aggregates results into a per-system confusion matrix over
answered/abstained versus the gold label, and derives abstention
quality metrics from it. Metrics with an empty denominator are
reported as N/A, never as zero.

Example:
  worldmind metrics results.jsonl
  worldmind metrics results.jsonl --out metrics.json`,
	Args: cobra.ExactArgs(1),
	RunE: runMetrics,
}

func init() {
	rootCmd.AddCommand(metricsCmd)
	metricsCmd.Flags().StringVar(&metricsOut, "out", "", "also write the full report as JSON")
}

func runMetrics(cmd *cobra.Command, args []string) error {
	results, err := eval.ReadResults(args[0])
	if err != nil {
		return err
	}
	if len(results) == 0 {
		return fmt.Errorf("no results in %s", args[0])
	}

	reports := metrics.Compute(results)
	metrics.WriteReport(os.Stdout, reports)

	if metricsOut != "" {
		if err := writeJSON(metricsOut, reports); err != nil {
			return err
		}
		fmt.Printf("Wrote metrics report to %s\n", metricsOut)
	}
	return nil
}
