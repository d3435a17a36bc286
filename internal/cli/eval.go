package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/worldmind-ai/worldmind/internal/cards"
	"github.com/worldmind-ai/worldmind/internal/eval"
	"github.com/worldmind-ai/worldmind/internal/model"
	"github.com/worldmind-ai/worldmind/internal/systems"
	"github.com/worldmind-ai/worldmind/internal/worker"
)

var (
	evalOut     string
	evalSystems []string
)

var evalCmd = &cobra.Command{
	Use:   "eval <cards.jsonl>",
	Short: "Evaluate prediction systems over a card file",
	Long: `Eval runs one or more prediction systems over every card and writes
per-card results as JSONL.

Systems: kg (context-facts oracle), graph_rag (graph oracle),
raw and rag (always-abstain baselines), llm (chat completion, needs
OPENAI_API_KEY).

Example:
  worldmind eval cards.jsonl --graph kg.ttl --systems kg,graph_rag
  worldmind eval cards.jsonl --graph kg.ttl --systems llm --out results.jsonl`,
	Args: cobra.ExactArgs(1),
	RunE: runEval,
}

func init() {
	rootCmd.AddCommand(evalCmd)

	evalCmd.Flags().StringVar(&evalOut, "out", "results.jsonl", "output results file")
	evalCmd.Flags().StringSliceVar(&evalSystems, "systems", []string{"kg", "graph_rag"}, "prediction systems to evaluate")
}

func runEval(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	cardList, err := cards.ReadFile(args[0])
	if err != nil {
		return err
	}
	if len(cardList) == 0 {
		return fmt.Errorf("no cards in %s", args[0])
	}

	deps := systems.Deps{
		Graph:     store.Graph(),
		Retriever: newRetriever(cfg, store.Graph()),
		LLM:       cfg.LLM,
	}
	var answerers []systems.Answerer
	for _, name := range evalSystems {
		system, err := systems.New(strings.TrimSpace(name), deps)
		if err != nil {
			return err
		}
		answerers = append(answerers, system)
	}

	limiter := worker.NewLimiter(cfg.RateLimit.RequestsPerSecond, cfg.RateLimit.BurstSize)
	runner := eval.NewRunner(cfg.Concurrency.Workers, limiter)

	results, err := runner.RunAll(answerers, cardList)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	if err := eval.WriteResults(evalOut, results); err != nil {
		return err
	}

	for _, summary := range eval.Summarize(results) {
		fmt.Printf("%-10s %d/%d passed", summary.System, summary.Passed, summary.Total)
		for _, label := range []model.Label{model.LabelEntailed, model.LabelContradictory, model.LabelUnknown} {
			if stats, ok := summary.Labels[label]; ok {
				fmt.Printf("  %s %d/%d", label, stats.Passed, stats.Total)
			}
		}
		fmt.Println()
	}
	fmt.Printf("Wrote %d results to %s\n", len(results), evalOut)
	return nil
}
