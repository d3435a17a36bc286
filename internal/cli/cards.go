package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldmind-ai/worldmind/internal/cards"
)

var (
	cardsOut       string
	cardsPredicate string
	cardsPredLabel string
	cardsSubjHint  string
	cardsPerType   int
	cardsSeed      int64
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "Generate epistemic test cards from the knowledge graph",
	Long: `Cards generates test cases over one predicate: entailed claims that
are in the graph, contradictory claims with explicit negation facts,
unknown claims absent from the graph, and cross-paired distractors.

Each card's gold label is fixed at generation time. The same graph,
predicate and seed always produce the same card file.

Example:
  worldmind cards --graph kg.ttl --predicate hasTributary --out cards.jsonl
  worldmind cards --graph kg.ttl --predicate flowsInto --per-type 100 --seed 7`,
	RunE: runCards,
}

func init() {
	rootCmd.AddCommand(cardsCmd)

	cardsCmd.Flags().StringVar(&cardsOut, "out", "cards.jsonl", "output card file")
	cardsCmd.Flags().StringVar(&cardsPredicate, "predicate", "hasTributary", "predicate local name to generate over")
	cardsCmd.Flags().StringVar(&cardsPredLabel, "pred-label", "", "human-readable predicate label (default: local name)")
	cardsCmd.Flags().StringVar(&cardsSubjHint, "subject-hint", "", "substring filter on subject IRIs")
	cardsCmd.Flags().IntVar(&cardsPerType, "per-type", 200, "cards per label block")
	cardsCmd.Flags().Int64Var(&cardsSeed, "seed", 42, "random seed")
}

func runCards(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	opts := cards.Options{
		Predicate:  cfg.Graph.Namespace + cardsPredicate,
		PredLabel:  cardsPredLabel,
		SubjHint:   cardsSubjHint,
		NumPerType: cardsPerType,
		Seed:       cardsSeed,
	}
	generated, err := cards.Generate(store.Graph(), opts)
	if err != nil {
		return err
	}
	if err := cards.WriteFile(cardsOut, generated); err != nil {
		return err
	}
	fmt.Printf("Wrote %d cards to %s\n", len(generated), cardsOut)
	return nil
}
