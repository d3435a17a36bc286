package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	retrieveAnchor string
	retrieveHops   int
	retrieveJSON   bool
)

var retrieveCmd = &cobra.Command{
	Use:   "retrieve <question>",
	Short: "Retrieve graph context for a question",
	Long: `Retrieve extracts a bounded subgraph around the question's anchor
entity and renders it as a structured context block.

The anchor may be given explicitly with --anchor; otherwise candidate
entity names are mined from the question text.

Example:
  worldmind retrieve "How long is the Rogue River?" --graph kg.ttl
  worldmind retrieve "Does it flow into the Pacific?" --anchor "Rogue River" --hops 2`,
	Args: cobra.ExactArgs(1),
	RunE: runRetrieve,
}

func init() {
	rootCmd.AddCommand(retrieveCmd)

	retrieveCmd.Flags().StringVar(&retrieveAnchor, "anchor", "", "anchor entity name (default: mined from question)")
	retrieveCmd.Flags().IntVar(&retrieveHops, "hops", 0, "traversal depth, capped at 9 (default: configured max_hops)")
	retrieveCmd.Flags().BoolVar(&retrieveJSON, "json", false, "emit the full context as JSON instead of text")
}

func runRetrieve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}

	retriever := newRetriever(cfg, store.Graph())
	ctx := retriever.Retrieve(args[0], retrieveAnchor, retrieveHops)

	if retrieveJSON {
		data, err := json.MarshalIndent(ctx, "", "  ")
		if err != nil {
			return fmt.Errorf("encode context: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}
	fmt.Println(ctx.Text)
	return nil
}
