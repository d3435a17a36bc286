package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/worldmind-ai/worldmind/internal/audit"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the knowledge graph against its constraint shapes",
	Long: `Validate checks every typed entity in the graph against the
configured constraint shapes and lists all violations. A conformant
base graph is a precondition for constraint-mode auditing: on a
non-conformant graph every claim audit would fail.

Example:
  worldmind validate --graph kg.ttl --constraints shapes.yaml`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Graph.ConstraintsPath == "" {
		return fmt.Errorf("no constraint file configured (use --constraints)")
	}
	store, err := loadStore(cfg)
	if err != nil {
		return err
	}
	cs, err := audit.LoadConstraints(cfg.Graph.ConstraintsPath)
	if err != nil {
		return fmt.Errorf("load constraints: %w", err)
	}

	conforms, violations := cs.ValidateGraph(store.Graph())
	if conforms {
		fmt.Printf("Graph conforms to %d shapes\n", len(cs.Shapes))
		return nil
	}
	for _, v := range violations {
		fmt.Println(v.String())
	}
	return fmt.Errorf("%d constraint violations", len(violations))
}
