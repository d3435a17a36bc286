package systems

import (
	"context"

	"github.com/worldmind-ai/worldmind/internal/classify"
	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// GraphOracle classifies each card's claim against the full knowledge
// graph plus the card's context facts. With well-formed cards its
// verdict equals the gold verdict by construction.
type GraphOracle struct {
	graph graph.Reader
}

// NewGraphOracle creates the graph-backed oracle
func NewGraphOracle(g graph.Reader) *GraphOracle {
	return &GraphOracle{graph: g}
}

func (o *GraphOracle) Name() string { return "graph_rag" }

func (o *GraphOracle) Answer(_ context.Context, card model.Card) (model.Verdict, error) {
	label := classify.Classify(o.graph, card.Claim.Claim(), card.Facts)
	return label.GoldVerdict(), nil
}
