package systems

import (
	"context"

	"github.com/worldmind-ai/worldmind/internal/classify"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// ContextOracle answers from a card's own context facts, without
// consulting any graph. It is the deterministic upper bound for systems
// restricted to the provided context.
type ContextOracle struct{}

// NewContextOracle creates the context-facts oracle
func NewContextOracle() *ContextOracle { return &ContextOracle{} }

func (o *ContextOracle) Name() string { return "kg" }

// Answer applies negation-first reading of the context facts. Negation
// evidence wins over assertion evidence when both match.
func (o *ContextOracle) Answer(_ context.Context, card model.Card) (model.Verdict, error) {
	claim := card.Claim.Claim()
	if classify.Negated(claim, card.Facts) {
		return model.VerdictNo, nil
	}
	if classify.Asserted(claim, card.Facts) {
		return model.VerdictYes, nil
	}
	return model.VerdictUnknown, nil
}
