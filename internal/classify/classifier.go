// Package classify assigns epistemic labels to claims: Entailed,
// Contradictory or Unknown relative to a graph and a set of context
// statements.
package classify

import (
	"strings"

	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// NegationMarker flags an explicit negation statement in context facts
const NegationMarker = "DOES NOT"

// Classify labels a claim against the graph and context facts. The
// evaluation order is load-bearing: negation detection runs before the
// membership check, so a claim with explicit counter-evidence in
// context is Contradictory even when the triple happens to be present
// in the graph.
func Classify(g graph.Reader, claim model.Claim, contextFacts []string) model.Label {
	if Negated(claim, contextFacts) {
		return model.LabelContradictory
	}
	if claim.Resolved() && g.Has(claim.Triple()) {
		return model.LabelEntailed
	}
	// Open-world default: absence of evidence is not evidence of falsehood
	return model.LabelUnknown
}

// Negated reports whether any context fact carries the negation marker
// and mentions both the claim's subject and object labels.
func Negated(claim model.Claim, contextFacts []string) bool {
	subjLabel := model.LocalName(claim.Subject)
	objLabel := model.LocalName(claim.Object)
	for _, fact := range contextFacts {
		if strings.Contains(fact, NegationMarker) &&
			strings.Contains(fact, subjLabel) &&
			strings.Contains(fact, objLabel) {
			return true
		}
	}
	return false
}

// Asserted reports whether any non-negated context fact mentions both
// the claim's subject and object labels. The context-only oracle uses
// this as its positive evidence test.
func Asserted(claim model.Claim, contextFacts []string) bool {
	subjLabel := model.LocalName(claim.Subject)
	objLabel := model.LocalName(claim.Object)
	for _, fact := range contextFacts {
		if strings.Contains(fact, subjLabel) &&
			strings.Contains(fact, objLabel) &&
			!strings.Contains(fact, NegationMarker) {
			return true
		}
	}
	return false
}
