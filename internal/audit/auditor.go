// Package audit implements the licensing oracle: the consistency
// auditor that decides whether a claim may be asserted, and the
// abstention policy that turns that license into an action.
package audit

import (
	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// Auditor decides whether a candidate triple is licensed. With no
// constraint set it uses direct-membership semantics: the claim is
// licensed iff it is present in the graph. With a constraint set it
// uses conformance semantics: the claim is licensed iff the graph
// stays conformant when the triple is hypothetically added.
type Auditor struct {
	graph       *graph.Graph
	constraints *ConstraintSet
}

// NewAuditor creates a direct-membership auditor
func NewAuditor(g *graph.Graph) *Auditor {
	return &Auditor{graph: g}
}

// NewConstraintAuditor creates a constraint-conformance auditor
func NewConstraintAuditor(g *graph.Graph, cs *ConstraintSet) *Auditor {
	return &Auditor{graph: g, constraints: cs}
}

// Audit returns the license for a claim. It always returns a boolean:
// a malformed claim (unresolved component) is not licensed, never an
// error, because the policy downstream must always receive a decision.
// Each conformance check runs on a private overlay, so concurrent
// audits never observe each other's hypothetical additions.
func (a *Auditor) Audit(claim model.Claim) bool {
	if !claim.Resolved() {
		return false
	}
	if a.constraints == nil {
		return a.graph.Has(claim.Triple())
	}
	o := graph.NewOverlay(a.graph)
	o.Add(claim.Triple())
	return a.constraints.ConformsTouched(o, claim.Subject, claim.Object)
}
