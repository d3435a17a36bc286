package classify

import (
	"testing"

	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

const ns = "http://worldmind.ai/rivers-v4#"

func testGraph() *graph.Graph {
	g := graph.NewGraph()
	g.Add(model.NewTriple(ns+"Rogue_River", ns+"hasTributary", ns+"Applegate_River"))
	return g
}

func claim() model.Claim {
	return model.Claim{
		Subject:   ns + "Rogue_River",
		Predicate: ns + "hasTributary",
		Object:    ns + "Applegate_River",
	}
}

func TestClassifyEntailed(t *testing.T) {
	facts := []string{"Rogue River hasTributary: Applegate River"}
	if got := Classify(testGraph(), claim(), facts); got != model.LabelEntailed {
		t.Errorf("label = %s, want E", got)
	}
}

func TestClassifyUnknown(t *testing.T) {
	c := claim()
	c.Object = ns + "Bear_Creek"
	if got := Classify(testGraph(), c, nil); got != model.LabelUnknown {
		t.Errorf("label = %s, want U", got)
	}
}

func TestClassifyContradictory(t *testing.T) {
	c := claim()
	c.Object = ns + "Bear_Creek"
	facts := []string{"Rogue River DOES NOT have hasTributary: Bear Creek (not in database)"}
	if got := Classify(testGraph(), c, facts); got != model.LabelContradictory {
		t.Errorf("label = %s, want C", got)
	}
}

// Negation evidence must win even when the triple is present in the
// graph: the check order is part of the contract.
func TestClassifyNegationPrecedesMembership(t *testing.T) {
	facts := []string{"Rogue River DOES NOT have hasTributary: Applegate River (not in database)"}
	if got := Classify(testGraph(), claim(), facts); got != model.LabelContradictory {
		t.Errorf("label = %s, want C when negated despite membership", got)
	}
}

func TestClassifyUnresolvedClaim(t *testing.T) {
	c := model.Claim{Subject: ns + "Rogue_River"}
	if got := Classify(testGraph(), c, nil); got != model.LabelUnknown {
		t.Errorf("label = %s, want U for unresolved claim", got)
	}
}

func TestNegatedRequiresBothLabels(t *testing.T) {
	c := claim()
	// Marker present but object label missing: no negation
	facts := []string{"Rogue River DOES NOT have hasTributary: Bear Creek"}
	if Negated(c, facts) {
		t.Error("negation must mention both subject and object")
	}
}

func TestAsserted(t *testing.T) {
	c := claim()
	if !Asserted(c, []string{"Rogue River hasTributary: Applegate River"}) {
		t.Error("expected assertion match")
	}
	if Asserted(c, []string{"Rogue River DOES NOT have hasTributary: Applegate River"}) {
		t.Error("negated fact must not count as assertion")
	}
	if Asserted(c, []string{"Illinois River hasTributary: Applegate River"}) {
		t.Error("fact must mention the subject")
	}
}
