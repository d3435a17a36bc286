package graph

import (
	"testing"

	"github.com/worldmind-ai/worldmind/internal/model"
)

const ns = "http://worldmind.ai/rivers-v4#"

func testGraph() *Graph {
	g := NewGraph()
	g.Add(model.NewTriple(ns+"Rogue_River", RDFType, ns+"River"))
	g.Add(model.NewTriple(ns+"Rogue_River", ns+"hasTributary", ns+"Applegate_River"))
	g.Add(model.NewTriple(ns+"Rogue_River", ns+"flowsInto", ns+"Pacific_Ocean"))
	g.Add(model.NewTriple(ns+"Applegate_River", RDFType, ns+"River"))
	g.Add(model.Triple{
		Subject:   model.IRI(ns + "Rogue_River"),
		Predicate: model.IRI(ns + "length"),
		Object:    model.Literal("346000", model.XSDInteger),
	})
	return g
}

func TestGraphAddDeduplicates(t *testing.T) {
	g := testGraph()
	before := g.Len()
	g.Add(model.NewTriple(ns+"Rogue_River", ns+"hasTributary", ns+"Applegate_River"))
	if g.Len() != before {
		t.Errorf("duplicate changed Len from %d to %d", before, g.Len())
	}
}

func TestGraphHas(t *testing.T) {
	g := testGraph()
	if !g.Has(model.NewTriple(ns+"Rogue_River", ns+"flowsInto", ns+"Pacific_Ocean")) {
		t.Error("expected flowsInto triple")
	}
	if g.Has(model.NewTriple(ns+"Applegate_River", ns+"flowsInto", ns+"Pacific_Ocean")) {
		t.Error("unexpected triple reported present")
	}
	// IRI and literal with the same lexical value are distinct
	if g.Has(model.NewTriple(ns+"Rogue_River", ns+"length", "346000")) {
		t.Error("IRI object must not match literal object")
	}
}

func TestGraphIndexes(t *testing.T) {
	g := testGraph()
	if got := len(g.TriplesWithSubject(ns + "Rogue_River")); got != 4 {
		t.Errorf("TriplesWithSubject = %d, want 4", got)
	}
	if got := len(g.TriplesWithPredicate(RDFType)); got != 2 {
		t.Errorf("TriplesWithPredicate = %d, want 2", got)
	}
	if got := len(g.TriplesWithObject(ns + "Pacific_Ocean")); got != 1 {
		t.Errorf("TriplesWithObject = %d, want 1", got)
	}
}

func TestGraphSubjectsOfTypeOrder(t *testing.T) {
	g := testGraph()
	subjects := g.SubjectsOfType(ns + "River")
	want := []string{ns + "Rogue_River", ns + "Applegate_River"}
	if len(subjects) != len(want) {
		t.Fatalf("subjects = %v", subjects)
	}
	for i := range want {
		if subjects[i] != want[i] {
			t.Errorf("subjects[%d] = %s, want %s", i, subjects[i], want[i])
		}
	}
}

func TestGraphValue(t *testing.T) {
	g := testGraph()
	if v, ok := g.Value(ns+"Rogue_River", ns+"length"); !ok || v.Value != "346000" {
		t.Errorf("Value = %+v, %v", v, ok)
	}
	if _, ok := g.Value(ns+"Rogue_River", ns+"discharge"); ok {
		t.Error("expected missing value")
	}
}

func TestGraphSubjectObjects(t *testing.T) {
	g := testGraph()
	pairs := g.SubjectObjects(ns + "hasTributary")
	if len(pairs) != 1 {
		t.Fatalf("pairs = %v", pairs)
	}
	if pairs[0].Subject != ns+"Rogue_River" || pairs[0].Object != ns+"Applegate_River" {
		t.Errorf("pair = %+v", pairs[0])
	}
}
