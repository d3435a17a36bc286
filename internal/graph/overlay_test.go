package graph

import (
	"testing"

	"github.com/worldmind-ai/worldmind/internal/model"
)

func TestOverlayStagesWithoutMutatingBase(t *testing.T) {
	base := testGraph()
	baseLen := base.Len()

	o := NewOverlay(base)
	added := model.NewTriple(ns+"Applegate_River", ns+"flowsInto", ns+"Rogue_River")
	o.Add(added)

	if !o.Has(added) {
		t.Error("overlay must see the staged triple")
	}
	if base.Has(added) {
		t.Error("base graph must not see the staged triple")
	}
	if base.Len() != baseLen {
		t.Errorf("base Len changed from %d to %d", baseLen, base.Len())
	}
}

func TestOverlayMergesViews(t *testing.T) {
	base := testGraph()
	o := NewOverlay(base)
	o.Add(model.NewTriple(ns+"Rogue_River", ns+"traverses", ns+"Oregon"))

	baseCount := len(base.TriplesWithSubject(ns + "Rogue_River"))
	merged := o.TriplesWithSubject(ns + "Rogue_River")
	if len(merged) != baseCount+1 {
		t.Errorf("merged view = %d triples, want %d", len(merged), baseCount+1)
	}

	objects := o.Objects(ns+"Rogue_River", ns+"traverses")
	if len(objects) != 1 || objects[0].Value != ns+"Oregon" {
		t.Errorf("objects = %v", objects)
	}
}

func TestOverlayDeduplicatesAgainstBase(t *testing.T) {
	base := testGraph()
	o := NewOverlay(base)
	existing := model.NewTriple(ns+"Rogue_River", ns+"flowsInto", ns+"Pacific_Ocean")
	o.Add(existing)

	merged := o.TriplesWithSubject(ns + "Rogue_River")
	if len(merged) != len(base.TriplesWithSubject(ns+"Rogue_River")) {
		t.Errorf("staging an existing triple must not duplicate it: %d triples", len(merged))
	}
}

func TestOverlayHasType(t *testing.T) {
	base := testGraph()
	o := NewOverlay(base)
	o.Add(model.NewTriple(ns+"Bear_Creek", RDFType, ns+"River"))

	if !o.HasType(ns+"Bear_Creek", ns+"River") {
		t.Error("overlay must see staged type")
	}
	if !o.HasType(ns+"Rogue_River", ns+"River") {
		t.Error("overlay must see base types")
	}
	if base.HasType(ns+"Bear_Creek", ns+"River") {
		t.Error("base must not see staged type")
	}
}
