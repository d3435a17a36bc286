package retrieve

import (
	"fmt"
	"reflect"
	"strings"
	"testing"

	"github.com/worldmind-ai/worldmind/internal/cache"
	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

const ns = "http://worldmind.ai/rivers-v4#"

func testConfig() model.RetrievalConfig {
	cfg := model.DefaultConfig().Retrieval
	cfg.RootType = ns + "River"
	return cfg
}

func riverGraph() *graph.Graph {
	g := graph.NewGraph()
	add := func(s, p, o string) { g.Add(model.NewTriple(ns+s, ns+p, ns+o)) }
	label := func(s, l string) {
		g.Add(model.Triple{
			Subject:   model.IRI(ns + s),
			Predicate: model.IRI(graph.RDFSLabel),
			Object:    model.Literal(l, model.XSDString),
		})
	}
	lit := func(s, p, v, dt string) {
		g.Add(model.Triple{
			Subject:   model.IRI(ns + s),
			Predicate: model.IRI(ns + p),
			Object:    model.Literal(v, dt),
		})
	}

	g.Add(model.NewTriple(ns+"Rogue_River", graph.RDFType, ns+"River"))
	label("Rogue_River", "Rogue River")
	lit("Rogue_River", "length", "346000", model.XSDInteger)
	lit("Rogue_River", "abstractText", "The Rogue River flows from the Cascades to the Pacific.", model.XSDString)
	add("Rogue_River", "hasTributary", "Applegate_River")
	add("Rogue_River", "flowsInto", "Pacific_Ocean")

	g.Add(model.NewTriple(ns+"Applegate_River", graph.RDFType, ns+"River"))
	label("Applegate_River", "Applegate River")
	lit("Applegate_River", "length", "82000", model.XSDInteger)
	add("Applegate_River", "traverses", "Josephine_County")

	g.Add(model.NewTriple(ns+"Bear_Creek", graph.RDFType, ns+"River"))
	label("Bear_Creek", "Bear Creek")
	lit("Bear_Creek", "length", "45000", model.XSDInteger)
	return g
}

func TestRetrieveAnchorContext(t *testing.T) {
	r := New(riverGraph(), testConfig(), nil, 0)
	ctx := r.Retrieve("How long is the river?", "Rogue River", 2)

	if ctx.Anchor != ns+"Rogue_River" {
		t.Fatalf("anchor = %s", ctx.Anchor)
	}
	if len(ctx.Facts) == 0 {
		t.Fatal("no facts retrieved")
	}
	for _, want := range []string{"Main Entity: Rogue River", "Length:", "Has Tributary:", "Flows Into:"} {
		if !strings.Contains(ctx.Text, want) {
			t.Errorf("context missing %q:\n%s", want, ctx.Text)
		}
	}
	if !strings.Contains(ctx.Text, "346.0 km") {
		t.Errorf("length not rendered in km:\n%s", ctx.Text)
	}
}

func TestRetrieveIdempotent(t *testing.T) {
	r := New(riverGraph(), testConfig(), nil, 0)
	a := r.Retrieve("How long is the river?", "Rogue River", 2)
	b := r.Retrieve("How long is the river?", "Rogue River", 2)
	if !reflect.DeepEqual(a, b) {
		t.Error("repeated retrieval must produce identical contexts")
	}
}

func TestRetrieveHopBound(t *testing.T) {
	r := New(riverGraph(), testConfig(), nil, 0)
	ctx := r.Retrieve("tributaries?", "Rogue River", 1)
	for _, f := range ctx.Facts {
		if f.Hop > 1 && f.Hop != RelatedHop {
			t.Errorf("fact at hop %d exceeds bound: %v", f.Hop, f.Triple)
		}
	}
}

func TestRetrieveRelatedEntities(t *testing.T) {
	r := New(riverGraph(), testConfig(), nil, 0)
	ctx := r.Retrieve("", "Rogue River", 2)

	found := false
	for _, f := range ctx.Facts {
		if f.Hop == RelatedHop {
			found = true
			if f.Triple.Subject.Value != ns+"Applegate_River" {
				t.Errorf("related fact for %s", f.Triple.Subject.Value)
			}
		}
	}
	if !found {
		t.Fatal("no related-entity facts for tributary river")
	}
	if !strings.Contains(ctx.Text, "Related Entities:") {
		t.Errorf("rendered context missing related section:\n%s", ctx.Text)
	}
}

func TestRetrieveHopBoundCappedBelowRelatedSentinel(t *testing.T) {
	// A chain long enough for uncapped BFS to reach the sentinel hop
	g := graph.NewGraph()
	for i := 0; i < 15; i++ {
		subj := fmt.Sprintf("River_%02d", i)
		g.Add(model.NewTriple(ns+subj, graph.RDFType, ns+"River"))
		g.Add(model.Triple{
			Subject:   model.IRI(ns + subj),
			Predicate: model.IRI(graph.RDFSLabel),
			Object:    model.Literal(fmt.Sprintf("River %02d", i), model.XSDString),
		})
		g.Add(model.Triple{
			Subject:   model.IRI(ns + subj),
			Predicate: model.IRI(ns + "length"),
			Object:    model.Literal("500", model.XSDInteger),
		})
		if i > 0 {
			prev := fmt.Sprintf("River_%02d", i-1)
			g.Add(model.NewTriple(ns+prev, ns+"flowsInto", ns+subj))
		}
	}
	r := New(g, testConfig(), nil, 0)

	ctx := r.Retrieve("", "River 00", 25)
	for _, f := range ctx.Facts {
		if f.Hop >= RelatedHop && f.Hop != RelatedHop {
			t.Fatalf("traversal hop %d reached the related sentinel range: %v", f.Hop, f.Triple)
		}
		if f.Hop == RelatedHop && f.Triple.Subject.Value == ns+"River_00" {
			t.Errorf("anchor fact tagged as related entity: %v", f.Triple)
		}
	}
}

func TestRetrieveFallbackFromQuestion(t *testing.T) {
	r := New(riverGraph(), testConfig(), nil, 0)
	ctx := r.Retrieve("Is Bear Creek longer than the Applegate River?", "", 2)
	if len(ctx.Facts) == 0 {
		t.Fatal("fallback found no facts")
	}
	if !strings.Contains(ctx.Text, "Bear Creek") {
		t.Errorf("fallback context missing mined anchor:\n%s", ctx.Text)
	}
}

func TestRetrieveParentheticalAnchor(t *testing.T) {
	g := riverGraph()
	g.Add(model.NewTriple(ns+"Bear_Creek_Utah", graph.RDFType, ns+"River"))
	g.Add(model.Triple{
		Subject:   model.IRI(ns + "Bear_Creek_Utah"),
		Predicate: model.IRI(graph.RDFSLabel),
		Object:    model.Literal("Bear Creek (Utah)", model.XSDString),
	})
	r := New(g, testConfig(), nil, 0)

	ctx := r.Retrieve("", "Bear Creek (Oregon)", 1)
	if ctx.Anchor != ns+"Bear_Creek_Utah" {
		t.Errorf("parenthical tier anchor = %s", ctx.Anchor)
	}
}

func TestRetrieveNoContext(t *testing.T) {
	r := New(riverGraph(), testConfig(), nil, 0)
	ctx := r.Retrieve("What is the capital of France?", "", 2)
	if len(ctx.Facts) != 0 {
		t.Errorf("unexpected facts: %v", ctx.Facts)
	}
	if ctx.Text != NoContextSentinel {
		t.Errorf("text = %q, want sentinel", ctx.Text)
	}
}

func TestRenderTermUnits(t *testing.T) {
	cases := []struct {
		pred string
		term model.Term
		want string
	}{
		{"length", model.Literal("346000", model.XSDInteger), "346000 (346.0 km)"},
		{"length", model.Literal("820", model.XSDInteger), "820"},
		{"discharge", model.Literal("2860.7", model.XSDDouble), "2861"},
		{"sourceelevation", model.Literal("1580.2", model.XSDDouble), "1580"},
		// Only length-like measures read as meters
		{"watershedarea", model.Literal("13390", model.XSDInteger), "13390"},
		{"discharge", model.Literal("56", model.XSDDouble), "56"},
		{"hastributary", model.IRI(ns + "Bear_Creek"), "Bear Creek"},
	}
	for _, tc := range cases {
		if got := renderTerm(tc.pred, tc.term); got != tc.want {
			t.Errorf("renderTerm(%s, %s) = %q, want %q", tc.pred, tc.term.Value, got, tc.want)
		}
	}
}

func TestRetrieveUsesCache(t *testing.T) {
	c := cache.NewMemoryCache(0, 0)
	g := riverGraph()
	r := New(g, testConfig(), c, 0)

	first := r.Retrieve("How long?", "Rogue River", 2)

	// Mutating the graph after caching must not change the cached context
	g.Add(model.NewTriple(ns+"Rogue_River", ns+"hasTributary", ns+"Bear_Creek"))
	second := r.Retrieve("How long?", "Rogue River", 2)
	if !reflect.DeepEqual(first, second) {
		t.Error("cached context not served")
	}
}
