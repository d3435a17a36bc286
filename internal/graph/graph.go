package graph

import (
	"github.com/worldmind-ai/worldmind/internal/model"
)

// Well-known predicate IRIs
const (
	RDFType   = "http://www.w3.org/1999/02/22-rdf-syntax-ns#type"
	RDFSLabel = "http://www.w3.org/2000/01/rdf-schema#label"
)

// Reader is the read-only graph view shared by the auditor, classifier
// and retriever. Both Graph and Overlay satisfy it.
type Reader interface {
	Has(t model.Triple) bool
	TriplesWithSubject(subject string) []model.Triple
	TriplesWithObject(object string) []model.Triple
	Objects(subject, predicate string) []model.Term
}

// Graph is an immutable-after-load triple collection with indexes by
// subject, predicate and object. Duplicates collapse; insertion order
// is preserved for deterministic iteration.
type Graph struct {
	keys        map[string]struct{}
	ordered     []model.Triple
	bySubject   map[string][]int
	byPredicate map[string][]int
	byObject    map[string][]int
}

// NewGraph creates an empty graph
func NewGraph() *Graph {
	return &Graph{
		keys:        make(map[string]struct{}),
		bySubject:   make(map[string][]int),
		byPredicate: make(map[string][]int),
		byObject:    make(map[string][]int),
	}
}

func termKey(t model.Term) string {
	if t.Kind == model.KindLiteral {
		return "\"" + t.Value + "\x1f" + t.Datatype
	}
	return "<" + t.Value
}

// TripleKey returns a unique string key for a triple
func TripleKey(t model.Triple) string {
	return termKey(t.Subject) + "\x00" + termKey(t.Predicate) + "\x00" + termKey(t.Object)
}

// Add inserts a triple. Adding an existing triple is a no-op.
// Add must not be called after the graph is shared with readers.
func (g *Graph) Add(t model.Triple) {
	key := TripleKey(t)
	if _, ok := g.keys[key]; ok {
		return
	}
	g.keys[key] = struct{}{}
	idx := len(g.ordered)
	g.ordered = append(g.ordered, t)
	g.bySubject[t.Subject.Value] = append(g.bySubject[t.Subject.Value], idx)
	g.byPredicate[t.Predicate.Value] = append(g.byPredicate[t.Predicate.Value], idx)
	if t.Object.IsIRI() {
		g.byObject[t.Object.Value] = append(g.byObject[t.Object.Value], idx)
	}
}

// Len returns the number of distinct triples
func (g *Graph) Len() int {
	return len(g.ordered)
}

// Has reports whether the exact triple is present
func (g *Graph) Has(t model.Triple) bool {
	_, ok := g.keys[TripleKey(t)]
	return ok
}

// Triples returns all triples in insertion order. The returned slice is
// shared; callers must not modify it.
func (g *Graph) Triples() []model.Triple {
	return g.ordered
}

// TriplesWithSubject returns all triples whose subject is the given IRI
func (g *Graph) TriplesWithSubject(subject string) []model.Triple {
	return g.collect(g.bySubject[subject])
}

// TriplesWithPredicate returns all triples with the given predicate IRI
func (g *Graph) TriplesWithPredicate(predicate string) []model.Triple {
	return g.collect(g.byPredicate[predicate])
}

// TriplesWithObject returns all triples whose object is the given entity IRI
func (g *Graph) TriplesWithObject(object string) []model.Triple {
	return g.collect(g.byObject[object])
}

func (g *Graph) collect(indexes []int) []model.Triple {
	if len(indexes) == 0 {
		return nil
	}
	out := make([]model.Triple, 0, len(indexes))
	for _, i := range indexes {
		out = append(out, g.ordered[i])
	}
	return out
}

// Objects returns every object of (subject, predicate) in insertion order
func (g *Graph) Objects(subject, predicate string) []model.Term {
	var out []model.Term
	for _, i := range g.bySubject[subject] {
		if g.ordered[i].Predicate.Value == predicate {
			out = append(out, g.ordered[i].Object)
		}
	}
	return out
}

// Value returns the first object of (subject, predicate), if any
func (g *Graph) Value(subject, predicate string) (model.Term, bool) {
	for _, i := range g.bySubject[subject] {
		if g.ordered[i].Predicate.Value == predicate {
			return g.ordered[i].Object, true
		}
	}
	return model.Term{}, false
}

// SubjectsOfType returns the IRIs of all entities with rdf:type typeIRI,
// deduplicated, in insertion order
func (g *Graph) SubjectsOfType(typeIRI string) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, i := range g.byPredicate[RDFType] {
		t := g.ordered[i]
		if !t.Object.IsIRI() || t.Object.Value != typeIRI {
			continue
		}
		if _, ok := seen[t.Subject.Value]; ok {
			continue
		}
		seen[t.Subject.Value] = struct{}{}
		out = append(out, t.Subject.Value)
	}
	return out
}

// HasType reports whether the entity carries rdf:type typeIRI
func (g *Graph) HasType(subject, typeIRI string) bool {
	return g.Has(model.NewTriple(subject, RDFType, typeIRI))
}

// SubjectObject is one (subject, object) pair of a predicate
type SubjectObject struct {
	Subject string
	Object  string
}

// SubjectObjects returns all (subject, object) pairs for a predicate in
// insertion order. Literal objects are returned as their lexical value.
func (g *Graph) SubjectObjects(predicate string) []SubjectObject {
	var out []SubjectObject
	for _, i := range g.byPredicate[predicate] {
		t := g.ordered[i]
		out = append(out, SubjectObject{Subject: t.Subject.Value, Object: t.Object.Value})
	}
	return out
}
