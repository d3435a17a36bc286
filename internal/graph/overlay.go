package graph

import (
	"github.com/worldmind-ai/worldmind/internal/model"
)

// Overlay exposes a base graph plus a private set of pending additions.
// Hypothetical-addition checks use an overlay per call instead of
// copying the graph, so concurrent audits never observe each other's
// additions and the base graph stays untouched.
type Overlay struct {
	base  *Graph
	added []model.Triple
	keys  map[string]struct{}
}

// NewOverlay wraps a base graph with an empty pending-addition set
func NewOverlay(base *Graph) *Overlay {
	return &Overlay{base: base, keys: make(map[string]struct{})}
}

// Add stages a triple in the overlay without touching the base graph
func (o *Overlay) Add(t model.Triple) {
	key := TripleKey(t)
	if o.base.Has(t) {
		return
	}
	if _, ok := o.keys[key]; ok {
		return
	}
	o.keys[key] = struct{}{}
	o.added = append(o.added, t)
}

// Has reports membership in the base graph or the pending additions
func (o *Overlay) Has(t model.Triple) bool {
	if o.base.Has(t) {
		return true
	}
	_, ok := o.keys[TripleKey(t)]
	return ok
}

// TriplesWithSubject merges base and pending triples for a subject
func (o *Overlay) TriplesWithSubject(subject string) []model.Triple {
	out := o.base.TriplesWithSubject(subject)
	for _, t := range o.added {
		if t.Subject.Value == subject {
			out = append(out, t)
		}
	}
	return out
}

// TriplesWithObject merges base and pending triples for an entity object
func (o *Overlay) TriplesWithObject(object string) []model.Triple {
	out := o.base.TriplesWithObject(object)
	for _, t := range o.added {
		if t.Object.IsIRI() && t.Object.Value == object {
			out = append(out, t)
		}
	}
	return out
}

// Objects merges base and pending objects of (subject, predicate)
func (o *Overlay) Objects(subject, predicate string) []model.Term {
	out := o.base.Objects(subject, predicate)
	for _, t := range o.added {
		if t.Subject.Value == subject && t.Predicate.Value == predicate {
			out = append(out, t.Object)
		}
	}
	return out
}

// HasType reports whether the entity has the type in base or additions
func (o *Overlay) HasType(subject, typeIRI string) bool {
	return o.Has(model.NewTriple(subject, RDFType, typeIRI))
}
