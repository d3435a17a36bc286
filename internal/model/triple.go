package model

import "strings"

// TermKind distinguishes entity identifiers from typed literals
type TermKind int

const (
	KindIRI     TermKind = iota // Opaque entity identifier (URI-like string)
	KindLiteral                 // Typed literal value
)

// Common XSD datatype IRIs for literals
const (
	XSDString  = "http://www.w3.org/2001/XMLSchema#string"
	XSDDouble  = "http://www.w3.org/2001/XMLSchema#double"
	XSDInteger = "http://www.w3.org/2001/XMLSchema#integer"
	XSDDate    = "http://www.w3.org/2001/XMLSchema#date"
	XSDBoolean = "http://www.w3.org/2001/XMLSchema#boolean"
)

// Term is one component of a triple: either an entity IRI or a typed literal
type Term struct {
	Value    string   `json:"value"`              // IRI or literal lexical form
	Kind     TermKind `json:"kind"`               // KindIRI or KindLiteral
	Datatype string   `json:"datatype,omitempty"` // XSD datatype IRI (literals only)
}

// IRI constructs an entity identifier term
func IRI(value string) Term {
	return Term{Value: value, Kind: KindIRI}
}

// Literal constructs a typed literal term
func Literal(value, datatype string) Term {
	if datatype == "" {
		datatype = XSDString
	}
	return Term{Value: value, Kind: KindLiteral, Datatype: datatype}
}

// IsIRI reports whether the term is an entity identifier
func (t Term) IsIRI() bool {
	return t.Kind == KindIRI
}

// Label returns a human-readable label for the term. For IRIs this is the
// local name with underscores replaced by spaces; literals return their value.
func (t Term) Label() string {
	if t.Kind == KindLiteral {
		return t.Value
	}
	return LocalName(t.Value)
}

// Triple is an ordered subject-predicate-object fact unit
type Triple struct {
	Subject   Term `json:"subject"`
	Predicate Term `json:"predicate"`
	Object    Term `json:"object"`
}

// NewTriple constructs a triple from three IRIs
func NewTriple(subject, predicate, object string) Triple {
	return Triple{Subject: IRI(subject), Predicate: IRI(predicate), Object: IRI(object)}
}

// LocalName extracts the fragment or last path segment of an IRI and
// replaces underscores with spaces, matching how entity labels are
// embedded in generated identifiers.
func LocalName(iri string) string {
	name := iri
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		name = iri[i+1:]
	} else if i := strings.LastIndex(iri, "/"); i >= 0 {
		name = iri[i+1:]
	}
	return strings.ReplaceAll(name, "_", " ")
}

// PredicateName returns the short name of a predicate IRI without
// underscore substitution (predicate vocabularies use camelCase).
func PredicateName(iri string) string {
	if i := strings.LastIndex(iri, "#"); i >= 0 {
		return iri[i+1:]
	}
	if i := strings.LastIndex(iri, "/"); i >= 0 {
		return iri[i+1:]
	}
	return iri
}
