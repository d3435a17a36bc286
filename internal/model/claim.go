package model

// Claim is a candidate triple audited by the consistency auditor.
// Components are entity IRIs once linked; an empty component means the
// label could not be resolved and the claim is treated as unlicensed.
type Claim struct {
	Subject   string `json:"subject"`
	Predicate string `json:"predicate"`
	Object    string `json:"object"`
}

// Resolved reports whether every component of the claim has been linked
// to an entity identifier.
func (c Claim) Resolved() bool {
	return c.Subject != "" && c.Predicate != "" && c.Object != ""
}

// Triple converts the claim to a triple of IRI terms.
func (c Claim) Triple() Triple {
	return NewTriple(c.Subject, c.Predicate, c.Object)
}

// ClaimRecord is one line of a claims JSONL file: an identified claim
// plus the answer text it was extracted from.
type ClaimRecord struct {
	ID     string `json:"id"`
	Claim  Claim  `json:"claim"`
	Answer string `json:"answer,omitempty"`
}

// AuditOutcome is the per-claim result of an audit run.
type AuditOutcome struct {
	ID       string `json:"id"`
	Claim    Claim  `json:"claim"`
	Licensed bool   `json:"licensed"`
	Decision string `json:"decision"`
}

// AuditSummary aggregates an audit run for the report header.
type AuditSummary struct {
	Total     int `json:"total"`
	Licensed  int `json:"licensed"`
	Answered  int `json:"answered"`
	Abstained int `json:"abstained"`
}

// AuditReport is the JSON document written by the audit command.
type AuditReport struct {
	Summary AuditSummary   `json:"summary"`
	Results []AuditOutcome `json:"results"`
}
