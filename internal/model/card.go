package model

// Verdict is the three-way answer a prediction system returns for a card
type Verdict string

const (
	VerdictYes     Verdict = "YES"
	VerdictNo      Verdict = "NO"
	VerdictUnknown Verdict = "UNKNOWN"
)

// Label is the epistemic classification of a claim relative to a graph
type Label string

const (
	LabelEntailed      Label = "E" // Present in the knowledge graph
	LabelContradictory Label = "C" // Explicitly negated or constraint-forbidden
	LabelUnknown       Label = "U" // Absent with no contradiction evidence
)

// Name returns the long form of a label for reports
func (l Label) Name() string {
	switch l {
	case LabelEntailed:
		return "Entailed"
	case LabelContradictory:
		return "Contradictory"
	case LabelUnknown:
		return "Unknown"
	default:
		return string(l)
	}
}

// GoldVerdict maps an epistemic label to the gold answer of a card
func (l Label) GoldVerdict() Verdict {
	switch l {
	case LabelEntailed:
		return VerdictYes
	case LabelContradictory:
		return VerdictNo
	default:
		return VerdictUnknown
	}
}

// CardClaim is the claim triple embedded in a card. The short field
// names are the wire contract with existing card corpora and must not
// change.
type CardClaim struct {
	Subj string `json:"subj"`
	Pred string `json:"pred"`
	Obj  string `json:"obj"`
}

// Claim converts a card claim to the auditor's claim form.
func (c CardClaim) Claim() Claim {
	return Claim{Subject: c.Subj, Predicate: c.Pred, Object: c.Obj}
}

// Card is one epistemic test case: context facts, a yes/no question,
// the claim under test and its fixed gold label. Cards are produced
// once by the generator and never re-derived.
type Card struct {
	ID       string    `json:"id"`
	Facts    []string  `json:"facts"`
	Question string    `json:"question"`
	Gold     Verdict   `json:"gold"`
	Label    Label     `json:"label"`
	Claim    CardClaim `json:"claim"`
}

// Result is one (card, system) evaluation outcome, one line of a
// results JSONL file.
type Result struct {
	ID     string  `json:"id"`
	Gold   Verdict `json:"gold"`
	Pred   Verdict `json:"pred"`
	Pass   bool    `json:"pass"`
	System string  `json:"system"`
	Label  Label   `json:"label"`
}
