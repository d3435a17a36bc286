package model

import (
	"encoding/json"
	"testing"
)

func TestLocalName(t *testing.T) {
	cases := map[string]string{
		"http://worldmind.ai/rivers-v4#Rogue_River": "Rogue River",
		"http://example.org/path/Bear_Creek":        "Bear Creek",
		"Rogue_River": "Rogue River",
		"":            "",
	}
	for in, want := range cases {
		if got := LocalName(in); got != want {
			t.Errorf("LocalName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPredicateNameKeepsUnderscores(t *testing.T) {
	if got := PredicateName("http://worldmind.ai/rivers-v4#hasTributary"); got != "hasTributary" {
		t.Errorf("PredicateName = %q", got)
	}
	if got := PredicateName("http://x#source_elevation"); got != "source_elevation" {
		t.Errorf("PredicateName = %q, underscores must survive", got)
	}
}

func TestClaimResolved(t *testing.T) {
	full := Claim{Subject: "s", Predicate: "p", Object: "o"}
	if !full.Resolved() {
		t.Error("complete claim must be resolved")
	}
	for _, c := range []Claim{{}, {Subject: "s"}, {Subject: "s", Predicate: "p"}} {
		if c.Resolved() {
			t.Errorf("claim %+v must not be resolved", c)
		}
	}
}

func TestLabelGoldVerdict(t *testing.T) {
	cases := map[Label]Verdict{
		LabelEntailed:      VerdictYes,
		LabelContradictory: VerdictNo,
		LabelUnknown:       VerdictUnknown,
	}
	for label, want := range cases {
		if got := label.GoldVerdict(); got != want {
			t.Errorf("%s.GoldVerdict() = %s, want %s", label, got, want)
		}
	}
}

func TestCardWireFormat(t *testing.T) {
	card := Card{
		ID:       "CARD_E_000001",
		Facts:    []string{"Rogue River tributary Applegate River"},
		Question: "Is Applegate River the tributary of Rogue River?",
		Gold:     VerdictYes,
		Label:    LabelEntailed,
		Claim:    CardClaim{Subj: "s", Pred: "p", Obj: "o"},
	}
	data, err := json.Marshal(card)
	if err != nil {
		t.Fatal(err)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"id", "facts", "question", "gold", "label", "claim"} {
		if _, ok := raw[key]; !ok {
			t.Errorf("card JSON missing %q: %s", key, data)
		}
	}
	var claim map[string]string
	if err := json.Unmarshal(raw["claim"], &claim); err != nil {
		t.Fatal(err)
	}
	for _, key := range []string{"subj", "pred", "obj"} {
		if _, ok := claim[key]; !ok {
			t.Errorf("claim JSON missing %q", key)
		}
	}
}

func TestTermConstructors(t *testing.T) {
	iri := IRI("http://x#a")
	if !iri.IsIRI() || iri.Datatype != "" {
		t.Errorf("IRI term = %+v", iri)
	}
	lit := Literal("42", "")
	if lit.IsIRI() || lit.Datatype != XSDString {
		t.Errorf("default literal = %+v", lit)
	}
}
