// Package cards generates epistemic test cases from a knowledge graph:
// entailed, contradictory, unknown and distractor cards with fixed
// gold labels.
package cards

import (
	"fmt"
	"math/rand"
	"strings"

	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// Options selects the predicate to generate over and the card volume
type Options struct {
	Predicate  string // predicate IRI
	PredLabel  string // human-readable predicate label
	SubjHint   string // optional substring filter on subject IRIs
	NumPerType int    // cards per label block
	Seed       int64  // RNG seed; same seed, same cards
}

// Generate produces E, C, U and distractor cards for one predicate.
// Generation is deterministic for a given graph and seed; the gold
// label is fixed at creation and never re-derived.
func Generate(g *graph.Graph, opts Options) ([]model.Card, error) {
	if opts.NumPerType <= 0 {
		opts.NumPerType = 200
	}
	if opts.PredLabel == "" {
		opts.PredLabel = "related to"
	}

	pairs := g.SubjectObjects(opts.Predicate)
	if opts.SubjHint != "" {
		filtered := pairs[:0:0]
		for _, p := range pairs {
			if strings.Contains(p.Subject, opts.SubjHint) {
				filtered = append(filtered, p)
			}
		}
		pairs = filtered
	}
	if len(pairs) == 0 {
		return nil, fmt.Errorf("no triples found for predicate %s", opts.Predicate)
	}

	objects := uniqueObjects(pairs)
	pairSet := make(map[graph.SubjectObject]struct{}, len(pairs))
	for _, p := range pairs {
		pairSet[p] = struct{}{}
	}

	rnd := rand.New(rand.NewSource(opts.Seed))
	var out []model.Card

	// Entailed: the claim is verbatim in the graph
	for i := 0; i < opts.NumPerType && i < len(pairs); i++ {
		p := pairs[rnd.Intn(len(pairs))]
		out = append(out, model.Card{
			ID:       fmt.Sprintf("CARD_E_%06d", len(out)),
			Facts:    []string{formatFact(p.Subject, opts.PredLabel, p.Object)},
			Question: formatQuestion(p.Subject, opts.PredLabel, p.Object),
			Gold:     model.VerdictYes,
			Label:    model.LabelEntailed,
			Claim:    model.CardClaim{Subj: p.Subject, Pred: opts.Predicate, Obj: p.Object},
		})
	}

	// Contradictory: context carries an explicit negation of the claim
	for i := 0; i < opts.NumPerType && i < len(pairs); i++ {
		p := pairs[rnd.Intn(len(pairs))]
		falseObj, ok := pickOther(rnd, objects, p.Object)
		if !ok {
			continue
		}
		facts := []string{
			formatFact(p.Subject, opts.PredLabel, p.Object),
			fmt.Sprintf("%s DOES NOT have %s: %s (not in database)",
				labelOf(p.Subject), opts.PredLabel, labelOf(falseObj)),
		}
		out = append(out, model.Card{
			ID:       fmt.Sprintf("CARD_C_%06d", len(out)),
			Facts:    facts,
			Question: formatQuestion(p.Subject, opts.PredLabel, falseObj),
			Gold:     model.VerdictNo,
			Label:    model.LabelContradictory,
			Claim:    model.CardClaim{Subj: p.Subject, Pred: opts.Predicate, Obj: falseObj},
		})
	}

	// Unknown: absent claim, partial true context, no negation
	unknown := 0
	for attempts := 0; unknown < opts.NumPerType && attempts < opts.NumPerType*10; attempts++ {
		p := pairs[rnd.Intn(len(pairs))]
		candidates := absentObjects(pairSet, objects, p.Subject)
		if len(candidates) == 0 {
			continue
		}
		obj := candidates[rnd.Intn(len(candidates))]
		subjectFacts := factsForSubject(pairs, p.Subject, opts.PredLabel)
		if len(subjectFacts) == 0 {
			continue
		}
		out = append(out, model.Card{
			ID:       fmt.Sprintf("CARD_U_%06d", len(out)),
			Facts:    sample(rnd, subjectFacts, 3),
			Question: formatQuestion(p.Subject, opts.PredLabel, obj),
			Gold:     model.VerdictUnknown,
			Label:    model.LabelUnknown,
			Claim:    model.CardClaim{Subj: p.Subject, Pred: opts.Predicate, Obj: obj},
		})
		unknown++
	}

	// Distractor traps: true facts for two subjects, question about the
	// cross pairing. Coherent-looking but false, so gold is NO.
	for i := 0; i < opts.NumPerType; i++ {
		if len(pairs) < 2 {
			break
		}
		p1 := pairs[rnd.Intn(len(pairs))]
		p2 := pairs[rnd.Intn(len(pairs))]
		if p1.Subject == p2.Subject {
			continue
		}
		cross := graph.SubjectObject{Subject: p1.Subject, Object: p2.Object}
		if _, exists := pairSet[cross]; exists {
			continue
		}
		facts := []string{
			formatFact(p1.Subject, opts.PredLabel, p1.Object),
			formatFact(p2.Subject, opts.PredLabel, p2.Object),
		}
		out = append(out, model.Card{
			ID:       fmt.Sprintf("CARD_D_%06d", len(out)),
			Facts:    facts,
			Question: formatQuestion(p1.Subject, opts.PredLabel, p2.Object),
			Gold:     model.VerdictNo,
			Label:    model.LabelContradictory,
			Claim:    model.CardClaim{Subj: p1.Subject, Pred: opts.Predicate, Obj: p2.Object},
		})
	}

	return out, nil
}

func uniqueObjects(pairs []graph.SubjectObject) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, p := range pairs {
		if _, ok := seen[p.Object]; ok {
			continue
		}
		seen[p.Object] = struct{}{}
		out = append(out, p.Object)
	}
	return out
}

func pickOther(rnd *rand.Rand, objects []string, exclude string) (string, bool) {
	candidates := make([]string, 0, len(objects))
	for _, o := range objects {
		if o != exclude {
			candidates = append(candidates, o)
		}
	}
	if len(candidates) == 0 {
		return "", false
	}
	return candidates[rnd.Intn(len(candidates))], true
}

func absentObjects(pairSet map[graph.SubjectObject]struct{}, objects []string, subject string) []string {
	var out []string
	for _, o := range objects {
		if _, exists := pairSet[graph.SubjectObject{Subject: subject, Object: o}]; !exists {
			out = append(out, o)
		}
	}
	return out
}

func factsForSubject(pairs []graph.SubjectObject, subject, predLabel string) []string {
	var out []string
	for _, p := range pairs {
		if p.Subject == subject {
			out = append(out, formatFact(p.Subject, predLabel, p.Object))
		}
	}
	return out
}

// sample picks up to k elements without replacement
func sample(rnd *rand.Rand, items []string, k int) []string {
	if k > len(items) {
		k = len(items)
	}
	perm := rnd.Perm(len(items))
	out := make([]string, 0, k)
	for _, i := range perm[:k] {
		out = append(out, items[i])
	}
	return out
}

func labelOf(value string) string {
	if strings.Contains(value, "#") || strings.Contains(value, "/") {
		return model.LocalName(value)
	}
	return value
}

func formatFact(subject, predLabel, object string) string {
	return fmt.Sprintf("%s %s %s", labelOf(subject), predLabel, labelOf(object))
}

func formatQuestion(subject, predLabel, object string) string {
	return fmt.Sprintf("Is %s the %s of %s?", labelOf(object), predLabel, labelOf(subject))
}
