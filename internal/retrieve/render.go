package retrieve

import (
	"fmt"
	"sort"
	"strings"

	"github.com/worldmind-ai/worldmind/internal/model"
)

// Category names for the rendered fact sections, in display order.
var renderSections = []struct {
	title string
	preds []string
}{
	{"Physical Attributes", []string{
		"length", "discharge", "sourceelevation", "mouthelevation",
		"watershedarea", "width", "depth",
	}},
	{"Geography", []string{
		"traverses", "incountry", "incounty", "instate", "mouthposition",
		"sourceposition",
	}},
	{"Relationships", []string{
		"hastributary", "flowsinto", "hassource", "hasmouth", "partofsystem",
		"lefttributary", "righttributary",
	}},
}

// render produces the structured text block for a fact set. Facts at
// RelatedHop go to a separate section after the anchor's own.
func (r *Retriever) render(facts []Fact, anchor string) string {
	if len(facts) == 0 {
		return NoContextSentinel
	}

	var b strings.Builder
	b.WriteString("=== STRUCTURED FACTS ===\n")

	abstractPred := strings.ToLower(r.cfg.AbstractPred)
	if abstractPred == "" {
		abstractPred = "abstracttext"
	}

	// predicate -> rendered values, anchor facts only
	anchorFacts := make(map[string][]string)
	var anchorName, abstract string
	related := make(map[string]map[string][]string)
	relatedOrder := []string{}

	for _, f := range facts {
		pred := strings.ToLower(model.PredicateName(f.Triple.Predicate.Value))
		value := renderTerm(pred, f.Triple.Object)

		if f.Hop == RelatedHop {
			subj := model.LocalName(f.Triple.Subject.Value)
			if _, ok := related[subj]; !ok {
				related[subj] = make(map[string][]string)
				relatedOrder = append(relatedOrder, subj)
			}
			related[subj][pred] = appendUnique(related[subj][pred], value)
			continue
		}
		if f.Triple.Subject.Value != anchor {
			continue
		}
		switch pred {
		case "label":
			if anchorName == "" {
				anchorName = f.Triple.Object.Value
			}
		case abstractPred:
			if abstract == "" {
				abstract = f.Triple.Object.Value
			}
		default:
			anchorFacts[pred] = appendUnique(anchorFacts[pred], value)
		}
	}

	if anchorName == "" && anchor != "" {
		anchorName = model.LocalName(anchor)
	}
	if anchorName != "" {
		fmt.Fprintf(&b, "\nMain Entity: %s\n", anchorName)
	}
	if abstract != "" {
		if len(abstract) > r.cfg.AbstractMaxChars {
			abstract = abstract[:r.cfg.AbstractMaxChars] + "..."
		}
		fmt.Fprintf(&b, "Description: %s\n", abstract)
	}

	rendered := make(map[string]bool)
	for _, section := range renderSections {
		var lines []string
		for _, pred := range section.preds {
			values, ok := anchorFacts[pred]
			if !ok {
				continue
			}
			rendered[pred] = true
			lines = append(lines, fmt.Sprintf("  %s: %s",
				titleCase(pred), strings.Join(values, ", ")))
		}
		if len(lines) > 0 {
			fmt.Fprintf(&b, "\n%s:\n%s\n", section.title, strings.Join(lines, "\n"))
		}
	}

	// Remaining predicates, sorted for stable output
	var rest []string
	for pred := range anchorFacts {
		if !rendered[pred] && pred != "type" {
			rest = append(rest, pred)
		}
	}
	if len(rest) > 0 {
		sort.Strings(rest)
		b.WriteString("\nOther Facts:\n")
		for _, pred := range rest {
			fmt.Fprintf(&b, "  %s: %s\n", titleCase(pred),
				strings.Join(anchorFacts[pred], ", "))
		}
	}

	if len(relatedOrder) > 0 {
		b.WriteString("\nRelated Entities:\n")
		for _, subj := range relatedOrder {
			preds := related[subj]
			var keys []string
			for pred := range preds {
				keys = append(keys, pred)
			}
			sort.Strings(keys)
			var parts []string
			for _, pred := range keys {
				parts = append(parts, fmt.Sprintf("%s: %s",
					titleCase(pred), strings.Join(preds[pred], ", ")))
			}
			fmt.Fprintf(&b, "  %s (%s)\n", subj, strings.Join(parts, "; "))
		}
	}

	text := b.String()
	if strings.TrimSpace(text) == "=== STRUCTURED FACTS ===" {
		return NoContextSentinel
	}
	return text
}

// renderTerm formats an object term for display. Large numbers on
// length predicates read as meters and get a kilometer rendering;
// discharge and elevation round to whole units, everything else stays
// as written.
func renderTerm(pred string, t model.Term) string {
	if t.IsIRI() {
		return model.LocalName(t.Value)
	}
	switch t.Datatype {
	case model.XSDInteger, model.XSDDouble:
		var v float64
		if _, err := fmt.Sscanf(t.Value, "%g", &v); err == nil && v > 1000 {
			switch {
			case strings.Contains(pred, "length"):
				return fmt.Sprintf("%s (%.1f km)", t.Value, v/1000)
			case strings.Contains(pred, "discharge"), strings.Contains(pred, "elevation"):
				return fmt.Sprintf("%.0f", v)
			}
		}
	}
	return t.Value
}

func appendUnique(list []string, v string) []string {
	for _, existing := range list {
		if existing == v {
			return list
		}
	}
	return append(list, v)
}

// titleCase renders a lowercased predicate name for display, keeping
// the known camel-case predicates readable.
func titleCase(pred string) string {
	known := map[string]string{
		"hastributary":    "Has Tributary",
		"flowsinto":       "Flows Into",
		"hassource":       "Has Source",
		"hasmouth":        "Has Mouth",
		"sourceelevation": "Source Elevation",
		"mouthelevation":  "Mouth Elevation",
		"watershedarea":   "Watershed Area",
		"incountry":       "In Country",
		"incounty":        "In County",
		"instate":         "In State",
		"mouthposition":   "Mouth Position",
		"sourceposition":  "Source Position",
		"partofsystem":    "Part Of System",
		"lefttributary":   "Left Tributary",
		"righttributary":  "Right Tributary",
		"rivername":       "River Name",
	}
	if s, ok := known[pred]; ok {
		return s
	}
	if pred == "" {
		return pred
	}
	return strings.ToUpper(pred[:1]) + pred[1:]
}
