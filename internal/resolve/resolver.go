// Package resolve links human-readable labels to graph entity IRIs.
package resolve

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/worldmind-ai/worldmind/internal/graph"
)

// DefaultFuzzyThreshold is the minimum similarity for the fuzzy tier
const DefaultFuzzyThreshold = 0.85

// Normalize produces the canonical index key for a label: Unicode
// decomposition with combining marks stripped, trimmed, lowercased.
func Normalize(label string) string {
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)))
	out, _, err := transform.String(t, label)
	if err != nil {
		out = label
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// Index maps normalized labels to the entity IRIs that carry them.
// Several entities may share a normalized label; the resolver returns
// the first, leaving the ambiguity unresolved. Downstream gold labels
// were generated under the same first-match policy, so changing it
// would break compatibility.
type Index map[string][]string

// BuildIndex groups every entity of the given type by normalized label
func BuildIndex(g *graph.Graph, typeIRI, labelPred string) Index {
	idx := make(Index)
	for _, subject := range g.SubjectsOfType(typeIRI) {
		label, ok := g.Value(subject, labelPred)
		if !ok {
			continue
		}
		key := Normalize(label.Value)
		idx[key] = append(idx[key], subject)
	}
	return idx
}

// Resolver links labels against a prebuilt index in three tiers:
// exact, underscore/space variant, then fuzzy.
type Resolver struct {
	index     Index
	keys      []string
	threshold float64
}

// NewResolver creates a resolver over the index. A non-positive
// threshold falls back to DefaultFuzzyThreshold.
func NewResolver(index Index, threshold float64) *Resolver {
	if threshold <= 0 {
		threshold = DefaultFuzzyThreshold
	}
	keys := make([]string, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return &Resolver{index: index, keys: keys, threshold: threshold}
}

// Link resolves a label to an entity IRI, or "" when no tier matches.
// An unresolved label is a value, not an error: the auditor treats it
// as not licensed.
func (r *Resolver) Link(label string) string {
	if label == "" {
		return ""
	}
	key := Normalize(label)
	if ids, ok := r.index[key]; ok {
		return ids[0]
	}
	for _, variant := range []string{
		strings.ReplaceAll(key, "_", " "),
		strings.ReplaceAll(key, " ", "_"),
	} {
		if variant == key {
			continue
		}
		if ids, ok := r.index[variant]; ok {
			return ids[0]
		}
	}
	best, score := "", 0.0
	for _, candidate := range r.keys {
		if s := Similarity(key, candidate); s > score {
			best, score = candidate, s
		}
	}
	if best != "" && score >= r.threshold {
		return r.index[best][0]
	}
	return ""
}

// Similarity is a Levenshtein-based ratio in [0,1]
func Similarity(a, b string) float64 {
	if a == b {
		return 1.0
	}
	// Rune counts, to match the rune-based edit distance.
	maxLen := len([]rune(a))
	if n := len([]rune(b)); n > maxLen {
		maxLen = n
	}
	if maxLen == 0 {
		return 1.0
	}
	return 1.0 - float64(levenshtein(a, b))/float64(maxLen)
}

// levenshtein computes edit distance over runes
func levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}
	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(curr[j-1]+1, prev[j]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}
	return prev[len(rb)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
