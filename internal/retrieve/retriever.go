// Package retrieve extracts a bounded subgraph for a question and
// renders it into a structured textual context.
package retrieve

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/worldmind-ai/worldmind/internal/cache"
	"github.com/worldmind-ai/worldmind/internal/graph"
	"github.com/worldmind-ai/worldmind/internal/model"
)

// RelatedHop is the sentinel hop value for related-entity facts. It is
// outside the BFS hop range, marking secondary context rather than
// facts about the anchor itself.
const RelatedHop = 10

// NoContextSentinel is emitted instead of an empty string so consumers
// can detect retrieval failure unambiguously.
const NoContextSentinel = "No relevant graph context found."

// Fact is one retrieved triple tagged with its BFS hop distance
type Fact struct {
	Triple model.Triple `json:"triple"`
	Hop    int          `json:"hop"`
}

// Context is the retrieval result: ordered facts plus the rendered
// text block. Recomputed per question unless served from cache.
type Context struct {
	Anchor string `json:"anchor,omitempty"`
	Facts  []Fact `json:"facts"`
	Text   string `json:"text"`
}

// Retriever answers questions with subgraph contexts from one graph
type Retriever struct {
	graph    *graph.Graph
	cfg      model.RetrievalConfig
	cache    cache.Cache
	cacheTTL time.Duration
	anchorRe *regexp.Regexp
}

// New creates a retriever. The cache is optional (nil disables it).
func New(g *graph.Graph, cfg model.RetrievalConfig, c cache.Cache, cacheTTL time.Duration) *Retriever {
	if cfg.MaxHops <= 0 {
		cfg.MaxHops = 3
	}
	if cfg.MinTriples <= 0 {
		cfg.MinTriples = 5
	}
	if cfg.AbstractMaxChars <= 0 {
		cfg.AbstractMaxChars = 500
	}
	nouns := cfg.DomainNouns
	if len(nouns) == 0 {
		nouns = []string{"River", "Creek", "Stream"}
	}
	pattern := fmt.Sprintf(`\b([A-Z][a-z]+(?:\s+[A-Z][a-z]+)*)\s+(%s)\b`,
		strings.Join(nouns, "|"))
	return &Retriever{
		graph:    g,
		cfg:      cfg,
		cache:    c,
		cacheTTL: cacheTTL,
		anchorRe: regexp.MustCompile(pattern),
	}
}

// Retrieve builds the context for a question. Same graph and inputs
// always yield the identical context: traversal follows insertion
// order and rendering sorts its groups.
func (r *Retriever) Retrieve(question, anchorLabel string, maxHops int) *Context {
	if maxHops <= 0 {
		maxHops = r.cfg.MaxHops
	}
	// BFS hops at or past the related-entity sentinel would be
	// indistinguishable from secondary context, so the bound is capped.
	if maxHops >= RelatedHop {
		maxHops = RelatedHop - 1
	}

	key := cache.Key(fmt.Sprintf("retrieve|%s|%s|%d", question, anchorLabel, maxHops))
	if r.cache != nil {
		if data, found := r.cache.Get(key); found {
			var ctx Context
			if err := json.Unmarshal(data, &ctx); err == nil {
				return &ctx
			}
		}
	}

	facts, anchor := r.subgraph(anchorLabel, maxHops)

	// Fallback: too little context, mine the question for alternate
	// anchor candidates and merge their subgraphs.
	if len(facts) < r.cfg.MinTriples {
		for _, candidate := range r.anchorCandidates(question, 2) {
			more, candidateAnchor := r.subgraph(candidate, maxHops)
			if anchor == "" {
				anchor = candidateAnchor
			}
			facts = mergeFacts(facts, more)
		}
	}

	ctx := &Context{
		Anchor: anchor,
		Facts:  facts,
		Text:   r.render(facts, anchor),
	}

	if r.cache != nil {
		if data, err := json.Marshal(ctx); err == nil {
			_ = r.cache.Set(key, data, r.cacheTTL)
		}
	}
	return ctx
}

// subgraph resolves the anchor and runs the bounded BFS
func (r *Retriever) subgraph(anchorLabel string, maxHops int) ([]Fact, string) {
	if anchorLabel == "" {
		return nil, ""
	}
	anchor := r.resolveAnchor(anchorLabel)
	if anchor == "" {
		return nil, ""
	}

	type queued struct {
		uri string
		hop int
	}
	var facts []Fact
	visited := make(map[string]bool)
	queue := []queued{{anchor, 0}}
	var related []string
	relatedSeen := make(map[string]bool)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		if visited[current.uri] || current.hop > maxHops {
			continue
		}
		visited[current.uri] = true

		for _, t := range r.graph.TriplesWithSubject(current.uri) {
			facts = append(facts, Fact{Triple: t, Hop: current.hop})
			predName := model.PredicateName(t.Predicate.Value)
			if t.Object.IsIRI() {
				if r.isRelationPred(predName) && r.graph.HasType(t.Object.Value, r.cfg.RootType) &&
					t.Object.Value != anchor && !relatedSeen[t.Object.Value] {
					relatedSeen[t.Object.Value] = true
					related = append(related, t.Object.Value)
				}
				if !visited[t.Object.Value] {
					queue = append(queue, queued{t.Object.Value, current.hop + 1})
				}
			}
		}
		for _, t := range r.graph.TriplesWithObject(current.uri) {
			facts = append(facts, Fact{Triple: t, Hop: current.hop})
		}
	}

	// Related entities contribute a curated subset of attribute facts
	// at the sentinel hop, separated from the anchor's own facts.
	for _, entity := range related {
		for _, t := range r.graph.TriplesWithSubject(entity) {
			if r.isAttributePred(model.PredicateName(t.Predicate.Value)) {
				facts = append(facts, Fact{Triple: t, Hop: RelatedHop})
			}
		}
	}

	return facts, anchor
}

// resolveAnchor matches an anchor name against root-type entity labels
// in three tiers: exact equality, parenthetical-free prefix, then
// general prefix. Ties go to the first entity encountered, which is a
// documented policy rather than an ideal one.
func (r *Retriever) resolveAnchor(name string) string {
	clean := strings.ToLower(strings.TrimSpace(name))
	first := clean
	if i := strings.Index(clean, "("); i >= 0 {
		first = strings.TrimSpace(clean[:i])
	}
	subjects := r.graph.SubjectsOfType(r.cfg.RootType)

	for _, subject := range subjects {
		for _, label := range r.graph.Objects(subject, graph.RDFSLabel) {
			if label.Value == name {
				return subject
			}
		}
	}
	if strings.Contains(name, "(") {
		for _, subject := range subjects {
			for _, label := range r.graph.Objects(subject, graph.RDFSLabel) {
				lower := strings.ToLower(label.Value)
				if strings.HasPrefix(lower, first) && strings.Contains(label.Value, "(") {
					return subject
				}
			}
		}
	}
	for _, subject := range subjects {
		for _, label := range r.graph.Objects(subject, graph.RDFSLabel) {
			if strings.HasPrefix(strings.ToLower(label.Value), first) {
				return subject
			}
		}
	}
	return ""
}

// anchorCandidates extracts capitalized phrases followed by a domain
// noun from the question text
func (r *Retriever) anchorCandidates(question string, limit int) []string {
	matches := r.anchorRe.FindAllStringSubmatch(question, -1)
	var out []string
	for _, m := range matches {
		out = append(out, m[1]+" "+m[2])
		if len(out) >= limit {
			break
		}
	}
	return out
}

func (r *Retriever) isRelationPred(predName string) bool {
	for _, p := range r.cfg.RelationPreds {
		if p == predName {
			return true
		}
	}
	return false
}

func (r *Retriever) isAttributePred(predName string) bool {
	for _, p := range r.cfg.AttributePreds {
		if p == predName {
			return true
		}
	}
	return false
}

// mergeFacts appends new facts, dropping exact duplicates
func mergeFacts(base, extra []Fact) []Fact {
	seen := make(map[string]struct{}, len(base))
	for _, f := range base {
		seen[factKey(f)] = struct{}{}
	}
	for _, f := range extra {
		k := factKey(f)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		base = append(base, f)
	}
	return base
}

func factKey(f Fact) string {
	return fmt.Sprintf("%s|%d", graph.TripleKey(f.Triple), f.Hop)
}
