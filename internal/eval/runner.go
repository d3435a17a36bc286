// Package eval runs prediction systems over card sets and records
// per-card results.
package eval

import (
	"context"
	"fmt"
	"sort"

	"github.com/worldmind-ai/worldmind/internal/model"
	"github.com/worldmind-ai/worldmind/internal/systems"
	"github.com/worldmind-ai/worldmind/internal/worker"
)

// Throttled is implemented by systems whose calls must be rate
// limited. The key selects the limiter bucket.
type Throttled interface {
	RateKey() string
}

// Runner evaluates systems against cards on a worker pool
type Runner struct {
	workers int
	limiter *worker.Limiter
}

// NewRunner creates a runner. The limiter may be nil to disable
// throttling.
func NewRunner(workers int, limiter *worker.Limiter) *Runner {
	return &Runner{workers: workers, limiter: limiter}
}

type cardJob struct {
	index   int
	card    model.Card
	system  systems.Answerer
	limiter *worker.Limiter
}

type cardResult struct {
	index  int
	result model.Result
	err    error
}

func (r *cardResult) GetError() error { return r.err }

func (j *cardJob) Execute(ctx context.Context) worker.Result {
	var pred model.Verdict
	var err error
	if j.limiter != nil {
		if t, ok := j.system.(Throttled); ok {
			err = j.limiter.Wait(ctx, t.RateKey())
		}
	}
	if err == nil {
		pred, err = j.system.Answer(ctx, j.card)
	}
	if err != nil {
		// A failed call is an abstention, not a dropped card. The
		// error still surfaces so callers can report flaky backends.
		pred = model.VerdictUnknown
	}
	return &cardResult{
		index: j.index,
		result: model.Result{
			ID:     j.card.ID,
			Gold:   j.card.Gold,
			Pred:   pred,
			Pass:   pred == j.card.Gold,
			System: j.system.Name(),
			Label:  j.card.Label,
		},
		err: err,
	}
}

// Run evaluates one system over all cards. Results come back in card
// order regardless of completion order.
func (r *Runner) Run(system systems.Answerer, cards []model.Card) ([]model.Result, error) {
	pool := worker.NewPool(r.workers)
	pool.Start()

	for i, card := range cards {
		pool.Submit(&cardJob{index: i, card: card, system: system, limiter: r.limiter})
	}

	raw := pool.Wait()
	results := make([]model.Result, len(cards))
	var firstErr error
	seen := 0
	for _, res := range raw {
		cr, ok := res.(*cardResult)
		if !ok {
			continue
		}
		if cr.err != nil && firstErr == nil {
			firstErr = fmt.Errorf("card %s: %w", cards[cr.index].ID, cr.err)
		}
		results[cr.index] = cr.result
		seen++
	}
	if seen != len(cards) {
		return results, fmt.Errorf("evaluated %d of %d cards", seen, len(cards))
	}
	return results, firstErr
}

// RunAll evaluates every system over the same cards, concatenating
// results in system order.
func (r *Runner) RunAll(answerers []systems.Answerer, cards []model.Card) ([]model.Result, error) {
	var all []model.Result
	var firstErr error
	for _, system := range answerers {
		results, err := r.Run(system, cards)
		if err != nil && firstErr == nil {
			firstErr = err
		}
		all = append(all, results...)
	}
	return all, firstErr
}

// Summary is per-system, per-label accuracy over one result set
type Summary struct {
	System string
	Total  int
	Passed int
	Labels map[model.Label]LabelStats
}

// LabelStats counts outcomes for one gold label
type LabelStats struct {
	Total  int
	Passed int
}

// Summarize aggregates results by system and gold label
func Summarize(results []model.Result) []Summary {
	bySystem := make(map[string]*Summary)
	var order []string
	for _, res := range results {
		s, ok := bySystem[res.System]
		if !ok {
			s = &Summary{System: res.System, Labels: make(map[model.Label]LabelStats)}
			bySystem[res.System] = s
			order = append(order, res.System)
		}
		s.Total++
		stats := s.Labels[res.Label]
		stats.Total++
		if res.Pass {
			s.Passed++
			stats.Passed++
		}
		s.Labels[res.Label] = stats
	}
	sort.Strings(order)
	out := make([]Summary, 0, len(order))
	for _, name := range order {
		out = append(out, *bySystem[name])
	}
	return out
}
