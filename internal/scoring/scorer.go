// Package scoring generates and ranks classification candidates using
// full-text search over the hierarchy plus heuristic adjustments.
package scoring

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// Result is the outcome of a ranking run. Success is false when the
// candidate pool was empty, prompting the caller to ask for a more
// detailed description rather than guessing.
type Result struct {
	BestMatch    *model.ClassificationCandidate
	Alternatives model.Candidates
	Success      bool
}

// Scorer computes heuristic scores for candidate codes. Scoring is a
// pure function of (candidate, understanding): no stored state changes
// between calls, so identical inputs rank identically.
type Scorer struct {
	store   service.HierarchyStore
	weights Weights
	rules   []Rule
	logger  *slog.Logger
}

// NewScorer creates a scorer with the given weights.
func NewScorer(store service.HierarchyStore, weights Weights, logger *slog.Logger) *Scorer {
	if logger == nil {
		logger = slog.Default()
	}
	if weights.LevelBonus == nil {
		weights = DefaultWeights()
	}
	return &Scorer{
		store:   store,
		weights: weights,
		rules:   defaultRules(),
		logger:  logger,
	}
}

// Score applies every scoring rule to one candidate node.
func (s *Scorer) Score(node *model.HtsNode, u *model.ProductUnderstanding) model.ClassificationCandidate {
	cand := model.ClassificationCandidate{
		HtsCode:     node.Code,
		Description: node.Description,
		Level:       node.Level,
		GeneralRate: node.GeneralRate,
	}

	for _, rule := range s.rules {
		adj := rule.Apply(node, u, s.weights)
		cand.MatchScore += adj.Delta
		if adj.Reason != "" {
			cand.MatchReasons = append(cand.MatchReasons, adj.Reason)
		}
		if adj.Uncertainty != "" {
			cand.Uncertainties = append(cand.Uncertainties, adj.Uncertainty)
		}
	}

	return cand
}

// Rank scores a pool of nodes and returns them in deterministic rank
// order: score descending, then deeper level, then lexical code order.
func (s *Scorer) Rank(nodes []model.HtsNode, u *model.ProductUnderstanding) model.Candidates {
	candidates := make(model.Candidates, 0, len(nodes))
	for i := range nodes {
		candidates = append(candidates, s.Score(&nodes[i], u))
	}
	candidates.Sort()
	return candidates
}

// RankResult runs the full pipeline for a pool: rank, pick the primary
// and up to five alternatives.
func (s *Scorer) RankResult(nodes []model.HtsNode, u *model.ProductUnderstanding) Result {
	ranked := s.Rank(nodes, u)
	if len(ranked) == 0 {
		return Result{Success: false}
	}
	best := ranked[0]
	return Result{
		BestMatch:    &best,
		Alternatives: ranked.TopN(6)[1:],
		Success:      true,
	}
}

// GatherCandidates collects a candidate pool using ordered search
// strategies: the product core term within suggested chapters first,
// then globally, then material-augmented fallback terms. Later
// strategies run only when earlier ones return zero results. The
// per-chapter searches inside a strategy are independent reads and run
// concurrently; results are deduplicated by code.
func (s *Scorer) GatherCandidates(ctx context.Context, u *model.ProductUnderstanding) ([]model.HtsNode, error) {
	if u.CoreTerm != "" && len(u.SuggestedChapters) > 0 {
		nodes, err := s.searchChapters(ctx, u.CoreTerm, u.SuggestedChapters)
		if err != nil {
			return nil, err
		}
		if len(nodes) > 0 {
			return nodes, nil
		}
	}

	if u.CoreTerm != "" {
		nodes, err := s.store.Search(ctx, u.CoreTerm, service.SearchFilter{})
		if err != nil {
			return nil, fmt.Errorf("global candidate search failed: %w", err)
		}
		if len(nodes) > 0 {
			return dedupeByCode(nodes), nil
		}
	}

	// Material-augmented fallback: the material name is often the only
	// term tariff text shares with a sparse description.
	for _, term := range fallbackTerms(u) {
		nodes, err := s.store.Search(ctx, term, service.SearchFilter{})
		if err != nil {
			return nil, fmt.Errorf("fallback candidate search for %q failed: %w", term, err)
		}
		if len(nodes) > 0 {
			return dedupeByCode(nodes), nil
		}
	}

	return nil, nil
}

// searchChapters searches one term across several chapters concurrently.
func (s *Scorer) searchChapters(ctx context.Context, term string, chapters []string) ([]model.HtsNode, error) {
	results := make([][]model.HtsNode, len(chapters))
	errs := make([]error, len(chapters))

	const maxWorkers = 4
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, chapter := range chapters {
		wg.Add(1)
		go func(idx int, ch string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs[idx] = ctx.Err()
				return
			}

			nodes, err := s.store.Search(ctx, term, service.SearchFilter{Chapter: ch})
			if err != nil {
				errs[idx] = err
				return
			}
			results[idx] = nodes
		}(i, chapter)
	}

	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return nil, fmt.Errorf("candidate search in chapter %s failed: %w", chapters[i], err)
		}
	}

	// Flatten in chapter order so the merged pool is deterministic.
	var merged []model.HtsNode
	for _, nodes := range results {
		merged = append(merged, nodes...)
	}
	return dedupeByCode(merged), nil
}

// fallbackTerms builds the last-resort search terms from the material
// and keywords.
func fallbackTerms(u *model.ProductUnderstanding) []string {
	var terms []string
	if u.Material != "" && u.Material != model.MaterialUnknown {
		if u.CoreTerm != "" {
			terms = append(terms, u.Material+" "+u.CoreTerm)
		}
		terms = append(terms, u.Material)
	}
	for _, kw := range u.Keywords {
		if kw != u.CoreTerm && kw != u.Material {
			terms = append(terms, kw)
		}
	}
	return terms
}

// dedupeByCode keeps the first occurrence of each code.
func dedupeByCode(nodes []model.HtsNode) []model.HtsNode {
	seen := make(map[string]bool, len(nodes))
	out := nodes[:0]
	for _, n := range nodes {
		if seen[n.Code] {
			continue
		}
		seen[n.Code] = true
		out = append(out, n)
	}
	return out
}
