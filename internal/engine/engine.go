// Package engine orchestrates a classification request end to end:
// understanding extraction, heading resolution, tree navigation,
// candidate scoring, duty resolution, and confidence assembly.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chrishsmith/sourcify-sub003/internal/common"
	"github.com/chrishsmith/sourcify-sub003/internal/confidence"
	"github.com/chrishsmith/sourcify-sub003/internal/duty"
	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/navigator"
	"github.com/chrishsmith/sourcify-sub003/internal/rules"
	"github.com/chrishsmith/sourcify-sub003/internal/scoring"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
	"github.com/chrishsmith/sourcify-sub003/internal/understanding"
)

// Request is one classification request. Material, Use and ProductType
// are optional caller-supplied hints; Answers carries responses to
// questions from an earlier needs-input result, keyed by attribute name.
type Request struct {
	Description string
	Material    string
	Use         string
	ProductType string
	Answers     map[string]string
}

// Options tunes the engine. The zero value is usable.
type Options struct {
	// Weights overrides the scoring weights. Nil uses the defaults.
	Weights *scoring.Weights
	// OracleTimeout bounds a single oracle consultation.
	OracleTimeout time.Duration
}

// Engine wires the classification pipeline together. It is safe for
// concurrent use.
type Engine struct {
	store      service.HierarchyStore
	extractor  *understanding.Extractor
	chain      *rules.Chain
	router     *rules.MaterialRouter
	scorer     *scoring.Scorer
	navigator  *navigator.Navigator
	duty       *duty.Resolver
	confidence *confidence.Builder
	logger     *slog.Logger
}

// New builds an engine over the given hierarchy store and oracle. A nil
// oracle disables the oracle resolver; the deterministic resolvers still
// run and unresolvable requests surface questions instead.
func New(store service.HierarchyStore, oracle service.Oracle, opts Options, logger *slog.Logger) (*Engine, error) {
	if store == nil {
		return nil, fmt.Errorf("%w: hierarchy store is required", common.ErrInvalidConfig)
	}
	if logger == nil {
		logger = slog.Default()
	}

	weights := scoring.DefaultWeights()
	if opts.Weights != nil {
		if !opts.Weights.Validate() {
			return nil, fmt.Errorf("%w: scoring weights violate penalty ordering", common.ErrInvalidConfig)
		}
		weights = *opts.Weights
	}

	router, err := rules.NewMaterialRouter(logger)
	if err != nil {
		return nil, fmt.Errorf("failed to build material router: %w", err)
	}

	scorer := scoring.NewScorer(store, weights, logger)

	return &Engine{
		store:     store,
		extractor: understanding.NewExtractor(logger),
		chain: rules.NewChain(
			rules.NewOverrideResolver(logger),
			router,
			rules.NewOracleResolver(oracle, store, opts.OracleTimeout, logger),
		),
		router:     router,
		scorer:     scorer,
		navigator:  navigator.New(store, scorer, logger),
		duty:       duty.NewResolver(store, logger),
		confidence: confidence.NewBuilder(logger),
		logger:     logger,
	}, nil
}

// Classify runs the full pipeline for one request. It returns an error
// only for infrastructure failures and fatal oracle validation
// failures; a request the pipeline cannot resolve comes back as a
// needs-input result carrying clarifying questions.
func (e *Engine) Classify(ctx context.Context, req Request) (*model.ClassificationResult, error) {
	if req.Description == "" {
		return nil, common.NewUserError("product description is required", common.ErrInvalidConfig)
	}

	logger := e.logger.With("request_id", uuid.New().String())
	logger.Info("classification started", "description", req.Description)

	u := e.extractor.Extract(req.Description, understanding.Hints{
		Material:    req.Material,
		Use:         req.Use,
		ProductType: req.ProductType,
		Answers:     req.Answers,
	})

	route, err := e.chain.Resolve(ctx, u)
	if err != nil {
		switch {
		case errors.Is(err, common.ErrInvalidOracleCode):
			// Fatal: the oracle answered with codes outside the
			// hierarchy, and retrying cannot fix that.
			return nil, err
		case errors.Is(err, common.ErrOracleUnavailable), errors.Is(err, common.ErrOracleMalformed):
			logger.Warn("oracle gave no usable route, asking for input", "error", err)
			return e.needsInput(u), nil
		default:
			return nil, err
		}
	}
	if route == nil {
		logger.Info("no heading resolved, asking for input")
		return e.needsInput(u), nil
	}

	e.applyRoute(ctx, u, route, logger)

	path, err := e.navigator.Navigate(ctx, route.Heading, route.Confidence, u)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrClassificationFailed, err)
	}

	pool, err := e.gatherPool(ctx, u, path)
	if err != nil {
		return nil, err
	}
	if len(pool) == 0 {
		logger.Info("empty candidate pool, asking for input")
		return e.needsInput(u), nil
	}

	ranked := e.scorer.RankResult(pool, u)
	if !ranked.Success {
		return nil, common.ErrNoCandidates
	}
	best := ranked.BestMatch

	scoreGap := 0.0
	if len(ranked.Alternatives) > 0 {
		scoreGap = best.MatchScore - ranked.Alternatives[0].MatchScore
	}

	node, err := e.store.GetNode(ctx, best.HtsCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load selected node: %w", err)
	}
	if node == nil {
		return nil, fmt.Errorf("%w: selected code %s", common.ErrDatabaseCorrupted, best.HtsCode)
	}

	rate, err := e.duty.Resolve(ctx, node)
	if err != nil {
		return nil, err
	}

	questions := e.confidence.Questions(u)
	overall := e.confidence.Overall(u, scoreGap, questions)

	result := &model.ClassificationResult{
		HtsCode:         best.HtsCode,
		Description:     best.Description,
		Confidence:      overall,
		ConfidenceLabel: model.LabelForConfidence(overall),
		Hierarchy:       path,
		Alternatives:    ranked.Alternatives,
		Transparency:    e.confidence.Transparency(u),
		Duty:            *rate,
		Justification:   route.Justification,
	}

	logger.Info("classification complete",
		"hts_code", result.HtsCode,
		"confidence", result.Confidence,
		"label", result.ConfidenceLabel,
		"duty", result.Duty.Normalized,
		"route_source", route.Source)
	return result, nil
}

// applyRoute folds the resolved route back into the understanding. The
// route's chapter joins the suggested set, and when a legal override
// diverted the product away from its material's chapter, that chapter
// is flagged as a wrong category so scoring penalizes regressions into
// it.
func (e *Engine) applyRoute(ctx context.Context, u *model.ProductUnderstanding, route *rules.HeadingRoute, logger *slog.Logger) {
	if !u.InSuggestedChapters(route.Chapter) {
		u.SuggestedChapters = append([]string{route.Chapter}, u.SuggestedChapters...)
	}

	if !strings.HasPrefix(route.Source, "legal-override") {
		return
	}
	materialRoute, err := e.router.Resolve(ctx, u)
	if err != nil || materialRoute == nil {
		return
	}
	if materialRoute.Chapter != route.Chapter && !u.ShouldAvoidChapter(materialRoute.Chapter) {
		u.AvoidChapters = append(u.AvoidChapters, materialRoute.Chapter)
		logger.Debug("material chapter flagged as wrong category",
			"avoided", materialRoute.Chapter,
			"override", route.Chapter)
	}
}

// gatherPool merges the search-derived candidate pool with the
// navigator's terminal node, so the path's endpoint always competes in
// the ranking.
func (e *Engine) gatherPool(ctx context.Context, u *model.ProductUnderstanding, path *model.TreePath) ([]model.HtsNode, error) {
	pool, err := e.scorer.GatherCandidates(ctx, u)
	if err != nil {
		return nil, err
	}

	for _, n := range pool {
		if n.Code == path.FinalCode {
			return pool, nil
		}
	}
	terminal, err := e.store.GetNode(ctx, path.FinalCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load navigation terminal: %w", err)
	}
	if terminal != nil {
		pool = append(pool, *terminal)
	}
	return pool, nil
}

// needsInput builds the result returned when classification cannot
// proceed without more information from the caller.
func (e *Engine) needsInput(u *model.ProductUnderstanding) *model.ClassificationResult {
	questions := e.confidence.Questions(u)
	if len(questions) == 0 {
		// The pipeline stalled for reasons other than missing
		// attributes; a fuller description is the most likely fix.
		questions = append(questions, model.DecisionPoint{
			ID:        "description",
			Attribute: "description",
			Question:  "Can you describe the product in more detail, including its primary material?",
			Impact:    model.ImpactHigh,
		})
	}
	return &model.ClassificationResult{
		NeedsInput:   true,
		Questions:    questions,
		Transparency: e.confidence.Transparency(u),
	}
}
