// Package navigator descends the tariff hierarchy from a starting
// heading to a terminal statistical code, selecting one child per level.
package navigator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/scoring"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

const (
	// materialMatchConfidence is the local confidence when a child's
	// description names the product material directly.
	materialMatchConfidence = 0.95
	// singleChildConfidence applies when there is no runner-up to
	// measure a margin against.
	singleChildConfidence = 0.9
	// incompleteConfidenceCap bounds the confidence of a path that
	// never left its starting node.
	incompleteConfidenceCap = 0.5
	// minLocalConfidence / maxLocalConfidence clamp the margin-derived
	// confidence of a scored selection.
	minLocalConfidence = 0.5
	maxLocalConfidence = 0.95
	// maxDepth guards against malformed hierarchies; a well-formed tree
	// terminates within five levels.
	maxDepth = 6
)

// Navigator walks the hierarchy one level at a time.
type Navigator struct {
	store  service.HierarchyStore
	scorer *scoring.Scorer
	logger *slog.Logger
}

// New creates a navigator.
func New(store service.HierarchyStore, scorer *scoring.Scorer, logger *slog.Logger) *Navigator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Navigator{
		store:  store,
		scorer: scorer,
		logger: logger,
	}
}

// Navigate descends from startCode until it reaches a node with no
// children. startConfidence is the caller's confidence in the starting
// node (from the resolver that chose it) and becomes the first step's
// local confidence.
//
// A dead end at the very first level is reported, not fatal: the
// starting node comes back as an incomplete terminal path with
// confidence capped at 0.5.
func (n *Navigator) Navigate(ctx context.Context, startCode string, startConfidence float64, u *model.ProductUnderstanding) (*model.TreePath, error) {
	current, err := n.store.GetNode(ctx, startCode)
	if err != nil {
		return nil, fmt.Errorf("failed to load starting node %s: %w", startCode, err)
	}
	if current == nil {
		return nil, fmt.Errorf("starting node %s not in hierarchy", startCode)
	}

	path := &model.TreePath{
		Steps: []model.NavigationStep{{
			Level:       current.Level,
			Code:        current.Code,
			Description: current.Description,
			Confidence:  clamp(startConfidence, 0, 1),
		}},
	}

	for depth := 0; depth < maxDepth; depth++ {
		children, err := n.store.GetChildren(ctx, current.Code)
		if err != nil {
			return nil, fmt.Errorf("failed to load children of %s: %w", current.Code, err)
		}

		if len(children) == 0 {
			// Terminal. A heading with no subheadings is a valid
			// terminal too; only a dead end at the start caps confidence.
			path.FinalCode = current.Code
			path.Complete = depth > 0
			path.Confidence = path.MeanConfidence()
			if !path.Complete && path.Confidence > incompleteConfidenceCap {
				path.Confidence = incompleteConfidenceCap
			}
			n.logger.Debug("navigation finished",
				"final_code", path.FinalCode,
				"steps", len(path.Steps),
				"complete", path.Complete,
				"confidence", path.Confidence)
			return path, nil
		}

		next, confidence := n.selectChild(children, u)
		path.Steps = append(path.Steps, model.NavigationStep{
			Level:       next.Level,
			Code:        next.Code,
			Description: next.Description,
			Confidence:  confidence,
		})
		current = next
	}

	return nil, fmt.Errorf("navigation from %s exceeded maximum depth", startCode)
}

// selectChild picks one child. Known material short-circuits via direct
// description matching; otherwise the scoring heuristic ranks this
// level's children and the margin over the runner-up sets confidence.
func (n *Navigator) selectChild(children []model.HtsNode, u *model.ProductUnderstanding) (*model.HtsNode, float64) {
	if child := matchMaterial(children, u.Material); child != nil {
		return child, materialMatchConfidence
	}

	ranked := n.scorer.Rank(children, u)
	top := ranked[0]

	var selected *model.HtsNode
	for i := range children {
		if children[i].Code == top.HtsCode {
			selected = &children[i]
			break
		}
	}

	if len(ranked) == 1 {
		return selected, singleChildConfidence
	}

	margin := top.MatchScore - ranked[1].MatchScore
	confidence := clamp(minLocalConfidence+margin/100.0, minLocalConfidence, maxLocalConfidence)
	return selected, confidence
}

// matchMaterial returns the first child whose description contains the
// material in one of the generic tariff-text patterns.
func matchMaterial(children []model.HtsNode, material string) *model.HtsNode {
	if material == "" || material == model.MaterialUnknown {
		return nil
	}
	material = strings.ToLower(material)
	patterns := []string{
		"of " + material,
		material + ",",
		material + " ",
		": " + material,
	}
	for i := range children {
		desc := strings.ToLower(children[i].Description)
		for _, p := range patterns {
			if strings.Contains(desc, p) {
				return &children[i]
			}
		}
	}
	return nil
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
