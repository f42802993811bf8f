// Package duty resolves the general duty rate for a classified code,
// falling back through the code's ancestors when the statistical line
// carries no rate of its own.
package duty

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
	"github.com/chrishsmith/sourcify-sub003/internal/service"
)

// Resolver looks up duty rates in the hierarchy store.
type Resolver struct {
	store  service.HierarchyStore
	logger *slog.Logger
}

// NewResolver creates a duty rate resolver.
func NewResolver(store service.HierarchyStore, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the duty rate for node. Statistical suffixes rarely
// carry their own rate, so resolution walks up to the tariff line
// (8 digits) and then the subheading (6 digits) before defaulting to
// "Free".
func (r *Resolver) Resolve(ctx context.Context, node *model.HtsNode) (*model.DutyRate, error) {
	if node == nil {
		return nil, fmt.Errorf("cannot resolve duty for nil node")
	}

	if norm := NormalizeRate(node.GeneralRate); norm != "" {
		return &model.DutyRate{
			Rate:       strings.TrimSpace(node.GeneralRate),
			Normalized: norm,
		}, nil
	}

	for _, prefixLen := range []int{8, 6} {
		if len(node.Code) <= prefixLen {
			continue
		}
		ancestor, err := r.store.GetNode(ctx, node.Code[:prefixLen])
		if err != nil {
			return nil, fmt.Errorf("failed to load ancestor of %s: %w", node.Code, err)
		}
		if ancestor == nil {
			continue
		}
		if norm := NormalizeRate(ancestor.GeneralRate); norm != "" {
			r.logger.Debug("duty rate inherited",
				"code", node.Code,
				"from", ancestor.Code,
				"rate", norm)
			return &model.DutyRate{
				Rate:          strings.TrimSpace(ancestor.GeneralRate),
				Normalized:    norm,
				InheritedFrom: ancestor.Code,
			}, nil
		}
	}

	return &model.DutyRate{Normalized: "Free"}, nil
}

// NormalizeRate canonicalizes a stored rate string. Free-equivalent
// spellings collapse to "Free", bare numerals gain a percent sign, and
// anything unrecognized passes through trimmed.
func NormalizeRate(rate string) string {
	rate = strings.TrimSpace(rate)
	if rate == "" {
		return ""
	}
	switch strings.ToLower(rate) {
	case "free", "0", "0%", "0.0%":
		return "Free"
	}
	if isNumeric(rate) {
		return rate + "%"
	}
	return rate
}

func isNumeric(s string) bool {
	dot := false
	for i := 0; i < len(s); i++ {
		switch {
		case s[i] >= '0' && s[i] <= '9':
		case s[i] == '.' && !dot:
			dot = true
		default:
			return false
		}
	}
	return true
}
