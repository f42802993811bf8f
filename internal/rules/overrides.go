package rules

import (
	"context"
	"log/slog"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// overrideRule maps one boolean function flag to a fixed chapter and
// heading, as mandated by the General Rules of Interpretation where
// function overrides material.
type overrideRule struct {
	name          string
	applies       func(*model.ProductUnderstanding) bool
	chapter       string
	heading       string
	justification string
}

// legalOverrides is the closed list of function-over-material rules, in
// fixed priority order. Do not add material-specific routing here; that
// belongs in the material router. Every entry must cite its legal basis.
var legalOverrides = []overrideRule{
	{
		name:          "carrying-articles",
		applies:       func(u *model.ProductUnderstanding) bool { return u.IsForCarrying },
		chapter:       "42",
		heading:       "4202",
		justification: "Cases, bags and similar containers are classified under heading 4202 by their carrying function, regardless of constituent material.",
	},
	{
		name:          "toys",
		applies:       func(u *model.ProductUnderstanding) bool { return u.IsToy },
		chapter:       "95",
		heading:       "9503",
		justification: "Articles intended for play are classified as toys under heading 9503 regardless of material.",
	},
	{
		name:          "imitation-jewelry",
		applies:       func(u *model.ProductUnderstanding) bool { return u.IsJewelry },
		chapter:       "71",
		heading:       "7117",
		justification: "Imitation jewelry is classified under heading 7117 by its adornment function, regardless of material.",
	},
}

// OverrideResolver checks the legally mandated function-over-material
// rules. First matching rule wins; nil when none match.
type OverrideResolver struct {
	logger *slog.Logger
}

// NewOverrideResolver creates the legal override resolver.
func NewOverrideResolver(logger *slog.Logger) *OverrideResolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &OverrideResolver{logger: logger}
}

// Name implements HeadingResolver.
func (r *OverrideResolver) Name() string { return "legal-override" }

// Resolve implements HeadingResolver.
func (r *OverrideResolver) Resolve(_ context.Context, u *model.ProductUnderstanding) (*HeadingRoute, error) {
	for _, rule := range legalOverrides {
		if rule.applies(u) {
			r.logger.Info("legal override applied",
				"rule", rule.name,
				"chapter", rule.chapter,
				"heading", rule.heading)
			return &HeadingRoute{
				Chapter:       rule.chapter,
				Heading:       rule.heading,
				Justification: rule.justification,
				Source:        "legal-override:" + rule.name,
				Confidence:    0.95,
			}, nil
		}
	}
	return nil, nil
}
