// Package confidence computes the overall confidence of a
// classification, partitions attributes for transparency, and generates
// clarifying questions for unresolved high-impact attributes.
package confidence

import (
	"log/slog"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

const (
	baseConfidence = 0.5
	// attributeScale converts a signal's deviation from neutral into a
	// confidence adjustment.
	attributeScale = 0.4
	gapBonusStep   = 0.1
	gapThresholdLo = 20.0
	gapThresholdHi = 40.0
	// highImpactPenalty applies once when any high-impact question is open.
	highImpactPenalty = 0.15
)

// scoredAttributes are the understanding fields that influence scoring
// and therefore appear in the transparency report.
var scoredAttributes = []struct {
	name  string
	value func(*model.ProductUnderstanding) string
}{
	{"material", func(u *model.ProductUnderstanding) string { return u.Material }},
	{"productType", func(u *model.ProductUnderstanding) string { return u.ProductType }},
	{"useContext", func(u *model.ProductUnderstanding) string { return u.UseContext }},
	{"construction", func(u *model.ProductUnderstanding) string { return u.Construction }},
	{"genderAge", func(u *model.ProductUnderstanding) string { return u.GenderAge }},
}

// Builder assembles the confidence-related parts of a result.
type Builder struct {
	logger *slog.Logger
}

// NewBuilder creates a confidence builder.
func NewBuilder(logger *slog.Logger) *Builder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Builder{logger: logger}
}

// Overall computes the final confidence value. scoreGap is the margin
// between the best candidate and the runner-up; questions are the
// unresolved decision points that remain after any answers were applied.
func (b *Builder) Overall(u *model.ProductUnderstanding, scoreGap float64, questions []model.DecisionPoint) float64 {
	confidence := baseConfidence

	confidence += (u.ProductConfidence - 0.5) * attributeScale
	confidence += (statedProportion(u) - 0.5) * attributeScale

	if scoreGap > gapThresholdLo {
		confidence += gapBonusStep
	}
	if scoreGap > gapThresholdHi {
		confidence += gapBonusStep
	}

	// A flat penalty when anything high-impact is open, not one per
	// question: uncertainty about the product is the signal, not how
	// many forms it takes.
	for _, q := range questions {
		if q.Impact == model.ImpactHigh {
			confidence -= highImpactPenalty
			break
		}
	}

	if confidence < 0 {
		confidence = 0
	}
	if confidence > 1 {
		confidence = 1
	}

	b.logger.Debug("overall confidence computed",
		"confidence", confidence,
		"product_confidence", u.ProductConfidence,
		"stated_proportion", statedProportion(u),
		"score_gap", scoreGap,
		"open_questions", len(questions))
	return confidence
}

// Transparency partitions the scored attributes by how their values
// were obtained. Every non-empty attribute lands in exactly one bucket.
func (b *Builder) Transparency(u *model.ProductUnderstanding) model.Transparency {
	t := model.Transparency{
		Stated:   make(map[string]string),
		Inferred: make(map[string]string),
		Assumed:  make(map[string]string),
	}
	for _, attr := range scoredAttributes {
		value := attr.value(u)
		if value == "" {
			continue
		}
		switch u.AttributeSourceOf(attr.name) {
		case model.SourceStated:
			t.Stated[attr.name] = value
		case model.SourceInferred:
			t.Inferred[attr.name] = value
		default:
			t.Assumed[attr.name] = value
		}
	}
	return t
}

// Questions generates clarifying questions for attributes whose values
// had to be assumed and whose resolution could move the classification.
func (b *Builder) Questions(u *model.ProductUnderstanding) []model.DecisionPoint {
	var questions []model.DecisionPoint

	if u.Material == model.MaterialUnknown {
		questions = append(questions, model.DecisionPoint{
			ID:        "material",
			Attribute: "material",
			Question:  "What is the primary material of the product?",
			Options: []model.DecisionOption{
				{Value: "ceramic", Label: "Ceramic", HtsImpact: "Chapter 69"},
				{Value: "glass", Label: "Glass", HtsImpact: "Chapter 70"},
				{Value: "plastic", Label: "Plastic", HtsImpact: "Chapter 39"},
				{Value: "wood", Label: "Wood", HtsImpact: "Chapter 44"},
				{Value: "steel", Label: "Steel", HtsImpact: "Chapter 73"},
				{Value: "other", Label: "Other"},
			},
			Impact: model.ImpactHigh,
		})
	}

	if u.AttributeSourceOf("useContext") == model.SourceAssumed {
		questions = append(questions, model.DecisionPoint{
			ID:        "use_context",
			Attribute: "useContext",
			Question:  "Is the product for household or commercial use?",
			Options: []model.DecisionOption{
				{Value: "household", Label: "Household"},
				{Value: "commercial", Label: "Commercial or industrial"},
			},
			Impact: model.ImpactMedium,
		})
	}

	return questions
}

// statedProportion is the share of scored attributes whose values were
// taken directly from the request rather than inferred or assumed.
func statedProportion(u *model.ProductUnderstanding) float64 {
	total := 0
	stated := 0
	for _, attr := range scoredAttributes {
		if attr.value(u) == "" {
			continue
		}
		total++
		if u.AttributeSourceOf(attr.name) == model.SourceStated {
			stated++
		}
	}
	if total == 0 {
		return 0
	}
	return float64(stated) / float64(total)
}
