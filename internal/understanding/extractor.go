// Package understanding turns free-text product descriptions into
// structured attributes and function flags for classification.
package understanding

import (
	"log/slog"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/common"
	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// Hints are attribute values supplied explicitly by the caller. They are
// tagged stated and always take precedence over anything derived from
// the description text.
type Hints struct {
	Material    string
	Use         string
	ProductType string
	// Answers carries responses to previously surfaced questions, keyed
	// by attribute name.
	Answers map[string]string
}

// Extractor derives a ProductUnderstanding from description text and
// hints. It never returns an error: unresolved attributes degrade to
// "unknown" with source assumed, which downstream components treat as a
// trigger for a question or oracle consultation.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor creates an extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Extractor{logger: logger}
}

// Extract builds the understanding for one classification request.
func (e *Extractor) Extract(description string, hints Hints) *model.ProductUnderstanding {
	text := strings.ToLower(strings.TrimSpace(description))

	u := &model.ProductUnderstanding{
		Description: description,
		Sources:     make(map[string]model.AttributeSource),
	}

	e.resolveProductType(u, text, hints)
	e.resolveMaterial(u, text, hints)
	e.resolveUseContext(u, text, hints)

	u.Keywords = extractKeywords(text)

	// Function flags are pure membership tests against fixed vocabularies.
	u.IsForCarrying = containsAny(text, carryingPhrases)
	u.IsToy = containsAny(text, toyTerms)
	u.IsJewelry = containsAny(text, jewelryTerms)
	u.IsWearable = containsAny(text, wearableTerms)
	u.IsLighting = containsAny(text, lightingTerms)
	u.IsHousehold = containsAny(text, householdTerms)
	u.IsFinished = !containsAny(text, rawMaterialTerms)

	e.resolveConstruction(u, text)
	e.resolveGenderAge(u, text)

	// Answers from a previous round override anything above, as stated.
	e.applyAnswers(u, hints.Answers)

	e.logger.Debug("extracted product understanding",
		"product_type", u.ProductType,
		"material", u.Material,
		"material_source", u.MaterialSource,
		"use_context", u.UseContext,
		"suggested_chapters", u.SuggestedChapters)

	return u
}

func (e *Extractor) resolveProductType(u *model.ProductUnderstanding, text string, hints Hints) {
	if hints.ProductType != "" {
		u.ProductType = strings.ToLower(strings.TrimSpace(hints.ProductType))
		u.CoreTerm = u.ProductType
		u.Sources["productType"] = model.SourceStated
		u.ProductConfidence = 1.0
		if chapters, ok := productTypes[u.CoreTerm]; ok {
			u.SuggestedChapters = chapters
		}
		return
	}

	// Scan for a known product noun; the last match wins because English
	// descriptions put the head noun after its modifiers ("ceramic coffee
	// mug" -> mug).
	words := strings.Fields(text)
	for _, w := range words {
		w = strings.Trim(w, ".,;:()")
		if chapters, ok := productTypes[w]; ok {
			u.ProductType = w
			u.CoreTerm = w
			u.SuggestedChapters = chapters
			u.Sources["productType"] = model.SourceInferred
			u.ProductConfidence = 0.9
		}
	}
	if u.ProductType != "" {
		return
	}

	// No known noun: assume the last non-stopword is the product.
	for i := len(words) - 1; i >= 0; i-- {
		w := strings.Trim(words[i], ".,;:()")
		if w != "" && !stopWords[w] {
			u.ProductType = w
			u.CoreTerm = w
			u.Sources["productType"] = model.SourceAssumed
			u.ProductConfidence = 0.4
			return
		}
	}

	u.ProductType = "unknown"
	u.Sources["productType"] = model.SourceAssumed
	u.ProductConfidence = 0.2
}

func (e *Extractor) resolveMaterial(u *model.ProductUnderstanding, text string, hints Hints) {
	if hints.Material != "" {
		u.Material = strings.ToLower(strings.TrimSpace(hints.Material))
		u.MaterialSource = model.SourceStated
		u.Sources["material"] = model.SourceStated
		return
	}

	for _, m := range materialTerms {
		if common.ContainsToken(text, m) {
			u.Material = m
			u.MaterialSource = model.SourceInferred
			u.Sources["material"] = model.SourceInferred
			return
		}
	}

	u.Material = model.MaterialUnknown
	u.MaterialSource = model.SourceAssumed
	u.Sources["material"] = model.SourceAssumed
}

func (e *Extractor) resolveUseContext(u *model.ProductUnderstanding, text string, hints Hints) {
	if hints.Use != "" {
		u.UseContext = strings.ToLower(strings.TrimSpace(hints.Use))
		u.Sources["useContext"] = model.SourceStated
		if containsAny(u.UseContext, householdTerms) {
			u.IsHousehold = true
		}
		return
	}

	if containsAny(text, householdTerms) {
		u.UseContext = "household"
		u.Sources["useContext"] = model.SourceInferred
		return
	}

	u.UseContext = "general"
	u.Sources["useContext"] = model.SourceAssumed
}

func (e *Extractor) resolveConstruction(u *model.ProductUnderstanding, text string) {
	switch {
	case containsAny(text, knitTerms):
		u.Construction = "knit"
		u.Sources["construction"] = model.SourceInferred
	case containsAny(text, wovenTerms):
		u.Construction = "woven"
		u.Sources["construction"] = model.SourceInferred
	}
}

func (e *Extractor) resolveGenderAge(u *model.ProductUnderstanding, text string) {
	for phrase, normalized := range genderAgeTerms {
		if common.ContainsToken(text, phrase) {
			// Prefer the more specific scope when several match, e.g.
			// "women's infant care kit" stays scoped to infant.
			if u.GenderAge == "" || normalized == "infant" || normalized == "children" {
				u.GenderAge = normalized
				u.Sources["genderAge"] = model.SourceInferred
			}
		}
	}
}

// applyAnswers marks answered attributes as stated and applies their values.
func (e *Extractor) applyAnswers(u *model.ProductUnderstanding, answers map[string]string) {
	for attr, value := range answers {
		value = strings.ToLower(strings.TrimSpace(value))
		if value == "" {
			continue
		}
		switch attr {
		case "material":
			u.Material = value
			u.MaterialSource = model.SourceStated
		case "useContext":
			u.UseContext = value
			if containsAny(value, householdTerms) {
				u.IsHousehold = true
			}
		case "productType":
			u.ProductType = value
			u.CoreTerm = value
			u.ProductConfidence = 1.0
			if chapters, ok := productTypes[value]; ok {
				u.SuggestedChapters = chapters
			}
		case "construction":
			u.Construction = value
		case "genderAge":
			u.GenderAge = value
		default:
			continue
		}
		u.Sources[attr] = model.SourceStated
	}
}

// extractKeywords returns the ordered set of non-stopword tokens.
func extractKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, w := range strings.Fields(text) {
		w = strings.Trim(w, ".,;:()\"'")
		if w == "" || stopWords[w] || seen[w] {
			continue
		}
		seen[w] = true
		keywords = append(keywords, w)
	}
	return keywords
}

// containsAny reports whether any vocabulary term appears in the text
// on word boundaries. Boundary matching matters for the short terms:
// "ring" inside "measuring" or "hat" inside "that" must not count.
func containsAny(text string, terms []string) bool {
	for _, t := range terms {
		if common.ContainsToken(text, t) {
			return true
		}
	}
	return false
}
