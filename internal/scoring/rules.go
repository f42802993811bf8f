package scoring

import (
	"fmt"
	"strings"

	"github.com/chrishsmith/sourcify-sub003/internal/common"
	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// Adjustment is one rule's contribution to a candidate's score. A zero
// Delta with an empty Reason means the rule did not apply.
type Adjustment struct {
	Delta       float64
	Reason      string
	Uncertainty string
}

// Rule is a single named scoring heuristic. Rules are pure functions of
// (candidate, understanding, weights): identical inputs always produce
// identical adjustments, so each rule can be unit-tested with a minimal
// fixture.
type Rule struct {
	Name  string
	Apply func(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment
}

// Vocabulary used by the scoring rules.
var (
	rawMaterialWords   = []string{"raw", "scrap", "unprocessed", "waste"}
	householdWords     = []string{"household", "domestic", "kitchen", "kitchenware", "tableware", "table"}
	strongHouseholdSet = []string{"household", "domestic"}
	commercialWords    = []string{"commercial", "hotel", "restaurant", "industrial", "institutional"}
	notHouseholdSet    = []string{"not household", "other than household"}
	specialProgramSet  = []string{"subject to", "classifiable in"}
	infantWords        = []string{"infant", "infants", "babies", "baby", "children", "boys", "girls", "toddler"}
)

// defaultRules returns the scoring rules in their fixed application
// order. Order does not change the total, but it fixes the order of
// MatchReasons so results are reproducible.
func defaultRules() []Rule {
	return []Rule{
		{Name: "term-match", Apply: termMatch},
		{Name: "raw-material", Apply: rawMaterial},
		{Name: "avoid-chapter", Apply: avoidChapter},
		{Name: "not-household", Apply: notHousehold},
		{Name: "household-context", Apply: householdContext},
		{Name: "commercial-context", Apply: commercialContext},
		{Name: "material-term", Apply: materialTerm},
		{Name: "construction", Apply: construction},
		{Name: "gender-age", Apply: genderAge},
		{Name: "chapter-fit", Apply: chapterFit},
		{Name: "specificity", Apply: specificity},
		{Name: "special-program", Apply: specialProgram},
	}
}

// termMatch rewards an exact core-term hit, or partial keyword overlap
// when there is no exact hit.
func termMatch(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	desc := strings.ToLower(node.Description)

	if u.CoreTerm != "" && containsTerm(desc, u.CoreTerm) {
		return Adjustment{
			Delta:  w.ExactCoreMatch,
			Reason: fmt.Sprintf("description matches product term %q", u.CoreTerm),
		}
	}

	overlap := 0
	for _, kw := range u.Keywords {
		if containsTerm(desc, kw) {
			overlap++
		}
	}
	if overlap == 0 {
		return Adjustment{Uncertainty: "no term overlap with candidate description"}
	}
	return Adjustment{
		Delta:  w.PartialOverlapBase + w.PartialOverlapPerTerm*float64(overlap),
		Reason: fmt.Sprintf("%d keyword(s) overlap with description", overlap),
	}
}

// rawMaterial penalizes raw/scrap codes for finished goods.
func rawMaterial(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if !u.IsFinished {
		return Adjustment{}
	}
	desc := strings.ToLower(node.Description)
	for _, word := range rawMaterialWords {
		if containsWord(desc, word) {
			return Adjustment{
				Delta:  w.RawMaterialPenalty,
				Reason: fmt.Sprintf("raw-material code (%q) for a finished good", word),
			}
		}
	}
	return Adjustment{}
}

// avoidChapter demotes candidates in a chapter flagged as a wrong
// category for this product. The strongest negative signal short of the
// household trap: an identified wrong category must not surface as
// primary even with otherwise good matches.
func avoidChapter(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if u.ShouldAvoidChapter(node.Chapter()) {
		return Adjustment{
			Delta:  w.AvoidChapterPenalty,
			Reason: fmt.Sprintf("chapter %s flagged as wrong category", node.Chapter()),
		}
	}
	return Adjustment{}
}

// notHousehold penalizes household-context products matched against a
// code explicitly scoped away from household use. The "not household"
// phrasing is a known trap in tariff text and must dominate every other
// factor.
func notHousehold(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if !u.IsHousehold {
		return Adjustment{}
	}
	desc := strings.ToLower(node.Description)
	for _, phrase := range notHouseholdSet {
		if strings.Contains(desc, phrase) {
			return Adjustment{
				Delta:  w.NotHouseholdPenalty,
				Reason: fmt.Sprintf("code excludes household use (%q)", phrase),
			}
		}
	}
	return Adjustment{}
}

// householdContext rewards household vocabulary for a household product.
func householdContext(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if !u.IsHousehold {
		return Adjustment{}
	}
	desc := strings.ToLower(node.Description)
	for _, phrase := range notHouseholdSet {
		if strings.Contains(desc, phrase) {
			// The exclusion rule already handled this code.
			return Adjustment{}
		}
	}
	bonus := 0.0
	matched := ""
	for _, word := range householdWords {
		if containsWord(desc, word) {
			bonus = w.HouseholdBonus
			matched = word
			break
		}
	}
	if bonus == 0 {
		return Adjustment{}
	}
	for _, word := range strongHouseholdSet {
		if containsWord(desc, word) {
			bonus = w.HouseholdBonusStrong
			matched = word
			break
		}
	}
	return Adjustment{
		Delta:  bonus,
		Reason: fmt.Sprintf("household vocabulary match (%q)", matched),
	}
}

// commercialContext penalizes commercial-scoped codes for household
// products.
func commercialContext(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if !u.IsHousehold {
		return Adjustment{}
	}
	desc := strings.ToLower(node.Description)
	for _, word := range commercialWords {
		if containsWord(desc, word) {
			penalty := w.CommercialPenalty
			if word == "industrial" {
				penalty = w.CommercialPenaltyMax
			}
			return Adjustment{
				Delta:  penalty,
				Reason: fmt.Sprintf("commercial vocabulary (%q) for a household product", word),
			}
		}
	}
	return Adjustment{}
}

// materialTerm rewards candidates whose description names the material.
func materialTerm(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if u.Material == "" || u.Material == model.MaterialUnknown {
		return Adjustment{Uncertainty: "material unknown; material rule skipped"}
	}
	if strings.Contains(strings.ToLower(node.Description), u.Material) {
		return Adjustment{
			Delta:  w.MaterialMatch,
			Reason: fmt.Sprintf("description names material %q", u.Material),
		}
	}
	return Adjustment{}
}

// construction rewards knit/woven consistency and penalizes mismatch.
func construction(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if u.Construction == "" {
		return Adjustment{}
	}
	desc := strings.ToLower(node.Description)
	hasKnit := strings.Contains(desc, "knit")
	hasWoven := strings.Contains(desc, "woven") || strings.Contains(desc, "not knitted")

	switch u.Construction {
	case "knit":
		if hasKnit {
			return Adjustment{Delta: w.ConstructionMatch, Reason: "knit construction matches"}
		}
		if hasWoven {
			return Adjustment{Delta: w.ConstructionMismatch, Reason: "woven code for a knit product"}
		}
	case "woven":
		if hasWoven {
			return Adjustment{Delta: w.ConstructionMatch, Reason: "woven construction matches"}
		}
		if hasKnit {
			return Adjustment{Delta: w.ConstructionMismatch, Reason: "knit code for a woven product"}
		}
	}
	return Adjustment{}
}

// genderAge rewards gender/age term consistency and penalizes adult
// products against infant/child-scoped codes.
func genderAge(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if u.GenderAge == "" {
		return Adjustment{}
	}
	desc := strings.ToLower(node.Description)

	codeIsInfantScoped := false
	for _, word := range infantWords {
		if containsWord(desc, word) {
			codeIsInfantScoped = true
			break
		}
	}

	switch u.GenderAge {
	case "infant", "children":
		if codeIsInfantScoped {
			return Adjustment{Delta: w.GenderAgeMatch, Reason: "age scope matches"}
		}
	case "men", "women", "adult":
		if codeIsInfantScoped {
			return Adjustment{Delta: w.AgeScopeMismatch, Reason: "adult product against infant/child-scoped code"}
		}
		if containsWord(desc, u.GenderAge) || containsWord(desc, u.GenderAge+"'s") {
			return Adjustment{Delta: w.GenderAgeMatch, Reason: "gender scope matches"}
		}
	}
	return Adjustment{}
}

// chapterFit rewards candidates inside the suggested-chapter set and
// penalizes the rest. Skipped entirely when no chapters were suggested.
func chapterFit(node *model.HtsNode, u *model.ProductUnderstanding, w Weights) Adjustment {
	if len(u.SuggestedChapters) == 0 {
		return Adjustment{}
	}
	if u.InSuggestedChapters(node.Chapter()) {
		return Adjustment{
			Delta:  w.SuggestedChapterBonus,
			Reason: fmt.Sprintf("chapter %s is in the suggested set", node.Chapter()),
		}
	}
	return Adjustment{
		Delta:  w.OutsideChapterPenalty,
		Reason: fmt.Sprintf("chapter %s is outside the suggested set", node.Chapter()),
	}
}

// specificity prefers deeper hierarchy levels, all else equal.
func specificity(node *model.HtsNode, _ *model.ProductUnderstanding, w Weights) Adjustment {
	bonus, ok := w.LevelBonus[node.Level]
	if !ok {
		return Adjustment{}
	}
	return Adjustment{
		Delta:  bonus,
		Reason: fmt.Sprintf("specificity at %s level", node.Level),
	}
}

// specialProgram demotes trade-preference and program codes; they must
// never be the primary result.
func specialProgram(node *model.HtsNode, _ *model.ProductUnderstanding, w Weights) Adjustment {
	chapter := node.Chapter()
	if chapter == "98" || chapter == "99" {
		return Adjustment{
			Delta:  w.SpecialProgramPenalty,
			Reason: fmt.Sprintf("chapter %s is a special program chapter", chapter),
		}
	}
	desc := strings.ToLower(node.Description)
	for _, phrase := range specialProgramSet {
		if strings.Contains(desc, phrase) {
			return Adjustment{
				Delta:  w.SpecialProgramPenalty,
				Reason: fmt.Sprintf("special program language (%q)", phrase),
			}
		}
	}
	return Adjustment{}
}

// containsTerm matches a term as a whole word, also accepting its
// simple plural. Tariff text names articles in the plural ("mugs and
// steins") while product descriptions use the singular.
func containsTerm(text, term string) bool {
	if containsWord(text, term) {
		return true
	}
	return containsWord(text, term+"s")
}

// containsWord reports whether text contains term as a whole word.
func containsWord(text, term string) bool {
	return common.ContainsToken(text, term)
}
