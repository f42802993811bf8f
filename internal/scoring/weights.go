package scoring

import "github.com/chrishsmith/sourcify-sub003/internal/model"

// Weights holds the tunable scoring adjustments. The defaults are
// empirically tuned; their relative ordering matters more than the
// exact values (explicit-exclusion penalties > wrong-category flags >
// generic mismatches) and callers may override them from configuration
// pending calibration against a labeled dataset.
type Weights struct {
	ExactCoreMatch        float64
	PartialOverlapBase    float64
	PartialOverlapPerTerm float64
	RawMaterialPenalty    float64
	AvoidChapterPenalty   float64
	NotHouseholdPenalty   float64
	HouseholdBonus        float64
	HouseholdBonusStrong  float64
	CommercialPenalty     float64
	CommercialPenaltyMax  float64
	MaterialMatch         float64
	ConstructionMatch     float64
	ConstructionMismatch  float64
	GenderAgeMatch        float64
	AgeScopeMismatch      float64
	SuggestedChapterBonus float64
	OutsideChapterPenalty float64
	SpecialProgramPenalty float64
	LevelBonus            map[model.Level]float64
}

// DefaultWeights returns the standard scoring weights.
func DefaultWeights() Weights {
	return Weights{
		ExactCoreMatch:        80,
		PartialOverlapBase:    30,
		PartialOverlapPerTerm: 5,
		RawMaterialPenalty:    -30,
		AvoidChapterPenalty:   -150,
		NotHouseholdPenalty:   -200,
		HouseholdBonus:        40,
		HouseholdBonusStrong:  50,
		CommercialPenalty:     -80,
		CommercialPenaltyMax:  -100,
		MaterialMatch:         25,
		ConstructionMatch:     20,
		ConstructionMismatch:  -30,
		GenderAgeMatch:        10,
		AgeScopeMismatch:      -50,
		SuggestedChapterBonus: 40,
		OutsideChapterPenalty: -25,
		SpecialProgramPenalty: -100,
		LevelBonus: map[model.Level]float64{
			model.LevelStatistical: 50,
			model.LevelTariffLine:  35,
			model.LevelSubheading:  15,
			model.LevelHeading:     -20,
			model.LevelChapter:     -50,
		},
	}
}

// Validate checks that overrides preserve the required ordering of the
// dominant penalties: explicit household exclusions must dominate
// wrong-category flags, which must dominate special-program demotions.
func (w Weights) Validate() bool {
	return w.NotHouseholdPenalty <= w.AvoidChapterPenalty &&
		w.AvoidChapterPenalty <= w.SpecialProgramPenalty &&
		w.SpecialProgramPenalty < 0
}
