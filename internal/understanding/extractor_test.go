package understanding

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

func TestExtractCeramicMug(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Extract("ceramic coffee mug", Hints{})

	assert.Equal(t, "mug", u.ProductType)
	assert.Equal(t, "mug", u.CoreTerm)
	assert.Equal(t, model.SourceInferred, u.AttributeSourceOf("productType"))
	assert.InDelta(t, 0.9, u.ProductConfidence, 0.0001)

	assert.Equal(t, "ceramic", u.Material)
	assert.Equal(t, model.SourceInferred, u.MaterialSource)

	// "coffee mug" is in the household vocabulary.
	assert.Equal(t, "household", u.UseContext)
	assert.True(t, u.IsHousehold)
	assert.True(t, u.IsFinished)
	assert.False(t, u.IsForCarrying)

	assert.Equal(t, []string{"69", "70", "39"}, u.SuggestedChapters)
	assert.Equal(t, []string{"ceramic", "coffee", "mug"}, u.Keywords)
}

func TestExtractLastNounWins(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Extract("glass bottle brush", Hints{})

	// The head noun follows its modifiers.
	assert.Equal(t, "brush", u.ProductType)
	assert.Equal(t, []string{"96"}, u.SuggestedChapters)
}

func TestExtractMaterialPriority(t *testing.T) {
	e := NewExtractor(nil)

	// Porcelain outranks ceramic when both appear.
	u := e.Extract("porcelain ceramic teapot", Hints{})
	assert.Equal(t, "porcelain", u.Material)

	// Stainless steel outranks bare steel.
	u = e.Extract("stainless steel travel bottle", Hints{})
	assert.Equal(t, "stainless steel", u.Material)
}

func TestExtractUnknownMaterial(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Extract("decorative mug", Hints{})

	assert.Equal(t, model.MaterialUnknown, u.Material)
	assert.Equal(t, model.SourceAssumed, u.MaterialSource)
}

func TestExtractHintsAreStated(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Extract("decorative drinking vessel", Hints{
		Material:    "Ceramic",
		Use:         "household",
		ProductType: "mug",
	})

	assert.Equal(t, "ceramic", u.Material)
	assert.Equal(t, model.SourceStated, u.MaterialSource)
	assert.Equal(t, "mug", u.ProductType)
	assert.Equal(t, model.SourceStated, u.AttributeSourceOf("productType"))
	assert.InDelta(t, 1.0, u.ProductConfidence, 0.0001)
	assert.Equal(t, model.SourceStated, u.AttributeSourceOf("useContext"))
	assert.True(t, u.IsHousehold)
}

func TestExtractAssumedFallback(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Extract("thingamajig", Hints{})

	assert.Equal(t, "thingamajig", u.ProductType)
	assert.Equal(t, model.SourceAssumed, u.AttributeSourceOf("productType"))
	assert.InDelta(t, 0.4, u.ProductConfidence, 0.0001)
	assert.Empty(t, u.SuggestedChapters)
}

func TestExtractFunctionFlags(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, u *model.ProductUnderstanding)
	}{
		{
			name: "carrying",
			text: "canvas tool bag",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.True(t, u.IsForCarrying)
				assert.Equal(t, "canvas", u.Material)
			},
		},
		{
			name: "toy",
			text: "plush dinosaur toy",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.True(t, u.IsToy)
			},
		},
		{
			name: "jewelry",
			text: "beaded charm bracelet",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.True(t, u.IsJewelry)
			},
		},
		{
			name: "raw material is not finished",
			text: "aluminum ingot",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.False(t, u.IsFinished)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, e.Extract(tt.text, Hints{}))
		})
	}
}

// Short vocabulary terms must only fire as whole words. A "ring" hit
// inside "measuring" would hand an ordinary kitchen article to the
// imitation-jewelry override.
func TestFunctionFlagsMatchWholeWords(t *testing.T) {
	e := NewExtractor(nil)

	tests := []struct {
		name  string
		text  string
		check func(t *testing.T, u *model.ProductUnderstanding)
	}{
		{
			name: "measuring cup is not jewelry",
			text: "stainless steel measuring cup",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.False(t, u.IsJewelry)
				assert.Equal(t, "stainless steel", u.Material)
			},
		},
		{
			name: "spring clamp is not jewelry",
			text: "spring clamp",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.False(t, u.IsJewelry)
			},
		},
		{
			name: "string is not jewelry",
			text: "ball of string",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.False(t, u.IsJewelry)
			},
		},
		{
			name: "that is not a hat",
			text: "bracket that mounts on walls",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.False(t, u.IsWearable)
			},
		},
		{
			name: "toyota part is not a toy",
			text: "toyota brake pad",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.False(t, u.IsToy)
			},
		},
		{
			name: "straw basket is finished",
			text: "straw basket",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.True(t, u.IsFinished)
			},
		},
		{
			name: "gold ring still is jewelry",
			text: "gold ring",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.True(t, u.IsJewelry)
			},
		},
		{
			name: "straw hat still is wearable",
			text: "straw hat",
			check: func(t *testing.T, u *model.ProductUnderstanding) {
				assert.True(t, u.IsWearable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, e.Extract(tt.text, Hints{}))
		})
	}
}

func TestExtractConstructionAndGenderAge(t *testing.T) {
	e := NewExtractor(nil)

	u := e.Extract("women's knitted wool sweater", Hints{})
	assert.Equal(t, "knit", u.Construction)
	assert.Equal(t, "women", u.GenderAge)

	// The more specific age scope wins over gender.
	u = e.Extract("women's baby carrier wrap", Hints{})
	assert.Equal(t, "infant", u.GenderAge)

	u = e.Extract("woven cotton placemat", Hints{})
	assert.Equal(t, "woven", u.Construction)
}

func TestExtractAppliesAnswers(t *testing.T) {
	e := NewExtractor(nil)
	u := e.Extract("decorative mug", Hints{
		Answers: map[string]string{
			"material":   "glass",
			"useContext": "household",
		},
	})

	require.Equal(t, "glass", u.Material)
	assert.Equal(t, model.SourceStated, u.MaterialSource)
	assert.Equal(t, model.SourceStated, u.AttributeSourceOf("material"))
	assert.Equal(t, "household", u.UseContext)
	assert.True(t, u.IsHousehold)
}
