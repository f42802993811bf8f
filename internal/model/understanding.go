package model

// AttributeSource records how an attribute value was obtained.
type AttributeSource string

// Attribute source constants.
const (
	// SourceStated marks values supplied explicitly by the caller.
	SourceStated AttributeSource = "stated"
	// SourceInferred marks values derived from the description text.
	SourceInferred AttributeSource = "inferred"
	// SourceAssumed marks values synthesized only to allow progress.
	SourceAssumed AttributeSource = "assumed"
)

// MaterialUnknown is the sentinel material when nothing could be resolved.
// Downstream components must treat it as a trigger for a clarifying
// question or oracle consultation, never as a silent default.
const MaterialUnknown = "unknown"

// ProductUnderstanding is the structured interpretation of a free-text
// product description. It is created fresh per classification request
// and never persisted.
type ProductUnderstanding struct {
	Description    string
	ProductType    string
	CoreTerm       string
	Material       string
	MaterialSource AttributeSource
	UseContext     string
	Keywords       []string

	// Function flags derived from fixed vocabularies.
	IsForCarrying bool
	IsToy         bool
	IsJewelry     bool
	IsWearable    bool
	IsLighting    bool
	IsHousehold   bool
	IsFinished    bool

	// Textile construction, "knit" or "woven" when detected.
	Construction string
	// Gender or age scope detected in the description ("men", "women",
	// "infant", "children", "adult"), empty when unscoped.
	GenderAge string

	// Chapters the product plausibly belongs to, and chapters flagged
	// as wrong categories by the router or oracle.
	SuggestedChapters []string
	AvoidChapters     []string

	// ProductConfidence is how certain the extractor is about what the
	// product fundamentally is, in [0,1].
	ProductConfidence float64

	// Sources maps every attribute name that may influence scoring to
	// how its value was obtained.
	Sources map[string]AttributeSource
}

// InSuggestedChapters reports whether the given chapter is in the
// understanding's suggested set.
func (u *ProductUnderstanding) InSuggestedChapters(chapter string) bool {
	for _, c := range u.SuggestedChapters {
		if c == chapter {
			return true
		}
	}
	return false
}

// ShouldAvoidChapter reports whether the chapter was flagged as a wrong
// category for this product.
func (u *ProductUnderstanding) ShouldAvoidChapter(chapter string) bool {
	for _, c := range u.AvoidChapters {
		if c == chapter {
			return true
		}
	}
	return false
}

// AttributeSourceOf returns the recorded source for an attribute,
// defaulting to assumed when the attribute was never recorded.
func (u *ProductUnderstanding) AttributeSourceOf(name string) AttributeSource {
	if u.Sources == nil {
		return SourceAssumed
	}
	if src, ok := u.Sources[name]; ok {
		return src
	}
	return SourceAssumed
}
