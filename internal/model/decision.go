package model

// Impact grades how much an unresolved attribute can change the outcome.
type Impact string

// Impact constants.
const (
	ImpactHigh   Impact = "high"
	ImpactMedium Impact = "medium"
	ImpactLow    Impact = "low"
)

// DecisionOption is one answer a user can give to a decision point,
// optionally carrying the HTS impact the answer implies.
type DecisionOption struct {
	Value     string
	Label     string
	HtsImpact string
}

// DecisionPoint is a clarifying question produced when an attribute is
// both unresolved and capable of changing the classification outcome.
type DecisionPoint struct {
	ID        string
	Attribute string
	Question  string
	Options   []DecisionOption
	Impact    Impact
}
