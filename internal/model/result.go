package model

// ConfidenceLabel buckets an overall confidence value for presentation.
type ConfidenceLabel string

// Confidence label constants.
const (
	ConfidenceHigh   ConfidenceLabel = "high"   // >= 0.8
	ConfidenceMedium ConfidenceLabel = "medium" // >= 0.6
	ConfidenceLow    ConfidenceLabel = "low"
)

// LabelForConfidence maps an overall confidence value to its label.
func LabelForConfidence(confidence float64) ConfidenceLabel {
	switch {
	case confidence >= 0.8:
		return ConfidenceHigh
	case confidence >= 0.6:
		return ConfidenceMedium
	default:
		return ConfidenceLow
	}
}

// DutyRate is the resolved duty for a code. Rate is the stored base
// rate string, Normalized its canonical display form, and InheritedFrom
// names the ancestor that supplied the rate when the code itself had none.
type DutyRate struct {
	Rate          string
	Normalized    string
	InheritedFrom string
}

// Transparency partitions every attribute that influenced scoring by how
// its value was obtained. Each attribute appears in exactly one bucket.
type Transparency struct {
	Stated   map[string]string
	Inferred map[string]string
	Assumed  map[string]string
}

// Attributes returns the total number of attributes across all buckets.
func (t *Transparency) Attributes() int {
	return len(t.Stated) + len(t.Inferred) + len(t.Assumed)
}

// ClassificationResult is the terminal object returned to the caller.
// Either NeedsInput is true and Questions is populated, or the full
// classification fields are.
type ClassificationResult struct {
	NeedsInput bool
	Questions  []DecisionPoint

	HtsCode         string
	Description     string
	Confidence      float64
	ConfidenceLabel ConfidenceLabel
	Hierarchy       *TreePath
	Alternatives    Candidates
	Transparency    Transparency
	Duty            DutyRate
	// Justification explains which rule or route selected the chapter
	// and heading, for audit purposes.
	Justification string
}
