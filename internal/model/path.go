package model

import (
	"fmt"
	"strings"
)

// NavigationStep records a single child selection during tree descent.
type NavigationStep struct {
	Level       Level
	Code        string
	Description string
	Confidence  float64 // local confidence in [0,1]
}

// TreePath is the result of a hierarchy descent: the ordered steps taken,
// the terminal code reached, and the aggregate confidence across steps.
type TreePath struct {
	Steps      []NavigationStep
	FinalCode  string
	Confidence float64
	// Complete is false when the descent stopped before a terminal node,
	// e.g. when the starting heading had no children.
	Complete bool
}

// Validate ensures every step's code is a prefix of the final code and
// that steps strictly deepen. A path violating this was assembled wrong.
func (p *TreePath) Validate() error {
	prevLen := 0
	for i, step := range p.Steps {
		if !strings.HasPrefix(p.FinalCode, step.Code) {
			return fmt.Errorf("step %d: code %s is not a prefix of final code %s", i, step.Code, p.FinalCode)
		}
		if len(step.Code) <= prevLen {
			return fmt.Errorf("step %d: code %s does not deepen the path", i, step.Code)
		}
		if step.Confidence < 0 || step.Confidence > 1 {
			return fmt.Errorf("step %d: confidence %.2f out of range", i, step.Confidence)
		}
		prevLen = len(step.Code)
	}
	return nil
}

// MeanConfidence returns the arithmetic mean of the step confidences.
// The mean, not the product, is the aggregate: long paths with uniformly
// high per-step certainty must not vanish toward zero.
func (p *TreePath) MeanConfidence() float64 {
	if len(p.Steps) == 0 {
		return 0
	}
	sum := 0.0
	for _, step := range p.Steps {
		sum += step.Confidence
	}
	return sum / float64(len(p.Steps))
}
