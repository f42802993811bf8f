// Package model defines the core domain models used throughout the application.
package model

import (
	"fmt"
	"strings"
)

// Level identifies a node's depth in the tariff hierarchy.
type Level string

// Hierarchy level constants, from broadest to most specific.
const (
	LevelChapter     Level = "chapter"     // 2 digits
	LevelHeading     Level = "heading"     // 4 digits
	LevelSubheading  Level = "subheading"  // 6 digits
	LevelTariffLine  Level = "tariff_line" // 8 digits
	LevelStatistical Level = "statistical" // 10 digits
)

// levelDepth orders levels so deeper levels compare greater.
var levelDepth = map[Level]int{
	LevelChapter:     1,
	LevelHeading:     2,
	LevelSubheading:  3,
	LevelTariffLine:  4,
	LevelStatistical: 5,
}

// Depth returns the nesting depth of the level (chapter=1 .. statistical=5).
// Unknown levels return 0 so they sort below any real level.
func (l Level) Depth() int {
	return levelDepth[l]
}

// LevelForCode derives the hierarchy level from a code's digit count.
func LevelForCode(code string) Level {
	switch len(code) {
	case 2:
		return LevelChapter
	case 4:
		return LevelHeading
	case 6:
		return LevelSubheading
	case 8:
		return LevelTariffLine
	default:
		return LevelStatistical
	}
}

// HtsNode is a single entry in the Harmonized Tariff Schedule tree.
// Codes are stored unpadded; use FormatCode for display. Nodes are
// immutable once published by the hierarchy store.
type HtsNode struct {
	Code        string
	Level       Level
	Description string
	ParentCode  string // empty for chapters
	GeneralRate string // empty means "inherit from ancestor"
}

// IsChapter reports whether the node is a top-level chapter.
func (n *HtsNode) IsChapter() bool {
	return n.Level == LevelChapter
}

// Chapter returns the 2-digit chapter prefix of the node's code.
func (n *HtsNode) Chapter() string {
	if len(n.Code) < 2 {
		return n.Code
	}
	return n.Code[:2]
}

// Validate checks the structural invariants of a node: digit-only code,
// level consistent with code length, and a parent whose code is a strict
// prefix for every non-chapter node.
func (n *HtsNode) Validate() error {
	if n.Code == "" {
		return fmt.Errorf("node code is required")
	}
	for _, r := range n.Code {
		if r < '0' || r > '9' {
			return fmt.Errorf("node code %q contains non-digit characters", n.Code)
		}
	}
	if got := LevelForCode(n.Code); got != n.Level {
		return fmt.Errorf("node %s: level %s does not match code length %d", n.Code, n.Level, len(n.Code))
	}
	if n.Level == LevelChapter {
		if n.ParentCode != "" {
			return fmt.Errorf("chapter %s must not have a parent", n.Code)
		}
		return nil
	}
	if n.ParentCode == "" {
		return fmt.Errorf("node %s: non-chapter nodes require a parent", n.Code)
	}
	if !strings.HasPrefix(n.Code, n.ParentCode) || len(n.ParentCode) >= len(n.Code) {
		return fmt.Errorf("node %s: parent %s is not a strict prefix", n.Code, n.ParentCode)
	}
	return nil
}

// FormatCode zero-pads a code to ten digits and renders it in the
// conventional dotted form, e.g. "6912004810" -> "6912.00.48.10".
func FormatCode(code string) string {
	padded := code
	for len(padded) < 10 {
		padded += "0"
	}
	return fmt.Sprintf("%s.%s.%s.%s", padded[:4], padded[4:6], padded[6:8], padded[8:10])
}

// ParentCodeOf returns the code of the immediate ancestor level, or ""
// for chapters. Statistical suffixes collapse to the 8-digit tariff line,
// tariff lines to the 6-digit subheading, and so on.
func ParentCodeOf(code string) string {
	switch {
	case len(code) > 8:
		return code[:8]
	case len(code) > 6:
		return code[:6]
	case len(code) > 4:
		return code[:4]
	case len(code) > 2:
		return code[:2]
	default:
		return ""
	}
}
