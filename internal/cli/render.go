package cli

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/chrishsmith/sourcify-sub003/internal/model"
)

// RenderResult formats a classification result for the terminal. When
// the result needs more input, the open questions are rendered instead.
func RenderResult(result *model.ClassificationResult) string {
	if result.NeedsInput {
		return renderQuestions(result)
	}

	var b strings.Builder

	confStyle := styleForLabel(result.ConfidenceLabel)
	header := fmt.Sprintf("%s  %s",
		CodeStyle.Render(model.FormatCode(result.HtsCode)),
		confStyle.Render(fmt.Sprintf("%.0f%% %s", result.Confidence*100, result.ConfidenceLabel)))

	b.WriteString(BoxStyle.Render(header + "\n" + result.Description))
	b.WriteString("\n\n")

	if result.Duty.Normalized != "" {
		b.WriteString(BoldStyle.Render("Duty: "))
		b.WriteString(result.Duty.Normalized)
		if result.Duty.InheritedFrom != "" {
			b.WriteString(SubtleStyle.Render(fmt.Sprintf(" (inherited from %s)", model.FormatCode(result.Duty.InheritedFrom))))
		}
		b.WriteString("\n\n")
	}

	if result.Hierarchy != nil {
		b.WriteString(TitleStyle.Render("Classification path"))
		b.WriteString("\n")
		for i, step := range result.Hierarchy.Steps {
			indent := strings.Repeat("  ", i)
			b.WriteString(fmt.Sprintf("%s%s %s %s\n",
				indent,
				CodeStyle.Render(model.FormatCode(step.Code)),
				truncate(step.Description, 70),
				SubtleStyle.Render(fmt.Sprintf("(%.0f%%)", step.Confidence*100))))
		}
		b.WriteString("\n")
	}

	if len(result.Alternatives) > 0 {
		b.WriteString(TitleStyle.Render("Alternatives"))
		b.WriteString("\n")
		for _, alt := range result.Alternatives {
			b.WriteString(fmt.Sprintf("  %s %s %s\n",
				CodeStyle.Render(model.FormatCode(alt.HtsCode)),
				truncate(alt.Description, 60),
				SubtleStyle.Render(fmt.Sprintf("score %.0f", alt.MatchScore))))
		}
		b.WriteString("\n")
	}

	b.WriteString(renderTransparency(result.Transparency))

	if result.Justification != "" {
		b.WriteString(SubtleStyle.Render(result.Justification))
		b.WriteString("\n")
	}

	return b.String()
}

func renderQuestions(result *model.ClassificationResult) string {
	var b strings.Builder
	b.WriteString(WarningStyle.Render("More information is needed to classify this product."))
	b.WriteString("\n\n")
	for _, q := range result.Questions {
		b.WriteString(BoldStyle.Render(q.Question))
		b.WriteString("\n")
		for _, opt := range q.Options {
			line := fmt.Sprintf("  - %s", opt.Label)
			if opt.HtsImpact != "" {
				line += SubtleStyle.Render(" (" + opt.HtsImpact + ")")
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString(SubtleStyle.Render(fmt.Sprintf("  answer with --answer %s=<value>", q.Attribute)))
		b.WriteString("\n\n")
	}
	return b.String()
}

func renderTransparency(t model.Transparency) string {
	if t.Attributes() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(TitleStyle.Render("How attributes were determined"))
	b.WriteString("\n")
	writeBucket(&b, "stated", SuccessStyle, t.Stated)
	writeBucket(&b, "inferred", WarningStyle, t.Inferred)
	writeBucket(&b, "assumed", ErrorStyle, t.Assumed)
	b.WriteString("\n")
	return b.String()
}

func writeBucket(b *strings.Builder, label string, style lipgloss.Style, values map[string]string) {
	for _, attr := range []string{"material", "productType", "useContext", "construction", "genderAge"} {
		if v, ok := values[attr]; ok {
			b.WriteString(fmt.Sprintf("  %s: %s %s\n", attr, v, style.Render("["+label+"]")))
		}
	}
}

func styleForLabel(label model.ConfidenceLabel) lipgloss.Style {
	switch label {
	case model.ConfidenceHigh:
		return SuccessStyle
	case model.ConfidenceMedium:
		return WarningStyle
	default:
		return ErrorStyle
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
