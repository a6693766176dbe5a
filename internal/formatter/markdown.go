package formatter

import (
	"fmt"
	"strings"

	"github.com/proofylabs/proofy/internal/forensic"
)

// markdownFormatter renders a verdict as a judicial-style Markdown report
type markdownFormatter struct{}

// NewMarkdown creates a new Markdown formatter
func NewMarkdown() Formatter {
	return &markdownFormatter{}
}

func (f *markdownFormatter) Format(result *forensic.AnalysisResult) ([]byte, error) {
	var b strings.Builder

	b.WriteString("# Judicial Forensic Report\n\n")
	fmt.Fprintf(&b, "Case Reference: `%s`\n\n", result.ID)
	fmt.Fprintf(&b, "Generated: %s\n\n", result.Timestamp.Format("2006-01-02 15:04:05 MST"))

	f.writeExhibitTable(&b, result)
	f.writeFindings(&b, result)

	if len(result.Explanations) > 0 {
		f.writeEvidenceSections(&b, result.Explanations)
	}

	f.writeRecommendation(&b, result)
	b.WriteString("---\n\n")
	b.WriteString("*This report was produced by automated neural analysis and does not constitute sworn expert testimony.*\n")

	return []byte(b.String()), nil
}

func (f *markdownFormatter) writeExhibitTable(b *strings.Builder, result *forensic.AnalysisResult) {
	b.WriteString("## Exhibit\n\n")
	b.WriteString("| Attribute | Value |\n")
	b.WriteString("|-----------|-------|\n")
	fmt.Fprintf(b, "| Name | %s |\n", result.FileMetadata.Name)
	fmt.Fprintf(b, "| Size | %s |\n", result.FileMetadata.Size)
	fmt.Fprintf(b, "| Type | %s |\n\n", result.FileMetadata.Type)
}

func (f *markdownFormatter) writeFindings(b *strings.Builder, result *forensic.AnalysisResult) {
	b.WriteString("## Findings\n\n")
	fmt.Fprintf(b, "**Verdict:** %s\n\n", result.Verdict)
	fmt.Fprintf(b, "**Fabrication Probability:** %.0f%%\n\n", result.DeepfakeProbability)
	fmt.Fprintf(b, "**Confidence:** %s\n\n", result.ConfidenceLevel)
	fmt.Fprintf(b, "%s\n\n", result.Summary)
}

func (f *markdownFormatter) writeEvidenceSections(b *strings.Builder, explanations []forensic.Explanation) {
	b.WriteString("## Evidence\n\n")

	byCategory := map[forensic.ExplanationCategory][]forensic.Explanation{}
	var order []forensic.ExplanationCategory
	for _, exp := range explanations {
		if _, seen := byCategory[exp.Category]; !seen {
			order = append(order, exp.Category)
		}
		byCategory[exp.Category] = append(byCategory[exp.Category], exp)
	}

	for _, cat := range order {
		fmt.Fprintf(b, "### %s\n\n", categoryTitle(cat))
		for i, exp := range byCategory[cat] {
			if exp.Timestamp != "" {
				fmt.Fprintf(b, "%d. **%s** (at %s)", i+1, exp.Point, exp.Timestamp)
			} else {
				fmt.Fprintf(b, "%d. **%s**", i+1, exp.Point)
			}
			if exp.Detail != "" {
				fmt.Fprintf(b, " — %s", exp.Detail)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}
}

func (f *markdownFormatter) writeRecommendation(b *strings.Builder, result *forensic.AnalysisResult) {
	b.WriteString("## Recommendation\n\n")
	if result.UserRecommendation != "" {
		fmt.Fprintf(b, "%s\n\n", result.UserRecommendation)
		return
	}
	b.WriteString("No further action recommended.\n\n")
}

func categoryTitle(cat forensic.ExplanationCategory) string {
	switch cat {
	case forensic.CategoryVisual:
		return "Visual Artifacts"
	case forensic.CategoryAudio:
		return "Audio Artifacts"
	case forensic.CategoryTemporal:
		return "Temporal Inconsistencies"
	default:
		return "Other Observations"
	}
}
