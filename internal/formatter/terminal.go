package formatter

import (
	"fmt"
	"strings"

	"github.com/yildizm/go-termfmt"

	"github.com/proofylabs/proofy/internal/forensic"
)

// terminalFormatter formats verdicts as plain text for terminal display using go-termfmt
type terminalFormatter struct {
	opts *termfmt.TerminalOptions
}

// NewTerminal creates a new terminal formatter with optional color support
func NewTerminal(color bool) Formatter {
	opts := termfmt.DefaultOptions()
	opts.Color = color
	opts.Emoji = true
	return &terminalFormatter{opts: opts}
}

func (f *terminalFormatter) Format(result *forensic.AnalysisResult) ([]byte, error) {
	var b strings.Builder

	f.writeHeader(&b, result)
	f.writeVerdict(&b, result)

	if len(result.Explanations) > 0 {
		f.writeEvidence(&b, result.Explanations)
	}

	if result.UserRecommendation != "" {
		f.writeRecommendation(&b, result)
	}

	return []byte(b.String()), nil
}

func (f *terminalFormatter) writeHeader(b *strings.Builder, result *forensic.AnalysisResult) {
	b.WriteString("╔══════════════════════════════════════════╗\n")
	b.WriteString("║         PROOFY FORENSIC VERDICT          ║\n")
	b.WriteString("╚══════════════════════════════════════════╝\n\n")
	fmt.Fprintf(b, "Exhibit: %s (%s, %s)\n\n",
		result.FileMetadata.Name, result.FileMetadata.Size, result.FileMetadata.Type)
}

func (f *terminalFormatter) writeVerdict(b *strings.Builder, result *forensic.AnalysisResult) {
	symbol := verdictSymbol(result.Verdict, f.opts)
	b.WriteString(symbol + " Verdict\n")

	items := []termfmt.TreeItem{
		{Label: "Verdict", Value: string(result.Verdict)},
		{Label: "Fabrication Probability", Value: fmt.Sprintf("%.0f%%", result.DeepfakeProbability)},
		{Label: "Confidence", Value: string(result.ConfidenceLevel)},
		{Label: "Summary", Value: result.Summary, Last: true},
	}

	tree := termfmt.TreeViewWithOptions(items, f.opts)
	b.WriteString(tree + "\n\n")
}

func (f *terminalFormatter) writeEvidence(b *strings.Builder, explanations []forensic.Explanation) {
	symbol := termfmt.GetEmoji("pattern", f.opts)
	b.WriteString(symbol + " Evidence\n")

	for i, exp := range explanations {
		branch := "├─"
		if i == len(explanations)-1 {
			branch = "└─"
		}
		marker := categoryMarker(exp.Category)
		if exp.Timestamp != "" {
			fmt.Fprintf(b, "%s %s [%s] %s (%s)\n", branch, marker, exp.Category, exp.Point, exp.Timestamp)
		} else {
			fmt.Fprintf(b, "%s %s [%s] %s\n", branch, marker, exp.Category, exp.Point)
		}
	}
	b.WriteString("\n")
}

func (f *terminalFormatter) writeRecommendation(b *strings.Builder, result *forensic.AnalysisResult) {
	symbol := termfmt.GetEmoji("insight", f.opts)
	b.WriteString(symbol + " Recommendation\n")
	fmt.Fprintf(b, "└─ %s\n", result.UserRecommendation)
}
