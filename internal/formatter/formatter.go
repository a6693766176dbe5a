package formatter

import "github.com/proofylabs/proofy/internal/forensic"

// Formatter defines the interface for output formatting
type Formatter interface {
	Format(result *forensic.AnalysisResult) ([]byte, error)
}

// New returns a formatter for the given format name.
// Supported: terminal, json, markdown, csv.
func New(format string, color bool) Formatter {
	switch format {
	case "json":
		return NewJSON()
	case "markdown", "md":
		return NewMarkdown()
	case "csv":
		return NewCSV()
	default:
		return NewTerminal(color)
	}
}
