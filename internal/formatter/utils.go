package formatter

import (
	"github.com/yildizm/go-termfmt"

	"github.com/proofylabs/proofy/internal/forensic"
)

// verdictSymbol returns the marker for a verdict using go-termfmt
func verdictSymbol(verdict forensic.Verdict, opts *termfmt.TerminalOptions) string {
	switch verdict {
	case forensic.VerdictReal:
		return termfmt.GetEmoji("success", opts)
	case forensic.VerdictFabricated:
		return termfmt.GetEmoji("error", opts)
	default:
		return termfmt.GetEmoji("help", opts)
	}
}

// categoryMarker returns a marker for an evidence category
func categoryMarker(cat forensic.ExplanationCategory) string {
	opts := termfmt.DefaultOptions()
	switch cat {
	case forensic.CategoryVisual:
		return termfmt.GetEmoji("pattern", opts)
	case forensic.CategoryAudio:
		return termfmt.GetEmoji("warning", opts)
	case forensic.CategoryTemporal:
		return termfmt.GetEmoji("info", opts)
	default:
		return termfmt.GetEmoji("insight", opts)
	}
}
