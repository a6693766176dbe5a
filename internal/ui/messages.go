package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/gateway"
	"github.com/proofylabs/proofy/internal/intake"
)

// Common message types shared across UI models
type analysisCompleteMsg struct {
	result *forensic.AnalysisResult
}

type analysisErrorMsg struct {
	err error
}

type analysisProgressMsg struct {
	step string
}

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(time.Millisecond*100, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

var spinnerChars = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// CreateAnalysisCommand creates a tea command that interrogates the media
// through the gateway.
func CreateAnalysisCommand(analyzer gateway.Analyzer, media *intake.Media, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		result, err := analyzer.AnalyzeMedia(ctx, media)
		if err != nil {
			return analysisErrorMsg{err: err}
		}
		return analysisCompleteMsg{result: result}
	}
}
