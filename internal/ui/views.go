package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/proofylabs/proofy/internal/emoji"
	"github.com/proofylabs/proofy/internal/forensic"
	"github.com/proofylabs/proofy/internal/session"
)

// View renders the current screen.
func (m *Model) View() string {
	if !m.ready {
		return m.renderLoadingScreen()
	}

	if m.quitting {
		return m.renderGoodbyeScreen()
	}

	state := m.coordinator.State()
	switch state.View {
	case session.ViewProcessing:
		return m.renderProcessingScreen()
	case session.ViewResults:
		return m.renderResultsView(state)
	case session.ViewJudicialReport:
		return m.renderJudicialReport(state)
	case session.ViewForensicTimeline:
		return m.renderForensicTimeline(state)
	case session.ViewHistory:
		return m.renderHistoryView()
	case session.ViewSignalLibrary:
		return m.renderSignalLibrary()
	case session.ViewReverseGrounding, session.ViewTextLab, session.ViewBatchTriage, session.ViewLive:
		return m.renderToolView(state.View)
	default:
		return m.renderHomeView(state)
	}
}

func (m *Model) renderLoadingScreen() string {
	loading := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render("Initializing Proofy...")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, loading)
}

func (m *Model) renderGoodbyeScreen() string {
	goodbye := lipgloss.NewStyle().
		Foreground(m.successColor).
		Bold(true).
		Render("Proofy session closed. Stay skeptical. 🛡️")

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, goodbye)
}

func (m *Model) renderProcessingScreen() string {
	spinner := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(spinnerChars[m.spinnerFrame])

	logo := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(`
╔═╗╦═╗╔═╗╔═╗╔═╗╦ ╦
╠═╝╠╦╝║ ║║ ║╠╣ ╚╦╝
╩  ╩╚═╚═╝╚═╝╚   ╩ `)

	statusText := "Neural Media Interrogation"
	dots := strings.Repeat(".", (m.tick/5)%4)
	status := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(statusText + dots)

	currentStep := lipgloss.NewStyle().
		Foreground(m.warningColor).
		Bold(true).
		Render(m.processingStep)

	exhibit := ""
	if m.media != nil {
		exhibit = lipgloss.NewStyle().
			Foreground(m.primaryColor).
			Render(fmt.Sprintf(emoji.GetEmoji("evidence")+" Exhibit: %s (%s)",
				m.media.Metadata.Name, m.media.Metadata.Size))
	}

	content := lipgloss.JoinVertical(
		lipgloss.Center,
		logo,
		"",
		fmt.Sprintf("%s %s", spinner, status),
		"",
		currentStep,
		"",
		exhibit,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.getRainbowColor()).
		Padding(2, 4).
		Width(60)

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderHomeView(state session.State) string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("shield") + " Proofy")

	tagline := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Deepfake detection for the skeptical")

	var rows []string
	rows = append(rows, title, "", tagline, "")

	if state.Error != "" {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(m.errorColor).
			Bold(true).
			Render(emoji.GetEmoji("error")+" "+state.Error), "")
	}

	menuItems := []string{
		emoji.GetEmoji("history") + " h  Case History",
		emoji.GetEmoji("signal") + " s  Signal Library",
		emoji.GetEmoji("ground") + " g  Reverse Grounding",
		emoji.GetEmoji("text") + " x  Text Lab",
		emoji.GetEmoji("evidence") + " b  Batch Triage",
		emoji.GetEmoji("live") + " l  Live Scanner",
	}
	for _, item := range menuItems {
		rows = append(rows, lipgloss.NewStyle().Foreground(m.secondaryColor).Render("  "+item))
	}

	rows = append(rows, "", lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(emoji.GetEmoji("door")+" q quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.getRainbowColor()).
		Padding(1, 3).
		Width(min(m.width-4, 70))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderResultsView(state session.State) string {
	result := state.Result
	if result == nil {
		return m.renderHomeView(state)
	}

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("verdict") + " Verdict")

	verdictStyle := lipgloss.NewStyle().Bold(true)
	verdictSym := emoji.GetEmoji("real")
	if result.Verdict == forensic.VerdictFabricated {
		verdictStyle = verdictStyle.Foreground(m.errorColor)
		verdictSym = emoji.GetEmoji("fabricated")
	} else {
		verdictStyle = verdictStyle.Foreground(m.successColor)
	}

	verdict := verdictStyle.Render(fmt.Sprintf("%s %s  (%.0f%% fabrication probability, %s confidence)",
		verdictSym, result.Verdict, result.DeepfakeProbability, result.ConfidenceLevel))

	exhibit := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(fmt.Sprintf("Exhibit: %s • %s • %s",
			result.FileMetadata.Name, result.FileMetadata.Size, result.FileMetadata.Type))

	summary := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Width(min(m.width-12, 88)).
		Render(result.Summary)

	rows := []string{title, "", exhibit, "", verdict, "", summary}

	if len(result.Explanations) > 0 {
		rows = append(rows, "", lipgloss.NewStyle().
			Foreground(m.primaryColor).
			Bold(true).
			Render(emoji.GetEmoji("evidence")+" Evidence"))
		for _, exp := range result.Explanations {
			line := fmt.Sprintf("  %s [%s] %s", m.categorySymbol(exp.Category), exp.Category, exp.Point)
			if exp.Timestamp != "" {
				line += " (" + exp.Timestamp + ")"
			}
			rows = append(rows, lipgloss.NewStyle().Foreground(m.secondaryColor).Render(line))
		}
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("r Report • t Timeline • h History • n New Case • Esc Back • q Quit")
	rows = append(rows, "", instructions)

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 100))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderJudicialReport(state session.State) string {
	result := state.Result
	if result == nil {
		return m.renderHomeView(state)
	}

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("report") + " Judicial Forensic Report")

	meta := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render(fmt.Sprintf("Case %s • Generated %s",
			result.ID, result.Timestamp.Format("2006-01-02 15:04 MST")))

	rows := []string{title, "", meta, ""}

	section := func(heading, body string) {
		rows = append(rows,
			lipgloss.NewStyle().Foreground(m.primaryColor).Bold(true).Render(heading),
			lipgloss.NewStyle().Foreground(m.secondaryColor).Width(min(m.width-12, 88)).Render(body),
			"")
	}

	section("Exhibit", fmt.Sprintf("%s (%s, %s)",
		result.FileMetadata.Name, result.FileMetadata.Size, result.FileMetadata.Type))
	section("Findings", fmt.Sprintf("Verdict %s with %.0f%% fabrication probability at %s confidence. %s",
		result.Verdict, result.DeepfakeProbability, result.ConfidenceLevel, result.Summary))

	if len(result.Explanations) > 0 {
		var evidence strings.Builder
		for i, exp := range result.Explanations {
			fmt.Fprintf(&evidence, "%d. [%s] %s", i+1, exp.Category, exp.Point)
			if exp.Detail != "" {
				evidence.WriteString(": " + exp.Detail)
			}
			if i < len(result.Explanations)-1 {
				evidence.WriteString("\n")
			}
		}
		section("Evidence", evidence.String())
	}

	if result.UserRecommendation != "" {
		section("Recommendation", result.UserRecommendation)
	}

	rows = append(rows, lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Esc Back • q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	border := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 100))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderForensicTimeline(state session.State) string {
	result := state.Result
	if result == nil {
		return m.renderHomeView(state)
	}

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("temporal") + " Forensic Timeline")

	rows := []string{title, ""}

	var stamped []forensic.Explanation
	for _, exp := range result.Explanations {
		if exp.Timestamp != "" {
			stamped = append(stamped, exp)
		}
	}

	if len(stamped) == 0 {
		rows = append(rows, lipgloss.NewStyle().
			Foreground(m.secondaryColor).
			Render("No timestamped anomalies in this exhibit."))
	}

	for i, exp := range stamped {
		branch := "├─"
		if i == len(stamped)-1 {
			branch = "└─"
		}
		stamp := lipgloss.NewStyle().Foreground(m.warningColor).Bold(true).Render(exp.Timestamp)
		line := fmt.Sprintf("%s %s  %s %s", branch, stamp, m.categorySymbol(exp.Category), exp.Point)
		rows = append(rows, lipgloss.NewStyle().Foreground(m.secondaryColor).Render(line))
	}

	rows = append(rows, "", lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Esc Back • q Quit"))

	content := lipgloss.JoinVertical(lipgloss.Left, rows...)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 90))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderHistoryView() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("history") + " Case History")

	entries := m.coordinator.History()

	if len(entries) == 0 {
		noCases := lipgloss.NewStyle().
			Foreground(m.secondaryColor).
			Render("No closed cases yet")

		content := lipgloss.JoinVertical(lipgloss.Center, title, "", noCases, "",
			lipgloss.NewStyle().Foreground(m.secondaryColor).Render("Press Esc to go back"))

		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	caseList := make([]string, 0, len(entries)*2)
	for i, entry := range entries {
		prefix := "  "
		style := lipgloss.NewStyle()

		if i == m.selectedIndex {
			prefix = "▶ "
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		} else if entry.Verdict == forensic.VerdictFabricated {
			style = style.Foreground(m.errorColor)
		} else {
			style = style.Foreground(m.successColor)
		}

		text := fmt.Sprintf("%s%s  %s  %s (%.0f%%)",
			prefix,
			entry.Timestamp.Format("2006-01-02 15:04"),
			entry.FileMetadata.Name,
			entry.Verdict,
			entry.DeepfakeProbability)
		caseList = append(caseList, style.Render(text))

		if i == m.selectedIndex {
			detail := fmt.Sprintf("    %s %s", emoji.GetEmoji("info"), entry.Summary)
			caseList = append(caseList, lipgloss.NewStyle().
				Foreground(m.secondaryColor).
				Render(detail))
		}
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("↑↓ Navigate • Enter Reopen • Esc Back • q Quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, caseList...),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 100)).
		Height(min(m.height-4, 30))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

func (m *Model) renderSignalLibrary() string {
	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(emoji.GetEmoji("signal") + " Signal Library")

	if m.catalog == nil || m.catalog.Len() == 0 {
		empty := lipgloss.NewStyle().
			Foreground(m.secondaryColor).
			Render("No fabrication signatures loaded")

		content := lipgloss.JoinVertical(lipgloss.Center, title, "", empty, "",
			lipgloss.NewStyle().Foreground(m.secondaryColor).Render("Press Esc to go back"))

		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}

	sigs := m.catalog.All()
	sigList := make([]string, 0, len(sigs)*2)
	for i, sig := range sigs {
		prefix := "  "
		style := lipgloss.NewStyle()

		if i == m.selectedIndex {
			prefix = "▶ "
			style = style.Background(m.selectedColor).Foreground(m.primaryColor).Bold(true)
		} else {
			style = style.Foreground(m.severityColor(sig.Severity))
		}

		text := fmt.Sprintf("%s%s %s [%s/%s]",
			prefix, m.categorySymbol(sig.Category), sig.Name, sig.Category, sig.Severity)
		sigList = append(sigList, style.Render(text))

		if i == m.selectedIndex && sig.Description != "" {
			detail := "    " + sig.Description
			for _, ind := range sig.Indicators {
				detail += "\n      • " + ind
			}
			sigList = append(sigList, lipgloss.NewStyle().
				Foreground(m.secondaryColor).
				Render(detail))
		}
	}

	instructions := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("↑↓ Navigate • Esc Back • q Quit")

	content := lipgloss.JoinVertical(
		lipgloss.Left,
		title,
		"",
		lipgloss.JoinVertical(lipgloss.Left, sigList...),
		"",
		instructions,
	)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 2).
		Width(min(m.width-4, 100)).
		Height(min(m.height-4, 30))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

// renderToolView points at the CLI surface for tools that need file or
// prompt arguments the console cannot collect.
func (m *Model) renderToolView(view session.View) string {
	var symbol, name, command string
	switch view {
	case session.ViewReverseGrounding:
		symbol, name, command = emoji.GetEmoji("ground"), "Reverse Grounding", "proofy ground <file>"
	case session.ViewTextLab:
		symbol, name, command = emoji.GetEmoji("text"), "Text Lab", "proofy text <file|->"
	case session.ViewBatchTriage:
		symbol, name, command = emoji.GetEmoji("evidence"), "Batch Triage", "proofy batch <dir>"
	case session.ViewLive:
		symbol, name, command = emoji.GetEmoji("live"), "Live Scanner", "proofy live <dir>"
	}

	title := lipgloss.NewStyle().
		Foreground(m.primaryColor).
		Bold(true).
		Render(symbol + " " + name)

	hint := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("This tool takes arguments. Run it from your shell:")

	cmd := lipgloss.NewStyle().
		Foreground(m.warningColor).
		Bold(true).
		Render("  $ " + command)

	back := lipgloss.NewStyle().
		Foreground(m.secondaryColor).
		Render("Press Esc to go back")

	content := lipgloss.JoinVertical(lipgloss.Center, title, "", hint, "", cmd, "", back)

	border := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(m.primaryColor).
		Padding(1, 3).
		Width(min(m.width-4, 70))

	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, border.Render(content))
}

// Helper functions

func (m *Model) categorySymbol(cat forensic.ExplanationCategory) string {
	switch cat {
	case forensic.CategoryVisual:
		return emoji.GetEmoji("visual")
	case forensic.CategoryAudio:
		return emoji.GetEmoji("audio")
	case forensic.CategoryTemporal:
		return emoji.GetEmoji("temporal")
	default:
		return emoji.GetEmoji("info")
	}
}

func (m *Model) severityColor(severity string) lipgloss.AdaptiveColor {
	switch severity {
	case "high":
		return m.errorColor
	case "medium":
		return m.warningColor
	default:
		return m.secondaryColor
	}
}

func (m *Model) getRainbowColor() lipgloss.AdaptiveColor {
	colors := []string{
		"#FF6B6B", "#4ECDC4", "#45B7D1", "#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8",
	}
	return lipgloss.AdaptiveColor{
		Light: colors[m.tick/10%len(colors)],
		Dark:  colors[m.tick/10%len(colors)],
	}
}
