package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/maintenance"
	"github.com/kayung-developer/AI-Predictive-Maintenance/internal/viz"
)

// View renders the TUI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var sections []string

	// Title bar
	sections = append(sections, m.renderTitleBar())

	// Dataset and model
	sections = append(sections, m.renderStatus())

	// Distribution bars
	if m.dist != nil {
		sections = append(sections, m.renderDistribution())
	}

	// Results log
	sections = append(sections, m.renderLog(m.logHeight(sections)))

	// Footer
	sections = append(sections, m.renderFooter())

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m Model) renderTitleBar() string {
	title := titleStyle.Render("PREDICTIVE MAINTENANCE")

	activity := "idle"
	if m.busy != "" {
		activity = m.busy + "..."
	}

	help := "u:upload t:train p:predict v:visualize c:clear q:quit ↑↓:scroll"

	// Calculate spacing
	rightPart := fmt.Sprintf("%s | %s", activity, help)
	spacing := m.width - lipgloss.Width(title) - lipgloss.Width(rightPart) - 2
	if spacing < 1 {
		spacing = 1
	}

	return fmt.Sprintf("%s%s%s", title, strings.Repeat(" ", spacing), helpStyle.Render(rightPart))
}

func (m Model) renderStatus() string {
	data := valueStyle.Render("none")
	if m.source != "" {
		data = valueStyle.Render(fmt.Sprintf("%s (%d rows × %d columns)", m.source, m.rows, m.columns))
	}

	state := m.backend.State()
	stateStyle := untrainedStyle
	if state == maintenance.Trained {
		stateStyle = trainedStyle
	}

	return fmt.Sprintf("  %s %s    %s %s",
		labelStyle.Render("Data:"), data,
		labelStyle.Render("Model:"), stateStyle.Render(state.String()))
}

func (m Model) renderDistribution() string {
	lines := []string{sectionHeaderStyle.Render("  " + m.dist.Title())}

	labelWidth := 0
	for _, b := range m.dist.Buckets {
		if w := lipgloss.Width(b.Label); w > labelWidth {
			labelWidth = w
		}
	}

	maxCount := 0
	for _, b := range m.dist.Buckets {
		if b.Count > maxCount {
			maxCount = b.Count
		}
	}

	for _, b := range m.dist.Buckets {
		filled := 0
		if maxCount > 0 {
			filled = b.Count * distributionWidth / maxCount
		}
		style := successBarStyle
		if viz.IsFailureLabel(b.Label) {
			style = failureBarStyle
		}
		bar := style.Render(strings.Repeat("█", filled)) +
			progressBarEmptyStyle.Render(strings.Repeat("░", distributionWidth-filled))
		lines = append(lines, fmt.Sprintf("  %-*s %s %d (%.1f%%)",
			labelWidth, b.Label, bar, b.Count, b.Percent))
	}

	if m.dist.Total == 0 {
		lines = append(lines, helpStyle.Render("  (no rows)"))
	}

	return strings.Join(lines, "\n")
}

func (m Model) logHeight(sections []string) int {
	used := 2 // log header and footer
	for _, s := range sections {
		used += lipgloss.Height(s)
	}
	h := m.height - used
	if h < 3 {
		h = 3
	}
	return h
}

func (m Model) renderLog(height int) string {
	lines := []string{sectionHeaderStyle.Render("  Results")}

	if len(m.entries) == 0 {
		lines = append(lines, helpStyle.Render("  press u to load data, t to train, p to predict"))
		return strings.Join(lines, "\n")
	}

	end := len(m.entries) - m.logOffset
	if end < 0 {
		end = 0
	}
	start := end - height
	if start < 0 {
		start = 0
	}

	for _, e := range m.entries[start:end] {
		stamp := timestampStyle.Render(e.at.Format("15:04:05"))
		text := logTextStyle.Render(e.text)
		if e.err {
			text = errorStyle.Render("Error: " + e.text)
		}
		lines = append(lines, fmt.Sprintf("  %s %s", stamp, text))
	}

	if m.logOffset > 0 {
		lines = append(lines, helpStyle.Render(fmt.Sprintf("  [%d newer]", m.logOffset)))
	}

	return strings.Join(lines, "\n")
}

func (m Model) renderFooter() string {
	if m.proc == nil {
		return ""
	}

	watch := ""
	if m.watcher != nil {
		watch = " │ watching " + m.config.DataPath
	}

	return helpStyle.Render(fmt.Sprintf("  %s │ Updated: %s%s",
		m.proc.String(),
		m.proc.Timestamp.Format("15:04:05"),
		watch,
	))
}
