package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/infrastructure/cli/helpers"
)

const historyRows = 8

func (m model) View() string {
	sections := []string{
		titleStyle.Render(m.text.title),
		m.viewToolbar(),
		m.viewInput(),
		m.viewOutput(),
		m.viewHistory(),
	}
	if m.notice != "" {
		sections = append(sections, errorStyle.Render(m.notice))
	}
	sections = append(sections, footerStyle.Render(m.text.help))
	return strings.Join(sections, "\n")
}

func (m model) viewToolbar() string {
	buttons := make([]string, 0, len(m.catalog))
	for i, entry := range m.catalog {
		label := entry.Icon + " " + entry.Label
		if entry.IsGroup() {
			label += " ▾"
			if sub, ok := domain.FindAction(m.lang, m.view.Action); ok && entry.Contains(m.view.Action) {
				label += " (" + sub.Label + ")"
			}
		}
		style := buttonStyle
		switch {
		case m.focus == focusToolbar && i == m.toolbarIdx:
			style = activeButton
		case entry.Contains(m.view.Action):
			style = buttonStyle.Inherit(selectedStyle)
		}
		buttons = append(buttons, style.Render(label))
	}
	bar := lipgloss.JoinHorizontal(lipgloss.Top, buttons...)

	if !m.dropdown {
		return bar
	}
	var lines []string
	for i, sub := range m.catalog[m.toolbarIdx].SubActions {
		marker := "  "
		style := mutedStyle
		if i == m.dropdownIdx {
			marker = "> "
			style = selectedStyle
		}
		lines = append(lines, style.Render(marker+sub.Icon+" "+sub.Label))
	}
	return bar + "\n" + panelStyle.Render(strings.Join(lines, "\n"))
}

func (m model) viewInput() string {
	counter := mutedStyle.Render(helpers.CharCountLabel(m.lang, m.view.CharCount))
	body := m.input.View() + "\n" + counter
	return m.section(m.text.input, body, m.focus == focusInput)
}

func (m model) viewOutput() string {
	var body string
	switch m.view.State {
	case domain.StateLoading:
		body = m.spinner.View() + " " + m.text.loading
	case domain.StateFailed:
		body = errorStyle.Render(m.view.Error)
		if m.view.CanRetry {
			body += "\n" + mutedStyle.Render(m.text.retryHint)
		}
	default:
		if m.view.Output == "" {
			body = mutedStyle.Render(m.text.emptyOutput)
			break
		}
		body = m.output.View()
		hint := mutedStyle.Render(m.text.copyHint)
		if m.copied {
			hint = okStyle.Render(m.text.copied)
		}
		body += "\n" + hint
	}
	return m.section(m.text.output, body, m.focus == focusOutput)
}

func (m model) viewHistory() string {
	records := m.view.History
	title := fmt.Sprintf("%s (%d)", m.text.history, len(records))
	if len(records) == 0 {
		return m.section(title, mutedStyle.Render(m.text.emptyHistory), m.focus == focusHistory)
	}

	start := 0
	if m.historyIdx >= historyRows {
		start = m.historyIdx - historyRows + 1
	}
	end := min(len(records), start+historyRows)

	now := time.Now()
	lines := make([]string, 0, end-start+1)
	for i := start; i < end; i++ {
		record := records[i]
		line := fmt.Sprintf("%s · %s · %s",
			domain.ActionLabel(m.lang, record.Action),
			helpers.RelativeTime(record, now),
			helpers.Preview(record.InputText, domain.HistoryPreviewLength))
		if m.focus == focusHistory && i == m.historyIdx {
			lines = append(lines, selectedStyle.Render("> "+line))
			continue
		}
		lines = append(lines, "  "+line)
	}
	lines = append(lines, mutedStyle.Render(m.text.clearAllHint))
	return m.section(title, strings.Join(lines, "\n"), m.focus == focusHistory)
}

func (m model) section(title, body string, focused bool) string {
	style := panel(focused)
	if m.width > 0 {
		style = style.Width(max(20, m.width-2))
	}
	header := mutedStyle.Render(title)
	if focused {
		header = selectedStyle.Render(title)
	}
	return style.Render(header + "\n" + body)
}

func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}
	return lipgloss.NewStyle().Width(width).Render(text)
}
