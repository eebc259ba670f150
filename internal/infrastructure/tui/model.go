package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/doeshing/textpolish/internal/application/controller"
	"github.com/doeshing/textpolish/internal/domain"
	"github.com/doeshing/textpolish/internal/ports"
)

type focusArea int

const (
	focusToolbar focusArea = iota
	focusInput
	focusOutput
	focusHistory
	focusCount
)

type outcomeMsg controller.Outcome

type copyResetMsg struct{}

type model struct {
	ctx       context.Context
	ctrl      *controller.Controller
	clipboard ports.Clipboard
	logger    ports.Logger
	lang      domain.Language
	text      uiText
	catalog   []domain.CatalogEntry

	focus       focusArea
	toolbarIdx  int
	dropdown    bool
	dropdownIdx int
	historyIdx  int

	input   textarea.Model
	output  viewport.Model
	spinner spinner.Model

	view    domain.View
	pending *controller.Ticket
	cancel  context.CancelFunc
	copied  bool
	notice  string

	width  int
	height int
}

func newModel(ctx context.Context, ctrl *controller.Controller, clip ports.Clipboard, logger ports.Logger) model {
	lang := ctrl.Language()
	text := textFor(lang)

	input := textarea.New()
	input.Placeholder = text.placeholder
	input.CharLimit = 0
	input.MaxHeight = 0
	input.ShowLineNumbers = false
	input.Focus()

	m := model{
		ctx:       ctx,
		ctrl:      ctrl,
		clipboard: clip,
		logger:    logger,
		lang:      lang,
		text:      text,
		catalog:   domain.Catalog(lang),
		focus:     focusInput,
		input:     input,
		output:    viewport.New(60, 8),
		spinner:   spinner.New(spinner.WithSpinner(spinner.Dot)),
	}
	m.refresh()
	m.toolbarIdx = m.catalogIndex(m.view.Action)
	return m
}

func (m model) Init() tea.Cmd {
	return textarea.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.resize()
		return m, nil

	case outcomeMsg:
		return m.handleOutcome(controller.Outcome(msg))

	case copyResetMsg:
		m.copied = false
		return m, nil

	case spinner.TickMsg:
		if m.view.State != domain.StateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.focus == focusInput {
		return m.updateInput(msg)
	}
	return m, nil
}

func (m model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.notice = ""

	switch {
	case key.Matches(msg, keys.Quit):
		m.cancelPending()
		return m, tea.Quit
	case key.Matches(msg, keys.NextFocus):
		return m.setFocus((m.focus + 1) % focusCount)
	case key.Matches(msg, keys.PrevFocus):
		return m.setFocus((m.focus + focusCount - 1) % focusCount)
	case key.Matches(msg, keys.Submit):
		return m.submit()
	case key.Matches(msg, keys.Cancel):
		return m.escape()
	case key.Matches(msg, keys.RetryAny):
		return m.retry()
	}

	switch m.focus {
	case focusInput:
		return m.updateInput(msg)
	case focusToolbar:
		return m.handleToolbarKey(msg)
	case focusOutput:
		return m.handleOutputKey(msg)
	case focusHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m model) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.view.Input {
		m.ctrl.SetInput(m.input.Value())
		m.refresh()
	}
	return m, cmd
}

func (m model) handleToolbarKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.dropdown {
		subs := m.catalog[m.toolbarIdx].SubActions
		switch {
		case key.Matches(msg, keys.Up):
			m.dropdownIdx = (m.dropdownIdx + len(subs) - 1) % len(subs)
		case key.Matches(msg, keys.Down):
			m.dropdownIdx = (m.dropdownIdx + 1) % len(subs)
		case key.Matches(msg, keys.Enter):
			m.dropdown = false
			return m.runAction(subs[m.dropdownIdx].Action)
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, keys.Left):
		m.toolbarIdx = (m.toolbarIdx + len(m.catalog) - 1) % len(m.catalog)
	case key.Matches(msg, keys.Right):
		m.toolbarIdx = (m.toolbarIdx + 1) % len(m.catalog)
	case key.Matches(msg, keys.Enter):
		entry := m.catalog[m.toolbarIdx]
		if entry.IsGroup() {
			m.dropdown = true
			m.dropdownIdx = 0
			for i, sub := range entry.SubActions {
				if sub.Action == m.view.Action {
					m.dropdownIdx = i
				}
			}
			return m, nil
		}
		return m.runAction(entry.Action)
	case key.Matches(msg, keys.QuitPlain):
		m.cancelPending()
		return m, tea.Quit
	default:
		return m.handleCommonKey(msg)
	}
	return m, nil
}

func (m model) handleOutputKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.QuitPlain):
		m.cancelPending()
		return m, tea.Quit
	case key.Matches(msg, keys.Retry), key.Matches(msg, keys.Copy):
		return m.handleCommonKey(msg)
	}
	var cmd tea.Cmd
	m.output, cmd = m.output.Update(msg)
	return m, cmd
}

func (m model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.view.History
	switch {
	case key.Matches(msg, keys.QuitPlain):
		m.cancelPending()
		return m, tea.Quit
	case key.Matches(msg, keys.Up):
		if m.historyIdx > 0 {
			m.historyIdx--
		}
	case key.Matches(msg, keys.Down):
		if m.historyIdx < len(records)-1 {
			m.historyIdx++
		}
	case key.Matches(msg, keys.Enter):
		if len(records) == 0 {
			return m, nil
		}
		m.cancelPending()
		if err := m.ctrl.SelectHistoryItem(records[m.historyIdx].ID); err != nil {
			m.logger.Warn("select history item failed", map[string]interface{}{"error": err.Error()})
			return m, nil
		}
		m.refresh()
		m.input.SetValue(m.view.Input)
		m.toolbarIdx = m.catalogIndex(m.view.Action)
		return m, nil
	case key.Matches(msg, keys.Delete):
		if len(records) == 0 {
			return m, nil
		}
		m.ctrl.DeleteHistoryItem(records[m.historyIdx].ID)
		m.refresh()
	case key.Matches(msg, keys.ClearAll):
		if len(records) == 0 {
			return m, nil
		}
		m.ctrl.ClearHistory()
		m.refresh()
	case key.Matches(msg, keys.Copy):
		if len(records) == 0 {
			return m, nil
		}
		return m.copy(records[m.historyIdx].OutputText)
	case key.Matches(msg, keys.Retry):
		return m.handleCommonKey(msg)
	}
	return m, nil
}

// handleCommonKey serves the output actions from every area except the input.
func (m model) handleCommonKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Retry):
		return m.retry()
	case key.Matches(msg, keys.Copy):
		if m.view.State == domain.StateSuccess || (m.view.State == domain.StateIdle && m.view.Output != "") {
			return m.copy(m.view.Output)
		}
	}
	return m, nil
}

func (m model) setFocus(area focusArea) (tea.Model, tea.Cmd) {
	m.focus = area
	m.dropdown = false
	if area == focusInput {
		return m, m.input.Focus()
	}
	m.input.Blur()
	return m, nil
}

func (m model) escape() (tea.Model, tea.Cmd) {
	if m.dropdown {
		m.dropdown = false
		return m, nil
	}
	if m.ctrl.Abandon() {
		m.cancelPending()
		m.refresh()
	}
	return m, nil
}

func (m model) runAction(action domain.Action) (tea.Model, tea.Cmd) {
	if err := m.ctrl.SelectAction(action); err != nil {
		return m, nil
	}
	m.refresh()
	return m.submit()
}

func (m model) submit() (tea.Model, tea.Cmd) {
	m.ctrl.SetInput(m.input.Value())
	ticket, err := m.ctrl.Begin()
	if err != nil {
		if errors.Is(err, controller.ErrEmptyInput) {
			m.notice = m.text.emptyInput
		}
		m.refresh()
		return m, nil
	}
	return m.start(ticket)
}

func (m model) retry() (tea.Model, tea.Cmd) {
	ticket, err := m.ctrl.BeginRetry()
	if err != nil {
		return m, nil
	}
	m.input.SetValue(ticket.Input)
	m.toolbarIdx = m.catalogIndex(ticket.Action)
	return m.start(ticket)
}

func (m model) start(ticket controller.Ticket) (tea.Model, tea.Cmd) {
	ctx, cancel := context.WithCancel(m.ctx)
	m.pending = &ticket
	m.cancel = cancel
	m.copied = false
	m.refresh()

	ctrl := m.ctrl
	await := func() tea.Msg {
		return outcomeMsg(ctrl.Await(ctx, ticket))
	}
	return m, tea.Batch(m.spinner.Tick, await)
}

func (m model) handleOutcome(outcome controller.Outcome) (tea.Model, tea.Cmd) {
	if m.pending != nil && m.pending.Seq == outcome.Ticket.Seq {
		m.cancelPending()
	}
	if m.ctrl.Complete(outcome) {
		m.refresh()
		m.output.GotoTop()
	}
	return m, nil
}

func (m model) copy(text string) (tea.Model, tea.Cmd) {
	if m.clipboard == nil || !m.clipboard.Enabled() {
		m.notice = m.text.noClipboard
		return m, nil
	}
	if err := m.clipboard.Copy(text); err != nil {
		m.logger.Warn("clipboard copy failed", map[string]interface{}{"error": err.Error()})
		m.notice = m.text.noClipboard
		return m, nil
	}
	m.copied = true
	return m, tea.Tick(domain.CopyFeedbackDuration, func(time.Time) tea.Msg { return copyResetMsg{} })
}

// cancelPending stops the in-flight provider call, if any.
func (m *model) cancelPending() {
	if m.cancel != nil {
		m.cancel()
	}
	m.cancel = nil
	m.pending = nil
}

// refresh pulls a fresh snapshot from the controller and re-renders derived widgets.
func (m *model) refresh() {
	m.view = m.ctrl.Snapshot()
	if m.historyIdx >= len(m.view.History) {
		m.historyIdx = max(0, len(m.view.History)-1)
	}
	m.output.SetContent(wrap(m.view.Output, m.output.Width))
}

func (m *model) resize() {
	contentWidth := max(20, m.width-4)
	m.input.SetWidth(contentWidth)
	m.input.SetHeight(max(3, m.height/5))
	m.output.Width = contentWidth
	m.output.Height = max(3, m.height/5)
	m.output.SetContent(wrap(m.view.Output, m.output.Width))
}

func (m model) catalogIndex(action domain.Action) int {
	for i, entry := range m.catalog {
		if entry.Contains(action) {
			return i
		}
	}
	return 0
}
