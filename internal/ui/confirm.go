package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// confirmModel is a yes/no question.
type confirmModel struct {
	message string
	value   bool
	decided bool
	aborted bool
	styles  Styles
}

func newConfirmModel(message string, def bool, st Styles) confirmModel {
	return confirmModel{message: message, value: def, styles: st}
}

func (m confirmModel) Init() tea.Cmd { return nil }

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(km, keys.Yes):
		m.value, m.decided = true, true
		return m, tea.Quit
	case key.Matches(km, keys.No):
		m.value, m.decided = false, true
		return m, tea.Quit
	case key.Matches(km, keys.Toggle):
		m.value = !m.value
	case key.Matches(km, keys.Enter):
		m.decided = true
		return m, tea.Quit
	}
	return m, nil
}

func (m confirmModel) View() string {
	head := m.styles.Cursor.Render("? ") + m.styles.Prompt.Render(m.message)
	if m.decided {
		return head + " " + m.styles.Answer.Render(yesNo(m.value)) + "\n"
	}
	if m.aborted {
		return head + "\n"
	}
	hint := "(y/N)"
	if m.value {
		hint = "(Y/n)"
	}
	return head + " " + m.styles.Faint.Render(hint) + "\n"
}

func yesNo(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}
