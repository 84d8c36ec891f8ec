package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// selectModel is a single-choice cursor list.
type selectModel struct {
	message string
	choices []string
	cursor  int
	chosen  int // -1 until enter
	aborted bool
	styles  Styles
}

func newSelectModel(message string, choices []string, def string, st Styles) selectModel {
	m := selectModel{message: message, choices: choices, chosen: -1, styles: st}
	for i, c := range choices {
		if c == def {
			m.cursor = i
			break
		}
	}
	return m
}

func (m selectModel) Init() tea.Cmd { return nil }

func (m selectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	km, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	switch {
	case key.Matches(km, keys.Quit):
		m.aborted = true
		return m, tea.Quit
	case key.Matches(km, keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(km, keys.Down):
		if m.cursor < len(m.choices)-1 {
			m.cursor++
		}
	case key.Matches(km, keys.Enter):
		if len(m.choices) > 0 {
			m.chosen = m.cursor
			return m, tea.Quit
		}
	}
	return m, nil
}

// answer returns the chosen label; ok is false when nothing was chosen.
func (m selectModel) answer() (string, bool) {
	if m.chosen < 0 {
		return "", false
	}
	return m.choices[m.chosen], true
}

func (m selectModel) View() string {
	head := m.styles.Cursor.Render("? ") + m.styles.Prompt.Render(m.message)
	if ans, ok := m.answer(); ok {
		return head + " " + m.styles.Answer.Render(ans) + "\n"
	}
	if m.aborted {
		return head + "\n"
	}

	var b strings.Builder
	b.WriteString(head + "\n")
	for i, c := range m.choices {
		cursor := "  "
		style := m.styles.Choice
		if i == m.cursor {
			cursor = "> "
			style = m.styles.Cursor
		}
		b.WriteString(style.Render(cursor+truncate(c, 72)) + "\n")
	}
	b.WriteString(m.styles.Help.Render(helpLine(keys.Up, keys.Down, keys.Enter, keys.Quit)) + "\n")
	return b.String()
}
