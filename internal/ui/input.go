package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// inputModel asks for one line of free text. An empty answer takes def.
type inputModel struct {
	message string
	def     string
	ti      textinput.Model
	value   string
	entered bool
	aborted bool
	styles  Styles
}

func newInputModel(message, def string, st Styles) inputModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.Placeholder = def
	ti.CharLimit = 255
	ti.Focus()
	return inputModel{message: message, def: def, ti: ti, styles: st}
}

func (m inputModel) Init() tea.Cmd { return textinput.Blink }

func (m inputModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if km, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(km, keys.Quit):
			m.aborted = true
			return m, tea.Quit
		case key.Matches(km, keys.Enter):
			m.value = m.ti.Value()
			if strings.TrimSpace(m.value) == "" && m.def != "" {
				m.value = m.def
			}
			m.entered = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.ti, cmd = m.ti.Update(msg)
	return m, cmd
}

func (m inputModel) View() string {
	head := m.styles.Cursor.Render("? ") + m.styles.Prompt.Render(m.message)
	if m.entered {
		return head + " " + m.styles.Answer.Render(m.value) + "\n"
	}
	if m.aborted {
		return head + "\n"
	}
	return head + "\n" + m.ti.View() + "\n"
}
