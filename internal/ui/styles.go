package ui

import "github.com/charmbracelet/lipgloss"

// Styles groups every lipgloss style used by prompts and the reporter.
type Styles struct {
	Title    lipgloss.Style
	Prompt   lipgloss.Style
	Cursor   lipgloss.Style
	Choice   lipgloss.Style
	Answer   lipgloss.Style
	Help     lipgloss.Style
	Success  lipgloss.Style
	Error    lipgloss.Style
	Warning  lipgloss.Style
	Faint    lipgloss.Style
	StageEnc lipgloss.Style
	Farewell lipgloss.Style
}

// DefaultStyles returns the standard palette.
func DefaultStyles() Styles {
	base := lipgloss.NewStyle()
	return Styles{
		Title:    base.Bold(true).Foreground(lipgloss.Color("#7D56F4")),
		Prompt:   base.Bold(true),
		Cursor:   base.Foreground(lipgloss.Color("#22D3EE")),
		Choice:   base.Foreground(lipgloss.Color("#D1D5DB")),
		Answer:   base.Foreground(lipgloss.Color("#22D3EE")),
		Help:     base.Faint(true),
		Success:  base.Foreground(lipgloss.Color("#22C55E")),
		Error:    base.Foreground(lipgloss.Color("#EF4444")),
		Warning:  base.Foreground(lipgloss.Color("#F59E0B")),
		Faint:    base.Faint(true),
		StageEnc: base.Foreground(lipgloss.Color("#D946EF")),
		Farewell: base.Bold(true).Foreground(lipgloss.Color("#D946EF")),
	}
}

// Farewell renders the closing line of an interactive session.
func Farewell(s Styles) string {
	return s.Farewell.Render("Bye Bye")
}

func truncate(s string, n int) string {
	if n <= 0 || len([]rune(s)) <= n {
		return s
	}
	rs := []rune(s)
	return string(rs[:n-1]) + "…"
}
