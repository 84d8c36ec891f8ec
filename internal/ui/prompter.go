package ui

import (
	"context"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"

	"ffwizard/internal/pipeline"
)

// Prompter asks each question with a small bubbletea program. The answered
// prompt stays on screen as a single line.
type Prompter struct {
	in     io.Reader
	out    io.Writer
	styles Styles
}

var _ pipeline.Prompter = (*Prompter)(nil)

// NewPrompter returns a Prompter reading keys from in and drawing to out.
// nil streams mean the process's stdin/stdout.
func NewPrompter(in io.Reader, out io.Writer) *Prompter {
	return &Prompter{in: in, out: out, styles: DefaultStyles()}
}

func (p *Prompter) run(ctx context.Context, m tea.Model) (tea.Model, error) {
	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.in != nil && p.in != io.Reader(os.Stdin) {
		opts = append(opts, tea.WithInput(p.in))
	}
	if p.out != nil && p.out != io.Writer(os.Stdout) {
		opts = append(opts, tea.WithOutput(p.out))
	}
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(err, "prompt")
	}
	return final, nil
}

// Select implements pipeline.Prompter.
func (p *Prompter) Select(ctx context.Context, message string, choices []string, def string) (string, error) {
	final, err := p.run(ctx, newSelectModel(message, choices, def, p.styles))
	if err != nil {
		return "", err
	}
	ans, ok := final.(selectModel).answer()
	if !ok {
		return "", pipeline.ErrAborted
	}
	return ans, nil
}

// Input implements pipeline.Prompter.
func (p *Prompter) Input(ctx context.Context, message, def string) (string, error) {
	final, err := p.run(ctx, newInputModel(message, def, p.styles))
	if err != nil {
		return "", err
	}
	m := final.(inputModel)
	if !m.entered {
		return "", pipeline.ErrAborted
	}
	return m.value, nil
}

// Confirm implements pipeline.Prompter.
func (p *Prompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	final, err := p.run(ctx, newConfirmModel(message, def, p.styles))
	if err != nil {
		return false, err
	}
	m := final.(confirmModel)
	if !m.decided {
		return false, pipeline.ErrAborted
	}
	return m.value, nil
}
