package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"ffwizard/internal/pipeline"
)

// LinePrompter asks questions as numbered menus on plain lines, for pipes
// and dumb terminals.
type LinePrompter struct {
	r   *bufio.Reader
	out io.Writer
}

var _ pipeline.Prompter = (*LinePrompter)(nil)

func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(in), out: out}
}

// readLine returns the next trimmed line. EOF with no pending text aborts.
func (p *LinePrompter) readLine(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line, err := p.r.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimSpace(line), nil
		}
		if errors.Is(err, io.EOF) {
			return "", pipeline.ErrAborted
		}
		return "", errors.Wrap(err, "read answer")
	}
	return strings.TrimSpace(line), nil
}

// Select implements pipeline.Prompter. Accepts a 1-based number, a label
// (case-insensitive) or an empty line for the default.
func (p *LinePrompter) Select(ctx context.Context, message string, choices []string, def string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("no choices")
	}
	for {
		fmt.Fprintf(p.out, "? %s\n", message)
		for i, c := range choices {
			mark := ""
			if c == def {
				mark = " (default)"
			}
			fmt.Fprintf(p.out, "  %d) %s%s\n", i+1, c, mark)
		}
		fmt.Fprint(p.out, "> ")

		ans, err := p.readLine(ctx)
		if err != nil {
			return "", err
		}
		if got, ok := matchChoice(ans, choices, def); ok {
			return got, nil
		}
		fmt.Fprintf(p.out, "invalid choice %q\n", ans)
	}
}

func matchChoice(ans string, choices []string, def string) (string, bool) {
	if ans == "" {
		for _, c := range choices {
			if c == def {
				return c, true
			}
		}
		return "", false
	}
	if n, err := strconv.Atoi(ans); err == nil {
		if n >= 1 && n <= len(choices) {
			return choices[n-1], true
		}
		return "", false
	}
	for _, c := range choices {
		if strings.EqualFold(c, ans) {
			return c, true
		}
	}
	return "", false
}

// Input implements pipeline.Prompter.
func (p *LinePrompter) Input(ctx context.Context, message, def string) (string, error) {
	if def != "" {
		fmt.Fprintf(p.out, "? %s [%s] ", message, def)
	} else {
		fmt.Fprintf(p.out, "? %s ", message)
	}
	ans, err := p.readLine(ctx)
	if err != nil {
		return "", err
	}
	if ans == "" {
		return def, nil
	}
	return ans, nil
}

// Confirm implements pipeline.Prompter.
func (p *LinePrompter) Confirm(ctx context.Context, message string, def bool) (bool, error) {
	hint := "(y/N)"
	if def {
		hint = "(Y/n)"
	}
	for {
		fmt.Fprintf(p.out, "? %s %s ", message, hint)
		ans, err := p.readLine(ctx)
		if err != nil {
			return false, err
		}
		switch strings.ToLower(ans) {
		case "":
			return def, nil
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		fmt.Fprintln(p.out, "please answer y or n")
	}
}
