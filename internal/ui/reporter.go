package ui

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"ffwizard/internal/progress"
)

// Reporter prints session events as styled lines.
type Reporter struct {
	mu        sync.Mutex
	out       io.Writer
	styles    Styles
	verbose   bool
	completed []string
	failed    int
}

var _ progress.Reporter = (*Reporter)(nil)

func NewReporter(out io.Writer, verbose bool) *Reporter {
	return &Reporter{out: out, styles: DefaultStyles(), verbose: verbose}
}

func (r *Reporter) Update(u progress.Update) {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch u.Stage {
	case progress.StageScanning:
		if r.verbose {
			fmt.Fprintln(r.out, r.styles.Faint.Render(u.Message))
		}
	case progress.StageEncoding:
		fmt.Fprintln(r.out, r.styles.StageEnc.Render(u.Message))
		if u.Command != "" {
			fmt.Fprintln(r.out, r.styles.Faint.Render(u.Command))
		}
	case progress.StageCompleted:
		fmt.Fprintln(r.out, r.styles.Success.Render("✓ "+u.Message))
	case progress.StageError:
		fmt.Fprintln(r.out, r.styles.Error.Render("✗ "+u.Message))
	default:
		fmt.Fprintln(r.out, u.Message)
	}
}

func (r *Reporter) Result(res progress.Result) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if res.Err != nil {
		r.failed++
		return
	}
	r.completed = append(r.completed, res.OutputPath)
}

// Failed returns how many runs failed so far.
func (r *Reporter) Failed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failed
}

// Summary lists the files written during the session, or "" if none.
func (r *Reporter) Summary() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.completed) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(r.styles.Faint.Render("✓ Completed Files:"))
	b.WriteString("\n")
	for _, path := range r.completed {
		b.WriteString(r.styles.Success.Render("  • " + path))
		b.WriteString("\n")
	}
	return b.String()
}
