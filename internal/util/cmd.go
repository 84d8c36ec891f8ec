package util

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"

	"github.com/pkg/errors"
)

// CmdSpec describes a subprocess to run.
type CmdSpec struct {
	Path    string   // Binary path
	Args    []string // Arguments
	Env     []string // Optional environment variables (KEY=VALUE). If nil, inherit.
	Dir     string   // Working directory; empty = inherit.
	Verbose bool     // Echo the command line to Echo before starting

	// Stdin is handed to the child as-is (ffmpeg asks before overwriting).
	Stdin io.Reader
	// Stdout/Stderr receive a live copy of the output when non-nil.
	Stdout io.Writer
	Stderr io.Writer
	// Echo receives the "+ cmd" line in verbose mode; nil means os.Stderr.
	Echo io.Writer
}

// CmdResult contains captured output and exit status.
type CmdResult struct {
	Stdout []byte
	Stderr []byte
	Code   int
	Err    error
}

// CmdRunner runs a subprocess described by a CmdSpec.
type CmdRunner interface {
	Run(ctx context.Context, spec CmdSpec) (CmdResult, error)
}

// RunnerFunc adapts a function to CmdRunner.
type RunnerFunc func(ctx context.Context, spec CmdSpec) (CmdResult, error)

// Run calls f.
func (f RunnerFunc) Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	return f(ctx, spec)
}

// NewDefaultRunner returns a CmdRunner backed by os/exec.
func NewDefaultRunner() CmdRunner {
	return RunnerFunc(Run)
}

// Run executes the command and waits for it. Stdout and stderr are always
// captured and additionally streamed to spec.Stdout/spec.Stderr when set.
// On non-zero exit, returns an error describing the exit code, while also
// populating CmdResult.Code and captured buffers.
func Run(ctx context.Context, spec CmdSpec) (CmdResult, error) {
	var stdoutBuf, stderrBuf bytes.Buffer

	cmd := exec.CommandContext(ctx, spec.Path, spec.Args...)
	if spec.Dir != "" {
		cmd.Dir = spec.Dir
	}
	if spec.Env != nil {
		cmd.Env = append(os.Environ(), spec.Env...)
	}
	if spec.Stdin != nil {
		cmd.Stdin = spec.Stdin
	}

	cmd.Stdout = tee(&stdoutBuf, spec.Stdout)
	cmd.Stderr = tee(&stderrBuf, spec.Stderr)

	if spec.Verbose {
		echo := spec.Echo
		if echo == nil {
			echo = os.Stderr
		}
		fmt.Fprintf(echo, "+ %s\n", ShellQuote(spec.Path, spec.Args))
	}

	if err := cmd.Start(); err != nil {
		return CmdResult{Code: -1, Err: err}, errors.Wrapf(err, "start %s", spec.Path)
	}
	waitErr := cmd.Wait()

	code := 0
	if waitErr != nil {
		var exitErr *exec.ExitError
		if errors.As(waitErr, &exitErr) {
			code = exitErr.ExitCode()
		} else {
			code = -1
		}
	}

	res := CmdResult{
		Stdout: stdoutBuf.Bytes(),
		Stderr: stderrBuf.Bytes(),
		Code:   code,
		Err:    waitErr,
	}

	if waitErr != nil {
		return res, errors.Wrapf(waitErr, "command failed (exit %d)", code)
	}
	return res, nil
}

// tee captures into buf and, when live is set, mirrors the raw bytes so
// ffmpeg's carriage-return status line renders as it does in a shell.
func tee(buf *bytes.Buffer, live io.Writer) io.Writer {
	if live == nil {
		return buf
	}
	return io.MultiWriter(buf, live)
}

// ShellQuote returns a printable shell-like command string for logging.
func ShellQuote(path string, args []string) string {
	b := &strings.Builder{}
	b.WriteString(quote(path))
	for _, a := range args {
		b.WriteByte(' ')
		b.WriteString(quote(a))
	}
	return b.String()
}

func quote(s string) string {
	if s == "" {
		return "''"
	}
	// Simple quoting: wrap in single quotes and escape existing single quotes.
	if strings.ContainsAny(s, " \t\n\"'\\$`(){}[]*&;|<>?!") {
		return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
	}
	return s
}
