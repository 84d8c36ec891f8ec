package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"ffwizard/internal/pipeline"
	"ffwizard/internal/ui"
	"ffwizard/internal/util/deps"
)

func runInteractive(cmd *cobra.Command, _ []string) error {
	s := settingsFrom(cmd)
	defaults, err := s.SessionDefaults()
	if err != nil {
		return &ExitError{Code: ExitCLIError, Err: err}
	}
	ffmpegPath, err := deps.FindFFmpeg(s.FFmpeg)
	if err != nil {
		return &ExitError{Code: ExitMissingDep, Err: err}
	}

	out := cmd.OutOrStdout()
	var prompter pipeline.Prompter
	if !s.NoUI && isTerminal() {
		prompter = ui.NewPrompter(os.Stdin, os.Stdout)
	} else {
		prompter = ui.NewLinePrompter(cmd.InOrStdin(), out)
	}
	reporter := ui.NewReporter(out, s.Verbose)

	session := pipeline.NewSession(
		pipeline.WithPrompter(prompter),
		pipeline.WithReporter(reporter),
		pipeline.WithFFmpegPath(ffmpegPath),
		pipeline.WithWorkDir(s.Dir),
		pipeline.WithExtensions(s.Scan.Extensions),
		pipeline.WithDefaults(defaults),
		pipeline.WithVerbose(s.Verbose),
		pipeline.WithStdio(cmd.InOrStdin(), out, cmd.ErrOrStderr()),
	)
	runErr := session.Run(cmd.Context())

	if sum := reporter.Summary(); sum != "" {
		fmt.Fprint(out, sum)
	}
	fmt.Fprintln(out, ui.Farewell(ui.DefaultStyles()))

	switch {
	case runErr == nil, errors.Is(runErr, pipeline.ErrAborted):
	case cmd.Context().Err() != nil:
		return nil
	default:
		return &ExitError{Code: ExitCLIError, Err: runErr}
	}
	if n := reporter.Failed(); n > 0 {
		return &ExitError{Code: ExitTranscodeError, Err: errors.Errorf("%d encode(s) failed", n)}
	}
	return nil
}

func isTerminal() bool {
	return term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd()))
}
