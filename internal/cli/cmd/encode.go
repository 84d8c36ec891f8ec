package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"ffwizard/internal/cli"
	"ffwizard/internal/encoder"
	"ffwizard/internal/ui"
	"ffwizard/internal/util/deps"
	"ffwizard/internal/util/format"
)

func newEncodeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "encode",
		Short:         "Run ffmpeg once for a selection given as flags",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s := settingsFrom(cmd)
			pl, err := buildPlan(cmd)
			if err != nil {
				return err
			}
			ffmpegPath, err := deps.FindFFmpeg(s.FFmpeg)
			if err != nil {
				return &ExitError{Code: ExitMissingDep, Err: err}
			}

			st := ui.DefaultStyles()
			out := cmd.OutOrStdout()
			fmt.Fprintln(out, st.StageEnc.Render("Encoding "+pl.Input))
			fmt.Fprintln(out, st.Faint.Render(pl.CommandLine(ffmpegPath)))

			res, err := encoder.Encode(cmd.Context(), pl.Args, encoder.Options{
				FFmpegPath: ffmpegPath,
				WorkDir:    s.Dir,
				Verbose:    s.Verbose,
				Stdin:      cmd.InOrStdin(),
				Stdout:     out,
				Stderr:     cmd.ErrOrStderr(),
				Echo:       cmd.ErrOrStderr(),
			})
			if err != nil {
				return &ExitError{Code: ExitTranscodeError, Err: err}
			}
			fmt.Fprintln(out, st.Success.Render(fmt.Sprintf("✓ Saved: %s (%s)",
				filepath.Join(s.Dir, res.OutputPath), format.HumanizeBytes(res.Bytes))))
			return nil
		},
	}
	cli.BindSelectionFlags(cmd.Flags())
	return cmd
}
