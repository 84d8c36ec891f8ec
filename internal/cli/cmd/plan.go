package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"ffwizard/internal/cli"
	"ffwizard/internal/pipeline"
)

func newPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "plan",
		Short:         "Print the ffmpeg command for a selection without running it",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pl, err := buildPlan(cmd)
			if err != nil {
				return err
			}
			format, _ := cmd.Flags().GetString("format")
			program := settingsFrom(cmd).FFmpeg
			if err := printPlan(cmd.OutOrStdout(), pl, format, program); err != nil {
				return &ExitError{Code: ExitCLIError, Err: err}
			}
			return nil
		},
	}
	cli.BindSelectionFlags(cmd.Flags())
	cmd.Flags().StringP("format", "o", "text", "Output format: text, yaml, json")
	return cmd
}

// buildPlan parses the selection flags of cmd and resolves them.
func buildPlan(cmd *cobra.Command) (pipeline.Plan, error) {
	defaults, err := settingsFrom(cmd).SessionDefaults()
	if err != nil {
		return pipeline.Plan{}, &ExitError{Code: ExitCLIError, Err: err}
	}
	sel, err := cli.ParseSelection(cmd.Flags(), defaults)
	if err != nil {
		return pipeline.Plan{}, &ExitError{Code: ExitCLIError, Err: err}
	}
	pl, err := pipeline.BuildPlan(sel, time.Now())
	if err != nil {
		return pipeline.Plan{}, &ExitError{Code: ExitCLIError, Err: err}
	}
	return pl, nil
}

func printPlan(w io.Writer, pl pipeline.Plan, format, program string) error {
	switch format {
	case "", "text":
		fmt.Fprintf(w, "Input:      %s\n", pl.Input)
		fmt.Fprintf(w, "Resolution: %s\n", pl.Resolution)
		fmt.Fprintf(w, "Codec:      %s (%s)\n", pl.Codec, pl.Encoder)
		fmt.Fprintf(w, "Device:     %s\n", pl.Device)
		if pl.CRF > 0 {
			fmt.Fprintf(w, "Quality:    %s (crf %d, preset %s)\n", pl.Quality, pl.CRF, pl.Preset)
		} else {
			fmt.Fprintf(w, "Quality:    %s (preset %s)\n", pl.Quality, pl.Preset)
		}
		fmt.Fprintf(w, "Output:     %s\n", pl.OutputPath)
		fmt.Fprintf(w, "Command:    %s\n", pl.CommandLine(program))
		return nil
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(pl); err != nil {
			return errors.Wrap(err, "encode yaml")
		}
		return enc.Close()
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return errors.Wrap(enc.Encode(pl), "encode json")
	default:
		return errors.Errorf("invalid --format: %q (valid: text|yaml|json)", format)
	}
}
